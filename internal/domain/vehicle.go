package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

// VehicleType is a class of vehicles (Car, Bus, Bike, Scooter).
// Reservations are placed against a type, not a specific vehicle.
type VehicleType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Vehicle struct {
	ID              int64         `json:"id"`
	TypeID          int64         `json:"type_id"`
	TypeName        string        `json:"type_name,omitempty"` // populated on joined reads
	Make            string        `json:"make"`
	Model           string        `json:"model"`
	Year            int           `json:"year"`
	PlateNo         string        `json:"plate_no"`
	RatePerDayCents int64         `json:"rate_per_day_cents"`
	Status          VehicleStatus `json:"status"`
	CreatedOn       time.Time     `json:"created_on"`
	UpdatedOn       time.Time     `json:"updated_on"`
}
