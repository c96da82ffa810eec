package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusFulfilled ReservationStatus = "FULFILLED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusExpired   ReservationStatus = "EXPIRED"
)

// Reservation is a type-level hold: the customer reserves a vehicle
// type for a window, and a concrete vehicle is assigned only at
// fulfillment, which goes through the regular booking transaction.
type Reservation struct {
	ID            int64             `json:"id"`
	CustomerID    int64             `json:"customer_id"`
	VehicleTypeID int64             `json:"vehicle_type_id"`
	TypeName      string            `json:"type_name,omitempty"`
	ResDate       time.Time         `json:"res_date"`
	StartDate     time.Time         `json:"start_date"`
	EndDate       time.Time         `json:"end_date"`
	Status        ReservationStatus `json:"status"`
	RentalID      *int64            `json:"rental_id,omitempty"` // set on fulfillment
}

type MaintenanceStatus string

const (
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
)

type Maintenance struct {
	ID          int64             `json:"id"`
	VehicleID   int64             `json:"vehicle_id"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	CostCents   int64             `json:"cost_cents"`
	Status      MaintenanceStatus `json:"status"`
}
