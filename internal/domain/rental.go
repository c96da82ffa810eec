package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
)

type Rental struct {
	ID         int64 `json:"id"`
	VehicleID  int64 `json:"vehicle_id"`
	CustomerID int64 `json:"customer_id"`
	StaffID    int64 `json:"staff_id"`
	// Dates are calendar days; the engine treats [StartDate, DueDate]
	// as a closed interval for overlap checks.
	StartDate  time.Time  `json:"start_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	// Charge snapshot, computed from the vehicle rate at booking time.
	// Never recomputed if the rate changes afterwards.
	TotalAmountCents int64        `json:"total_amount_cents"`
	FineAmountCents  int64        `json:"fine_amount_cents"`
	Status           RentalStatus `json:"status"`
	CreatedOn        time.Time    `json:"created_on"`
	UpdatedOn        time.Time    `json:"updated_on"`
}
