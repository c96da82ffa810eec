package repository

import (
	"context"
	"database/sql"
	"time"

	"smartride-backend/internal/domain"
)

// Querier is the subset of database/sql that repositories execute
// against. Both *sql.DB and *sql.Tx satisfy it, so the same repository
// code runs standalone or inside a store transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type VehicleFilter struct {
	TypeName string
	Status   domain.VehicleStatus
	Search   string // matches make, model or plate
	Year     int
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	// GetForUpdate locks the vehicle row for the duration of the
	// enclosing transaction. It is the serialization point for all
	// booking and lifecycle transitions on that vehicle.
	GetForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error)
	// PickAvailableByType locks and returns one AVAILABLE vehicle of
	// the given type, skipping rows locked by concurrent fulfillments.
	PickAvailableByType(ctx context.Context, typeID int64) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter VehicleFilter) ([]domain.Vehicle, error)
	CountByStatus(ctx context.Context) (map[domain.VehicleStatus]int64, error)
}

type VehicleTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.VehicleType, error)
	List(ctx context.Context) ([]domain.VehicleType, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	ExistsByEmailOrLicense(ctx context.Context, email, licenseNo string) (bool, error)
	Update(ctx context.Context, c *domain.Customer) error
	Search(ctx context.Context, query string) ([]domain.Customer, error)
}

type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) error
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetByName(ctx context.Context, name string) (*domain.Staff, error)
}

type RentalRepository interface {
	Create(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Rental, error)
	// CountOverlapping counts ACTIVE rentals for the vehicle whose
	// [start, due] interval overlaps the given closed interval.
	CountOverlapping(ctx context.Context, vehicleID int64, start, due time.Time) (int64, error)
	HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error)
	// Complete sets the return date, fine and COMPLETED status in one
	// statement. Rentals are immutable afterwards.
	Complete(ctx context.Context, id int64, returnDate time.Time, fineCents int64) error
	ListByCustomer(ctx context.Context, customerID int64, status domain.RentalStatus) ([]domain.Rental, error)
	ListByVehicle(ctx context.Context, vehicleID int64) ([]domain.Rental, error)

	// Aggregate folds over COMPLETED rentals. Zero matching rows yield
	// zero, not an error. Revenue includes fines.
	TotalSpending(ctx context.Context, customerID int64) (int64, error)
	MonthlyRevenue(ctx context.Context, month time.Month, year int) (int64, error)
	DailyRevenue(ctx context.Context, day time.Time) (int64, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Reservation, error)
	SetStatus(ctx context.Context, id int64, status domain.ReservationStatus, rentalID *int64) error
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	// ExpirePending flips PENDING reservations whose start date has
	// passed to EXPIRED and returns how many were flipped.
	ExpirePending(ctx context.Context, asOf time.Time) (int64, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.Maintenance) error
	GetByID(ctx context.Context, id int64) (*domain.Maintenance, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Maintenance, error)
	SetCompleted(ctx context.Context, id int64) error
	HasInProgressByVehicle(ctx context.Context, vehicleID int64) (bool, error)
	ListByVehicle(ctx context.Context, vehicleID int64) ([]domain.Maintenance, error)
	List(ctx context.Context) ([]domain.Maintenance, error)
}

// OverdueRental is the overdue-list projection row.
type OverdueRental struct {
	Rental       domain.Rental `json:"rental"`
	CustomerName string        `json:"customer_name"`
	Email        string        `json:"email"`
	Make         string        `json:"make"`
	Model        string        `json:"model"`
	PlateNo      string        `json:"plate_no"`
	DaysOverdue  int64         `json:"days_overdue"`
}

// RentalHistoryEntry is the rental-history projection row.
type RentalHistoryEntry struct {
	Rental       domain.Rental `json:"rental"`
	CustomerName string        `json:"customer_name"`
	Make         string        `json:"make"`
	Model        string        `json:"model"`
	PlateNo      string        `json:"plate_no"`
	TypeName     string        `json:"type_name"`
}

// MonthlyRevenueLine is one vehicle type's share of a monthly report.
type MonthlyRevenueLine struct {
	TypeName     string `json:"type_name"`
	Rentals      int64  `json:"rentals"`
	RevenueCents int64  `json:"revenue_cents"`
	FinesCents   int64  `json:"fines_cents"`
}

// ReportRepository serves the read-only projections. Implementations
// must never mutate state.
type ReportRepository interface {
	OverdueRentals(ctx context.Context, asOf time.Time) ([]OverdueRental, error)
	RentalHistory(ctx context.Context, status domain.RentalStatus) ([]RentalHistoryEntry, error)
	MonthlyRevenueByType(ctx context.Context, month time.Month, year int) ([]MonthlyRevenueLine, error)
}
