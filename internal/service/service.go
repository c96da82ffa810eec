package service

import (
	"context"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
)

// BookingService is the booking transaction entry point. All checks
// and writes of one booking happen inside a single store transaction;
// when two callers race for the same vehicle and window, exactly one
// wins and the other receives an Unavailable error.
type BookingService interface {
	CreateRental(ctx context.Context, vehicleID, customerID, staffID int64, start, due time.Time) (*domain.Rental, error)
	// CheckAvailability is an advisory read for browsing; the booking
	// transaction always re-checks under lock.
	CheckAvailability(ctx context.Context, vehicleID int64, start, due time.Time) (bool, error)
}

// LifecycleService drives the rental, vehicle, maintenance and
// reservation state machines.
type LifecycleService interface {
	ProcessReturn(ctx context.Context, rentalID int64, returnDate time.Time) (*domain.Rental, error)
	StartMaintenance(ctx context.Context, vehicleID int64, description string, costCents int64) (*domain.Maintenance, error)
	CompleteMaintenance(ctx context.Context, maintenanceID int64) (*domain.Maintenance, error)

	CreateReservation(ctx context.Context, customerID, vehicleTypeID int64, start, end time.Time) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, customerID, reservationID int64) error
	FulfillReservation(ctx context.Context, reservationID, staffID int64) (*domain.Rental, error)
	ExpireReservations(ctx context.Context, asOf time.Time) (int64, error)

	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	CustomerReservations(ctx context.Context, customerID int64) ([]domain.Reservation, error)
	CustomerRentals(ctx context.Context, customerID int64, status domain.RentalStatus) ([]domain.Rental, error)
}

// DashboardStats is the admin dashboard projection.
type DashboardStats struct {
	TotalVehicles       int64 `json:"total_vehicles"`
	AvailableVehicles   int64 `json:"available_vehicles"`
	RentedVehicles      int64 `json:"rented_vehicles"`
	MaintenanceVehicles int64 `json:"maintenance_vehicles"`
	ActiveRentals       int64 `json:"active_rentals"`
	OverdueRentals      int64 `json:"overdue_rentals"`
	MonthlyRevenueCents int64 `json:"monthly_revenue_cents"`
	DailyRevenueCents   int64 `json:"daily_revenue_cents"`
}

// CustomerStats is the customer dashboard projection.
type CustomerStats struct {
	ActiveRentals       int64 `json:"active_rentals"`
	CompletedRentals    int64 `json:"completed_rentals"`
	PendingReservations int64 `json:"pending_reservations"`
	TotalSpentCents     int64 `json:"total_spent_cents"`
}

// ReportService serves read-only projections. Safe at any concurrency
// level; never mutates state.
type ReportService interface {
	OverdueRentals(ctx context.Context) ([]repository.OverdueRental, error)
	RentalHistory(ctx context.Context, status domain.RentalStatus) ([]repository.RentalHistoryEntry, error)
	MonthlyRevenueReport(ctx context.Context, month time.Month, year int) ([]repository.MonthlyRevenueLine, int64, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	CustomerStats(ctx context.Context, customerID int64) (*CustomerStats, error)
}

type AuthService interface {
	RegisterCustomer(ctx context.Context, name, email, phone, licenseNo, password string) (*domain.Customer, error)
	LoginCustomer(ctx context.Context, email, password string) (*domain.Customer, string, string, error) // customer, access, refresh
	LoginAdmin(ctx context.Context, username, password string) (*domain.Staff, string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, id int64, name, email, phone, licenseNo string) (*domain.Customer, error)
	// SearchCustomers lists customers for the admin console, optionally
	// filtered by a name/email/license substring.
	SearchCustomers(ctx context.Context, search string) ([]domain.Customer, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, v *domain.Vehicle) error
	UpdateVehicle(ctx context.Context, v *domain.Vehicle) error
	DeleteVehicle(ctx context.Context, id int64) error
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, []domain.Rental, error)
	ListVehicles(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error)
	ListVehicleTypes(ctx context.Context) ([]domain.VehicleType, error)
	ListMaintenance(ctx context.Context) ([]domain.Maintenance, error)
}

// EmailService sends customer-facing notifications. Senders treat
// failures as best-effort: a mail error never rolls back a booking.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, to, name string, rental *domain.Rental, vehicle *domain.Vehicle) error
	SendReturnReceipt(ctx context.Context, to, name string, rental *domain.Rental) error
	SendOverdueReminder(ctx context.Context, to, name string, plateNo string, daysOverdue, accruedFineCents int64) error
}
