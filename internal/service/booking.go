package service

import (
	"context"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/logger"
	"smartride-backend/internal/pricing"
	"smartride-backend/internal/repository/postgres"
)

type bookingService struct {
	store    *postgres.Store
	emailSvc EmailService
}

// NewBookingService builds the booking transaction service. emailSvc
// may be nil; confirmations are then skipped.
func NewBookingService(store *postgres.Store, emailSvc EmailService) BookingService {
	return &bookingService{store: store, emailSvc: emailSvc}
}

func (s *bookingService) CreateRental(ctx context.Context, vehicleID, customerID, staffID int64, start, due time.Time) (*domain.Rental, error) {
	// Date validation happens before any I/O; an invalid request has
	// no side effects to unwind.
	if !due.After(start) {
		return nil, domain.InvalidRangef("due date %s must be after start date %s",
			due.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(tx *postgres.Store) error {
		if _, err := tx.CustomerRepository.GetByID(ctx, customerID); err != nil {
			return err
		}
		veh, err := tx.VehicleRepository.GetForUpdate(ctx, vehicleID)
		if err != nil {
			return err
		}
		r, err := bookVehicle(ctx, tx, veh, customerID, staffID, start, due)
		if err != nil {
			return err
		}
		rental = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, rental)
	return rental, nil
}

// bookVehicle performs the locked portion of a booking: availability
// check, charge computation, rental insert and vehicle status
// derivation. The caller must already hold the vehicle row lock and
// have validated the date range.
func bookVehicle(ctx context.Context, tx *postgres.Store, veh *domain.Vehicle, customerID, staffID int64, start, due time.Time) (*domain.Rental, error) {
	// Maintenance takes precedence over renting.
	if veh.Status == domain.VehicleStatusMaintenance {
		return nil, domain.Unavailablef("vehicle %d is under maintenance", veh.ID)
	}
	overlapping, err := tx.RentalRepository.CountOverlapping(ctx, veh.ID, start, due)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, domain.Unavailablef("vehicle %d already booked between %s and %s",
			veh.ID, start.Format("2006-01-02"), due.Format("2006-01-02"))
	}

	rental := &domain.Rental{
		VehicleID:        veh.ID,
		CustomerID:       customerID,
		StaffID:          staffID,
		StartDate:        start,
		DueDate:          due,
		TotalAmountCents: pricing.ComputeCharge(veh.RatePerDayCents, start, due),
		Status:           domain.RentalStatusActive,
	}
	if err := tx.RentalRepository.Create(ctx, rental); err != nil {
		return nil, err
	}
	if err := deriveVehicleStatus(ctx, tx, veh.ID); err != nil {
		return nil, err
	}
	return rental, nil
}

// deriveVehicleStatus recomputes the vehicle's status from its open
// rental and maintenance records. Status is never trusted from memory
// or assumed after a transition; it is a function of current records.
func deriveVehicleStatus(ctx context.Context, tx *postgres.Store, vehicleID int64) error {
	inMaintenance, err := tx.MaintenanceRepository.HasInProgressByVehicle(ctx, vehicleID)
	if err != nil {
		return err
	}
	status := domain.VehicleStatusAvailable
	if inMaintenance {
		status = domain.VehicleStatusMaintenance
	} else {
		rented, err := tx.RentalRepository.HasActiveByVehicle(ctx, vehicleID)
		if err != nil {
			return err
		}
		if rented {
			status = domain.VehicleStatusRented
		}
	}
	return tx.VehicleRepository.UpdateStatus(ctx, vehicleID, status)
}

func (s *bookingService) CheckAvailability(ctx context.Context, vehicleID int64, start, due time.Time) (bool, error) {
	if !due.After(start) {
		return false, domain.InvalidRangef("due date must be after start date")
	}
	veh, err := s.store.VehicleRepository.GetByID(ctx, vehicleID)
	if err != nil {
		return false, err
	}
	if veh.Status == domain.VehicleStatusMaintenance {
		return false, nil
	}
	overlapping, err := s.store.RentalRepository.CountOverlapping(ctx, vehicleID, start, due)
	if err != nil {
		return false, err
	}
	return overlapping == 0, nil
}

func (s *bookingService) sendConfirmation(ctx context.Context, rental *domain.Rental) {
	if s.emailSvc == nil || rental == nil {
		return
	}
	customer, err := s.store.CustomerRepository.GetByID(ctx, rental.CustomerID)
	if err != nil {
		logger.Warn("Could not load customer for booking confirmation", "rental_id", rental.ID, "error", err)
		return
	}
	vehicle, err := s.store.VehicleRepository.GetByID(ctx, rental.VehicleID)
	if err != nil {
		logger.Warn("Could not load vehicle for booking confirmation", "rental_id", rental.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendBookingConfirmation(ctx, customer.Email, customer.Name, rental, vehicle); err != nil {
		logger.Warn("Booking confirmation email failed", "rental_id", rental.ID, "error", err)
	}
}
