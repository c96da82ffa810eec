package service

import (
	"context"
	"errors"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/logger"
	"smartride-backend/internal/pricing"
	"smartride-backend/internal/repository/postgres"
)

type lifecycleService struct {
	store              *postgres.Store
	penaltyPerDayCents int64
	emailSvc           EmailService
}

// NewLifecycleService builds the state machine driver. The penalty
// rate is the deployment-wide overdue fine per day.
func NewLifecycleService(store *postgres.Store, penaltyPerDayCents int64, emailSvc EmailService) LifecycleService {
	return &lifecycleService{store: store, penaltyPerDayCents: penaltyPerDayCents, emailSvc: emailSvc}
}

func (s *lifecycleService) ProcessReturn(ctx context.Context, rentalID int64, returnDate time.Time) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(tx *postgres.Store) error {
		rt, err := tx.RentalRepository.GetForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		// COMPLETED is terminal; a second return attempt must not
		// touch the stored return date or fine.
		if rt.Status == domain.RentalStatusCompleted {
			return domain.Conflictf("rental %d is already completed", rentalID)
		}
		if returnDate.Before(rt.StartDate) {
			return domain.InvalidRangef("return date %s precedes rental start %s",
				returnDate.Format("2006-01-02"), rt.StartDate.Format("2006-01-02"))
		}
		// Status derivation only runs under the vehicle row lock; a
		// concurrent booking of this vehicle serializes here.
		if _, err := tx.VehicleRepository.GetForUpdate(ctx, rt.VehicleID); err != nil {
			return err
		}

		fine := pricing.ComputeFine(rt.DueDate, returnDate, s.penaltyPerDayCents)
		if err := tx.RentalRepository.Complete(ctx, rentalID, returnDate, fine); err != nil {
			return err
		}
		// Re-derive rather than assume AVAILABLE: another open record
		// must win even if the no-overlap invariant says there is none.
		if err := deriveVehicleStatus(ctx, tx, rt.VehicleID); err != nil {
			return err
		}

		rt.ReturnDate = &returnDate
		rt.FineAmountCents = fine
		rt.Status = domain.RentalStatusCompleted
		rental = rt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendReturnReceipt(ctx, rental)
	return rental, nil
}

func (s *lifecycleService) StartMaintenance(ctx context.Context, vehicleID int64, description string, costCents int64) (*domain.Maintenance, error) {
	var record *domain.Maintenance
	err := s.store.WithinTx(ctx, func(tx *postgres.Store) error {
		veh, err := tx.VehicleRepository.GetForUpdate(ctx, vehicleID)
		if err != nil {
			return err
		}
		// A rented vehicle cannot be pulled into the shop; the active
		// rental must complete first.
		rented, err := tx.RentalRepository.HasActiveByVehicle(ctx, veh.ID)
		if err != nil {
			return err
		}
		if rented {
			return domain.Conflictf("vehicle %d has an active rental", vehicleID)
		}

		m := &domain.Maintenance{
			VehicleID:   vehicleID,
			Date:        time.Now(),
			Description: description,
			CostCents:   costCents,
			Status:      domain.MaintenanceStatusInProgress,
		}
		if err := tx.MaintenanceRepository.Create(ctx, m); err != nil {
			return err
		}
		if err := deriveVehicleStatus(ctx, tx, vehicleID); err != nil {
			return err
		}
		record = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *lifecycleService) CompleteMaintenance(ctx context.Context, maintenanceID int64) (*domain.Maintenance, error) {
	var record *domain.Maintenance
	err := s.store.WithinTx(ctx, func(tx *postgres.Store) error {
		m, err := tx.MaintenanceRepository.GetForUpdate(ctx, maintenanceID)
		if err != nil {
			return err
		}
		if m.Status == domain.MaintenanceStatusCompleted {
			return domain.Conflictf("maintenance %d is already completed", maintenanceID)
		}
		// Same locking rule as returns: hold the vehicle row before the
		// derivation reads.
		if _, err := tx.VehicleRepository.GetForUpdate(ctx, m.VehicleID); err != nil {
			return err
		}
		if err := tx.MaintenanceRepository.SetCompleted(ctx, maintenanceID); err != nil {
			return err
		}
		// The vehicle returns to AVAILABLE only when this was the last
		// open maintenance record.
		if err := deriveVehicleStatus(ctx, tx, m.VehicleID); err != nil {
			return err
		}
		m.Status = domain.MaintenanceStatusCompleted
		record = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *lifecycleService) CreateReservation(ctx context.Context, customerID, vehicleTypeID int64, start, end time.Time) (*domain.Reservation, error) {
	if !end.After(start) {
		return nil, domain.InvalidRangef("end date must be after start date")
	}
	if _, err := s.store.VehicleTypeRepository.GetByID(ctx, vehicleTypeID); err != nil {
		return nil, err
	}
	if _, err := s.store.CustomerRepository.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		CustomerID:    customerID,
		VehicleTypeID: vehicleTypeID,
		ResDate:       time.Now(),
		StartDate:     start,
		EndDate:       end,
		Status:        domain.ReservationStatusPending,
	}
	if err := s.store.ReservationRepository.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *lifecycleService) CancelReservation(ctx context.Context, customerID, reservationID int64) error {
	return s.store.WithinTx(ctx, func(tx *postgres.Store) error {
		res, err := tx.ReservationRepository.GetForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}
		if customerID != 0 && res.CustomerID != customerID {
			return domain.NotFoundf("reservation %d does not exist", reservationID)
		}
		if res.Status != domain.ReservationStatusPending {
			return domain.Conflictf("reservation %d is %s, only pending reservations can be cancelled", reservationID, res.Status)
		}
		return tx.ReservationRepository.SetStatus(ctx, reservationID, domain.ReservationStatusCancelled, nil)
	})
}

// FulfillReservation converts a pending type-level reservation into a
// concrete rental at pickup time. The conversion rides on the booking
// transaction, so it inherits the no-double-booking guarantee; when no
// vehicle of the type is available the reservation stays PENDING.
func (s *lifecycleService) FulfillReservation(ctx context.Context, reservationID, staffID int64) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(tx *postgres.Store) error {
		res, err := tx.ReservationRepository.GetForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}
		if res.Status != domain.ReservationStatusPending {
			return domain.Conflictf("reservation %d is %s", reservationID, res.Status)
		}

		veh, err := tx.VehicleRepository.PickAvailableByType(ctx, res.VehicleTypeID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Unavailablef("no available vehicle of type %d", res.VehicleTypeID)
			}
			return err
		}

		r, err := bookVehicle(ctx, tx, veh, res.CustomerID, staffID, res.StartDate, res.EndDate)
		if err != nil {
			return err
		}
		if err := tx.ReservationRepository.SetStatus(ctx, reservationID, domain.ReservationStatusFulfilled, &r.ID); err != nil {
			return err
		}
		rental = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *lifecycleService) ExpireReservations(ctx context.Context, asOf time.Time) (int64, error) {
	n, err := s.store.ReservationRepository.ExpirePending(ctx, asOf)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("Expired pending reservations", "count", n)
	}
	return n, nil
}

func (s *lifecycleService) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	return s.store.ReservationRepository.List(ctx)
}

func (s *lifecycleService) CustomerReservations(ctx context.Context, customerID int64) ([]domain.Reservation, error) {
	return s.store.ReservationRepository.ListByCustomer(ctx, customerID)
}

func (s *lifecycleService) CustomerRentals(ctx context.Context, customerID int64, status domain.RentalStatus) ([]domain.Rental, error) {
	return s.store.RentalRepository.ListByCustomer(ctx, customerID, status)
}

func (s *lifecycleService) sendReturnReceipt(ctx context.Context, rental *domain.Rental) {
	if s.emailSvc == nil || rental == nil {
		return
	}
	customer, err := s.store.CustomerRepository.GetByID(ctx, rental.CustomerID)
	if err != nil {
		logger.Warn("Could not load customer for return receipt", "rental_id", rental.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendReturnReceipt(ctx, customer.Email, customer.Name, rental); err != nil {
		logger.Warn("Return receipt email failed", "rental_id", rental.ID, "error", err)
	}
}
