package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"

	"github.com/lib/pq"
)

// Store bundles all repositories over one Querier. A Store built with
// NewStore runs each call on the connection pool; a Store handed to a
// WithinTx callback runs everything on a single transaction.
type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.VehicleTypeRepository
	repository.CustomerRepository
	repository.StaffRepository
	repository.RentalRepository
	repository.ReservationRepository
	repository.MaintenanceRepository
	repository.ReportRepository
}

func NewStore(db *sql.DB) *Store {
	s := bind(db)
	s.db = db
	return s
}

func bind(q repository.Querier) *Store {
	return &Store{
		VehicleRepository:     NewVehicleRepository(q),
		VehicleTypeRepository: NewVehicleTypeRepository(q),
		CustomerRepository:    NewCustomerRepository(q),
		StaffRepository:       NewStaffRepository(q),
		RentalRepository:      NewRentalRepository(q),
		ReservationRepository: NewReservationRepository(q),
		MaintenanceRepository: NewMaintenanceRepository(q),
		ReportRepository:      NewReportRepository(q),
	}
}

// WithinTx runs fn with a transaction-bound Store. The transaction is
// rolled back on error or panic and committed otherwise. Begin and
// commit failures surface as retryable StoreFailure errors; errors
// from fn pass through unchanged.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *Store) error) (err error) {
	if s.db == nil {
		return domain.StoreFailure("store is already transaction-bound", nil)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.StoreFailure("begin transaction", err)
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = domain.StoreFailure("commit transaction", cerr)
		}
	}()
	return fn(bind(tx))
}

// uniqueViolation is the postgres error code for breached unique
// constraints (duplicate plate, email or license).
const uniqueViolation = "23505"

// storeErr translates driver errors into the engine taxonomy:
// sql.ErrNoRows becomes NotFound, unique violations become Conflict,
// anything else is a retryable StoreFailure.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("%s: no matching record", op)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.Conflictf("%s: duplicate value for %s", op, pqErr.Constraint)
	}
	return domain.StoreFailure(fmt.Sprintf("%s failed", op), err)
}
