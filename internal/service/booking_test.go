package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository/postgres"
)

func newMockStore(t *testing.T) (*postgres.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return postgres.NewStore(db), mock
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func customerRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "phone", "license_no", "password_hash", "created_on", "updated_on"}).
		AddRow(id, "Dana Reyes", "dana@example.com", "555-0101", "DL-4482", "x", time.Now(), time.Now())
}

func vehicleRow(id int64, rateCents int64, status domain.VehicleStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "type_id", "make", "model", "year", "plate_no", "rate_per_day_cents", "status", "created_on", "updated_on"}).
		AddRow(id, 1, "Toyota", "Corolla", 2022, "KA-01-1234", rateCents, status, time.Now(), time.Now())
}

func expectStatusDerivation(mock sqlmock.Sqlmock, vehicleID int64, inMaintenance, rented bool) {
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM maintenance`).
		WithArgs(vehicleID, domain.MaintenanceStatusInProgress).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(inMaintenance))
	if !inMaintenance {
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM rentals`).
			WithArgs(vehicleID, domain.RentalStatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(rented))
	}
	mock.ExpectExec("UPDATE vehicles SET status").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), vehicleID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestBookingService_CreateRental(t *testing.T) {
	ctx := context.Background()
	start := date(2026, time.January, 1)
	due := date(2026, time.January, 4)

	t.Run("Success", func(t *testing.T) {
		store, mock := newMockStore(t)
		svc := NewBookingService(store, nil)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM customers WHERE id").
			WithArgs(int64(7)).
			WillReturnRows(customerRow(7))
		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id = (.+) FOR UPDATE").
			WithArgs(int64(3)).
			WillReturnRows(vehicleRow(3, 5000, domain.VehicleStatusAvailable))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rentals`).
			WithArgs(int64(3), domain.RentalStatusActive, due, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(int64(3), int64(7), int64(2), start, due, int64(15000), int64(0), domain.RentalStatusActive, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
		expectStatusDerivation(mock, 3, false, true)
		mock.ExpectCommit()

		rental, err := svc.CreateRental(ctx, 3, 7, 2, start, due)
		require.NoError(t, err)
		assert.Equal(t, int64(101), rental.ID)
		assert.Equal(t, int64(15000), rental.TotalAmountCents)
		assert.Equal(t, domain.RentalStatusActive, rental.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OverlappingRental", func(t *testing.T) {
		store, mock := newMockStore(t)
		svc := NewBookingService(store, nil)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM customers WHERE id").
			WithArgs(int64(7)).
			WillReturnRows(customerRow(7))
		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id = (.+) FOR UPDATE").
			WithArgs(int64(3)).
			WillReturnRows(vehicleRow(3, 5000, domain.VehicleStatusAvailable))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rentals`).
			WithArgs(int64(3), domain.RentalStatusActive, due, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		_, err := svc.CreateRental(ctx, 3, 7, 2, start, due)
		assert.ErrorIs(t, err, domain.ErrUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnderMaintenance", func(t *testing.T) {
		store, mock := newMockStore(t)
		svc := NewBookingService(store, nil)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM customers WHERE id").
			WithArgs(int64(7)).
			WillReturnRows(customerRow(7))
		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id = (.+) FOR UPDATE").
			WithArgs(int64(3)).
			WillReturnRows(vehicleRow(3, 5000, domain.VehicleStatusMaintenance))
		mock.ExpectRollback()

		_, err := svc.CreateRental(ctx, 3, 7, 2, start, due)
		assert.ErrorIs(t, err, domain.ErrUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DueNotAfterStart", func(t *testing.T) {
		store, mock := newMockStore(t)
		svc := NewBookingService(store, nil)

		// No SQL at all for a bad date range.
		_, err := svc.CreateRental(ctx, 3, 7, 2, due, start)
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownCustomer", func(t *testing.T) {
		store, mock := newMockStore(t)
		svc := NewBookingService(store, nil)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM customers WHERE id").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := svc.CreateRental(ctx, 3, 99, 2, start, due)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsertFailureRollsBack", func(t *testing.T) {
		store, mock := newMockStore(t)
		svc := NewBookingService(store, nil)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM customers WHERE id").
			WithArgs(int64(7)).
			WillReturnRows(customerRow(7))
		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id = (.+) FOR UPDATE").
			WithArgs(int64(3)).
			WillReturnRows(vehicleRow(3, 5000, domain.VehicleStatusAvailable))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rentals`).
			WithArgs(int64(3), domain.RentalStatusActive, due, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := svc.CreateRental(ctx, 3, 7, 2, start, due)
		assert.ErrorIs(t, err, domain.ErrStoreFailure)
		assert.True(t, domain.Retryable(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingService_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	start := date(2026, time.March, 10)
	due := date(2026, time.March, 12)

	t.Run("Available", func(t *testing.T) {
		store, mock := newMockStore(t)
		svc := NewBookingService(store, nil)

		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id").
			WithArgs(int64(5)).
			WillReturnRows(vehicleRow(5, 4200, domain.VehicleStatusAvailable))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rentals`).
			WithArgs(int64(5), domain.RentalStatusActive, due, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		ok, err := svc.CheckAvailability(ctx, 5, start, due)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("BookedWindow", func(t *testing.T) {
		store, mock := newMockStore(t)
		svc := NewBookingService(store, nil)

		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id").
			WithArgs(int64(5)).
			WillReturnRows(vehicleRow(5, 4200, domain.VehicleStatusAvailable))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rentals`).
			WithArgs(int64(5), domain.RentalStatusActive, due, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		ok, err := svc.CheckAvailability(ctx, 5, start, due)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("MaintenanceNeverAvailable", func(t *testing.T) {
		store, mock := newMockStore(t)
		svc := NewBookingService(store, nil)

		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id").
			WithArgs(int64(5)).
			WillReturnRows(vehicleRow(5, 4200, domain.VehicleStatusMaintenance))

		ok, err := svc.CheckAvailability(ctx, 5, start, due)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
