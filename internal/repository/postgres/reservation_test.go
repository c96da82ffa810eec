package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"smartride-backend/internal/domain"
)

func TestReservationRepository_ExpirePending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReservationRepository(db)
	ctx := context.Background()
	asOf := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("ReportsFlippedCount", func(t *testing.T) {
		mock.ExpectExec("UPDATE reservations SET status").
			WithArgs(domain.ReservationStatusExpired, domain.ReservationStatusPending, asOf).
			WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := repo.ExpirePending(ctx, asOf)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("NothingToExpire", func(t *testing.T) {
		mock.ExpectExec("UPDATE reservations SET status").
			WithArgs(domain.ReservationStatusExpired, domain.ReservationStatusPending, asOf).
			WillReturnResult(sqlmock.NewResult(0, 0))

		n, err := repo.ExpirePending(ctx, asOf)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}

func TestReservationRepository_SetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReservationRepository(db)
	ctx := context.Background()

	t.Run("FulfilledLinksRental", func(t *testing.T) {
		rentalID := int64(202)
		mock.ExpectExec("UPDATE reservations SET status").
			WithArgs(domain.ReservationStatusFulfilled, &rentalID, int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetStatus(ctx, 9, domain.ReservationStatusFulfilled, &rentalID)
		assert.NoError(t, err)
	})

	t.Run("UnknownReservation", func(t *testing.T) {
		mock.ExpectExec("UPDATE reservations SET status").
			WithArgs(domain.ReservationStatusCancelled, nil, int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetStatus(ctx, 404, domain.ReservationStatusCancelled, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
