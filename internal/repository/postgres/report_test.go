package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartride-backend/internal/domain"
)

func TestReportRepository_OverdueRentals(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReportRepository(db)
	ctx := context.Background()
	asOf := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("ProjectsJoinedColumns", func(t *testing.T) {
		columns := []string{
			"id", "vehicle_id", "customer_id", "staff_id", "start_date", "due_date", "return_date",
			"total_amount_cents", "fine_amount_cents", "status", "created_on", "updated_on",
			"name", "email", "make", "model", "plate_no", "days_overdue",
		}
		rows := sqlmock.NewRows(columns).
			AddRow(101, 3, 7, 2, asOf.AddDate(0, 0, -10), asOf.AddDate(0, 0, -4), nil,
				15000, 0, domain.RentalStatusActive, time.Now(), time.Now(),
				"Dana Reyes", "dana@example.com", "Toyota", "Corolla", "KA-01-1234", 4)

		mock.ExpectQuery("SELECT (.+) FROM rentals r(.+)JOIN customers c(.+)JOIN vehicles v").
			WithArgs(domain.RentalStatusActive, asOf).
			WillReturnRows(rows)

		entries, err := repo.OverdueRentals(ctx, asOf)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(101), entries[0].Rental.ID)
		assert.Equal(t, "dana@example.com", entries[0].Email)
		assert.Equal(t, int64(4), entries[0].DaysOverdue)
	})

	t.Run("NoOverdue", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals r(.+)JOIN customers c(.+)JOIN vehicles v").
			WithArgs(domain.RentalStatusActive, asOf).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		entries, err := repo.OverdueRentals(ctx, asOf)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestReportRepository_MonthlyRevenueByType(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReportRepository(db)
	ctx := context.Background()

	t.Run("GroupsByTypeName", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"name", "count", "revenue", "fines"}).
			AddRow("Bike", 2, 4000, 0).
			AddRow("Car", 3, 45000, 6000)

		mock.ExpectQuery("SELECT vt.name, (.+) FROM rentals r").
			WithArgs(domain.RentalStatusCompleted, 7, 2026).
			WillReturnRows(rows)

		lines, err := repo.MonthlyRevenueByType(ctx, time.July, 2026)
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "Car", lines[1].TypeName)
		assert.Equal(t, int64(45000), lines[1].RevenueCents)
		assert.Equal(t, int64(6000), lines[1].FinesCents)
	})
}
