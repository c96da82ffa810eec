package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
)

func TestVehicleRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewVehicleRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		v := &domain.Vehicle{
			TypeID:          1,
			Make:            "Toyota",
			Model:           "Corolla",
			Year:            2022,
			PlateNo:         "KA-01-1234",
			RatePerDayCents: 5000,
			Status:          domain.VehicleStatusAvailable,
		}

		mock.ExpectQuery("INSERT INTO vehicles").
			WithArgs(v.TypeID, v.Make, v.Model, v.Year, v.PlateNo, v.RatePerDayCents, v.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

		err := repo.Create(ctx, v)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), v.ID)
	})
}

func TestVehicleRepository_PickAvailableByType(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewVehicleRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "type_id", "make", "model", "year", "plate_no", "rate_per_day_cents", "status", "created_on", "updated_on"}).
			AddRow(3, 1, "Toyota", "Corolla", 2022, "KA-01-1234", 5000, domain.VehicleStatusAvailable, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM vehicles(.+)FOR UPDATE SKIP LOCKED").
			WithArgs(int64(1), domain.VehicleStatusAvailable).
			WillReturnRows(rows)

		v, err := repo.PickAvailableByType(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), v.ID)
	})

	t.Run("NoneAvailable", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM vehicles(.+)FOR UPDATE SKIP LOCKED").
			WithArgs(int64(1), domain.VehicleStatusAvailable).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.PickAvailableByType(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestVehicleRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewVehicleRepository(db)
	ctx := context.Background()

	t.Run("UnknownVehicle", func(t *testing.T) {
		mock.ExpectExec("UPDATE vehicles SET status").
			WithArgs(domain.VehicleStatusRented, sqlmock.AnyArg(), int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 404, domain.VehicleStatusRented)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestVehicleRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewVehicleRepository(db)
	ctx := context.Background()

	listColumns := []string{"id", "type_id", "make", "model", "year", "plate_no", "rate_per_day_cents", "status", "created_on", "updated_on", "name"}

	t.Run("FiltersByTypeAndStatus", func(t *testing.T) {
		rows := sqlmock.NewRows(listColumns).
			AddRow(3, 1, "Toyota", "Corolla", 2022, "KA-01-1234", 5000, domain.VehicleStatusAvailable, time.Now(), time.Now(), "Car")

		mock.ExpectQuery("SELECT (.+) FROM vehicles v JOIN vehicle_types vt").
			WithArgs("Car", domain.VehicleStatusAvailable).
			WillReturnRows(rows)

		vehicles, err := repo.List(ctx, repository.VehicleFilter{TypeName: "Car", Status: domain.VehicleStatusAvailable})
		assert.NoError(t, err)
		assert.Len(t, vehicles, 1)
		assert.Equal(t, "Car", vehicles[0].TypeName)
	})

	t.Run("SearchMatchesPlate", func(t *testing.T) {
		rows := sqlmock.NewRows(listColumns).
			AddRow(3, 1, "Toyota", "Corolla", 2022, "KA-01-1234", 5000, domain.VehicleStatusAvailable, time.Now(), time.Now(), "Car")

		mock.ExpectQuery("SELECT (.+) FROM vehicles v JOIN vehicle_types vt").
			WithArgs("%1234%").
			WillReturnRows(rows)

		vehicles, err := repo.List(ctx, repository.VehicleFilter{Search: "1234"})
		assert.NoError(t, err)
		assert.Len(t, vehicles, 1)
	})
}

func TestVehicleRepository_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewVehicleRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"status", "count"}).
			AddRow(domain.VehicleStatusAvailable, 5).
			AddRow(domain.VehicleStatusRented, 2)

		mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM vehicles GROUP BY status`).
			WillReturnRows(rows)

		counts, err := repo.CountByStatus(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), counts[domain.VehicleStatusAvailable])
		assert.Equal(t, int64(2), counts[domain.VehicleStatusRented])
		assert.Equal(t, int64(0), counts[domain.VehicleStatusMaintenance])
	})
}
