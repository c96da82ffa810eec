package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
)

type vehicleRepository struct {
	q repository.Querier
}

func NewVehicleRepository(q repository.Querier) repository.VehicleRepository {
	return &vehicleRepository{q: q}
}

const vehicleColumns = `id, type_id, make, model, year, plate_no, rate_per_day_cents, status, created_on, updated_on`

func (r *vehicleRepository) scan(row *sql.Row) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(&v.ID, &v.TypeID, &v.Make, &v.Model, &v.Year, &v.PlateNo, &v.RatePerDayCents, &v.Status, &v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (type_id, make, model, year, plate_no, rate_per_day_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	err := r.q.QueryRowContext(ctx, query, v.TypeID, v.Make, v.Model, v.Year, v.PlateNo, v.RatePerDayCents, v.Status, now, now).Scan(&v.ID)
	return storeErr("create vehicle", err)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := r.scan(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("get vehicle", err)
	}
	return v, nil
}

func (r *vehicleRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	v, err := r.scan(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("lock vehicle", err)
	}
	return v, nil
}

func (r *vehicleRepository) PickAvailableByType(ctx context.Context, typeID int64) (*domain.Vehicle, error) {
	// SKIP LOCKED lets two concurrent fulfillments of the same type
	// pick different vehicles instead of queueing on the same row.
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
	          WHERE type_id = $1 AND status = $2
	          ORDER BY id LIMIT 1 FOR UPDATE SKIP LOCKED`
	v, err := r.scan(r.q.QueryRowContext(ctx, query, typeID, domain.VehicleStatusAvailable))
	if err != nil {
		return nil, storeErr("pick available vehicle", err)
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET type_id=$1, make=$2, model=$3, year=$4, plate_no=$5, rate_per_day_cents=$6, updated_on=$7 WHERE id=$8`
	res, err := r.q.ExecContext(ctx, query, v.TypeID, v.Make, v.Model, v.Year, v.PlateNo, v.RatePerDayCents, time.Now(), v.ID)
	if err != nil {
		return storeErr("update vehicle", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("vehicle %d does not exist", v.ID)
	}
	return nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3`
	res, err := r.q.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return storeErr("update vehicle status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("vehicle %d does not exist", id)
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete vehicle", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("vehicle %d does not exist", id)
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	query := `SELECT v.id, v.type_id, v.make, v.model, v.year, v.plate_no, v.rate_per_day_cents, v.status, v.created_on, v.updated_on, vt.name
	          FROM vehicles v JOIN vehicle_types vt ON v.type_id = vt.id WHERE 1=1`
	args := []any{}
	idx := 1

	if filter.TypeName != "" {
		query += fmt.Sprintf(" AND vt.name = $%d", idx)
		args = append(args, filter.TypeName)
		idx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND v.status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.Year != 0 {
		query += fmt.Sprintf(" AND v.year = $%d", idx)
		args = append(args, filter.Year)
		idx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (v.make ILIKE $%d OR v.model ILIKE $%d OR v.plate_no ILIKE $%d)", idx, idx, idx)
		args = append(args, "%"+filter.Search+"%")
		idx++
	}
	query += " ORDER BY v.rate_per_day_cents ASC, v.id ASC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list vehicles", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.TypeID, &v.Make, &v.Model, &v.Year, &v.PlateNo, &v.RatePerDayCents, &v.Status, &v.CreatedOn, &v.UpdatedOn, &v.TypeName); err != nil {
			return nil, storeErr("scan vehicle", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, storeErr("list vehicles", rows.Err())
}

func (r *vehicleRepository) CountByStatus(ctx context.Context) (map[domain.VehicleStatus]int64, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT status, COUNT(*) FROM vehicles GROUP BY status`)
	if err != nil {
		return nil, storeErr("count vehicles", err)
	}
	defer rows.Close()

	counts := map[domain.VehicleStatus]int64{}
	for rows.Next() {
		var status domain.VehicleStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, storeErr("scan vehicle count", err)
		}
		counts[status] = n
	}
	return counts, storeErr("count vehicles", rows.Err())
}

type vehicleTypeRepository struct {
	q repository.Querier
}

func NewVehicleTypeRepository(q repository.Querier) repository.VehicleTypeRepository {
	return &vehicleTypeRepository{q: q}
}

func (r *vehicleTypeRepository) GetByID(ctx context.Context, id int64) (*domain.VehicleType, error) {
	vt := &domain.VehicleType{}
	query := `SELECT id, name, description FROM vehicle_types WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&vt.ID, &vt.Name, &vt.Description)
	if err != nil {
		return nil, storeErr("get vehicle type", err)
	}
	return vt, nil
}

func (r *vehicleTypeRepository) List(ctx context.Context) ([]domain.VehicleType, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, description FROM vehicle_types ORDER BY name`)
	if err != nil {
		return nil, storeErr("list vehicle types", err)
	}
	defer rows.Close()

	var types []domain.VehicleType
	for rows.Next() {
		var vt domain.VehicleType
		if err := rows.Scan(&vt.ID, &vt.Name, &vt.Description); err != nil {
			return nil, storeErr("scan vehicle type", err)
		}
		types = append(types, vt)
	}
	return types, storeErr("list vehicle types", rows.Err())
}
