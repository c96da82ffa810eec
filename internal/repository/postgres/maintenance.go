package postgres

import (
	"context"
	"database/sql"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
)

type maintenanceRepository struct {
	q repository.Querier
}

func NewMaintenanceRepository(q repository.Querier) repository.MaintenanceRepository {
	return &maintenanceRepository{q: q}
}

const maintenanceColumns = `id, vehicle_id, date, description, cost_cents, status`

func scanMaintenance(row *sql.Row) (*domain.Maintenance, error) {
	m := &domain.Maintenance{}
	err := row.Scan(&m.ID, &m.VehicleID, &m.Date, &m.Description, &m.CostCents, &m.Status)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) error {
	query := `INSERT INTO maintenance (vehicle_id, date, description, cost_cents, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.q.QueryRowContext(ctx, query, m.VehicleID, m.Date, m.Description, m.CostCents, m.Status).Scan(&m.ID)
	return storeErr("create maintenance", err)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int64) (*domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE id = $1`
	m, err := scanMaintenance(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("get maintenance", err)
	}
	return m, nil
}

func (r *maintenanceRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE id = $1 FOR UPDATE`
	m, err := scanMaintenance(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("lock maintenance", err)
	}
	return m, nil
}

func (r *maintenanceRepository) SetCompleted(ctx context.Context, id int64) error {
	query := `UPDATE maintenance SET status=$1 WHERE id=$2 AND status=$3`
	res, err := r.q.ExecContext(ctx, query, domain.MaintenanceStatusCompleted, id, domain.MaintenanceStatusInProgress)
	if err != nil {
		return storeErr("complete maintenance", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Conflictf("maintenance %d is not in progress", id)
	}
	return nil
}

func (r *maintenanceRepository) HasInProgressByVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM maintenance WHERE vehicle_id = $1 AND status = $2)`
	var exists bool
	err := r.q.QueryRowContext(ctx, query, vehicleID, domain.MaintenanceStatusInProgress).Scan(&exists)
	if err != nil {
		return false, storeErr("check open maintenance", err)
	}
	return exists, nil
}

func (r *maintenanceRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE vehicle_id = $1 ORDER BY date DESC`
	return r.queryList(ctx, query, vehicleID)
}

func (r *maintenanceRepository) List(ctx context.Context) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance ORDER BY date DESC`
	return r.queryList(ctx, query)
}

func (r *maintenanceRepository) queryList(ctx context.Context, query string, args ...any) ([]domain.Maintenance, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list maintenance", err)
	}
	defer rows.Close()

	var records []domain.Maintenance
	for rows.Next() {
		var m domain.Maintenance
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.Date, &m.Description, &m.CostCents, &m.Status); err != nil {
			return nil, storeErr("scan maintenance", err)
		}
		records = append(records, m)
	}
	return records, storeErr("list maintenance", rows.Err())
}
