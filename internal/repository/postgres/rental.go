package postgres

import (
	"context"
	"database/sql"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
)

type rentalRepository struct {
	q repository.Querier
}

func NewRentalRepository(q repository.Querier) repository.RentalRepository {
	return &rentalRepository{q: q}
}

const rentalColumns = `id, vehicle_id, customer_id, staff_id, start_date, due_date, return_date, total_amount_cents, fine_amount_cents, status, created_on, updated_on`

func scanRental(row *sql.Row) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.VehicleID, &rt.CustomerID, &rt.StaffID, &rt.StartDate, &rt.DueDate, &rt.ReturnDate, &rt.TotalAmountCents, &rt.FineAmountCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (vehicle_id, customer_id, staff_id, start_date, due_date, total_amount_cents, fine_amount_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	err := r.q.QueryRowContext(ctx, query, rt.VehicleID, rt.CustomerID, rt.StaffID, rt.StartDate, rt.DueDate, rt.TotalAmountCents, rt.FineAmountCents, rt.Status, now, now).Scan(&rt.ID)
	return storeErr("create rental", err)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("get rental", err)
	}
	return rt, nil
}

func (r *rentalRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`
	rt, err := scanRental(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("lock rental", err)
	}
	return rt, nil
}

func (r *rentalRepository) CountOverlapping(ctx context.Context, vehicleID int64, start, due time.Time) (int64, error) {
	// Closed-interval overlap: existing.start <= due AND existing.due >= start.
	query := `SELECT COUNT(*) FROM rentals
	          WHERE vehicle_id = $1 AND status = $2 AND start_date <= $3 AND due_date >= $4`
	var n int64
	err := r.q.QueryRowContext(ctx, query, vehicleID, domain.RentalStatusActive, due, start).Scan(&n)
	if err != nil {
		return 0, storeErr("count overlapping rentals", err)
	}
	return n, nil
}

func (r *rentalRepository) HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM rentals WHERE vehicle_id = $1 AND status = $2)`
	var exists bool
	err := r.q.QueryRowContext(ctx, query, vehicleID, domain.RentalStatusActive).Scan(&exists)
	if err != nil {
		return false, storeErr("check active rental", err)
	}
	return exists, nil
}

func (r *rentalRepository) Complete(ctx context.Context, id int64, returnDate time.Time, fineCents int64) error {
	query := `UPDATE rentals SET return_date=$1, fine_amount_cents=$2, status=$3, updated_on=$4 WHERE id=$5 AND status=$6`
	res, err := r.q.ExecContext(ctx, query, returnDate, fineCents, domain.RentalStatusCompleted, time.Now(), id, domain.RentalStatusActive)
	if err != nil {
		return storeErr("complete rental", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Conflictf("rental %d is not active", id)
	}
	return nil
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int64, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE customer_id = $1`
	args := []any{customerID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY start_date DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list rentals", err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.VehicleID, &rt.CustomerID, &rt.StaffID, &rt.StartDate, &rt.DueDate, &rt.ReturnDate, &rt.TotalAmountCents, &rt.FineAmountCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, storeErr("scan rental", err)
		}
		rentals = append(rentals, rt)
	}
	return rentals, storeErr("list rentals", rows.Err())
}

func (r *rentalRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE vehicle_id = $1 ORDER BY start_date DESC`
	rows, err := r.q.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, storeErr("list rentals by vehicle", err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.VehicleID, &rt.CustomerID, &rt.StaffID, &rt.StartDate, &rt.DueDate, &rt.ReturnDate, &rt.TotalAmountCents, &rt.FineAmountCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, storeErr("scan rental", err)
		}
		rentals = append(rentals, rt)
	}
	return rentals, storeErr("list rentals by vehicle", rows.Err())
}

func (r *rentalRepository) TotalSpending(ctx context.Context, customerID int64) (int64, error) {
	query := `SELECT COALESCE(SUM(total_amount_cents + fine_amount_cents), 0) FROM rentals
	          WHERE customer_id = $1 AND status = $2`
	var total int64
	err := r.q.QueryRowContext(ctx, query, customerID, domain.RentalStatusCompleted).Scan(&total)
	if err != nil {
		return 0, storeErr("total spending", err)
	}
	return total, nil
}

func (r *rentalRepository) MonthlyRevenue(ctx context.Context, month time.Month, year int) (int64, error) {
	// Revenue is keyed on the return date and includes fines.
	query := `SELECT COALESCE(SUM(total_amount_cents + fine_amount_cents), 0) FROM rentals
	          WHERE status = $1
	            AND EXTRACT(MONTH FROM return_date) = $2
	            AND EXTRACT(YEAR FROM return_date) = $3`
	var total int64
	err := r.q.QueryRowContext(ctx, query, domain.RentalStatusCompleted, int(month), year).Scan(&total)
	if err != nil {
		return 0, storeErr("monthly revenue", err)
	}
	return total, nil
}

func (r *rentalRepository) DailyRevenue(ctx context.Context, day time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(total_amount_cents + fine_amount_cents), 0) FROM rentals
	          WHERE status = $1 AND DATE(return_date) = DATE($2)`
	var total int64
	err := r.q.QueryRowContext(ctx, query, domain.RentalStatusCompleted, day).Scan(&total)
	if err != nil {
		return 0, storeErr("daily revenue", err)
	}
	return total, nil
}
