package postgres

import (
	"context"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
)

type reportRepository struct {
	q repository.Querier
}

func NewReportRepository(q repository.Querier) repository.ReportRepository {
	return &reportRepository{q: q}
}

func (r *reportRepository) OverdueRentals(ctx context.Context, asOf time.Time) ([]repository.OverdueRental, error) {
	query := `SELECT r.id, r.vehicle_id, r.customer_id, r.staff_id, r.start_date, r.due_date, r.return_date,
	                 r.total_amount_cents, r.fine_amount_cents, r.status, r.created_on, r.updated_on,
	                 c.name, c.email, v.make, v.model, v.plate_no,
	                 GREATEST(0, DATE($2)::date - r.due_date::date) AS days_overdue
	          FROM rentals r
	          JOIN customers c ON r.customer_id = c.id
	          JOIN vehicles v ON r.vehicle_id = v.id
	          WHERE r.status = $1 AND r.due_date < $2
	          ORDER BY days_overdue DESC`
	rows, err := r.q.QueryContext(ctx, query, domain.RentalStatusActive, asOf)
	if err != nil {
		return nil, storeErr("overdue rentals", err)
	}
	defer rows.Close()

	var entries []repository.OverdueRental
	for rows.Next() {
		var e repository.OverdueRental
		rt := &e.Rental
		if err := rows.Scan(&rt.ID, &rt.VehicleID, &rt.CustomerID, &rt.StaffID, &rt.StartDate, &rt.DueDate, &rt.ReturnDate,
			&rt.TotalAmountCents, &rt.FineAmountCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn,
			&e.CustomerName, &e.Email, &e.Make, &e.Model, &e.PlateNo, &e.DaysOverdue); err != nil {
			return nil, storeErr("scan overdue rental", err)
		}
		entries = append(entries, e)
	}
	return entries, storeErr("overdue rentals", rows.Err())
}

func (r *reportRepository) RentalHistory(ctx context.Context, status domain.RentalStatus) ([]repository.RentalHistoryEntry, error) {
	query := `SELECT r.id, r.vehicle_id, r.customer_id, r.staff_id, r.start_date, r.due_date, r.return_date,
	                 r.total_amount_cents, r.fine_amount_cents, r.status, r.created_on, r.updated_on,
	                 c.name, v.make, v.model, v.plate_no, vt.name
	          FROM rentals r
	          JOIN customers c ON r.customer_id = c.id
	          JOIN vehicles v ON r.vehicle_id = v.id
	          JOIN vehicle_types vt ON v.type_id = vt.id`
	args := []any{}
	if status != "" {
		query += ` WHERE r.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY r.start_date DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("rental history", err)
	}
	defer rows.Close()

	var entries []repository.RentalHistoryEntry
	for rows.Next() {
		var e repository.RentalHistoryEntry
		rt := &e.Rental
		if err := rows.Scan(&rt.ID, &rt.VehicleID, &rt.CustomerID, &rt.StaffID, &rt.StartDate, &rt.DueDate, &rt.ReturnDate,
			&rt.TotalAmountCents, &rt.FineAmountCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn,
			&e.CustomerName, &e.Make, &e.Model, &e.PlateNo, &e.TypeName); err != nil {
			return nil, storeErr("scan rental history", err)
		}
		entries = append(entries, e)
	}
	return entries, storeErr("rental history", rows.Err())
}

func (r *reportRepository) MonthlyRevenueByType(ctx context.Context, month time.Month, year int) ([]repository.MonthlyRevenueLine, error) {
	query := `SELECT vt.name, COUNT(r.id),
	                 COALESCE(SUM(r.total_amount_cents), 0),
	                 COALESCE(SUM(r.fine_amount_cents), 0)
	          FROM rentals r
	          JOIN vehicles v ON r.vehicle_id = v.id
	          JOIN vehicle_types vt ON v.type_id = vt.id
	          WHERE r.status = $1
	            AND EXTRACT(MONTH FROM r.return_date) = $2
	            AND EXTRACT(YEAR FROM r.return_date) = $3
	          GROUP BY vt.name
	          ORDER BY vt.name`
	rows, err := r.q.QueryContext(ctx, query, domain.RentalStatusCompleted, int(month), year)
	if err != nil {
		return nil, storeErr("monthly revenue report", err)
	}
	defer rows.Close()

	var lines []repository.MonthlyRevenueLine
	for rows.Next() {
		var l repository.MonthlyRevenueLine
		if err := rows.Scan(&l.TypeName, &l.Rentals, &l.RevenueCents, &l.FinesCents); err != nil {
			return nil, storeErr("scan revenue line", err)
		}
		lines = append(lines, l)
	}
	return lines, storeErr("monthly revenue report", rows.Err())
}
