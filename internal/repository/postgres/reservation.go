package postgres

import (
	"context"
	"database/sql"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
)

type reservationRepository struct {
	q repository.Querier
}

func NewReservationRepository(q repository.Querier) repository.ReservationRepository {
	return &reservationRepository{q: q}
}

const reservationColumns = `id, customer_id, vehicle_type_id, res_date, start_date, end_date, status, rental_id`

func scanReservation(row *sql.Row) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	err := row.Scan(&res.ID, &res.CustomerID, &res.VehicleTypeID, &res.ResDate, &res.StartDate, &res.EndDate, &res.Status, &res.RentalID)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `INSERT INTO reservations (customer_id, vehicle_type_id, res_date, start_date, end_date, status)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.q.QueryRowContext(ctx, query, res.CustomerID, res.VehicleTypeID, res.ResDate, res.StartDate, res.EndDate, res.Status).Scan(&res.ID)
	return storeErr("create reservation", err)
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("get reservation", err)
	}
	return res, nil
}

func (r *reservationRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	res, err := scanReservation(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("lock reservation", err)
	}
	return res, nil
}

func (r *reservationRepository) SetStatus(ctx context.Context, id int64, status domain.ReservationStatus, rentalID *int64) error {
	query := `UPDATE reservations SET status=$1, rental_id=$2 WHERE id=$3`
	res, err := r.q.ExecContext(ctx, query, status, rentalID, id)
	if err != nil {
		return storeErr("update reservation status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("reservation %d does not exist", id)
	}
	return nil
}

func (r *reservationRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Reservation, error) {
	query := `SELECT r.id, r.customer_id, r.vehicle_type_id, r.res_date, r.start_date, r.end_date, r.status, r.rental_id, vt.name
	          FROM reservations r JOIN vehicle_types vt ON r.vehicle_type_id = vt.id
	          WHERE r.customer_id = $1 ORDER BY r.start_date DESC`
	return r.queryList(ctx, query, customerID)
}

func (r *reservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	query := `SELECT r.id, r.customer_id, r.vehicle_type_id, r.res_date, r.start_date, r.end_date, r.status, r.rental_id, vt.name
	          FROM reservations r JOIN vehicle_types vt ON r.vehicle_type_id = vt.id
	          ORDER BY r.start_date DESC`
	return r.queryList(ctx, query)
}

func (r *reservationRepository) queryList(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list reservations", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.CustomerID, &res.VehicleTypeID, &res.ResDate, &res.StartDate, &res.EndDate, &res.Status, &res.RentalID, &res.TypeName); err != nil {
			return nil, storeErr("scan reservation", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, storeErr("list reservations", rows.Err())
}

func (r *reservationRepository) ExpirePending(ctx context.Context, asOf time.Time) (int64, error) {
	query := `UPDATE reservations SET status=$1 WHERE status=$2 AND start_date < $3`
	res, err := r.q.ExecContext(ctx, query, domain.ReservationStatusExpired, domain.ReservationStatusPending, asOf)
	if err != nil {
		return 0, storeErr("expire reservations", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("expire reservations", err)
	}
	return n, nil
}
