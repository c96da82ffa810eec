package postgres

import (
	"context"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
)

type customerRepository struct {
	q repository.Querier
}

func NewCustomerRepository(q repository.Querier) repository.CustomerRepository {
	return &customerRepository{q: q}
}

const customerColumns = `id, name, email, phone, license_no, password_hash, created_on, updated_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, email, phone, license_no, password_hash, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	err := r.q.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.LicenseNo, c.PasswordHash, now, now).Scan(&c.ID)
	return storeErr("create customer", err)
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.LicenseNo, &c.PasswordHash, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, storeErr("get customer", err)
	}
	return c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	err := r.q.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.LicenseNo, &c.PasswordHash, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, storeErr("get customer by email", err)
	}
	return c, nil
}

func (r *customerRepository) ExistsByEmailOrLicense(ctx context.Context, email, licenseNo string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1 OR license_no = $2)`
	var exists bool
	err := r.q.QueryRowContext(ctx, query, email, licenseNo).Scan(&exists)
	if err != nil {
		return false, storeErr("check customer exists", err)
	}
	return exists, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, email=$2, phone=$3, license_no=$4, updated_on=$5 WHERE id=$6`
	res, err := r.q.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.LicenseNo, time.Now(), c.ID)
	if err != nil {
		return storeErr("update customer", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("customer %d does not exist", c.ID)
	}
	return nil
}

func (r *customerRepository) Search(ctx context.Context, search string) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []any{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR email ILIKE $1 OR license_no ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("search customers", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.LicenseNo, &c.PasswordHash, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, storeErr("scan customer", err)
		}
		customers = append(customers, c)
	}
	return customers, storeErr("search customers", rows.Err())
}

type staffRepository struct {
	q repository.Querier
}

func NewStaffRepository(q repository.Querier) repository.StaffRepository {
	return &staffRepository{q: q}
}

func (r *staffRepository) Create(ctx context.Context, s *domain.Staff) error {
	query := `INSERT INTO staff (name, role, email, phone) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.q.QueryRowContext(ctx, query, s.Name, s.Role, s.Email, s.Phone).Scan(&s.ID)
	return storeErr("create staff", err)
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	s := &domain.Staff{}
	query := `SELECT id, name, role, email, phone FROM staff WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Role, &s.Email, &s.Phone)
	if err != nil {
		return nil, storeErr("get staff", err)
	}
	return s, nil
}

func (r *staffRepository) GetByName(ctx context.Context, name string) (*domain.Staff, error) {
	s := &domain.Staff{}
	query := `SELECT id, name, role, email, phone FROM staff WHERE name = $1`
	err := r.q.QueryRowContext(ctx, query, name).Scan(&s.ID, &s.Name, &s.Role, &s.Email, &s.Phone)
	if err != nil {
		return nil, storeErr("get staff by name", err)
	}
	return s, nil
}
