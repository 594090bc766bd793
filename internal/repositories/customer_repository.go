package repositories

import (
	"context"
	"database/sql"
	"errors"

	"fiado-backend/internal/models"
	"fiado-backend/internal/timeutil"
)

type CustomerRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = timeutil.Now()
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO customers(name, phone, credit_limit, active, created_at)
         VALUES(?, ?, ?, 1, ?)`,
		c.Name, c.Phone, c.CreditLimit, timeutil.FormatStore(c.CreatedAt),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = int(id)
	c.Active = true
	return nil
}

// Get returns a customer by id, active or not.
func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, name, phone, credit_limit, active, created_at
         FROM customers WHERE id = ?`, id)

	customer, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrCustomerNotFound
	}
	return customer, err
}

// Find returns active customers whose name or phone contains term
// (case-insensitive), ordered by name. An empty term returns all active
// customers.
func (r *CustomerRepository) Find(ctx context.Context, term string) ([]*models.Customer, error) {
	var rows *sql.Rows
	var err error

	if term != "" {
		like := "%" + term + "%"
		rows, err = r.DB.QueryContext(ctx,
			`SELECT id, name, phone, credit_limit, active, created_at
             FROM customers
             WHERE active = 1 AND (name LIKE ? OR phone LIKE ?)
             ORDER BY name ASC`, like, like)
	} else {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT id, name, phone, credit_limit, active, created_at
             FROM customers WHERE active = 1 ORDER BY name ASC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

// Update replaces the mutable fields of a customer. Unknown ids are a silent
// no-op; the affected-row count is returned so callers can harden the
// contract later.
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE customers SET name = ?, phone = ?, credit_limit = ?
         WHERE id = ?`,
		c.Name, c.Phone, c.CreditLimit, c.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Deactivate soft-deletes a customer. Idempotent; never errors on unknown
// ids. There is no reactivation operation.
func (r *CustomerRepository) Deactivate(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE customers SET active = 0 WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var c models.Customer
	var active int
	var createdAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.CreditLimit, &active, &createdAt); err != nil {
		return nil, err
	}
	c.Active = active == 1
	ts, err := timeutil.ParseStore(createdAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = ts
	return &c, nil
}
