package repositories

import (
	"context"
	"database/sql"

	"fiado-backend/internal/models"
	"fiado-backend/internal/timeutil"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// Create records a payment against a customer's tab. No balance check: the
// store accepts overpayment and the balance computation clamps at zero.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = timeutil.Now()
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO payments(customer_id, amount, note, created_at)
         VALUES(?, ?, ?, ?)`,
		p.CustomerID, p.Amount, p.Note, timeutil.FormatStore(p.CreatedAt),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	return nil
}

// ListByCustomer returns all payments for a customer, newest first.
func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Payment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, customer_id, amount, note, created_at
         FROM payments
         WHERE customer_id = ?
         ORDER BY created_at DESC, id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		var createdAt string
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Amount, &p.Note, &createdAt); err != nil {
			return nil, err
		}
		ts, err := timeutil.ParseStore(createdAt)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = ts
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}
