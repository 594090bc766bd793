package repositories

import (
	"context"
	"database/sql"

	"fiado-backend/internal/models"
	"fiado-backend/internal/timeutil"
)

type PurchaseRepository struct {
	DB *sql.DB
}

func NewPurchaseRepository(db *sql.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

// Create records a credit purchase. Amount validation happens in the service
// layer; the timestamp defaults to now when unset.
func (r *PurchaseRepository) Create(ctx context.Context, p *models.Purchase) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = timeutil.Now()
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO purchases(customer_id, description, amount, settled, created_at)
         VALUES(?, ?, ?, 0, ?)`,
		p.CustomerID, p.Description, p.Amount, timeutil.FormatStore(p.CreatedAt),
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

// ListByCustomer returns all purchases for a customer, newest first.
func (r *PurchaseRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Purchase, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, customer_id, description, amount, settled, created_at
         FROM purchases
         WHERE customer_id = ?
         ORDER BY created_at DESC, id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		var p models.Purchase
		var settled int
		var createdAt string
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Description, &p.Amount, &settled, &createdAt); err != nil {
			return nil, err
		}
		p.Settled = settled == 1
		ts, err := timeutil.ParseStore(createdAt)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = ts
		purchases = append(purchases, &p)
	}
	return purchases, rows.Err()
}
