package repositories

import (
	"context"
	"database/sql"

	"fiado-backend/internal/models"
	"fiado-backend/internal/timeutil"
)

// LedgerRepository owns the derived views over purchases and payments:
// balances, merged histories and system-wide statistics.
type LedgerRepository struct {
	DB *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

// GetBalance returns the customer's outstanding balance:
// max(0, unsettled purchases - payments). One statement, so the two sums
// always come from the same snapshot of the store.
//
// Only purchases with settled = 0 count. No code path sets the flag today,
// so in practice every purchase counts.
func (r *LedgerRepository) GetBalance(ctx context.Context, customerID int) (float64, error) {
	query := `
		SELECT MAX(0,
			COALESCE((SELECT SUM(amount) FROM purchases WHERE customer_id = ? AND settled = 0), 0) -
			COALESCE((SELECT SUM(amount) FROM payments  WHERE customer_id = ?), 0)
		)
	`
	var balance float64
	if err := r.DB.QueryRowContext(ctx, query, customerID, customerID).Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}

// GetHistory merges a customer's purchases and payments into one audit
// trail, newest first. Ties at equal timestamps break on kind
// ('purchase' sorts before 'payment'), then on id, newest first, so the
// order is deterministic rather than engine-dependent.
func (r *LedgerRepository) GetHistory(ctx context.Context, customerID int) ([]models.HistoryEntry, error) {
	query := `
		SELECT 'purchase' AS kind, description, amount, created_at, id
		FROM purchases WHERE customer_id = ?
		UNION ALL
		SELECT 'payment' AS kind, note AS description, amount, created_at, id
		FROM payments WHERE customer_id = ?
		ORDER BY created_at DESC, kind DESC, id DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, customerID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var createdAt string
		var id int
		if err := rows.Scan(&e.Kind, &e.Description, &e.Amount, &createdAt, &id); err != nil {
			return nil, err
		}
		ts, err := timeutil.ParseStore(createdAt)
		if err != nil {
			return nil, err
		}
		e.CreatedAt = ts
		history = append(history, e)
	}
	return history, rows.Err()
}

// GetStatistics returns the system-wide aggregates. The outstanding total
// floors once over the global sums, which deliberately diverges from the
// per-customer floor in GetBalance whenever any single customer has overpaid.
func (r *LedgerRepository) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM customers WHERE active = 1),
			COALESCE((SELECT SUM(amount) FROM purchases WHERE settled = 0), 0),
			COALESCE((SELECT SUM(amount) FROM payments), 0)
	`
	var s models.Statistics
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&s.ActiveCustomerCount, &s.TotalPurchases, &s.TotalPayments,
	)
	if err != nil {
		return nil, err
	}
	s.TotalOutstanding = s.TotalPurchases - s.TotalPayments
	if s.TotalOutstanding < 0 {
		s.TotalOutstanding = 0
	}
	return &s, nil
}

// GetDebtors returns active customers with a positive balance, in the same
// name order as CustomerRepository.Find.
func (r *LedgerRepository) GetDebtors(ctx context.Context) ([]models.DebtorSummary, error) {
	query := `
		SELECT c.id, c.name, c.phone,
			COALESCE((SELECT SUM(amount) FROM purchases WHERE customer_id = c.id AND settled = 0), 0) -
			COALESCE((SELECT SUM(amount) FROM payments  WHERE customer_id = c.id), 0) AS balance
		FROM customers c
		WHERE c.active = 1
		ORDER BY c.name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var debtors []models.DebtorSummary
	for rows.Next() {
		var d models.DebtorSummary
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Balance); err != nil {
			return nil, err
		}
		if d.Balance > 0 {
			debtors = append(debtors, d)
		}
	}
	return debtors, rows.Err()
}

// CustomerExists reports whether a customer record exists, active or not.
// Purchases and payments must reference an existing customer.
func (r *LedgerRepository) CustomerExists(ctx context.Context, customerID int) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM customers WHERE id = ?`, customerID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
