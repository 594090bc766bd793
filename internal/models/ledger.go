package models

import "time"

// HistoryKind identifies the source record of a history entry.
type HistoryKind string

const (
	HistoryKindPurchase HistoryKind = "purchase"
	HistoryKindPayment  HistoryKind = "payment"
)

// HistoryEntry is one row of a customer's merged audit trail. For payments,
// Description carries the payment note (possibly empty).
type HistoryEntry struct {
	Kind        HistoryKind `json:"kind"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	CreatedAt   time.Time   `json:"created_at"`
}

// DebtorSummary is one row of the customers-with-debt listing.
type DebtorSummary struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Balance float64 `json:"balance"`
}

// Statistics are the system-wide aggregates shown on the dashboard.
//
// TotalOutstanding applies the zero floor once, globally, over the raw sums.
// A customer who overpaid therefore pulls TotalOutstanding below the sum of
// per-customer balances. The divergence is inherited behavior; do not unify
// the two formulas.
type Statistics struct {
	ActiveCustomerCount int     `json:"active_customer_count"`
	TotalOutstanding    float64 `json:"total_outstanding"`
	TotalPurchases      float64 `json:"total_purchases"`
	TotalPayments       float64 `json:"total_payments"`
}
