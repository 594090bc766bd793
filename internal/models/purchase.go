package models

import "time"

// Purchase is a credit sale recorded against a customer's tab.
// Settled marks a purchase as paid off; no operation toggles it today, so
// every purchase counts toward the balance. Kept so a future settlement
// operation only needs the missing UPDATE.
type Purchase struct {
	ID          int       `json:"id"`
	CustomerID  int       `json:"customer_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Settled     bool      `json:"settled"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePurchaseRequest is the request body for recording a credit purchase.
type CreatePurchaseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}
