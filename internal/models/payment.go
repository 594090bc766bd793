package models

import "time"

// Payment is money received against a customer's tab. Overpayment is allowed;
// the balance computation clamps at zero.
type Payment struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"`
	Amount     float64   `json:"amount"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreatePaymentRequest is the request body for recording a payment.
type CreatePaymentRequest struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}
