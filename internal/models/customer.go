package models

import "time"

type Customer struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	CreditLimit float64   `json:"credit_limit"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCustomerRequest represents the request body for registering a customer.
// CreditLimit is optional; when omitted the configured default limit applies
// at registration time.
type CreateCustomerRequest struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	CreditLimit *float64 `json:"credit_limit"`
}

// UpdateCustomerRequest represents the request body for updating a customer.
// All mutable fields (name, phone, credit limit) are replaced.
type UpdateCustomerRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	CreditLimit float64 `json:"credit_limit"`
}
