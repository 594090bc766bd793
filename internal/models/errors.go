package models

import "errors"

var (
	// ErrCustomerNotFound is returned for operations that need an existing
	// customer record.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInvalidAmount is returned when a purchase or payment amount is not
	// strictly positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrNameRequired is returned when registering or updating a customer
	// with an empty name.
	ErrNameRequired = errors.New("customer name is required")

	// ErrNegativeLimit is returned when a credit limit is negative.
	ErrNegativeLimit = errors.New("credit limit cannot be negative")
)
