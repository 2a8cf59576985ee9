package customer

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Common errors
var (
	ErrEmptyCustomerID = errors.New("customer id cannot be empty")
	ErrEmptyName       = errors.New("customer name cannot be empty")
	ErrEmptyEmail      = errors.New("customer email cannot be empty")
)

// Customer represents a borrower. Customers are immutable after creation in
// this system; only their loans change.
type Customer struct {
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewCustomer creates a customer with the given identity details
func NewCustomer(customerID, name, email, phone string) (*Customer, error) {
	if customerID == "" {
		return nil, ErrEmptyCustomerID
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if email == "" {
		return nil, ErrEmptyEmail
	}

	now := time.Now()
	return &Customer{
		CustomerID: customerID,
		Name:       name,
		Email:      email,
		Phone:      phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// NewAutoProvisioned creates a customer with placeholder identity derived
// from the id. Used when a loan is disbursed to an unknown customer and
// auto-provisioning is enabled; the generated identity is a convenience, not
// verified data.
func NewAutoProvisioned(customerID string) (*Customer, error) {
	if customerID == "" {
		return nil, ErrEmptyCustomerID
	}

	shortID := customerID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	now := time.Now()
	return &Customer{
		CustomerID: customerID,
		Name:       fmt.Sprintf("Auto-Generated Customer %s", shortID),
		Email:      fmt.Sprintf("%s@example.com", customerID),
		Phone:      fmt.Sprintf("+91%d", rand.Int63n(9_000_000_000)+1_000_000_000),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
