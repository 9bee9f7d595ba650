package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered user of the platform.
// Accounts own listings and author reviews.
type Account struct {
	// ID is the unique identifier (UUID v4, immutable, set at creation).
	ID string `json:"id"`

	// FirstName is the account holder's first name.
	// Constraints: non-empty, at most 50 characters.
	FirstName string `json:"first_name"`

	// LastName is the account holder's last name.
	// Constraints: non-empty, at most 50 characters.
	LastName string `json:"last_name"`

	// Email is the globally unique, lower-cased email address.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account's password.
	// It is only ever set through the credentials manager and must
	// never appear in API responses or logs.
	PasswordHash string `json:"-"`

	// IsAdmin indicates administrative privileges.
	IsAdmin bool `json:"is_admin"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the account was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAccount creates a new Account with a generated id and timestamps.
// The caller provides already-validated fields and a hash from the
// credentials manager.
func NewAccount(firstName, lastName, email, passwordHash string) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Touch refreshes the updated-at timestamp.
func (a *Account) Touch() {
	a.UpdatedAt = time.Now().UTC()
}
