// Package credentials hashes and verifies account passwords.
//
// Plaintext passwords pass through a strength policy before hashing and
// are never stored, logged, or echoed back. The stored hash is a bcrypt
// hash and is not reversible.
package credentials

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/prn-tf/hearth/internal/domain"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 12

// Manager hashes and verifies passwords with a configurable bcrypt cost.
type Manager struct {
	cost int
}

// NewManager creates a Manager. A cost outside bcrypt's valid range
// falls back to bcrypt.DefaultCost.
func NewManager(cost int) *Manager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Manager{cost: cost}
}

// Hash enforces the strength policy and returns the bcrypt hash of the
// plaintext. Fails with domain.ErrWeakPassword naming the violated rule,
// or domain.ErrTypeMismatch for non-textual input.
func (m *Manager) Hash(plaintext any) (string, error) {
	s, ok := plaintext.(string)
	if !ok {
		return "", fmt.Errorf("%w: password must be a string", domain.ErrTypeMismatch)
	}
	s = strings.TrimSpace(s)
	if err := CheckPolicy(s); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s), m.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the plaintext matches the stored hash.
// Fails with domain.ErrPasswordUnset if no hash is stored and
// domain.ErrTypeMismatch for non-textual input. A mismatch is a false
// result, not an error.
func (m *Manager) Verify(hash string, plaintext any) (bool, error) {
	if hash == "" {
		return false, domain.ErrPasswordUnset
	}
	s, ok := plaintext.(string)
	if !ok {
		return false, fmt.Errorf("%w: password must be a string", domain.ErrTypeMismatch)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(s)); err != nil {
		return false, nil
	}
	return true, nil
}

// CheckPolicy validates the password strength rules:
// at least 12 characters, one lowercase letter, one uppercase letter,
// one digit, and one non-alphanumeric symbol.
func CheckPolicy(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrWeakPassword)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", domain.ErrWeakPassword, MinPasswordLength)
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsSpace(r):
			hasSymbol = true
		}
	}

	switch {
	case !hasLower:
		return fmt.Errorf("%w: must contain at least one lowercase letter", domain.ErrWeakPassword)
	case !hasUpper:
		return fmt.Errorf("%w: must contain at least one uppercase letter", domain.ErrWeakPassword)
	case !hasDigit:
		return fmt.Errorf("%w: must contain at least one number", domain.ErrWeakPassword)
	case !hasSymbol:
		return fmt.Errorf("%w: must contain at least one special character", domain.ErrWeakPassword)
	}
	return nil
}
