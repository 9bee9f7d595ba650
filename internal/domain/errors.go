// Package domain contains the core business entities for Hearth.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ===========================================
	// Validation Errors
	// ===========================================

	// ErrTypeMismatch indicates a value of the wrong data type was supplied.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrConstraint indicates a value of the right type but outside its
	// allowed range or shape (empty, too long, out of bounds).
	ErrConstraint = errors.New("constraint violation")

	// ===========================================
	// Account Errors
	// ===========================================

	// ErrAccountNotFound indicates the requested account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailTaken indicates an account with the same email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates authentication failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWeakPassword indicates the password failed the strength policy.
	ErrWeakPassword = errors.New("weak password")

	// ErrPasswordUnset indicates verification was attempted against an
	// account that has no stored hash.
	ErrPasswordUnset = errors.New("password is not set")

	// ===========================================
	// Listing Errors
	// ===========================================

	// ErrListingNotFound indicates the requested listing does not exist.
	ErrListingNotFound = errors.New("listing not found")

	// ErrOwnerNotFound indicates the listing's owner does not resolve.
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrTitleTaken indicates the owner already has a listing with this title.
	ErrTitleTaken = errors.New("title already used by this owner")

	// ===========================================
	// Amenity Errors
	// ===========================================

	// ErrAmenityNotFound indicates the requested amenity does not exist.
	ErrAmenityNotFound = errors.New("amenity not found")

	// ===========================================
	// Review Errors
	// ===========================================

	// ErrReviewNotFound indicates the requested review does not exist.
	ErrReviewNotFound = errors.New("review not found")

	// ErrSelfReview indicates an account tried to review its own listing.
	ErrSelfReview = errors.New("cannot review your own listing")

	// ErrDuplicateReview indicates the author already reviewed this listing.
	ErrDuplicateReview = errors.New("listing already reviewed by this account")

	// ErrNoRatings indicates a listing has no reviews to average.
	ErrNoRatings = errors.New("no ratings")

	// ===========================================
	// Authorization Errors
	// ===========================================

	// ErrForbidden indicates the caller may not perform this operation.
	ErrForbidden = errors.New("forbidden")

	// ===========================================
	// Update Errors
	// ===========================================

	// ErrNoChanges indicates an update request that changes nothing observable.
	ErrNoChanges = errors.New("no changes")
)

// ValidationError wraps a validation failure with the offending field.
// It unwraps to either ErrTypeMismatch or ErrConstraint so callers can
// distinguish the two kinds with errors.Is.
type ValidationError struct {
	// Kind is ErrTypeMismatch or ErrConstraint.
	Kind error

	// Field is the human-readable field label (e.g. "First name").
	Field string

	// Reason describes the violated rule.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Unwrap returns the error kind for errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// newTypeError creates a type-mismatch validation error.
func newTypeError(field, reason string) *ValidationError {
	return &ValidationError{Kind: ErrTypeMismatch, Field: field, Reason: reason}
}

// newConstraintError creates a constraint-violation validation error.
func newConstraintError(field, reason string) *ValidationError {
	return &ValidationError{Kind: ErrConstraint, Field: field, Reason: reason}
}

// IsInvalidInput reports whether err is either validation kind.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrTypeMismatch) || errors.Is(err, ErrConstraint)
}
