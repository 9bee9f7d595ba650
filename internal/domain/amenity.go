package domain

import (
	"time"

	"github.com/google/uuid"
)

// Amenity represents a named feature, e.g. "Wi-Fi".
//
// Amenity names carry no uniqueness constraint: duplicates by name are
// allowed, only id-level identity matters for linking into listings.
type Amenity struct {
	// ID is the unique identifier (UUID v4, immutable, set at creation).
	ID string `json:"id"`

	// Name of the amenity. Non-empty, trimmed, at most 50 characters.
	Name string `json:"name"`

	// CreatedAt is the timestamp when the amenity was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the amenity was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAmenity creates a new Amenity with a generated id and timestamps.
func NewAmenity(name string) *Amenity {
	now := time.Now().UTC()
	return &Amenity{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes the updated-at timestamp.
func (a *Amenity) Touch() {
	a.UpdatedAt = time.Now().UTC()
}
