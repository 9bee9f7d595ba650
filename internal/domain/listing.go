package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Listing represents a rentable place owned by exactly one account.
//
// Relations are held as id references, not object pointers: the owner is
// a non-owning reference, AmenityIDs is a many-to-many link set, and
// ReviewIDs is the back-link collection kept consistent by the
// relationship synchronizer in the service layer.
type Listing struct {
	// ID is the unique identifier (UUID v4, immutable, set at creation).
	ID string `json:"id"`

	// OwnerID references the owning account. Must resolve at creation.
	OwnerID string `json:"owner_id"`

	// Title is the listing title.
	// Constraints: non-empty, at most 100 characters, unique per owner
	// (case-sensitive exact match).
	Title string `json:"title"`

	// Description is the free-form description. Non-empty.
	Description string `json:"description"`

	// Price is the nightly price. Strictly positive.
	Price float64 `json:"price"`

	// Latitude of the place, in [-90, 90].
	Latitude float64 `json:"latitude"`

	// Longitude of the place, in [-180, 180].
	Longitude float64 `json:"longitude"`

	// AmenityIDs are the linked amenities (many-to-many).
	AmenityIDs []string `json:"amenity_ids"`

	// ReviewIDs are the back-links to reviews of this listing.
	// Maintained by the relationship synchronizer only.
	ReviewIDs []string `json:"review_ids"`

	// CreatedAt is the timestamp when the listing was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the listing was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewListing creates a new Listing with a generated id and timestamps.
// Fields are expected to be validated already.
func NewListing(ownerID, title, description string, price, latitude, longitude float64) *Listing {
	now := time.Now().UTC()
	return &Listing{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Price:       price,
		Latitude:    latitude,
		Longitude:   longitude,
		AmenityIDs:  []string{},
		ReviewIDs:   []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasAmenity reports whether the amenity is linked to this listing.
func (l *Listing) HasAmenity(amenityID string) bool {
	return slices.Contains(l.AmenityIDs, amenityID)
}

// HasReview reports whether the review back-link is present.
func (l *Listing) HasReview(reviewID string) bool {
	return slices.Contains(l.ReviewIDs, reviewID)
}

// Touch refreshes the updated-at timestamp.
func (l *Listing) Touch() {
	l.UpdatedAt = time.Now().UTC()
}
