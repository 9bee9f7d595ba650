package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is one account's opinion of one listing.
//
// AuthorID and ListingID are immutable after creation; only text and
// rating may change. An account may hold at most one review per listing
// and may never review its own listing - both rules are enforced by the
// facade, not here.
type Review struct {
	// ID is the unique identifier (UUID v4, immutable, set at creation).
	ID string `json:"id"`

	// Text is the review body. Non-empty, at most 500 characters.
	Text string `json:"text"`

	// Rating is an integer between 1 and 5 inclusive.
	Rating int `json:"rating"`

	// AuthorID references the authoring account.
	AuthorID string `json:"author_id"`

	// ListingID references the reviewed listing.
	ListingID string `json:"listing_id"`

	// CreatedAt is the timestamp when the review was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the review was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReview creates a new Review with a generated id and timestamps.
func NewReview(authorID, listingID, text string, rating int) *Review {
	now := time.Now().UTC()
	return &Review{
		ID:        uuid.NewString(),
		Text:      text,
		Rating:    rating,
		AuthorID:  authorID,
		ListingID: listingID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes the updated-at timestamp.
func (r *Review) Touch() {
	r.UpdatedAt = time.Now().UTC()
}
