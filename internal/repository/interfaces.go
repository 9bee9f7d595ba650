// Package repository defines data access interfaces for Hearth.
// These interfaces abstract storage operations, allowing for different
// implementations (SQLite, PostgreSQL, in-memory for testing) while
// keeping the service layer clean.
//
// Every repository follows the same uniform contract: Add (an upsert,
// idempotent by id), Get, GetAll, Update, Delete, plus typed
// find-by-attribute methods. Repositories perform no validation and no
// cross-entity checks - those belong to the facade. A missing row yields
// the entity's not-found sentinel from the domain package, never a nil
// entity with a nil error.
package repository

import (
	"context"

	"github.com/prn-tf/hearth/internal/domain"
)

// =============================================================================
// Account Repository
// =============================================================================

// AccountRepository defines the interface for account data access.
type AccountRepository interface {
	// Add inserts the account, or overwrites it if the id already exists.
	Add(ctx context.Context, account *domain.Account) error

	// Get retrieves an account by id.
	Get(ctx context.Context, id string) (*domain.Account, error)

	// GetAll returns all accounts.
	GetAll(ctx context.Context) ([]*domain.Account, error)

	// Update persists changed fields of an existing account.
	Update(ctx context.Context, account *domain.Account) error

	// Delete removes an account by id.
	Delete(ctx context.Context, id string) error

	// GetByEmail retrieves an account by its normalized email.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// =============================================================================
// Listing Repository
// =============================================================================

// ListingRepository defines the interface for listing data access.
type ListingRepository interface {
	// Add inserts the listing, or overwrites it if the id already exists.
	// Amenity links are persisted as part of the listing.
	Add(ctx context.Context, listing *domain.Listing) error

	// Get retrieves a listing by id, including its amenity links and
	// review back-links.
	Get(ctx context.Context, id string) (*domain.Listing, error)

	// GetAll returns all listings.
	GetAll(ctx context.Context) ([]*domain.Listing, error)

	// Update persists changed fields and amenity links of an existing
	// listing.
	Update(ctx context.Context, listing *domain.Listing) error

	// Delete removes a listing by id.
	Delete(ctx context.Context, id string) error

	// GetByOwner returns all listings owned by the given account.
	GetByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error)

	// GetByTitleAndOwner retrieves the listing with this exact title and
	// owner, if any. Title matching is case-sensitive.
	GetByTitleAndOwner(ctx context.Context, title, ownerID string) (*domain.Listing, error)
}

// =============================================================================
// Amenity Repository
// =============================================================================

// AmenityRepository defines the interface for amenity data access.
type AmenityRepository interface {
	// Add inserts the amenity, or overwrites it if the id already exists.
	Add(ctx context.Context, amenity *domain.Amenity) error

	// Get retrieves an amenity by id.
	Get(ctx context.Context, id string) (*domain.Amenity, error)

	// GetAll returns all amenities.
	GetAll(ctx context.Context) ([]*domain.Amenity, error)

	// Update persists changed fields of an existing amenity.
	Update(ctx context.Context, amenity *domain.Amenity) error

	// Delete removes an amenity by id.
	Delete(ctx context.Context, id string) error

	// GetByIDs returns the amenities whose ids are present in the store.
	// Unresolved ids are simply absent from the result, not errors.
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Amenity, error)
}

// =============================================================================
// Review Repository
// =============================================================================

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// Add inserts the review, or overwrites it if the id already exists.
	Add(ctx context.Context, review *domain.Review) error

	// Get retrieves a review by id.
	Get(ctx context.Context, id string) (*domain.Review, error)

	// GetAll returns all reviews.
	GetAll(ctx context.Context) ([]*domain.Review, error)

	// Update persists changed fields of an existing review.
	Update(ctx context.Context, review *domain.Review) error

	// Delete removes a review by id.
	Delete(ctx context.Context, id string) error

	// GetByListing returns all reviews of the given listing.
	GetByListing(ctx context.Context, listingID string) ([]*domain.Review, error)

	// GetByAuthor returns all reviews written by the given account.
	GetByAuthor(ctx context.Context, authorID string) ([]*domain.Review, error)

	// GetByAuthorAndListing retrieves the author's review of the listing,
	// if any.
	GetByAuthorAndListing(ctx context.Context, authorID, listingID string) (*domain.Review, error)
}

// =============================================================================
// Transaction Support
// =============================================================================

// TxManager executes multi-entity mutations atomically. Implementations
// carry the transaction in the context so repositories participate
// transparently.
type TxManager interface {
	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
