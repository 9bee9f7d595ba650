package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/credentials"
	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

// Caller identifies the authenticated account on whose behalf an
// authorization-sensitive operation runs. The transport layer builds it
// from the verified token.
type Caller struct {
	AccountID string
	IsAdmin   bool
}

// Allows reports whether the caller may act on a resource owned by the
// given account: the owner themselves, or any admin.
func (c Caller) Allows(ownerID string) bool {
	return c.IsAdmin || c.AccountID == ownerID
}

// Facade is the single entry point to the business layer. It aggregates
// the per-entity services behind one surface so the transport and the
// CLI depend on exactly one type.
type Facade struct {
	accounts  *AccountService
	listings  *ListingService
	amenities *AmenityService
	reviews   *ReviewService
}

// Repositories bundles the storage dependencies of the facade.
type Repositories struct {
	Accounts  repository.AccountRepository
	Listings  repository.ListingRepository
	Amenities repository.AmenityRepository
	Reviews   repository.ReviewRepository
	Tx        repository.TxManager
}

// NewFacade wires the per-entity services over a repository set.
func NewFacade(
	repos Repositories,
	creds *credentials.Manager,
	cache repository.Cache,
	logger zerolog.Logger,
) *Facade {
	relations := NewRelations(repos.Amenities, logger)
	return &Facade{
		accounts:  NewAccountService(repos.Accounts, creds, logger),
		listings:  NewListingService(repos.Listings, repos.Accounts, relations, repos.Tx, logger),
		amenities: NewAmenityService(repos.Amenities, logger),
		reviews:   NewReviewService(repos.Reviews, repos.Listings, repos.Accounts, relations, repos.Tx, cache, logger),
	}
}

// Accounts

func (f *Facade) CreateAccount(ctx context.Context, payload map[string]any) (*domain.Account, error) {
	return f.accounts.Create(ctx, payload)
}

func (f *Facade) UpdateAccount(ctx context.Context, id string, payload map[string]any) (*domain.Account, error) {
	return f.accounts.Update(ctx, id, payload)
}

func (f *Facade) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return f.accounts.Get(ctx, id)
}

func (f *Facade) GetAccountByEmail(ctx context.Context, email any) (*domain.Account, error) {
	return f.accounts.GetByEmail(ctx, email)
}

func (f *Facade) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return f.accounts.List(ctx)
}

func (f *Facade) Authenticate(ctx context.Context, email, password any) (*domain.Account, error) {
	return f.accounts.Authenticate(ctx, email, password)
}

// Listings

func (f *Facade) CreateListing(ctx context.Context, payload map[string]any) (*domain.Listing, error) {
	return f.listings.Create(ctx, payload)
}

func (f *Facade) UpdateListing(ctx context.Context, id string, payload map[string]any, caller Caller) (*domain.Listing, error) {
	return f.listings.Update(ctx, id, payload, caller)
}

func (f *Facade) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	return f.listings.Get(ctx, id)
}

func (f *Facade) ListListings(ctx context.Context) ([]*domain.Listing, error) {
	return f.listings.List(ctx)
}

func (f *Facade) GetListingsByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	return f.listings.GetByOwner(ctx, ownerID)
}

// Amenities

func (f *Facade) CreateAmenity(ctx context.Context, payload map[string]any) (*domain.Amenity, error) {
	return f.amenities.Create(ctx, payload)
}

func (f *Facade) UpdateAmenity(ctx context.Context, id string, payload map[string]any) (*domain.Amenity, error) {
	return f.amenities.Update(ctx, id, payload)
}

func (f *Facade) GetAmenity(ctx context.Context, id string) (*domain.Amenity, error) {
	return f.amenities.Get(ctx, id)
}

func (f *Facade) ListAmenities(ctx context.Context) ([]*domain.Amenity, error) {
	return f.amenities.List(ctx)
}

// Reviews

func (f *Facade) CreateReview(ctx context.Context, payload map[string]any) (*domain.Review, error) {
	return f.reviews.Create(ctx, payload)
}

func (f *Facade) UpdateReview(ctx context.Context, id string, payload map[string]any, caller Caller) (*domain.Review, error) {
	return f.reviews.Update(ctx, id, payload, caller)
}

func (f *Facade) DeleteReview(ctx context.Context, id string, caller Caller) error {
	return f.reviews.Delete(ctx, id, caller)
}

func (f *Facade) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	return f.reviews.Get(ctx, id)
}

func (f *Facade) ListReviews(ctx context.Context) ([]*domain.Review, error) {
	return f.reviews.List(ctx)
}

func (f *Facade) GetReviewsByListing(ctx context.Context, listingID string) ([]*domain.Review, error) {
	return f.reviews.GetByListing(ctx, listingID)
}

func (f *Facade) GetReviewsByAuthor(ctx context.Context, authorID string) ([]*domain.Review, error) {
	return f.reviews.GetByAuthor(ctx, authorID)
}

func (f *Facade) AverageRating(ctx context.Context, listingID string) (float64, error) {
	return f.reviews.AverageRating(ctx, listingID)
}
