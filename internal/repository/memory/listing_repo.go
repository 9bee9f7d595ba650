package memory

import (
	"context"
	"slices"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

type listingRecord struct {
	listing domain.Listing
}

// cloneListing copies the listing including its link slices, so stored
// state and caller state never alias each other.
func cloneListing(l *domain.Listing) domain.Listing {
	c := *l
	c.AmenityIDs = slices.Clone(l.AmenityIDs)
	c.ReviewIDs = slices.Clone(l.ReviewIDs)
	return c
}

// listingRepository implements repository.ListingRepository in memory.
type listingRepository struct {
	store *Store
}

// NewListingRepository creates an in-memory listing repository.
func NewListingRepository(store *Store) repository.ListingRepository {
	return &listingRepository{store: store}
}

func (r *listingRepository) Add(ctx context.Context, listing *domain.Listing) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	r.store.listings[listing.ID] = &listingRecord{listing: cloneListing(listing)}
	return nil
}

func (r *listingRepository) Get(ctx context.Context, id string) (*domain.Listing, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	rec, ok := r.store.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	listing := cloneListing(&rec.listing)
	return &listing, nil
}

func (r *listingRepository) GetAll(ctx context.Context) ([]*domain.Listing, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	listings := make([]*domain.Listing, 0, len(r.store.listings))
	for _, rec := range r.store.listings {
		listing := cloneListing(&rec.listing)
		listings = append(listings, &listing)
	}
	return listings, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.listings[listing.ID]; !ok {
		return domain.ErrListingNotFound
	}
	r.store.listings[listing.ID] = &listingRecord{listing: cloneListing(listing)}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.store.listings, id)
	return nil
}

func (r *listingRepository) GetByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	listings := []*domain.Listing{}
	for _, rec := range r.store.listings {
		if rec.listing.OwnerID == ownerID {
			listing := cloneListing(&rec.listing)
			listings = append(listings, &listing)
		}
	}
	return listings, nil
}

func (r *listingRepository) GetByTitleAndOwner(ctx context.Context, title, ownerID string) (*domain.Listing, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	for _, rec := range r.store.listings {
		if rec.listing.Title == title && rec.listing.OwnerID == ownerID {
			listing := cloneListing(&rec.listing)
			return &listing, nil
		}
	}
	return nil, domain.ErrListingNotFound
}
