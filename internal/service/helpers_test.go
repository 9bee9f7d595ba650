package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/credentials"
	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
	"github.com/prn-tf/hearth/internal/repository/memory"
)

// fakeCache is an in-test cache that records invalidations.
type fakeCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.items[key]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return value, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	c.deletes++
	return nil
}

// testEnv bundles a facade over the in-memory backend with direct
// access to its parts.
type testEnv struct {
	facade *Facade
	store  *memory.Store
	cache  *fakeCache
	creds  *credentials.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	cache := newFakeCache()
	// MinCost keeps the bcrypt work factor cheap in tests.
	creds := credentials.NewManager(4)

	facade := NewFacade(Repositories{
		Accounts:  memory.NewAccountRepository(store),
		Listings:  memory.NewListingRepository(store),
		Amenities: memory.NewAmenityRepository(store),
		Reviews:   memory.NewReviewRepository(store),
		Tx:        store.TxManager(),
	}, creds, cache, zerolog.Nop())

	return &testEnv{
		facade: facade,
		store:  store,
		cache:  cache,
		creds:  creds,
	}
}

const testPassword = "Str0ng-Enough!Pass"

// mustAccount creates an account through the facade.
func (e *testEnv) mustAccount(t *testing.T, firstName, email string) *domain.Account {
	t.Helper()
	account, err := e.facade.CreateAccount(context.Background(), map[string]any{
		"first_name": firstName,
		"last_name":  "Tester",
		"email":      email,
		"password":   testPassword,
	})
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return account
}

// mustListing creates a listing owned by the given account.
func (e *testEnv) mustListing(t *testing.T, ownerID, title string) *domain.Listing {
	t.Helper()
	listing, err := e.facade.CreateListing(context.Background(), map[string]any{
		"owner_id":    ownerID,
		"title":       title,
		"description": "A cosy place by the sea",
		"price":       120.0,
		"latitude":    43.51,
		"longitude":   16.44,
	})
	if err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}
	return listing
}

// mustAmenity creates an amenity.
func (e *testEnv) mustAmenity(t *testing.T, name string) *domain.Amenity {
	t.Helper()
	amenity, err := e.facade.CreateAmenity(context.Background(), map[string]any{
		"name": name,
	})
	if err != nil {
		t.Fatalf("failed to create amenity: %v", err)
	}
	return amenity
}

// mustReview creates a review by author on listing.
func (e *testEnv) mustReview(t *testing.T, authorID, listingID string, rating int) *domain.Review {
	t.Helper()
	review, err := e.facade.CreateReview(context.Background(), map[string]any{
		"author_id":  authorID,
		"listing_id": listingID,
		"text":       "Lovely stay, would come back",
		"rating":     rating,
	})
	if err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	return review
}
