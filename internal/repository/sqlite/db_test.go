package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	db, err := NewDB(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// Foreign keys are off by default in SQLite and only enforced when the
// connection string switches the pragma on.
func TestForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := NewAccountRepository(db)
	listings := NewListingRepository(db)

	owner := domain.NewAccount("Ana", "Horvat", "ana@example.com", "hash")
	if err := accounts.Add(ctx, owner); err != nil {
		t.Fatalf("Add(account) error = %v", err)
	}

	t.Run("listing with unknown owner", func(t *testing.T) {
		orphan := domain.NewListing("no-such-account", "Sea View", "By the water", 120, 43.5, 16.4)
		if err := listings.Add(ctx, orphan); !errors.Is(err, domain.ErrOwnerNotFound) {
			t.Fatalf("Add() error = %v, want %v", err, domain.ErrOwnerNotFound)
		}
	})

	listing := domain.NewListing(owner.ID, "Sea View", "By the water", 120, 43.5, 16.4)
	if err := listings.Add(ctx, listing); err != nil {
		t.Fatalf("Add(listing) error = %v", err)
	}

	t.Run("junction row with unknown amenity", func(t *testing.T) {
		listing.AmenityIDs = []string{"no-such-amenity"}
		if err := listings.Update(ctx, listing); !errors.Is(err, domain.ErrAmenityNotFound) {
			t.Fatalf("Update() error = %v, want %v", err, domain.ErrAmenityNotFound)
		}
		listing.AmenityIDs = nil
	})

	t.Run("review rows cascade on listing delete", func(t *testing.T) {
		guest := domain.NewAccount("Ivo", "Kovac", "ivo@example.com", "hash")
		if err := accounts.Add(ctx, guest); err != nil {
			t.Fatalf("Add(account) error = %v", err)
		}
		reviews := NewReviewRepository(db)
		review := domain.NewReview(guest.ID, listing.ID, "Great place", 5)
		if err := reviews.Add(ctx, review); err != nil {
			t.Fatalf("Add(review) error = %v", err)
		}

		if err := listings.Delete(ctx, listing.ID); err != nil {
			t.Fatalf("Delete(listing) error = %v", err)
		}
		if _, err := reviews.Get(ctx, review.ID); !errors.Is(err, domain.ErrReviewNotFound) {
			t.Errorf("Get(review) error = %v, want %v after cascade", err, domain.ErrReviewNotFound)
		}
	})
}
