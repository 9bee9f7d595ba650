package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/prn-tf/hearth/internal/domain"
)

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewAccountRepository(store)

	account := domain.NewAccount("Ana", "Horvat", "ana@example.com", "hash")
	if err := repo.Add(ctx, account); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	t.Run("get round-trip", func(t *testing.T) {
		got, err := repo.Get(ctx, account.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Email != "ana@example.com" || got.FirstName != "Ana" {
			t.Errorf("Get() = %+v", got)
		}
	})

	t.Run("fetched copies are isolated from the store", func(t *testing.T) {
		got, err := repo.Get(ctx, account.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		got.FirstName = "Mutated"

		again, err := repo.Get(ctx, account.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if again.FirstName != "Ana" {
			t.Errorf("store copy changed through a fetched pointer: %q", again.FirstName)
		}
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "ana@example.com")
		if err != nil {
			t.Fatalf("GetByEmail() error = %v", err)
		}
		if got.ID != account.ID {
			t.Errorf("GetByEmail() id = %q, want %q", got.ID, account.ID)
		}
		if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("GetByEmail(missing) error = %v, want %v", err, domain.ErrAccountNotFound)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if _, err := repo.Get(ctx, "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("Get(missing) error = %v, want %v", err, domain.ErrAccountNotFound)
		}
		if err := repo.Update(ctx, domain.NewAccount("X", "Y", "x@example.com", "")); !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("Update(missing) error = %v, want %v", err, domain.ErrAccountNotFound)
		}
		if err := repo.Delete(ctx, "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("Delete(missing) error = %v, want %v", err, domain.ErrAccountNotFound)
		}
	})

	t.Run("add is an upsert by id", func(t *testing.T) {
		changed := *account
		changed.FirstName = "Anamarija"
		if err := repo.Add(ctx, &changed); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		got, err := repo.Get(ctx, account.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.FirstName != "Anamarija" {
			t.Errorf("FirstName = %q, want %q", got.FirstName, "Anamarija")
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.Delete(ctx, account.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := repo.Get(ctx, account.ID); !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("Get(deleted) error = %v, want %v", err, domain.ErrAccountNotFound)
		}
	})
}

func TestListingRepositoryFinders(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewListingRepository(store)

	first := domain.NewListing("owner-1", "Sea View", "By the water", 120, 43.5, 16.4)
	second := domain.NewListing("owner-1", "Old Town Loft", "Stone walls", 95, 43.5, 16.4)
	third := domain.NewListing("owner-2", "Sea View", "Different owner, same title", 80, 45.8, 15.9)
	for _, l := range []*domain.Listing{first, second, third} {
		if err := repo.Add(ctx, l); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	t.Run("by owner", func(t *testing.T) {
		got, err := repo.GetByOwner(ctx, "owner-1")
		if err != nil {
			t.Fatalf("GetByOwner() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("GetByOwner() returned %d listings, want 2", len(got))
		}
		got, err = repo.GetByOwner(ctx, "owner-3")
		if err != nil {
			t.Fatalf("GetByOwner() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("GetByOwner(unknown) returned %d listings, want 0", len(got))
		}
	})

	t.Run("by title and owner", func(t *testing.T) {
		got, err := repo.GetByTitleAndOwner(ctx, "Sea View", "owner-2")
		if err != nil {
			t.Fatalf("GetByTitleAndOwner() error = %v", err)
		}
		if got.ID != third.ID {
			t.Errorf("GetByTitleAndOwner() id = %q, want %q", got.ID, third.ID)
		}
		if _, err := repo.GetByTitleAndOwner(ctx, "Sea View", "owner-3"); !errors.Is(err, domain.ErrListingNotFound) {
			t.Errorf("GetByTitleAndOwner(missing) error = %v, want %v", err, domain.ErrListingNotFound)
		}
	})
}

func TestAmenityRepositoryGetByIDs(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewAmenityRepository(store)

	wifi := domain.NewAmenity("WiFi")
	pool := domain.NewAmenity("Pool")
	for _, a := range []*domain.Amenity{wifi, pool} {
		if err := repo.Add(ctx, a); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	got, err := repo.GetByIDs(ctx, []string{wifi.ID, "missing", pool.ID})
	if err != nil {
		t.Fatalf("GetByIDs() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByIDs() returned %d amenities, want 2", len(got))
	}
}

func TestReviewRepositoryFinders(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewReviewRepository(store)

	first := domain.NewReview("author-1", "listing-1", "Nice", 4)
	second := domain.NewReview("author-1", "listing-2", "Fine", 3)
	third := domain.NewReview("author-2", "listing-1", "Great", 5)
	for _, rv := range []*domain.Review{first, second, third} {
		if err := repo.Add(ctx, rv); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	byListing, err := repo.GetByListing(ctx, "listing-1")
	if err != nil {
		t.Fatalf("GetByListing() error = %v", err)
	}
	if len(byListing) != 2 {
		t.Errorf("GetByListing() returned %d reviews, want 2", len(byListing))
	}

	byAuthor, err := repo.GetByAuthor(ctx, "author-1")
	if err != nil {
		t.Fatalf("GetByAuthor() error = %v", err)
	}
	if len(byAuthor) != 2 {
		t.Errorf("GetByAuthor() returned %d reviews, want 2", len(byAuthor))
	}

	got, err := repo.GetByAuthorAndListing(ctx, "author-2", "listing-1")
	if err != nil {
		t.Fatalf("GetByAuthorAndListing() error = %v", err)
	}
	if got.ID != third.ID {
		t.Errorf("GetByAuthorAndListing() id = %q, want %q", got.ID, third.ID)
	}
	if _, err := repo.GetByAuthorAndListing(ctx, "author-2", "listing-2"); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Errorf("GetByAuthorAndListing(missing) error = %v, want %v", err, domain.ErrReviewNotFound)
	}
}

func TestTxManager(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tx := store.TxManager()
	repo := NewAccountRepository(store)

	t.Run("repositories work inside a transaction", func(t *testing.T) {
		account := domain.NewAccount("Ana", "Horvat", "ana@example.com", "hash")
		err := tx.WithTx(ctx, func(ctx context.Context) error {
			if err := repo.Add(ctx, account); err != nil {
				return err
			}
			_, err := repo.Get(ctx, account.ID)
			return err
		})
		if err != nil {
			t.Fatalf("WithTx() error = %v", err)
		}
	})

	t.Run("nested calls reuse the outer transaction", func(t *testing.T) {
		err := tx.WithTx(ctx, func(ctx context.Context) error {
			return tx.WithTx(ctx, func(ctx context.Context) error {
				return nil
			})
		})
		if err != nil {
			t.Fatalf("nested WithTx() error = %v", err)
		}
	})

	t.Run("errors propagate", func(t *testing.T) {
		want := errors.New("boom")
		if err := tx.WithTx(ctx, func(ctx context.Context) error { return want }); !errors.Is(err, want) {
			t.Errorf("WithTx() error = %v, want %v", err, want)
		}
	})
}
