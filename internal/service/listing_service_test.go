package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prn-tf/hearth/internal/domain"
)

func TestListingService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")

		listing, err := e.facade.CreateListing(context.Background(), map[string]any{
			"owner_id":    owner.ID,
			"title":       "Sea View Apartment",
			"description": "Two rooms, close to the beach",
			"price":       95.5,
			"latitude":    43.51,
			"longitude":   16.44,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if listing.OwnerID != owner.ID {
			t.Errorf("expected owner %s, got %s", owner.ID, listing.OwnerID)
		}
		if len(listing.AmenityIDs) != 0 || len(listing.ReviewIDs) != 0 {
			t.Errorf("expected empty link sets, got %+v", listing)
		}
	})

	t.Run("unknown owner", func(t *testing.T) {
		e := newTestEnv(t)
		_, err := e.facade.CreateListing(context.Background(), map[string]any{
			"owner_id":    "no-such-account",
			"title":       "Sea View Apartment",
			"description": "Two rooms",
			"price":       95.5,
			"latitude":    43.51,
			"longitude":   16.44,
		})
		if !errors.Is(err, domain.ErrOwnerNotFound) {
			t.Errorf("expected ErrOwnerNotFound, got %v", err)
		}
	})

	t.Run("duplicate title for the same owner", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		e.mustListing(t, owner.ID, "Sea View Apartment")

		_, err := e.facade.CreateListing(context.Background(), map[string]any{
			"owner_id":    owner.ID,
			"title":       "Sea View Apartment",
			"description": "Another one",
			"price":       50.0,
			"latitude":    0.0,
			"longitude":   0.0,
		})
		if !errors.Is(err, domain.ErrTitleTaken) {
			t.Errorf("expected ErrTitleTaken, got %v", err)
		}
	})

	t.Run("same title under a different owner is fine", func(t *testing.T) {
		e := newTestEnv(t)
		ana := e.mustAccount(t, "Ana", "ana@example.com")
		ivo := e.mustAccount(t, "Ivo", "ivo@example.com")
		e.mustListing(t, ana.ID, "Sea View Apartment")

		if _, err := e.facade.CreateListing(context.Background(), map[string]any{
			"owner_id":    ivo.ID,
			"title":       "Sea View Apartment",
			"description": "Different owner",
			"price":       50.0,
			"latitude":    0.0,
			"longitude":   0.0,
		}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("scalar validation", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")

		base := func() map[string]any {
			return map[string]any{
				"owner_id":    owner.ID,
				"title":       "Sea View Apartment",
				"description": "Two rooms",
				"price":       95.5,
				"latitude":    43.51,
				"longitude":   16.44,
			}
		}

		tests := []struct {
			name      string
			field     string
			value     any
			wantErr   error
			wantField string
		}{
			{"negative price", "price", -1.0, domain.ErrConstraint, "Price"},
			{"zero price", "price", 0.0, domain.ErrConstraint, "Price"},
			{"boolean price", "price", true, domain.ErrTypeMismatch, "Price"},
			{"latitude above range", "latitude", 91.0, domain.ErrConstraint, "Latitude"},
			{"latitude below range", "latitude", -90.0001, domain.ErrConstraint, "Latitude"},
			{"longitude above range", "longitude", 180.5, domain.ErrConstraint, "Longitude"},
			{"numeric title", "title", 7.0, domain.ErrTypeMismatch, "Title"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				payload := base()
				payload[tt.field] = tt.value

				_, err := e.facade.CreateListing(context.Background(), payload)
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}

				var vErr *domain.ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected a ValidationError, got %T", err)
				}
				if vErr.Field != tt.wantField {
					t.Errorf("expected field %q, got %q", tt.wantField, vErr.Field)
				}
			})
		}
	})

	t.Run("unresolved amenities are skipped on create", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		wifi := e.mustAmenity(t, "WiFi")

		listing, err := e.facade.CreateListing(context.Background(), map[string]any{
			"owner_id":    owner.ID,
			"title":       "Sea View Apartment",
			"description": "Two rooms",
			"price":       95.5,
			"latitude":    43.51,
			"longitude":   16.44,
			"amenities":   []any{wifi.ID, "no-such-amenity"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(listing.AmenityIDs) != 1 || listing.AmenityIDs[0] != wifi.ID {
			t.Errorf("expected only the known amenity, got %v", listing.AmenityIDs)
		}
	})
}

func TestListingService_Update(t *testing.T) {
	t.Run("owner updates fields", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")
		caller := Caller{AccountID: owner.ID}

		updated, err := e.facade.UpdateListing(context.Background(), listing.ID, map[string]any{
			"price": 150.0,
		}, caller)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Price != 150.0 {
			t.Errorf("expected price 150, got %v", updated.Price)
		}
	})

	t.Run("non-owner is forbidden, admin is not", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		other := e.mustAccount(t, "Ivo", "ivo@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")

		_, err := e.facade.UpdateListing(context.Background(), listing.ID, map[string]any{
			"price": 10.0,
		}, Caller{AccountID: other.ID})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}

		if _, err := e.facade.UpdateListing(context.Background(), listing.ID, map[string]any{
			"price": 10.0,
		}, Caller{AccountID: other.ID, IsAdmin: true}); err != nil {
			t.Errorf("unexpected error for admin: %v", err)
		}
	})

	t.Run("a change-nothing update is rejected", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")
		caller := Caller{AccountID: owner.ID}

		_, err := e.facade.UpdateListing(context.Background(), listing.ID, map[string]any{
			"title": listing.Title,
		}, caller)
		if !errors.Is(err, domain.ErrNoChanges) {
			t.Errorf("expected ErrNoChanges, got %v", err)
		}

		_, err = e.facade.UpdateListing(context.Background(), listing.ID, map[string]any{
			"unknown_key": "ignored",
		}, caller)
		if !errors.Is(err, domain.ErrNoChanges) {
			t.Errorf("expected ErrNoChanges for unknown keys only, got %v", err)
		}
	})

	t.Run("title change re-checks per-owner uniqueness", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		e.mustListing(t, owner.ID, "First")
		second := e.mustListing(t, owner.ID, "Second")
		caller := Caller{AccountID: owner.ID}

		_, err := e.facade.UpdateListing(context.Background(), second.ID, map[string]any{
			"title": "First",
		}, caller)
		if !errors.Is(err, domain.ErrTitleTaken) {
			t.Errorf("expected ErrTitleTaken, got %v", err)
		}
	})

	t.Run("amenity replacement is all-or-nothing", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		wifi := e.mustAmenity(t, "WiFi")
		pool := e.mustAmenity(t, "Pool")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")
		caller := Caller{AccountID: owner.ID}

		updated, err := e.facade.UpdateListing(context.Background(), listing.ID, map[string]any{
			"amenities": []any{wifi.ID, pool.ID, wifi.ID},
		}, caller)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(updated.AmenityIDs) != 2 {
			t.Errorf("expected deduplicated amenity set of 2, got %v", updated.AmenityIDs)
		}

		// One unknown id poisons the whole replacement.
		_, err = e.facade.UpdateListing(context.Background(), listing.ID, map[string]any{
			"amenities": []any{wifi.ID, "no-such-amenity"},
		}, caller)
		if !errors.Is(err, domain.ErrAmenityNotFound) {
			t.Fatalf("expected ErrAmenityNotFound, got %v", err)
		}

		current, err := e.facade.GetListing(context.Background(), listing.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(current.AmenityIDs) != 2 {
			t.Errorf("failed replacement must not change the stored set, got %v", current.AmenityIDs)
		}
	})
}

func TestListingService_GetByOwner(t *testing.T) {
	e := newTestEnv(t)
	ana := e.mustAccount(t, "Ana", "ana@example.com")
	ivo := e.mustAccount(t, "Ivo", "ivo@example.com")
	e.mustListing(t, ana.ID, "First")
	e.mustListing(t, ana.ID, "Second")
	e.mustListing(t, ivo.ID, "Third")

	listings, err := e.facade.GetListingsByOwner(context.Background(), ana.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 2 {
		t.Errorf("expected 2 listings, got %d", len(listings))
	}

	if _, err := e.facade.GetListingsByOwner(context.Background(), "no-such-account"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
