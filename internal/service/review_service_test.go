package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prn-tf/hearth/internal/domain"
)

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the review and links it to the listing", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		guest := e.mustAccount(t, "Ivo", "ivo@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")

		review, err := e.facade.CreateReview(ctx, map[string]any{
			"author_id":  guest.ID,
			"listing_id": listing.ID,
			"text":       "Great place",
			"rating":     5,
		})
		require.NoError(t, err)
		require.Equal(t, guest.ID, review.AuthorID)
		require.Equal(t, listing.ID, review.ListingID)

		stored, err := e.facade.GetListing(ctx, listing.ID)
		require.NoError(t, err)
		require.Equal(t, []string{review.ID}, stored.ReviewIDs)
	})

	t.Run("validates scalars before the self-review check", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")

		_, err := e.facade.CreateReview(ctx, map[string]any{
			"author_id":  owner.ID,
			"listing_id": listing.ID,
			"text":       "My own place",
			"rating":     99,
		})
		require.ErrorIs(t, err, domain.ErrConstraint)
		require.NotErrorIs(t, err, domain.ErrSelfReview)
	})

	t.Run("rejects reviewing your own listing", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")

		_, err := e.facade.CreateReview(ctx, map[string]any{
			"author_id":  owner.ID,
			"listing_id": listing.ID,
			"text":       "I love my own place",
			"rating":     5,
		})
		require.ErrorIs(t, err, domain.ErrSelfReview)
	})

	t.Run("rejects a second review of the same listing", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		guest := e.mustAccount(t, "Ivo", "ivo@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")
		e.mustReview(t, guest.ID, listing.ID, 4)

		_, err := e.facade.CreateReview(ctx, map[string]any{
			"author_id":  guest.ID,
			"listing_id": listing.ID,
			"text":       "Once more",
			"rating":     5,
		})
		require.ErrorIs(t, err, domain.ErrDuplicateReview)
	})

	t.Run("resolves references before validating scalars", func(t *testing.T) {
		e := newTestEnv(t)
		guest := e.mustAccount(t, "Ivo", "ivo@example.com")

		_, err := e.facade.CreateReview(ctx, map[string]any{
			"author_id":  guest.ID,
			"listing_id": "no-such-listing",
			"text":       "",
			"rating":     99,
		})
		require.ErrorIs(t, err, domain.ErrListingNotFound)
	})

	t.Run("rating validation", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		guest := e.mustAccount(t, "Ivo", "ivo@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")

		payload := func(rating any) map[string]any {
			return map[string]any{
				"author_id":  guest.ID,
				"listing_id": listing.ID,
				"text":       "Fine",
				"rating":     rating,
			}
		}

		_, err := e.facade.CreateReview(ctx, payload(0))
		require.ErrorIs(t, err, domain.ErrConstraint)

		_, err = e.facade.CreateReview(ctx, payload(6))
		require.ErrorIs(t, err, domain.ErrConstraint)

		_, err = e.facade.CreateReview(ctx, payload(4.5))
		require.ErrorIs(t, err, domain.ErrConstraint)

		_, err = e.facade.CreateReview(ctx, payload(true))
		require.ErrorIs(t, err, domain.ErrTypeMismatch)

		// JSON numbers arrive as float64; a whole one is a valid rating.
		_, err = e.facade.CreateReview(ctx, payload(5.0))
		require.NoError(t, err)
	})
}

func TestReviewService_Update(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	owner := e.mustAccount(t, "Ana", "ana@example.com")
	guest := e.mustAccount(t, "Ivo", "ivo@example.com")
	listing := e.mustListing(t, owner.ID, "Sea View Apartment")
	review := e.mustReview(t, guest.ID, listing.ID, 3)

	_, err := e.facade.UpdateReview(ctx, review.ID, map[string]any{
		"rating": 5,
	}, Caller{AccountID: owner.ID})
	require.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := e.facade.UpdateReview(ctx, review.ID, map[string]any{
		"text":   "Even better the second night",
		"rating": 5,
	}, Caller{AccountID: guest.ID})
	require.NoError(t, err)
	require.Equal(t, 5, updated.Rating)
	require.Equal(t, "Even better the second night", updated.Text)
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the review and its back-link", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		guest := e.mustAccount(t, "Ivo", "ivo@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")
		review := e.mustReview(t, guest.ID, listing.ID, 4)

		require.NoError(t, e.facade.DeleteReview(ctx, review.ID, Caller{AccountID: guest.ID}))

		_, err := e.facade.GetReview(ctx, review.ID)
		require.ErrorIs(t, err, domain.ErrReviewNotFound)

		stored, err := e.facade.GetListing(ctx, listing.ID)
		require.NoError(t, err)
		require.Empty(t, stored.ReviewIDs)

		// The author can review again after deleting.
		_, err = e.facade.CreateReview(ctx, map[string]any{
			"author_id":  guest.ID,
			"listing_id": listing.ID,
			"text":       "Back again",
			"rating":     5,
		})
		require.NoError(t, err)
	})

	t.Run("only the author or an admin may delete", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		guest := e.mustAccount(t, "Ivo", "ivo@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")
		review := e.mustReview(t, guest.ID, listing.ID, 4)

		err := e.facade.DeleteReview(ctx, review.ID, Caller{AccountID: owner.ID})
		require.ErrorIs(t, err, domain.ErrForbidden)

		require.NoError(t, e.facade.DeleteReview(ctx, review.ID, Caller{AccountID: owner.ID, IsAdmin: true}))
	})
}

func TestReviewService_AverageRating(t *testing.T) {
	ctx := context.Background()

	t.Run("arithmetic mean", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")
		for i, rating := range []int{3, 4, 5} {
			guest := e.mustAccount(t, "Guest", guestEmail(i))
			e.mustReview(t, guest.ID, listing.ID, rating)
		}

		avg, err := e.facade.AverageRating(ctx, listing.ID)
		require.NoError(t, err)
		require.InDelta(t, 4.0, avg, 1e-9)
	})

	t.Run("no reviews is a sentinel, not zero", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")

		_, err := e.facade.AverageRating(ctx, listing.ID)
		require.ErrorIs(t, err, domain.ErrNoRatings)
	})

	t.Run("unknown listing", func(t *testing.T) {
		e := newTestEnv(t)
		_, err := e.facade.AverageRating(ctx, "no-such-listing")
		require.ErrorIs(t, err, domain.ErrListingNotFound)
	})

	t.Run("cache is invalidated on review mutation", func(t *testing.T) {
		e := newTestEnv(t)
		owner := e.mustAccount(t, "Ana", "ana@example.com")
		guest := e.mustAccount(t, "Ivo", "ivo@example.com")
		second := e.mustAccount(t, "Mia", "mia@example.com")
		listing := e.mustListing(t, owner.ID, "Sea View Apartment")
		e.mustReview(t, guest.ID, listing.ID, 2)

		avg, err := e.facade.AverageRating(ctx, listing.ID)
		require.NoError(t, err)
		require.InDelta(t, 2.0, avg, 1e-9)

		// A new review must not serve the stale cached mean.
		e.mustReview(t, second.ID, listing.ID, 4)

		avg, err = e.facade.AverageRating(ctx, listing.ID)
		require.NoError(t, err)
		require.InDelta(t, 3.0, avg, 1e-9)
	})
}

func guestEmail(i int) string {
	return "guest" + string(rune('a'+i)) + "@example.com"
}
