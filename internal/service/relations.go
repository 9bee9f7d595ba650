package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

// Relations keeps the link sets between entities consistent: the
// listing->amenity references and the listing->review back-links.
// Mutations happen on the in-memory listing; callers persist it, inside
// a transaction when more than one entity changes.
type Relations struct {
	amenityRepo repository.AmenityRepository
	logger      zerolog.Logger
}

// NewRelations creates a new Relations synchronizer.
func NewRelations(amenityRepo repository.AmenityRepository, logger zerolog.Logger) *Relations {
	return &Relations{
		amenityRepo: amenityRepo,
		logger:      logger.With().Str("service", "relations").Logger(),
	}
}

// LinkReview adds the review to the listing's back-links exactly once.
// Linking an already linked review is a no-op.
func (r *Relations) LinkReview(listing *domain.Listing, reviewID string) {
	if listing.HasReview(reviewID) {
		return
	}
	listing.ReviewIDs = append(listing.ReviewIDs, reviewID)
}

// UnlinkReview removes the review from the listing's back-links.
// Unlinking an absent review is a no-op.
func (r *Relations) UnlinkReview(listing *domain.Listing, reviewID string) {
	listing.ReviewIDs = slices.DeleteFunc(listing.ReviewIDs, func(id string) bool {
		return id == reviewID
	})
}

// SetAmenities replaces the listing's amenity set with exactly the given
// ids, all-or-nothing: if any id does not resolve to a stored amenity the
// listing is left untouched and the unresolved id is reported.
func (r *Relations) SetAmenities(ctx context.Context, listing *domain.Listing, ids []string) error {
	unique := dedupe(ids)

	resolved, err := r.amenityRepo.GetByIDs(ctx, unique)
	if err != nil {
		return err
	}
	if len(resolved) != len(unique) {
		known := make(map[string]struct{}, len(resolved))
		for _, amenity := range resolved {
			known[amenity.ID] = struct{}{}
		}
		for _, id := range unique {
			if _, ok := known[id]; !ok {
				return fmt.Errorf("%w: %s", domain.ErrAmenityNotFound, id)
			}
		}
	}

	listing.AmenityIDs = unique
	return nil
}

// ExistingAmenities filters the given ids down to those that resolve to
// stored amenities, preserving order. Unresolved ids are skipped, not
// errors. Used on listing creation, where the reference set is advisory.
func (r *Relations) ExistingAmenities(ctx context.Context, ids []string) ([]string, error) {
	unique := dedupe(ids)

	resolved, err := r.amenityRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(resolved))
	for _, amenity := range resolved {
		known[amenity.ID] = struct{}{}
	}

	existing := make([]string, 0, len(unique))
	for _, id := range unique {
		if _, ok := known[id]; ok {
			existing = append(existing, id)
		} else {
			r.logger.Debug().Str("amenity_id", id).Msg("skipping unknown amenity")
		}
	}
	return existing, nil
}

// dedupe removes duplicate ids while preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
