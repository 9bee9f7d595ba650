package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

// ratingCacheTTL bounds staleness if an invalidation is ever lost.
const ratingCacheTTL = 10 * time.Minute

// ReviewService handles review operations and the per-listing average
// rating, which is cached and invalidated on every review mutation.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	listingRepo repository.ListingRepository
	accountRepo repository.AccountRepository
	relations   *Relations
	tx          repository.TxManager
	cache       repository.Cache
	logger      zerolog.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	listingRepo repository.ListingRepository,
	accountRepo repository.AccountRepository,
	relations *Relations,
	tx repository.TxManager,
	cache repository.Cache,
	logger zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		listingRepo: listingRepo,
		accountRepo: accountRepo,
		relations:   relations,
		tx:          tx,
		cache:       cache,
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

// Create registers a new review from a payload with author_id,
// listing_id, text and rating fields. Authors cannot review their own
// listings, and each author gets at most one review per listing. The
// review row and the listing back-link are written in one transaction.
func (s *ReviewService) Create(ctx context.Context, payload map[string]any) (*domain.Review, error) {
	authorID, err := domain.ValidateID(payload["author_id"], "Author")
	if err != nil {
		return nil, err
	}
	listingID, err := domain.ValidateID(payload["listing_id"], "Listing")
	if err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.Get(ctx, authorID); err != nil {
		return nil, err
	}
	listing, err := s.listingRepo.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}

	text, err := domain.ValidateReviewText(payload["text"])
	if err != nil {
		return nil, err
	}
	rating, err := domain.ValidateRating(payload["rating"])
	if err != nil {
		return nil, err
	}

	if listing.OwnerID == authorID {
		return nil, domain.ErrSelfReview
	}
	if _, err := s.reviewRepo.GetByAuthorAndListing(ctx, authorID, listingID); err == nil {
		return nil, domain.ErrDuplicateReview
	} else if !errors.Is(err, domain.ErrReviewNotFound) {
		return nil, err
	}

	review := domain.NewReview(authorID, listingID, text, rating)

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.reviewRepo.Add(ctx, review); err != nil {
			return err
		}
		s.relations.LinkReview(listing, review.ID)
		return s.listingRepo.Update(ctx, listing)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRating(ctx, listingID)
	s.logger.Info().
		Str("review_id", review.ID).
		Str("listing_id", listingID).
		Msg("review created")
	return review, nil
}

// Update applies the allowed fields of the payload to an existing
// review: text and rating. Only the author or an admin may update.
func (s *ReviewService) Update(ctx context.Context, id string, payload map[string]any, caller Caller) (*domain.Review, error) {
	review, err := s.reviewRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Allows(review.AuthorID) {
		return nil, domain.ErrForbidden
	}

	if raw, ok := payload["text"]; ok {
		text, err := domain.ValidateReviewText(raw)
		if err != nil {
			return nil, err
		}
		review.Text = text
	}
	if raw, ok := payload["rating"]; ok {
		rating, err := domain.ValidateRating(raw)
		if err != nil {
			return nil, err
		}
		review.Rating = rating
	}

	review.Touch()
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	s.invalidateRating(ctx, review.ListingID)
	s.logger.Info().Str("review_id", review.ID).Msg("review updated")
	return review, nil
}

// Delete removes a review, unlinking it from its listing first so the
// back-link set never references a missing review. Only the author or an
// admin may delete.
func (s *ReviewService) Delete(ctx context.Context, id string, caller Caller) error {
	review, err := s.reviewRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !caller.Allows(review.AuthorID) {
		return domain.ErrForbidden
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		listing, err := s.listingRepo.Get(ctx, review.ListingID)
		if err == nil {
			s.relations.UnlinkReview(listing, review.ID)
			if err := s.listingRepo.Update(ctx, listing); err != nil {
				return err
			}
		} else if !errors.Is(err, domain.ErrListingNotFound) {
			return err
		}
		return s.reviewRepo.Delete(ctx, review.ID)
	})
	if err != nil {
		return err
	}

	s.invalidateRating(ctx, review.ListingID)
	s.logger.Info().Str("review_id", review.ID).Msg("review deleted")
	return nil
}

// Get retrieves a review by id.
func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.reviewRepo.Get(ctx, id)
}

// List returns all reviews.
func (s *ReviewService) List(ctx context.Context) ([]*domain.Review, error) {
	return s.reviewRepo.GetAll(ctx)
}

// GetByListing returns the reviews of a listing. The listing must exist.
func (s *ReviewService) GetByListing(ctx context.Context, listingID string) ([]*domain.Review, error) {
	if _, err := s.listingRepo.Get(ctx, listingID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByListing(ctx, listingID)
}

// GetByAuthor returns the reviews written by an account. The account
// must exist.
func (s *ReviewService) GetByAuthor(ctx context.Context, authorID string) ([]*domain.Review, error) {
	if _, err := s.accountRepo.Get(ctx, authorID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByAuthor(ctx, authorID)
}

// AverageRating returns the arithmetic mean of the listing's review
// ratings. A listing without reviews yields domain.ErrNoRatings, never
// a zero. Results are cached per listing.
func (s *ReviewService) AverageRating(ctx context.Context, listingID string) (float64, error) {
	key := ratingKey(listingID)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		if avg, err := strconv.ParseFloat(string(cached), 64); err == nil {
			return avg, nil
		}
	}

	if _, err := s.listingRepo.Get(ctx, listingID); err != nil {
		return 0, err
	}
	reviews, err := s.reviewRepo.GetByListing(ctx, listingID)
	if err != nil {
		return 0, err
	}
	if len(reviews) == 0 {
		return 0, domain.ErrNoRatings
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	avg := float64(total) / float64(len(reviews))

	value := strconv.FormatFloat(avg, 'f', -1, 64)
	if err := s.cache.Set(ctx, key, []byte(value), ratingCacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("listing_id", listingID).Msg("failed to cache rating")
	}
	return avg, nil
}

// invalidateRating drops the cached average for a listing. Cache errors
// are logged, not propagated: the TTL bounds staleness.
func (s *ReviewService) invalidateRating(ctx context.Context, listingID string) {
	if err := s.cache.Delete(ctx, ratingKey(listingID)); err != nil {
		s.logger.Warn().Err(err).Str("listing_id", listingID).Msg("failed to invalidate rating cache")
	}
}

func ratingKey(listingID string) string {
	return "rating:" + listingID
}
