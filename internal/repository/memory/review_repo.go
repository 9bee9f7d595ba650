package memory

import (
	"context"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

type reviewRecord struct {
	review domain.Review
}

// reviewRepository implements repository.ReviewRepository in memory.
type reviewRepository struct {
	store *Store
}

// NewReviewRepository creates an in-memory review repository.
func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{store: store}
}

func (r *reviewRepository) Add(ctx context.Context, review *domain.Review) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	r.store.reviews[review.ID] = &reviewRecord{review: *review}
	return nil
}

func (r *reviewRepository) Get(ctx context.Context, id string) (*domain.Review, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	rec, ok := r.store.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	review := rec.review
	return &review, nil
}

func (r *reviewRepository) GetAll(ctx context.Context) ([]*domain.Review, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	reviews := make([]*domain.Review, 0, len(r.store.reviews))
	for _, rec := range r.store.reviews {
		review := rec.review
		reviews = append(reviews, &review)
	}
	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.reviews[review.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	r.store.reviews[review.ID] = &reviewRecord{review: *review}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.store.reviews, id)
	return nil
}

func (r *reviewRepository) GetByListing(ctx context.Context, listingID string) ([]*domain.Review, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	reviews := []*domain.Review{}
	for _, rec := range r.store.reviews {
		if rec.review.ListingID == listingID {
			review := rec.review
			reviews = append(reviews, &review)
		}
	}
	return reviews, nil
}

func (r *reviewRepository) GetByAuthor(ctx context.Context, authorID string) ([]*domain.Review, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	reviews := []*domain.Review{}
	for _, rec := range r.store.reviews {
		if rec.review.AuthorID == authorID {
			review := rec.review
			reviews = append(reviews, &review)
		}
	}
	return reviews, nil
}

func (r *reviewRepository) GetByAuthorAndListing(ctx context.Context, authorID, listingID string) (*domain.Review, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	for _, rec := range r.store.reviews {
		if rec.review.AuthorID == authorID && rec.review.ListingID == listingID {
			review := rec.review
			return &review, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}
