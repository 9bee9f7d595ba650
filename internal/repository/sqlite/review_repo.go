package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

// reviewRepository implements repository.ReviewRepository for SQLite.
type reviewRepository struct {
	db *DB
}

// NewReviewRepository creates a new SQLite review repository.
func NewReviewRepository(db *DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Add inserts or overwrites the review (upsert by id).
func (r *reviewRepository) Add(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, listing_id, author_id, text, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			rating = excluded.rating,
			updated_at = excluded.updated_at
	`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		review.ID,
		review.ListingID,
		review.AuthorID,
		review.Text,
		review.Rating,
		review.CreatedAt.Format(time.RFC3339Nano),
		review.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReview
		}
		if isForeignKeyViolation(err) {
			return domain.ErrListingNotFound
		}
		return fmt.Errorf("failed to add review: %w", err)
	}
	return nil
}

const reviewColumns = `id, listing_id, author_id, text, rating, created_at, updated_at`

func scanReview(row interface{ Scan(dest ...any) error }) (*domain.Review, error) {
	review := &domain.Review{}
	var createdAt, updatedAt string

	err := row.Scan(
		&review.ID,
		&review.ListingID,
		&review.AuthorID,
		&review.Text,
		&review.Rating,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	review.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	review.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return review, nil
}

// Get retrieves a review by id.
func (r *reviewRepository) Get(ctx context.Context, id string) (*domain.Review, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)

	review, err := scanReview(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

// GetAll returns all reviews ordered by creation time.
func (r *reviewRepository) GetAll(ctx context.Context) ([]*domain.Review, error) {
	return r.queryReviews(ctx,
		`SELECT `+reviewColumns+` FROM reviews ORDER BY created_at`)
}

// GetByListing returns all reviews of the given listing.
func (r *reviewRepository) GetByListing(ctx context.Context, listingID string) ([]*domain.Review, error) {
	return r.queryReviews(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE listing_id = ? ORDER BY created_at`, listingID)
}

// GetByAuthor returns all reviews written by the given account.
func (r *reviewRepository) GetByAuthor(ctx context.Context, authorID string) ([]*domain.Review, error) {
	return r.queryReviews(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE author_id = ? ORDER BY created_at`, authorID)
}

func (r *reviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]*domain.Review, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// Update persists changed fields of an existing review.
func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`UPDATE reviews SET text = ?, rating = ?, updated_at = ? WHERE id = ?`,
		review.Text,
		review.Rating,
		review.UpdatedAt.Format(time.RFC3339Nano),
		review.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// Delete removes a review by id.
func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.conn(ctx).ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// GetByAuthorAndListing retrieves the author's review of the listing.
func (r *reviewRepository) GetByAuthorAndListing(ctx context.Context, authorID, listingID string) (*domain.Review, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE author_id = ? AND listing_id = ?`,
		authorID, listingID)

	review, err := scanReview(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review by author and listing: %w", err)
	}
	return review, nil
}
