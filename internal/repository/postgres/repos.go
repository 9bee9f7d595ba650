package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

// =============================================================================
// Account Repository
// =============================================================================

// accountRepository implements repository.AccountRepository for PostgreSQL.
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new PostgreSQL account repository.
func NewAccountRepository(db *DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Add(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			is_admin = EXCLUDED.is_admin,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		account.ID, account.FirstName, account.LastName, account.Email,
		account.PasswordHash, account.IsAdmin, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrEmailTaken, account.Email)
		}
		return fmt.Errorf("failed to add account: %w", err)
	}
	return nil
}

const accountColumns = `id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	account := &domain.Account{}
	err := row.Scan(
		&account.ID, &account.FirstName, &account.LastName, &account.Email,
		&account.PasswordHash, &account.IsAdmin, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) Get(ctx context.Context, id string) (*domain.Account, error) {
	account, err := scanAccount(r.db.conn(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (r *accountRepository) GetAll(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.db.conn(ctx).Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `
		UPDATE accounts
		SET first_name = $1, last_name = $2, email = $3, password_hash = $4, is_admin = $5, updated_at = $6
		WHERE id = $7`,
		account.FirstName, account.LastName, account.Email,
		account.PasswordHash, account.IsAdmin, account.UpdatedAt, account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrEmailTaken, account.Email)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := scanAccount(r.db.conn(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return account, nil
}

// =============================================================================
// Listing Repository
// =============================================================================

// listingRepository implements repository.ListingRepository for PostgreSQL.
// Amenity links live in listing_amenities; review back-links are derived
// from the reviews table on read.
type listingRepository struct {
	db *DB
}

// NewListingRepository creates a new PostgreSQL listing repository.
func NewListingRepository(db *DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Add(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (id, owner_id, title, description, price, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		listing.ID, listing.OwnerID, listing.Title, listing.Description,
		listing.Price, listing.Latitude, listing.Longitude,
		listing.CreatedAt, listing.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", domain.ErrTitleTaken, listing.Title)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrOwnerNotFound, listing.OwnerID)
		}
		return fmt.Errorf("failed to add listing: %w", err)
	}
	return r.replaceAmenityLinks(ctx, listing.ID, listing.AmenityIDs)
}

func (r *listingRepository) replaceAmenityLinks(ctx context.Context, listingID string, amenityIDs []string) error {
	q := r.db.conn(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM listing_amenities WHERE listing_id = $1`, listingID); err != nil {
		return fmt.Errorf("failed to clear amenity links: %w", err)
	}
	for _, amenityID := range amenityIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO listing_amenities (listing_id, amenity_id) VALUES ($1, $2)`,
			listingID, amenityID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: %s", domain.ErrAmenityNotFound, amenityID)
			}
			return fmt.Errorf("failed to link amenity: %w", err)
		}
	}
	return nil
}

func (r *listingRepository) loadLinks(ctx context.Context, listing *domain.Listing) error {
	q := r.db.conn(ctx)

	listing.AmenityIDs = []string{}
	rows, err := q.Query(ctx,
		`SELECT amenity_id FROM listing_amenities WHERE listing_id = $1`, listing.ID)
	if err != nil {
		return fmt.Errorf("failed to load amenity links: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan amenity link: %w", err)
		}
		listing.AmenityIDs = append(listing.AmenityIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	listing.ReviewIDs = []string{}
	reviewRows, err := q.Query(ctx,
		`SELECT id FROM reviews WHERE listing_id = $1 ORDER BY created_at`, listing.ID)
	if err != nil {
		return fmt.Errorf("failed to load review links: %w", err)
	}
	defer reviewRows.Close()
	for reviewRows.Next() {
		var id string
		if err := reviewRows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan review link: %w", err)
		}
		listing.ReviewIDs = append(listing.ReviewIDs, id)
	}
	return reviewRows.Err()
}

const listingColumns = `id, owner_id, title, description, price, latitude, longitude, created_at, updated_at`

func scanListing(row pgx.Row) (*domain.Listing, error) {
	listing := &domain.Listing{}
	err := row.Scan(
		&listing.ID, &listing.OwnerID, &listing.Title, &listing.Description,
		&listing.Price, &listing.Latitude, &listing.Longitude,
		&listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (r *listingRepository) Get(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := scanListing(r.db.conn(ctx).QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if err := r.loadLinks(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (r *listingRepository) GetAll(ctx context.Context) ([]*domain.Listing, error) {
	return r.queryListings(ctx,
		`SELECT `+listingColumns+` FROM listings ORDER BY created_at`)
}

func (r *listingRepository) GetByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	return r.queryListings(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE owner_id = $1 ORDER BY created_at`, ownerID)
}

func (r *listingRepository) queryListings(ctx context.Context, query string, args ...any) ([]*domain.Listing, error) {
	rows, err := r.db.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	listings := []*domain.Listing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, listing := range listings {
		if err := r.loadLinks(ctx, listing); err != nil {
			return nil, err
		}
	}
	return listings, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `
		UPDATE listings
		SET title = $1, description = $2, price = $3, latitude = $4, longitude = $5, updated_at = $6
		WHERE id = $7`,
		listing.Title, listing.Description, listing.Price,
		listing.Latitude, listing.Longitude, listing.UpdatedAt, listing.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", domain.ErrTitleTaken, listing.Title)
		}
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return r.replaceAmenityLinks(ctx, listing.ID, listing.AmenityIDs)
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *listingRepository) GetByTitleAndOwner(ctx context.Context, title, ownerID string) (*domain.Listing, error) {
	listing, err := scanListing(r.db.conn(ctx).QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE title = $1 AND owner_id = $2`, title, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing by title: %w", err)
	}
	if err := r.loadLinks(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// =============================================================================
// Amenity Repository
// =============================================================================

// amenityRepository implements repository.AmenityRepository for PostgreSQL.
type amenityRepository struct {
	db *DB
}

// NewAmenityRepository creates a new PostgreSQL amenity repository.
func NewAmenityRepository(db *DB) repository.AmenityRepository {
	return &amenityRepository{db: db}
}

func (r *amenityRepository) Add(ctx context.Context, amenity *domain.Amenity) error {
	query := `
		INSERT INTO amenities (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.conn(ctx).Exec(ctx, query,
		amenity.ID, amenity.Name, amenity.CreatedAt, amenity.UpdatedAt); err != nil {
		return fmt.Errorf("failed to add amenity: %w", err)
	}
	return nil
}

func scanAmenity(row pgx.Row) (*domain.Amenity, error) {
	amenity := &domain.Amenity{}
	if err := row.Scan(&amenity.ID, &amenity.Name, &amenity.CreatedAt, &amenity.UpdatedAt); err != nil {
		return nil, err
	}
	return amenity, nil
}

func (r *amenityRepository) Get(ctx context.Context, id string) (*domain.Amenity, error) {
	amenity, err := scanAmenity(r.db.conn(ctx).QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM amenities WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAmenityNotFound
		}
		return nil, fmt.Errorf("failed to get amenity: %w", err)
	}
	return amenity, nil
}

func (r *amenityRepository) GetAll(ctx context.Context) ([]*domain.Amenity, error) {
	rows, err := r.db.conn(ctx).Query(ctx,
		`SELECT id, name, created_at, updated_at FROM amenities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenities: %w", err)
	}
	defer rows.Close()

	amenities := []*domain.Amenity{}
	for rows.Next() {
		amenity, err := scanAmenity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan amenity: %w", err)
		}
		amenities = append(amenities, amenity)
	}
	return amenities, rows.Err()
}

func (r *amenityRepository) Update(ctx context.Context, amenity *domain.Amenity) error {
	tag, err := r.db.conn(ctx).Exec(ctx,
		`UPDATE amenities SET name = $1, updated_at = $2 WHERE id = $3`,
		amenity.Name, amenity.UpdatedAt, amenity.ID)
	if err != nil {
		return fmt.Errorf("failed to update amenity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAmenityNotFound
	}
	return nil
}

func (r *amenityRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM amenities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete amenity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAmenityNotFound
	}
	return nil
}

func (r *amenityRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Amenity, error) {
	if len(ids) == 0 {
		return []*domain.Amenity{}, nil
	}

	rows, err := r.db.conn(ctx).Query(ctx,
		`SELECT id, name, created_at, updated_at FROM amenities WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get amenities by ids: %w", err)
	}
	defer rows.Close()

	amenities := make([]*domain.Amenity, 0, len(ids))
	for rows.Next() {
		amenity, err := scanAmenity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan amenity: %w", err)
		}
		amenities = append(amenities, amenity)
	}
	return amenities, rows.Err()
}

// =============================================================================
// Review Repository
// =============================================================================

// reviewRepository implements repository.ReviewRepository for PostgreSQL.
type reviewRepository struct {
	db *DB
}

// NewReviewRepository creates a new PostgreSQL review repository.
func NewReviewRepository(db *DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Add(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, listing_id, author_id, text, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			rating = EXCLUDED.rating,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		review.ID, review.ListingID, review.AuthorID,
		review.Text, review.Rating, review.CreatedAt, review.UpdatedAt)
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

func scanReview(row pgx.Row) (*domain.Review, error) {
	review := &domain.Review{}
	err := row.Scan(
		&review.ID, &review.ListingID, &review.AuthorID,
		&review.Text, &review.Rating, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (r *reviewRepository) Get(ctx context.Context, id string) (*domain.Review, error) {
	review, err := scanReview(r.db.conn(ctx).QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

func (r *reviewRepository) GetAll(ctx context.Context) ([]*domain.Review, error) {
	return r.queryReviews(ctx,
		`SELECT `+reviewColumns+` FROM reviews ORDER BY created_at`)
}

func (r *reviewRepository) GetByListing(ctx context.Context, listingID string) ([]*domain.Review, error) {
	return r.queryReviews(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE listing_id = $1 ORDER BY created_at`, listingID)
}

func (r *reviewRepository) GetByAuthor(ctx context.Context, authorID string) ([]*domain.Review, error) {
	return r.queryReviews(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE author_id = $1 ORDER BY created_at`, authorID)
}

func (r *reviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]*domain.Review, error) {
	rows, err := r.db.conn(ctx).Query(ctx, query, args...)
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

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	tag, err := r.db.conn(ctx).Exec(ctx,
		`UPDATE reviews SET text = $1, rating = $2, updated_at = $3 WHERE id = $4`,
		review.Text, review.Rating, review.UpdatedAt, review.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) GetByAuthorAndListing(ctx context.Context, authorID, listingID string) (*domain.Review, error) {
	review, err := scanReview(r.db.conn(ctx).QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE author_id = $1 AND listing_id = $2`,
		authorID, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review by author and listing: %w", err)
	}
	return review, nil
}
