package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

// listingRepository implements repository.ListingRepository for SQLite.
//
// Amenity links live in the listing_amenities junction table and are
// replaced wholesale on Add/Update. Review back-links are derived from
// the reviews table on read; the synchronizer's link/unlink calls become
// visible here through the review rows themselves.
type listingRepository struct {
	db *DB
}

// NewListingRepository creates a new SQLite listing repository.
func NewListingRepository(db *DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

// Add inserts or overwrites the listing and its amenity links.
func (r *listingRepository) Add(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (id, owner_id, title, description, price, latitude, longitude, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			price = excluded.price,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			updated_at = excluded.updated_at
	`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		listing.ID,
		listing.OwnerID,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Latitude,
		listing.Longitude,
		listing.CreatedAt.Format(time.RFC3339Nano),
		listing.UpdatedAt.Format(time.RFC3339Nano),
	)
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

// replaceAmenityLinks rewrites the junction rows for a listing.
func (r *listingRepository) replaceAmenityLinks(ctx context.Context, listingID string, amenityIDs []string) error {
	q := r.db.conn(ctx)

	if _, err := q.ExecContext(ctx, `DELETE FROM listing_amenities WHERE listing_id = ?`, listingID); err != nil {
		return fmt.Errorf("failed to clear amenity links: %w", err)
	}
	for _, amenityID := range amenityIDs {
		_, err := q.ExecContext(ctx,
			`INSERT INTO listing_amenities (listing_id, amenity_id) VALUES (?, ?)`,
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

// loadLinks populates AmenityIDs and ReviewIDs for a listing.
func (r *listingRepository) loadLinks(ctx context.Context, listing *domain.Listing) error {
	q := r.db.conn(ctx)

	rows, err := q.QueryContext(ctx,
		`SELECT amenity_id FROM listing_amenities WHERE listing_id = ?`, listing.ID)
	if err != nil {
		return fmt.Errorf("failed to load amenity links: %w", err)
	}
	defer rows.Close()

	listing.AmenityIDs = []string{}
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

	reviewRows, err := q.QueryContext(ctx,
		`SELECT id FROM reviews WHERE listing_id = ? ORDER BY created_at`, listing.ID)
	if err != nil {
		return fmt.Errorf("failed to load review links: %w", err)
	}
	defer reviewRows.Close()

	listing.ReviewIDs = []string{}
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

func scanListing(row interface{ Scan(dest ...any) error }) (*domain.Listing, error) {
	listing := &domain.Listing{}
	var createdAt, updatedAt string

	err := row.Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.Title,
		&listing.Description,
		&listing.Price,
		&listing.Latitude,
		&listing.Longitude,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	listing.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	listing.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return listing, nil
}

// Get retrieves a listing by id including its links.
func (r *listingRepository) Get(ctx context.Context, id string) (*domain.Listing, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)

	listing, err := scanListing(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if err := r.loadLinks(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// GetAll returns all listings including their links.
func (r *listingRepository) GetAll(ctx context.Context) ([]*domain.Listing, error) {
	return r.queryListings(ctx,
		`SELECT `+listingColumns+` FROM listings ORDER BY created_at`)
}

// GetByOwner returns all listings owned by the given account.
func (r *listingRepository) GetByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	return r.queryListings(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE owner_id = ? ORDER BY created_at`, ownerID)
}

func (r *listingRepository) queryListings(ctx context.Context, query string, args ...any) ([]*domain.Listing, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
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

// Update persists changed fields and amenity links of an existing listing.
func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	query := `
		UPDATE listings
		SET title = ?, description = ?, price = ?, latitude = ?, longitude = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Latitude,
		listing.Longitude,
		listing.UpdatedAt.Format(time.RFC3339Nano),
		listing.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", domain.ErrTitleTaken, listing.Title)
		}
		return fmt.Errorf("failed to update listing: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrListingNotFound
	}

	return r.replaceAmenityLinks(ctx, listing.ID, listing.AmenityIDs)
}

// Delete removes a listing by id. Junction rows and reviews cascade.
func (r *listingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.conn(ctx).ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// GetByTitleAndOwner retrieves the listing with this exact title and owner.
func (r *listingRepository) GetByTitleAndOwner(ctx context.Context, title, ownerID string) (*domain.Listing, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE title = ? AND owner_id = ?`, title, ownerID)

	listing, err := scanListing(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing by title: %w", err)
	}
	if err := r.loadLinks(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}
