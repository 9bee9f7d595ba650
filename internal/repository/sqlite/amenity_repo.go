package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

// amenityRepository implements repository.AmenityRepository for SQLite.
type amenityRepository struct {
	db *DB
}

// NewAmenityRepository creates a new SQLite amenity repository.
func NewAmenityRepository(db *DB) repository.AmenityRepository {
	return &amenityRepository{db: db}
}

// Add inserts or overwrites the amenity (upsert by id).
func (r *amenityRepository) Add(ctx context.Context, amenity *domain.Amenity) error {
	query := `
		INSERT INTO amenities (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at
	`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		amenity.ID,
		amenity.Name,
		amenity.CreatedAt.Format(time.RFC3339Nano),
		amenity.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to add amenity: %w", err)
	}
	return nil
}

func scanAmenity(row interface{ Scan(dest ...any) error }) (*domain.Amenity, error) {
	amenity := &domain.Amenity{}
	var createdAt, updatedAt string

	if err := row.Scan(&amenity.ID, &amenity.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	amenity.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	amenity.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return amenity, nil
}

// Get retrieves an amenity by id.
func (r *amenityRepository) Get(ctx context.Context, id string) (*domain.Amenity, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM amenities WHERE id = ?`, id)

	amenity, err := scanAmenity(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrAmenityNotFound
		}
		return nil, fmt.Errorf("failed to get amenity: %w", err)
	}
	return amenity, nil
}

// GetAll returns all amenities ordered by name.
func (r *amenityRepository) GetAll(ctx context.Context) ([]*domain.Amenity, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx,
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

// Update persists changed fields of an existing amenity.
func (r *amenityRepository) Update(ctx context.Context, amenity *domain.Amenity) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`UPDATE amenities SET name = ?, updated_at = ? WHERE id = ?`,
		amenity.Name,
		amenity.UpdatedAt.Format(time.RFC3339Nano),
		amenity.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update amenity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAmenityNotFound
	}
	return nil
}

// Delete removes an amenity by id. Junction rows cascade.
func (r *amenityRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.conn(ctx).ExecContext(ctx, `DELETE FROM amenities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete amenity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAmenityNotFound
	}
	return nil
}

// GetByIDs returns the amenities whose ids exist; unresolved ids are
// silently absent from the result.
func (r *amenityRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Amenity, error) {
	if len(ids) == 0 {
		return []*domain.Amenity{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM amenities WHERE id IN (`+placeholders+`)`,
		args...)
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
