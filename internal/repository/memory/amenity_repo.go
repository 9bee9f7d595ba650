package memory

import (
	"context"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

type amenityRecord struct {
	amenity domain.Amenity
}

// amenityRepository implements repository.AmenityRepository in memory.
type amenityRepository struct {
	store *Store
}

// NewAmenityRepository creates an in-memory amenity repository.
func NewAmenityRepository(store *Store) repository.AmenityRepository {
	return &amenityRepository{store: store}
}

func (r *amenityRepository) Add(ctx context.Context, amenity *domain.Amenity) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	r.store.amenities[amenity.ID] = &amenityRecord{amenity: *amenity}
	return nil
}

func (r *amenityRepository) Get(ctx context.Context, id string) (*domain.Amenity, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	rec, ok := r.store.amenities[id]
	if !ok {
		return nil, domain.ErrAmenityNotFound
	}
	amenity := rec.amenity
	return &amenity, nil
}

func (r *amenityRepository) GetAll(ctx context.Context) ([]*domain.Amenity, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	amenities := make([]*domain.Amenity, 0, len(r.store.amenities))
	for _, rec := range r.store.amenities {
		amenity := rec.amenity
		amenities = append(amenities, &amenity)
	}
	return amenities, nil
}

func (r *amenityRepository) Update(ctx context.Context, amenity *domain.Amenity) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.amenities[amenity.ID]; !ok {
		return domain.ErrAmenityNotFound
	}
	r.store.amenities[amenity.ID] = &amenityRecord{amenity: *amenity}
	return nil
}

func (r *amenityRepository) Delete(ctx context.Context, id string) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.amenities[id]; !ok {
		return domain.ErrAmenityNotFound
	}
	delete(r.store.amenities, id)
	return nil
}

func (r *amenityRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Amenity, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	amenities := make([]*domain.Amenity, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.store.amenities[id]; ok {
			amenity := rec.amenity
			amenities = append(amenities, &amenity)
		}
	}
	return amenities, nil
}
