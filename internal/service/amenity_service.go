package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

// AmenityService handles amenity operations.
type AmenityService struct {
	amenityRepo repository.AmenityRepository
	logger      zerolog.Logger
}

// NewAmenityService creates a new AmenityService.
func NewAmenityService(amenityRepo repository.AmenityRepository, logger zerolog.Logger) *AmenityService {
	return &AmenityService{
		amenityRepo: amenityRepo,
		logger:      logger.With().Str("service", "amenity").Logger(),
	}
}

// Create registers a new amenity from a payload with a name field.
func (s *AmenityService) Create(ctx context.Context, payload map[string]any) (*domain.Amenity, error) {
	name, err := domain.ValidateAmenityName(payload["name"])
	if err != nil {
		return nil, err
	}

	amenity := domain.NewAmenity(name)
	if err := s.amenityRepo.Add(ctx, amenity); err != nil {
		return nil, err
	}

	s.logger.Info().Str("amenity_id", amenity.ID).Msg("amenity created")
	return amenity, nil
}

// Update renames an existing amenity.
func (s *AmenityService) Update(ctx context.Context, id string, payload map[string]any) (*domain.Amenity, error) {
	amenity, err := s.amenityRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, ok := payload["name"]; ok {
		name, err := domain.ValidateAmenityName(raw)
		if err != nil {
			return nil, err
		}
		amenity.Name = name
	}

	amenity.Touch()
	if err := s.amenityRepo.Update(ctx, amenity); err != nil {
		return nil, err
	}

	s.logger.Info().Str("amenity_id", amenity.ID).Msg("amenity updated")
	return amenity, nil
}

// Get retrieves an amenity by id.
func (s *AmenityService) Get(ctx context.Context, id string) (*domain.Amenity, error) {
	return s.amenityRepo.Get(ctx, id)
}

// List returns all amenities.
func (s *AmenityService) List(ctx context.Context) ([]*domain.Amenity, error) {
	return s.amenityRepo.GetAll(ctx)
}
