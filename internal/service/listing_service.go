package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

// ListingService handles listing operations.
type ListingService struct {
	listingRepo repository.ListingRepository
	accountRepo repository.AccountRepository
	relations   *Relations
	tx          repository.TxManager
	logger      zerolog.Logger
}

// NewListingService creates a new ListingService.
func NewListingService(
	listingRepo repository.ListingRepository,
	accountRepo repository.AccountRepository,
	relations *Relations,
	tx repository.TxManager,
	logger zerolog.Logger,
) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		accountRepo: accountRepo,
		relations:   relations,
		tx:          tx,
		logger:      logger.With().Str("service", "listing").Logger(),
	}
}

// Create registers a new listing from a payload with owner_id, title,
// description, price, latitude and longitude fields, plus an optional
// amenities id list. Unresolved amenity ids are skipped. The title must
// be unique among the owner's listings.
func (s *ListingService) Create(ctx context.Context, payload map[string]any) (*domain.Listing, error) {
	ownerID, err := domain.ValidateID(payload["owner_id"], "Owner")
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.Get(ctx, ownerID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrOwnerNotFound, ownerID)
		}
		return nil, err
	}

	title, err := domain.ValidateTitle(payload["title"])
	if err != nil {
		return nil, err
	}
	description, err := domain.ValidateDescription(payload["description"])
	if err != nil {
		return nil, err
	}
	price, err := domain.ValidatePrice(payload["price"])
	if err != nil {
		return nil, err
	}
	latitude, err := domain.ValidateLatitude(payload["latitude"])
	if err != nil {
		return nil, err
	}
	longitude, err := domain.ValidateLongitude(payload["longitude"])
	if err != nil {
		return nil, err
	}

	if _, err := s.listingRepo.GetByTitleAndOwner(ctx, title, ownerID); err == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrTitleTaken, title)
	} else if !errors.Is(err, domain.ErrListingNotFound) {
		return nil, err
	}

	listing := domain.NewListing(ownerID, title, description, price, latitude, longitude)

	if raw, ok := payload["amenities"]; ok {
		ids, err := domain.ValidateIDList(raw, "Amenities")
		if err != nil {
			return nil, err
		}
		existing, err := s.relations.ExistingAmenities(ctx, ids)
		if err != nil {
			return nil, err
		}
		listing.AmenityIDs = existing
	}

	if err := s.listingRepo.Add(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("listing_id", listing.ID).
		Str("owner_id", ownerID).
		Msg("listing created")
	return listing, nil
}

// Update applies the allowed fields of the payload to an existing
// listing: title, description, price, latitude, longitude and amenities.
// Unknown keys are ignored; a payload that changes nothing is rejected.
// Unlike creation, the amenities list is replaced all-or-nothing and
// every id must resolve. Only the owner or an admin may update.
func (s *ListingService) Update(ctx context.Context, id string, payload map[string]any, caller Caller) (*domain.Listing, error) {
	listing, err := s.listingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Allows(listing.OwnerID) {
		return nil, domain.ErrForbidden
	}

	changed := false

	if raw, ok := payload["title"]; ok {
		title, err := domain.ValidateTitle(raw)
		if err != nil {
			return nil, err
		}
		if title != listing.Title {
			other, err := s.listingRepo.GetByTitleAndOwner(ctx, title, listing.OwnerID)
			if err == nil && other.ID != listing.ID {
				return nil, fmt.Errorf("%w: %q", domain.ErrTitleTaken, title)
			}
			if err != nil && !errors.Is(err, domain.ErrListingNotFound) {
				return nil, err
			}
			listing.Title = title
			changed = true
		}
	}
	if raw, ok := payload["description"]; ok {
		description, err := domain.ValidateDescription(raw)
		if err != nil {
			return nil, err
		}
		if description != listing.Description {
			listing.Description = description
			changed = true
		}
	}
	if raw, ok := payload["price"]; ok {
		price, err := domain.ValidatePrice(raw)
		if err != nil {
			return nil, err
		}
		if price != listing.Price {
			listing.Price = price
			changed = true
		}
	}
	if raw, ok := payload["latitude"]; ok {
		latitude, err := domain.ValidateLatitude(raw)
		if err != nil {
			return nil, err
		}
		if latitude != listing.Latitude {
			listing.Latitude = latitude
			changed = true
		}
	}
	if raw, ok := payload["longitude"]; ok {
		longitude, err := domain.ValidateLongitude(raw)
		if err != nil {
			return nil, err
		}
		if longitude != listing.Longitude {
			listing.Longitude = longitude
			changed = true
		}
	}
	if raw, ok := payload["amenities"]; ok {
		ids, err := domain.ValidateIDList(raw, "Amenities")
		if err != nil {
			return nil, err
		}
		before := slices.Clone(listing.AmenityIDs)
		if err := s.relations.SetAmenities(ctx, listing, ids); err != nil {
			return nil, err
		}
		if !slices.Equal(before, listing.AmenityIDs) {
			changed = true
		}
	}

	if !changed {
		return nil, domain.ErrNoChanges
	}

	listing.Touch()
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		return s.listingRepo.Update(ctx, listing)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("listing_id", listing.ID).Msg("listing updated")
	return listing, nil
}

// Get retrieves a listing by id.
func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listingRepo.Get(ctx, id)
}

// List returns all listings.
func (s *ListingService) List(ctx context.Context) ([]*domain.Listing, error) {
	return s.listingRepo.GetAll(ctx)
}

// GetByOwner returns the listings owned by the given account. The owner
// must exist.
func (s *ListingService) GetByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	if _, err := s.accountRepo.Get(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.listingRepo.GetByOwner(ctx, ownerID)
}
