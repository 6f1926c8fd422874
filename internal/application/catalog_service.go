package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/turfhub/service-turf/internal/adapter"
	venueDomain "github.com/turfhub/service-turf/internal/domain/venue"
	"github.com/turfhub/service-turf/pkg/domain"
)

// CatalogService handles venue catalog use cases.
type CatalogService struct {
	venues venueDomain.VenueRepository
	cache  adapter.SportTypeCache
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(venues venueDomain.VenueRepository, cache adapter.SportTypeCache, logger *zap.Logger) *CatalogService {
	if cache == nil {
		cache = adapter.NoopSportTypeCache{}
	}
	return &CatalogService{venues: venues, cache: cache, logger: logger}
}

// ListSportTypes returns the distinct, normalized sport types of active venues.
func (s *CatalogService) ListSportTypes(ctx context.Context) ([]string, error) {
	if types, ok := s.cache.Get(ctx); ok {
		return types, nil
	}

	active, err := s.venues.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	types := venueDomain.SportTypes(active)
	s.cache.Set(ctx, types)
	return types, nil
}

// ListActiveVenues returns every active venue.
func (s *CatalogService) ListActiveVenues(ctx context.Context) ([]*VenueDTO, error) {
	active, err := s.venues.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return toVenueDTOs(active), nil
}

// GetActiveVenue returns an active venue; inactive venues are reported as not found.
func (s *CatalogService) GetActiveVenue(ctx context.Context, id uuid.UUID) (*VenueDTO, error) {
	v, err := s.venues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.Active() {
		return nil, domain.NewNotFoundError("venue", "")
	}
	return toVenueDTO(v), nil
}

// CreateVenue adds a venue (admin only).
func (s *CatalogService) CreateVenue(ctx context.Context, req CreateVenueRequest) (*AdminVenueDTO, error) {
	v, err := venueDomain.NewVenue(req.Name, req.Area, req.SportType, req.Price)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	exists, err := s.venues.ExistsByName(ctx, v.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to check venue name: %w", err)
	}
	if exists {
		return nil, domain.NewConflictError("venue name already exists")
	}

	if err := s.venues.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to save venue: %w", err)
	}
	s.cache.Invalidate(ctx)

	s.logger.Info("venue created",
		zap.String("venue_id", v.ID().String()),
		zap.String("name", v.Name()),
		zap.String("sport_type", v.SportType()),
	)
	return toAdminVenueDTO(v), nil
}

// SetVenueActive activates or deactivates a venue (admin only).
func (s *CatalogService) SetVenueActive(ctx context.Context, id uuid.UUID, active bool) (*AdminVenueDTO, error) {
	v, err := s.venues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v.SetActive(active)
	if err := s.venues.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}
	s.cache.Invalidate(ctx)

	s.logger.Info("venue availability changed",
		zap.String("venue_id", id.String()),
		zap.Bool("active", active),
	)
	return toAdminVenueDTO(v), nil
}
