package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/turfhub/service-turf/internal/domain/booking"
	venueDomain "github.com/turfhub/service-turf/internal/domain/venue"
	"github.com/turfhub/service-turf/pkg/domain"
)

// AvailabilityService answers which venues are free for a date and slot.
type AvailabilityService struct {
	venues   venueDomain.VenueRepository
	bookings bookingDomain.BookingRepository
	logger   *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(venues venueDomain.VenueRepository, bookings bookingDomain.BookingRepository, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{venues: venues, bookings: bookings, logger: logger}
}

// FindAvailable lists active venues of sportType with no booking at exactly (date, slot).
// A booking at an overlapping but differently labelled slot does not exclude a venue.
func (s *AvailabilityService) FindAvailable(ctx context.Context, sportType, date, slot string) ([]*VenueDTO, error) {
	if strings.TrimSpace(sportType) == "" {
		return nil, domain.NewValidationError("turfType is required")
	}
	if strings.TrimSpace(slot) == "" {
		return nil, domain.NewValidationError("bookingTime is required")
	}
	day, err := bookingDomain.ParseDate(date)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	candidates, err := s.venues.FindActiveBySportType(ctx, sportType)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	if len(candidates) == 0 {
		return []*VenueDTO{}, nil
	}

	ids := make([]uuid.UUID, len(candidates))
	for i, v := range candidates {
		ids[i] = v.ID()
	}
	booked, err := s.bookings.FindBookedVenueIDs(ctx, ids, day, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to check bookings: %w", err)
	}

	free := make([]*VenueDTO, 0, len(candidates))
	for _, v := range candidates {
		if !booked[v.ID()] {
			free = append(free, toVenueDTO(v))
		}
	}

	s.logger.Debug("availability computed",
		zap.String("sport_type", sportType),
		zap.String("date", date),
		zap.String("slot", slot),
		zap.Int("candidates", len(candidates)),
		zap.Int("free", len(free)),
	)
	return free, nil
}
