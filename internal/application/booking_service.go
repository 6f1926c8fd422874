package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/turfhub/service-turf/internal/adapter"
	bookingDomain "github.com/turfhub/service-turf/internal/domain/booking"
	userDomain "github.com/turfhub/service-turf/internal/domain/user"
	venueDomain "github.com/turfhub/service-turf/internal/domain/venue"
	"github.com/turfhub/service-turf/internal/events"
	"github.com/turfhub/service-turf/pkg/domain"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	publishTimeout   = 5 * time.Second
)

// BookingService admits bookings and serves ledger reads.
type BookingService struct {
	bookings  bookingDomain.BookingRepository
	venues    venueDomain.VenueRepository
	users     userDomain.UserRepository
	locker    adapter.SlotLocker
	publisher events.Publisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService. publisher may be nil.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	venues venueDomain.VenueRepository,
	users userDomain.UserRepository,
	locker adapter.SlotLocker,
	publisher events.Publisher,
	logger *zap.Logger,
) *BookingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &BookingService{
		bookings:  bookings,
		venues:    venues,
		users:     users,
		locker:    locker,
		publisher: publisher,
		logger:    logger,
	}
}

// Book reserves venueID for slot on date on behalf of userID.
//
// The existence check and the insert are not atomic on their own. The slot
// lock narrows the window and the ledger's unique key closes it: a duplicate
// insert comes back from the repository as a Conflict.
func (s *BookingService) Book(ctx context.Context, venueID, userID uuid.UUID, req BookingRequest) (*BookingResponse, error) {
	day, err := bookingDomain.ParseDate(req.BookingDate)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if err := bookingDomain.ValidateSlot(req.Timeslot); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	venue, err := s.venues.FindByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	b, err := s.admit(ctx, venueID, userID, day, req.Timeslot)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Info("booking rejected",
				zap.String("venue_id", venueID.String()),
				zap.String("date", req.BookingDate),
				zap.String("slot", req.Timeslot),
				zap.String("reason", err.Error()),
			)
		}
		return nil, err
	}

	s.logger.Info("booking admitted",
		zap.String("booking_id", b.ID().String()),
		zap.String("venue_id", venueID.String()),
		zap.String("user_id", userID.String()),
		zap.String("date", req.BookingDate),
		zap.String("slot", b.Slot()),
	)

	s.publishCreated(ctx, b, venue, user)

	return &BookingResponse{
		StatusCode:       http.StatusOK,
		BookingID:        b.ID(),
		ConfirmationCode: b.ConfirmationCode(),
	}, nil
}

func (s *BookingService) admit(ctx context.Context, venueID, userID uuid.UUID, day time.Time, slot string) (*bookingDomain.Booking, error) {
	release, err := s.locker.Acquire(ctx, adapter.SlotKey(venueID, day.Format(bookingDomain.DateLayout), slot))
	if err != nil {
		return nil, err
	}
	defer release()

	exists, err := s.bookings.ExistsByVenueDateSlot(ctx, venueID, day, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if exists {
		return nil, domain.NewConflictError("slot already booked")
	}

	b, err := bookingDomain.NewBooking(venueID, userID, day, slot)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if err := s.bookings.Save(ctx, b); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	return b, nil
}

func (s *BookingService) publishCreated(ctx context.Context, b *bookingDomain.Booking, v *venueDomain.Venue, u *userDomain.User) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := events.BookingCreatedEvent{
		BookingID:        b.ID().String(),
		VenueID:          v.ID().String(),
		VenueName:        v.Name(),
		UserID:           u.ID().String(),
		UserEmail:        u.Email(),
		BookingDate:      b.Date().Format(bookingDomain.DateLayout),
		Timeslot:         b.Slot(),
		ConfirmationCode: b.ConfirmationCode(),
		CreatedAt:        b.CreatedAt(),
	}
	if err := s.publisher.PublishBookingCreated(pubCtx, event); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("booking_id", event.BookingID),
			zap.Error(err),
		)
	}
}

// GetByConfirmationCode looks up a booking by its confirmation code.
func (s *BookingService) GetByConfirmationCode(ctx context.Context, code string) (*BookingDTO, error) {
	b, err := s.bookings.FindByConfirmationCode(ctx, code)
	if err != nil {
		return nil, err
	}
	names := s.venueNames(ctx, []*bookingDomain.Booking{b})
	return toBookingDTO(b, names[b.VenueID()]), nil
}

// ListUserBookings returns a user's bookings, newest first.
func (s *BookingService) ListUserBookings(ctx context.Context, userID uuid.UUID) (*UserBookingsResponse, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	bookings, err := s.bookings.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	names := s.venueNames(ctx, bookings)
	dtos := make([]*BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b, names[b.VenueID()])
	}
	return &UserBookingsResponse{StatusCode: http.StatusOK, BookingList: dtos}, nil
}

// ListAllBookings returns one page of the ledger (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) (*BookingPage, error) {
	page, limit = normalizePage(page, limit)
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	names := s.venueNames(ctx, bookings)
	dtos := make([]*BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b, names[b.VenueID()])
	}
	return &BookingPage{Items: dtos, Total: total, Page: page, Limit: limit}, nil
}

// venueNames resolves display names for the venues referenced by bookings.
// Lookup failures leave the name blank.
func (s *BookingService) venueNames(ctx context.Context, bookings []*bookingDomain.Booking) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	for _, b := range bookings {
		if _, ok := names[b.VenueID()]; ok {
			continue
		}
		v, err := s.venues.FindByID(ctx, b.VenueID())
		if err != nil {
			names[b.VenueID()] = ""
			continue
		}
		names[b.VenueID()] = v.Name()
	}
	return names
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
