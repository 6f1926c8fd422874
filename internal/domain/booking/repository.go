package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines persistence operations for the booking ledger.
// Save must return a Conflict domain error when (venue, date, slot) is taken.
type BookingRepository interface {
	Save(ctx context.Context, b *Booking) error
	ExistsByVenueDateSlot(ctx context.Context, venueID uuid.UUID, date time.Time, slot string) (bool, error)
	// FindBookedVenueIDs returns the subset of venueIDs holding a booking at (date, slot).
	FindBookedVenueIDs(ctx context.Context, venueIDs []uuid.UUID, date time.Time, slot string) (map[uuid.UUID]bool, error)
	FindByConfirmationCode(ctx context.Context, code string) (*Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Booking, error)
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)
}
