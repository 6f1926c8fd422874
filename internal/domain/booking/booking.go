package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format of a booking date.
const DateLayout = "2006-01-02"

// MaxSlotLength bounds the opaque slot label.
const MaxSlotLength = 20

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusBooked Status = "BOOKED"
	// StatusCancelled is reserved; no operation produces it yet.
	StatusCancelled Status = "CANCELLED"
)

// Booking reserves one venue for one slot label on one calendar date.
type Booking struct {
	id               uuid.UUID
	venueID          uuid.UUID
	userID           uuid.UUID
	date             time.Time
	slot             string
	status           Status
	confirmationCode string
	createdAt        time.Time
}

// NewBooking creates a BOOKED booking with a fresh confirmation code.
func NewBooking(venueID, userID uuid.UUID, date time.Time, slot string) (*Booking, error) {
	if venueID == uuid.Nil {
		return nil, fmt.Errorf("venue id is required")
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}

	return &Booking{
		id:               uuid.New(),
		venueID:          venueID,
		userID:           userID,
		date:             TruncateDate(date),
		slot:             slot,
		status:           StatusBooked,
		confirmationCode: uuid.NewString(),
		createdAt:        time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Booking from persistence.
func Reconstruct(id, venueID, userID uuid.UUID, date time.Time, slot string, status Status, confirmationCode string, createdAt time.Time) *Booking {
	return &Booking{
		id: id, venueID: venueID, userID: userID, date: TruncateDate(date), slot: slot,
		status: status, confirmationCode: confirmationCode, createdAt: createdAt,
	}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("bookingDate must be in YYYY-MM-DD format")
	}
	return d, nil
}

// TruncateDate drops the clock and zone, keeping only the calendar date as UTC midnight.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateSlot checks that the slot label is non-blank and fits the column.
// The label is stored and compared byte for byte.
func ValidateSlot(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("timeslot is required")
	}
	if len([]rune(s)) > MaxSlotLength {
		return fmt.Errorf("timeslot must be at most %d characters", MaxSlotLength)
	}
	return nil
}

// Getters.
func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) VenueID() uuid.UUID       { return b.venueID }
func (b *Booking) UserID() uuid.UUID        { return b.userID }
func (b *Booking) Date() time.Time          { return b.date }
func (b *Booking) Slot() string             { return b.slot }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) ConfirmationCode() string { return b.confirmationCode }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
