package events

import (
	"context"
	"time"
)

// Event routing names.
const (
	Source             = "service-turf"
	TopicBookingEvents = "booking.events"
	ExchangeBooking    = "booking.exchange"
	BookingCreated     = "booking.created"
)

// BookingCreatedEvent is the payload published after a booking is admitted.
type BookingCreatedEvent struct {
	BookingID        string    `json:"bookingId"`
	VenueID          string    `json:"venueId"`
	VenueName        string    `json:"venueName"`
	UserID           string    `json:"userId"`
	UserEmail        string    `json:"userEmail"`
	BookingDate      string    `json:"bookingDate"`
	Timeslot         string    `json:"timeslot"`
	ConfirmationCode string    `json:"confirmationCode"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Publisher delivers booking events to a broker.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingCreated(context.Context, BookingCreatedEvent) error { return nil }
func (NoopPublisher) Close() error                                                   { return nil }
