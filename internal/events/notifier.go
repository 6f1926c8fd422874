package events

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier records booking confirmations as structured log entries.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// BookingConfirmed implements Notifier.
func (n *LogNotifier) BookingConfirmed(_ context.Context, event BookingCreatedEvent) error {
	n.logger.Info("booking confirmed",
		zap.String("booking_id", event.BookingID),
		zap.String("venue", event.VenueName),
		zap.String("user_email", event.UserEmail),
		zap.String("date", event.BookingDate),
		zap.String("timeslot", event.Timeslot),
		zap.String("confirmation_code", event.ConfirmationCode),
	)
	return nil
}
