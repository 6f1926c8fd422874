package events

import (
	"context"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/turfhub/service-turf/pkg/kafka"
)

// Notifier is told about every admitted booking read back from the topic.
type Notifier interface {
	BookingConfirmed(ctx context.Context, event BookingCreatedEvent) error
}

// BookingEventConsumer listens to booking events and forwards confirmations to a Notifier.
type BookingEventConsumer struct {
	consumer *kafka.Consumer
	notifier Notifier
	logger   *zap.Logger
}

// NewBookingEventConsumer creates a new consumer for booking events.
func NewBookingEventConsumer(
	brokers []string,
	groupID string,
	notifier Notifier,
	logger *zap.Logger,
) *BookingEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicBookingEvents, logger)
	return &BookingEventConsumer{
		consumer: consumer,
		notifier: notifier,
		logger:   logger,
	}
}

// Start begins consuming booking events. It blocks until the context is cancelled.
func (c *BookingEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// handleMessage routes incoming Kafka messages to the appropriate handler.
func (c *BookingEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	return dispatch(ctx, msg.Value, c.notifier, c.logger)
}

func dispatch(ctx context.Context, raw []byte, notifier Notifier, logger *zap.Logger) error {
	cloudEvent, err := kafka.ParseCloudEvent(raw)
	if err != nil {
		logger.Error("failed to parse cloud event from booking topic",
			zap.Error(err),
			zap.String("raw", string(raw)),
		)
		return err
	}

	logger.Info("received booking event",
		zap.String("type", cloudEvent.Type),
		zap.String("id", cloudEvent.ID),
	)

	switch {
	case strings.EqualFold(cloudEvent.Type, BookingCreated):
		var event BookingCreatedEvent
		if err := cloudEvent.ParseData(&event); err != nil {
			logger.Error("failed to parse BookingCreatedEvent data", zap.Error(err))
			return err
		}
		return notifier.BookingConfirmed(ctx, event)

	default:
		logger.Debug("ignoring unhandled booking event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

// Close closes the underlying Kafka consumer.
func (c *BookingEventConsumer) Close() error {
	return c.consumer.Close()
}
