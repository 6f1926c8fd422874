package events

import (
	"context"

	"github.com/turfhub/service-turf/pkg/kafka"
)

// KafkaPublisher writes CloudEvents to the booking topic, keyed by venue so
// events for one venue stay ordered.
type KafkaPublisher struct {
	producer *kafka.Producer
}

// NewKafkaPublisher wraps producer.
func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// PublishBookingCreated implements Publisher.
func (p *KafkaPublisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	ce, err := kafka.NewCloudEvent(Source, BookingCreated, event)
	if err != nil {
		return err
	}
	ce.Subject = event.VenueID
	return p.producer.PublishEvent(ctx, TopicBookingEvents, ce)
}

// Close closes the producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
