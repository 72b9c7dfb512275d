// Package events публикация и обработка событий бронирования через watermill
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

// Publisher публикует события бронирования
type Publisher struct {
	pub message.Publisher
}

// NewPublisher создает публикатор поверх любого watermill Publisher
func NewPublisher(pub message.Publisher) *Publisher {
	return &Publisher{pub: pub}
}

// BookingCreated публикует booking.created
func (p *Publisher) BookingCreated(ctx context.Context, evt BookingCreated) error {
	return p.publish(ctx, TopicBookingCreated, evt.OccurredAt, evt)
}

// BookingCancelled публикует booking.cancelled
func (p *Publisher) BookingCancelled(ctx context.Context, evt BookingStatusChanged) error {
	return p.publish(ctx, TopicBookingCancelled, evt.OccurredAt, evt)
}

// BookingApproved публикует booking.approved
func (p *Publisher) BookingApproved(ctx context.Context, evt BookingStatusChanged) error {
	return p.publish(ctx, TopicBookingApproved, evt.OccurredAt, evt)
}

// CompensationFailed публикует booking.compensation_failed
func (p *Publisher) CompensationFailed(ctx context.Context, evt CompensationFailed) error {
	return p.publish(ctx, TopicCompensationFailed, evt.OccurredAt, evt)
}

func (p *Publisher) publish(ctx context.Context, topic string, occurredAt time.Time, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMarshal, topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set(metadataEventType, topic)
	msg.Metadata.Set(metadataEventOccurredAt, occurredAt.UTC().Format(time.RFC3339))

	if err := p.pub.Publish(topic, msg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, topic, err)
	}
	return nil
}
