package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

const NotificationsExchange = "notifications_fanout"

type publisher struct {
	conn Connection
}

func NewPublisher(conn Connection) interfaces.EventPublisher {
	return &publisher{conn: conn}
}

func (p *publisher) PublishOrderEvent(ctx context.Context, event interfaces.OrderEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(NotificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.PublishWithContext(ctx, NotificationsExchange, event.Type, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         event.Type,
		Timestamp:    event.Timestamp,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// NopPublisher drops events. It is used when RabbitMQ is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, interfaces.OrderEvent) error { return nil }
