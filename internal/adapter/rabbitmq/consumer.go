package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

const reconnectDelay = 5 * time.Second

type consumer struct {
	conn   Connection
	logger logger.Logger
	delay  time.Duration
}

func NewConsumer(conn Connection, log logger.Logger) interfaces.MessageConsumer {
	return &consumer{conn: conn, logger: log, delay: reconnectDelay}
}

// ConsumeNotifications binds a temporary queue to the notifications exchange
// and feeds every message to handler until ctx is cancelled. A dropped channel
// is re-established after a delay.
func (c *consumer) ConsumeNotifications(ctx context.Context, handler interfaces.NotificationHandler) error {
	for {
		err := c.consume(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		c.logger.Warn("consumer_disconnected", fmt.Sprintf("Notifications consumer disconnected, reconnecting in %s", c.delay), "",
			map[string]interface{}{"error": err.Error()})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.delay):
		}

		if c.conn.IsClosed() {
			if err := c.conn.Reconnect(); err != nil {
				c.logger.Error("rabbitmq_reconnect_failed", "Failed to reconnect to RabbitMQ", "", nil, err)
			}
		}
	}
}

func (c *consumer) consume(ctx context.Context, handler interfaces.NotificationHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose(make(chan *amqp.Error, 1))

	if err := ch.ExchangeDeclare(NotificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", NotificationsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return errors.New("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return errors.New("messages channel closed")
			}
			// Notifications are fire and forget; the handler logs its own failures.
			_ = handler(ctx, msg.Body)
		}
	}
}
