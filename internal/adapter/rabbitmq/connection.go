package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/YelzhanWeb/basecart/internal/config"
)

const (
	connectionName = "basecart"
	heartbeat      = 10 * time.Second
)

var errConnectionClosed = errors.New("rabbitmq connection closed")

// Connection hands out channels and survives broker restarts through
// Reconnect.
type Connection interface {
	Channel() (Channel, error)
	Close() error
	IsClosed() bool
	Reconnect() error
}

// Channel is the part of *amqp.Channel the notification fanout needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	NotifyClose(receiver chan *amqp.Error) chan *amqp.Error
	Close() error
}

type amqpConnection struct {
	url    string
	mu     sync.RWMutex
	conn   *amqp.Connection
	closed bool
}

// Connect dials the broker described by cfg.
func Connect(cfg config.RabbitMQConfig) (Connection, error) {
	c := &amqpConnection{url: cfg.URL()}
	conn, err := c.dial()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	c.conn = conn
	return c, nil
}

func (c *amqpConnection) dial() (*amqp.Connection, error) {
	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(connectionName)
	return amqp.DialConfig(c.url, amqp.Config{
		Heartbeat:  heartbeat,
		Properties: props,
	})
}

func (c *amqpConnection) Channel() (Channel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, errConnectionClosed
	}
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (c *amqpConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.conn.IsClosed() {
		return nil
	}
	return c.conn.Close()
}

func (c *amqpConnection) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed || c.conn.IsClosed()
}

// Reconnect replaces a connection the broker dropped. It refuses after Close.
func (c *amqpConnection) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errConnectionClosed
	}
	conn, err := c.dial()
	if err != nil {
		return fmt.Errorf("failed to reconnect to RabbitMQ: %w", err)
	}
	c.conn = conn
	return nil
}
