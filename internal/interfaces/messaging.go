package interfaces

import (
	"context"
	"time"

	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is published on the notifications exchange for every new order
// and every status change.
type OrderEvent struct {
	Type          string          `json:"type"`
	OrderID       int64           `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	BusinessID    *int64          `json:"business_id,omitempty"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail *string         `json:"customer_email,omitempty"`
	OldStatus     domain.Status   `json:"old_status,omitempty"`
	NewStatus     domain.Status   `json:"new_status"`
	Total         decimal.Decimal `json:"total"`
	Timestamp     time.Time       `json:"timestamp"`
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

type MessageConsumer interface {
	ConsumeNotifications(ctx context.Context, handler NotificationHandler) error
}

type NotificationHandler func(ctx context.Context, body []byte) error

// Metrics records order pipeline and menu import counters.
type Metrics interface {
	OrderCreated(businessID *int64)
	OrderStatusChanged(status domain.Status)
	MenuItemsImported(imported, failed int)
}
