package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

// numberRetries is how many random order numbers are tried after the
// clock-derived one collides.
const numberRetries = 5

type Service struct {
	businesses  interfaces.BusinessRepository
	orders      interfaces.OrderRepository
	idempotency interfaces.IdempotencyStore
	publisher   interfaces.EventPublisher
	metrics     interfaces.Metrics
	logger      logger.Logger
	now         func() time.Time
}

func NewService(
	businesses interfaces.BusinessRepository,
	orders interfaces.OrderRepository,
	idempotency interfaces.IdempotencyStore,
	publisher interfaces.EventPublisher,
	metrics interfaces.Metrics,
	logger logger.Logger,
) *Service {
	return &Service{
		businesses:  businesses,
		orders:      orders,
		idempotency: idempotency,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Submit(ctx context.Context, cmd interfaces.SubmitOrderCommand) (*domain.Order, error) {
	// 1. Validate and price the cart
	order, err := domain.NewOrder(cmd.CustomerName, cmd.CustomerPhone, cmd.CustomerEmail, cmd.PickupTime, cmd.Notes, cmd.Items, cmd.BusinessID)
	if err != nil {
		s.logger.Debug("validation_failed", "Order validation failed", "", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	if cmd.BusinessID != nil {
		if _, err := s.businesses.FindByID(ctx, *cmd.BusinessID); err != nil {
			return nil, err
		}
	}

	// 2. Reject replays of the same submission
	claimed := false
	if cmd.IdempotencyKey != "" {
		fresh, err := s.idempotency.Claim(ctx, cmd.IdempotencyKey)
		if err != nil {
			s.logger.Warn("idempotency_unavailable", "Idempotency check skipped", "", map[string]interface{}{"error": err.Error()})
		} else if !fresh {
			return nil, domain.ErrDuplicateRequest
		}
		claimed = err == nil
	}

	// 3. Persist under a unique order number
	if err := s.create(ctx, order); err != nil {
		s.logger.Error("db_transaction_failed", "Failed to create order", "", nil, err)
		if claimed {
			if relErr := s.idempotency.Release(ctx, cmd.IdempotencyKey); relErr != nil {
				s.logger.Warn("idempotency_release_failed", "Failed to release idempotency key", "", map[string]interface{}{"error": relErr.Error()})
			}
		}
		return nil, err
	}

	details := map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total.StringFixed(2),
	}
	if order.BusinessID != nil {
		details["business_id"] = *order.BusinessID
	}
	if order.CustomerEmail != nil {
		details["customer_email"] = *order.CustomerEmail
	}
	s.logger.Info("order_created", fmt.Sprintf("New order %s created", order.OrderNumber), order.OrderNumber, details)
	s.metrics.OrderCreated(order.BusinessID)

	// 4. Notify subscribers; the order stands even if this fails
	s.publish(ctx, interfaces.EventOrderCreated, order, "")
	return order, nil
}

func (s *Service) create(ctx context.Context, order *domain.Order) error {
	order.OrderNumber = domain.TimeOrderNumber(s.now())
	for attempt := 0; ; attempt++ {
		err := s.orders.Create(ctx, order)
		if !errors.Is(err, domain.ErrOrderNumberTaken) || attempt == numberRetries {
			return err
		}

		s.logger.Debug("order_number_taken", "Order number collision, regenerating", order.OrderNumber, nil)
		if order.OrderNumber, err = domain.RandomOrderNumber(); err != nil {
			return err
		}
	}
}

func (s *Service) publish(ctx context.Context, eventType string, order *domain.Order, oldStatus domain.Status) {
	event := interfaces.OrderEvent{
		Type:          eventType,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		BusinessID:    order.BusinessID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		OldStatus:     oldStatus,
		NewStatus:     order.Status,
		Total:         order.Total,
		Timestamp:     s.now(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Error("rabbitmq_publish_failed", "Failed to publish order event", order.OrderNumber,
			map[string]interface{}{"event": eventType}, err)
		return
	}
	s.logger.Debug("order_published", "Order event published", order.OrderNumber, map[string]interface{}{"event": eventType})
}

// List returns the caller's orders, newest first. status "" or "all" means
// every status.
func (s *Service) List(ctx context.Context, ownerID string, status string) ([]*domain.Order, error) {
	filter := domain.OrderFilter{}
	if status != "" && status != "all" {
		parsed, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = parsed
	}

	business, err := s.businesses.FindByOwner(ctx, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		return []*domain.Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	filter.BusinessID = business.ID
	return s.orders.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, ownerID string, id int64) (*domain.Order, error) {
	business, err := s.businesses.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, business.ID, id)
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID string, id int64, status string) (*domain.Order, error) {
	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	old := order.Status
	if err := order.TransitionTo(next); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order_status_updated", fmt.Sprintf("Order %s moved from %s to %s", order.OrderNumber, old, next), order.OrderNumber,
		map[string]interface{}{"order_id": order.ID, "old_status": old, "new_status": next})
	s.metrics.OrderStatusChanged(next)
	s.publish(ctx, interfaces.EventOrderStatusChanged, order, old)
	return order, nil
}

// Stats summarises the caller's orders for the current UTC day.
func (s *Service) Stats(ctx context.Context, ownerID string) (*domain.OrderStats, error) {
	business, err := s.businesses.FindByOwner(ctx, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.OrderStats{TodayRevenue: decimal.Zero}, nil
	}
	if err != nil {
		return nil, err
	}

	start, end := domain.DayBounds(s.now())
	return s.orders.Stats(ctx, business.ID, start, end)
}
