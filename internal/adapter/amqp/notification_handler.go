package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

// NotificationHandler turns order events into log lines. It is the
// notification-subscriber mode's only sink.
type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		logger: logger,
	}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var event interfaces.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse notification", "", nil, err)
		return err
	}

	details := map[string]interface{}{
		"order_id":     event.OrderID,
		"order_number": event.OrderNumber,
		"new_status":   event.NewStatus,
		"total":        event.Total.StringFixed(2),
	}
	if event.BusinessID != nil {
		details["business_id"] = *event.BusinessID
	}

	switch event.Type {
	case interfaces.EventOrderCreated:
		h.logger.Info("notification_received",
			fmt.Sprintf("New order %s from %s", event.OrderNumber, event.CustomerName),
			event.OrderNumber, details)
	case interfaces.EventOrderStatusChanged:
		details["old_status"] = event.OldStatus
		h.logger.Info("notification_received",
			fmt.Sprintf("Order %s status changed from '%s' to '%s'", event.OrderNumber, event.OldStatus, event.NewStatus),
			event.OrderNumber, details)
	default:
		h.logger.Warn("notification_ignored", fmt.Sprintf("Unknown event type %q", event.Type), event.OrderNumber, details)
	}
	return nil
}
