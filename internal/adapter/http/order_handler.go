package http

import (
	"net/http"
	"strings"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type OrderHandler struct {
	service interfaces.OrderService
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.OrderService, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

type CreateOrderRequest struct {
	BusinessID    *int64             `json:"businessId"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	CustomerEmail *string            `json:"customerEmail"`
	PickupTime    string             `json:"pickupTime"`
	Notes         *string            `json:"notes"`
	Items         []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	Name     string     `json:"name"`
	Price    flexString `json:"price"`
	Quantity int        `json:"quantity"`
	Category string     `json:"category"`
}

type CreateOrderResponse struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber"`
	OrderID     int64  `json:"orderId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	text := errorText{action: "order_creation_failed", notFound: "Business not found", internal: "Failed to create order"}

	var req CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}

	items := make([]domain.LineInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.LineInput{
			Name:     item.Name,
			Price:    string(item.Price),
			Quantity: item.Quantity,
			Category: item.Category,
		}
	}

	order, err := h.service.Submit(r.Context(), interfaces.SubmitOrderCommand{
		BusinessID:     req.BusinessID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		CustomerEmail:  req.CustomerEmail,
		PickupTime:     req.PickupTime,
		Notes:          req.Notes,
		Items:          items,
		IdempotencyKey: strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader)),
	})
	if err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}

	respondJSON(w, http.StatusCreated, CreateOrderResponse{
		Success:     true,
		OrderNumber: order.OrderNumber,
		OrderID:     order.ID,
	})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	orders, err := h.service.List(r.Context(), identity.UserID, r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{action: "orders_fetch_failed", internal: "Failed to fetch orders"})
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	text := errorText{action: "order_fetch_failed", notFound: "Order not found", internal: "Failed to fetch order"}

	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	order, err := h.service.Get(r.Context(), identity.UserID, id)
	if err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	text := errorText{action: "order_update_failed", notFound: "Order not found", internal: "Failed to update order"}

	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}

	if _, err := h.service.UpdateStatus(r.Context(), identity.UserID, id, req.Status); err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	respondSuccess(w)
}

func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	stats, err := h.service.Stats(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{action: "stats_fetch_failed", internal: "Failed to fetch stats"})
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
