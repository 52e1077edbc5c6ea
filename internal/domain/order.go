package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderNumberPrefix = "ORD"
	// HistoryLimit caps the orders returned by a contact history lookup.
	HistoryLimit = 20
)

// Order is a customer submission for pickup.
type Order struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"order_number"`
	BusinessID    *int64          `json:"business_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail *string         `json:"customer_email"`
	PickupTime    string          `json:"pickup_time"`
	Notes         *string         `json:"notes"`
	Items         []OrderLine     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderLine is a cart line frozen into the order at submission time.
type OrderLine struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Category string          `json:"category,omitempty"`
}

// LineInput is an unvalidated cart line as submitted by a customer.
type LineInput struct {
	Name     string
	Price    string
	Quantity int
	Category string
}

// NewOrder validates the submission and computes totals. The order number is
// assigned separately.
func NewOrder(customerName, customerPhone string, customerEmail *string, pickupTime string, notes *string, lines []LineInput, businessID *int64) (*Order, error) {
	customerName = strings.TrimSpace(customerName)
	customerPhone = strings.TrimSpace(customerPhone)
	pickupTime = strings.TrimSpace(pickupTime)
	if customerName == "" || customerPhone == "" || pickupTime == "" || len(lines) == 0 {
		return nil, NewValidationError("Missing required fields")
	}

	items := make([]OrderLine, 0, len(lines))
	for i, l := range lines {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return nil, NewValidationError("Item %d: name is required", i+1)
		}
		if l.Quantity < 1 {
			return nil, NewValidationError("Item %d: quantity must be at least 1", i+1)
		}
		price, err := ParsePrice(l.Price)
		if err != nil || !IsWholeCents(price) {
			return nil, NewValidationError("Item %d: invalid price %q", i+1, l.Price)
		}
		if price.Mul(decimal.NewFromInt(int64(l.Quantity))).GreaterThan(MaxAmount) {
			return nil, NewValidationError("Item %d: line total exceeds the maximum amount", i+1)
		}
		items = append(items, OrderLine{
			Name:     name,
			Price:    price,
			Quantity: l.Quantity,
			Category: strings.TrimSpace(l.Category),
		})
	}

	now := time.Now().UTC()
	order := &Order{
		BusinessID:    businessID,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		CustomerEmail: NormalizeOptional(customerEmail),
		PickupTime:    pickupTime,
		Notes:         NormalizeOptional(notes),
		Items:         items,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	order.CalculateTotal()
	if order.Total.GreaterThan(MaxAmount) {
		return nil, NewValidationError("Order total exceeds the maximum amount")
	}
	return order, nil
}

// CalculateTotal sets total = round(subtotal × (1 + TaxRate), 2) and derives
// tax as total - subtotal. Prices are whole cents so subtotal is exact.
func (o *Order) CalculateTotal() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	o.Total = subtotal.Mul(taxMultiplier).Round(2)
	o.Subtotal = subtotal.Round(2)
	o.Tax = o.Total.Sub(o.Subtotal)
}

// TransitionTo moves the order to newStatus.
func (o *Order) TransitionTo(newStatus Status) error {
	if !o.Status.CanTransitionTo(newStatus) {
		return NewValidationError("Invalid status")
	}
	o.Status = newStatus
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// TimeOrderNumber derives the customer-facing number from the trailing six
// digits of the millisecond clock.
func TimeOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s%06d", OrderNumberPrefix, now.UnixMilli()%1_000_000)
}

// RandomOrderNumber keeps the same shape with a random six digit suffix. It is
// used when the clock-derived number is already taken.
func RandomOrderNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return fmt.Sprintf("%s%06d", OrderNumberPrefix, n.Int64()), nil
}

// TrackedOrder is the public view of an order.
type TrackedOrder struct {
	ID           int64           `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	PickupTime   string          `json:"pickup_time"`
	Items        []OrderLine     `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (o *Order) Tracked() *TrackedOrder {
	return &TrackedOrder{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		PickupTime:   o.PickupTime,
		Items:        o.Items,
		Subtotal:     o.Subtotal,
		Tax:          o.Tax,
		Total:        o.Total,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}
}

// OrderFilter narrows an owner's order list. An empty Status matches all.
type OrderFilter struct {
	BusinessID int64
	Status     Status
}

// ContactQuery selects orders by exactly one customer identifier.
type ContactQuery struct {
	Email string
	Phone string
	Limit int
}
