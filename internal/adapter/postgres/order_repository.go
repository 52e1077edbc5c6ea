package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

const orderNumberKey = "orders_order_number_key"

const orderColumns = `
	id, order_number, business_id, customer_name, customer_phone, customer_email,
	pickup_time, notes, items, subtotal, tax, total, status, created_at, updated_at`

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

func scanOrder(row Row) (*domain.Order, error) {
	var (
		o     domain.Order
		items []byte
	)
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.BusinessID, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail,
		&o.PickupTime, &o.Notes, &items, &o.Subtotal, &o.Tax, &o.Total, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (order_number, business_id, customer_name, customer_phone, customer_email,
		                    pickup_time, notes, items, subtotal, tax, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	err = conn(ctx, r.db).QueryRow(ctx, query,
		order.OrderNumber, order.BusinessID, order.CustomerName, order.CustomerPhone, order.CustomerEmail,
		order.PickupTime, order.Notes, string(items), order.Subtotal, order.Tax, order.Total, order.Status,
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		if isUniqueViolation(err, orderNumberKey) {
			return domain.ErrOrderNumberTaken
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, businessID, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND business_id = $2`

	order, err := scanOrder(conn(ctx, r.db).QueryRow(ctx, query, id, businessID))
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", notFound(err))
	}
	return order, nil
}

func (r *orderRepository) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

	order, err := scanOrder(conn(ctx, r.db).QueryRow(ctx, query, number))
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", notFound(err))
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	var (
		sb   strings.Builder
		args = []any{filter.BusinessID}
	)
	sb.WriteString(`SELECT ` + orderColumns + ` FROM orders WHERE business_id = $1`)
	if filter.Status != "" {
		args = append(args, filter.Status)
		sb.WriteString(` AND status = $2`)
	}
	sb.WriteString(` ORDER BY created_at DESC, id DESC`)

	return r.queryOrders(ctx, sb.String(), args...)
}

func (r *orderRepository) ListByContact(ctx context.Context, q domain.ContactQuery) ([]*domain.Order, error) {
	column, value := "customer_email", q.Email
	if q.Email == "" {
		column, value = "customer_phone", q.Phone
	}
	limit := q.Limit
	if limit <= 0 {
		limit = domain.HistoryLimit
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + column + ` = $1 ORDER BY created_at DESC, id DESC LIMIT $2`
	return r.queryOrders(ctx, query, value, limit)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	tag, err := conn(ctx, r.db).Exec(ctx, query, order.Status, order.UpdatedAt, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Stats(ctx context.Context, businessID int64, dayStart, dayEnd time.Time) (*domain.OrderStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE created_at >= $2 AND created_at < $3),
		       COUNT(*) FILTER (WHERE status IN ('pending', 'preparing')),
		       COALESCE(SUM(total) FILTER (WHERE created_at >= $2 AND created_at < $3 AND status <> 'cancelled'), 0)
		FROM orders
		WHERE business_id = $1
	`
	var s domain.OrderStats
	err := conn(ctx, r.db).QueryRow(ctx, query, businessID, dayStart, dayEnd).
		Scan(&s.TotalOrders, &s.TodayOrders, &s.PendingOrders, &s.TodayRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to load order stats: %w", err)
	}
	return &s, nil
}

func (r *orderRepository) PlatformStats(ctx context.Context, dayStart, dayEnd time.Time) (*domain.PlatformStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(total) FILTER (WHERE status <> 'cancelled'), 0),
		       COUNT(*) FILTER (WHERE created_at >= $1 AND created_at < $2)
		FROM orders
	`
	var s domain.PlatformStats
	err := conn(ctx, r.db).QueryRow(ctx, query, dayStart, dayEnd).
		Scan(&s.TotalOrders, &s.TotalRevenue, &s.TodayOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to load platform stats: %w", err)
	}
	return &s, nil
}

func (r *orderRepository) DeleteByBusiness(ctx context.Context, businessID int64) error {
	if _, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM orders WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("failed to delete orders: %w", err)
	}
	return nil
}
