package memory

import (
	"context"
	"sort"
	"time"

	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderRepository struct {
	s *Store
}

func copyOrder(o domain.Order) *domain.Order {
	o.Items = append([]domain.OrderLine(nil), o.Items...)
	return &o
}

func sameBusiness(o domain.Order, businessID int64) bool {
	return o.BusinessID != nil && *o.BusinessID == businessID
}

func (r *OrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.Create"); err != nil {
		return err
	}

	for _, o := range r.s.data.orders {
		if o.OrderNumber == order.OrderNumber {
			return domain.ErrOrderNumberTaken
		}
	}

	order.ID = r.s.nextID()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = r.s.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}
	r.s.data.orders[order.ID] = *copyOrder(*order)
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, businessID, id int64) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.data.orders[id]
	if !ok || !sameBusiness(o, businessID) {
		return nil, domain.ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *OrderRepository) FindByNumber(_ context.Context, number string) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.data.orders {
		if o.OrderNumber == number {
			return copyOrder(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

// newestFirst mirrors ORDER BY created_at DESC, id DESC.
func (r *OrderRepository) newestFirst(match func(domain.Order) bool, limit int) []*domain.Order {
	orders := []*domain.Order{}
	for _, o := range r.s.data.orders {
		if match(o) {
			orders = append(orders, copyOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders
}

func (r *OrderRepository) List(_ context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fail("orders.List"); err != nil {
		return nil, err
	}
	return r.newestFirst(func(o domain.Order) bool {
		return sameBusiness(o, filter.BusinessID) && (filter.Status == "" || o.Status == filter.Status)
	}, 0), nil
}

func (r *OrderRepository) ListByContact(_ context.Context, q domain.ContactQuery) ([]*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.newestFirst(func(o domain.Order) bool {
		if q.Email != "" {
			return o.CustomerEmail != nil && *o.CustomerEmail == q.Email
		}
		return o.CustomerPhone == q.Phone
	}, q.Limit), nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.UpdateStatus"); err != nil {
		return err
	}

	stored, ok := r.s.data.orders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = order.Status
	stored.UpdatedAt = order.UpdatedAt
	r.s.data.orders[order.ID] = stored
	return nil
}

func inDay(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func (r *OrderRepository) Stats(_ context.Context, businessID int64, dayStart, dayEnd time.Time) (*domain.OrderStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := &domain.OrderStats{TodayRevenue: decimal.Zero}
	for _, o := range r.s.data.orders {
		if !sameBusiness(o, businessID) {
			continue
		}
		stats.TotalOrders++
		if o.Status == domain.StatusPending || o.Status == domain.StatusPreparing {
			stats.PendingOrders++
		}
		if inDay(o.CreatedAt, dayStart, dayEnd) {
			stats.TodayOrders++
			if o.Status != domain.StatusCancelled {
				stats.TodayRevenue = stats.TodayRevenue.Add(o.Total)
			}
		}
	}
	return stats, nil
}

func (r *OrderRepository) PlatformStats(_ context.Context, dayStart, dayEnd time.Time) (*domain.PlatformStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := &domain.PlatformStats{TotalRevenue: decimal.Zero}
	for _, o := range r.s.data.orders {
		stats.TotalOrders++
		if o.Status != domain.StatusCancelled {
			stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		}
		if inDay(o.CreatedAt, dayStart, dayEnd) {
			stats.TodayOrders++
		}
	}
	return stats, nil
}

func (r *OrderRepository) DeleteByBusiness(_ context.Context, businessID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.DeleteByBusiness"); err != nil {
		return err
	}
	for id, o := range r.s.data.orders {
		if sameBusiness(o, businessID) {
			delete(r.s.data.orders, id)
		}
	}
	return nil
}
