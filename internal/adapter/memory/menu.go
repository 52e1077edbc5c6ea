package memory

import (
	"context"
	"sort"

	"github.com/YelzhanWeb/basecart/internal/domain"
)

type MenuRepository struct {
	s *Store
}

func (r *MenuRepository) ListByBusiness(_ context.Context, businessID int64, onlyAvailable bool) ([]*domain.MenuItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fail("menu_items.ListByBusiness"); err != nil {
		return nil, err
	}

	items := []*domain.MenuItem{}
	for _, item := range r.s.data.menuItems {
		if item.BusinessID != businessID || (onlyAvailable && !item.IsAvailable) {
			continue
		}
		item := item
		items = append(items, &item)
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Name < b.Name
	})
	return items, nil
}

func (r *MenuRepository) Create(_ context.Context, item *domain.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("menu_items.Create"); err != nil {
		return err
	}

	item.ID = r.s.nextID()
	item.CreatedAt = r.s.Now()
	item.UpdatedAt = item.CreatedAt
	r.s.data.menuItems[item.ID] = *item
	return nil
}

func (r *MenuRepository) Update(_ context.Context, item *domain.MenuItem) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("menu_items.Update"); err != nil {
		return false, err
	}

	stored, ok := r.s.data.menuItems[item.ID]
	if !ok || stored.BusinessID != item.BusinessID {
		return false, nil
	}
	item.CreatedAt = stored.CreatedAt
	item.UpdatedAt = r.s.Now()
	r.s.data.menuItems[item.ID] = *item
	return true, nil
}

func (r *MenuRepository) Delete(_ context.Context, businessID, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("menu_items.Delete"); err != nil {
		return false, err
	}

	stored, ok := r.s.data.menuItems[id]
	if !ok || stored.BusinessID != businessID {
		return false, nil
	}
	delete(r.s.data.menuItems, id)
	return true, nil
}

func (r *MenuRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.data.menuItems[id]
	return ok, nil
}

func (r *MenuRepository) DeleteByBusiness(_ context.Context, businessID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("menu_items.DeleteByBusiness"); err != nil {
		return err
	}
	for id, item := range r.s.data.menuItems {
		if item.BusinessID == businessID {
			delete(r.s.data.menuItems, id)
		}
	}
	return nil
}
