package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/shopspring/decimal"
)

type BusinessRepository struct {
	s *Store
}

func (r *BusinessRepository) Create(_ context.Context, b *domain.Business) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("businesses.Create"); err != nil {
		return err
	}

	for _, existing := range r.s.data.businesses {
		switch {
		case strings.EqualFold(existing.Name, b.Name):
			return domain.ErrDuplicateName
		case existing.OwnerUserID == b.OwnerUserID:
			return domain.ErrOwnerAlreadyHasBusiness
		case existing.Slug == b.Slug:
			return domain.ErrSlugTaken
		}
	}

	b.ID = r.s.nextID()
	b.CreatedAt = r.s.Now()
	b.UpdatedAt = b.CreatedAt
	r.s.data.businesses[b.ID] = *b
	return nil
}

func (r *BusinessRepository) find(match func(domain.Business) bool) (*domain.Business, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.data.businesses {
		if match(b) {
			b := b
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *BusinessRepository) FindByID(_ context.Context, id int64) (*domain.Business, error) {
	return r.find(func(b domain.Business) bool { return b.ID == id })
}

func (r *BusinessRepository) FindByOwner(_ context.Context, ownerUserID string) (*domain.Business, error) {
	return r.find(func(b domain.Business) bool { return b.OwnerUserID == ownerUserID })
}

func (r *BusinessRepository) FindBySlug(_ context.Context, slug string) (*domain.Business, error) {
	return r.find(func(b domain.Business) bool { return b.Slug == slug })
}

func (r *BusinessRepository) NameExists(_ context.Context, name string, excludeID int64) (bool, error) {
	_, err := r.find(func(b domain.Business) bool { return b.ID != excludeID && strings.EqualFold(b.Name, name) })
	return err == nil, nil
}

func (r *BusinessRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	_, err := r.find(func(b domain.Business) bool { return b.Slug == slug })
	return err == nil, nil
}

func (r *BusinessRepository) Update(_ context.Context, b *domain.Business) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("businesses.Update"); err != nil {
		return err
	}

	stored, ok := r.s.data.businesses[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.s.data.businesses {
		if other.ID != b.ID && strings.EqualFold(other.Name, b.Name) {
			return domain.ErrDuplicateName
		}
	}

	b.UpdatedAt = r.s.Now()
	b.CreatedAt = stored.CreatedAt
	b.OwnerUserID = stored.OwnerUserID
	b.Slug = stored.Slug
	r.s.data.businesses[b.ID] = *b
	return nil
}

func (r *BusinessRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("businesses.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.data.businesses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.businesses, id)
	return nil
}

func (r *BusinessRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.data.businesses)), nil
}

func (r *BusinessRepository) ListWithStats(_ context.Context) ([]*domain.BusinessSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.BusinessSummary, 0, len(r.s.data.businesses))
	for _, b := range r.s.data.businesses {
		summary := &domain.BusinessSummary{Business: b, Revenue: decimal.Zero, OwnerEmail: b.OwnerUserID}
		for _, o := range r.s.data.orders {
			if o.BusinessID != nil && *o.BusinessID == b.ID && o.Status != domain.StatusCancelled {
				summary.OrderCount++
				summary.Revenue = summary.Revenue.Add(o.Total)
			}
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
