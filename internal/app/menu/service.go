package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

type Service struct {
	businesses interfaces.BusinessRepository
	menu       interfaces.MenuRepository
	cache      interfaces.StorefrontCache
	metrics    interfaces.Metrics
	logger     logger.Logger
}

func NewService(
	businesses interfaces.BusinessRepository,
	menu interfaces.MenuRepository,
	cache interfaces.StorefrontCache,
	metrics interfaces.Metrics,
	logger logger.Logger,
) *Service {
	return &Service{
		businesses: businesses,
		menu:       menu,
		cache:      cache,
		metrics:    metrics,
		logger:     logger,
	}
}

var errNoBusiness = domain.NewValidationError("No business found")

// ownBusiness resolves the caller's business for write operations, where a
// missing business is a client error.
func (s *Service) ownBusiness(ctx context.Context, ownerID string) (*domain.Business, error) {
	business, err := s.businesses.FindByOwner(ctx, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errNoBusiness
	}
	return business, err
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*domain.MenuItem, error) {
	business, err := s.businesses.FindByOwner(ctx, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		return []*domain.MenuItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.menu.ListByBusiness(ctx, business.ID, false)
}

// ListPublic returns the available items of the storefront at slug.
func (s *Service) ListPublic(ctx context.Context, slug string) ([]*domain.MenuItem, error) {
	business, err := s.businesses.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if items, ok, err := s.cache.GetMenu(ctx, business.ID); err != nil {
		s.logger.Warn("cache_read_failed", "Menu cache read failed", "", map[string]interface{}{"business_id": business.ID, "error": err.Error()})
	} else if ok {
		return items, nil
	}

	items, err := s.menu.ListByBusiness(ctx, business.ID, true)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetMenu(ctx, business.ID, items); err != nil {
		s.logger.Warn("cache_write_failed", "Menu cache write failed", "", map[string]interface{}{"business_id": business.ID, "error": err.Error()})
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, in domain.MenuItemInput) (*domain.MenuItem, error) {
	business, err := s.ownBusiness(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	item := &domain.MenuItem{BusinessID: business.ID}
	in.Apply(item)
	if err := s.menu.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, business)
	return item, nil
}

func (s *Service) Update(ctx context.Context, ownerID string, id int64, in domain.MenuItemInput) (*domain.MenuItem, error) {
	business, err := s.ownBusiness(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	item := &domain.MenuItem{ID: id, BusinessID: business.ID}
	in.Apply(item)
	ok, err := s.menu.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.missing(ctx, id)
	}
	s.invalidate(ctx, business)
	return item, nil
}

func (s *Service) Delete(ctx context.Context, ownerID string, id int64) error {
	business, err := s.ownBusiness(ctx, ownerID)
	if err != nil {
		return err
	}

	ok, err := s.menu.Delete(ctx, business.ID, id)
	if err != nil {
		return err
	}
	if !ok {
		return s.missing(ctx, id)
	}
	s.invalidate(ctx, business)
	return nil
}

// missing tells a foreign tenant's item apart from one that does not exist.
func (s *Service) missing(ctx context.Context, id int64) error {
	exists, err := s.menu.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrForbidden
	}
	return domain.ErrNotFound
}

// BulkImport stores every valid row and reports the rest. One bad row never
// aborts the batch.
func (s *Service) BulkImport(ctx context.Context, ownerID string, rows []domain.ImportRow) (*domain.ImportResult, error) {
	business, err := s.ownBusiness(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.NewValidationError("No items to import")
	}

	result := &domain.ImportResult{Errors: []string{}}
	for i, row := range rows {
		n := i + 1
		in, err := row.ToInput(n)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		item := &domain.MenuItem{BusinessID: business.ID}
		in.Apply(item)
		if err := s.menu.Create(ctx, item); err != nil {
			s.logger.Error("menu_import_row_failed", fmt.Sprintf("Failed to store import row %d", n), "",
				map[string]interface{}{"business_id": business.ID, "row": n}, err)
			result.Errors = append(result.Errors, domain.RowStoreError(n))
			continue
		}
		result.Imported++
	}

	if result.Imported > 0 {
		s.invalidate(ctx, business)
	}
	s.metrics.MenuItemsImported(result.Imported, len(result.Errors))
	s.logger.Info("menu_imported", fmt.Sprintf("Imported %d of %d menu items", result.Imported, len(rows)), "",
		map[string]interface{}{"business_id": business.ID, "imported": result.Imported, "failed": len(result.Errors)})
	return result, nil
}

func (s *Service) invalidate(ctx context.Context, business *domain.Business) {
	if err := s.cache.Invalidate(ctx, business.Slug, business.ID); err != nil {
		s.logger.Warn("cache_invalidate_failed", "Menu cache invalidation failed", "",
			map[string]interface{}{"business_id": business.ID, "error": err.Error()})
	}
}
