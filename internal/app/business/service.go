package business

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

// createAttempts bounds retries when a concurrent registration takes the
// slug between the existence check and the insert.
const createAttempts = 3

type Service struct {
	tx         interfaces.TxManager
	businesses interfaces.BusinessRepository
	menu       interfaces.MenuRepository
	orders     interfaces.OrderRepository
	cache      interfaces.StorefrontCache
	logger     logger.Logger
}

func NewService(
	tx interfaces.TxManager,
	businesses interfaces.BusinessRepository,
	menu interfaces.MenuRepository,
	orders interfaces.OrderRepository,
	cache interfaces.StorefrontCache,
	logger logger.Logger,
) *Service {
	return &Service{
		tx:         tx,
		businesses: businesses,
		menu:       menu,
		orders:     orders,
		cache:      cache,
		logger:     logger,
	}
}

func (s *Service) Create(ctx context.Context, ownerID string, cmd interfaces.CreateBusinessCommand) (*domain.Business, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, domain.NewValidationError("Business name is required")
	}

	var (
		business *domain.Business
		err      error
	)
	for attempt := 1; attempt <= createAttempts; attempt++ {
		business = &domain.Business{
			OwnerUserID: ownerID,
			Name:        name,
			Description: domain.NormalizeOptional(cmd.Description),
			Address:     domain.NormalizeOptional(cmd.Address),
			Phone:       domain.NormalizeOptional(cmd.Phone),
		}
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			return s.create(ctx, business)
		})
		if !errors.Is(err, domain.ErrSlugTaken) {
			break
		}
		s.logger.Debug("slug_conflict", "Slug taken concurrently, retrying", "",
			map[string]interface{}{"slug": business.Slug, "attempt": attempt})
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("business_created", fmt.Sprintf("Business %q registered", business.Name), "",
		map[string]interface{}{"business_id": business.ID, "slug": business.Slug, "owner_user_id": ownerID})
	return business, nil
}

func (s *Service) create(ctx context.Context, business *domain.Business) error {
	taken, err := s.businesses.NameExists(ctx, business.Name, 0)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateName
	}

	_, err = s.businesses.FindByOwner(ctx, business.OwnerUserID)
	switch {
	case err == nil:
		return domain.ErrOwnerAlreadyHasBusiness
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	base := domain.Slugify(business.Name)
	for n := 1; ; n++ {
		candidate := domain.SlugCandidate(base, n)
		exists, err := s.businesses.SlugExists(ctx, candidate)
		if err != nil {
			return err
		}
		if !exists {
			business.Slug = candidate
			break
		}
	}

	return s.businesses.Create(ctx, business)
}

// GetMine returns the caller's business, or nil when they have none.
func (s *Service) GetMine(ctx context.Context, ownerID string) (*domain.Business, error) {
	business, err := s.businesses.FindByOwner(ctx, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return business, err
}

func (s *Service) Update(ctx context.Context, ownerID string, patch domain.BusinessPatch) (*domain.Business, error) {
	business, err := s.businesses.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if patch.NameChanged(business.Name) {
		taken, err := s.businesses.NameExists(ctx, *patch.Name, business.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateName
		}
	}

	patch.Apply(business)
	if err := s.businesses.Update(ctx, business); err != nil {
		return nil, err
	}
	s.invalidate(ctx, business)
	return business, nil
}

// Delete removes the caller's business with its menu and orders atomically.
func (s *Service) Delete(ctx context.Context, ownerID string) error {
	business, err := s.businesses.FindByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.menu.DeleteByBusiness(ctx, business.ID); err != nil {
			return err
		}
		if err := s.orders.DeleteByBusiness(ctx, business.ID); err != nil {
			return err
		}
		return s.businesses.Delete(ctx, business.ID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, business)
	s.logger.Info("business_deleted", fmt.Sprintf("Business %q deleted", business.Name), "",
		map[string]interface{}{"business_id": business.ID, "owner_user_id": ownerID})
	return nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Storefront, error) {
	if sf, ok, err := s.cache.GetStorefront(ctx, slug); err != nil {
		s.logger.Warn("cache_read_failed", "Storefront cache read failed", "", map[string]interface{}{"slug": slug, "error": err.Error()})
	} else if ok {
		return sf, nil
	}

	business, err := s.businesses.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	sf := business.Storefront()
	if err := s.cache.SetStorefront(ctx, sf); err != nil {
		s.logger.Warn("cache_write_failed", "Storefront cache write failed", "", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
	return sf, nil
}

func (s *Service) invalidate(ctx context.Context, business *domain.Business) {
	if err := s.cache.Invalidate(ctx, business.Slug, business.ID); err != nil {
		s.logger.Warn("cache_invalidate_failed", "Storefront cache invalidation failed", "",
			map[string]interface{}{"business_id": business.ID, "error": err.Error()})
	}
}
