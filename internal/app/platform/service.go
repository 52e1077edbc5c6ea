package platform

import (
	"context"
	"strings"
	"time"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

// Service serves the cross-tenant views reserved for system administrators.
type Service struct {
	businesses interfaces.BusinessRepository
	orders     interfaces.OrderRepository
	admins     map[string]struct{}
	logger     logger.Logger
	now        func() time.Time
}

// NewService takes the administrator allow-list. Emails match
// case-insensitively.
func NewService(businesses interfaces.BusinessRepository, orders interfaces.OrderRepository, adminEmails []string, logger logger.Logger) *Service {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &Service{
		businesses: businesses,
		orders:     orders,
		admins:     admins,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) IsSystemAdmin(identity domain.Identity) bool {
	_, ok := s.admins[strings.ToLower(strings.TrimSpace(identity.Email))]
	return ok
}

func (s *Service) authorize(identity domain.Identity) error {
	if !s.IsSystemAdmin(identity) {
		s.logger.Warn("admin_access_denied", "Non-admin requested platform data", "",
			map[string]interface{}{"user_id": identity.UserID})
		return domain.ErrForbidden
	}
	return nil
}

func (s *Service) ListBusinesses(ctx context.Context, identity domain.Identity) ([]*domain.BusinessSummary, error) {
	if err := s.authorize(identity); err != nil {
		return nil, err
	}
	return s.businesses.ListWithStats(ctx)
}

func (s *Service) Stats(ctx context.Context, identity domain.Identity) (*domain.PlatformStats, error) {
	if err := s.authorize(identity); err != nil {
		return nil, err
	}

	start, end := domain.DayBounds(s.now())
	stats, err := s.orders.PlatformStats(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if stats.TotalBusinesses, err = s.businesses.Count(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}
