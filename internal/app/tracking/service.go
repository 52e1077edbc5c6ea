package tracking

import (
	"context"
	"strings"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

// Service answers public, unauthenticated order lookups.
type Service struct {
	orderRepo interfaces.OrderRepository
	logger    logger.Logger
}

func NewService(orderRepo interfaces.OrderRepository, logger logger.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (s *Service) Track(ctx context.Context, orderNumber string) (*domain.TrackedOrder, error) {
	order, err := s.orderRepo.FindByNumber(ctx, strings.TrimSpace(orderNumber))
	if err != nil {
		return nil, err
	}
	return order.Tracked(), nil
}

// History lists a customer's recent orders by email, or by phone when no
// email is given.
func (s *Service) History(ctx context.Context, email, phone string) ([]*domain.TrackedOrder, error) {
	q := domain.ContactQuery{Limit: domain.HistoryLimit}
	switch email, phone = strings.TrimSpace(email), strings.TrimSpace(phone); {
	case email != "":
		q.Email = email
	case phone != "":
		q.Phone = phone
	default:
		return nil, domain.NewValidationError("Email or phone required")
	}

	orders, err := s.orderRepo.ListByContact(ctx, q)
	if err != nil {
		return nil, err
	}

	resp := make([]*domain.TrackedOrder, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, o.Tracked())
	}
	return resp, nil
}
