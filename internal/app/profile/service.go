package profile

import (
	"context"
	"errors"

	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

type Service struct {
	profiles interfaces.ProfileRepository
}

func NewService(profiles interfaces.ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

// Get returns nil, not an error, for a user who never saved a profile.
func (s *Service) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *Service) UpdateDisplayName(ctx context.Context, userID string, displayName *string) (*domain.UserProfile, error) {
	p := &domain.UserProfile{UserID: userID, DisplayName: domain.NormalizeOptional(displayName)}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
