package memory

import (
	"context"

	"github.com/YelzhanWeb/basecart/internal/domain"
)

type ProfileRepository struct {
	s *Store
}

func (r *ProfileRepository) Get(_ context.Context, userID string) (*domain.UserProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.data.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *ProfileRepository) Upsert(_ context.Context, profile *domain.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("user_profiles.Upsert"); err != nil {
		return err
	}
	profile.UpdatedAt = r.s.Now()
	r.s.data.profiles[profile.UserID] = *profile
	return nil
}
