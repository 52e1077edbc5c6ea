package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

type profileRepository struct {
	db DB
}

func NewProfileRepository(db DB) interfaces.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT user_id, display_name, updated_at FROM user_profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.DisplayName, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", notFound(err))
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, p *domain.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, display_name, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET display_name = EXCLUDED.display_name, updated_at = NOW()
		RETURNING updated_at
	`
	if err := conn(ctx, r.db).QueryRow(ctx, query, p.UserID, p.DisplayName).Scan(&p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
