package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

const (
	businessSlugKey  = "businesses_slug_key"
	businessOwnerKey = "businesses_owner_user_id_key"
	businessNameKey  = "businesses_name_lower_key"
)

const businessColumns = `
	id, name, slug, owner_user_id, description, address, phone,
	primary_color, secondary_color, custom_link_url, custom_link_text,
	created_at, updated_at`

type businessRepository struct {
	db DB
}

func NewBusinessRepository(db DB) interfaces.BusinessRepository {
	return &businessRepository{db: db}
}

func scanBusiness(row Row, b *domain.Business, extra ...any) error {
	dest := []any{
		&b.ID, &b.Name, &b.Slug, &b.OwnerUserID, &b.Description, &b.Address, &b.Phone,
		&b.PrimaryColor, &b.SecondaryColor, &b.CustomLinkURL, &b.CustomLinkText,
		&b.CreatedAt, &b.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *businessRepository) Create(ctx context.Context, b *domain.Business) error {
	query := `
		INSERT INTO businesses (name, slug, owner_user_id, description, address, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		b.Name, b.Slug, b.OwnerUserID, b.Description, b.Address, b.Phone,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert business: %w", mapBusinessConflict(err))
	}
	return nil
}

func (r *businessRepository) findOne(ctx context.Context, where string, arg any) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE ` + where

	var b domain.Business
	if err := scanBusiness(conn(ctx, r.db).QueryRow(ctx, query, arg), &b); err != nil {
		return nil, fmt.Errorf("failed to load business: %w", notFound(err))
	}
	return &b, nil
}

func (r *businessRepository) FindByID(ctx context.Context, id int64) (*domain.Business, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *businessRepository) FindByOwner(ctx context.Context, ownerUserID string) (*domain.Business, error) {
	return r.findOne(ctx, "owner_user_id = $1", ownerUserID)
}

func (r *businessRepository) FindBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	return r.findOne(ctx, "slug = $1", slug)
}

func (r *businessRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM businesses WHERE LOWER(name) = LOWER($1) AND id <> $2)`

	var exists bool
	if err := conn(ctx, r.db).QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check business name: %w", err)
	}
	return exists, nil
}

func (r *businessRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM businesses WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (r *businessRepository) Update(ctx context.Context, b *domain.Business) error {
	query := `
		UPDATE businesses
		SET name = $1, description = $2, address = $3, phone = $4,
		    primary_color = $5, secondary_color = $6,
		    custom_link_url = $7, custom_link_text = $8,
		    updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		b.Name, b.Description, b.Address, b.Phone,
		b.PrimaryColor, b.SecondaryColor, b.CustomLinkURL, b.CustomLinkText,
		b.ID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", mapBusinessConflict(notFound(err)))
	}
	return nil
}

func (r *businessRepository) Delete(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *businessRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM businesses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count businesses: %w", err)
	}
	return n, nil
}

func (r *businessRepository) ListWithStats(ctx context.Context) ([]*domain.BusinessSummary, error) {
	query := `
		SELECT b.id, b.name, b.slug, b.owner_user_id, b.description, b.address, b.phone,
		       b.primary_color, b.secondary_color, b.custom_link_url, b.custom_link_text,
		       b.created_at, b.updated_at,
		       COALESCE(o.order_count, 0), COALESCE(o.revenue, 0)
		FROM businesses b
		LEFT JOIN (
			SELECT business_id, COUNT(*) AS order_count, SUM(total) AS revenue
			FROM orders
			WHERE status <> 'cancelled'
			GROUP BY business_id
		) o ON b.id = o.business_id
		ORDER BY b.created_at DESC, b.id DESC
	`
	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	var out []*domain.BusinessSummary
	for rows.Next() {
		var s domain.BusinessSummary
		if err := scanBusiness(rows, &s.Business, &s.OrderCount, &s.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		s.OwnerEmail = s.OwnerUserID
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate businesses: %w", err)
	}
	return out, nil
}

func mapBusinessConflict(err error) error {
	switch {
	case isUniqueViolation(err, businessNameKey):
		return domain.ErrDuplicateName
	case isUniqueViolation(err, businessOwnerKey):
		return domain.ErrOwnerAlreadyHasBusiness
	case isUniqueViolation(err, businessSlugKey):
		return domain.ErrSlugTaken
	default:
		return err
	}
}
