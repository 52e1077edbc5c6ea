package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"

	"github.com/jackc/pgx/v5"
)

type menuRepository struct {
	db DB
}

func NewMenuRepository(db DB) interfaces.MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) ListByBusiness(ctx context.Context, businessID int64, onlyAvailable bool) ([]*domain.MenuItem, error) {
	query := `
		SELECT id, business_id, name, description, price, category, image_url,
		       is_available, sort_order, created_at, updated_at
		FROM menu_items
		WHERE business_id = $1 AND (is_available OR NOT $2)
		ORDER BY category, sort_order, name
	`
	rows, err := conn(ctx, r.db).Query(ctx, query, businessID, onlyAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(
			&item.ID, &item.BusinessID, &item.Name, &item.Description, &item.Price, &item.Category,
			&item.ImageURL, &item.IsAvailable, &item.SortOrder, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu items: %w", err)
	}
	return items, nil
}

func (r *menuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	query := `
		INSERT INTO menu_items (business_id, name, description, price, category, image_url, is_available, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		item.BusinessID, item.Name, item.Description, item.Price, item.Category,
		item.ImageURL, item.IsAvailable, item.SortOrder,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

func (r *menuRepository) Update(ctx context.Context, item *domain.MenuItem) (bool, error) {
	query := `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, image_url = $5,
		    is_available = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8 AND business_id = $9
		RETURNING created_at, updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		item.Name, item.Description, item.Price, item.Category, item.ImageURL,
		item.IsAvailable, item.SortOrder, item.ID, item.BusinessID,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update menu item: %w", err)
	}
	return true, nil
}

func (r *menuRepository) Delete(ctx context.Context, businessID, id int64) (bool, error) {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM menu_items WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return false, fmt.Errorf("failed to delete menu item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *menuRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM menu_items WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check menu item: %w", err)
	}
	return exists, nil
}

func (r *menuRepository) DeleteByBusiness(ctx context.Context, businessID int64) error {
	if _, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM menu_items WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("failed to delete menu items: %w", err)
	}
	return nil
}
