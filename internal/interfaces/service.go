package interfaces

import (
	"context"
	"io"

	"github.com/YelzhanWeb/basecart/internal/domain"
)

type CreateBusinessCommand struct {
	Name        string
	Description *string
	Address     *string
	Phone       *string
}

type SubmitOrderCommand struct {
	BusinessID     *int64
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  *string
	PickupTime     string
	Notes          *string
	Items          []domain.LineInput
	IdempotencyKey string
}

type BusinessService interface {
	Create(ctx context.Context, ownerID string, cmd CreateBusinessCommand) (*domain.Business, error)
	GetMine(ctx context.Context, ownerID string) (*domain.Business, error)
	Update(ctx context.Context, ownerID string, patch domain.BusinessPatch) (*domain.Business, error)
	Delete(ctx context.Context, ownerID string) error
	GetBySlug(ctx context.Context, slug string) (*domain.Storefront, error)
}

type MenuService interface {
	List(ctx context.Context, ownerID string) ([]*domain.MenuItem, error)
	ListPublic(ctx context.Context, slug string) ([]*domain.MenuItem, error)
	Create(ctx context.Context, ownerID string, in domain.MenuItemInput) (*domain.MenuItem, error)
	Update(ctx context.Context, ownerID string, id int64, in domain.MenuItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, ownerID string, id int64) error
	BulkImport(ctx context.Context, ownerID string, rows []domain.ImportRow) (*domain.ImportResult, error)
	ParseCSV(r io.Reader) ([]domain.ImportRow, error)
}

type OrderService interface {
	Submit(ctx context.Context, cmd SubmitOrderCommand) (*domain.Order, error)
	List(ctx context.Context, ownerID string, status string) ([]*domain.Order, error)
	Get(ctx context.Context, ownerID string, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, ownerID string, id int64, status string) (*domain.Order, error)
	Stats(ctx context.Context, ownerID string) (*domain.OrderStats, error)
}

type TrackingService interface {
	Track(ctx context.Context, orderNumber string) (*domain.TrackedOrder, error)
	History(ctx context.Context, email, phone string) ([]*domain.TrackedOrder, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	UpdateDisplayName(ctx context.Context, userID string, displayName *string) (*domain.UserProfile, error)
}

type PlatformService interface {
	IsSystemAdmin(identity domain.Identity) bool
	ListBusinesses(ctx context.Context, identity domain.Identity) ([]*domain.BusinessSummary, error)
	Stats(ctx context.Context, identity domain.Identity) (*domain.PlatformStats, error)
}
