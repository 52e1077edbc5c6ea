package interfaces

import (
	"context"
	"time"

	"github.com/YelzhanWeb/basecart/internal/domain"
)

// TxManager runs fn in a single transaction. Repositories called with the
// context passed to fn take part in that transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repository lookups return domain.ErrNotFound when nothing matches.

type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) error
	FindByID(ctx context.Context, id int64) (*domain.Business, error)
	FindByOwner(ctx context.Context, ownerUserID string) (*domain.Business, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Business, error)
	// NameExists matches case-insensitively, ignoring the business excludeID.
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, business *domain.Business) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	ListWithStats(ctx context.Context) ([]*domain.BusinessSummary, error)
}

type MenuRepository interface {
	ListByBusiness(ctx context.Context, businessID int64, onlyAvailable bool) ([]*domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) error
	// Update and Delete are scoped to item.BusinessID and report whether a row matched.
	Update(ctx context.Context, item *domain.MenuItem) (bool, error)
	Delete(ctx context.Context, businessID, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	DeleteByBusiness(ctx context.Context, businessID int64) error
}

type OrderRepository interface {
	// Create returns domain.ErrOrderNumberTaken when the order number is in use.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, businessID, id int64) (*domain.Order, error)
	FindByNumber(ctx context.Context, number string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	ListByContact(ctx context.Context, q domain.ContactQuery) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, order *domain.Order) error
	Stats(ctx context.Context, businessID int64, dayStart, dayEnd time.Time) (*domain.OrderStats, error)
	// PlatformStats leaves TotalBusinesses unset.
	PlatformStats(ctx context.Context, dayStart, dayEnd time.Time) (*domain.PlatformStats, error)
	DeleteByBusiness(ctx context.Context, businessID int64) error
}

type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}

// StorefrontCache holds the public storefront reads. A miss is (nil, false, nil).
type StorefrontCache interface {
	GetStorefront(ctx context.Context, slug string) (*domain.Storefront, bool, error)
	SetStorefront(ctx context.Context, storefront *domain.Storefront) error
	GetMenu(ctx context.Context, businessID int64) ([]*domain.MenuItem, bool, error)
	SetMenu(ctx context.Context, businessID int64, items []*domain.MenuItem) error
	Invalidate(ctx context.Context, slug string, businessID int64) error
}

// IdempotencyStore claims a key once; later claims of the same key return false
// until the key expires or is released.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
