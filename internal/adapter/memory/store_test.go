package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	businesses := store.Businesses()

	require.NoError(t, businesses.Create(ctx, &domain.Business{Name: "Kept", Slug: "kept", OwnerUserID: "u1"}))

	boom := errors.New("boom")
	err := store.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, businesses.Create(ctx, &domain.Business{Name: "Dropped", Slug: "dropped", OwnerUserID: "u2"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := businesses.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = businesses.FindBySlug(ctx, "dropped")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWithinTxNestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	businesses := store.Businesses()

	err := store.WithinTx(ctx, func(ctx context.Context) error {
		return store.WithinTx(ctx, func(ctx context.Context) error {
			return businesses.Create(ctx, &domain.Business{Name: "Inner", Slug: "inner", OwnerUserID: "u1"})
		})
	})
	require.NoError(t, err)

	_, err = businesses.FindBySlug(ctx, "inner")
	assert.NoError(t, err)
}

func TestBusinessConstraints(t *testing.T) {
	ctx := context.Background()
	businesses := NewStore().Businesses()

	require.NoError(t, businesses.Create(ctx, &domain.Business{Name: "Bean There", Slug: "bean-there", OwnerUserID: "u1"}))

	err := businesses.Create(ctx, &domain.Business{Name: "bean there", Slug: "other", OwnerUserID: "u2"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	err = businesses.Create(ctx, &domain.Business{Name: "Second", Slug: "second", OwnerUserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrOwnerAlreadyHasBusiness)

	err = businesses.Create(ctx, &domain.Business{Name: "Third", Slug: "bean-there", OwnerUserID: "u3"})
	assert.ErrorIs(t, err, domain.ErrSlugTaken)

	exists, err := businesses.NameExists(ctx, "BEAN THERE", 0)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMenuOrderingAndScope(t *testing.T) {
	ctx := context.Background()
	menu := NewStore().MenuItems()

	for _, item := range []*domain.MenuItem{
		{BusinessID: 1, Name: "Muffin", Category: "Bakery", IsAvailable: true},
		{BusinessID: 1, Name: "Latte", Category: "Coffee", SortOrder: 2, IsAvailable: true},
		{BusinessID: 1, Name: "Espresso", Category: "Coffee", SortOrder: 1, IsAvailable: false},
		{BusinessID: 2, Name: "Tea", Category: "Tea", IsAvailable: true},
	} {
		require.NoError(t, menu.Create(ctx, item))
	}

	all, err := menu.ListByBusiness(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Muffin", "Espresso", "Latte"}, []string{all[0].Name, all[1].Name, all[2].Name})

	public, err := menu.ListByBusiness(ctx, 1, true)
	require.NoError(t, err)
	assert.Len(t, public, 2)

	ok, err := menu.Delete(ctx, 2, all[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := menu.Exists(ctx, all[0].ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOrderStats(t *testing.T) {
	ctx := context.Background()
	orders := NewStore().Orders()
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)

	create := func(number string, status domain.Status, total string, at time.Time) {
		require.NoError(t, orders.Create(ctx, &domain.Order{
			OrderNumber: number,
			BusinessID:  int64Ptr(1),
			Status:      status,
			Total:       decimal.RequireFromString(total),
			CreatedAt:   at,
		}))
	}
	create("ORD000001", domain.StatusPending, "10.80", now)
	create("ORD000002", domain.StatusPreparing, "5.40", now)
	create("ORD000003", domain.StatusCancelled, "3.00", now)
	create("ORD000004", domain.StatusCompleted, "2.16", yesterday)

	err := orders.Create(ctx, &domain.Order{OrderNumber: "ORD000001"})
	assert.ErrorIs(t, err, domain.ErrOrderNumberTaken)

	start, end := domain.DayBounds(now)
	stats, err := orders.Stats(ctx, 1, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalOrders)
	assert.Equal(t, int64(3), stats.TodayOrders)
	assert.Equal(t, int64(2), stats.PendingOrders)
	assert.True(t, decimal.RequireFromString("16.20").Equal(stats.TodayRevenue))

	platform, err := orders.PlatformStats(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(4), platform.TotalOrders)
	assert.True(t, decimal.RequireFromString("18.36").Equal(platform.TotalRevenue))
}

func TestFailOn(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	boom := errors.New("boom")

	store.FailOn("orders.DeleteByBusiness", boom)
	assert.ErrorIs(t, store.Orders().DeleteByBusiness(ctx, 1), boom)

	store.FailOn("orders.DeleteByBusiness", nil)
	assert.NoError(t, store.Orders().DeleteByBusiness(ctx, 1))
}

func TestIdempotencyKeys(t *testing.T) {
	ctx := context.Background()
	keys := NewIdempotencyKeys(time.Minute)
	now := time.Now()
	keys.now = func() time.Time { return now }

	ok, err := keys.Claim(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = keys.Claim(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, err = keys.Claim(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdempotencyKeysRelease(t *testing.T) {
	ctx := context.Background()
	keys := NewIdempotencyKeys(time.Minute)

	ok, err := keys.Claim(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, keys.Release(ctx, "abc"))
	require.NoError(t, keys.Release(ctx, "missing"))

	ok, err = keys.Claim(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = keys.Claim(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}
