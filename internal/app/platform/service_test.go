package platform

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/adapter/memory"
	"github.com/YelzhanWeb/basecart/internal/domain"
)

var admin = domain.Identity{UserID: "u-admin", Email: "Admin@Example.com"}

func seed(t *testing.T) (*memory.Store, *Service) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store.Businesses(), store.Orders(), []string{" admin@example.com "}, logger.Nop())

	older := &domain.Business{Name: "Older", Slug: "older", OwnerUserID: "owner-1"}
	require.NoError(t, store.Businesses().Create(ctx, older))
	newer := &domain.Business{Name: "Newer", Slug: "newer", OwnerUserID: "owner-2"}
	require.NoError(t, store.Businesses().Create(ctx, newer))

	for i, o := range []struct {
		status domain.Status
		total  string
	}{
		{domain.StatusCompleted, "10.00"},
		{domain.StatusPending, "5.50"},
		{domain.StatusCancelled, "99.00"},
	} {
		require.NoError(t, store.Orders().Create(ctx, &domain.Order{
			OrderNumber: fmt.Sprintf("ORD%06d", i+1),
			BusinessID:  &older.ID,
			Status:      o.status,
			Total:       decimal.RequireFromString(o.total),
		}))
	}
	return store, svc
}

func TestAllowList(t *testing.T) {
	_, svc := seed(t)
	assert.True(t, svc.IsSystemAdmin(admin))
	assert.False(t, svc.IsSystemAdmin(domain.Identity{UserID: "x", Email: "owner@example.com"}))

	_, err := svc.ListBusinesses(context.Background(), domain.Identity{Email: "owner@example.com"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.Stats(context.Background(), domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListBusinesses(t *testing.T) {
	_, svc := seed(t)

	list, err := svc.ListBusinesses(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byName := map[string]*domain.BusinessSummary{}
	for _, b := range list {
		byName[b.Name] = b
	}
	assert.Equal(t, int64(2), byName["Older"].OrderCount)
	assert.True(t, decimal.RequireFromString("15.50").Equal(byName["Older"].Revenue))
	assert.Equal(t, "owner-1", byName["Older"].OwnerEmail)
	assert.Zero(t, byName["Newer"].OrderCount)
}

func TestStats(t *testing.T) {
	_, svc := seed(t)

	stats, err := svc.Stats(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalBusinesses)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(3), stats.TodayOrders)
	assert.True(t, decimal.RequireFromString("15.50").Equal(stats.TotalRevenue))
}
