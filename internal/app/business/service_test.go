package business

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/adapter/memory"
	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

type recordingCache struct {
	storefronts map[string]*domain.Storefront
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{storefronts: make(map[string]*domain.Storefront)}
}

func (c *recordingCache) GetStorefront(_ context.Context, slug string) (*domain.Storefront, bool, error) {
	sf, ok := c.storefronts[slug]
	return sf, ok, nil
}

func (c *recordingCache) SetStorefront(_ context.Context, sf *domain.Storefront) error {
	c.storefronts[sf.Slug] = sf
	return nil
}

func (c *recordingCache) GetMenu(context.Context, int64) ([]*domain.MenuItem, bool, error) {
	return nil, false, nil
}

func (c *recordingCache) SetMenu(context.Context, int64, []*domain.MenuItem) error { return nil }

func (c *recordingCache) Invalidate(_ context.Context, slug string, _ int64) error {
	delete(c.storefronts, slug)
	c.invalidated = append(c.invalidated, slug)
	return nil
}

type fixture struct {
	store   *memory.Store
	cache   *recordingCache
	service *Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	cache := newRecordingCache()
	return &fixture{
		store:   store,
		cache:   cache,
		service: NewService(store, store.Businesses(), store.MenuItems(), store.Orders(), cache, logger.Nop()),
	}
}

func strPtr(v string) *string { return &v }

func TestCreate_SlugGeneration(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	first, err := f.service.Create(ctx, "owner-1", interfaces.CreateBusinessCommand{Name: "  Bean There  "})
	require.NoError(t, err)
	assert.Equal(t, "Bean There", first.Name)
	assert.Equal(t, "bean-there", first.Slug)

	second, err := f.service.Create(ctx, "owner-2", interfaces.CreateBusinessCommand{Name: "Bean-There!"})
	require.NoError(t, err)
	assert.Equal(t, "bean-there-2", second.Slug)

	third, err := f.service.Create(ctx, "owner-3", interfaces.CreateBusinessCommand{Name: "Bean. There"})
	require.NoError(t, err)
	assert.Equal(t, "bean-there-3", third.Slug)

	blank, err := f.service.Create(ctx, "owner-4", interfaces.CreateBusinessCommand{Name: "☕☕"})
	require.NoError(t, err)
	assert.Equal(t, "business", blank.Slug)
}

func TestCreate_Conflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.service.Create(ctx, "owner-1", interfaces.CreateBusinessCommand{Name: "Bean There", Phone: strPtr(" 555 ")})
	require.NoError(t, err)

	_, err = f.service.Create(ctx, "owner-2", interfaces.CreateBusinessCommand{Name: "BEAN THERE"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = f.service.Create(ctx, "owner-1", interfaces.CreateBusinessCommand{Name: "Another"})
	assert.ErrorIs(t, err, domain.ErrOwnerAlreadyHasBusiness)

	_, err = f.service.Create(ctx, "owner-3", interfaces.CreateBusinessCommand{Name: "   "})
	assert.True(t, domain.IsValidation(err))

	count, err := f.store.Businesses().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

type racingRepo struct {
	interfaces.BusinessRepository
	races int
}

func (r *racingRepo) Create(ctx context.Context, b *domain.Business) error {
	if r.races > 0 {
		r.races--
		return domain.ErrSlugTaken
	}
	return r.BusinessRepository.Create(ctx, b)
}

func TestCreate_RetriesSlugRace(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := &racingRepo{BusinessRepository: store.Businesses(), races: 2}
	svc := NewService(store, repo, store.MenuItems(), store.Orders(), newRecordingCache(), logger.Nop())

	b, err := svc.Create(ctx, "owner-1", interfaces.CreateBusinessCommand{Name: "Racy"})
	require.NoError(t, err)
	assert.Equal(t, "racy", b.Slug)

	repo.races = createAttempts
	_, err = svc.Create(ctx, "owner-2", interfaces.CreateBusinessCommand{Name: "Racy Two"})
	assert.ErrorIs(t, err, domain.ErrSlugTaken)
}

func TestGetMine_NoBusiness(t *testing.T) {
	f := newFixture()
	b, err := f.service.GetMine(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestUpdate_MergeRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.service.Create(ctx, "owner-1", interfaces.CreateBusinessCommand{Name: "Bean There", Phone: strPtr("555")})
	require.NoError(t, err)
	_, err = f.service.Update(ctx, "owner-1", domain.BusinessPatch{
		CustomLinkURL:  strPtr("https://example.com"),
		CustomLinkText: strPtr("Site"),
		PrimaryColor:   strPtr("#000"),
	})
	require.NoError(t, err)

	updated, err := f.service.Update(ctx, "owner-1", domain.BusinessPatch{
		Description: strPtr("Cozy"),
		Phone:       strPtr(""),
	})
	require.NoError(t, err)

	assert.Equal(t, "Bean There", updated.Name)
	assert.Equal(t, "bean-there", updated.Slug)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "555", *updated.Phone)
	require.NotNil(t, updated.PrimaryColor)
	assert.Equal(t, "#000", *updated.PrimaryColor)
	assert.Equal(t, "Cozy", *updated.Description)
	assert.Nil(t, updated.CustomLinkURL)
	assert.Nil(t, updated.CustomLinkText)
	assert.Contains(t, f.cache.invalidated, created.Slug)
}

func TestUpdate_RenameRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.service.Create(ctx, "owner-1", interfaces.CreateBusinessCommand{Name: "Bean There"})
	require.NoError(t, err)
	_, err = f.service.Create(ctx, "owner-2", interfaces.CreateBusinessCommand{Name: "Daily Grind"})
	require.NoError(t, err)

	_, err = f.service.Update(ctx, "owner-2", domain.BusinessPatch{Name: strPtr("bean there")})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	renamed, err := f.service.Update(ctx, "owner-2", domain.BusinessPatch{Name: strPtr("Daily GRIND")})
	require.NoError(t, err)
	assert.Equal(t, "Daily GRIND", renamed.Name)
	assert.Equal(t, "daily-grind", renamed.Slug)

	_, err = f.service.Update(ctx, "owner-3", domain.BusinessPatch{Name: strPtr("Ghost")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func seedTenant(t *testing.T, f *fixture, ownerID, name string) *domain.Business {
	t.Helper()
	ctx := context.Background()
	b, err := f.service.Create(ctx, ownerID, interfaces.CreateBusinessCommand{Name: name})
	require.NoError(t, err)

	require.NoError(t, f.store.MenuItems().Create(ctx, &domain.MenuItem{BusinessID: b.ID, Name: "Latte", Category: "Coffee", Price: decimal.RequireFromString("4.50")}))
	require.NoError(t, f.store.Orders().Create(ctx, &domain.Order{OrderNumber: "ORD-" + ownerID, BusinessID: &b.ID, Status: domain.StatusPending}))
	return b
}

func TestDelete_Cascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	doomed := seedTenant(t, f, "owner-1", "Doomed")
	kept := seedTenant(t, f, "owner-2", "Kept")

	require.NoError(t, f.service.Delete(ctx, "owner-1"))

	_, err := f.store.Businesses().FindByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	items, err := f.store.MenuItems().ListByBusiness(ctx, doomed.ID, false)
	require.NoError(t, err)
	assert.Empty(t, items)
	orders, err := f.store.Orders().List(ctx, domain.OrderFilter{BusinessID: doomed.ID})
	require.NoError(t, err)
	assert.Empty(t, orders)

	items, err = f.store.MenuItems().ListByBusiness(ctx, kept.ID, false)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Contains(t, f.cache.invalidated, "doomed")

	assert.ErrorIs(t, f.service.Delete(ctx, "owner-1"), domain.ErrNotFound)
}

func TestDelete_IsAtomic(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := seedTenant(t, f, "owner-1", "Fragile")

	boom := errors.New("connection reset")
	f.store.FailOn("businesses.Delete", boom)

	err := f.service.Delete(ctx, "owner-1")
	assert.ErrorIs(t, err, boom)

	items, err := f.store.MenuItems().ListByBusiness(ctx, b.ID, false)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	orders, err := f.store.Orders().List(ctx, domain.OrderFilter{BusinessID: b.ID})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestGetBySlug(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.service.Create(ctx, "owner-1", interfaces.CreateBusinessCommand{Name: "Bean There", Address: strPtr("1 Main St")})
	require.NoError(t, err)

	sf, err := f.service.GetBySlug(ctx, "bean-there")
	require.NoError(t, err)
	assert.Equal(t, "Bean There", sf.Name)
	assert.Equal(t, "1 Main St", *sf.Address)
	assert.Contains(t, f.cache.storefronts, "bean-there")

	_, err = f.service.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
