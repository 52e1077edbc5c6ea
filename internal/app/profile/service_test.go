package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/basecart/internal/adapter/memory"
)

func TestProfileLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore().Profiles())

	p, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, p)

	name := "  Dana  "
	p, err = svc.UpdateDisplayName(ctx, "user-1", &name)
	require.NoError(t, err)
	assert.Equal(t, "Dana", *p.DisplayName)
	assert.False(t, p.UpdatedAt.IsZero())

	p, err = svc.UpdateDisplayName(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Nil(t, p.DisplayName)

	got, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.DisplayName)
}
