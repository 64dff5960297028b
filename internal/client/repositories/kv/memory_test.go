package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_, ok, err := r.Get(ctx, "token")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.Set(ctx, "token", "t"))
	require.NoError(t, r.Set(ctx, "expiry", "42"))

	v, ok, err := r.Get(ctx, "expiry")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "42", v)

	snapshot, err := r.List(ctx)
	require.NoError(t, err)
	snapshot["token"] = "mutated"

	v, _, _ = r.Get(ctx, "token")
	require.Equal(t, "t", v, "List must return a copy")

	require.NoError(t, r.Delete(ctx, "token"))
	_, ok, _ = r.Get(ctx, "token")
	require.False(t, ok)

	require.NoError(t, r.Clear(ctx))
	m, _ := r.List(ctx)
	require.Empty(t, m)
}

func TestRepositories_SatisfyInterface(t *testing.T) {
	var _ Repository = NewMemoryRepository()
	var _ Repository = NewSQLiteRepository(nil)
}
