package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAddRejectsUnavailableProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// unknown product
	_, err := env.Cart.Add(ctx, "s1", uuid.New())
	require.ErrorIs(t, err, ErrProductUnavailable)

	// hidden product
	hidden := env.createProduct(t, "hidden", 10)
	require.NoError(t, env.Catalog.SetVisibility(ctx, hidden.ID, false))
	_, err = env.Cart.Add(ctx, "s1", hidden.ID)
	require.ErrorIs(t, err, ErrProductUnavailable)

	// reserved product
	reserved := env.createProduct(t, "reserved", 10)
	require.NoError(t, env.Repo.DB.Model(reserved).Update("reserved", true).Error)
	_, err = env.Cart.Add(ctx, "s1", reserved.ID)
	require.ErrorIs(t, err, ErrProductUnavailable)

	view, err := env.Cart.View(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, view.Lines)
}

func TestAddThenDecrementRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProduct(t, "mouse", 180)

	q, err := env.Cart.Add(ctx, "s1", p.ID)
	require.NoError(t, err)
	require.Equal(t, uint(1), q)

	deleted, _, err := env.Cart.Decrement(ctx, "s1", p.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	view, err := env.Cart.View(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, view.Lines)

	// decrement on the now-missing line is a no-op
	deleted, remaining, err := env.Cart.Decrement(ctx, "s1", p.ID)
	require.NoError(t, err)
	require.False(t, deleted)
	require.Zero(t, remaining)
}

func TestClearThenViewIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p1 := env.createProduct(t, "a", 1)
	p2 := env.createProduct(t, "b", 2)

	_, err := env.Cart.Add(ctx, "s1", p1.ID)
	require.NoError(t, err)
	_, err = env.Cart.Add(ctx, "s1", p2.ID)
	require.NoError(t, err)

	require.NoError(t, env.Cart.Clear(ctx, "s1"))

	view, err := env.Cart.View(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, view.Lines)
	require.Zero(t, view.Total)
}

func TestViewTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p1 := env.createProduct(t, "p1", 10.00)
	p2 := env.createProduct(t, "p2", 25.00)

	for i := 0; i < 2; i++ {
		_, err := env.Cart.Add(ctx, "s1", p1.ID)
		require.NoError(t, err)
	}
	_, err := env.Cart.Add(ctx, "s1", p2.ID)
	require.NoError(t, err)

	view, err := env.Cart.View(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	require.Equal(t, 45.00, view.Total)
}
