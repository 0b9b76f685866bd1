package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcardoso/storefront/internal/models"
)

func TestReserveProductTakesExactlyOnce(t *testing.T) {
	r := newTestRepo(t)
	p := createProduct(t, r, "notebook", 3500)

	ok, err := reserveProduct(r.DB, p.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = reserveProduct(r.DB, p.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReserveProductRejectsHidden(t *testing.T) {
	r := newTestRepo(t)
	p := createProduct(t, r, "monitor", 900)
	require.NoError(t, r.SetProductVisibility(context.Background(), p.ID, false))

	ok, err := reserveProduct(r.DB, p.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCreateOrderFromCartCommitsAtomically(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	p := createProduct(t, r, "mouse", 180)

	_, err := r.AddLine(ctx, "s1", p.ID)
	require.NoError(t, err)

	order := &models.Order{
		SessionID: "s1",
		Name:      "Ana",
		Address:   "Rua A, 1",
		Email:     "ana@example.com",
		Total:     180,
		Status:    models.OrderStatusNew,
		Lines: []models.OrderLine{
			{ProductID: p.ID, Quantity: 1, UnitPrice: 180, LineTotal: 180},
		},
	}
	require.NoError(t, r.CreateOrderFromCart(ctx, "s1", order))

	got, err := r.GetOrder(ctx, order.ID, "s1")
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	require.Equal(t, p.ID, got.Lines[0].ProductID)

	reloaded, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, reloaded.Reserved)

	lines, err := r.CartView(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestCreateOrderFromCartRollsBackOnConflict(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	p1 := createProduct(t, r, "mouse", 180)
	p2 := createProduct(t, r, "keyboard", 350)

	_, err := r.AddLine(ctx, "s1", p1.ID)
	require.NoError(t, err)
	_, err = r.AddLine(ctx, "s1", p2.ID)
	require.NoError(t, err)

	// p2 already taken by another order
	ok, err := reserveProduct(r.DB, p2.ID)
	require.NoError(t, err)
	require.True(t, ok)

	order := &models.Order{
		SessionID: "s1",
		Name:      "Ana",
		Address:   "Rua A, 1",
		Email:     "ana@example.com",
		Total:     530,
		Status:    models.OrderStatusNew,
		Lines: []models.OrderLine{
			{ProductID: p1.ID, Quantity: 1, UnitPrice: 180, LineTotal: 180},
			{ProductID: p2.ID, Quantity: 1, UnitPrice: 350, LineTotal: 350},
		},
	}

	err = r.CreateOrderFromCart(ctx, "s1", order)
	var conflict *ProductConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, p2.ID, conflict.ProductID)

	// p1's reservation rolled back, cart untouched, no order rows
	reloaded, err := r.GetProduct(ctx, p1.ID)
	require.NoError(t, err)
	require.False(t, reloaded.Reserved)

	lines, err := r.CartView(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	var orders int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)
}
