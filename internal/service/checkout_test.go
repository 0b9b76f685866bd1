package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcardoso/storefront/internal/models"
)

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Checkout.Checkout(context.Background(), "s1", checkoutRequest())
	require.ErrorIs(t, err, ErrEmptyCart)

	var orders int64
	require.NoError(t, env.Repo.DB.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)
}

func TestCheckoutValidatesContactFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProduct(t, "mouse", 180)
	_, err := env.Cart.Add(ctx, "s1", p.ID)
	require.NoError(t, err)

	req := checkoutRequest()
	req.Email = ""
	_, err = env.Checkout.Checkout(ctx, "s1", req)
	require.ErrorIs(t, err, ErrValidation)
}

func TestCheckoutEndToEnd(t *testing.T) {
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

	order, err := env.Checkout.Checkout(ctx, "s1", checkoutRequest())
	require.NoError(t, err)
	require.Equal(t, 45.00, order.Total)
	require.Equal(t, models.OrderStatusNew, order.Status)
	require.Len(t, order.Lines, 2)
	require.Equal(t, p1.ID, order.Lines[0].ProductID)
	require.Equal(t, uint(2), order.Lines[0].Quantity)
	require.Equal(t, p2.ID, order.Lines[1].ProductID)
	require.Equal(t, uint(1), order.Lines[1].Quantity)

	// cart is gone
	view, err := env.Cart.View(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, view.Lines)

	// reserved products cannot be added by anyone anymore
	_, err = env.Cart.Add(ctx, "s2", p1.ID)
	require.ErrorIs(t, err, ErrProductUnavailable)
	_, err = env.Cart.Add(ctx, "s2", p2.ID)
	require.ErrorIs(t, err, ErrProductUnavailable)

	// the order is durable and session scoped
	got, err := env.Repo.GetOrder(ctx, order.ID, "s1")
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
}

func TestCheckoutAbortsWholeAttemptWhenProductTaken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p1 := env.createProduct(t, "p1", 10)
	p2 := env.createProduct(t, "p2", 25)

	_, err := env.Cart.Add(ctx, "s1", p1.ID)
	require.NoError(t, err)
	_, err = env.Cart.Add(ctx, "s1", p2.ID)
	require.NoError(t, err)

	before, err := env.Cart.View(ctx, "s1")
	require.NoError(t, err)

	// p2 is taken between snapshot and commit
	require.NoError(t, env.Repo.DB.Model(&models.Product{}).
		Where("id = ?", p2.ID).Update("reserved", true).Error)

	_, err = env.Checkout.Checkout(ctx, "s1", checkoutRequest())
	require.ErrorIs(t, err, ErrProductNoLongerAvailable)

	// cart exactly as before the attempt, no order, p1 not reserved
	after, err := env.Cart.View(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, before, after)

	var orders int64
	require.NoError(t, env.Repo.DB.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)

	reloaded, err := env.Repo.GetProduct(ctx, p1.ID)
	require.NoError(t, err)
	require.False(t, reloaded.Reserved)
}

func TestConcurrentCheckoutsExactlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProduct(t, "last-unit", 99)

	_, err := env.Cart.Add(ctx, "s1", p.ID)
	require.NoError(t, err)
	_, err = env.Cart.Add(ctx, "s2", p.ID)
	require.NoError(t, err)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, sid := range []string{"s1", "s2"} {
		wg.Add(1)
		go func(sid string) {
			defer wg.Done()
			_, err := env.Checkout.Checkout(ctx, sid, checkoutRequest())
			results <- err
		}(sid)
	}
	wg.Wait()
	close(results)

	var committed, aborted int
	for err := range results {
		if err == nil {
			committed++
		} else {
			require.ErrorIs(t, err, ErrProductNoLongerAvailable)
			aborted++
		}
	}
	require.Equal(t, 1, committed)
	require.Equal(t, 1, aborted)

	var orders int64
	require.NoError(t, env.Repo.DB.Model(&models.Order{}).Count(&orders).Error)
	require.Equal(t, int64(1), orders)
}

func TestCheckoutNotificationSurvivesRequestCancel(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "mouse", 180)

	_, err := env.Cart.Add(context.Background(), "s1", p.ID)
	require.NoError(t, err)

	notifier := &contextRecordingNotifier{}
	env.Checkout.Notifier = notifier

	ctx, cancel := context.WithCancel(context.Background())
	_, err = env.Checkout.Checkout(ctx, "s1", checkoutRequest())
	require.NoError(t, err)

	// the client hangs up right after the commit
	cancel()

	require.NotNil(t, notifier.ctx)
	require.NoError(t, notifier.ctx.Err())
}

func TestCheckoutNotificationFailureIsNonFatal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProduct(t, "mouse", 180)

	_, err := env.Cart.Add(ctx, "s1", p.ID)
	require.NoError(t, err)

	notifier := &failingNotifier{}
	env.Checkout.Notifier = notifier

	order, err := env.Checkout.Checkout(ctx, "s1", checkoutRequest())
	require.NoError(t, err)
	require.Equal(t, 1, notifier.calls)

	// the order stayed committed
	got, err := env.Repo.GetOrder(ctx, order.ID, "s1")
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)
}
