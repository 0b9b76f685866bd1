package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcardoso/storefront/internal/models"
	"github.com/mcardoso/storefront/internal/notify"
	"github.com/mcardoso/storefront/internal/repo"
	"github.com/mcardoso/storefront/pkg/logging"
)

type CheckoutService struct {
	Repo     *repo.GormRepo
	Notifier notify.Notifier
}

type CheckoutRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Checkout converts the session's cart into an order. The commit reserves
// every referenced product, writes the order with frozen line quantities and
// clears the cart as one transaction; a product lost to a concurrent checkout
// aborts the whole attempt with ErrProductNoLongerAvailable and no side
// effects. Notification happens after the commit and cannot fail it.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*models.Order, error) {
	if req.Name == "" || req.Address == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: name, address and email required", ErrValidation)
	}

	snapshot, err := s.Repo.CartView(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		SessionID: sessionID,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Status:    models.OrderStatusNew,
	}
	for _, line := range snapshot {
		order.Lines = append(order.Lines, models.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.Price,
			LineTotal: line.LineTotal,
		})
		order.Total += line.LineTotal
	}

	if err := s.Repo.CreateOrderFromCart(ctx, sessionID, order); err != nil {
		var conflict *repo.ProductConflictError
		if errors.As(err, &conflict) {
			return nil, fmt.Errorf("%w: product %s", ErrProductNoLongerAvailable, conflict.ProductID)
		}
		return nil, err
	}

	// the order is committed; a client hanging up must not cancel its event
	notifyCtx := context.WithoutCancel(ctx)
	if err := s.Notifier.OrderPlaced(notifyCtx, order); err != nil {
		logging.FromContext(ctx).Error("order_notification_failed", "order_id", order.ID, "error", err)
	}

	return order, nil
}
