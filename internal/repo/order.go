package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gorm.io/gorm"

	"github.com/mcardoso/storefront/internal/models"
)

// ProductConflictError reports the product a checkout lost to a concurrent
// reservation or an admin hide.
type ProductConflictError struct {
	ProductID uuid.UUID
}

func (e *ProductConflictError) Error() string {
	return fmt.Sprintf("product %s is no longer available", e.ProductID)
}

// CreateOrderFromCart commits a checkout: reserves every product the order
// references, inserts the order with its lines and deletes the session's cart
// rows, all in one transaction. Any reservation that finds the product taken
// rolls the whole commit back.
func (r *GormRepo) CreateOrderFromCart(ctx context.Context, sessionID string, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range order.Lines {
			ok, err := reserveProduct(tx, order.Lines[i].ProductID)
			if err != nil {
				return err
			}
			if !ok {
				return &ProductConflictError{ProductID: order.Lines[i].ProductID}
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return tx.Where("session_id = ?", sessionID).Delete(&models.CartLine{}).Error
	})
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID, sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Lines").
		Where("id = ? AND session_id = ?", id, sessionID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, sessionID string, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Lines").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
