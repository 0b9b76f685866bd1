package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcardoso/storefront/internal/models"
)

const addLineAttempts = 3

// AddLine increments the line quantity by one, creating the line when it does
// not exist yet. The increment is a single UPDATE statement so concurrent adds
// for the same (session, product) pair never lose updates; a racing first add
// that hits the unique index is retried as an increment. Each attempt runs in
// a transaction so the confirming read cannot observe another session's
// interleaved decrement or add.
func (r *GormRepo) AddLine(ctx context.Context, sessionID string, productID uuid.UUID) (uint, error) {
	for attempt := 0; attempt < addLineAttempts; attempt++ {
		var quantity uint
		retry := false
		err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.CartLine{}).
				Where("session_id = ? AND product_id = ?", sessionID, productID).
				Update("quantity", gorm.Expr("quantity + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				var line models.CartLine
				if err := tx.Where("session_id = ? AND product_id = ?", sessionID, productID).
					First(&line).Error; err != nil {
					return err
				}
				quantity = line.Quantity
				return nil
			}

			line := models.CartLine{SessionID: sessionID, ProductID: productID, Quantity: 1}
			if err := tx.Create(&line).Error; err != nil {
				retry = errors.Is(err, gorm.ErrDuplicatedKey)
				return err
			}
			quantity = line.Quantity
			return nil
		})
		if err == nil {
			return quantity, nil
		}
		if !retry {
			return 0, err
		}
	}

	return 0, errors.New("add to cart: too many conflicting writes")
}

// DecrementLine lowers the quantity by one, deleting the line at quantity one.
// A missing line is a no-op; no zero-quantity row is ever left behind.
func (r *GormRepo) DecrementLine(ctx context.Context, sessionID string, productID uuid.UUID) (deleted bool, remaining uint, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartLine{}).
			Where("session_id = ? AND product_id = ? AND quantity > 1", sessionID, productID).
			Update("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			var line models.CartLine
			if err := tx.Where("session_id = ? AND product_id = ?", sessionID, productID).
				First(&line).Error; err != nil {
				return err
			}
			remaining = line.Quantity
			return nil
		}

		del := tx.Where("session_id = ? AND product_id = ?", sessionID, productID).
			Delete(&models.CartLine{})
		if del.Error != nil {
			return del.Error
		}
		deleted = del.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return deleted, remaining, nil
}

func (r *GormRepo) ClearCart(ctx context.Context, sessionID string) error {
	return r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.CartLine{}).Error
}

// CartView joins the session's lines against the catalog in one query. Lines
// whose product has been deleted fall out of the inner join.
func (r *GormRepo) CartView(ctx context.Context, sessionID string) ([]models.CartViewLine, error) {
	var lines []models.CartViewLine
	err := r.DB.WithContext(ctx).
		Table("cart_lines").
		Select("cart_lines.product_id, products.name, products.price, cart_lines.quantity, products.price * cart_lines.quantity AS line_total").
		Joins("JOIN products ON products.id = cart_lines.product_id").
		Where("cart_lines.session_id = ?", sessionID).
		Order("cart_lines.created_at ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
