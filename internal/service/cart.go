package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcardoso/storefront/internal/models"
	"github.com/mcardoso/storefront/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// CartView is the cart joined against the catalog, ready for rendering.
type CartView struct {
	Lines []models.CartViewLine `json:"lines"`
	Total float64               `json:"total"`
}

// Add puts one unit of the product into the session's cart. Products that are
// hidden, reserved or deleted are rejected with ErrProductUnavailable.
func (s *CartService) Add(ctx context.Context, sessionID string, productID uuid.UUID) (uint, error) {
	if productID == uuid.Nil {
		return 0, fmt.Errorf("%w: product_id required", ErrValidation)
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: product %s", ErrProductUnavailable, productID)
		}
		return 0, err
	}
	if !product.Available() {
		return 0, fmt.Errorf("%w: product %s", ErrProductUnavailable, productID)
	}

	return s.Repo.AddLine(ctx, sessionID, productID)
}

// Decrement removes one unit; at quantity one the line disappears. A missing
// line is not an error.
func (s *CartService) Decrement(ctx context.Context, sessionID string, productID uuid.UUID) (deleted bool, remaining uint, err error) {
	if productID == uuid.Nil {
		return false, 0, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	return s.Repo.DecrementLine(ctx, sessionID, productID)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.Repo.ClearCart(ctx, sessionID)
}

func (s *CartService) View(ctx context.Context, sessionID string) (*CartView, error) {
	lines, err := s.Repo.CartView(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := CartView{Lines: lines}
	for _, l := range lines {
		view.Total += l.LineTotal
	}
	return &view, nil
}
