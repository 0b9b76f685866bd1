package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcardoso/storefront/internal/models"
	"github.com/mcardoso/storefront/internal/repo"
	"github.com/mcardoso/storefront/internal/search"
	"github.com/mcardoso/storefront/pkg/logging"
)

type CatalogService struct {
	Repo *repo.GormRepo

	// ES is optional; without it search returns ErrValidation and catalog
	// writes skip indexing.
	ES      *elasticsearch.Client
	ESIndex string
}

type PatchProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return product, err
}

func (s *CatalogService) ListAvailable(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.ListAvailableProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	product.Visible = true

	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return err
	}
	s.index(ctx, product)
	return nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uuid.UUID, req PatchProductRequest) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	s.index(ctx, product)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return err
	}

	if s.ES != nil {
		if err := search.DeleteProduct(ctx, s.ES, s.ESIndex, id); err != nil {
			logging.FromContext(ctx).Error("search_delete_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

// SetVisibility hides or shows a product without touching its reservation
// state.
func (s *CatalogService) SetVisibility(ctx context.Context, id uuid.UUID, visible bool) error {
	err := s.Repo.SetProductVisibility(ctx, id, visible)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return err
}

func (s *CatalogService) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if s.ES == nil {
		return 0, nil, fmt.Errorf("%w: search is not configured", ErrValidation)
	}
	if query == "" {
		return 0, nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	return search.Search(ctx, s.ES, s.ESIndex, query, from, size)
}

// Seed inserts the sample catalog when no products exist yet.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	total, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}

	products := []models.Product{
		{Name: "Notebook Dell", Description: "Notebook 15'' 8GB RAM", Price: 3500.00, ImageURL: "https://via.placeholder.com/300x200?text=Notebook", Visible: true},
		{Name: "Smartphone Samsung", Description: "Galaxy S21 128GB", Price: 2500.00, ImageURL: "https://via.placeholder.com/300x200?text=Smartphone", Visible: true},
		{Name: "Fone Bluetooth", Description: "Fone sem fio com case", Price: 200.00, ImageURL: "https://via.placeholder.com/300x200?text=Fone+Bluetooth", Visible: true},
		{Name: "Monitor LG", Description: "Monitor 24'' Full HD", Price: 900.00, ImageURL: "https://via.placeholder.com/300x200?text=Monitor", Visible: true},
		{Name: "Teclado Mecanico", Description: "Teclado RGB ABNT2", Price: 350.00, ImageURL: "https://via.placeholder.com/300x200?text=Teclado", Visible: true},
		{Name: "Mouse Gamer", Description: "Mouse 7200dpi RGB", Price: 180.00, ImageURL: "https://via.placeholder.com/300x200?text=Mouse", Visible: true},
	}
	if err := s.Repo.CreateProducts(ctx, products); err != nil {
		return 0, err
	}
	for i := range products {
		s.index(ctx, &products[i])
	}
	return len(products), nil
}

func (s *CatalogService) index(ctx context.Context, product *models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, s.ESIndex, product); err != nil {
		logging.FromContext(ctx).Error("search_index_failed", "product_id", product.ID, "error", err)
	}
}
