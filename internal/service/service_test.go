package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mcardoso/storefront/internal/models"
	"github.com/mcardoso/storefront/internal/notify"
	"github.com/mcardoso/storefront/internal/repo"
)

type testEnv struct {
	Repo     *repo.GormRepo
	Cart     *CartService
	Checkout *CheckoutService
	Catalog  *CatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repo.AutoMigrate(db))

	r := &repo.GormRepo{DB: db}
	return &testEnv{
		Repo:     r,
		Cart:     &CartService{Repo: r},
		Checkout: &CheckoutService{Repo: r, Notifier: notify.Noop{}},
		Catalog:  &CatalogService{Repo: r},
	}
}

func (env *testEnv) createProduct(t *testing.T, name string, price float64) *models.Product {
	t.Helper()
	p := models.Product{Name: name, Description: name, Price: price, Visible: true}
	require.NoError(t, env.Repo.DB.Create(&p).Error)
	return &p
}

func checkoutRequest() CheckoutRequest {
	return CheckoutRequest{
		Name:    "Ana Souza",
		Address: "Rua das Flores 10",
		Phone:   "+55 11 99999-0000",
		Email:   "ana@example.com",
	}
}

type failingNotifier struct{ calls int }

func (n *failingNotifier) OrderPlaced(ctx context.Context, order *models.Order) error {
	n.calls++
	return context.DeadlineExceeded
}

type contextRecordingNotifier struct{ ctx context.Context }

func (n *contextRecordingNotifier) OrderPlaced(ctx context.Context, order *models.Order) error {
	n.ctx = ctx
	return nil
}
