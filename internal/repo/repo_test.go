package repo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mcardoso/storefront/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every goroutine sees the same in-memory database and
	// transactions serialize the way row locks would on postgres
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return &GormRepo{DB: db}
}

func createProduct(t *testing.T, r *GormRepo, name string, price float64) *models.Product {
	t.Helper()
	p := models.Product{Name: name, Description: name, Price: price, Visible: true}
	require.NoError(t, r.DB.Create(&p).Error)
	return &p
}
