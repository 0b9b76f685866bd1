package repo

import (
	"gorm.io/gorm"

	"github.com/mcardoso/storefront/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderLine{},
		&models.Customer{},
		&models.Contact{},
		&models.User{},
	)
}
