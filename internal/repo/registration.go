package repo

import (
	"context"

	"github.com/mcardoso/storefront/internal/models"
)

func (r *GormRepo) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.DB.WithContext(ctx).Create(customer).Error
}

func (r *GormRepo) CreateContact(ctx context.Context, contact *models.Contact) error {
	return r.DB.WithContext(ctx).Create(contact).Error
}
