package service

import (
	"context"
	"fmt"

	"github.com/mcardoso/storefront/internal/models"
	"github.com/mcardoso/storefront/internal/repo"
)

type RegistrationService struct {
	Repo *repo.GormRepo
}

func (s *RegistrationService) RegisterCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.Name == "" || customer.Address == "" || customer.Email == "" {
		return fmt.Errorf("%w: name, address and email required", ErrValidation)
	}
	return s.Repo.CreateCustomer(ctx, customer)
}

func (s *RegistrationService) SubmitContact(ctx context.Context, contact *models.Contact) error {
	if contact.Name == "" || contact.Email == "" || contact.Subject == "" || contact.Message == "" {
		return fmt.Errorf("%w: all fields required", ErrValidation)
	}
	return s.Repo.CreateContact(ctx, contact)
}
