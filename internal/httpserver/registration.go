package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mcardoso/storefront/internal/models"
	"github.com/mcardoso/storefront/internal/service"
	"github.com/mcardoso/storefront/pkg/logging"
)

type RegistrationHTTP struct {
	Svc *service.RegistrationService
}

func (h *RegistrationHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "registration.register")

	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.RegisterCustomer(ctx, &customer); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("register_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "name, address and email required")
		}
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("customer_registered", "customer_id", customer.ID)
	return c.JSON(http.StatusCreated, customer)
}

func (h *RegistrationHTTP) Contact(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "registration.contact")

	var contact models.Contact
	if err := c.Bind(&contact); err != nil {
		l.Warn("contact_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SubmitContact(ctx, &contact); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("contact_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "all fields required")
		}
		l.Error("contact_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, contact)
}
