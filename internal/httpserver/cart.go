package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mcardoso/storefront/internal/service"
	"github.com/mcardoso/storefront/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.view")

	sid := sessionID(c)

	view, err := h.Svc.View(ctx, sid)
	if err != nil {
		l.Error("cart_view_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	sid := sessionID(c)

	var req struct {
		ProductID uuid.UUID `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("cart_add_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	quantity, err := h.Svc.Add(ctx, sid, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("cart_add_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "product_id required")
		case errors.Is(err, service.ErrProductUnavailable):
			l.Warn("cart_add_error", "status", 409, "error", err)
			return echo.NewHTTPError(http.StatusConflict, "product unavailable")
		default:
			l.Error("cart_add_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("cart_item_added", "product_id", req.ProductID, "quantity", quantity)
	return c.JSON(http.StatusOK, map[string]any{
		"product_id": req.ProductID,
		"quantity":   quantity,
	})
}

func (h *CartHTTP) DeleteOneFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.decrement")

	sid := sessionID(c)

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		l.Warn("cart_decrement_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	deleted, remaining, err := h.Svc.Decrement(ctx, sid, productID)
	if err != nil {
		l.Error("cart_decrement_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"product_id": productID,
		"deleted":    deleted,
		"quantity":   remaining,
	})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	sid := sessionID(c)

	if err := h.Svc.Clear(ctx, sid); err != nil {
		l.Error("cart_clear_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("cart_cleared")
	return c.NoContent(http.StatusNoContent)
}
