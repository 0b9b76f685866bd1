package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	CatalogHandler      *CatalogHTTP
	CartHandler         *CartHTTP
	CheckoutHandler     *CheckoutHTTP
	OrderHandler        *OrderHTTP
	RegistrationHandler *RegistrationHTTP
	AdminHandler        *AdminHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	products := e.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	cart := e.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/items", d.CartHandler.AddToCart)
	cart.DELETE("/items/:product_id", d.CartHandler.DeleteOneFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)

	e.POST("/checkout", d.CheckoutHandler.Checkout)

	orders := e.Group("/orders")
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)

	e.POST("/register", d.RegistrationHandler.Register)
	e.POST("/contact", d.RegistrationHandler.Contact)

	e.POST("/auth/login", d.AdminHandler.Login)

	admin := e.Group("/admin/products", d.AdminHandler.RequireAdmin)
	admin.POST("", d.AdminHandler.CreateProduct)
	admin.POST("/seed", d.AdminHandler.SeedProducts)
	admin.PATCH("/:id", d.AdminHandler.PatchProduct)
	admin.PATCH("/:id/visibility", d.AdminHandler.SetVisibility)
	admin.DELETE("/:id", d.AdminHandler.DeleteProduct)
}
