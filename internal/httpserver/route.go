package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	OrderHandler    *OrderHTTP
	CarouselHandler *CarouselHTTP
	// Ready reports whether backing stores are reachable. nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	catalog := e.Group("/catalog")
	catalog.GET("/products", d.CatalogHandler.GetProducts)
	catalog.GET("/products/:id", d.CatalogHandler.GetProduct)
	catalog.POST("/reload", d.CatalogHandler.Reload)

	e.GET("/carousel", d.CarouselHandler.GetCarousel)

	cart := e.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.POST("/checkout", d.OrderHandler.Checkout)
	cart.PATCH("/:id/increment", d.CartHandler.Increment)
	cart.PATCH("/:id/decrement", d.CartHandler.Decrement)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)

	orders := e.Group("/orders")
	orders.GET("", d.OrderHandler.GetOrders)
	orders.POST("", d.OrderHandler.PlaceOrder)
}
