package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shope/internal/service"
	"github.com/Skotchmaster/shope/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	sid, err := sessionID(c)
	if err != nil {
		l.Warn("get_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.Svc.GetCart(ctx, sid)
	if err != nil {
		return serviceError(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// AddToCart adds the product described by the nav params. Incomplete params
// leave the cart untouched.
func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	sid, err := sessionID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	params, err := productParams(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, ok := params.Product()
	if !ok {
		l.Warn("add_to_cart_skipped", "status", 200, "reason", "incomplete product params", "id", params.ID)
		resp, err := h.Svc.GetCart(ctx, sid)
		if err != nil {
			return serviceError(l, "add_to_cart_error", err)
		}
		return c.JSON(http.StatusOK, resp)
	}

	resp, err := h.Svc.AddToCart(ctx, sid, p)
	if err != nil {
		return serviceError(l, "add_to_cart_error", err)
	}

	l.Info("add_to_cart_success", "product_id", p.ID, "count", resp.Count)
	return c.JSON(http.StatusOK, resp)
}

func (h *CartHTTP) Increment(c echo.Context) error {
	return h.setQuantity(c, true)
}

func (h *CartHTTP) Decrement(c echo.Context) error {
	return h.setQuantity(c, false)
}

func (h *CartHTTP) setQuantity(c echo.Context, increment bool) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_quantity", "increment", increment)

	sid, err := sessionID(c)
	if err != nil {
		l.Warn("set_quantity_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := c.Param("id")
	if id == "" {
		l.Warn("set_quantity_error", "status", 400, "reason", "empty id")
		return echo.NewHTTPError(http.StatusBadRequest, "id required")
	}

	resp, err := h.Svc.SetQuantity(ctx, sid, id, increment)
	if err != nil {
		return serviceError(l, "set_quantity_error", err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_from_cart")

	sid, err := sessionID(c)
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := c.Param("id")
	if id == "" {
		l.Warn("remove_from_cart_error", "status", 400, "reason", "empty id")
		return echo.NewHTTPError(http.StatusBadRequest, "id required")
	}

	resp, err := h.Svc.RemoveFromCart(ctx, sid, id)
	if err != nil {
		return serviceError(l, "remove_from_cart_error", err)
	}
	return c.JSON(http.StatusOK, resp)
}
