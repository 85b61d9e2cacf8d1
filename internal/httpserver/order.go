package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shope/internal/service"
	"github.com/Skotchmaster/shope/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	sid, err := sessionID(c)
	if err != nil {
		l.Warn("get_orders_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.Svc.GetOrders(ctx, sid)
	if err != nil {
		return serviceError(l, "get_orders_error", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// PlaceOrder is the "Buy Now" action. Like AddToCart, incomplete params are
// skipped and the current order log is returned.
func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	sid, err := sessionID(c)
	if err != nil {
		l.Warn("place_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	params, err := productParams(c)
	if err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, ok := params.Product()
	if !ok {
		l.Warn("place_order_skipped", "status", 200, "reason", "incomplete product params", "id", params.ID)
		resp, err := h.Svc.GetOrders(ctx, sid)
		if err != nil {
			return serviceError(l, "place_order_error", err)
		}
		return c.JSON(http.StatusOK, resp)
	}

	item, err := h.Svc.PlaceOrder(ctx, sid, p)
	if err != nil {
		return serviceError(l, "place_order_error", err)
	}

	l.Info("place_order_success", "order_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	sid, err := sessionID(c)
	if err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.Svc.Checkout(ctx, sid)
	if err != nil {
		return serviceError(l, "checkout_error", err)
	}

	l.Info("checkout_success", "orders", len(resp.Orders), "total", resp.Total)
	return c.JSON(http.StatusCreated, resp)
}
