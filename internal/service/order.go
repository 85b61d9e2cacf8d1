package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shope/internal/cart"
	"github.com/Skotchmaster/shope/internal/events"
	"github.com/Skotchmaster/shope/internal/models"
	"github.com/Skotchmaster/shope/internal/order"
	"github.com/Skotchmaster/shope/internal/session"
	"github.com/Skotchmaster/shope/internal/transport"
)

type OrderRepo interface {
	AppendOrders(ctx context.Context, sessionID string, items []models.OrderItem) error
	ListOrders(ctx context.Context, sessionID string) ([]models.OrderItem, error)
	// CheckoutOrders appends items and empties the stored cart atomically.
	CheckoutOrders(ctx context.Context, sessionID string, items []models.OrderItem) error
}

type OrderService struct {
	Store     *session.Store[*order.Log]
	Repo      OrderRepo
	Carts     *CartService
	Publisher events.Publisher
	Now       func() time.Time
}

func NewOrderStore() *session.Store[*order.Log] {
	return session.NewStore(order.NewLog)
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *OrderService) Log(ctx context.Context, sessionID string) (*order.Log, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id required: %w", ErrValidation)
	}
	return s.Store.Open(sessionID, func(l *order.Log) error {
		if s.Repo == nil {
			return nil
		}
		items, err := s.Repo.ListOrders(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		l.Restore(items)
		return nil
	})
}

func (s *OrderService) GetOrders(ctx context.Context, sessionID string) (transport.OrdersResponse, error) {
	l, err := s.Log(ctx, sessionID)
	if err != nil {
		return transport.OrdersResponse{}, err
	}
	items := l.Items()
	return transport.OrdersResponse{Items: items, Count: len(items)}, nil
}

// PlaceOrder always records a new entry, even for a product ordered before.
// The entry reaches the log only once it is stored.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionID string, p models.Product) (models.OrderItem, error) {
	if err := validateProduct(p); err != nil {
		return models.OrderItem{}, err
	}
	l, err := s.Log(ctx, sessionID)
	if err != nil {
		return models.OrderItem{}, err
	}

	placed, err := l.Append([]models.CartItem{models.NewCartItem(p)}, s.now(), func(items []models.OrderItem) error {
		return s.append(ctx, sessionID, items...)
	})
	if err != nil {
		return models.OrderItem{}, err
	}
	item := placed[0]

	publish(ctx, s.Publisher, events.Event{
		Type:      events.TypeOrderPlaced,
		SessionID: sessionID,
		ProductID: item.ProductID,
		OrderID:   item.ID,
		Quantity:  item.Quantity,
		Total:     order.LineTotal(item).StringFixed(2),
		At:        item.CreatedAt,
	})
	return item, nil
}

// Checkout moves every cart line into the order log and empties the cart.
// Orders and the emptied cart are stored together; if that fails neither the
// cart nor the log changes.
func (s *OrderService) Checkout(ctx context.Context, sessionID string) (transport.CheckoutResponse, error) {
	c, err := s.Carts.Cart(ctx, sessionID)
	if err != nil {
		return transport.CheckoutResponse{}, err
	}
	l, err := s.Log(ctx, sessionID)
	if err != nil {
		return transport.CheckoutResponse{}, err
	}

	at := s.now()
	var lines []models.CartItem
	var placed []models.OrderItem
	changed, err := c.Commit(func(draft *cart.Cart) bool {
		lines = draft.Clear()
		return len(lines) > 0
	}, func([]models.CartItem) error {
		var err error
		placed, err = l.Append(lines, at, func(items []models.OrderItem) error {
			return s.checkout(ctx, sessionID, items)
		})
		return err
	})
	if err != nil {
		return transport.CheckoutResponse{}, err
	}
	if !changed {
		return transport.CheckoutResponse{}, fmt.Errorf("cart is empty: %w", ErrValidation)
	}

	total := decimal.Zero
	for _, it := range placed {
		total = total.Add(order.LineTotal(it))
	}

	publish(ctx, s.Publisher, events.Event{
		Type:      events.TypeCartCheckedOut,
		SessionID: sessionID,
		Count:     len(placed),
		Total:     total.StringFixed(2),
		At:        at,
	})

	// newest first, matching the log
	out := make([]models.OrderItem, len(placed))
	for i, it := range placed {
		out[len(placed)-1-i] = it
	}
	return transport.CheckoutResponse{Orders: out, Total: total.StringFixed(2)}, nil
}

func (s *OrderService) append(ctx context.Context, sessionID string, items ...models.OrderItem) error {
	if s.Repo == nil {
		return nil
	}
	if err := s.Repo.AppendOrders(ctx, sessionID, items); err != nil {
		return fmt.Errorf("append orders: %w", err)
	}
	return nil
}

func (s *OrderService) checkout(ctx context.Context, sessionID string, items []models.OrderItem) error {
	if s.Repo == nil {
		return nil
	}
	if err := s.Repo.CheckoutOrders(ctx, sessionID, items); err != nil {
		return fmt.Errorf("checkout orders: %w", err)
	}
	return nil
}
