package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Skotchmaster/shope/internal/cart"
	"github.com/Skotchmaster/shope/internal/events"
	"github.com/Skotchmaster/shope/internal/models"
	"github.com/Skotchmaster/shope/internal/session"
	"github.com/Skotchmaster/shope/internal/transport"
	"github.com/Skotchmaster/shope/pkg/logging"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

type CartRepo interface {
	LoadCart(ctx context.Context, sessionID string) ([]models.CartItem, error)
	SaveCart(ctx context.Context, sessionID string, items []models.CartItem) error
}

type CartService struct {
	Store     *session.Store[*cart.Cart]
	Repo      CartRepo
	Publisher events.Publisher
}

func NewCartStore(policy cart.ReAddPolicy) *session.Store[*cart.Cart] {
	return session.NewStore(func() *cart.Cart { return cart.New(policy) })
}

// Cart returns the session's cart, loading its last snapshot on first use.
func (s *CartService) Cart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id required: %w", ErrValidation)
	}
	return s.Store.Open(sessionID, func(c *cart.Cart) error {
		if s.Repo == nil {
			return nil
		}
		items, err := s.Repo.LoadCart(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		c.Restore(items)
		return nil
	})
}

func view(c *cart.Cart) transport.CartResponse {
	items := c.Items()
	return transport.CartResponse{Items: items, Count: len(items), Total: c.TotalString()}
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (transport.CartResponse, error) {
	c, err := s.Cart(ctx, sessionID)
	if err != nil {
		return transport.CartResponse{}, err
	}
	return view(c), nil
}

func (s *CartService) AddToCart(ctx context.Context, sessionID string, p models.Product) (transport.CartResponse, error) {
	if err := validateProduct(p); err != nil {
		return transport.CartResponse{}, err
	}
	return s.mutate(ctx, sessionID, func(c *cart.Cart) (events.Event, bool) {
		changed := c.Add(p)
		it, _ := c.Item(p.ID)
		return events.Event{Type: events.TypeCartItemAdded, ProductID: p.ID, Quantity: it.Quantity}, changed
	})
}

func (s *CartService) RemoveFromCart(ctx context.Context, sessionID, productID string) (transport.CartResponse, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) (events.Event, bool) {
		return events.Event{Type: events.TypeCartItemRemoved, ProductID: productID}, c.Remove(productID)
	})
}

func (s *CartService) SetQuantity(ctx context.Context, sessionID, productID string, increment bool) (transport.CartResponse, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) (events.Event, bool) {
		changed := c.SetQuantity(productID, increment)
		it, _ := c.Item(productID)
		return events.Event{Type: events.TypeCartQuantityChanged, ProductID: productID, Quantity: it.Quantity}, changed
	})
}

// mutate applies fn to a draft of the cart. A change is persisted before the
// cart adopts it, then the event fn describes is published. When the write
// fails the cart keeps its previous lines.
func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(*cart.Cart) (events.Event, bool)) (transport.CartResponse, error) {
	c, err := s.Cart(ctx, sessionID)
	if err != nil {
		return transport.CartResponse{}, err
	}

	var ev events.Event
	changed, err := c.Commit(func(draft *cart.Cart) bool {
		var ok bool
		ev, ok = fn(draft)
		return ok
	}, func(items []models.CartItem) error {
		return s.save(ctx, sessionID, items)
	})
	resp := view(c)
	if err != nil || !changed {
		return resp, err
	}

	ev.SessionID = sessionID
	ev.Total = resp.Total
	publish(ctx, s.Publisher, ev)
	return resp, nil
}

func (s *CartService) save(ctx context.Context, sessionID string, items []models.CartItem) error {
	if s.Repo == nil {
		return nil
	}
	if err := s.Repo.SaveCart(ctx, sessionID, items); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Flush writes every open cart back to the repository.
func (s *CartService) Flush(ctx context.Context) error {
	var errs []error
	for _, id := range s.Store.IDs() {
		c, ok := s.Store.Lookup(id)
		if !ok {
			continue
		}
		if err := s.save(ctx, id, c.Items()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// validateProduct rejects products a cart or order log cannot price.
func validateProduct(p models.Product) error {
	if p.ID == "" {
		return fmt.Errorf("product id must not be empty: %w", ErrValidation)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price < 0 {
		return fmt.Errorf("product %s has invalid price %v: %w", p.ID, p.Price, ErrValidation)
	}
	return nil
}

func publish(ctx context.Context, p events.Publisher, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "type", ev.Type, "error", err)
	}
}
