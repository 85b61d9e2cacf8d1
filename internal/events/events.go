package events

import (
	"context"
	"time"
)

const (
	TypeCartItemAdded       = "cart_item_added"
	TypeCartItemRemoved     = "cart_item_removed"
	TypeCartQuantityChanged = "cart_quantity_changed"
	TypeCartCheckedOut      = "cart_checked_out"
	TypeOrderPlaced         = "order_placed"
	TypeCatalogLoaded       = "catalog_loaded"
)

type Event struct {
	Type      string    `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
	ProductID string    `json:"product_id,omitempty"`
	OrderID   string    `json:"order_id,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	Total     string    `json:"total,omitempty"`
	Count     int       `json:"count,omitempty"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
