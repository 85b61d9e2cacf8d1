package cart

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shope/internal/models"
)

// ReAddPolicy decides what Add does when the product is already in the cart.
type ReAddPolicy int

const (
	// ReAddIgnore drops the repeated add and leaves the quantity untouched.
	ReAddIgnore ReAddPolicy = iota
	// ReAddIncrement bumps the quantity of the existing line by one.
	ReAddIncrement
)

func (p ReAddPolicy) String() string {
	switch p {
	case ReAddIncrement:
		return "increment"
	default:
		return "ignore"
	}
}

func ParsePolicy(s string) (ReAddPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return ReAddIgnore, nil
	case "increment":
		return ReAddIncrement, nil
	default:
		return ReAddIgnore, fmt.Errorf("unknown re-add policy %q", s)
	}
}

// Cart is an ordered list of line items with at most one line per product id.
// Quantities never drop below 1; a line leaves the cart only through Remove or Clear.
type Cart struct {
	mu     sync.Mutex
	policy ReAddPolicy
	items  []models.CartItem
}

func New(policy ReAddPolicy) *Cart {
	return &Cart{policy: policy}
}

func (c *Cart) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends p with quantity 1. Reports whether the cart changed.
func (c *Cart) Add(p models.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(p.ID); i >= 0 {
		if c.policy == ReAddIncrement {
			c.items[i].Quantity++
			return true
		}
		return false
	}
	c.items = append(c.items, models.NewCartItem(p))
	return true
}

func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// SetQuantity moves the quantity of id up or down by one, flooring at 1.
func (c *Cart) SetQuantity(id string, increment bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	if increment {
		c.items[i].Quantity++
		return true
	}
	if c.items[i].Quantity <= 1 {
		return false
	}
	c.items[i].Quantity--
	return true
}

// Commit runs op against a draft copy of the cart. When op reports a change,
// persist receives the draft's lines and the cart adopts them only if persist
// succeeds; on error the cart is left exactly as it was.
func (c *Cart) Commit(op func(draft *Cart) bool, persist func([]models.CartItem) error) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft := &Cart{policy: c.policy, items: make([]models.CartItem, len(c.items))}
	copy(draft.items, c.items)
	if !op(draft) {
		return false, nil
	}
	if persist != nil {
		if err := persist(draft.Items()); err != nil {
			return false, err
		}
	}
	c.items = draft.items
	return true, nil
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, it := range c.items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	return total
}

// TotalString renders Total with two decimals.
func (c *Cart) TotalString() string {
	return c.Total().StringFixed(2)
}

func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Item(id string) (models.CartItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return models.CartItem{}, false
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear empties the cart and returns what it held.
func (c *Cart) Clear() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.items
	c.items = nil
	return out
}

// Restore replaces the contents with items, dropping repeated ids and raising
// quantities below 1 to 1.
func (c *Cart) Restore(items []models.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]models.CartItem, 0, len(items))
	for _, it := range items {
		if c.indexOf(it.ID) >= 0 {
			continue
		}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		c.items = append(c.items, it)
	}
}
