package order

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shope/internal/models"
)

// Log is an append-only order history, newest entry first. Placing the same
// product twice yields two entries with distinct ids.
type Log struct {
	mu    sync.Mutex
	items []models.OrderItem
	ids   map[string]struct{}
}

func NewLog() *Log {
	return &Log{ids: make(map[string]struct{})}
}

// nextID derives "<productID>-<unix millis>" and adds a counter suffix when
// that id is already in the log or in pending.
func (l *Log) nextID(productID string, at time.Time, pending map[string]struct{}) string {
	base := fmt.Sprintf("%s-%d", productID, at.UnixMilli())
	id := base
	for n := 1; ; n++ {
		_, taken := l.ids[id]
		_, reserved := pending[id]
		if !taken && !reserved {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

// Place records one unit of p at the front of the log.
func (l *Log) Place(p models.Product, at time.Time) models.OrderItem {
	return l.PlaceLine(models.NewCartItem(p), at)
}

// PlaceLine records a cart line, keeping its quantity.
func (l *Log) PlaceLine(line models.CartItem, at time.Time) models.OrderItem {
	items, _ := l.Append([]models.CartItem{line}, at, nil)
	return items[0]
}

// Append turns lines into entries placed at at, in order, so the last line
// becomes the newest entry. persist, when set, sees the entries before the log
// does; if it fails the log is unchanged and its error is returned.
func (l *Log) Append(lines []models.CartItem, at time.Time, persist func([]models.OrderItem) error) ([]models.OrderItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending := make(map[string]struct{}, len(lines))
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		id := l.nextID(line.ID, at, pending)
		pending[id] = struct{}{}
		items = append(items, models.OrderItem{
			ID:        id,
			ProductID: line.ID,
			Name:      line.Name,
			Price:     line.Price,
			ImageURI:  line.ImageURI,
			Quantity:  qty,
			CreatedAt: at,
		})
	}

	if persist != nil {
		if err := persist(items); err != nil {
			return nil, err
		}
	}

	next := make([]models.OrderItem, 0, len(items)+len(l.items))
	for i := len(items) - 1; i >= 0; i-- {
		next = append(next, items[i])
		l.ids[items[i].ID] = struct{}{}
	}
	l.items = append(next, l.items...)
	return items, nil
}

func (l *Log) Items() []models.OrderItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.OrderItem, len(l.items))
	copy(out, l.items)
	return out
}

// Restore replaces the log with items, which must already be newest first.
func (l *Log) Restore(items []models.OrderItem) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = make([]models.OrderItem, len(items))
	copy(l.items, items)
	l.ids = make(map[string]struct{}, len(items))
	for _, it := range items {
		l.ids[it.ID] = struct{}{}
	}
}

// LineTotal is price*quantity of a single entry.
func LineTotal(it models.OrderItem) decimal.Decimal {
	return decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
}
