package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/Skotchmaster/shope/internal/contentful"
	"github.com/Skotchmaster/shope/internal/events"
	"github.com/Skotchmaster/shope/internal/models"
	"github.com/Skotchmaster/shope/internal/search"
	"github.com/Skotchmaster/shope/pkg/logging"
)

const (
	DefaultContentType = "pageProduct"
	PlaceholderImage   = "https://via.placeholder.com/150"

	fieldName  = "name"
	fieldPrice = "price"
	fieldImage = "featuredProductImage"
)

type EntryFetcher interface {
	GetEntries(ctx context.Context, contentType string) (*contentful.EntryCollection, error)
}

type Indexer interface {
	IndexProducts(ctx context.Context, products []models.Product) error
}

// Loader holds the product list of the catalog screen. Each Load replaces it
// with a fresh fetch, or with nothing when the fetch fails.
type Loader struct {
	Client      EntryFetcher
	ContentType string
	Index       Indexer
	Events      events.Publisher

	mu       sync.RWMutex
	products []models.Product
}

func (l *Loader) Load(ctx context.Context) []models.Product {
	ctx, log := logging.With(ctx, "component", "catalog.loader")

	contentType := l.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	products := []models.Product{}
	col, err := l.Client.GetEntries(ctx, contentType)
	switch {
	case err != nil:
		var apiErr *contentful.APIError
		if errors.As(err, &apiErr) {
			log.Error("catalog_fetch_error", "status", apiErr.Status, "reason", apiErr.Sys.ID, "error", apiErr.Message)
		} else {
			log.Error("catalog_fetch_error", "error", err)
		}
	case len(col.Items) == 0:
		log.Warn("no products found", "content_type", contentType)
	default:
		products = MapEntries(col)
		log.Info("catalog_loaded", "count", len(products))
	}

	l.mu.Lock()
	l.products = products
	l.mu.Unlock()

	if l.Index != nil && len(products) > 0 {
		if err := l.Index.IndexProducts(ctx, products); err != nil {
			log.Warn("catalog_index_error", "error", err)
		}
	}

	if l.Events != nil && len(products) > 0 {
		ev := events.Event{Type: events.TypeCatalogLoaded, Count: len(products)}
		if err := l.Events.Publish(ctx, ev); err != nil {
			log.Warn("publish_event_error", "type", ev.Type, "error", err)
		}
	}

	return l.Products()
}

func (l *Loader) Products() []models.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Product, len(l.products))
	copy(out, l.products)
	return out
}

func (l *Loader) Product(id string) (models.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, p := range l.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (l *Loader) Search(query string) []models.Product {
	return search.Filter(l.Products(), query)
}

// MapEntries converts content entries to products. Linked image assets are
// resolved from the collection includes.
func MapEntries(col *contentful.EntryCollection) []models.Product {
	out := make([]models.Product, 0, len(col.Items))
	for _, e := range col.Items {
		out = append(out, models.Product{
			ID:       e.Sys.ID,
			Name:     stringField(e.Fields[fieldName]),
			Price:    priceField(e.Fields[fieldPrice]),
			ImageURI: imageURI(col, e.Fields[fieldImage]),
		})
	}
	return out
}

func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// priceField accepts a JSON number or a numeric string.
func priceField(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return f
	}
	if s := stringField(raw); s != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return 0
}

func imageURI(col *contentful.EntryCollection, raw json.RawMessage) string {
	if len(raw) == 0 {
		return PlaceholderImage
	}

	// A resolved asset carries fields inline, an unresolved one is a link.
	var asset contentful.Asset
	if json.Unmarshal(raw, &asset) != nil {
		return PlaceholderImage
	}
	url := asset.Fields.File.URL
	if url == "" && asset.Sys.ID != "" {
		if a, ok := col.Asset(asset.Sys.ID); ok {
			url = a.Fields.File.URL
		}
	}

	switch {
	case url == "":
		return PlaceholderImage
	case strings.HasPrefix(url, "//"):
		return "https:" + url
	default:
		return url
	}
}
