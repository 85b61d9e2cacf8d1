package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shope/internal/catalog"
	"github.com/Skotchmaster/shope/internal/models"
	"github.com/Skotchmaster/shope/internal/transport"
	"github.com/Skotchmaster/shope/pkg/logging"
	"github.com/Skotchmaster/shope/pkg/util"
)

const (
	sourceElasticsearch = "elasticsearch"
	sourceMemory        = "memory"
)

type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type CatalogHTTP struct {
	Catalog *catalog.Loader
	// Index is optional; when nil or failing, queries are answered from memory.
	Index Searcher
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	query := c.QueryParam("q")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	if page < 1 {
		page = 1
	}

	var (
		total  int64
		items  []models.Product
		source = sourceMemory
	)
	if h.Index != nil {
		n, found, err := h.Index.Search(ctx, query, offset, limit)
		if err == nil {
			total, items, source = n, found, sourceElasticsearch
		} else {
			l.Warn("search_index_error", "reason", "falling back to memory", "error", err)
		}
	}
	if source == sourceMemory {
		all := h.Catalog.Search(query)
		from, to := util.Window(len(all), offset, limit)
		total, items = int64(len(all)), all[from:to]
	}
	if items == nil {
		items = []models.Product{}
	}

	l.Info("get_products_success", "query", query, "total", total, "source", source)
	return c.JSON(http.StatusOK, transport.ProductsResponse{
		Data: items,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
			Source:     source,
		},
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id := c.Param("id")
	p, ok := h.Catalog.Product(id)
	if !ok {
		l.Warn("get_product_failed", "status", 404, "reason", "product not in catalog", "id", id)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, p)
}

// Reload re-runs the catalog fetch. Fetch failures leave an empty catalog
// and are not reported to the caller.
func (h *CatalogHTTP) Reload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.reload")

	products := h.Catalog.Load(ctx)
	l.Info("catalog_reloaded", "count", len(products))
	return c.JSON(http.StatusOK, map[string]any{"count": len(products)})
}
