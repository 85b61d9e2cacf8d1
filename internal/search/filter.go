package search

import (
	"strings"

	"github.com/Skotchmaster/shope/internal/models"
)

// Filter keeps the products whose name contains query, ignoring case.
// An empty query keeps everything. Input order is preserved.
func Filter(products []models.Product, query string) []models.Product {
	q := strings.ToLower(query)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}
