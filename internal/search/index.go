package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/shope/internal/models"
)

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	slog.Info("connecting to elasticsearch", "url", url)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
	}

	return client, nil
}

// Index mirrors the catalog into Elasticsearch and answers name queries from it.
type Index struct {
	ES   *elasticsearch.Client
	Name string
}

func (i *Index) IndexProducts(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(p); err != nil {
			return fmt.Errorf("encode product %s: %w", p.ID, err)
		}
		res, err := i.ES.Index(i.Name, &buf,
			i.ES.Index.WithContext(ctx),
			i.ES.Index.WithDocumentID(p.ID),
		)
		if err != nil {
			return fmt.Errorf("index product %s: %w", p.ID, err)
		}
		isErr, status := res.IsError(), res.Status()
		res.Body.Close()
		if isErr {
			return fmt.Errorf("index product %s: %s", p.ID, status)
		}
	}

	res, err := i.ES.Indices.Refresh(
		i.ES.Indices.Refresh.WithContext(ctx),
		i.ES.Indices.Refresh.WithIndex(i.Name),
	)
	if err != nil {
		return fmt.Errorf("refresh index: %w", err)
	}
	res.Body.Close()
	return nil
}

func (i *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(query, from, size)); err != nil {
		return 0, nil, fmt.Errorf("search encode: %w", err)
	}

	res, err := i.ES.Search(
		i.ES.Search.WithContext(ctx),
		i.ES.Search.WithIndex(i.Name),
		i.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	return decodeHits(res.Body)
}

// buildQuery matches the same names Filter does: a case-insensitive substring
// of the whole name, which is why it targets the keyword sub-field.
func buildQuery(query string, from, size int) map[string]any {
	body := map[string]any{
		"from": from,
		"size": size,
		"sort": []any{map[string]any{"_doc": "asc"}},
	}
	if query == "" {
		body["query"] = map[string]any{"match_all": map[string]any{}}
		return body
	}
	body["query"] = map[string]any{
		"wildcard": map[string]any{
			"name.keyword": map[string]any{
				"value":            "*" + escapeWildcard(query) + "*",
				"case_insensitive": true,
			},
		},
	}
	return body
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func escapeWildcard(s string) string {
	return wildcardEscaper.Replace(s)
}

func decodeHits(r io.Reader) (int64, []models.Product, error) {
	var resp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return 0, nil, fmt.Errorf("search decode: %w", err)
	}

	prods := make([]models.Product, len(resp.Hits.Hits))
	for i, hit := range resp.Hits.Hits {
		prods[i] = hit.Source
	}
	return resp.Hits.Total.Value, prods, nil
}
