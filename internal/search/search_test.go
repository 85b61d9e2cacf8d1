package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shope/internal/models"
)

var catalog = []models.Product{
	{ID: "1", Name: "Red Running Shoe", Price: 60},
	{ID: "2", Name: "Blue Mug", Price: 12},
	{ID: "3", Name: "running socks", Price: 5},
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "unique substring", query: "mug", want: []string{"2"}},
		{name: "case insensitive", query: "RUNNING", want: []string{"1", "3"}},
		{name: "inner substring", query: "ue m", want: []string{"2"}},
		{name: "no match", query: "lamp", want: []string{}},
		{name: "empty query", query: "", want: []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(catalog, tt.query)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_UniqueMatchReturnsThatProduct(t *testing.T) {
	t.Parallel()

	got := Filter(catalog, "Shoe")
	require.Len(t, got, 1)
	assert.Equal(t, catalog[0], got[0])
}

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	q := buildQuery("mu*g", 10, 5)
	assert.Equal(t, 10, q["from"])
	assert.Equal(t, 5, q["size"])

	wc := q["query"].(map[string]any)["wildcard"].(map[string]any)["name.keyword"].(map[string]any)
	assert.Equal(t, `*mu\*g*`, wc["value"])
	assert.Equal(t, true, wc["case_insensitive"])

	all := buildQuery("", 0, 20)
	assert.Contains(t, all["query"], "match_all")
}

func TestDecodeHits(t *testing.T) {
	t.Parallel()

	body := `{"hits":{"total":{"value":2},"hits":[
		{"_source":{"id":"1","name":"Red Running Shoe","price":60,"image":"u1"}},
		{"_source":{"id":"3","name":"running socks","price":5,"image":"u3"}}]}}`

	total, prods, err := decodeHits(strings.NewReader(body))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, prods, 2)
	assert.Equal(t, "u1", prods[0].ImageURI)
	assert.Equal(t, 5.0, prods[1].Price)

	_, _, err = decodeHits(strings.NewReader("{"))
	require.Error(t, err)
}
