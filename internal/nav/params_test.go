package nav

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shope/internal/models"
)

func TestParams_RoundTrip(t *testing.T) {
	t.Parallel()

	p := models.Product{ID: "7", Name: "Lamp", Price: 12.5, ImageURI: "https://img/lamp"}
	v := FromProduct(p).Values()
	assert.Equal(t, "12.5", v.Get("price"))

	got, ok := FromValues(v).Product()
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestParams_Guards(t *testing.T) {
	t.Parallel()

	full := url.Values{"id": {"1"}, "name": {"n"}, "price": {"3"}, "image": {"i"}}
	tests := []struct {
		name string
		drop string
		set  map[string]string
	}{
		{name: "missing id", drop: "id"},
		{name: "missing name", drop: "name"},
		{name: "missing price", drop: "price"},
		{name: "missing image", drop: "image"},
		{name: "non numeric price", set: map[string]string{"price": "abc"}},
		{name: "negative price", set: map[string]string{"price": "-1"}},
		{name: "nan price", set: map[string]string{"price": "NaN"}},
		{name: "infinite price", set: map[string]string{"price": "Inf"}},
		{name: "spelled out infinity", set: map[string]string{"price": "-Infinity"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := url.Values{}
			for k, vals := range full {
				v[k] = vals
			}
			v.Del(tt.drop)
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, ok := FromValues(v).Product()
			assert.False(t, ok)
		})
	}
}
