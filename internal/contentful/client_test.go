package contentful

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entriesBody = `{
  "total": 1, "skip": 0, "limit": 100,
  "items": [{
    "sys": {"id": "p1", "type": "Entry"},
    "fields": {
      "name": "Blue Mug",
      "price": 12.5,
      "featuredProductImage": {"sys": {"type": "Link", "linkType": "Asset", "id": "a1"}}
    }
  }],
  "includes": {"Asset": [{
    "sys": {"id": "a1", "type": "Asset"},
    "fields": {"title": "mug", "file": {"url": "//images.ctfassets.net/mug.png", "contentType": "image/png"}}
  }]}
}`

func TestClient_GetEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space1/environments/master/entries", r.URL.Path)
		assert.Equal(t, "pageProduct", r.URL.Query().Get("content_type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(entriesBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "space1", "", "tok")
	col, err := c.GetEntries(context.Background(), "pageProduct")
	require.NoError(t, err)
	require.Len(t, col.Items, 1)
	assert.Equal(t, "p1", col.Items[0].Sys.ID)

	asset, ok := col.Asset("a1")
	require.True(t, ok)
	assert.Equal(t, "//images.ctfassets.net/mug.png", asset.Fields.File.URL)

	_, ok = col.Asset("missing")
	assert.False(t, ok)
}

func TestClient_GetEntries_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"sys":{"type":"Error","id":"AccessTokenInvalid"},"message":"The access token you sent could not be found or is invalid.","requestId":"r1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "space1", "master", "bad")
	_, err := c.GetEntries(context.Background(), "pageProduct")
	require.ErrorIs(t, err, ErrStatus)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "AccessTokenInvalid", apiErr.Sys.ID)
}

func TestClient_GetEntries_PlainErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "s", "master", "t").GetEntries(context.Background(), "x")
	require.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "bad gateway")
}

func TestClient_GetEntries_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "s", "master", "t").GetEntries(context.Background(), "x")
	require.ErrorContains(t, err, "decode response")
}
