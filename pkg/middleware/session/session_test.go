package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	e.Use(Middleware())

	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = ID(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(Header, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestMiddleware_KeepsClientSession(t *testing.T) {
	rec, seen := serve(t, "abc")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get(Header))
}

func TestMiddleware_GeneratesSession(t *testing.T) {
	rec, seen := serve(t, "")
	require.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(Header))
}

func TestID_FallsBackToHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "from-header")
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "from-header", ID(c))
}
