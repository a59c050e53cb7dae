package serverhttp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablemap-service/internal/config"
	"tablemap-service/internal/mapping/catalog"
	mapSvc "tablemap-service/internal/mapping/service"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cat, err := catalog.Parse(strings.NewReader(`{"field_mappings": {"sales": {"aliases": ["sales"]}}}`))
	require.NoError(t, err)
	cfg := config.Config{AllowOrigins: []string{"*"}, MaxUploadMB: 8}
	return NewRouter(cfg, zerolog.Nop(), mapSvc.New(cat), nil)
}

func TestHealth(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMapRequiresPost(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/map", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
