package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.HTTPPort = 0
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func TestNewApp_ServesEmbeddedCatalog(t *testing.T) {
	a, err := NewApp(testConfig(t), testLogger())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?per_page=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			TotalCount int `json:"total_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 24, body.Data.TotalCount)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"catalog"`)
	assert.NotContains(t, rec.Body.String(), `"kafka"`)
}

func TestNewApp_SeededSession(t *testing.T) {
	a, err := NewApp(testConfig(t), testLogger())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data struct {
			ID   string `json:"id"`
			Cart struct {
				TotalCount int `json:"total_count"`
			} `json:"cart"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.ID)
	assert.Equal(t, 3, body.Data.Cart.TotalCount)
}

func TestNewApp_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	raw := `{"trending_keywords":["lamp"],"products":[{"id":7,"title":"Desk Lamp","price":1299,"rating":4,"category":"Home & Garden","platform":"flipkart","in_stock":true}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg := testConfig(t)
	cfg.CatalogPath = path
	cfg.CartSeedProductIDs = []int{7}

	a, err := NewApp(cfg, testLogger())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/7", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Desk Lamp")
}

func TestNewApp_MissingCatalogFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.json")

	_, err := NewApp(cfg, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}

func TestRun_StopsOnCancel(t *testing.T) {
	a, err := NewApp(testConfig(t), testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
