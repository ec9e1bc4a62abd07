package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siyara/storefront/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment:    "test",
		HTTPPort:       8080,
		OrderBaseURL:   "https://wa.me",
		OrderCurrency:  "₹",
		WishlistStore:  config.WishlistStoreFile,
		WishlistFile:   filepath.Join(t.TempDir(), "storefront.json"),
		WishlistKey:    "wishlist",
		CORSOrigins:    []string{"*"},
		OTELSampleRate: 1,
	}
}

func TestBuild_FileBackendPersistsAcrossBuilds(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	first, err := Build(ctx, cfg, testLogger())
	require.NoError(t, err)
	_, _, err = first.WishlistService.Toggle(ctx, "NK001")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Build(ctx, cfg, testLogger())
	require.NoError(t, err)
	defer second.Close()
	w, err := second.WishlistService.Wishlist(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"NK001"}, w.IDs())
}

func TestBuild_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.WishlistStore = config.WishlistStoreRedis
	cfg.RedisHost = mr.Host()
	cfg.RedisPort = port

	c, err := Build(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	defer c.Close()

	_, _, err = c.WishlistService.Toggle(context.Background(), "ER003")
	require.NoError(t, err)
	raw, err := mr.Get("wishlist")
	require.NoError(t, err)
	assert.JSONEq(t, `["ER003"]`, raw)

	h := NewHealthHandler(c)
	assert.Equal(t, []string{"catalog", "redis"}, h.Names())
}

func TestBuild_BadCatalogPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := Build(context.Background(), cfg, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}

func TestNewApp_ServesCatalog(t *testing.T) {
	a, err := NewApp(testConfig(t), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?per_page=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			TotalCount int `json:"total_count"`
			Data       []struct {
				ID string `json:"id"`
			} `json:"data"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 12, body.Data.TotalCount)
	assert.Len(t, body.Data.Data, 2)
}
