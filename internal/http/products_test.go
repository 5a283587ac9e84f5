package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopassist/internal/cache"
	"shopassist/internal/config"
	"shopassist/internal/domain"
	"shopassist/internal/http/handlers"
	"shopassist/internal/repos"
	"shopassist/internal/services"
)

func TestProductsList(t *testing.T) {
	env := newTestEnv(t, nil)

	code, body := env.do(t, "GET", "/api/products", "")
	require.Equal(t, http.StatusOK, code)
	products := decode[[]domain.Product](t, body)
	assert.Len(t, products, 11)

	raw := decode[[]map[string]any](t, body)
	_, isObject := raw[0]["specifications"].(map[string]any)
	assert.True(t, isObject, "specifications must be a JSON object")
}

func TestProductDetail(t *testing.T) {
	env := newTestEnv(t, nil)

	code, body := env.do(t, "GET", "/api/products/3", "")
	require.Equal(t, http.StatusOK, code)
	p := decode[domain.Product](t, body)
	assert.Equal(t, "MacBook Air M3", p.Name)
	assert.Equal(t, "M3", p.Specifications()["processor"])

	code, body = env.do(t, "GET", "/api/products/999", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", decode[map[string]string](t, body)["error"])

	code, _ = env.do(t, "GET", "/api/products/abc", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProductCategories(t *testing.T) {
	env := newTestEnv(t, nil)

	code, body := env.do(t, "GET", "/api/products/categories", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"Electronics", "Fashion", "Home & Garden", "Sports"}, decode[[]string](t, body))

	code, body = env.do(t, "GET", "/api/products/category/Home%20%26%20Garden", "")
	require.Equal(t, http.StatusOK, code)
	products := decode[[]domain.Product](t, body)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, "Home & Garden", p.Category)
	}

	code, body = env.do(t, "GET", "/api/products/category/Toys", "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]domain.Product](t, body))
}

func TestProductSearch(t *testing.T) {
	env := newTestEnv(t, nil)

	code, body := env.do(t, "GET", "/api/products/search?q=nike", "")
	require.Equal(t, http.StatusOK, code)
	products := decode[[]domain.Product](t, body)
	require.Len(t, products, 1)
	assert.Equal(t, "Nike Air Max 270", products[0].Name)

	code, body = env.do(t, "GET", "/api/products/search", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Search query is required", decode[map[string]string](t, body)["error"])

	code, _ = env.do(t, "GET", "/api/products/search?q=%20%20", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHealthRootAndNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	code, body := env.do(t, "GET", "/api/health", "")
	require.Equal(t, http.StatusOK, code)
	health := decode[map[string]any](t, body)
	assert.Equal(t, "OK", health["status"])
	assert.Equal(t, "3001", health["port"])
	assert.NotEmpty(t, health["timestamp"])

	code, body = env.do(t, "GET", "/", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "POST /api/recommendations")

	code, body = env.do(t, "GET", "/api/nope?x=1", "")
	assert.Equal(t, http.StatusNotFound, code)
	nf := decode[map[string]string](t, body)
	assert.Equal(t, "Endpoint not found", nf["error"])
	assert.Equal(t, "/api/nope?x=1", nf["path"])
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)

	env.do(t, "POST", "/api/recommendations", `{"query":"smartphone"}`)
	env.history.Wait()

	code, body := env.do(t, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "shopassist_recommendations_total")
}

func TestHealthReportsCacheStats(t *testing.T) {
	cfg := config.Config{Port: "3001", DBDSN: ":memory:"}
	db, err := repos.OpenDB(cfg.DBDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	c := cache.New(client, "test:", time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	catalog := services.NewCatalogService(repos.NewProductRepo(db), c)
	deps := handlers.NewDeps(cfg, catalog, nil, repos.NewRecommendationRepo(db))
	app := handlers.NewApp(cfg, deps)

	// one failed lookup so the counters move
	resp, err := app.Test(httptest.NewRequest("GET", "/api/products", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/health", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	health := decode[map[string]any](t, body)
	stats, ok := health["cache"].(map[string]any)
	require.True(t, ok, string(body))
	assert.GreaterOrEqual(t, stats["errors"], 1.0)
}
