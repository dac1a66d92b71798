package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbleshop/assistant/internal/config"
	"github.com/nimbleshop/assistant/internal/errs"
	"github.com/nimbleshop/assistant/internal/model/catalog"
)

func testConfig(baseURL string) config.BackendConfig {
	return config.BackendConfig{
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
		MaxAttempts: 3,
		BackoffMin:  time.Millisecond,
		BackoffMax:  5 * time.Millisecond,
	}
}

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Smartphone", Price: 599.99, Category: "Electronics", Description: "A sleek phone", Emoji: "📱"},
		{ID: 2, Name: "Laptop", Price: 1299.00, Category: "Electronics", Description: "A fast laptop", Emoji: "💻"},
		{ID: 3, Name: "Coffee Mug", Price: 9.50, Category: "Home", Description: "Ceramic mug", Emoji: "☕"},
	}
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleProducts())
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGetAllProducts(t *testing.T) {
	server := newCatalogServer(t)
	client := NewClient(testConfig(server.URL))

	products := client.GetAllProducts(context.Background())
	require.Len(t, products, 3)
	assert.Equal(t, "Smartphone", products[0].Name)
}

func TestSearchProductsQueryFilter(t *testing.T) {
	server := newCatalogServer(t)
	client := NewClient(testConfig(server.URL))

	matched := client.SearchProducts(context.Background(), "phone", "")
	require.Len(t, matched, 1)
	assert.Equal(t, "Smartphone", matched[0].Name)
}

func TestSearchProductsCategoryFilter(t *testing.T) {
	server := newCatalogServer(t)
	client := NewClient(testConfig(server.URL))

	// "e" is a substring of every product name, the category narrows it down.
	matched := client.SearchProducts(context.Background(), "e", "electronics")
	require.Len(t, matched, 2)
	for _, product := range matched {
		assert.Equal(t, "Electronics", product.Category)
	}
}

func TestGetProductByIDNotFound(t *testing.T) {
	calls := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	product := client.GetProductByID(context.Background(), 42)

	assert.Nil(t, product)
	// 404 is a definitive answer, never retried.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRequestRetriesServerErrors(t *testing.T) {
	calls := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(sampleProducts())
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	products := client.GetAllProducts(context.Background())

	require.Len(t, products, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRequestGivesUpAfterMaxAttempts(t *testing.T) {
	calls := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.request(context.Background(), http.MethodGet, "/api/products", nil)

	require.Error(t, err)
	assert.Equal(t, errs.CodeBackendError, errs.CodeOf(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRequestUnavailableBackend(t *testing.T) {
	// Grab an address that refuses connections.
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	client := NewClient(testConfig(addr))
	_, err := client.request(context.Background(), http.MethodGet, "/api/products", nil)

	require.Error(t, err)
	assert.Equal(t, errs.CodeBackendUnavailable, errs.CodeOf(err))
	assert.Nil(t, client.GetAllProducts(context.Background()))
	assert.False(t, client.HealthCheck(context.Background()))
}

func TestGetCartSummary(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cart", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]catalog.CartItem{
			{ID: 1, ProductID: 1, Quantity: 2, Price: 10.99, Name: "Smartphone Case"},
			{ID: 2, ProductID: 3, Quantity: 1, Price: 20.99, Name: "Desk Lamp"},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	summary := client.GetCartSummary(context.Background())

	assert.False(t, summary.Empty)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 42.97, summary.TotalCost)
}

func TestGetCartSummaryEmptyCart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cart", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]catalog.CartItem{})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	summary := client.GetCartSummary(context.Background())

	assert.True(t, summary.Empty)
	assert.Zero(t, summary.TotalItems)
	assert.Zero(t, summary.TotalCost)
	assert.NotNil(t, summary.Items)
	assert.Empty(t, summary.Items)
}

func TestAddToCartPostsPayload(t *testing.T) {
	var received map[string]int
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/cart", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	ok := client.AddToCart(context.Background(), 7, 2)

	assert.True(t, ok)
	assert.Equal(t, map[string]int{"product_id": 7, "quantity": 2}, received)
}
