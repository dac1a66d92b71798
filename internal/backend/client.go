// Package backend wraps the e-commerce backend REST API. Transport failures
// never escape the public methods; they degrade to empty results so tool code
// only ever has to reason about emptiness.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/nimbleshop/assistant/internal/config"
	"github.com/nimbleshop/assistant/internal/errs"
	"github.com/nimbleshop/assistant/internal/model/catalog"
)

// Client is a reusable HTTP client for the backend API. Safe for concurrent
// use; the underlying http.Client pools connections.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	backoffMin  time.Duration
	backoffMax  time.Duration
}

// NewClient builds a client from the backend configuration.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		maxAttempts: cfg.MaxAttempts,
		backoffMin:  cfg.BackoffMin,
		backoffMax:  cfg.BackoffMax,
	}
}

// request performs one API call with bounded retries and exponential backoff.
// Only transport failures and 5xx responses are retried; 4xx responses are
// mapped to their failure kind and returned immediately.
func (c *Client) request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, errs.New(errs.CodeInternal, "encode request body: %v", err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.wait(ctx, attempt); err != nil {
				return nil, lastErr
			}
		}

		raw, retryable, err := c.do(ctx, method, path, payload)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		log.Printf("[backend] %s %s attempt %d/%d failed: %v", method, path, attempt, c.maxAttempts, err)
	}

	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (json.RawMessage, bool, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, false, errs.New(errs.CodeInternal, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, classifyTransportError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, errs.WithStatus(errs.CodeNotFound, resp.StatusCode, "resource not found: %s", path)
	}
	if resp.StatusCode >= 400 {
		retryable := resp.StatusCode >= 500
		return nil, retryable, errs.WithStatus(errs.CodeBackendError, resp.StatusCode, "backend error calling %s", path)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, errs.New(errs.CodeBackendError, "read response body: %v", err)
	}
	return raw, false, nil
}

func (c *Client) wait(ctx context.Context, attempt int) error {
	// Exponential window: min, 2*min, 4*min, ... capped at max.
	delay := time.Duration(float64(c.backoffMin) * math.Pow(2, float64(attempt-2)))
	if delay > c.backoffMax {
		delay = c.backoffMax
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func classifyTransportError(path string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.New(errs.CodeBackendTimeout, "timeout calling %s", path)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.New(errs.CodeBackendTimeout, "timeout calling %s", path)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return errs.New(errs.CodeBackendUnavailable, "cannot connect to backend at %s", path)
	}
	return errs.New(errs.CodeBackendUnavailable, "transport failure calling %s: %v", path, err)
}

// GetAllProducts returns every product, or an empty slice on failure.
func (c *Client) GetAllProducts(ctx context.Context) []catalog.Product {
	raw, err := c.request(ctx, http.MethodGet, "/api/products", nil)
	if err != nil {
		log.Printf("[backend] failed to retrieve products: %v", err)
		return nil
	}

	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		log.Printf("[backend] failed to decode products: %v", err)
		return nil
	}
	return products
}

// GetProductByID returns the product, or nil when missing or on failure.
func (c *Client) GetProductByID(ctx context.Context, productID int) *catalog.Product {
	raw, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), nil)
	if err != nil {
		log.Printf("[backend] product %d not available: %v", productID, err)
		return nil
	}

	var product catalog.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		log.Printf("[backend] failed to decode product %d: %v", productID, err)
		return nil
	}
	return &product
}

// GetProductReviews returns the reviews for a product, empty on failure.
func (c *Client) GetProductReviews(ctx context.Context, productID int) []catalog.Review {
	raw, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d/reviews", productID), nil)
	if err != nil {
		log.Printf("[backend] reviews for product %d not available: %v", productID, err)
		return nil
	}

	var reviews []catalog.Review
	if err := json.Unmarshal(raw, &reviews); err != nil {
		log.Printf("[backend] failed to decode reviews for product %d: %v", productID, err)
		return nil
	}
	return reviews
}

// SearchProducts filters the full product list client-side. A product matches
// when the query appears (case-insensitive) in its name, description, or
// category; a non-empty category is an additional exact-match filter.
func (c *Client) SearchProducts(ctx context.Context, query, category string) []catalog.Product {
	all := c.GetAllProducts(ctx)
	if len(all) == 0 {
		return nil
	}

	queryLower := strings.ToLower(query)
	var matched []catalog.Product
	for _, product := range all {
		if category != "" && !strings.EqualFold(category, product.Category) {
			continue
		}

		if strings.Contains(strings.ToLower(product.Name), queryLower) ||
			strings.Contains(strings.ToLower(product.Description), queryLower) ||
			strings.Contains(strings.ToLower(product.Category), queryLower) {
			matched = append(matched, product)
		}
	}

	log.Printf("[backend] found %d products matching %q", len(matched), query)
	return matched
}

// GetCartItems returns the cart contents, empty on failure.
func (c *Client) GetCartItems(ctx context.Context) []catalog.CartItem {
	raw, err := c.request(ctx, http.MethodGet, "/api/cart", nil)
	if err != nil {
		log.Printf("[backend] failed to retrieve cart: %v", err)
		return nil
	}

	var items []catalog.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("[backend] failed to decode cart items: %v", err)
		return nil
	}
	return items
}

// AddToCart adds a product to the cart, reporting success.
func (c *Client) AddToCart(ctx context.Context, productID, quantity int) bool {
	body := map[string]int{"product_id": productID, "quantity": quantity}
	if _, err := c.request(ctx, http.MethodPost, "/api/cart", body); err != nil {
		log.Printf("[backend] failed to add product %d to cart: %v", productID, err)
		return false
	}
	return true
}

// UpdateCartItem sets the quantity of a cart line, reporting success.
func (c *Client) UpdateCartItem(ctx context.Context, cartItemID, quantity int) bool {
	body := map[string]int{"quantity": quantity}
	if _, err := c.request(ctx, http.MethodPut, fmt.Sprintf("/api/cart/%d", cartItemID), body); err != nil {
		log.Printf("[backend] failed to update cart item %d: %v", cartItemID, err)
		return false
	}
	return true
}

// RemoveFromCart deletes a cart line, reporting success.
func (c *Client) RemoveFromCart(ctx context.Context, cartItemID int) bool {
	if _, err := c.request(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/%d", cartItemID), nil); err != nil {
		log.Printf("[backend] failed to remove cart item %d: %v", cartItemID, err)
		return false
	}
	return true
}

// GetCartSummary computes item and cost totals over the current cart. An
// empty or unreachable cart yields the explicit empty shape, never a nil.
func (c *Client) GetCartSummary(ctx context.Context) catalog.CartSummary {
	items := c.GetCartItems(ctx)
	if len(items) == 0 {
		return catalog.CartSummary{Items: []catalog.CartItem{}, Empty: true}
	}

	summary := catalog.CartSummary{Items: items}
	var cost float64
	for _, item := range items {
		summary.TotalItems += item.Quantity
		cost += item.Price * float64(item.Quantity)
	}
	summary.TotalCost = math.Round(cost*100) / 100
	return summary
}

// HealthCheck reports whether a minimal backend call succeeds.
func (c *Client) HealthCheck(ctx context.Context) bool {
	if _, err := c.request(ctx, http.MethodGet, "/api/products", nil); err != nil {
		log.Printf("[backend] health check failed: %v", err)
		return false
	}
	return true
}
