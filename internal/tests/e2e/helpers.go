package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-checkout/internal/interfaces/rest"
	"github.com/stretchr/testify/require"
)

// TestClient wraps HTTP calls to the checkout service
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   rest.ErrorDetail `json:"error"`
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status int
	Code   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Code)
}

func (c *TestClient) do(t *testing.T, method, path string, body any, out any) error {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if resp.StatusCode >= 400 {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return &APIError{Status: resp.StatusCode, Code: env.Error.Code}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, out))
	return nil
}

func (c *TestClient) Catalog(t *testing.T) []rest.CatalogItem {
	var items []rest.CatalogItem
	require.NoError(t, c.do(t, http.MethodGet, "/catalog", nil, &items))
	return items
}

func (c *TestClient) MoveToCart(t *testing.T, id int) (rest.Cart, error) {
	var cart rest.Cart
	err := c.do(t, http.MethodPost, fmt.Sprintf("/cart/items/%d", id), nil, &cart)
	return cart, err
}

func (c *TestClient) RemoveFromCart(t *testing.T, id int) (rest.Cart, error) {
	var cart rest.Cart
	err := c.do(t, http.MethodDelete, fmt.Sprintf("/cart/items/%d", id), nil, &cart)
	return cart, err
}

func (c *TestClient) SetQuantity(t *testing.T, id int, raw string) (rest.Cart, error) {
	var cart rest.Cart
	err := c.do(t, http.MethodPut, fmt.Sprintf("/cart/items/%d/quantity", id), map[string]string{"quantity": raw}, &cart)
	return cart, err
}

func (c *TestClient) BeginCheckout(t *testing.T) (rest.Checkout, error) {
	var view rest.Checkout
	err := c.do(t, http.MethodPost, "/checkout", nil, &view)
	return view, err
}

func (c *TestClient) UpdateField(t *testing.T, name, value string) (rest.Checkout, error) {
	var view rest.Checkout
	err := c.do(t, http.MethodPatch, "/checkout/fields", map[string]string{"name": name, "value": value}, &view)
	return view, err
}

func (c *TestClient) Submit(t *testing.T) (rest.SubmitResult, error) {
	var result rest.SubmitResult
	err := c.do(t, http.MethodPost, "/checkout/submit", nil, &result)
	return result, err
}

func (c *TestClient) Cancel(t *testing.T) error {
	return c.do(t, http.MethodDelete, "/checkout", nil, nil)
}

func (c *TestClient) Attempts(t *testing.T) []rest.PaymentAttempt {
	var attempts []rest.PaymentAttempt
	require.NoError(t, c.do(t, http.MethodGet, "/checkout/attempts?limit=10", nil, &attempts))
	return attempts
}

// FakeOperator records payment requests and answers with a scripted outcome.
type FakeOperator struct {
	mu       sync.Mutex
	status   int
	body     string
	requests []map[string]any
	paths    []string
}

func (o *FakeOperator) Respond(status int, body string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = status
	o.body = body
}

func (o *FakeOperator) Requests() ([]map[string]any, []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]map[string]any(nil), o.requests...), append([]string(nil), o.paths...)
}

func (o *FakeOperator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	_ = json.NewDecoder(r.Body).Decode(&payload)

	o.mu.Lock()
	o.requests = append(o.requests, payload)
	o.paths = append(o.paths, r.URL.Path)
	status, body := o.status, o.body
	o.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
