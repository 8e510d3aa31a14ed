package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/saydulla27/foodapp-frontend/internal/models"
)

// identityHeader carries the opaque client-identity token supplied by the
// hosting messenger environment, when present.
const identityHeader = "X-TG-INIT-DATA"

// APIError is a backend rejection with its message field surfaced.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// TokenStore holds the admin bearer token for the process session context.
// It is set on startup, cleared when the backend answers 401.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *TokenStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Client talks to the external food-delivery backend API. Storefront reads
// and the order submission are public; the admin order listing carries the
// bearer token from the TokenStore.
type Client struct {
	base   string
	http   *http.Client
	tokens *TokenStore
}

func New(baseURL string, tokens *TokenStore) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: 20 * time.Second},
		tokens: tokens,
	}
}

// GetCompany fetches a tenant's public storefront profile.
func (c *Client) GetCompany(ctx context.Context, companyID int64) (models.Company, error) {
	var out models.Company
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/webapp/company/%d", companyID), nil, nil, &out)
	return out, err
}

// GetMenu fetches the tenant's menu with nested products.
func (c *Client) GetMenu(ctx context.Context, companyID int64) (models.Menu, error) {
	var out models.Menu
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/webapp/menu?companyId=%d", companyID), nil, nil, &out)
	return out, err
}

// CreateOrder submits a composed order. initData, when non-empty, is
// forwarded as the client-identity header.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest, initData string) (models.OrderResult, error) {
	var headers map[string]string
	if initData != "" {
		headers = map[string]string{identityHeader: initData}
	}
	var out models.OrderResult
	err := c.doJSON(ctx, http.MethodPost, "/webapp/order", req, headers, &out)
	return out, err
}

// ListOrders fetches the tenant admin's orders for reporting.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	headers := map[string]string{}
	if c.tokens != nil {
		if token := c.tokens.Get(); token != "" {
			headers["Authorization"] = "Bearer " + token
		}
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/admin/orders", nil, headers, &out)
	return out, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
		c.tokens.Clear()
	}
	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
