package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Slim views of the storefront payloads; the dashboard only aggregates.
type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CartItem struct {
	ID       int     `json:"id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Click struct {
	ID        string `json:"id"`
	ProductID int    `json:"productId"`
}

var (
	ErrStorefrontBadStatus   = errors.New("storefront bad status")
	ErrStorefrontUnavailable = errors.New("storefront unavailable")
)

type StorefrontClient struct {
	BaseURL string
	Client  *http.Client
}

func NewStorefrontClient(baseURL string) *StorefrontClient {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &StorefrontClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *StorefrontClient) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.getJSON(ctx, "/products", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StorefrontClient) GetCart(ctx context.Context) ([]CartItem, error) {
	var out []CartItem
	if err := c.getJSON(ctx, "/cart", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListClicks hits a guarded storefront route, so the caller's admin identity
// is forwarded in the same headers the gateway would inject.
func (c *StorefrontClient) ListClicks(ctx context.Context, adminEmail string) ([]Click, error) {
	var out []Click
	if err := c.getJSON(ctx, "/admin/clicks", adminEmail, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StorefrontClient) getJSON(ctx context.Context, path, adminEmail string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	if adminEmail != "" {
		req.Header.Set("X-Admin-Email", adminEmail)
		req.Header.Set("X-Admin-Role", "admin")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorefrontUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status=%d path=%s", ErrStorefrontBadStatus, resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
