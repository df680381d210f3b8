package catalog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"SameKart/internal/catalog"
	"SameKart/internal/kv"
)

var adminHeaders = map[string]string{
	"X-Admin-Email": "admin@samekart.com",
	"X-Admin-Role":  "admin",
}

func newStorefrontTS(t *testing.T) *httptest.Server {
	t.Helper()

	store := catalog.NewMemStore(kv.NewMemStore(), 0)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	s := &catalog.Server{Store: store, Log: zap.NewNop()}
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "storefront",
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func TestStorefront_ListAndGet(t *testing.T) {
	ts := newStorefrontTS(t)

	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/products?sort=price-low", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status=%d body=%s", resp.StatusCode, string(raw))
	}

	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != 5 {
		t.Fatalf("len=%d", len(products))
	}
	if products[0].ID != 2 {
		t.Fatalf("cheapest first, got id=%d", products[0].ID)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/products/999", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing product status=%d", resp.StatusCode)
	}
}

func TestStorefront_CreateProductValidation(t *testing.T) {
	ts := newStorefrontTS(t)

	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{"missing name", map[string]any{"price": 10, "category": "Books", "image": "u"}, "product name is required"},
		{"bad price", map[string]any{"name": "X", "price": 0, "category": "Books", "image": "u"}, "a valid price is required"},
		{"missing category", map[string]any{"name": "X", "price": 10, "image": "u"}, "a category is required"},
		{"unknown category", map[string]any{"name": "X", "price": 10, "category": "Gadgets", "image": "u"}, "unknown category"},
	}

	for _, tc := range cases {
		resp, raw := doJSON(t, http.MethodPost, ts.URL+"/admin/products", tc.body, adminHeaders)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status=%d body=%s", tc.name, resp.StatusCode, string(raw))
		}

		var er struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &er); err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if er.Error != tc.want {
			t.Fatalf("%s: error=%q want=%q", tc.name, er.Error, tc.want)
		}
	}
}

func TestStorefront_AdminRoutesRequireHeaders(t *testing.T) {
	ts := newStorefrontTS(t)

	body := map[string]any{"name": "X", "price": 10, "category": "Books", "image": "u"}

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/admin/products", body, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no headers status=%d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/admin/products", body, map[string]string{
		"X-Admin-Email": "admin@samekart.com",
		"X-Admin-Role":  "viewer",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong role status=%d", resp.StatusCode)
	}
}

func TestStorefront_ProductCRUD(t *testing.T) {
	ts := newStorefrontTS(t)

	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/admin/products", map[string]any{
		"name":     "Test",
		"price":    10,
		"category": "books",
		"image":    "u",
	}, adminHeaders)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", resp.StatusCode, string(raw))
	}

	var created catalog.Product
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != 6 {
		t.Fatalf("id=%d", created.ID)
	}
	if created.Category != "Books" {
		t.Fatalf("category=%q, want canonical spelling", created.Category)
	}

	resp, raw = doJSON(t, http.MethodPut, ts.URL+"/admin/products/6", map[string]any{
		"price": 20,
	}, adminHeaders)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status=%d body=%s", resp.StatusCode, string(raw))
	}

	var updated catalog.Product
	if err := json.Unmarshal(raw, &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Price != 20 || updated.Name != "Test" {
		t.Fatalf("merge broke: %+v", updated)
	}

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/admin/products/6", nil, adminHeaders)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status=%d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/admin/products/6", nil, adminHeaders)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status=%d", resp.StatusCode)
	}
}

func TestStorefront_CartFlow(t *testing.T) {
	ts := newStorefrontTS(t)

	// quantity omitted defaults to 1
	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/cart/items", map[string]any{"productId": 1}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add status=%d body=%s", resp.StatusCode, string(raw))
	}

	var cart []catalog.CartItem
	if err := json.Unmarshal(raw, &cart); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cart) != 1 || cart[0].Quantity != 1 {
		t.Fatalf("cart=%+v", cart)
	}

	resp, raw = doJSON(t, http.MethodPut, ts.URL+"/cart/items/1", map[string]any{"quantity": 0}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status=%d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &cart); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cart) != 0 {
		t.Fatalf("quantity 0 should remove, cart=%+v", cart)
	}
}

func TestStorefront_ClickTracking(t *testing.T) {
	ts := newStorefrontTS(t)

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/products/1/click", nil, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("click status=%d", resp.StatusCode)
		}
	}

	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/admin/clicks", nil, adminHeaders)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clicks status=%d", resp.StatusCode)
	}

	var clicks []catalog.AffiliateClick
	if err := json.Unmarshal(raw, &clicks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(clicks) != 2 {
		t.Fatalf("len=%d", len(clicks))
	}
	if clicks[0].ProductID != 1 {
		t.Fatalf("productId=%d", clicks[0].ProductID)
	}
}
