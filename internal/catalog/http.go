package catalog

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"SameKart/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/products", s.list)
	r.Get("/products/{id}", s.get)
	r.Get("/products/{id}/related", s.related)
	r.Post("/products/{id}/click", s.click)
	r.Get("/categories", s.categories)
	r.Get("/featured", s.featured)
	r.Get("/deals", s.deals)

	r.Get("/cart", s.cart)
	r.Post("/cart/items", s.addCartItem)
	r.Put("/cart/items/{id}", s.updateCartItem)
	r.Delete("/cart/items/{id}", s.removeCartItem)

	r.Group(func(pr chi.Router) {
		pr.Use(RequireAdminHeaders)
		pr.Post("/admin/products", s.createProduct)
		pr.Put("/admin/products/{id}", s.updateProduct)
		pr.Delete("/admin/products/{id}", s.deleteProduct)
		pr.Get("/admin/clicks", s.listClicks)
	})

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := FilterQuery{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
		Sort:     r.URL.Query().Get("sort"),
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "bad max_price", nil)
			return
		}
		q.MaxPrice = maxPrice
	}

	products, err := s.Store.Filter(r.Context(), q)
	if err != nil {
		s.serverError(w, r, "filter products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Store.GetByID(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get product failed", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) related(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, ok, err := s.Store.GetByID(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get product failed", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}

	products, err := s.Store.Related(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "related products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

// click records an affiliate click. Tracking must never fail the caller, so
// a storage error is logged and the response is still 204.
func (s *Server) click(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	if err := s.Store.TrackAffiliateClick(r.Context(), id); err != nil && s.Log != nil {
		s.Log.Error("track affiliate click failed", zap.Error(err), zap.Int("product_id", id))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.Categories())
}

func (s *Server) featured(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.Featured(r.Context())
	if err != nil {
		s.serverError(w, r, "featured products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) deals(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.Deals(r.Context())
	if err != nil {
		s.serverError(w, r, "deal products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) cart(w http.ResponseWriter, r *http.Request) {
	items, err := s.Store.Cart(r.Context())
	if err != nil {
		s.serverError(w, r, "read cart failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, items)
}

type addCartReq struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if req.ProductID < 1 {
		kit.WriteError(w, r, http.StatusBadRequest, "productId required", nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := s.Store.AddToCart(r.Context(), req.ProductID, req.Quantity); err != nil {
		s.serverError(w, r, "add to cart failed", err)
		return
	}
	s.cart(w, r)
}

type updateCartReq struct {
	Quantity int `json:"quantity"`
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	var req updateCartReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if err := s.Store.UpdateCartQuantity(r.Context(), id, req.Quantity); err != nil {
		s.serverError(w, r, "update cart failed", err)
		return
	}
	s.cart(w, r)
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	if err := s.Store.RemoveFromCart(r.Context(), id); err != nil {
		s.serverError(w, r, "remove from cart failed", err)
		return
	}
	s.cart(w, r)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req NewProduct
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if msg, ok := validateNewProduct(&req); !ok {
		kit.WriteError(w, r, http.StatusBadRequest, msg, nil)
		return
	}

	p, err := s.Store.AddProduct(r.Context(), req)
	if err != nil {
		s.serverError(w, r, "add product failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	var upd ProductUpdate
	if err := kit.DecodeJSON(w, r, &upd); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if upd.Category != nil {
		canonical, ok := canonicalCategory(*upd.Category)
		if !ok {
			kit.WriteError(w, r, http.StatusBadRequest, "unknown category", map[string]any{"category": *upd.Category})
			return
		}
		upd.Category = &canonical
	}

	if _, ok, err := s.Store.GetByID(r.Context(), idParam); err != nil {
		s.serverError(w, r, "get product failed", err)
		return
	} else if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}

	if err := s.Store.UpdateProduct(r.Context(), id, upd); err != nil {
		s.serverError(w, r, "update product failed", err)
		return
	}

	p, _, err := s.Store.GetByID(r.Context(), idParam)
	if err != nil {
		s.serverError(w, r, "get product failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	if _, ok, err := s.Store.GetByID(r.Context(), idParam); err != nil {
		s.serverError(w, r, "get product failed", err)
		return
	} else if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}

	if err := s.Store.DeleteProduct(r.Context(), id); err != nil {
		s.serverError(w, r, "delete product failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listClicks(w http.ResponseWriter, r *http.Request) {
	clicks, err := s.Store.Clicks(r.Context())
	if err != nil {
		s.serverError(w, r, "read clicks failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, clicks)
}

// validateNewProduct mirrors the admin form rules. The category is
// canonicalized to its enumerated spelling.
func validateNewProduct(req *NewProduct) (string, bool) {
	if req.Name == "" {
		return "product name is required", false
	}
	if req.Price <= 0 {
		return "a valid price is required", false
	}
	if strings.TrimSpace(req.Category) == "" {
		return "a category is required", false
	}
	canonical, ok := canonicalCategory(req.Category)
	if !ok {
		return "unknown category", false
	}
	req.Category = canonical
	return "", true
}

func canonicalCategory(name string) (string, bool) {
	for _, c := range categoryNames {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return "", false
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
