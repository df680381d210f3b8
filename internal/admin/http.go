package admin

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"SameKart/internal/catalog"
	"SameKart/pkg/kit"
)

type Server struct {
	Storefront *StorefrontClient
	Log        *zap.Logger
}

// DashboardStats mirrors the admin dashboard tiles: product count, units in
// the cart, cart revenue and the affiliate click total.
type DashboardStats struct {
	TotalProducts int     `json:"totalProducts"`
	TotalSales    int     `json:"totalSales"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalClicks   int     `json:"totalClicks"`
}

func (s *Server) DashboardHandler() http.HandlerFunc { return s.dashboard }

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	a, ok := catalog.AdminFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "admin session required", nil)
		return
	}

	ctx := r.Context()

	products, err := s.Storefront.ListProducts(ctx)
	if err != nil {
		s.writeClientError(w, r, "list products", err)
		return
	}

	cart, err := s.Storefront.GetCart(ctx)
	if err != nil {
		s.writeClientError(w, r, "read cart", err)
		return
	}

	clicks, err := s.Storefront.ListClicks(ctx, a.Email)
	if err != nil {
		s.writeClientError(w, r, "read clicks", err)
		return
	}

	stats := DashboardStats{
		TotalProducts: len(products),
		TotalClicks:   len(clicks),
	}
	for _, it := range cart {
		stats.TotalSales += it.Quantity
		stats.TotalRevenue += it.Price * float64(it.Quantity)
	}

	kit.WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) writeClientError(w http.ResponseWriter, r *http.Request, what string, err error) {
	if s.Log != nil {
		s.Log.Error("storefront fetch failed", zap.String("what", what), zap.Error(err))
	}
	if errors.Is(err, ErrStorefrontUnavailable) {
		kit.WriteError(w, r, http.StatusServiceUnavailable, "storefront unavailable", nil)
		return
	}
	kit.WriteError(w, r, http.StatusBadGateway, "storefront error", nil)
}
