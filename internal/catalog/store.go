package catalog

import (
	"context"
	"errors"
)

var ErrNotLoaded = errors.New("catalog not loaded")

const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortDiscount  = "discount"
)

// FilterQuery is the product-list page pipeline: category narrowing, text
// search, a price ceiling and a sort order applied in that sequence.
type FilterQuery struct {
	Category string
	Query    string
	MaxPrice float64 // <= 0 means no ceiling
	Sort     string  // empty means SortFeatured (seed order)
}

// Store is the single source of truth for products, the cart and the
// affiliate-click log. Lookup misses are reported as absence, not errors.
type Store interface {
	Load(ctx context.Context) error
	Loading() bool
	Ping(ctx context.Context) error

	Products(ctx context.Context) ([]Product, error)
	Categories() []string
	GetByID(ctx context.Context, id string) (Product, bool, error)
	GetByCategory(ctx context.Context, category string) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Filter(ctx context.Context, q FilterQuery) ([]Product, error)
	Featured(ctx context.Context) ([]Product, error)
	Deals(ctx context.Context) ([]Product, error)
	Related(ctx context.Context, id string) ([]Product, error)

	Cart(ctx context.Context) ([]CartItem, error)
	AddToCart(ctx context.Context, productID, quantity int) error
	RemoveFromCart(ctx context.Context, productID int) error
	UpdateCartQuantity(ctx context.Context, productID, quantity int) error

	AddProduct(ctx context.Context, in NewProduct) (Product, error)
	UpdateProduct(ctx context.Context, id int, upd ProductUpdate) error
	DeleteProduct(ctx context.Context, id int) error

	TrackAffiliateClick(ctx context.Context, productID int) error
	Clicks(ctx context.Context) ([]AffiliateClick, error)
}
