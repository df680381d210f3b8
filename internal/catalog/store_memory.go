package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"SameKart/internal/kv"
)

const (
	featuredCount   = 3
	dealsCount      = 4
	dealMinDiscount = 30.0
	relatedCount    = 4
)

type MemStore struct {
	mu       sync.RWMutex
	loading  bool
	products []Product
	cart     []CartItem
	nextID   int

	loadDelay time.Duration

	clickMu sync.Mutex
	state   kv.Store
}

// NewMemStore builds an empty store. Products appear only after Load, which
// applies the seed set after the configured delay.
func NewMemStore(state kv.Store, loadDelay time.Duration) *MemStore {
	return &MemStore{
		loading:   true,
		loadDelay: loadDelay,
		state:     state,
	}
}

// Load populates the product set from the seed data. The delay stands in for
// the upstream fetch the storefront would otherwise do; cancelling ctx aborts
// the wait. Loading the store twice is a no-op.
func (s *MemStore) Load(ctx context.Context) error {
	s.mu.RLock()
	loading := s.loading
	s.mu.RUnlock()
	if !loading {
		return nil
	}

	if s.loadDelay > 0 {
		t := time.NewTimer(s.loadDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loading {
		return nil
	}

	s.products = cloneProducts(seedProducts)
	s.nextID = 1
	for _, p := range s.products {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	s.loading = false
	return nil
}

func (s *MemStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *MemStore) Ping(ctx context.Context) error {
	if s.Loading() {
		return ErrNotLoaded
	}
	return nil
}

func (s *MemStore) Products(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products), nil
}

func (s *MemStore) Categories() []string {
	out := make([]string, len(categoryNames))
	copy(out, categoryNames)
	return out
}

// GetByID resolves the parsed integer form of id. A non-numeric id or a
// missing product is absence, not an error.
func (s *MemStore) GetByID(ctx context.Context, id string) (Product, bool, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return Product{}, false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == n {
			return cloneProduct(p), true, nil
		}
	}
	return Product{}, false, nil
}

func (s *MemStore) GetByCategory(ctx context.Context, category string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if category == "all" {
		return cloneProducts(s.products), nil
	}

	out := []Product{}
	for _, p := range s.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

// Search matches query as a case-insensitive substring of name, brand or
// category. An empty query matches every product.
func (s *MemStore) Search(ctx context.Context, query string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Product{}
	for _, p := range s.products {
		if matchesQuery(p, query) {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (s *MemStore) Filter(ctx context.Context, q FilterQuery) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Product{}
	for _, p := range s.products {
		if q.Category != "" && q.Category != "all" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if !matchesQuery(p, q.Query) {
			continue
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			continue
		}
		out = append(out, cloneProduct(p))
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortDiscount:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Discount > out[j].Discount })
	default:
		// featured keeps catalog order
	}
	return out, nil
}

func (s *MemStore) Featured(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.products)
	if n > featuredCount {
		n = featuredCount
	}
	return cloneProducts(s.products[:n]), nil
}

func (s *MemStore) Deals(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Product{}
	for _, p := range s.products {
		if p.Discount > dealMinDiscount {
			out = append(out, cloneProduct(p))
			if len(out) == dealsCount {
				break
			}
		}
	}
	return out, nil
}

func (s *MemStore) Related(ctx context.Context, id string) ([]Product, error) {
	p, ok, err := s.GetByID(ctx, id)
	if err != nil || !ok {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Product{}
	for _, q := range s.products {
		if q.ID == p.ID || q.Category != p.Category {
			continue
		}
		out = append(out, cloneProduct(q))
		if len(out) == relatedCount {
			break
		}
	}
	return out, nil
}

func (s *MemStore) Cart(ctx context.Context) ([]CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]CartItem, len(s.cart))
	for i, it := range s.cart {
		out[i] = CartItem{Product: cloneProduct(it.Product), Quantity: it.Quantity}
	}
	return out, nil
}

// AddToCart inserts a cart entry for the product, or bumps the quantity of
// an existing entry. Unknown products and quantities below 1 are no-ops.
func (s *MemStore) AddToCart(ctx context.Context, productID, quantity int) error {
	if quantity < 1 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var p Product
	found := false
	for _, q := range s.products {
		if q.ID == productID {
			p, found = q, true
			break
		}
	}
	if !found {
		return nil
	}

	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart[i].Quantity += quantity
			return nil
		}
	}
	s.cart = append(s.cart, CartItem{Product: cloneProduct(p), Quantity: quantity})
	return nil
}

func (s *MemStore) RemoveFromCart(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeFromCartLocked(productID)
	return nil
}

// UpdateCartQuantity sets the entry's quantity directly; anything below 1
// removes the entry. An absent product id is a no-op.
func (s *MemStore) UpdateCartQuantity(ctx context.Context, productID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		s.removeFromCartLocked(productID)
		return nil
	}

	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart[i].Quantity = quantity
			return nil
		}
	}
	return nil
}

func (s *MemStore) removeFromCartLocked(productID int) {
	n := 0
	for _, it := range s.cart {
		if it.ID != productID {
			s.cart[n] = it
			n++
		}
	}
	s.cart = s.cart[:n]
}

// AddProduct assigns the next id from a counter that never reuses ids, even
// after deletions. Images, rating and reviews are server-assigned.
func (s *MemStore) AddProduct(ctx context.Context, in NewProduct) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Product{
		ID:            s.nextID,
		Name:          in.Name,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Discount:      in.Discount,
		Category:      in.Category,
		Brand:         in.Brand,
		Description:   in.Description,
		Image:         in.Image,
		Images:        []string{in.Image},
		Rating:        0,
		Reviews:       0,
		InStock:       in.InStock,
		AffiliateLink: in.AffiliateLink,
	}
	if p.OriginalPrice <= 0 {
		p.OriginalPrice = p.Price
	}

	s.nextID++
	s.products = append(s.products, p)
	return cloneProduct(p), nil
}

// UpdateProduct merges the non-nil fields of upd into the matching product.
// An absent id is a no-op.
func (s *MemStore) UpdateProduct(ctx context.Context, id int, upd ProductUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		applyUpdate(&s.products[i], upd)
		return nil
	}
	return nil
}

func (s *MemStore) DeleteProduct(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, p := range s.products {
		if p.ID != id {
			s.products[n] = p
			n++
		}
	}
	s.products = s.products[:n]
	return nil
}

func applyUpdate(p *Product, upd ProductUpdate) {
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.OriginalPrice != nil {
		p.OriginalPrice = *upd.OriginalPrice
	}
	if upd.Discount != nil {
		p.Discount = *upd.Discount
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Brand != nil {
		p.Brand = *upd.Brand
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	if upd.Images != nil {
		p.Images = append([]string(nil), upd.Images...)
	}
	if upd.Rating != nil {
		p.Rating = *upd.Rating
	}
	if upd.Reviews != nil {
		p.Reviews = *upd.Reviews
	}
	if upd.InStock != nil {
		p.InStock = *upd.InStock
	}
	if upd.AffiliateLink != nil {
		p.AffiliateLink = *upd.AffiliateLink
	}
}

func matchesQuery(p Product, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

func cloneProduct(p Product) Product {
	p.Images = append([]string(nil), p.Images...)
	return p
}

func cloneProducts(in []Product) []Product {
	out := make([]Product, len(in))
	for i, p := range in {
		out[i] = cloneProduct(p)
	}
	return out
}
