package catalog

import "time"

type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Discount      float64  `json:"discount"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand,omitempty"`
	Description   string   `json:"description,omitempty"`
	Image         string   `json:"image"`
	Images        []string `json:"images"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	InStock       bool     `json:"inStock"`
	AffiliateLink string   `json:"affiliateLink,omitempty"`
}

// CartItem carries the product snapshot plus the accumulated quantity.
// At most one entry exists per product id.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

type AffiliateClick struct {
	ID        string    `json:"id"`
	ProductID int       `json:"productId"`
	Timestamp time.Time `json:"timestamp"`
}

// NewProduct is the admin create-product payload. ID, images, rating and
// reviews are assigned by the store.
type NewProduct struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Discount      float64 `json:"discount"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	InStock       bool    `json:"inStock"`
	AffiliateLink string  `json:"affiliateLink"`
}

// ProductUpdate is a partial update; nil fields keep their current value.
type ProductUpdate struct {
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Discount      *float64 `json:"discount"`
	Category      *string  `json:"category"`
	Brand         *string  `json:"brand"`
	Description   *string  `json:"description"`
	Image         *string  `json:"image"`
	Images        []string `json:"images"`
	Rating        *float64 `json:"rating"`
	Reviews       *int     `json:"reviews"`
	InStock       *bool    `json:"inStock"`
	AffiliateLink *string  `json:"affiliateLink"`
}

var categoryNames = []string{
	"Electronics",
	"Fashion",
	"Home",
	"Appliances",
	"Beauty",
	"Grocery",
	"Mobiles",
	"Toys",
	"Sports",
	"Books",
}

var seedProducts = []Product{
	{
		ID:            1,
		Name:          "Wireless Bluetooth Headphones",
		Price:         2999,
		OriginalPrice: 4999,
		Discount:      40,
		Category:      "Electronics",
		Brand:         "Sony",
		Description:   "Noise cancellation wireless headphones with 30hr battery",
		Image:         "https://via.placeholder.com/300x300/4CAF50/fff?text=Headphones",
		Images: []string{
			"https://via.placeholder.com/300x300/4CAF50/fff?text=Headphones",
			"https://via.placeholder.com/300x300/2196F3/fff?text=Side+View",
			"https://via.placeholder.com/300x300/FF9800/fff?text=Back+View",
		},
		Rating:        4.5,
		Reviews:       128,
		InStock:       true,
		AffiliateLink: "https://example.com/affiliate/headphones",
	},
	{
		ID:            2,
		Name:          "Men's Casual Shirt",
		Price:         799,
		OriginalPrice: 1299,
		Discount:      38,
		Category:      "Fashion",
		Brand:         "Allen Solly",
		Description:   "Premium cotton casual shirt for men",
		Image:         "https://via.placeholder.com/300x300/2196F3/fff?text=Shirt",
		Images: []string{
			"https://via.placeholder.com/300x300/2196F3/fff?text=Shirt",
			"https://via.placeholder.com/300x300/4CAF50/fff?text=Back",
			"https://via.placeholder.com/300x300/FF9800/fff?text=Fitting",
		},
		Rating:        4.2,
		Reviews:       89,
		InStock:       true,
		AffiliateLink: "https://example.com/affiliate/shirt",
	},
	{
		ID:            3,
		Name:          "Smart Watch Series 5",
		Price:         5999,
		OriginalPrice: 8999,
		Discount:      33,
		Category:      "Electronics",
		Brand:         "Apple",
		Description:   "Smart watch with fitness tracking and calls",
		Image:         "https://via.placeholder.com/300x300/FF9800/fff?text=Watch",
		Images: []string{
			"https://via.placeholder.com/300x300/FF9800/fff?text=Watch",
			"https://via.placeholder.com/300x300/4CAF50/fff?text=Display",
			"https://via.placeholder.com/300x300/2196F3/fff?text=Straps",
		},
		Rating:        4.7,
		Reviews:       256,
		InStock:       true,
		AffiliateLink: "https://example.com/affiliate/watch",
	},
	{
		ID:            4,
		Name:          "Kitchen Mixer Grinder",
		Price:         2499,
		OriginalPrice: 3999,
		Discount:      37,
		Category:      "Appliances",
		Brand:         "Bajaj",
		Description:   "750W mixer grinder with 3 stainless steel jars",
		Image:         "https://via.placeholder.com/300x300/9C27B0/fff?text=Mixer",
		Images: []string{
			"https://via.placeholder.com/300x300/9C27B0/fff?text=Mixer",
			"https://via.placeholder.com/300x300/4CAF50/fff?text=Jars",
			"https://via.placeholder.com/300x300/2196F3/fff?text=Motor",
		},
		Rating:        4.3,
		Reviews:       167,
		InStock:       true,
		AffiliateLink: "https://example.com/affiliate/mixer",
	},
	{
		ID:            5,
		Name:          "Running Shoes",
		Price:         1599,
		OriginalPrice: 2599,
		Discount:      38,
		Category:      "Sports",
		Brand:         "Nike",
		Description:   "Lightweight running shoes with air cushion",
		Image:         "https://via.placeholder.com/300x300/00BCD4/fff?text=Shoes",
		Images: []string{
			"https://via.placeholder.com/300x300/00BCD4/fff?text=Shoes",
			"https://via.placeholder.com/300x300/4CAF50/fff?text=Sole",
			"https://via.placeholder.com/300x300/FF9800/fff?text=Side",
		},
		Rating:        4.4,
		Reviews:       312,
		InStock:       true,
		AffiliateLink: "https://example.com/affiliate/shoes",
	},
}
