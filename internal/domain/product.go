package domain

import (
	"math"
	"strings"
)

// Category is one of the fixed storefront departments.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryHomeGarden  Category = "Home & Garden"
	CategorySports      Category = "Sports"
	CategoryBooks       Category = "Books"
	CategoryToys        Category = "Toys"
	CategoryBeauty      Category = "Beauty"
	CategoryAutomotive  Category = "Automotive"

	// CategoryAll is the filter sentinel meaning "any category". No product
	// carries it.
	CategoryAll Category = "all"
)

var categories = []Category{
	CategoryElectronics,
	CategoryFashion,
	CategoryHomeGarden,
	CategorySports,
	CategoryBooks,
	CategoryToys,
	CategoryBeauty,
	CategoryAutomotive,
}

// Categories returns the departments in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsValidCategory reports whether c names a real department.
func IsValidCategory(c string) bool {
	for _, cat := range categories {
		if string(cat) == c {
			return true
		}
	}
	return false
}

// ParseCategory resolves a category name case-insensitively. Empty input and
// "all" yield CategoryAll.
func ParseCategory(s string) (Category, bool) {
	if s == "" || strings.EqualFold(s, string(CategoryAll)) {
		return CategoryAll, true
	}
	for _, cat := range categories {
		if strings.EqualFold(s, string(cat)) {
			return cat, true
		}
	}
	return "", false
}

// Product is an immutable catalog record. Prices are in cents.
type Product struct {
	ID              int      `json:"id" validate:"required,gt=0"`
	Slug            string   `json:"slug"`
	Title           string   `json:"title" validate:"required,max=200"`
	Price           int64    `json:"price" validate:"gte=0"`
	OriginalPrice   *int64   `json:"original_price,omitempty" validate:"omitempty,gte=0"`
	Rating          float64  `json:"rating" validate:"gte=0,lte=5"`
	Reviews         int      `json:"reviews" validate:"gte=0"`
	Category        Category `json:"category" validate:"required,category"`
	Brand           string   `json:"brand,omitempty"`
	Platform        Platform `json:"platform"`
	FreeShipping    bool     `json:"free_shipping"`
	LoyaltyEligible bool     `json:"loyalty_eligible"`
	InStock         bool     `json:"in_stock"`
	StockCount      int      `json:"stock_count" validate:"gte=0"`
	Keywords        []string `json:"keywords,omitempty"`
	Description     string   `json:"description,omitempty"`
	Features        []string `json:"features,omitempty"`
	Image           string   `json:"image,omitempty"`
	Badge           string   `json:"badge,omitempty"`
}

// DiscountPercent returns the whole-percent markdown from the original price,
// or 0 when the product is not discounted.
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice == 0 {
		return 0
	}
	off := float64(*p.OriginalPrice-p.Price) / float64(*p.OriginalPrice) * 100
	return int(math.Round(off))
}

// Savings returns how many cents the product is below its original price.
func (p *Product) Savings() int64 {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price {
		return 0
	}
	return *p.OriginalPrice - p.Price
}

// ToAmount converts cents to a currency amount rounded to 2 decimals.
func ToAmount(cents int64) float64 {
	return float64(cents) / 100
}
