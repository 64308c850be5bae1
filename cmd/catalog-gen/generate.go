package main

import (
	"fmt"
	"math/rand"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
)

// ---------------------------------------------------------------------------
// Category distribution
// ---------------------------------------------------------------------------

// categoryDef describes how products of one department are generated.
type categoryDef struct {
	Category domain.Category
	Weight   float64 // share of total products (sums to 1.0)
	Types    []string
	Brands   []string
	// Price bounds in cents.
	MinPrice int64
	MaxPrice int64
	Keywords []string
}

var categoryDefs = []categoryDef{
	{
		Category: domain.CategoryElectronics,
		Weight:   0.25,
		Types:    []string{"Wireless Earbuds", "Smart Watch", "Bluetooth Speaker", "Power Bank", "Laptop Stand", "Webcam"},
		Brands:   []string{"Amazon", "boAt", "Noise", "Samsung", "Logitech", "Anker"},
		MinPrice: 999, MaxPrice: 49999,
		Keywords: []string{"gadget", "wireless", "tech"},
	},
	{
		Category: domain.CategoryFashion,
		Weight:   0.20,
		Types:    []string{"Cotton Kurta", "Denim Jacket", "Sneakers", "Sling Bag", "Sunglasses", "Chinos"},
		Brands:   []string{"Levi's", "H&M", "Puma", "Roadster", "Biba"},
		MinPrice: 499, MaxPrice: 9999,
		Keywords: []string{"clothing", "style", "apparel"},
	},
	{
		Category: domain.CategoryHomeGarden,
		Weight:   0.15,
		Types:    []string{"Air Fryer", "LED Desk Lamp", "Cushion Cover Set", "Planter", "Water Bottle"},
		Brands:   []string{"Philips", "Prestige", "Milton", "Ugaoo"},
		MinPrice: 299, MaxPrice: 19999,
		Keywords: []string{"home", "kitchen", "decor"},
	},
	{
		Category: domain.CategorySports,
		Weight:   0.10,
		Types:    []string{"Yoga Mat", "Running Shoes", "Dumbbell Set", "Cricket Bat", "Cycling Gloves"},
		Brands:   []string{"Nike", "Adidas", "Decathlon", "SG"},
		MinPrice: 399, MaxPrice: 14999,
		Keywords: []string{"fitness", "workout", "outdoor"},
	},
	{
		Category: domain.CategoryBooks,
		Weight:   0.10,
		Types:    []string{"Paperback Novel", "Cookbook", "Self-Help Guide", "Children's Atlas"},
		Brands:   []string{"Penguin", "HarperCollins", "Scholastic"},
		MinPrice: 199, MaxPrice: 1999,
		Keywords: []string{"reading", "book"},
	},
	{
		Category: domain.CategoryToys,
		Weight:   0.08,
		Types:    []string{"Building Blocks", "Remote Control Car", "Puzzle", "Plush Toy"},
		Brands:   []string{"LEGO", "Hot Wheels", "Funskool"},
		MinPrice: 299, MaxPrice: 7999,
		Keywords: []string{"kids", "gift", "toy"},
	},
	{
		Category: domain.CategoryBeauty,
		Weight:   0.07,
		Types:    []string{"Face Serum", "Sunscreen", "Hair Dryer", "Lipstick"},
		Brands:   []string{"Lakme", "Minimalist", "Maybelline"},
		MinPrice: 199, MaxPrice: 4999,
		Keywords: []string{"skincare", "beauty"},
	},
	{
		Category: domain.CategoryAutomotive,
		Weight:   0.05,
		Types:    []string{"Dash Cam", "Car Vacuum", "Tyre Inflator", "Phone Mount"},
		Brands:   []string{"Bosch", "70mai", "Portronics"},
		MinPrice: 499, MaxPrice: 12999,
		Keywords: []string{"car", "auto", "accessories"},
	},
}

var variants = []string{"Black", "White", "Blue", "Grey", "Red", "Pro", "Lite", "Max", "Mini"}

var badges = []string{"", "", "", "Bestseller", "New", "Limited Deal"}

// ---------------------------------------------------------------------------
// Product generation
// ---------------------------------------------------------------------------

// generate builds a catalog document of total products. The same rng seed
// always yields the same document.
func generate(rng *rand.Rand, total int) catalog.Document {
	products := make([]domain.Product, 0, total)
	keywords := make([]string, 0, len(categoryDefs))

	// Build distribution: how many products per category.
	counts := make([]int, len(categoryDefs))
	remaining := total
	for i, def := range categoryDefs {
		if i == len(categoryDefs)-1 {
			counts[i] = remaining
			continue
		}
		counts[i] = int(float64(total) * def.Weight)
		remaining -= counts[i]
	}

	id := 1
	for i, def := range categoryDefs {
		keywords = append(keywords, def.Types[0])
		for j := 0; j < counts[i]; j++ {
			productType := def.Types[rng.Intn(len(def.Types))]
			brand := def.Brands[rng.Intn(len(def.Brands))]
			variant := variants[rng.Intn(len(variants))]

			// Round to whole rupees ending in 9.
			price := def.MinPrice + rng.Int63n(def.MaxPrice-def.MinPrice+1)
			price = (price/100)*100 + 99

			// Roughly 40% of products are discounted by 10-60%.
			var original *int64
			if rng.Float64() < 0.4 {
				pct := 10 + rng.Intn(51)
				o := price * 100 / int64(100-pct)
				o = (o/100)*100 + 99
				if o > price {
					original = &o
				}
			}

			stock := rng.Intn(200)
			if rng.Float64() < 0.08 {
				stock = 0
			}

			platform := domain.Platforms()[rng.Intn(len(domain.Platforms()))]

			products = append(products, domain.Product{
				ID:              id,
				Title:           fmt.Sprintf("%s %s %s", brand, productType, variant),
				Price:           price,
				OriginalPrice:   original,
				Rating:          float64(30+rng.Intn(21)) / 10,
				Reviews:         rng.Intn(20000),
				Category:        def.Category,
				Brand:           brand,
				Platform:        platform,
				FreeShipping:    price >= 49900 || rng.Float64() < 0.5,
				LoyaltyEligible: rng.Float64() < 0.6,
				InStock:         stock > 0,
				StockCount:      stock,
				Keywords:        append([]string{productType}, def.Keywords...),
				Description:     fmt.Sprintf("%s from %s, available on %s.", productType, brand, platform.Info().DisplayName),
				Badge:           badges[rng.Intn(len(badges))],
			})
			id++
		}
	}

	return catalog.Document{TrendingKeywords: keywords, Products: products}
}
