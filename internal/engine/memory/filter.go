package memory

import (
	"sort"

	"github.com/utafrali/storefront/internal/domain"
)

// Apply implements engine.ProductEngine. The config is normalized first;
// neither products nor cfg is modified.
func (e *Engine) Apply(products []domain.Product, cfg domain.FilterConfig) []domain.Product {
	return Apply(products, cfg)
}

// Apply filters products by cfg and sorts the survivors by cfg.SortBy.
// Relevance keeps input order.
func Apply(products []domain.Product, cfg domain.FilterConfig) []domain.Product {
	cfg = cfg.Normalize()
	constraints := cfg.Constraints()

	out := make([]domain.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if !constraints.Allows(p) {
			continue
		}
		if p.Price < cfg.PriceRange.Min || p.Price > cfg.PriceRange.Max {
			continue
		}
		if p.Rating < cfg.MinRating {
			continue
		}
		if len(cfg.Brands) > 0 {
			if _, ok := cfg.Brands[p.Brand]; !ok {
				continue
			}
		}
		out = append(out, *p)
	}

	sortProducts(out, cfg.SortBy)
	return out
}

func sortProducts(products []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case domain.SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case domain.SortNewest:
		// Ids are assigned in listing order, so a higher id is newer.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ID > products[j].ID
		})
	default:
		// Relevance: keep input order.
	}
}
