package memory

import (
	"sort"

	"github.com/utafrali/storefront/internal/domain"
)

// Facets implements engine.ProductEngine.
func (e *Engine) Facets(products []domain.Product) domain.Facets {
	f := domain.Facets{
		Brands:     []domain.FacetCount{},
		Platforms:  []domain.FacetCount{},
		Categories: []domain.FacetCount{},
		Total:      len(products),
	}

	brands := newCounter()
	platforms := newCounter()
	categories := newCounter()

	for i := range products {
		p := &products[i]
		if p.Brand != "" {
			brands.add(p.Brand)
		}
		platforms.add(p.Platform.String())
		categories.add(string(p.Category))

		if p.InStock {
			f.InStock++
		} else {
			f.OutOfStock++
		}

		if i == 0 || p.Price < f.MinPrice {
			f.MinPrice = p.Price
		}
		if p.Price > f.MaxPrice {
			f.MaxPrice = p.Price
		}
	}

	f.Brands = brands.result()
	f.Platforms = platforms.result()
	f.Categories = categories.result()
	return f
}

// Deals implements engine.ProductEngine.
func (e *Engine) Deals(limit int) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range e.products {
		if p.DiscountPercent() > 0 {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DiscountPercent() > out[j].DiscountPercent()
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// counter tallies values keeping first-seen order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(v string) {
	if _, ok := c.counts[v]; !ok {
		c.order = append(c.order, v)
	}
	c.counts[v]++
}

func (c *counter) result() []domain.FacetCount {
	out := make([]domain.FacetCount, 0, len(c.order))
	for _, v := range c.order {
		out = append(out, domain.FacetCount{Value: v, Count: c.counts[v]})
	}
	return out
}
