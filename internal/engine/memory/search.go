package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

type hit struct {
	product    domain.Product
	titleMatch bool
	brandMatch bool
}

// Search implements engine.ProductEngine.
func (e *Engine) Search(_ context.Context, query string, c domain.SearchConstraints) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Product{}
	}

	hits := make([]hit, 0)
	for i := range e.products {
		p := &e.products[i]
		h, ok := matchText(p, q)
		if !ok || !c.Allows(p) {
			continue
		}
		hits = append(hits, h)
	}

	// Stable, so equal keys keep catalog order.
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.titleMatch != b.titleMatch {
			return a.titleMatch
		}
		if a.brandMatch != b.brandMatch {
			return a.brandMatch
		}
		return a.product.Rating > b.product.Rating
	})

	out := make([]domain.Product, len(hits))
	for i := range hits {
		out[i] = hits[i].product
	}
	return out
}

// matchText reports whether the lower-cased query q matches p. Keywords match
// in both directions: "kindle paperwhite case" matches the keyword "kindle".
func matchText(p *domain.Product, q string) (hit, bool) {
	h := hit{
		product:    *p,
		titleMatch: strings.Contains(strings.ToLower(p.Title), q),
		brandMatch: p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), q),
	}
	if h.titleMatch || h.brandMatch {
		return h, true
	}

	if strings.Contains(strings.ToLower(string(p.Category)), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return h, true
	}

	for _, kw := range p.Keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(kw, q) || strings.Contains(q, kw) {
			return h, true
		}
	}
	return h, false
}
