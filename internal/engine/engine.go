// Package engine defines the product search, filter and suggestion contract.
package engine

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// Limits of the suggestion dropdown.
const (
	MaxSuggestions         = 8
	MaxProductSuggestions  = 4
	MaxBrandSuggestions    = 2
	MaxCategorySuggestions = 2
	MaxKeywordSuggestions  = 2
)

// ProductEngine answers catalog queries. Implementations never mutate their
// inputs and return fresh slices.
type ProductEngine interface {
	// Search returns products whose text matches query and that satisfy c,
	// ranked title match, then brand match, then rating. A blank query yields
	// an empty result.
	Search(ctx context.Context, query string, c domain.SearchConstraints) []domain.Product

	// Apply filters products by cfg and sorts them by cfg.SortBy.
	Apply(products []domain.Product, cfg domain.FilterConfig) []domain.Product

	// Suggest returns at most MaxSuggestions completions for partial.
	Suggest(ctx context.Context, partial string) []domain.Suggestion

	// Facets counts brands, platforms, categories and stock over products.
	Facets(products []domain.Product) domain.Facets

	// Deals returns discounted products, best discount first. limit <= 0
	// means no limit.
	Deals(limit int) []domain.Product
}
