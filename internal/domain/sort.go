package domain

import "strings"

// SortKey selects the ordering of filtered results.
type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
	SortNewest     SortKey = "newest"
)

// sortAliases maps the names the UI sort dropdown sends.
var sortAliases = map[string]SortKey{
	"relevance":   SortRelevance,
	"price-asc":   SortPriceAsc,
	"price-low":   SortPriceAsc,
	"price_asc":   SortPriceAsc,
	"price-desc":  SortPriceDesc,
	"price-high":  SortPriceDesc,
	"price_desc":  SortPriceDesc,
	"rating-desc": SortRatingDesc,
	"rating":      SortRatingDesc,
	"newest":      SortNewest,
}

// ParseSortKey resolves s, falling back to SortRelevance for unknown values.
func ParseSortKey(s string) SortKey {
	if k, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k
	}
	return SortRelevance
}

// ValidSortKeys returns the canonical sort keys.
func ValidSortKeys() []SortKey {
	return []SortKey{SortRelevance, SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNewest}
}
