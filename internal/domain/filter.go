package domain

import "math"

// NoPriceLimit is the open upper bound of a price range.
const NoPriceLimit int64 = math.MaxInt64

// PriceRange is an inclusive range in cents.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// FilterConfig is the set of constraints and the ordering selected in the
// filter sidebar. Empty Brands or Platforms accept everything.
type FilterConfig struct {
	PriceRange      PriceRange            `json:"price_range"`
	MinRating       float64               `json:"min_rating"`
	Brands          map[string]struct{}   `json:"-"`
	Platforms       map[Platform]struct{} `json:"-"`
	Category        Category              `json:"category"`
	InStock         bool                  `json:"in_stock"`
	FreeShipping    bool                  `json:"free_shipping"`
	LoyaltyEligible bool                  `json:"loyalty_eligible"`
	SortBy          SortKey               `json:"sort_by"`
}

// DefaultFilterConfig returns the config that accepts every product and keeps
// input order.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		PriceRange: PriceRange{Min: 0, Max: NoPriceLimit},
		Category:   CategoryAll,
		SortBy:     SortRelevance,
	}
}

// Normalize returns a copy fit for filtering. An inverted range is swapped, a
// negative Min is raised to zero, a missing category becomes CategoryAll and
// an unknown sort key becomes relevance. Max is taken as given, so callers
// wanting an open range start from DefaultFilterConfig. The receiver is left
// untouched.
func (c FilterConfig) Normalize() FilterConfig {
	if c.PriceRange.Min > c.PriceRange.Max {
		c.PriceRange.Min, c.PriceRange.Max = c.PriceRange.Max, c.PriceRange.Min
	}
	if c.PriceRange.Min < 0 {
		c.PriceRange.Min = 0
	}
	if c.Category == "" {
		c.Category = CategoryAll
	}
	c.SortBy = ParseSortKey(string(c.SortBy))
	return c
}

// WithBrands returns a copy accepting only the given brands.
func (c FilterConfig) WithBrands(brands ...string) FilterConfig {
	set := make(map[string]struct{}, len(brands))
	for _, b := range brands {
		set[b] = struct{}{}
	}
	c.Brands = set
	return c
}

// WithPlatforms returns a copy accepting only the given platforms.
func (c FilterConfig) WithPlatforms(platforms ...Platform) FilterConfig {
	c.Platforms = PlatformSet(platforms...)
	return c
}

// Constraints extracts the subset of the config that search honours.
func (c FilterConfig) Constraints() SearchConstraints {
	return SearchConstraints{
		Category:        c.Category,
		Platforms:       c.Platforms,
		InStock:         c.InStock,
		FreeShipping:    c.FreeShipping,
		LoyaltyEligible: c.LoyaltyEligible,
	}
}

// SearchConstraints narrows text search results.
type SearchConstraints struct {
	Category        Category
	Platforms       map[Platform]struct{}
	InStock         bool
	FreeShipping    bool
	LoyaltyEligible bool
}

// Allows reports whether p satisfies every active constraint.
func (s SearchConstraints) Allows(p *Product) bool {
	if s.Category != "" && s.Category != CategoryAll && p.Category != s.Category {
		return false
	}
	if len(s.Platforms) > 0 {
		if _, ok := s.Platforms[p.Platform]; !ok {
			return false
		}
	}
	if s.InStock && !p.InStock {
		return false
	}
	if s.FreeShipping && !p.FreeShipping {
		return false
	}
	if s.LoyaltyEligible && !p.LoyaltyEligible {
		return false
	}
	return true
}

// PlatformSet builds a membership set.
func PlatformSet(platforms ...Platform) map[Platform]struct{} {
	set := make(map[Platform]struct{}, len(platforms))
	for _, p := range platforms {
		set[p] = struct{}{}
	}
	return set
}
