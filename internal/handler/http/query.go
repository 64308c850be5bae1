package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

// parseFilter builds a FilterConfig from query parameters:
//
//	category, min_price, max_price (cents), min_rating, brand, platform,
//	in_stock, free_shipping, loyalty, sort
//
// brand and platform may repeat or hold comma-separated lists. An unknown sort
// key falls back to relevance; every other malformed value is an error.
func parseFilter(q url.Values) (domain.FilterConfig, error) {
	cfg := domain.DefaultFilterConfig()

	if v := q.Get("category"); v != "" {
		c, ok := domain.ParseCategory(v)
		if !ok {
			return cfg, fmt.Errorf("category must be one of: %s", strings.Join(categoryNames(), ", "))
		}
		cfg.Category = c
	}

	if v := q.Get("min_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("min_price must be a non-negative integer (cents)")
		}
		cfg.PriceRange.Min = n
	}
	if v := q.Get("max_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("max_price must be a non-negative integer (cents)")
		}
		// max_price=0 leaves the range open.
		if n > 0 {
			cfg.PriceRange.Max = n
		}
	}

	if v := q.Get("min_rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 5 {
			return cfg, fmt.Errorf("min_rating must be a number between 0 and 5")
		}
		cfg.MinRating = f
	}

	if brands := listParam(q, "brand"); len(brands) > 0 {
		cfg = cfg.WithBrands(brands...)
	}

	if names := listParam(q, "platform"); len(names) > 0 {
		platforms := make([]domain.Platform, 0, len(names))
		for _, name := range names {
			p, err := domain.ParsePlatform(name)
			if err != nil {
				return cfg, err
			}
			platforms = append(platforms, p)
		}
		cfg = cfg.WithPlatforms(platforms...)
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"in_stock", &cfg.InStock},
		{"free_shipping", &cfg.FreeShipping},
		{"loyalty", &cfg.LoyaltyEligible},
	}
	for _, f := range flags {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s must be a boolean", f.name)
		}
		*f.dst = b
	}

	if v := q.Get("sort"); v != "" {
		cfg.SortBy = domain.ParseSortKey(v)
	}

	return cfg.Normalize(), nil
}

// listParam collects repeated and comma-separated values of key.
func listParam(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func categoryNames() []string {
	cats := domain.Categories()
	out := make([]string, 0, len(cats)+1)
	for _, c := range cats {
		out = append(out, string(c))
	}
	return append(out, string(domain.CategoryAll))
}
