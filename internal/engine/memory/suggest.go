package memory

import (
	"context"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/engine"
)

// keywordLabel is the category label shown next to vocabulary suggestions.
const keywordLabel = "Trending"

// Suggest implements engine.ProductEngine. Each bucket is capped on its own,
// then the buckets are joined product, brand, category, keyword and cut to
// engine.MaxSuggestions.
func (e *Engine) Suggest(_ context.Context, partial string) []domain.Suggestion {
	q := strings.ToLower(strings.TrimSpace(partial))
	if q == "" {
		return []domain.Suggestion{}
	}

	out := make([]domain.Suggestion, 0, engine.MaxSuggestions)
	out = append(out, e.productSuggestions(q)...)
	out = append(out, e.brandSuggestions(q)...)
	out = append(out, categorySuggestions(q)...)
	out = append(out, e.keywordSuggestions(q)...)

	if len(out) > engine.MaxSuggestions {
		out = out[:engine.MaxSuggestions]
	}
	return out
}

func (e *Engine) productSuggestions(q string) []domain.Suggestion {
	var out []domain.Suggestion
	for i := range e.products {
		if len(out) == engine.MaxProductSuggestions {
			break
		}
		p := &e.products[i]
		if !strings.Contains(strings.ToLower(p.Title), q) {
			continue
		}
		platform := p.Platform
		out = append(out, domain.Suggestion{
			Type:      domain.SuggestionProduct,
			Text:      p.Title,
			Category:  string(p.Category),
			Thumbnail: p.Image,
			Platform:  &platform,
			ProductID: p.ID,
		})
	}
	return out
}

// brandSuggestions labels each brand with the category of its first product.
func (e *Engine) brandSuggestions(q string) []domain.Suggestion {
	var out []domain.Suggestion
	seen := make(map[string]struct{})
	for i := range e.products {
		if len(out) == engine.MaxBrandSuggestions {
			break
		}
		p := &e.products[i]
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		if !strings.Contains(strings.ToLower(p.Brand), q) {
			continue
		}
		out = append(out, domain.Suggestion{
			Type:     domain.SuggestionBrand,
			Text:     p.Brand,
			Category: string(p.Category),
		})
	}
	return out
}

func categorySuggestions(q string) []domain.Suggestion {
	var out []domain.Suggestion
	for _, c := range domain.Categories() {
		if len(out) == engine.MaxCategorySuggestions {
			break
		}
		if !strings.Contains(strings.ToLower(string(c)), q) {
			continue
		}
		out = append(out, domain.Suggestion{
			Type:     domain.SuggestionCategory,
			Text:     string(c),
			Category: string(c),
		})
	}
	return out
}

func (e *Engine) keywordSuggestions(q string) []domain.Suggestion {
	var out []domain.Suggestion
	for _, kw := range e.vocabulary {
		if len(out) == engine.MaxKeywordSuggestions {
			break
		}
		lower := strings.ToLower(kw)
		if lower == "" {
			continue
		}
		if !strings.Contains(lower, q) && !strings.Contains(q, lower) {
			continue
		}
		out = append(out, domain.Suggestion{
			Type:     domain.SuggestionKeyword,
			Text:     kw,
			Category: keywordLabel,
		})
	}
	return out
}
