// Package memory implements engine.ProductEngine over an in-process product
// slice with plain substring matching.
package memory

import (
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/engine"
)

var _ engine.ProductEngine = (*Engine)(nil)

// Engine holds an immutable copy of the catalog. It is safe for concurrent
// use.
type Engine struct {
	products   []domain.Product
	vocabulary []string
}

// New creates an engine over products in catalog order. vocabulary is the
// fixed keyword list offered as suggestions.
func New(products []domain.Product, vocabulary []string) *Engine {
	e := &Engine{
		products:   make([]domain.Product, len(products)),
		vocabulary: make([]string, len(vocabulary)),
	}
	copy(e.products, products)
	copy(e.vocabulary, vocabulary)
	return e
}
