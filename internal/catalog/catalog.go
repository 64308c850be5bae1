// Package catalog loads the read-only product catalog the storefront serves.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/slug"
	"github.com/utafrali/storefront/pkg/validator"
)

//go:embed products.json
var embedded []byte

var registerOnce sync.Once
var registerErr error

func registerValidators() error {
	registerOnce.Do(func() {
		registerErr = validator.RegisterStringSet("category", domain.IsValidCategory)
	})
	return registerErr
}

// Document is the on-disk catalog format.
type Document struct {
	TrendingKeywords []string         `json:"trending_keywords"`
	Products         []domain.Product `json:"products" validate:"required,min=1,unique=ID,dive"`
}

// Catalog is an ordered, immutable product list. It is safe for concurrent
// use because nothing mutates it after Load.
type Catalog struct {
	products []domain.Product
	byID     map[int]int
	trending []string
}

// Load decodes the catalog compiled into the binary.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// LoadFile decodes a catalog file from disk, replacing the embedded data.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a catalog document. Products without a slug get
// one derived from their title.
func Parse(raw []byte) (*Catalog, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("register catalog validators: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validator.Validate(&doc); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	return New(doc.Products, doc.TrendingKeywords), nil
}

// New builds a catalog from already-validated products, mainly for tests.
func New(products []domain.Product, trending []string) *Catalog {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[int]int, len(products)),
		trending: append([]string(nil), trending...),
	}
	copy(c.products, products)
	for i := range c.products {
		p := &c.products[i]
		if p.Slug == "" {
			p.Slug = slug.WithID(p.Title, p.ID)
		}
		c.byID[p.ID] = i
	}
	return c
}

// All returns the products in catalog order. The slice is a copy; callers may
// reorder it freely.
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID looks a product up by id.
func (c *Catalog) ByID(id int) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Brands returns the distinct non-empty brands in first-seen order.
func (c *Catalog) Brands() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		out = append(out, p.Brand)
	}
	return out
}

// Categories returns every department in display order.
func (c *Catalog) Categories() []domain.Category {
	return domain.Categories()
}

// TrendingKeywords returns the keyword vocabulary used for suggestions.
func (c *Catalog) TrendingKeywords() []string {
	out := make([]string, len(c.trending))
	copy(out, c.trending)
	return out
}
