package main

import (
	"io"
	"log/slog"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/catalog"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(rand.New(rand.NewSource(7)), 150)
	b := generate(rand.New(rand.NewSource(7)), 150)
	assert.Equal(t, a, b)
}

func TestGenerate_Shape(t *testing.T) {
	doc := generate(rand.New(rand.NewSource(42)), 500)
	require.Len(t, doc.Products, 500)
	assert.Len(t, doc.TrendingKeywords, len(categoryDefs))

	seen := make(map[int]bool)
	for i, p := range doc.Products {
		assert.Equal(t, i+1, p.ID)
		assert.False(t, seen[p.ID])
		seen[p.ID] = true

		assert.GreaterOrEqual(t, p.Rating, 3.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
		assert.Equal(t, p.StockCount > 0, p.InStock)
		if p.OriginalPrice != nil {
			assert.Greater(t, *p.OriginalPrice, p.Price)
		}
	}
}

func TestRun_WritesLoadableCatalog(t *testing.T) {
	out := filepath.Join(t.TempDir(), "catalog.json")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, run([]string{"--products", "300", "--out", out}, log))

	cat, err := catalog.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 300, cat.Len())
	assert.NotEmpty(t, cat.Brands())
}

func TestRun_FlagErrors(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.ErrorContains(t, run([]string{"--products", "10"}, log), "--out")
	assert.ErrorContains(t, run([]string{"-n", "0", "-o", "x.json"}, log), "--products")
	assert.Error(t, run([]string{"--bogus"}, log))
}
