// Command catalog-gen writes a synthetic product catalog for CATALOG_PATH, for
// exercising the storefront with catalogs larger than the embedded one.
//
// Run: go run ./cmd/catalog-gen --products 10000 --out /tmp/catalog.json
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/spf13/pflag"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/pkg/logger"
)

const (
	productsFlag = "products"
	outFlag      = "out"
	seedFlag     = "seed"
)

func main() {
	log := logger.New("catalog-gen", "info")
	if err := run(os.Args[1:], log); err != nil {
		log.Error("catalog generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(args []string, log *slog.Logger) error {
	flags := pflag.NewFlagSet("catalog-gen", pflag.ContinueOnError)
	total := flags.IntP(productsFlag, "n", 10000, "number of products to generate")
	out := flags.StringP(outFlag, "o", "", "output file (required)")
	seed := flags.Int64(seedFlag, 42, "random seed; the same seed yields the same catalog")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		return fmt.Errorf("--%s flag: required", outFlag)
	}
	if *total < 1 {
		return fmt.Errorf("--%s flag: must be positive, got %d", productsFlag, *total)
	}

	doc := generate(rand.New(rand.NewSource(*seed)), *total)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	// Refuse to write a file the server would reject at startup.
	if _, err := catalog.Parse(raw); err != nil {
		return fmt.Errorf("generated catalog is invalid: %w", err)
	}

	if err := os.WriteFile(*out, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}

	log.Info("catalog written",
		slog.String("path", *out),
		slog.Int("products", len(doc.Products)),
		slog.Int("trending_keywords", len(doc.TrendingKeywords)),
	)
	return nil
}
