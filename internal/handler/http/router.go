package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// ServiceName labels HTTP metrics and spans.
const ServiceName = "storefront"

// RouterConfig carries the HTTP-level settings of the router.
type RouterConfig struct {
	CORS          middleware.CORSConfig
	CatalogMaxAge time.Duration
	PprofEnabled  bool
	PprofCIDRs    []string
}

// NewRouter creates a chi router with all storefront routes registered.
// Collectors are registered on reg, which /metrics also serves.
func NewRouter(
	storefront *service.StorefrontService,
	healthHandler *health.Handler,
	reg *prometheus.Registry,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogging(logger, "/health", "/metrics"))
	r.Use(middleware.Tracing(ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.NewHTTPMetrics(reg, ServiceName).Middleware)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	// Pprof debug endpoints with IP allowlist.
	if cfg.PprofEnabled {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)
	}

	productHandler := NewProductHandler(storefront, logger)
	searchHandler := NewSearchHandler(storefront, logger)
	cartHandler := NewCartHandler(storefront, logger)
	viewHandler := NewViewHandler(storefront, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Catalog endpoints are identical for every visitor and cacheable.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.CatalogMaxAge))

			r.Get("/products", productHandler.ListProducts)
			r.Get("/products/deals", productHandler.ListDeals)
			r.Get("/products/{id}", productHandler.GetProduct)
			r.Get("/facets", productHandler.GetFacets)
			r.Get("/platforms", productHandler.ListPlatforms)
			r.Get("/search/suggest", searchHandler.Suggest)
		})

		// Search may record a recent search, so it is never cached.
		r.With(middleware.NoStore, OptionalSession).Get("/search", searchHandler.Search)
		r.With(middleware.NoStore).Post("/sessions", cartHandler.CreateSession)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(RequireSession)

			r.Get("/search/recent", searchHandler.RecentSearches)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productID}", cartHandler.UpdateItemQuantity)
			r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)

			r.Get("/view", viewHandler.GetView)
			r.Post("/view", viewHandler.Navigate)
		})
	})

	return r
}
