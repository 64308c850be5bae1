package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/pagination"
)

// ProductHandler serves the catalog endpoints.
type ProductHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.StorefrontService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	cfg, err := parseFilter(r.URL.Query())
	if err != nil {
		httputil.WriteBadParam(w, err.Error())
		return
	}

	products := h.service.Browse(r.Context(), cfg)
	httputil.WriteData(w, http.StatusOK, pagination.Paginate(products, pagination.FromRequest(r)))
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	detail, err := h.service.Product(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, detail)
}

// ListDeals handles GET /api/v1/products/deals
func (h *ProductHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httputil.WriteBadParam(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	httputil.WriteData(w, http.StatusOK, h.service.Deals(r.Context(), limit))
}

// GetFacets handles GET /api/v1/facets
func (h *ProductHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	cfg, err := parseFilter(r.URL.Query())
	if err != nil {
		httputil.WriteBadParam(w, err.Error())
		return
	}

	httputil.WriteData(w, http.StatusOK, h.service.Facets(r.Context(), cfg))
}

// ListPlatforms handles GET /api/v1/platforms
func (h *ProductHandler) ListPlatforms(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Platforms())
}
