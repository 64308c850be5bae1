package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/pagination"
)

// SearchHandler serves search, suggestions and recent searches.
type SearchHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.StorefrontService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// Search handles GET /api/v1/search?q=...
//
// The filter parameters of ListProducts refine the results. When the request
// carries X-Session-ID the query is added to that session's recent searches.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	cfg, err := parseFilter(r.URL.Query())
	if err != nil {
		httputil.WriteBadParam(w, err.Error())
		return
	}

	results, err := h.service.Search(r.Context(), sessionID(r), r.URL.Query().Get("q"), cfg)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, pagination.Paginate(results, pagination.FromRequest(r)))
}

// Suggest handles GET /api/v1/search/suggest?q=...
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Suggest(r.Context(), r.URL.Query().Get("q")))
}

// RecentSearches handles GET /api/v1/search/recent
func (h *SearchHandler) RecentSearches(w http.ResponseWriter, r *http.Request) {
	recent, err := h.service.RecentSearches(r.Context(), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, recent)
}
