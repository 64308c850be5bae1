package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
)

// ViewHandler exposes the session's navigation state.
type ViewHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewViewHandler creates a new view HTTP handler.
func NewViewHandler(svc *service.StorefrontService, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		service: svc,
		logger:  logger,
	}
}

// NavigateRequest is the JSON request body for a navigation action.
type NavigateRequest struct {
	Action    string `json:"action" validate:"required,oneof=select_category submit_query open_product go_home"`
	Category  string `json:"category" validate:"max=50"`
	Query     string `json:"query" validate:"max=200"`
	ProductID int    `json:"product_id" validate:"gte=0"`
}

// GetView handles GET /api/v1/view
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.View(r.Context(), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, state)
}

// Navigate handles POST /api/v1/view
func (h *ViewHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	state, err := h.service.Navigate(r.Context(), sessionID(r), service.NavigateInput{
		Action:    domain.Action(req.Action),
		Category:  req.Category,
		Query:     req.Query,
		ProductID: req.ProductID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, state)
}
