// Package service implements the storefront operations the HTTP layer exposes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/engine"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/session"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/tracing"
)

// Upper bounds on cart input.
const (
	// MaxQuantityPerLine is the largest quantity SetQuantity accepts.
	MaxQuantityPerLine = 100
	// MaxRelatedProducts bounds the related list on the product page.
	MaxRelatedProducts = 4
)

// ProductDetail is a product with the data its detail page renders.
type ProductDetail struct {
	domain.Product
	PlatformInfo    domain.PlatformInfo `json:"platform_info"`
	DiscountPercent int                 `json:"discount_percent"`
	Related         []domain.Product    `json:"related"`
}

// SessionInfo is returned when a session is created.
type SessionInfo struct {
	ID   string              `json:"id"`
	Cart domain.CartSnapshot `json:"cart"`
	View domain.ViewState    `json:"view"`
}

// NavigateInput is a navigation request from the UI.
type NavigateInput struct {
	Action    domain.Action `json:"action"`
	Category  string        `json:"category,omitempty"`
	Query     string        `json:"query,omitempty"`
	ProductID int           `json:"product_id,omitempty"`
}

// StorefrontService composes the catalog, the product engine, the session
// registry and the cart event publisher.
type StorefrontService struct {
	catalog   *catalog.Catalog
	engine    engine.ProductEngine
	sessions  *session.Registry
	publisher event.Publisher
	metrics   *Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
	seedIDs   []int
}

// NewStorefrontService creates the service. seedIDs are the catalog product
// ids every new cart starts with; unknown ids are skipped with a warning.
func NewStorefrontService(
	cat *catalog.Catalog,
	eng engine.ProductEngine,
	sessions *session.Registry,
	publisher event.Publisher,
	metrics *Metrics,
	logger *slog.Logger,
	seedIDs []int,
) *StorefrontService {
	return &StorefrontService{
		catalog:   cat,
		engine:    eng,
		sessions:  sessions,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		tracer:    tracing.Tracer("github.com/utafrali/storefront/internal/service"),
		seedIDs:   seedIDs,
	}
}

// Browse filters and sorts the whole catalog.
func (s *StorefrontService) Browse(ctx context.Context, cfg domain.FilterConfig) []domain.Product {
	_, span := s.tracer.Start(ctx, "StorefrontService.Browse")
	defer span.End()

	out := s.engine.Apply(s.catalog.All(), cfg)
	span.SetAttributes(
		attribute.String("filter.category", string(cfg.Category)),
		attribute.String("filter.sort", string(cfg.SortBy)),
		attribute.Int("result.count", len(out)),
	)
	return out
}

// Search runs a text search narrowed by cfg's search constraints, then refines
// the ranked result with the rest of cfg. With a relevance sort the search
// ranking is kept. A non-blank query is added to the session's recent
// searches when sessionID is set.
func (s *StorefrontService) Search(ctx context.Context, sessionID, query string, cfg domain.FilterConfig) ([]domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "StorefrontService.Search")
	defer span.End()

	var sess *session.Session
	if sessionID != "" {
		var err error
		if sess, err = s.sessions.Get(sessionID); err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
	}

	results := s.engine.Search(ctx, query, cfg.Constraints())
	results = s.engine.Apply(results, cfg)

	outcome := "hit"
	switch {
	case strings.TrimSpace(query) == "":
		outcome = "blank"
	case len(results) == 0:
		outcome = "miss"
	}
	s.metrics.searches.WithLabelValues(outcome).Inc()

	if sess != nil && outcome != "blank" {
		sess.RecordSearch(query)
	}

	span.SetAttributes(
		attribute.String("search.query", query),
		attribute.Int("result.count", len(results)),
	)
	logger.WithContext(ctx, s.logger).DebugContext(ctx, "search executed",
		slog.String("query", query),
		slog.Int("results", len(results)),
	)
	return results, nil
}

// Suggest returns dropdown completions for partial.
func (s *StorefrontService) Suggest(ctx context.Context, partial string) []domain.Suggestion {
	ctx, span := s.tracer.Start(ctx, "StorefrontService.Suggest")
	defer span.End()

	s.metrics.suggestions.Inc()
	out := s.engine.Suggest(ctx, partial)
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out
}

// RecentSearches returns the session's recent queries.
func (s *StorefrontService) RecentSearches(ctx context.Context, sessionID string) ([]string, error) {
	sess, err := s.session(ctx, "StorefrontService.RecentSearches", sessionID)
	if err != nil {
		return nil, err
	}
	return sess.RecentSearches(), nil
}

// Product returns the detail view of a product.
func (s *StorefrontService) Product(ctx context.Context, id int) (*ProductDetail, error) {
	_, span := s.tracer.Start(ctx, "StorefrontService.Product")
	defer span.End()
	span.SetAttributes(attribute.Int("product.id", id))

	p, ok := s.catalog.ByID(id)
	if !ok {
		err := apperrors.NotFound("product", strconv.Itoa(id))
		tracing.RecordError(span, err)
		return nil, err
	}

	related := make([]domain.Product, 0, MaxRelatedProducts)
	for _, candidate := range s.catalog.All() {
		if len(related) == MaxRelatedProducts {
			break
		}
		if candidate.ID != p.ID && candidate.Category == p.Category {
			related = append(related, candidate)
		}
	}

	return &ProductDetail{
		Product:         p,
		PlatformInfo:    p.Platform.Info(),
		DiscountPercent: p.DiscountPercent(),
		Related:         related,
	}, nil
}

// Deals returns discounted products, best discount first.
func (s *StorefrontService) Deals(ctx context.Context, limit int) []domain.Product {
	_, span := s.tracer.Start(ctx, "StorefrontService.Deals")
	defer span.End()
	return s.engine.Deals(limit)
}

// Facets summarises the products matching cfg for the filter sidebar.
func (s *StorefrontService) Facets(ctx context.Context, cfg domain.FilterConfig) domain.Facets {
	_, span := s.tracer.Start(ctx, "StorefrontService.Facets")
	defer span.End()
	return s.engine.Facets(s.engine.Apply(s.catalog.All(), cfg))
}

// Platforms returns the display metadata of every platform.
func (s *StorefrontService) Platforms() []domain.PlatformInfo {
	platforms := domain.Platforms()
	out := make([]domain.PlatformInfo, len(platforms))
	for i, p := range platforms {
		out[i] = p.Info()
	}
	return out
}

// CreateSession starts a session with the configured seed cart.
func (s *StorefrontService) CreateSession(ctx context.Context) *SessionInfo {
	ctx, span := s.tracer.Start(ctx, "StorefrontService.CreateSession")
	defer span.End()

	seed := make([]domain.Product, 0, len(s.seedIDs))
	for _, id := range s.seedIDs {
		p, ok := s.catalog.ByID(id)
		if !ok {
			s.logger.WarnContext(ctx, "seed product not in catalog", slog.Int("product_id", id))
			continue
		}
		seed = append(seed, p)
	}

	sess := s.sessions.Create(seed...)
	span.SetAttributes(attribute.String("session.id", sess.ID))

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "session created",
		slog.String("session_id", sess.ID),
		slog.Int("seed_items", len(seed)),
	)

	return &SessionInfo{ID: sess.ID, Cart: sess.Cart.Snapshot(), View: sess.View()}
}

// Cart returns the session's cart.
func (s *StorefrontService) Cart(ctx context.Context, sessionID string) (domain.CartSnapshot, error) {
	sess, err := s.session(ctx, "StorefrontService.Cart", sessionID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	return sess.Cart.Snapshot(), nil
}

// AddToCart adds one unit of a catalog product. A line already holding
// MaxQuantityPerLine units is rejected as invalid input.
func (s *StorefrontService) AddToCart(ctx context.Context, sessionID string, productID int) (domain.CartSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "StorefrontService.AddToCart")
	defer span.End()
	span.SetAttributes(attribute.Int("product.id", productID))

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		tracing.RecordError(span, err)
		return domain.CartSnapshot{}, err
	}

	p, ok := s.catalog.ByID(productID)
	if !ok {
		err := apperrors.NotFound("product", strconv.Itoa(productID))
		tracing.RecordError(span, err)
		return domain.CartSnapshot{}, err
	}

	qty, ok := sess.Cart.AddWithin(p, MaxQuantityPerLine)
	if !ok {
		err := apperrors.InvalidInput(fmt.Sprintf("combined quantity for product %d must not exceed %d", productID, MaxQuantityPerLine))
		tracing.RecordError(span, err)
		return domain.CartSnapshot{}, err
	}
	s.metrics.cartOps.WithLabelValues("add").Inc()
	snap := sess.Cart.Snapshot()
	s.publishUpdated(ctx, sessionID, snap)

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "item added to cart",
		slog.Int("product_id", productID),
		slog.Int("quantity", qty),
		slog.Int("total_count", snap.TotalCount),
	)
	return snap, nil
}

// RemoveFromCart drops a product's line. Removing an absent product is a
// no-op.
func (s *StorefrontService) RemoveFromCart(ctx context.Context, sessionID string, productID int) (domain.CartSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "StorefrontService.RemoveFromCart")
	defer span.End()
	span.SetAttributes(attribute.Int("product.id", productID))

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		tracing.RecordError(span, err)
		return domain.CartSnapshot{}, err
	}

	removed := sess.Cart.Remove(productID)
	snap := sess.Cart.Snapshot()
	if removed {
		s.metrics.cartOps.WithLabelValues("remove").Inc()
		s.publishUpdated(ctx, sessionID, snap)
		logger.WithContext(ctx, s.logger).InfoContext(ctx, "item removed from cart",
			slog.Int("product_id", productID),
			slog.Int("total_count", snap.TotalCount),
		)
	}
	return snap, nil
}

// SetQuantity sets a line's quantity; zero removes it. Products not in the
// cart are left alone.
func (s *StorefrontService) SetQuantity(ctx context.Context, sessionID string, productID, quantity int) (domain.CartSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "StorefrontService.SetQuantity")
	defer span.End()
	span.SetAttributes(
		attribute.Int("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	)

	if quantity < 0 || quantity > MaxQuantityPerLine {
		err := apperrors.InvalidInput(fmt.Sprintf("quantity must be between 0 and %d", MaxQuantityPerLine))
		tracing.RecordError(span, err)
		return domain.CartSnapshot{}, err
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		tracing.RecordError(span, err)
		return domain.CartSnapshot{}, err
	}

	changed := sess.Cart.SetQuantity(productID, quantity)
	snap := sess.Cart.Snapshot()
	if changed {
		s.metrics.cartOps.WithLabelValues("set_quantity").Inc()
		s.publishUpdated(ctx, sessionID, snap)
		logger.WithContext(ctx, s.logger).InfoContext(ctx, "cart item quantity updated",
			slog.Int("product_id", productID),
			slog.Int("quantity", quantity),
			slog.Int("total_count", snap.TotalCount),
		)
	}
	return snap, nil
}

// ClearCart empties the session's cart. Clearing an empty cart publishes
// nothing.
func (s *StorefrontService) ClearCart(ctx context.Context, sessionID string) (domain.CartSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "StorefrontService.ClearCart")
	defer span.End()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		tracing.RecordError(span, err)
		return domain.CartSnapshot{}, err
	}

	if !sess.Cart.Clear() {
		return sess.Cart.Snapshot(), nil
	}
	s.metrics.cartOps.WithLabelValues("clear").Inc()

	if err := s.publisher.PublishCartCleared(ctx, sessionID); err != nil {
		s.metrics.eventErrors.WithLabelValues(event.TypeCartCleared).Inc()
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "cart cleared")
	return sess.Cart.Snapshot(), nil
}

// View returns the session's current view.
func (s *StorefrontService) View(ctx context.Context, sessionID string) (domain.ViewState, error) {
	sess, err := s.session(ctx, "StorefrontService.View", sessionID)
	if err != nil {
		return domain.ViewState{}, err
	}
	return sess.View(), nil
}

// Navigate applies a navigation action to the session's view state machine.
// Unknown categories and products are rejected before the transition; a
// transition not allowed from the current view is a conflict.
func (s *StorefrontService) Navigate(ctx context.Context, sessionID string, in NavigateInput) (domain.ViewState, error) {
	ctx, span := s.tracer.Start(ctx, "StorefrontService.Navigate")
	defer span.End()
	span.SetAttributes(attribute.String("view.action", string(in.Action)))

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		tracing.RecordError(span, err)
		return domain.ViewState{}, err
	}

	var step func(*domain.Navigator) error
	switch in.Action {
	case domain.ActionSelectCategory:
		c, ok := domain.ParseCategory(in.Category)
		if !ok || c == domain.CategoryAll {
			return s.rejectNavigation(span, in.Action, apperrors.InvalidInput(fmt.Sprintf("unknown category %q", in.Category)))
		}
		step = func(n *domain.Navigator) error { return n.SelectCategory(c) }
	case domain.ActionSubmitQuery:
		q := strings.TrimSpace(in.Query)
		if q == "" {
			return s.rejectNavigation(span, in.Action, apperrors.InvalidInput("query is required"))
		}
		step = func(n *domain.Navigator) error { return n.SubmitQuery(q) }
	case domain.ActionOpenProduct:
		if _, ok := s.catalog.ByID(in.ProductID); !ok {
			return s.rejectNavigation(span, in.Action, apperrors.NotFound("product", strconv.Itoa(in.ProductID)))
		}
		step = func(n *domain.Navigator) error { return n.OpenProduct(in.ProductID) }
	case domain.ActionGoHome:
		step = func(n *domain.Navigator) error { n.GoHome(); return nil }
	default:
		return s.rejectNavigation(span, in.Action, apperrors.InvalidInput(fmt.Sprintf("unknown action %q", in.Action)))
	}

	state, err := sess.Navigate(step)
	if err != nil {
		return s.rejectNavigation(span, in.Action,
			apperrors.Conflict(fmt.Sprintf("cannot %s from the %s view", strings.ReplaceAll(string(in.Action), "_", " "), state.View)))
	}

	s.metrics.navigations.WithLabelValues(string(in.Action), "ok").Inc()
	span.SetAttributes(attribute.String("view.state", state.View.String()))
	return state, nil
}

func (s *StorefrontService) rejectNavigation(span trace.Span, action domain.Action, err error) (domain.ViewState, error) {
	s.metrics.navigations.WithLabelValues(string(action), "rejected").Inc()
	tracing.RecordError(span, err)
	return domain.ViewState{}, err
}

// session looks a session up inside a span named op.
func (s *StorefrontService) session(ctx context.Context, op, sessionID string) (*session.Session, error) {
	_, span := s.tracer.Start(ctx, op)
	defer span.End()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return sess, nil
}

func (s *StorefrontService) publishUpdated(ctx context.Context, sessionID string, snap domain.CartSnapshot) {
	if err := s.publisher.PublishCartUpdated(ctx, sessionID, snap); err != nil {
		s.metrics.eventErrors.WithLabelValues(event.TypeCartUpdated).Inc()
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
}
