package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/engine/memory"
	"github.com/utafrali/storefront/internal/session"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ---------------------------------------------------------------------------
// Mock publisher
// ---------------------------------------------------------------------------

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishCartUpdated(ctx context.Context, sessionID string, cart domain.CartSnapshot) error {
	args := m.Called(ctx, sessionID, cart)
	return args.Error(0)
}

func (m *mockPublisher) PublishCartCleared(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func price(v int64) *int64 { return &v }

func testProducts() []domain.Product {
	return []domain.Product{
		{
			ID: 1, Title: "Echo Dot (5th Gen)", Price: 2999, OriginalPrice: price(4999), Rating: 4.5,
			Category: domain.CategoryElectronics, Brand: "Amazon", Platform: domain.PlatformAmazon,
			FreeShipping: true, LoyaltyEligible: true, InStock: true, StockCount: 10,
			Keywords: []string{"smart speaker", "alexa"},
		},
		{
			ID: 2, Title: "Fire TV Stick", Price: 3499, Rating: 4.4,
			Category: domain.CategoryElectronics, Brand: "Amazon", Platform: domain.PlatformAmazon,
			InStock: true, StockCount: 5, Keywords: []string{"streaming"},
		},
		{
			ID: 3, Title: "Running Shoes", Price: 7495, OriginalPrice: price(9995), Rating: 4.7,
			Category: domain.CategorySports, Brand: "Nike", Platform: domain.PlatformMyntra,
			InStock: true, StockCount: 3, Keywords: []string{"shoes"},
		},
		{
			ID: 4, Title: "Smart Watch", Price: 19999, Rating: 4.1,
			Category: domain.CategoryElectronics, Brand: "Fitbit", Platform: domain.PlatformFlipkart,
			InStock: true, StockCount: 8, Keywords: []string{"fitness"},
		},
	}
}

type fixture struct {
	svc       *StorefrontService
	publisher *mockPublisher
	sessions  *session.Registry
	reg       *prometheus.Registry
}

func newFixture(t *testing.T, seed ...int) *fixture {
	t.Helper()
	products := testProducts()
	cat := catalog.New(products, []string{"smart watch", "shoes"})
	eng := memory.New(cat.All(), cat.TrendingKeywords())
	reg := prometheus.NewRegistry()
	sessions := session.NewRegistry(time.Hour)
	pub := new(mockPublisher)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewStorefrontService(cat, eng, sessions, pub, NewMetrics(reg), logger, seed)
	return &fixture{svc: svc, publisher: pub, sessions: sessions, reg: reg}
}

func ids(products []domain.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func counter(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			got := make(map[string]string)
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

// ---------------------------------------------------------------------------
// Catalog operations
// ---------------------------------------------------------------------------

func TestBrowse_DefaultConfigKeepsCatalogOrder(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(f.svc.Browse(context.Background(), domain.DefaultFilterConfig())))
}

func TestBrowse_CategoryAndSort(t *testing.T) {
	f := newFixture(t)
	cfg := domain.DefaultFilterConfig()
	cfg.Category = domain.CategoryElectronics
	cfg.SortBy = domain.SortPriceDesc

	assert.Equal(t, []int{4, 2, 1}, ids(f.svc.Browse(context.Background(), cfg)))
}

func TestSearch_RecordsRecentSearchForSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)

	results, err := f.svc.Search(ctx, info.ID, "  Shoes ", domain.DefaultFilterConfig())
	require.NoError(t, err)
	assert.Equal(t, []int{3}, ids(results))

	_, err = f.svc.Search(ctx, info.ID, "echo", domain.DefaultFilterConfig())
	require.NoError(t, err)

	recent, err := f.svc.RecentSearches(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "Shoes"}, recent)
	assert.Equal(t, 2.0, counter(t, f.reg, "storefront_searches_total", map[string]string{"outcome": "hit"}))
}

func TestSearch_BlankQueryNotRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)

	results, err := f.svc.Search(ctx, info.ID, "   ", domain.DefaultFilterConfig())
	require.NoError(t, err)
	assert.Empty(t, results)

	recent, err := f.svc.RecentSearches(ctx, info.ID)
	require.NoError(t, err)
	assert.Empty(t, recent)
	assert.Equal(t, 1.0, counter(t, f.reg, "storefront_searches_total", map[string]string{"outcome": "blank"}))
}

func TestSearch_WithoutSession(t *testing.T) {
	f := newFixture(t)
	results, err := f.svc.Search(context.Background(), "", "nothing-matches", domain.DefaultFilterConfig())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 1.0, counter(t, f.reg, "storefront_searches_total", map[string]string{"outcome": "miss"}))
}

func TestSearch_UnknownSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Search(context.Background(), "missing", "echo", domain.DefaultFilterConfig())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSearch_RefinedBySortAndPrice(t *testing.T) {
	f := newFixture(t)
	cfg := domain.DefaultFilterConfig()
	cfg.PriceRange = domain.PriceRange{Min: 0, Max: 5000}
	cfg.SortBy = domain.SortPriceDesc

	// "smart" matches Echo Dot by keyword and Smart Watch by title.
	results, err := f.svc.Search(context.Background(), "", "smart", cfg)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(results))
}

func TestSuggest(t *testing.T) {
	f := newFixture(t)
	out := f.svc.Suggest(context.Background(), "smart")
	require.NotEmpty(t, out)
	assert.Equal(t, domain.SuggestionProduct, out[0].Type)
	assert.Equal(t, "Smart Watch", out[0].Text)
	assert.Equal(t, 1.0, counter(t, f.reg, "storefront_suggestions_total", nil))
}

func TestProduct_Detail(t *testing.T) {
	f := newFixture(t)
	detail, err := f.svc.Product(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Echo Dot (5th Gen)", detail.Title)
	assert.Equal(t, "Prime", detail.PlatformInfo.LoyaltyProgram)
	assert.Equal(t, 40, detail.DiscountPercent)
	assert.Equal(t, []int{2, 4}, ids(detail.Related))
}

func TestProduct_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Product(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDealsAndFacets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, []int{1, 3}, ids(f.svc.Deals(ctx, 0)))
	assert.Equal(t, []int{1}, ids(f.svc.Deals(ctx, 1)))

	facets := f.svc.Facets(ctx, domain.DefaultFilterConfig())
	assert.Equal(t, 4, facets.Total)
	assert.Equal(t, int64(2999), facets.MinPrice)
	assert.Equal(t, int64(19999), facets.MaxPrice)
}

func TestPlatforms(t *testing.T) {
	f := newFixture(t)
	platforms := f.svc.Platforms()
	require.Len(t, platforms, 3)
	assert.Equal(t, "Amazon", platforms[0].DisplayName)
	assert.Equal(t, "Insider", platforms[2].LoyaltyProgram)
}

// ---------------------------------------------------------------------------
// Sessions and cart
// ---------------------------------------------------------------------------

func TestCreateSession_SeedsCart(t *testing.T) {
	f := newFixture(t, 1, 2, 99)
	info := f.svc.CreateSession(context.Background())

	assert.NotEmpty(t, info.ID)
	assert.Equal(t, 2, info.Cart.TotalCount)
	assert.Equal(t, domain.ViewHome, info.View.View)
	assert.Equal(t, 1, f.sessions.Len())
}

func TestAddToCart_PublishesUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)

	f.publisher.On("PublishCartUpdated", mock.Anything, info.ID, mock.AnythingOfType("domain.CartSnapshot")).
		Return(nil).Twice()

	_, err := f.svc.AddToCart(ctx, info.ID, 1)
	require.NoError(t, err)
	snap, err := f.svc.AddToCart(ctx, info.ID, 1)
	require.NoError(t, err)

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 2, snap.Lines[0].Quantity)
	assert.Equal(t, 2, snap.TotalCount)
	assert.Equal(t, 59.98, snap.TotalPrice)
	f.publisher.AssertExpectations(t)
	assert.Equal(t, 2.0, counter(t, f.reg, "storefront_cart_operations_total", map[string]string{"operation": "add"}))
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	info := f.svc.CreateSession(context.Background())

	_, err := f.svc.AddToCart(context.Background(), info.ID, 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	f.publisher.AssertNotCalled(t, "PublishCartUpdated", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddToCart_UnknownSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AddToCart(context.Background(), "nope", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddToCart_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)

	f.publisher.On("PublishCartUpdated", mock.Anything, info.ID, mock.Anything).
		Return(errors.New("broker down")).Once()

	snap, err := f.svc.AddToCart(ctx, info.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalCount)
	assert.Equal(t, 1.0, counter(t, f.reg, "storefront_event_publish_errors_total", map[string]string{"event_type": "cart.updated"}))
}

func TestAddAddSetZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)
	f.publisher.On("PublishCartUpdated", mock.Anything, info.ID, mock.Anything).Return(nil)

	_, err := f.svc.AddToCart(ctx, info.ID, 1)
	require.NoError(t, err)
	_, err = f.svc.AddToCart(ctx, info.ID, 1)
	require.NoError(t, err)
	snap, err := f.svc.SetQuantity(ctx, info.ID, 1, 0)
	require.NoError(t, err)

	assert.Empty(t, snap.Lines)
	assert.Equal(t, 0, snap.TotalCount)
	assert.Equal(t, 0.0, snap.TotalPrice)
	f.publisher.AssertNumberOfCalls(t, "PublishCartUpdated", 3)
}

func TestSetQuantity_Bounds(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)

	for _, q := range []int{-1, MaxQuantityPerLine + 1} {
		_, err := f.svc.SetQuantity(ctx, info.ID, 1, q)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "quantity %d", q)
	}

	f.publisher.On("PublishCartUpdated", mock.Anything, info.ID, mock.Anything).Return(nil).Once()
	snap, err := f.svc.SetQuantity(ctx, info.ID, 1, MaxQuantityPerLine)
	require.NoError(t, err)
	assert.Equal(t, MaxQuantityPerLine, snap.TotalCount)
	f.publisher.AssertExpectations(t)
}

func TestAddToCart_RejectsPastLineLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)
	f.publisher.On("PublishCartUpdated", mock.Anything, info.ID, mock.Anything).Return(nil)

	for i := 0; i < MaxQuantityPerLine; i++ {
		_, err := f.svc.AddToCart(ctx, info.ID, 1)
		require.NoError(t, err)
	}

	_, err := f.svc.AddToCart(ctx, info.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	snap, err := f.svc.Cart(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, MaxQuantityPerLine, snap.TotalCount)
	f.publisher.AssertNumberOfCalls(t, "PublishCartUpdated", MaxQuantityPerLine)

	// The stored quantity can still be written back.
	_, err = f.svc.SetQuantity(ctx, info.ID, 1, snap.Lines[0].Quantity)
	require.NoError(t, err)
}

func TestSetQuantity_AbsentProductIsNoop(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)

	snap, err := f.svc.SetQuantity(ctx, info.ID, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalCount)
	f.publisher.AssertNotCalled(t, "PublishCartUpdated", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveFromCart(t *testing.T) {
	f := newFixture(t, 1, 2)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)
	f.publisher.On("PublishCartUpdated", mock.Anything, info.ID, mock.Anything).Return(nil).Once()

	snap, err := f.svc.RemoveFromCart(ctx, info.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalCount)
	assert.Equal(t, 2, snap.Lines[0].Product.ID)

	// Absent product: no event.
	snap, err = f.svc.RemoveFromCart(ctx, info.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalCount)
	f.publisher.AssertExpectations(t)
}

func TestClearCart(t *testing.T) {
	f := newFixture(t, 1, 2, 3)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)
	f.publisher.On("PublishCartCleared", mock.Anything, info.ID).Return(nil).Once()

	snap, err := f.svc.ClearCart(ctx, info.ID)
	require.NoError(t, err)
	assert.Empty(t, snap.Lines)
	assert.Equal(t, 0, snap.TotalCount)

	cart, err := f.svc.Cart(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, cart.TotalCount)
	f.publisher.AssertExpectations(t)
}

func TestClearCart_EmptyCartPublishesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)

	snap, err := f.svc.ClearCart(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.TotalCount)
	f.publisher.AssertNotCalled(t, "PublishCartCleared", mock.Anything, mock.Anything)
	assert.Zero(t, counter(t, f.reg, "storefront_cart_operations_total", map[string]string{"operation": "clear"}))
}

func TestCart_IsolatedPerSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.svc.CreateSession(ctx)
	b := f.svc.CreateSession(ctx)
	f.publisher.On("PublishCartUpdated", mock.Anything, a.ID, mock.Anything).Return(nil)

	_, err := f.svc.AddToCart(ctx, a.ID, 4)
	require.NoError(t, err)

	cartB, err := f.svc.Cart(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, cartB.TotalCount)
}

// ---------------------------------------------------------------------------
// Navigation
// ---------------------------------------------------------------------------

func TestNavigate_Flow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)

	state, err := f.svc.Navigate(ctx, info.ID, NavigateInput{Action: domain.ActionSelectCategory, Category: "sports"})
	require.NoError(t, err)
	assert.Equal(t, domain.ViewCategory, state.View)
	assert.Equal(t, domain.CategorySports, state.Category)

	state, err = f.svc.Navigate(ctx, info.ID, NavigateInput{Action: domain.ActionOpenProduct, ProductID: 3})
	require.NoError(t, err)
	assert.Equal(t, domain.ViewProduct, state.View)
	assert.Equal(t, 3, state.ProductID)

	_, err = f.svc.Navigate(ctx, info.ID, NavigateInput{Action: domain.ActionSelectCategory, Category: "books"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	state, err = f.svc.Navigate(ctx, info.ID, NavigateInput{Action: domain.ActionGoHome})
	require.NoError(t, err)
	assert.Equal(t, domain.ViewHome, state.View)

	current, err := f.svc.View(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, state, current)

	assert.Equal(t, 1.0, counter(t, f.reg, "storefront_navigations_total",
		map[string]string{"action": "select_category", "result": "rejected"}))
}

func TestNavigate_InvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)

	tests := []struct {
		name string
		in   NavigateInput
		want error
	}{
		{"unknown category", NavigateInput{Action: domain.ActionSelectCategory, Category: "garden gnomes"}, apperrors.ErrInvalidInput},
		{"all is not a view", NavigateInput{Action: domain.ActionSelectCategory, Category: "all"}, apperrors.ErrInvalidInput},
		{"blank query", NavigateInput{Action: domain.ActionSubmitQuery, Query: "  "}, apperrors.ErrInvalidInput},
		{"unknown product", NavigateInput{Action: domain.ActionOpenProduct, ProductID: 77}, apperrors.ErrNotFound},
		{"unknown action", NavigateInput{Action: "fly"}, apperrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Navigate(ctx, info.ID, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	state, err := f.svc.View(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewHome, state.View)
}

func TestNavigate_SubmitQueryTrims(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info := f.svc.CreateSession(ctx)

	state, err := f.svc.Navigate(ctx, info.ID, NavigateInput{Action: domain.ActionSubmitQuery, Query: "  watch "})
	require.NoError(t, err)
	assert.Equal(t, domain.ViewSearch, state.View)
	assert.Equal(t, "watch", state.Query)
}
