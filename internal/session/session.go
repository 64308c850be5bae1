// Package session owns per-visitor storefront state: the cart, the recent
// searches and the view navigator.
package session

import (
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/cart"
	"github.com/utafrali/storefront/internal/domain"
)

// Session is the state of one visitor. The cart has its own lock; mu guards
// the recent searches and the navigator.
type Session struct {
	ID        string
	CreatedAt time.Time
	Cart      *cart.Store

	mu     sync.Mutex
	recent domain.RecentSearches
	nav    *domain.Navigator
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		Cart:      cart.NewStore(),
		nav:       domain.NewNavigator(),
	}
}

// RecordSearch pushes q to the recent-search list.
func (s *Session) RecordSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent.Push(q)
}

// RecentSearches returns the recent queries, most recent first.
func (s *Session) RecentSearches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recent.List()
}

// ClearRecentSearches forgets the recent queries.
func (s *Session) ClearRecentSearches() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent.Clear()
}

// View returns the current view state.
func (s *Session) View() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.State()
}

// Navigate runs fn against the navigator under the session lock and returns
// the resulting state.
func (s *Session) Navigate(fn func(*domain.Navigator) error) (domain.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.nav); err != nil {
		return s.nav.State(), err
	}
	return s.nav.State(), nil
}
