package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Registry maps session ids to sessions and expires idle ones.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger

	active  prometheus.Gauge
	created prometheus.Counter
	expired prometheus.Counter
}

// Option customizes a Registry.
type Option func(*Registry)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithLogger sets the logger used by the sweeper.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// WithMetrics registers the session collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Registry) {
		r.active = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_sessions_active",
			Help: "Number of live storefront sessions",
		})
		r.created = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_sessions_created_total",
			Help: "Total number of sessions created",
		})
		r.expired = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_sessions_expired_total",
			Help: "Total number of sessions removed after idling past the TTL",
		})
		reg.MustRegister(r.active, r.created, r.expired)
	}
}

// NewRegistry creates a registry whose sessions expire after ttl without
// access. A non-positive ttl disables expiry.
func NewRegistry(ttl time.Duration, opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create starts a session whose cart is pre-filled with one unit of each of
// seed.
func (r *Registry) Create(seed ...domain.Product) *Session {
	now := r.now()
	s := newSession(uuid.NewString(), now)
	for _, p := range seed {
		s.Cart.Add(p)
	}

	r.mu.Lock()
	r.sessions[s.ID] = &entry{session: s, lastSeen: now}
	n := len(r.sessions)
	r.mu.Unlock()

	if r.created != nil {
		r.created.Inc()
		r.active.Set(float64(n))
	}
	return s
}

// Get returns the session for id and refreshes its idle timer. It fails with
// a not-found error for unknown ids and an expired error for sessions idle
// past the TTL, which are removed.
func (r *Registry) Get(id string) (*Session, error) {
	now := r.now()

	r.mu.Lock()
	e, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return nil, apperrors.NotFound("session", id)
	}
	if r.isExpired(e, now) {
		delete(r.sessions, id)
		n := len(r.sessions)
		r.mu.Unlock()
		r.recordExpired(1, n)
		return nil, apperrors.Expired("session", id)
	}
	e.lastSeen = now
	r.mu.Unlock()

	return e.session, nil
}

// Delete drops a session. Unknown ids are ignored.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	if r.active != nil {
		r.active.Set(float64(n))
	}
}

// Len returns the number of sessions, including any not yet swept.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes every expired session and returns how many were removed.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	removed := 0
	for id, e := range r.sessions {
		if r.isExpired(e, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	r.recordExpired(removed, n)
	return removed
}

// Run sweeps on every tick of interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.InfoContext(ctx, "expired sessions swept",
					slog.Int("removed", n),
					slog.Int("remaining", r.Len()),
				)
			}
		}
	}
}

func (r *Registry) isExpired(e *entry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.lastSeen) > r.ttl
}

func (r *Registry) recordExpired(removed, remaining int) {
	if r.expired == nil {
		return
	}
	r.expired.Add(float64(removed))
	r.active.Set(float64(remaining))
}
