// Package cart holds the per-session shopping cart.
package cart

import (
	"sync"

	"github.com/utafrali/storefront/internal/domain"
)

// Store is a mutable cart keyed by product id. Lines keep the order in which
// products were first added. TotalCount is maintained on every mutation and
// always equals the sum of line quantities. All methods are safe for
// concurrent use and each is atomic.
type Store struct {
	mu         sync.Mutex
	lines      map[int]*domain.CartLine
	order      []int
	totalCount int
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{lines: make(map[int]*domain.CartLine)}
}

// Add puts one unit of p in the cart and returns the line's new quantity.
func (s *Store) Add(p domain.Product) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(p)
}

func (s *Store) addLocked(p domain.Product) int {
	line, ok := s.lines[p.ID]
	if !ok {
		line = &domain.CartLine{Product: p}
		s.lines[p.ID] = line
		s.order = append(s.order, p.ID)
	}
	line.Quantity++
	s.totalCount++
	return line.Quantity
}

// AddWithin is Add bounded by limit: when the line already holds limit units
// the cart is left unchanged and ok is false.
func (s *Store) AddWithin(p domain.Product, limit int) (qty int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line, exists := s.lines[p.ID]; exists && line.Quantity >= limit {
		return line.Quantity, false
	}
	return s.addLocked(p), true
}

// Remove deletes the line for id. It reports whether a line was removed.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

// SetQuantity sets the quantity of the line for id. Zero removes the line.
// Absent ids and negative quantities are ignored. It reports whether the cart
// changed.
func (s *Store) SetQuantity(id, n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 0 {
		return false
	}
	if n == 0 {
		return s.removeLocked(id)
	}

	line, ok := s.lines[id]
	if !ok {
		return false
	}
	delta := n - line.Quantity
	line.Quantity = n
	s.totalCount += delta
	return delta != 0
}

// Clear empties the cart. It reports whether the cart held anything.
func (s *Store) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return false
	}
	s.lines = make(map[int]*domain.CartLine)
	s.order = nil
	s.totalCount = 0
	return true
}

// TotalCount returns the number of units in the cart.
func (s *Store) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCount
}

// TotalPrice returns the cart total rounded to 2 decimals.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ToAmount(s.totalCentsLocked())
}

// Quantity returns the quantity of the line for id, or 0.
func (s *Store) Quantity(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line, ok := s.lines[id]; ok {
		return line.Quantity
	}
	return 0
}

// Snapshot returns a consistent copy of the cart for rendering.
func (s *Store) Snapshot() domain.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.CartLine, 0, len(s.order))
	for _, id := range s.order {
		lines = append(lines, *s.lines[id])
	}

	cents := s.totalCentsLocked()
	return domain.CartSnapshot{
		Lines:      lines,
		TotalCount: s.totalCount,
		TotalCents: cents,
		TotalPrice: domain.ToAmount(cents),
	}
}

func (s *Store) removeLocked(id int) bool {
	line, ok := s.lines[id]
	if !ok {
		return false
	}
	s.totalCount -= line.Quantity
	delete(s.lines, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Store) totalCentsLocked() int64 {
	var total int64
	for _, line := range s.lines {
		total += line.Subtotal()
	}
	return total
}
