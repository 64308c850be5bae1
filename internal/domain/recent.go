package domain

import "strings"

// MaxRecentSearches bounds the recent-search list.
const MaxRecentSearches = 5

// RecentSearches is a bounded most-recent-first list of queries. It is not
// safe for concurrent use; the owning session serializes access.
type RecentSearches struct {
	items []string
}

// Push records q at the front. A query already present (ignoring case) is
// moved to the front instead of duplicated. Blank queries are ignored.
func (r *RecentSearches) Push(q string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return
	}

	next := make([]string, 0, MaxRecentSearches)
	next = append(next, q)
	for _, existing := range r.items {
		if strings.EqualFold(existing, q) {
			continue
		}
		if len(next) == MaxRecentSearches {
			break
		}
		next = append(next, existing)
	}
	r.items = next
}

// List returns a copy of the queries, most recent first.
func (r *RecentSearches) List() []string {
	out := make([]string, len(r.items))
	copy(out, r.items)
	return out
}

// Clear forgets every query.
func (r *RecentSearches) Clear() {
	r.items = nil
}
