// Package inventory owns the canonical item->count mapping and both sides
// of its HTTP surface: the gin handlers served by inventoryd and the client
// used by the gateway to reach them.
package inventory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

const (
	ItemTshirts = "tshirts"
	ItemPants   = "pants"
)

// DefaultSeed returns the stock the service starts with.
func DefaultSeed() map[string]int {
	return map[string]int{
		ItemTshirts: 20,
		ItemPants:   15,
	}
}

// UnknownItemError reports an update against an item outside the fixed set.
type UnknownItemError struct {
	Item  string
	Known []string
}

func (e *UnknownItemError) Error() string {
	quoted := make([]string, len(e.Known))
	for i, k := range e.Known {
		quoted[i] = "'" + k + "'"
	}
	return fmt.Sprintf("Invalid item: '%s'. Only %s are supported.", e.Item, strings.Join(quoted, " and "))
}

// NegativeStockError reports a rejected update that would drive a count
// below zero. The store is left unmodified.
type NegativeStockError struct {
	Item    string
	Current int
	Change  int
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("Cannot reduce '%s' stock below zero. Current: %d, Attempted change: %d", e.Item, e.Current, e.Change)
}

// Store holds the in-memory inventory. The item set is fixed at
// construction; counts never go negative. All mutation is serialized
// under a single mutex so concurrent updates cannot lose writes or
// break the invariant.
type Store struct {
	mu     sync.Mutex
	counts map[string]int
	known  []string
}

func NewStore(seed map[string]int) *Store {
	counts := make(map[string]int, len(seed))
	known := make([]string, 0, len(seed))
	for item, count := range seed {
		name := strings.ToLower(strings.TrimSpace(item))
		counts[name] = count
		known = append(known, name)
	}
	sort.Strings(known)

	return &Store{
		counts: counts,
		known:  known,
	}
}

// Snapshot returns a copy of the full mapping. Never fails.
func (s *Store) Snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Apply adjusts an item's count by change and returns the full updated
// mapping. Item match is case-insensitive. On any validation failure the
// store is left untouched.
func (s *Store) Apply(item string, change int) (map[string]int, error) {
	name := strings.ToLower(strings.TrimSpace(item))

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.counts[name]
	if !ok {
		return nil, &UnknownItemError{Item: item, Known: s.known}
	}

	next := current + change
	if next < 0 {
		return nil, &NegativeStockError{Item: name, Current: current, Change: change}
	}

	s.counts[name] = next
	return s.snapshotLocked(), nil
}

func (s *Store) snapshotLocked() map[string]int {
	out := make(map[string]int, len(s.counts))
	for item, count := range s.counts {
		out[item] = count
	}
	return out
}
