// Package dedup provides a bounded set of already-processed message keys,
// used by the ingest layer to skip re-scoring retried webhook deliveries.
// The scoring engine itself is stateless and never consults it.
package dedup

import "sync"

// DefaultCapacity bounds memory when the caller gives no explicit capacity
const DefaultCapacity = 1000

// Set is a bounded, mutex-guarded set with oldest-entry eviction
type Set struct {
	mu       sync.Mutex
	capacity int
	members  map[string]struct{}
	order    []string
}

// New creates a dedup set holding at most capacity entries
func New(capacity int) *Set {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Set{
		capacity: capacity,
		members:  make(map[string]struct{}, capacity),
	}
}

// Seen reports whether the key was already recorded, recording it if not.
// When the set is full the oldest entry is evicted first.
func (s *Set) Seen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[key]; ok {
		return true
	}

	if len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.members, oldest)
	}

	s.members[key] = struct{}{}
	s.order = append(s.order, key)
	return false
}

// Len returns the number of recorded keys
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}
