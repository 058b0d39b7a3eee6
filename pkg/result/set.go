// Package result collects surviving candidates from a sieve search and
// supports checkpointing a partially completed search for later resumption.
package result

import "sync"

// Set stores the low-64-bit identifiers of candidates that survived the
// sieve, capped at a maximum count. It is safe for concurrent use so a
// pkg/sieve.Pool worker can add directly from its own goroutine.
type Set struct {
	mu    sync.Mutex
	lsb   []uint64
	limit int
}

// NewSet creates an empty set capped at limit entries (0 means unlimited).
func NewSet(limit int) *Set {
	return &Set{limit: limit}
}

// Add appends a surviving candidate's low 64 bits. It reports whether the
// set has reached its cap after the addition, so callers can stop their
// search loop as soon as enough candidates have been found. A set already
// at its cap drops lsb and reports full.
func (s *Set) Add(lsb uint64) (full bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limit > 0 && len(s.lsb) >= s.limit {
		return true
	}
	s.lsb = append(s.lsb, lsb)
	if s.limit > 0 && len(s.lsb) >= s.limit {
		return true
	}
	return false
}

// Values returns a copy of every LSB64 collected so far, in discovery order.
func (s *Set) Values() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, len(s.lsb))
	copy(out, s.lsb)
	return out
}

// Len returns the number of candidates collected so far.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lsb)
}
