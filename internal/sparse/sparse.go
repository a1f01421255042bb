// Package sparse provides a sparse set of small integers.
//
// A sparse set supports O(1) insertion, membership testing and clearing
// while keeping a dense list of its members for iteration. The regex set
// uses it to record which of its patterns matched.
package sparse

import "github.com/coregx/rregex/internal/conv"

// Set is a set of integers in [0, capacity).
//
// The sparse array maps a value to its position in dense; a value is a
// member when that position is in range and points back at it.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates a set able to hold the values 0..capacity-1.
func New(capacity int) *Set {
	n := conv.IntToUint32(capacity)
	return &Set{
		sparse: make([]uint32, n),
		dense:  make([]uint32, 0, n),
	}
}

// Insert adds v and reports whether it was not already present.
// Panics if v is outside the capacity.
func (s *Set) Insert(v int) bool {
	if s.Contains(v) {
		return false
	}
	u := conv.IntToUint32(v)
	s.sparse[u] = conv.IntToUint32(len(s.dense))
	s.dense = append(s.dense, u)
	return true
}

// Contains reports whether v is in the set.
func (s *Set) Contains(v int) bool {
	if v < 0 || v >= len(s.sparse) {
		return false
	}
	i := s.sparse[v]
	return int(i) < len(s.dense) && s.dense[i] == uint32(v)
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// Cap returns the capacity the set was created with.
func (s *Set) Cap() int {
	return len(s.sparse)
}

// Clear removes every member in O(1).
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Values returns the members in insertion order.
func (s *Set) Values() []int {
	out := make([]int, len(s.dense))
	for i, v := range s.dense {
		out[i] = int(v)
	}
	return out
}
