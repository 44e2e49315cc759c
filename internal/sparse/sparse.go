// Package sparse provides the visited set used by the Pike VM.
//
// A sparse set supports O(1) insertion, membership testing and clearing over a
// fixed universe [0, capacity). The simulation clears it once per level, so
// clearing must not depend on how many values were inserted.
package sparse

// SparseSet is a set of uint32 values drawn from [0, capacity).
//
// The sparse array maps a value to its index in dense; a value is present when
// that index is below size and dense points back at the value. Stale entries in
// sparse are therefore harmless and Clear only resets size.
type SparseSet struct {
	sparse []uint32
	dense  []uint32
	size   uint32
}

// NewSparseSet creates an empty set for values below capacity.
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, capacity),
	}
}

// Insert adds value and reports whether it was newly added.
// Panics if value is outside the universe.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.dense[s.size] = value
	s.sparse[value] = s.size
	s.size++
	return true
}

// Contains reports whether value is in the set. Values outside the universe
// are never contained.
func (s *SparseSet) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Clear removes all elements in O(1).
func (s *SparseSet) Clear() {
	s.size = 0
}
