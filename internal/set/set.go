// Package set provides a small generic set that remembers insertion order.
package set

// Set is a collection of unique values. The zero value is not usable; call NewSet.
type Set[T comparable] struct {
	index  map[T]int
	values []T
}

// NewSet creates a set holding the given values.
func NewSet[T comparable](values ...T) *Set[T] {
	s := &Set[T]{index: make(map[T]int, len(values))}
	s.AddValues(values)
	return s
}

// Add inserts v. It reports whether v was not already present.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = len(s.values)
	s.values = append(s.values, v)
	return true
}

// AddValues inserts every value of vs.
func (s *Set[T]) AddValues(vs []T) {
	for _, v := range vs {
		s.Add(v)
	}
}

// Union inserts every value of other.
func (s *Set[T]) Union(other *Set[T]) {
	if other == nil {
		return
	}
	s.AddValues(other.values)
}

// Remove deletes v, keeping the order of the remaining values.
func (s *Set[T]) Remove(v T) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	delete(s.index, v)
	s.values = append(s.values[:i], s.values[i+1:]...)
	for j := i; j < len(s.values); j++ {
		s.index[s.values[j]] = j
	}
	return true
}

// Contains reports whether v is in the set. A nil set contains nothing.
func (s *Set[T]) Contains(v T) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[v]
	return ok
}

// Len returns the number of values.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Values returns a copy of the values in insertion order.
func (s *Set[T]) Values() []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}
