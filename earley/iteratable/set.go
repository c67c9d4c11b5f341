package iteratable

// Set is a destructive, insertion-ordered, deduplicating container. Add,
// Remove, Union and Sort mutate the receiver in place; Subset and Copy leave
// it untouched and return a new Set.
// It exists to support chart algorithms (Earley StateSets, in this module)
// where "iterate the set while appending to it" is the normal mode of
// operation: Next reads the live length of the backing slice, so an Add
// performed mid-iteration is picked up by the same iteration.
//
// Elements are deduplicated with ==, so they must be of a comparable type --
// in practice a pointer, which is how every caller in this module uses it.
type Set struct {
	items  []interface{}
	index  map[interface{}]int
	cursor int
}

// NewSet creates an empty set, presizing its backing storage to capacityHint.
func NewSet(capacityHint int) *Set {
	return &Set{
		items: make([]interface{}, 0, capacityHint),
		index: make(map[interface{}]int, capacityHint),
	}
}

// Add inserts item if not already present. Reports whether it was newly added.
func (s *Set) Add(item interface{}) bool {
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = len(s.items)
	s.items = append(s.items, item)
	return true
}

// Size returns the number of elements currently in the set.
func (s *Set) Size() int {
	return len(s.items)
}

// Remove deletes item from the set, if present.
func (s *Set) Remove(item interface{}) bool {
	i, ok := s.index[item]
	if !ok {
		return false
	}
	delete(s.index, item)
	s.items = append(s.items[:i], s.items[i+1:]...)
	for k, v := range s.index {
		if v > i {
			s.index[k] = v - 1
		}
	}
	if s.cursor > i {
		s.cursor--
	}
	return true
}

// IterateOnce resets the cursor so a following Next/Item loop visits every
// element currently in the set, plus any appended while the loop runs.
func (s *Set) IterateOnce() {
	s.cursor = -1
}

// Next advances the cursor and reports whether an element is available.
// Because it re-reads len(s.items) on every call, elements Added during the
// loop are visited too -- the classic Earley "worklist" iteration.
func (s *Set) Next() bool {
	s.cursor++
	return s.cursor < len(s.items)
}

// Item returns the element at the current cursor position.
func (s *Set) Item() interface{} {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return nil
	}
	return s.items[s.cursor]
}

// Each calls f once for every element, in insertion order.
func (s *Set) Each(f func(interface{})) {
	for _, item := range s.items {
		f(item)
	}
}

// FirstMatch returns the first element satisfying pred, if any.
func (s *Set) FirstMatch(pred func(interface{}) bool) (interface{}, bool) {
	for _, item := range s.items {
		if pred(item) {
			return item, true
		}
	}
	return nil, false
}

// Subset returns a new set containing every element of s satisfying pred.
func (s *Set) Subset(pred func(interface{}) bool) *Set {
	out := NewSet(0)
	for _, item := range s.items {
		if pred(item) {
			out.Add(item)
		}
	}
	return out
}

// Copy returns a shallow, independent copy of s.
func (s *Set) Copy() *Set {
	out := NewSet(len(s.items))
	for _, item := range s.items {
		out.Add(item)
	}
	return out
}

// Union adds every element of other into s and returns s.
func (s *Set) Union(other *Set) *Set {
	other.Each(func(item interface{}) {
		s.Add(item)
	})
	return s
}

// Sort orders the set's elements in place according to less.
func (s *Set) Sort(less func(a, b interface{}) bool) {
	n := len(s.items)
	for i := 1; i < n; i++ {
		for j := i; j > 0 && less(s.items[j], s.items[j-1]); j-- {
			s.items[j], s.items[j-1] = s.items[j-1], s.items[j]
		}
	}
	for i, item := range s.items {
		s.index[item] = i
	}
}
