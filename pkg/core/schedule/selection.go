package schedule

import "sort"

// Selection is a set of worker positions in the roster
type Selection map[int]struct{}

// NewSelection builds a selection from positions
func NewSelection(indices ...int) Selection {
	s := make(Selection, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Has reports whether i is selected
func (s Selection) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Toggle adds i when absent and removes it when present
func (s Selection) Toggle(i int) {
	if s.Has(i) {
		delete(s, i)
		return
	}
	s[i] = struct{}{}
}

// Indices returns the selected positions in ascending order
func (s Selection) Indices() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy
func (s Selection) Clone() Selection {
	return NewSelection(s.Indices()...)
}

// AfterRemoval returns the selection as it should be once the worker at
// removed is deleted: that position is dropped and higher ones shift down.
func (s Selection) AfterRemoval(removed int) Selection {
	out := make(Selection, len(s))
	for i := range s {
		switch {
		case i == removed:
		case i > removed:
			out[i-1] = struct{}{}
		default:
			out[i] = struct{}{}
		}
	}
	return out
}

// Within drops positions outside [0, n)
func (s Selection) Within(n int) Selection {
	out := make(Selection, len(s))
	for i := range s {
		if i >= 0 && i < n {
			out[i] = struct{}{}
		}
	}
	return out
}
