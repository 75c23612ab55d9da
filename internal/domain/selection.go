package domain

import "slices"

// SelectionSet tracks which book IDs are marked for bulk operations.
// Entries for deleted books are purged when the delete commits.
type SelectionSet map[int64]bool

// NewSelectionSet creates an empty selection.
func NewSelectionSet() SelectionSet {
	return make(SelectionSet)
}

// Toggle flips the selection state for id and returns the new state.
func (s SelectionSet) Toggle(id int64) bool {
	if s[id] {
		delete(s, id)
		return false
	}
	s[id] = true
	return true
}

// Remove drops id from the selection.
func (s SelectionSet) Remove(id int64) {
	delete(s, id)
}

// Selected reports whether id is currently selected.
func (s SelectionSet) Selected(id int64) bool {
	return s[id]
}

// IDs returns the selected book IDs in ascending order.
func (s SelectionSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id, on := range s {
		if on {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Count returns the number of selected books.
func (s SelectionSet) Count() int {
	n := 0
	for _, on := range s {
		if on {
			n++
		}
	}
	return n
}

// Empty reports whether nothing is selected.
func (s SelectionSet) Empty() bool {
	return s.Count() == 0
}

// Clear removes every entry.
func (s SelectionSet) Clear() {
	for id := range s {
		delete(s, id)
	}
}

// Clone returns an independent copy of the selection.
func (s SelectionSet) Clone() SelectionSet {
	c := make(SelectionSet, len(s))
	for id, on := range s {
		c[id] = on
	}
	return c
}
