package setup

import "fmt"

// Selection tracks which installer steps are toggled on.
// Not safe for concurrent use; the UI owns it from a single goroutine.
type Selection struct {
	selected map[int]bool
}

// NewSelection returns a selection with every step off.
func NewSelection() *Selection {
	return &Selection{selected: make(map[int]bool)}
}

// Toggle flips one step and returns its new state.
// Unknown step IDs are rejected so stray keys cannot select ghosts.
func (s *Selection) Toggle(id int) (bool, error) {
	if id < 1 || id > StepCount() {
		return false, fmt.Errorf("no such step: %d", id)
	}
	s.selected[id] = !s.selected[id]
	return s.selected[id], nil
}

// SelectAll turns every step on.
func (s *Selection) SelectAll() {
	for _, step := range Steps() {
		s.selected[step.ID] = true
	}
}

// DeselectAll turns every step off.
func (s *Selection) DeselectAll() {
	s.selected = make(map[int]bool)
}

// IsSelected reports whether the step is toggled on.
func (s *Selection) IsSelected(id int) bool {
	return s.selected[id]
}

// Count returns how many steps are toggled on.
func (s *Selection) Count() int {
	n := 0
	for _, on := range s.selected {
		if on {
			n++
		}
	}
	return n
}

// Map returns a copy of the selection state for persistence.
func (s *Selection) Map() map[int]bool {
	out := make(map[int]bool, len(s.selected))
	for id, on := range s.selected {
		if on {
			out[id] = true
		}
	}
	return out
}

// SetFrom replaces the selection with previously persisted state, dropping
// step IDs that no longer exist.
func (s *Selection) SetFrom(saved map[int]bool) {
	s.selected = make(map[int]bool)
	for id, on := range saved {
		if on && id >= 1 && id <= StepCount() {
			s.selected[id] = true
		}
	}
}
