package tableview

import (
	"slices"
	"strings"
	"sync"
)

type SelectionMode int

const (
	SingleSelect SelectionMode = iota
	MultiSelect
)

// Selection is the selection state owned by one table view.
type Selection struct {
	mode SelectionMode

	mu   sync.Mutex
	rows map[int]struct{}
}

func NewSelection(mode SelectionMode) *Selection {
	return &Selection{mode: mode, rows: make(map[int]struct{})}
}

func (s *Selection) Mode() SelectionMode { return s.mode }

// ParseSelectionMode maps "single" and "multi" to a mode; anything else is
// MultiSelect.
func ParseSelectionMode(name string) SelectionMode {
	if strings.EqualFold(strings.TrimSpace(name), "single") {
		return SingleSelect
	}
	return MultiSelect
}

func (s *Selection) Select(row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == SingleSelect {
		clear(s.rows)
	}
	s.rows[row] = struct{}{}
}

func (s *Selection) Deselect(row int) {
	s.mu.Lock()
	delete(s.rows, row)
	s.mu.Unlock()
}

// Toggle flips row and reports whether it is now selected.
func (s *Selection) Toggle(row int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, on := s.rows[row]; on {
		delete(s.rows, row)
		return false
	}
	if s.mode == SingleSelect {
		clear(s.rows)
	}
	s.rows[row] = struct{}{}
	return true
}

func (s *Selection) Clear() {
	s.mu.Lock()
	clear(s.rows)
	s.mu.Unlock()
}

func (s *Selection) Selected() []int {
	s.mu.Lock()
	out := make([]int, 0, len(s.rows))
	for r := range s.rows {
		out = append(out, r)
	}
	s.mu.Unlock()
	slices.Sort(out)
	return out
}

func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// First returns the lowest selected row, or -1.
func (s *Selection) First() int {
	sel := s.Selected()
	if len(sel) == 0 {
		return -1
	}
	return sel[0]
}
