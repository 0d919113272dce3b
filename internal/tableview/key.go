// Package tableview models console tables as explicit state: cell values
// keyed by (page, view, row, field), per-view selections, and the button
// rules that react to them.
package tableview

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var ErrBadKey = errors.New("malformed table field name")

type Key struct {
	Page  string
	View  string
	Row   int
	Field string
}

// String renders the legacy flat form field name, page.view[row].field.
func (k Key) String() string {
	return fmt.Sprintf("%s.%s[%d].%s", k.Page, k.View, k.Row, k.Field)
}

// ParseKey is the inverse of Key.String.
func ParseKey(name string) (Key, error) {
	open := strings.LastIndex(name, "[")
	end := strings.LastIndex(name, "].")
	if open <= 0 || end < open {
		return Key{}, fmt.Errorf("%w: %q", ErrBadKey, name)
	}
	prefix, rowText, field := name[:open], name[open+1:end], name[end+2:]
	page, view, ok := strings.Cut(prefix, ".")
	if !ok || page == "" || view == "" || field == "" {
		return Key{}, fmt.Errorf("%w: %q", ErrBadKey, name)
	}
	row, err := strconv.Atoi(rowText)
	if err != nil || row < 0 {
		return Key{}, fmt.Errorf("%w: %q", ErrBadKey, name)
	}
	return Key{Page: page, View: view, Row: row, Field: field}, nil
}

// Table holds cell values for any number of page views.
type Table struct {
	mu     sync.RWMutex
	values map[Key]string
}

func NewTable() *Table {
	return &Table{values: make(map[Key]string)}
}

func (t *Table) Set(k Key, v string) {
	t.mu.Lock()
	t.values[k] = v
	t.mu.Unlock()
}

func (t *Table) Get(k Key) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.values[k]
	return v, ok
}

// Rows returns the sorted row indexes present for a page view.
func (t *Table) Rows(page, view string) []int {
	t.mu.RLock()
	seen := map[int]struct{}{}
	for k := range t.values {
		if k.Page == page && k.View == view {
			seen[k.Row] = struct{}{}
		}
	}
	t.mu.RUnlock()

	rows := make([]int, 0, len(seen))
	for r := range seen {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

// Column collects one field across the given rows, skipping missing cells.
func (t *Table) Column(page, view, field string, rows []int) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if v, ok := t.Get(Key{Page: page, View: view, Row: r, Field: field}); ok {
			out = append(out, v)
		}
	}
	return out
}

// LoadForm fills the table from flat form values, ignoring names that are
// not table cells.
func (t *Table) LoadForm(fields map[string]string) int {
	n := 0
	for name, v := range fields {
		k, err := ParseKey(name)
		if err != nil {
			continue
		}
		t.Set(k, v)
		n++
	}
	return n
}
