package tableview

import (
	"strings"

	"github.com/samqfs/samqfsui/internal/popup"
)

type Needs int

const (
	NeedsNothing Needs = iota
	NeedsExactlyOne
	NeedsOneOrMore
)

func (n Needs) String() string {
	switch n {
	case NeedsExactlyOne:
		return "one"
	case NeedsOneOrMore:
		return "one_or_more"
	default:
		return "none"
	}
}

// ParseNeeds accepts the names produced by Needs.String. An empty name
// means NeedsNothing.
func ParseNeeds(name string) (Needs, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return NeedsNothing, true
	case "one":
		return NeedsExactlyOne, true
	case "one_or_more":
		return NeedsOneOrMore, true
	default:
		return NeedsNothing, false
	}
}

// ButtonRule enables a button based on the selection, the user's
// permissions and per-row flags the server rendered into the table.
type ButtonRule struct {
	Button string
	Needs  Needs
	// Permission, when set, must be granted to the current user.
	Permission string
	// RowFlag, when set, names a field that must read "true" on every
	// selected row.
	RowFlag string
}

type View struct {
	Page      string
	View      string
	Table     *Table
	Selection *Selection
	Rules     []ButtonRule
}

// Buttons evaluates every rule against the view's current state.
func (v *View) Buttons(perms map[string]bool) map[string]bool {
	selected := v.Selection.Selected()
	out := make(map[string]bool, len(v.Rules))
	for _, rule := range v.Rules {
		out[rule.Button] = v.enabled(rule, selected, perms)
	}
	return out
}

func (v *View) enabled(rule ButtonRule, selected []int, perms map[string]bool) bool {
	if rule.Permission != "" && !perms[rule.Permission] {
		return false
	}
	switch rule.Needs {
	case NeedsExactlyOne:
		if len(selected) != 1 {
			return false
		}
	case NeedsOneOrMore:
		if len(selected) == 0 {
			return false
		}
	}
	if rule.RowFlag == "" {
		return true
	}
	for _, row := range selected {
		val, ok := v.Table.Get(Key{Page: v.Page, View: v.View, Row: row, Field: rule.RowFlag})
		if !ok || !strings.EqualFold(strings.TrimSpace(val), "true") {
			return false
		}
	}
	return true
}

// SelectedValues returns field for each selected row, in row order.
func (v *View) SelectedValues(field string) []string {
	return v.Table.Column(v.Page, v.View, field, v.Selection.Selected())
}

// ConfirmAndRun runs action only when the confirmer agrees. A cancelled
// prompt is reported through the Decision, not as an error.
func ConfirmAndRun(c popup.Confirmer, prompt string, action func() error) (popup.Decision, error) {
	d := popup.Confirm(c, prompt)
	if d != popup.Confirmed {
		return d, nil
	}
	return d, action()
}
