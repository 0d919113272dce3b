package tableview

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/samqfs/samqfsui/internal/popup"
)

func TestKeyRoundTrip(t *testing.T) {
	k := Key{Page: "VSNSummary", View: "VSNSummaryView.TiledView", Row: 12, Field: "VSNHidden"}
	name := k.String()
	if name != "VSNSummary.VSNSummaryView.TiledView[12].VSNHidden" {
		t.Fatalf("key string: got %q", name)
	}
	back, err := ParseKey(name)
	if err != nil {
		t.Fatalf("parse key: %v", err)
	}
	if back != k {
		t.Fatalf("round trip: got %+v want %+v", back, k)
	}
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	for _, name := range []string{"", "plain", "page[1].f", "p.v[x].f", "p.v[1]", "p.v[-1].f"} {
		if _, err := ParseKey(name); !errors.Is(err, ErrBadKey) {
			t.Fatalf("ParseKey(%q): expected ErrBadKey, got %v", name, err)
		}
	}
}

func TestTableLoadFormAndRows(t *testing.T) {
	tbl := NewTable()
	n := tbl.LoadForm(map[string]string{
		"P.V[0].name":      "vsn0",
		"P.V[2].name":      "vsn2",
		"P.V[2].canDelete": "true",
		"jato.pageSession": "tok",
	})
	if n != 3 {
		t.Fatalf("loaded cells: got %d want 3", n)
	}
	if got := tbl.Rows("P", "V"); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("rows: got %v", got)
	}
	if got := tbl.Column("P", "V", "name", []int{0, 1, 2}); !reflect.DeepEqual(got, []string{"vsn0", "vsn2"}) {
		t.Fatalf("column: got %v", got)
	}
}

func TestSelectionModes(t *testing.T) {
	single := NewSelection(SingleSelect)
	single.Select(1)
	single.Select(4)
	if got := single.Selected(); !reflect.DeepEqual(got, []int{4}) {
		t.Fatalf("single select: got %v", got)
	}

	multi := NewSelection(MultiSelect)
	multi.Toggle(3)
	multi.Toggle(1)
	if multi.Toggle(3) {
		t.Fatal("second toggle should deselect")
	}
	if got := multi.Selected(); !reflect.DeepEqual(got, []int{1}) || multi.First() != 1 {
		t.Fatalf("multi select: got %v", got)
	}
	multi.Clear()
	if multi.Count() != 0 || multi.First() != -1 {
		t.Fatal("clear should empty the selection")
	}
}

func TestToggleConcurrent(t *testing.T) {
	sel := NewSelection(MultiSelect)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sel.Toggle(7)
		}()
	}
	wg.Wait()
	if sel.Count() != 0 {
		t.Fatalf("an even number of toggles must leave the row unselected, got %v", sel.Selected())
	}

	single := NewSelection(SingleSelect)
	single.Toggle(1)
	single.Toggle(2)
	if got := single.Selected(); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("single-select toggle: got %v", got)
	}
	if ParseSelectionMode("Single") != SingleSelect || ParseSelectionMode("") != MultiSelect {
		t.Fatal("selection mode names")
	}
}

func TestParseNeeds(t *testing.T) {
	for _, n := range []Needs{NeedsNothing, NeedsExactlyOne, NeedsOneOrMore} {
		if got, ok := ParseNeeds(n.String()); !ok || got != n {
			t.Fatalf("ParseNeeds(%q): got %s ok=%v", n.String(), got, ok)
		}
	}
	if got, ok := ParseNeeds(""); !ok || got != NeedsNothing {
		t.Fatal("empty needs should mean nothing")
	}
	if _, ok := ParseNeeds("two"); ok {
		t.Fatal("unknown needs should not parse")
	}
}

func TestSplitListsAndRecords(t *testing.T) {
	if SplitList("", DelimRecord) != nil {
		t.Fatal("empty list should split to nil")
	}
	if got := SplitList("a###b###c", DelimSection); len(got) != 3 || got[2] != "c" {
		t.Fatalf("section split: %v", got)
	}
	recs := ParseRecords("vsn1:lto:80;vsn2:lto:10;", DelimRecord, DelimColumn)
	if len(recs) != 2 || recs[1][2] != "10" {
		t.Fatalf("records: %v", recs)
	}
	pairs := ParsePairs("role=admin&server=srv1&=skip&bad")
	if len(pairs) != 2 || pairs["server"] != "srv1" {
		t.Fatalf("pairs: %v", pairs)
	}
}

func TestViewButtons(t *testing.T) {
	tbl := NewTable()
	tbl.Set(Key{"P", "V", 0, "deletable"}, "true")
	tbl.Set(Key{"P", "V", 1, "deletable"}, "false")
	v := &View{
		Page:      "P",
		View:      "V",
		Table:     tbl,
		Selection: NewSelection(MultiSelect),
		Rules: []ButtonRule{
			{Button: "New", Needs: NeedsNothing, Permission: "config"},
			{Button: "Edit", Needs: NeedsExactlyOne, Permission: "config"},
			{Button: "Delete", Needs: NeedsOneOrMore, Permission: "config", RowFlag: "deletable"},
			{Button: "Details", Needs: NeedsExactlyOne},
		},
	}
	perms := map[string]bool{"config": true}

	got := v.Buttons(perms)
	want := map[string]bool{"New": true, "Edit": false, "Delete": false, "Details": false}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("no selection: got %v want %v", got, want)
	}

	v.Selection.Select(0)
	got = v.Buttons(perms)
	want = map[string]bool{"New": true, "Edit": true, "Delete": true, "Details": true}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("one deletable row: got %v want %v", got, want)
	}

	v.Selection.Select(1)
	got = v.Buttons(perms)
	if got["Delete"] || got["Edit"] {
		t.Fatalf("non-deletable row in selection: got %v", got)
	}

	got = v.Buttons(nil)
	if got["New"] || got["Delete"] || got["Details"] {
		t.Fatalf("without permissions: got %v", got)
	}
}

func TestConfirmAndRun(t *testing.T) {
	ran := false
	d, err := ConfirmAndRun(popup.ConfirmFunc(func(string) popup.Decision { return popup.Cancelled }), "delete?", func() error {
		ran = true
		return nil
	})
	if d != popup.Cancelled || err != nil || ran {
		t.Fatalf("cancelled: d=%s err=%v ran=%v", d, err, ran)
	}
	d, err = ConfirmAndRun(popup.ConfirmFunc(func(string) popup.Decision { return popup.Confirmed }), "delete?", func() error {
		return errors.New("busy")
	})
	if d != popup.Confirmed || err == nil {
		t.Fatalf("confirmed: d=%s err=%v", d, err)
	}
}
