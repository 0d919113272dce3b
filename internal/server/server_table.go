package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/samqfs/samqfsui/internal/popup"
	"github.com/samqfs/samqfsui/internal/protocol"
	"github.com/samqfs/samqfsui/internal/server/httpx"
	"github.com/samqfs/samqfsui/internal/tableview"
)

// tableButtonsHandler evaluates a table's button rules against the posted
// form fields and selection, so pages no longer derive button state from
// their own globals.
func (s *consoleServer) tableButtonsHandler(w http.ResponseWriter, r *http.Request) {
	var req protocol.TableButtonsRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page, view := strings.TrimSpace(req.Page), strings.TrimSpace(req.View)
	if page == "" || view == "" {
		http.Error(w, "page and view are required", http.StatusBadRequest)
		return
	}
	rules, err := tableRules(req.Rules)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tbl := tableview.NewTable()
	tbl.LoadForm(req.Fields)
	sel := tableview.NewSelection(tableview.ParseSelectionMode(req.SelectionMode))
	for _, row := range req.Selected {
		if row < 0 {
			http.Error(w, fmt.Sprintf("invalid selected row %d", row), http.StatusBadRequest)
			return
		}
		sel.Select(row)
	}
	v := &tableview.View{Page: page, View: view, Table: tbl, Selection: sel, Rules: rules}

	perms := map[string]bool{}
	for name, val := range tableview.ParsePairs(req.Permissions) {
		perms[name] = strings.EqualFold(strings.TrimSpace(val), "true")
	}

	resp := protocol.TableButtonsResponse{
		Buttons:  v.Buttons(perms),
		Selected: sel.Selected(),
	}
	if field := strings.TrimSpace(req.ValueField); field != "" {
		resp.Values = v.SelectedValues(field)
		resp.Payload = popup.JoinPayload(resp.Values, tableview.DelimRecord)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func tableRules(in []protocol.TableButtonRule) ([]tableview.ButtonRule, error) {
	out := make([]tableview.ButtonRule, 0, len(in))
	for _, rule := range in {
		button := strings.TrimSpace(rule.Button)
		if button == "" {
			return nil, errors.New("button rule without a button name")
		}
		needs, ok := tableview.ParseNeeds(rule.Needs)
		if !ok {
			return nil, fmt.Errorf("button %q: unknown needs %q", button, rule.Needs)
		}
		out = append(out, tableview.ButtonRule{
			Button:     button,
			Needs:      needs,
			Permission: strings.TrimSpace(rule.Permission),
			RowFlag:    strings.TrimSpace(rule.RowFlag),
		})
	}
	return out, nil
}
