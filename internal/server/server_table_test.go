package server

import (
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/samqfs/samqfsui/internal/protocol"
)

func vsnTableRequest(selected []int) protocol.TableButtonsRequest {
	return protocol.TableButtonsRequest{
		Page:     "VSNSummary",
		View:     "VSNSummaryView",
		Selected: selected,
		Fields: map[string]string{
			"VSNSummary.VSNSummaryView[0].name":      "VSN001",
			"VSNSummary.VSNSummaryView[0].deletable": "true",
			"VSNSummary.VSNSummaryView[1].name":      "VSN002",
			"VSNSummary.VSNSummaryView[1].deletable": "false",
			"jato.pageSession":                       "tok",
		},
		Permissions: "config=true&media=false",
		Rules: []protocol.TableButtonRule{
			{Button: "New", Permission: "config"},
			{Button: "Edit", Needs: "one", Permission: "config"},
			{Button: "Delete", Needs: "one_or_more", Permission: "config", RowFlag: "deletable"},
			{Button: "Label", Needs: "one", Permission: "media"},
		},
		ValueField: "name",
	}
}

func TestTableButtonsEndpoint(t *testing.T) {
	ts, _ := newTestConsole(t)
	url := ts.URL + "/api/v1/table/buttons"

	resp := mustJSONRequest(t, ts.Client(), http.MethodPost, url, vsnTableRequest([]int{0}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("buttons: got %d body=%s", resp.StatusCode, readBody(t, resp))
	}
	var out protocol.TableButtonsResponse
	decodeJSONBody(t, resp, &out)
	want := map[string]bool{"New": true, "Edit": true, "Delete": true, "Label": false}
	if !reflect.DeepEqual(out.Buttons, want) {
		t.Fatalf("one deletable row: got %v want %v", out.Buttons, want)
	}
	if out.Payload != "VSN001" || !reflect.DeepEqual(out.Selected, []int{0}) {
		t.Fatalf("selection values: %+v", out)
	}

	resp = mustJSONRequest(t, ts.Client(), http.MethodPost, url, vsnTableRequest([]int{0, 1}))
	out = protocol.TableButtonsResponse{}
	decodeJSONBody(t, resp, &out)
	if out.Buttons["Delete"] || out.Buttons["Edit"] || !out.Buttons["New"] {
		t.Fatalf("mixed rows: got %v", out.Buttons)
	}
	if out.Payload != "VSN001;VSN002" {
		t.Fatalf("payload: got %q", out.Payload)
	}

	single := vsnTableRequest([]int{0, 1})
	single.SelectionMode = "single"
	resp = mustJSONRequest(t, ts.Client(), http.MethodPost, url, single)
	out = protocol.TableButtonsResponse{}
	decodeJSONBody(t, resp, &out)
	if !reflect.DeepEqual(out.Selected, []int{1}) || !out.Buttons["Edit"] {
		t.Fatalf("single select keeps the last row: %+v", out)
	}
}

func TestTableButtonsRejectsBadRequests(t *testing.T) {
	ts, _ := newTestConsole(t)
	url := ts.URL + "/api/v1/table/buttons"

	noView := vsnTableRequest(nil)
	noView.View = ""
	bad := vsnTableRequest(nil)
	bad.Rules = append(bad.Rules, protocol.TableButtonRule{Button: "Odd", Needs: "two"})
	negative := vsnTableRequest([]int{-1})

	for name, req := range map[string]protocol.TableButtonsRequest{
		"missing view":  noView,
		"unknown needs": bad,
		"negative row":  negative,
	} {
		resp := mustJSONRequest(t, ts.Client(), http.MethodPost, url, req)
		if body := readBody(t, resp); resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: got %d body=%s", name, resp.StatusCode, body)
		}
	}
}

func TestCreateOperationAcceptsPackedHostList(t *testing.T) {
	ts, s := newTestConsole(t)

	resp := mustJSONRequest(t, ts.Client(), http.MethodPost, ts.URL+"/api/v1/operations", protocol.CreateOperationRequest{
		Kind:     "mount",
		Hosts:    []string{"mds1"},
		HostList: "mds2;client1,client2;;mds1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got %d body=%s", resp.StatusCode, readBody(t, resp))
	}
	var created protocol.CreateOperationResponse
	decodeJSONBody(t, resp, &created)

	sum, err := s.db.OperationSummary(t.Context(), created.Operation.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	var names []string
	for _, h := range sum.Hosts {
		names = append(names, h.Name)
	}
	if strings.Join(names, ",") != "mds1,mds2,client1,client2" {
		t.Fatalf("hosts: got %v", names)
	}
}

func TestOperationMetricsCountAppliedResults(t *testing.T) {
	ts, _ := newTestConsole(t)
	client := ts.Client()

	resp := mustJSONRequest(t, client, http.MethodPost, ts.URL+"/api/v1/operations", protocol.CreateOperationRequest{
		Kind:  "client-chosen-kind-42",
		Hosts: []string{"srv1"},
	})
	var created protocol.CreateOperationResponse
	decodeJSONBody(t, resp, &created)
	base := ts.URL + "/api/v1/operations/" + created.Operation.ID

	for _, status := range []string{"succeeded", "failed"} {
		resp = mustJSONRequest(t, client, http.MethodPost, base+"/hosts", protocol.RecordHostResultRequest{Host: "srv1", Status: status})
		if body := readBody(t, resp); resp.StatusCode != http.StatusOK {
			t.Fatalf("record %s: got %d body=%s", status, resp.StatusCode, body)
		}
	}

	resp = mustJSONRequest(t, client, http.MethodGet, ts.URL+"/metrics", nil)
	body := readBody(t, resp)
	for _, want := range []string{
		"samqfsui_operations_created_total 1",
		`samqfsui_operations_host_results_total{status="succeeded"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %q:\n%s", want, body)
		}
	}
	for _, unwanted := range []string{`host_results_total{status="failed"}`, "client-chosen-kind-42"} {
		if strings.Contains(body, unwanted) {
			t.Fatalf("metrics should not contain %q:\n%s", unwanted, body)
		}
	}
}
