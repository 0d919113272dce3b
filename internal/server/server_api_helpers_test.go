package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/samqfs/samqfsui/internal/config"
	"github.com/samqfs/samqfsui/internal/popup"
	"github.com/samqfs/samqfsui/internal/store"
)

func testConfig() config.File {
	cfg := config.Default()
	cfg.Console.AppRoot = "/app"
	cfg.Console.DefaultServer = "srv1"
	cfg.Popup.AllowedPaths = []string{"/archive/**", "/fs/*"}
	cfg.Popup.Screen = popup.Screen{AvailWidth: 1600, AvailHeight: 1000}
	cfg.MDNS.Enabled = false
	return cfg
}

func newTestConsole(t *testing.T) (*httptest.Server, *consoleServer) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "samqfsui.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	s := newConsoleServer(testConfig(), db)
	ts := httptest.NewServer(buildRouter(s))
	t.Cleanup(ts.Close)
	return ts, s
}

func mustJSONRequest(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request JSON: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func decodeJSONBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return string(data)
}
