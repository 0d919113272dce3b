package main

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samqfs/samqfsui/internal/protocol"
	"github.com/samqfs/samqfsui/internal/testutil"
	"github.com/samqfs/samqfsui/internal/version"
)

func TestInitLoggingLevelFromEnv(t *testing.T) {
	cases := []struct {
		name    string
		env     string
		debugOn bool
		infoOn  bool
		warnOn  bool
	}{
		{name: "debug", env: "debug", debugOn: true, infoOn: true, warnOn: true},
		{name: "warn", env: "warn", debugOn: false, infoOn: false, warnOn: true},
		{name: "default", env: "", debugOn: false, infoOn: true, warnOn: true},
	}

	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SAMQFSUI_LOG_LEVEL", tc.env)
			initLogging()
			h := slog.Default().Handler()
			ctx := context.Background()
			if got := h.Enabled(ctx, slog.LevelDebug); got != tc.debugOn {
				t.Fatalf("debug enabled=%v want %v", got, tc.debugOn)
			}
			if got := h.Enabled(ctx, slog.LevelInfo); got != tc.infoOn {
				t.Fatalf("info enabled=%v want %v", got, tc.infoOn)
			}
			if got := h.Enabled(ctx, slog.LevelWarn); got != tc.warnOn {
				t.Fatalf("warn enabled=%v want %v", got, tc.warnOn)
			}
		})
	}
}

func TestUsageWritesExpectedText(t *testing.T) {
	out := captureStderr(t, usage)
	if !strings.Contains(out, "samqfsui - SAM-QFS console server") {
		t.Fatalf("missing usage title, got: %q", out)
	}
	if !strings.Contains(out, "server") || !strings.Contains(out, "status") {
		t.Fatalf("missing commands in usage: %q", out)
	}
}

func TestParseStatusArgs(t *testing.T) {
	t.Cleanup(testutil.IsolateConsoleEnv())
	if _, err := parseStatusArgs(nil); err == nil {
		t.Fatal("expected error without -operation")
	}
	opts, err := parseStatusArgs([]string{"-operation", "op1", "-url", "http://h:1/"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.interval != time.Second || opts.serverURL != "http://h:1" {
		t.Fatalf("defaults: %+v", opts)
	}
	opts, err = parseStatusArgs([]string{"-operation", "op1", "-interval", "3s"})
	if err != nil || opts.interval != 3*time.Second {
		t.Fatalf("interval flag: %+v %v", opts, err)
	}
}

func newFakeConsole(t *testing.T, serverVersion string, summaries []protocol.HostStatusSummary) *httptest.Server {
	t.Helper()
	var calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/server-info", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(protocol.ServerInfo{Name: "samqfsui", APIVersion: version.APIVersion, Version: serverVersion})
	})
	mux.HandleFunc("/api/v1/operations/op1/status", func(w http.ResponseWriter, r *http.Request) {
		i := int(calls.Add(1)) - 1
		if i >= len(summaries) {
			i = len(summaries) - 1
		}
		w.Header().Set("Content-Type", "application/xml")
		_ = xml.NewEncoder(w).Encode(summaries[i])
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestRunStatusOnce(t *testing.T) {
	ts := newFakeConsole(t, "dev", []protocol.HostStatusSummary{
		protocol.Tally("op1", []protocol.HostStatus{{Name: "srv1", Status: "running"}}),
	})
	var out bytes.Buffer
	if err := runStatus(context.Background(), []string{"-url", ts.URL, "-operation", "op1", "-once"}, &out); err != nil {
		t.Fatalf("run status: %v", err)
	}
	if !strings.Contains(out.String(), "operation op1: total=1 succeeded=0 failed=0 pending=1") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunStatusPollsUntilDone(t *testing.T) {
	ts := newFakeConsole(t, "dev", []protocol.HostStatusSummary{
		protocol.Tally("op1", []protocol.HostStatus{{Name: "a", Status: "running"}, {Name: "b", Status: "pending"}}),
		protocol.Tally("op1", []protocol.HostStatus{{Name: "a", Status: "succeeded"}, {Name: "b", Status: "failed", Error: "busy"}}),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	err := runStatus(ctx, []string{"-url", ts.URL, "-operation", "op1", "-interval", "10ms"}, &out)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 hosts failed") {
		t.Fatalf("expected failure summary error, got %v", err)
	}
	if !strings.Contains(out.String(), "busy") {
		t.Fatalf("host error not printed: %q", out.String())
	}
}

func TestRunStatusRejectsIncompatibleServer(t *testing.T) {
	orig := version.Version
	t.Cleanup(func() { version.Version = orig })
	version.Version = "v1.4.0"

	ts := newFakeConsole(t, "v2.0.0", []protocol.HostStatusSummary{{}})
	err := runStatus(context.Background(), []string{"-url", ts.URL, "-operation", "op1", "-once"}, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "not compatible") {
		t.Fatalf("expected compatibility error, got %v", err)
	}
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stderr = w
	done := make(chan string, 1)
	go func() {
		raw, _ := io.ReadAll(r)
		done <- string(raw)
	}()
	fn()
	_ = w.Close()
	os.Stderr = orig
	return <-done
}
