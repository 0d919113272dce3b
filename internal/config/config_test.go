package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
version: 1
console:
  app_root: /app
  default_server: srv1
  listen_addr: ":9000"
  grpc_addr: ":9001"
  db_path: /var/lib/samqfsui/state.db
popup:
  allowed_paths:
    - /archive/**
    - /fs/*Popup
  screen:
    avail_width: 1600
    avail_height: 900
status:
  poll_interval: 3s
mdns:
  enabled: false
`), "test-valid")
	if err != nil {
		t.Fatalf("parse valid config: %v", err)
	}
	if cfg.Console.AppRoot != "/app" || cfg.Console.DefaultServer != "srv1" {
		t.Fatalf("unexpected console: %+v", cfg.Console)
	}
	if cfg.Status.PollInterval != 3*time.Second {
		t.Fatalf("poll interval: got %s", cfg.Status.PollInterval)
	}
	if cfg.MDNS.Enabled {
		t.Fatal("mdns should be disabled")
	}
	if cfg.Popup.Screen.AvailWidth != 1600 {
		t.Fatalf("screen: %+v", cfg.Popup.Screen)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("version: 1\n"), "test-defaults")
	if err != nil {
		t.Fatalf("parse minimal config: %v", err)
	}
	if cfg.Console.AppRoot != DefaultAppRoot || cfg.Console.ListenAddr != DefaultListenAddr {
		t.Fatalf("defaults not applied: %+v", cfg.Console)
	}
	if cfg.Status.PollInterval != DefaultPollInterval {
		t.Fatalf("default poll interval: got %s", cfg.Status.PollInterval)
	}
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	_, err := Parse([]byte("version: 2\n"), "test-version")
	if err == nil || !strings.Contains(err.Error(), "unsupported config version") {
		t.Fatalf("expected unsupported version error, got: %v", err)
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte("version: 1\nconsole:\n  colour: blue\n"), "test-unknown")
	if err == nil || !strings.Contains(err.Error(), "parse YAML") {
		t.Fatalf("expected parse YAML error, got: %v", err)
	}
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("version: ["), "test-yaml")
	if err == nil || !strings.Contains(err.Error(), "parse YAML") {
		t.Fatalf("expected parse YAML error, got: %v", err)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Console.AppRoot = "app/"
	cfg.Console.GRPCAddr = cfg.Console.ListenAddr
	cfg.Popup.AllowedPaths = []string{"archive/**", "/fs/[a"}
	cfg.Status.PollInterval = 0
	errs := cfg.Validate()
	joined := strings.Join(errs, "\n")
	for _, want := range []string{
		"console.app_root",
		"console.grpc_addr",
		"popup.allowed_paths[0] must start with /",
		"popup.allowed_paths[1] invalid pattern",
		"status.poll_interval",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("validate errors missing %q:\n%s", want, joined)
		}
	}
}

func TestAllowsPopupPath(t *testing.T) {
	p := Popup{AllowedPaths: []string{"/archive/**", "/fs/*Popup"}}
	cases := map[string]bool{
		"/archive/NewDiskVSN":        true,
		"/archive/wizards/NewPolicy": true,
		"/fs/RestorePopup":           true,
		"/fs/nested/RestorePopup":    false,
		"/admin/ServerConfiguration": false,
	}
	for path, want := range cases {
		if got := p.AllowsPopupPath(path); got != want {
			t.Fatalf("AllowsPopupPath(%q): got %v want %v", path, got, want)
		}
	}
	if !(Popup{}).AllowsPopupPath("/anything") {
		t.Fatal("empty allow-list should allow every path")
	}
}

func TestAllowsPopupPathRejectsUncleanTargets(t *testing.T) {
	p := Popup{AllowedPaths: []string{"/archive/**"}}
	for _, target := range []string{
		"/archive/../admin/ServerConfiguration",
		"/archive/./NewDiskVSN",
		"/archive//NewDiskVSN",
		"/archive/NewDiskVSN/",
		"/archive/%2e%2e/admin/ServerConfiguration",
		"/archive/%zz",
		"archive/NewDiskVSN",
	} {
		if p.AllowsPopupPath(target) {
			t.Fatalf("AllowsPopupPath(%q): got true want false", target)
		}
	}
	if (Popup{}).AllowsPopupPath("/../etc/passwd") {
		t.Fatal("empty allow-list must still reject dot segments")
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samqfsui.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nconsole:\n  app_root: /x\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Console.AppRoot != "/x" {
		t.Fatalf("app root: got %q", cfg.Console.AppRoot)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "read config file") {
		t.Fatalf("expected read error, got %v", err)
	}
}
