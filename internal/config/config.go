package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/samqfs/samqfsui/internal/popup"
)

const (
	DefaultAppRoot      = "/samqfsui"
	DefaultListenAddr   = ":8112"
	DefaultDBPath       = "samqfsui.db"
	DefaultPollInterval = time.Second
)

type File struct {
	Version int     `yaml:"version" json:"version"`
	Console Console `yaml:"console" json:"console"`
	Popup   Popup   `yaml:"popup" json:"popup"`
	Status  Status  `yaml:"status" json:"status"`
	MDNS    MDNS    `yaml:"mdns" json:"mdns"`
}

type Console struct {
	AppRoot       string `yaml:"app_root" json:"app_root"`
	DefaultServer string `yaml:"default_server,omitempty" json:"default_server,omitempty"`
	ListenAddr    string `yaml:"listen_addr" json:"listen_addr"`
	GRPCAddr      string `yaml:"grpc_addr,omitempty" json:"grpc_addr,omitempty"`
	DBPath        string `yaml:"db_path" json:"db_path"`
}

type Popup struct {
	// AllowedPaths are doublestar patterns matched against popup target
	// paths. An empty list allows every path.
	AllowedPaths []string     `yaml:"allowed_paths,omitempty" json:"allowed_paths,omitempty"`
	Screen       popup.Screen `yaml:"screen" json:"screen"`
}

type Status struct {
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval"`
}

type MDNS struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Instance string `yaml:"instance,omitempty" json:"instance,omitempty"`
}

func Default() File {
	return File{
		Version: 1,
		Console: Console{
			AppRoot:    DefaultAppRoot,
			ListenAddr: DefaultListenAddr,
			DBPath:     DefaultDBPath,
		},
		Popup: Popup{
			Screen: popup.Screen{AvailWidth: 1280, AvailHeight: 1024},
		},
		Status: Status{PollInterval: DefaultPollInterval},
		MDNS:   MDNS{Enabled: true},
	}
}

func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config file %q: %w", path, err)
	}

	return Parse(data, path)
}

// Parse decodes data on top of Default, so omitted keys keep their defaults.
func Parse(data []byte, source string) (File, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse YAML in %q: %w", source, err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("invalid config in %q: %s", source, strings.Join(errs, "; "))
	}
	return cfg, nil
}

func (cfg File) Validate() []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported config version %d", cfg.Version))
	}
	root := cfg.Console.AppRoot
	if root != "" && (!strings.HasPrefix(root, "/") || strings.HasSuffix(root, "/")) {
		errs = append(errs, "console.app_root must start with / and not end with /")
	}
	if strings.TrimSpace(cfg.Console.ListenAddr) == "" {
		errs = append(errs, "console.listen_addr is required")
	}
	if strings.TrimSpace(cfg.Console.DBPath) == "" {
		errs = append(errs, "console.db_path is required")
	}
	if cfg.Console.GRPCAddr != "" && cfg.Console.GRPCAddr == cfg.Console.ListenAddr {
		errs = append(errs, "console.grpc_addr must differ from console.listen_addr")
	}

	for i, pattern := range cfg.Popup.AllowedPaths {
		if !strings.HasPrefix(pattern, "/") {
			errs = append(errs, fmt.Sprintf("popup.allowed_paths[%d] must start with /", i))
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Sprintf("popup.allowed_paths[%d] invalid pattern %q", i, pattern))
		}
	}
	if cfg.Popup.Screen.AvailWidth < 0 || cfg.Popup.Screen.AvailHeight < 0 {
		errs = append(errs, "popup.screen dimensions must be >= 0")
	}

	if cfg.Status.PollInterval <= 0 {
		errs = append(errs, "status.poll_interval must be > 0")
	}

	return errs
}

// AllowsPopupPath reports whether target may be opened as a popup. Targets
// must be absolute and already clean, also after percent-decoding, so dot
// segments cannot climb out of an allowed tree.
func (p Popup) AllowsPopupPath(target string) bool {
	if !isCleanPopupPath(target) {
		return false
	}
	if len(p.AllowedPaths) == 0 {
		return true
	}
	for _, pattern := range p.AllowedPaths {
		if ok, err := doublestar.Match(pattern, target); err == nil && ok {
			return true
		}
	}
	return false
}

func isCleanPopupPath(target string) bool {
	decoded, err := url.PathUnescape(target)
	if err != nil {
		return false
	}
	for _, p := range []string{target, decoded} {
		if !strings.HasPrefix(p, "/") || path.Clean(p) != p {
			return false
		}
	}
	return true
}
