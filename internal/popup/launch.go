// Package popup opens secondary console windows and carries their results
// back to the page that launched them.
package popup

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
)

const (
	PopupQueryParam  = "com_sun_web_ui_popup"
	ServerQueryParam = "SERVER_NAME"
)

var (
	ErrMissingTarget     = errors.New("popup target path is required")
	ErrMissingWindowName = errors.New("popup window name is required")
	ErrBlocked           = errors.New("popup window was blocked")
)

type Request struct {
	TargetPath    string
	WindowName    string
	ServerContext string
	Preset        SizePreset
	// ExtraParams are already-escaped key=value fragments, appended verbatim.
	ExtraParams []string
	// Opener is the page that receives the popup's result, if any.
	Opener Opener
}

type Screen struct {
	AvailWidth  int `json:"avail_width"`
	AvailHeight int `json:"avail_height"`
}

type Geometry struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Left   int `json:"left"`
	Top    int `json:"top"`
}

type LaunchPlan struct {
	URL        string   `json:"url"`
	WindowName string   `json:"window_name"`
	Features   string   `json:"features"`
	Geometry   Geometry `json:"geometry"`
	Preset     string   `json:"preset"`
}

func (r Request) validate() error {
	if strings.TrimSpace(r.TargetPath) == "" {
		return ErrMissingTarget
	}
	if strings.TrimSpace(r.WindowName) == "" {
		return ErrMissingWindowName
	}
	return nil
}

func BuildURL(appRoot string, req Request) string {
	var b strings.Builder
	b.WriteString(appRoot)
	b.WriteString(req.TargetPath)
	b.WriteString("?" + PopupQueryParam + "=true&" + ServerQueryParam + "=")
	b.WriteString(req.ServerContext)
	for _, p := range req.ExtraParams {
		p = strings.TrimPrefix(p, "&")
		if p == "" {
			continue
		}
		b.WriteString("&")
		b.WriteString(p)
	}
	return b.String()
}

// Center places a window of the given size in the middle of the screen.
func Center(d Dimensions, screen Screen) Geometry {
	return Geometry{
		Width:  d.Width,
		Height: d.Height,
		Left:   max((screen.AvailWidth-d.Width)/2, 0),
		Top:    max((screen.AvailHeight-d.Height)/2, 0),
	}
}

func (g Geometry) Features() string {
	return fmt.Sprintf("height=%d,width=%d,top=%d,left=%d,scrollbars=yes,resizable=yes", g.Height, g.Width, g.Top, g.Left)
}

// Plan computes everything a browser needs to open the popup. The request's
// ServerContext must already be resolved.
func Plan(appRoot string, req Request, screen Screen) (LaunchPlan, error) {
	if err := req.validate(); err != nil {
		return LaunchPlan{}, err
	}
	geom := Center(req.Preset.Dimensions(), screen)
	return LaunchPlan{
		URL:        BuildURL(appRoot, req),
		WindowName: req.WindowName,
		Features:   geom.Features(),
		Geometry:   geom,
		Preset:     req.Preset.String(),
	}, nil
}

// Browser is the windowing environment popups are opened in.
type Browser interface {
	// OpenWindow returns nil when the window could not be created, for
	// example because a popup blocker intervened.
	OpenWindow(url, name, features string) Window
}

// The launcher matches reopened windows by identity. Windows whose dynamic
// type is not comparable never match, so every open gets a fresh handle.
type Window interface {
	Focus() error
	Close() error
	Closed() bool
}

type Launcher struct {
	AppRoot string
	Screen  Screen
	Browser Browser
	// Ambient supplies the currently managed server when a request has none.
	Ambient func() string

	mu     sync.Mutex
	byName map[string]*Handle
}

func (l *Launcher) Open(req Request) (*Handle, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ServerContext) == "" && l.Ambient != nil {
		req.ServerContext = l.Ambient()
	}
	plan, err := Plan(l.AppRoot, req, l.Screen)
	if err != nil {
		return nil, err
	}
	if l.Browser == nil {
		return nil, ErrBlocked
	}

	win := l.Browser.OpenWindow(plan.URL, plan.WindowName, plan.Features)
	if win == nil {
		slog.Warn("popup blocked", "window", plan.WindowName, "url", plan.URL)
		return nil, ErrBlocked
	}

	l.mu.Lock()
	if l.byName == nil {
		l.byName = make(map[string]*Handle)
	}
	h, ok := l.byName[plan.WindowName]
	if !ok || h.State() == StateClosed || !sameWindow(h.window, win) {
		h = newHandle(plan, win, req.Opener)
		l.byName[plan.WindowName] = h
	} else {
		h.replan(plan)
	}
	l.mu.Unlock()

	if err := h.Focus(); err != nil {
		slog.Debug("popup focus failed", "window", plan.WindowName, "error", err)
	}
	return h, nil
}

func sameWindow(a, b Window) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Lookup returns the live handle for a window name, if any.
func (l *Launcher) Lookup(windowName string) (*Handle, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.byName[windowName]
	if !ok || h.State() == StateClosed {
		return nil, false
	}
	return h, true
}
