package popup

import (
	"errors"
	"sync"
)

type State int

const (
	StateRequested State = iota
	StateOpen
	StateReturning
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateRequested:
		return "requested"
	case StateOpen:
		return "open"
	case StateReturning:
		return "returning"
	default:
		return "closed"
	}
}

var (
	ErrClosed    = errors.New("popup window is closed")
	ErrReturning = errors.New("popup is already returning its result")
)

// Handle tracks one popup window. A closed handle stays closed; callers must
// tolerate the window having been dismissed through browser chrome.
type Handle struct {
	mu         sync.Mutex
	plan       LaunchPlan
	window     Window
	opener     Opener
	openerForm string
	state      State
	submitted  bool
}

func newHandle(plan LaunchPlan, win Window, opener Opener) *Handle {
	h := &Handle{plan: plan, window: win, opener: opener, state: StateOpen}
	if opener != nil {
		h.openerForm = opener.FormName()
	}
	return h
}

func (h *Handle) replan(plan LaunchPlan) {
	h.mu.Lock()
	h.plan = plan
	h.mu.Unlock()
}

func (h *Handle) Plan() LaunchPlan {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.plan
}

func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.syncClosedLocked()
	return h.state
}

func (h *Handle) Focus() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.syncClosedLocked()
	if h.state == StateClosed {
		return ErrClosed
	}
	return h.window.Focus()
}

// MarkClosed records that the user closed the window without returning.
func (h *Handle) MarkClosed() {
	h.mu.Lock()
	h.state = StateClosed
	h.mu.Unlock()
}

func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closeLocked()
}

func (h *Handle) closeLocked() error {
	if h.state == StateClosed {
		return nil
	}
	h.state = StateClosed
	if h.window.Closed() {
		return nil
	}
	return h.window.Close()
}

func (h *Handle) syncClosedLocked() {
	if h.state != StateClosed && h.window != nil && h.window.Closed() {
		h.state = StateClosed
	}
}
