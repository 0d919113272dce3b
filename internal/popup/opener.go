package popup

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// PageSessionField is the opener field whose value must survive every
// resubmission unchanged.
const PageSessionField = "jato.pageSession"

var ErrOpenerGone = errors.New("opener page is no longer available")

// ReturnMessage is what a popup posts back to its opener when it finishes.
type ReturnMessage struct {
	FormName    string `json:"form_name"`
	TargetField string `json:"target_field,omitempty"`
	Payload     string `json:"payload"`
	Command     string `json:"command"`
}

// Opener is the page side of the return channel.
type Opener interface {
	// FormName reports the form currently loaded, or "" once the opener has
	// been closed.
	FormName() string
	Deliver(msg ReturnMessage) (Delivery, error)
}

type Delivery struct {
	Written   bool
	Submitted bool
}

type ReturnOutcome struct {
	Written   bool
	Submitted bool
	Stale     bool
	Err       error
}

// CloseAndReturn hands payload to the handle's opener and closes the popup.
// The opener is resubmitted at most once per handle, and only while it still
// shows the form it had when the popup was opened. The popup is closed in
// every case. The handle is not locked while the opener runs, so a Submit
// hook may use the handle.
func CloseAndReturn(h *Handle, targetField, refreshCommand, payload string) (out ReturnOutcome) {
	if h == nil {
		return ReturnOutcome{Err: ErrClosed}
	}
	h.mu.Lock()
	h.syncClosedLocked()
	switch h.state {
	case StateClosed:
		h.mu.Unlock()
		return ReturnOutcome{Err: ErrClosed}
	case StateReturning:
		h.mu.Unlock()
		return ReturnOutcome{Err: ErrReturning}
	}
	h.state = StateReturning
	opener, openerForm := h.opener, h.openerForm
	first := !h.submitted
	h.submitted = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		err := h.closeLocked()
		h.mu.Unlock()
		if err != nil && out.Err == nil {
			out.Err = fmt.Errorf("close popup: %w", err)
		}
	}()

	if opener == nil {
		out.Stale = true
		return out
	}
	if current := opener.FormName(); current == "" || current != openerForm {
		out.Stale = true
		return out
	}
	if !first {
		return out
	}

	d, err := opener.Deliver(ReturnMessage{
		FormName:    openerForm,
		TargetField: targetField,
		Payload:     payload,
		Command:     refreshCommand,
	})
	out.Written = d.Written
	out.Submitted = d.Submitted
	if err != nil {
		out.Err = fmt.Errorf("deliver popup result: %w", err)
	}
	return out
}

type Submission struct {
	FormName string
	Action   string
	Fields   map[string]string
}

// OpenerForm is an in-process model of an opener page's form. Submit is
// called with the rewritten action whenever the popup returns.
type OpenerForm struct {
	Submit func(Submission) error

	mu     sync.Mutex
	name   string
	action string
	fields map[string]string
	closed bool
}

func NewOpenerForm(name, action string, fields map[string]string) *OpenerForm {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return &OpenerForm{name: name, action: action, fields: cp}
}

func (f *OpenerForm) FormName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ""
	}
	return f.name
}

// Navigate replaces the loaded form, as when the opener moves to another page.
func (f *OpenerForm) Navigate(name, action string, fields map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = name
	f.action = action
	f.fields = make(map[string]string, len(fields))
	for k, v := range fields {
		f.fields[k] = v
	}
}

func (f *OpenerForm) CloseWindow() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *OpenerForm) Field(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.fields[name]
	return v, ok
}

func (f *OpenerForm) Action() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.action
}

func (f *OpenerForm) Deliver(msg ReturnMessage) (Delivery, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Delivery{}, ErrOpenerGone
	}
	if msg.FormName != f.name {
		f.mu.Unlock()
		return Delivery{}, nil
	}

	var d Delivery
	if msg.TargetField != "" {
		if _, ok := f.fields[msg.TargetField]; ok {
			f.fields[msg.TargetField] = msg.Payload
			d.Written = true
		}
	}
	f.action = RefreshAction(f.action, msg.Command, f.fields[PageSessionField])

	sub := Submission{FormName: f.name, Action: f.action, Fields: make(map[string]string, len(f.fields))}
	for k, v := range f.fields {
		sub.Fields[k] = v
	}
	submit := f.Submit
	f.mu.Unlock()

	if submit != nil {
		if err := submit(sub); err != nil {
			return d, fmt.Errorf("submit %s: %w", sub.FormName, err)
		}
	}
	d.Submitted = true
	return d, nil
}

// RefreshAction rewrites a form action so the server runs command and keeps
// the page session token.
func RefreshAction(action, command, pageSession string) string {
	base, _, _ := strings.Cut(action, "?")
	var params []string
	if command != "" {
		params = append(params, command)
	}
	if pageSession != "" {
		params = append(params, PageSessionField+"="+pageSession)
	}
	if len(params) == 0 {
		return base
	}
	return base + "?" + strings.Join(params, "&")
}
