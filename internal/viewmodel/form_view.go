// Package viewmodel holds a headless rendering of the registration form.
// It implements the view ports of the application package and keeps the
// rendered state so it can be served as JSON.
package viewmodel

import (
	"sync"
	"time"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/application"
)

// Notification is the last transient message shown to the user.
type Notification struct {
	Kind    application.NotificationKind `json:"kind"`
	Message string                       `json:"message"`
	At      time.Time                    `json:"at"`
}

// RecentState is what the recent records panel currently shows.
type RecentState struct {
	Items       []application.PetSummary `json:"items"`
	Placeholder string                   `json:"placeholder,omitempty"`
	Failed      bool                     `json:"failed"`
	Loaded      bool                     `json:"loaded"`
}

// State is a snapshot of everything the form renders.
type State struct {
	Title         string        `json:"title"`
	CancelVisible bool          `json:"cancel_visible"`
	SubmitEnabled bool          `json:"submit_enabled"`
	SubmitLabel   string        `json:"submit_label"`
	PreviewShown  bool          `json:"preview_shown"`
	PreviewSrc    string        `json:"preview_src,omitempty"`
	FieldsVersion int           `json:"fields_version"`
	InputVersion  int           `json:"input_version"`
	Notification  *Notification `json:"notification,omitempty"`
	Recent        RecentState   `json:"recent"`
}

// FormView records the rendered form state. Safe for concurrent use.
type FormView struct {
	mu    sync.RWMutex
	state State
	now   func() time.Time
}

// New creates an empty FormView.
func New() *FormView {
	return &FormView{now: time.Now}
}

// Ports returns the handles a FormSession drives.
func (v *FormView) Ports() application.FormView {
	return application.FormView{Submit: v, Image: v, Header: v, Notifier: v}
}

// Snapshot returns a copy of the current state.
func (v *FormView) Snapshot() State {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := v.state
	if s.Notification != nil {
		n := *s.Notification
		s.Notification = &n
	}
	s.Recent.Items = append([]application.PetSummary(nil), v.state.Recent.Items...)
	return s
}

func (v *FormView) update(fn func(s *State)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.state)
}

// SetEnabled enables or disables the submit control.
func (v *FormView) SetEnabled(enabled bool) { v.update(func(s *State) { s.SubmitEnabled = enabled }) }

// SetLabel sets the submit control text.
func (v *FormView) SetLabel(label string) { v.update(func(s *State) { s.SubmitLabel = label }) }

// ShowPreview replaces the upload prompt with the image at src.
func (v *FormView) ShowPreview(src string) {
	v.update(func(s *State) {
		s.PreviewShown = true
		s.PreviewSrc = src
	})
}

// ShowUploadPrompt hides the preview.
func (v *FormView) ShowUploadPrompt() {
	v.update(func(s *State) {
		s.PreviewShown = false
		s.PreviewSrc = ""
	})
}

// ClearInput bumps the input version so the page knows to empty its picker.
func (v *FormView) ClearInput() { v.update(func(s *State) { s.InputVersion++ }) }

// SetTitle sets the form heading.
func (v *FormView) SetTitle(title string) { v.update(func(s *State) { s.Title = title }) }

// SetCancelVisible shows or hides the cancel-edit control.
func (v *FormView) SetCancelVisible(visible bool) { v.update(func(s *State) { s.CancelVisible = visible }) }

// ClearFields bumps the fields version so the page knows to empty its inputs.
func (v *FormView) ClearFields() { v.update(func(s *State) { s.FieldsVersion++ }) }

// Notify records the latest notification, replacing any earlier one.
func (v *FormView) Notify(kind application.NotificationKind, message string) {
	at := v.now()
	v.update(func(s *State) {
		s.Notification = &Notification{Kind: kind, Message: message, At: at}
	})
}

// ShowRecent renders the recent records list.
func (v *FormView) ShowRecent(items []application.PetSummary) {
	v.update(func(s *State) {
		s.Recent = RecentState{Items: append([]application.PetSummary(nil), items...), Loaded: true}
	})
}

// ShowEmpty renders the no-records placeholder.
func (v *FormView) ShowEmpty(message string) {
	v.update(func(s *State) {
		s.Recent = RecentState{Placeholder: message, Loaded: true}
	})
}

// ShowError renders the failed-load placeholder.
func (v *FormView) ShowError(message string) {
	v.update(func(s *State) {
		s.Recent = RecentState{Placeholder: message, Failed: true, Loaded: true}
	})
}
