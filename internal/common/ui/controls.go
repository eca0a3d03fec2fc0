package ui

import (
	"fmt"
	"sync"
)

type Option struct {
	Value string
	Label string
}

// Select is a single-choice control whose option set is replaced wholesale.
type Select struct {
	mu       sync.RWMutex
	options  []Option
	value    string
	onChange func(string)
}

func NewSelect() *Select {
	return &Select{}
}

// SetOptions replaces every option. The value becomes the first option's
// value, as a freshly rendered <select> would report.
func (s *Select) SetOptions(opts []Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = append([]Option(nil), opts...)
	s.value = ""
	if len(s.options) > 0 {
		s.value = s.options[0].Value
	}
}

func (s *Select) Options() []Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Option(nil), s.options...)
}

// Labels returns the option labels in order.
func (s *Select) Labels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.options))
	for i, o := range s.options {
		out[i] = o.Label
	}
	return out
}

func (s *Select) Value() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Select picks an existing option and fires the change listener
// synchronously, like a user choosing from the list.
func (s *Select) Select(value string) error {
	s.mu.Lock()
	found := false
	for _, o := range s.options {
		if o.Value == value {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("option %q not available", value)
	}
	s.value = value
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(value)
	}
	return nil
}

// OnChange replaces the change listener.
func (s *Select) OnChange(fn func(value string)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

type Button struct {
	mu      sync.RWMutex
	label   string
	enabled bool
}

func NewButton(label string) *Button {
	return &Button{label: label, enabled: true}
}

func (b *Button) Label() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.label
}

func (b *Button) SetLabel(label string) {
	b.mu.Lock()
	b.label = label
	b.mu.Unlock()
}

func (b *Button) Enabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.enabled
}

func (b *Button) SetEnabled(enabled bool) {
	b.mu.Lock()
	b.enabled = enabled
	b.mu.Unlock()
}

// ResultPanel shows either plain text or an HTML fragment; setting one
// clears the other.
type ResultPanel struct {
	mu   sync.RWMutex
	text string
	html string
}

func NewResultPanel() *ResultPanel {
	return &ResultPanel{}
}

func (r *ResultPanel) ShowText(text string) {
	r.mu.Lock()
	r.text, r.html = text, ""
	r.mu.Unlock()
}

func (r *ResultPanel) ShowHTML(html string) {
	r.mu.Lock()
	r.text, r.html = "", html
	r.mu.Unlock()
}

func (r *ResultPanel) Text() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.text
}

func (r *ResultPanel) HTML() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.html
}
