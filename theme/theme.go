// Package theme holds the studio's light/dark theme. Renderers read an
// immutable snapshot; changes reach a single subscriber.
package theme

import (
	"fmt"
	"sync"

	"github.com/muesli/termenv"
)

// Mode is the active theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Parse accepts "light" or "dark".
func Parse(s string) (Mode, error) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// Detector reports whether the system prefers a dark theme.
type Detector func() bool

// TerminalDetector asks the terminal for its background colour.
func TerminalDetector() bool { return termenv.HasDarkBackground() }

// Resolve picks the starting mode: a saved preference wins, then the
// system signal, then light.
func Resolve(pref string, detect Detector) Mode {
	if m, err := Parse(pref); err == nil {
		return m
	}
	if detect != nil && detect() {
		return Dark
	}
	return Light
}

// Store owns the current mode.
type Store struct {
	mu   sync.RWMutex
	mode Mode
	sub  func(Mode)
}

// NewStore starts at Resolve(pref, detect).
func NewStore(pref string, detect Detector) *Store {
	return &Store{mode: Resolve(pref, detect)}
}

// Snapshot returns the current mode.
func (s *Store) Snapshot() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Subscribe registers fn as the only listener, replacing any previous
// one. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Mode)) (cancel func()) {
	s.mu.Lock()
	s.sub = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.sub = nil
		s.mu.Unlock()
	}
}

// Set changes the mode and notifies the subscriber if it changed.
func (s *Store) Set(m Mode) {
	s.mu.Lock()
	if s.mode == m {
		s.mu.Unlock()
		return
	}
	s.mode = m
	fn := s.sub
	s.mu.Unlock()
	if fn != nil {
		fn(m)
	}
}

// Toggle flips between light and dark.
func (s *Store) Toggle() Mode {
	next := Dark
	if s.Snapshot() == Dark {
		next = Light
	}
	s.Set(next)
	return next
}
