package export

import (
	"sync"

	"github.com/glid-app/studio/layout"
	"github.com/glid-app/studio/theme"
)

// Transform is the cosmetic preview transform applied to a stage on screen.
type Transform struct {
	Scale float64 `json:"scale"`
}

// Identity is the transform used while capturing.
var Identity = Transform{Scale: 1}

// Stage holds the current scene together with its preview transform. The
// scene is always in native coordinates; only the transform changes with the
// preview container.
type Stage struct {
	mu        sync.Mutex
	scene     *layout.Scene
	theme     theme.Mode
	transform Transform
	capturing bool
	pending   *Transform
}

// NewStage returns an empty stage at identity.
func NewStage() *Stage { return &Stage{transform: Identity} }

// SetScene replaces the scene and the theme snapshot it was built with.
func (s *Stage) SetScene(scene *layout.Scene, mode theme.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scene, s.theme = scene, mode
}

// Detach drops the scene. Rendering a detached stage fails.
func (s *Stage) Detach() { s.SetScene(nil, s.Theme()) }

// Scene returns the current scene, nil when detached.
func (s *Stage) Scene() *layout.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// Theme returns the theme snapshot of the current scene.
func (s *Stage) Theme() theme.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Transform returns the transform currently in effect.
func (s *Stage) Transform() Transform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transform
}

// SetTransform changes the preview transform. During a capture the value is
// held back and applied when the capture ends.
func (s *Stage) SetTransform(t Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capturing {
		s.pending = &t
		return
	}
	s.transform = t
}

// capture forces the identity transform and returns the scene, its theme and
// a func restoring the previous (or a pending) transform.
func (s *Stage) capture() (*layout.Scene, theme.Mode, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.transform
	s.transform = Identity
	s.capturing = true
	return s.scene, s.theme, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.transform = prev
		if s.pending != nil {
			s.transform = *s.pending
			s.pending = nil
		}
		s.capturing = false
	}
}
