// Package studio ties a composition to its scene, preview scale and exporter.
// Every mutation rebuilds the scene synchronously; nothing is patched in place.
package studio

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/export"
	"github.com/glid-app/studio/layout"
	"github.com/glid-app/studio/logging"
	"github.com/glid-app/studio/media"
	"github.com/glid-app/studio/renderer"
	"github.com/glid-app/studio/settings"
	"github.com/glid-app/studio/theme"
)

// ErrWrongKind is returned when a post mutation targets a mockup or vice versa.
var ErrWrongKind = errors.New("studio: mutation does not match the composition kind")

// Options wires a Session.
type Options struct {
	Settings   settings.Settings
	Theme      *theme.Store
	Typesetter layout.Typesetter
	Exporter   *export.Exporter
	Logger     *slog.Logger
}

// Session is one open editor: a composition, its stage and preview scale.
type Session struct {
	mu        sync.Mutex
	comp      config.Composition
	settings  settings.Settings
	themes    *theme.Store
	ts        layout.Typesetter
	stage     *export.Stage
	exporter  *export.Exporter
	base      *slog.Logger
	logger    *slog.Logger
	revision  uint64
	container layout.Size
	scale     float64
	listeners []func(*layout.Scene)
	unsub     func()
}

// New opens a session on comp and builds its first scene.
func New(comp config.Composition, opts Options) (*Session, error) {
	if comp == nil {
		return nil, errors.New("studio: composition is required")
	}
	if opts.Typesetter == nil {
		return nil, errors.New("studio: typesetter is required")
	}
	themes := opts.Theme
	if themes == nil {
		themes = theme.NewStore(opts.Settings.Theme, nil)
	}
	s := &Session{
		comp:     comp,
		settings: opts.Settings,
		themes:   themes,
		ts:       opts.Typesetter,
		stage:    export.NewStage(),
		exporter: opts.Exporter,
		base:     opts.Logger,
		logger:   logging.For(opts.Logger, logging.ChannelStudio),
	}
	s.mu.Lock()
	err := s.rebuildLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.unsub = themes.Subscribe(func(theme.Mode) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.rebuildLocked(); err != nil {
			s.logger.Error("rebuild after theme change", "err", err)
		}
	})
	return s, nil
}

// Close drops the theme subscription.
func (s *Session) Close() {
	if s.unsub != nil {
		s.unsub()
	}
}

// OnChange registers fn to receive every rebuilt scene.
func (s *Session) OnChange(fn func(*layout.Scene)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Composition returns a copy of the current composition.
func (s *Session) Composition() config.Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comp.Clone()
}

// Scene returns the current scene.
func (s *Session) Scene() *layout.Scene { return s.stage.Scene() }

// Stage exposes the stage for callers that draw the preview themselves.
func (s *Session) Stage() *export.Stage { return s.stage }

// Revision counts scene rebuilds.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Scale returns the current preview scale.
func (s *Session) Scale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale
}

// Replace swaps in a new composition, e.g. after the source file changed.
func (s *Session) Replace(comp config.Composition) error {
	if comp == nil {
		return errors.New("studio: composition is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := comp.(*config.Mockup); ok && m.Source == nil {
		if old, ok := s.comp.(*config.Mockup); ok && old.SourcePath == m.SourcePath {
			m.Source = old.Source
		}
	}
	s.comp = comp
	return s.rebuildLocked()
}

// UpdatePost applies fn to the post and rebuilds. On error nothing changes.
func (s *Session) UpdatePost(fn func(*config.Post) error) error {
	return s.update(func(c config.Composition) error {
		p, ok := c.(*config.Post)
		if !ok {
			return ErrWrongKind
		}
		return fn(p)
	})
}

// UpdateMockup applies fn to the mockup and rebuilds. On error nothing changes.
func (s *Session) UpdateMockup(fn func(*config.Mockup) error) error {
	return s.update(func(c config.Composition) error {
		m, ok := c.(*config.Mockup)
		if !ok {
			return ErrWrongKind
		}
		return fn(m)
	})
}

func (s *Session) update(fn func(config.Composition) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.comp.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.comp = next
	return s.rebuildLocked()
}

// Resize recomputes the preview scale for a container. A zero container
// falls back to the configured preview box.
func (s *Session) Resize(container layout.Size) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.container = container
	s.rescaleLocked()
	return s.scale
}

func (s *Session) previewLocked() settings.Preview {
	if s.comp.Kind() == config.KindMockup {
		return s.settings.Preview.Mockup
	}
	return s.settings.Preview.Post
}

func (s *Session) rescaleLocked() {
	p := s.previewLocked()
	bw, bh := p.Bounds()
	c := s.container
	if c.W <= 0 {
		c.W = bw
	}
	if c.H <= 0 {
		c.H = bh
	}
	c = layout.Size{W: math.Min(c.W, bw), H: math.Min(c.H, bh)}
	t := s.comp.Target()
	s.scale = layout.PreviewScale(t.Width, t.Height, layout.Available(c, p.Padding, p.MaxWidth), p.Cap)
	s.stage.SetTransform(export.Transform{Scale: s.scale})
}

func (s *Session) rebuildLocked() error {
	mode := s.themes.Snapshot()
	scene, err := layout.Build(s.comp, layout.BuildOptions{Typesetter: s.ts, Theme: mode, Revision: s.revision + 1})
	if err != nil {
		return err
	}
	s.revision++
	s.stage.SetScene(scene, mode)
	s.rescaleLocked()
	s.logger.Debug("scene rebuilt", "kind", scene.Kind, "revision", s.revision, "scale", s.scale)
	for _, fn := range s.listeners {
		fn(scene)
	}
	return nil
}

// Preview renders the scene with preview-only nodes and scales it by the
// preview transform.
func (s *Session) Preview(ctx context.Context, r renderer.Renderer) (image.Image, error) {
	s.mu.Lock()
	comp := s.comp.Clone()
	s.mu.Unlock()

	job := renderer.NewJob(s.stage.Scene(), comp, s.stage.Theme())
	job.Preview = true
	img, err := r.Render(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("studio: preview: %w", err)
	}
	scale := s.stage.Transform().Scale
	if scale <= 0 || scale == 1 {
		return img, nil
	}
	w := int(math.Round(float64(img.Bounds().Dx()) * scale))
	return imaging.Resize(img, max(w, 1), 0, imaging.Lanczos), nil
}

// Export captures the current state at native size.
func (s *Session) Export(ctx context.Context) (*export.Result, error) {
	if s.exporter == nil {
		return nil, errors.New("studio: no exporter configured")
	}
	s.mu.Lock()
	comp := s.comp.Clone()
	s.mu.Unlock()
	return s.exporter.Export(ctx, s.stage, comp)
}

// LoadImage decodes an upload in the background and, when valid, sets it as
// the mockup screenshot. The channel receives exactly one error (nil on success).
func (s *Session) LoadImage(ctx context.Context, name, declared string, data []byte) <-chan error {
	done := make(chan error, 1)
	results := media.LoadAsync(ctx, logging.For(s.base, logging.ChannelMedia), name, declared, data)
	go func() {
		res := <-results
		if res.Err != nil {
			done <- res.Err
			return
		}
		done <- s.UpdateMockup(func(m *config.Mockup) error {
			m.SetSource(res.Source)
			return nil
		})
	}()
	return done
}
