// Package export captures a stage at native resolution and encodes it as PNG.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"github.com/oklog/ulid/v2"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/logging"
	"github.com/glid-app/studio/renderer"
	"github.com/glid-app/studio/settings"
)

// Result is an encoded export.
type Result struct {
	AttemptID string
	Filename  string
	PNG       []byte
	Width     int
	Height    int
	// Backend names the renderer that produced the image.
	Backend string
	// Primary is set when the primary backend failed and the fallback was used.
	Primary *ExportRenderError
}

// WriteTo writes the PNG into dir and returns the full path.
func (r *Result) WriteTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, r.Filename)
	if err := os.WriteFile(path, r.PNG, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Options configures an Exporter.
type Options struct {
	Primary  renderer.Renderer
	Fallback renderer.Renderer
	Products settings.Products
	Logger   *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Exporter runs one export at a time: primary backend first, fallback on failure.
type Exporter struct {
	primary  renderer.Renderer
	fallback renderer.Renderer
	products settings.Products
	logger   *slog.Logger
	now      func() time.Time

	busy atomic.Bool
}

// New returns an exporter. Primary is required; Fallback may be nil.
func New(opts Options) (*Exporter, error) {
	if opts.Primary == nil {
		return nil, errors.New("export: primary renderer is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Exporter{
		primary:  opts.Primary,
		fallback: opts.Fallback,
		products: opts.Products,
		logger:   logging.For(opts.Logger, logging.ChannelExport),
		now:      now,
	}, nil
}

// Busy reports whether an export is running.
func (e *Exporter) Busy() bool { return e.busy.Load() }

// Export captures stage for comp. The stage transform is identity for the
// duration of the capture and restored afterwards on every path.
func (e *Exporter) Export(ctx context.Context, stage *Stage, comp config.Composition) (*Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrExportInFlight
	}
	defer e.busy.Store(false)

	if comp == nil {
		return nil, errors.New("export: no composition")
	}
	if m, ok := comp.(*config.Mockup); ok && (m.Source == nil || m.Source.Image == nil) {
		return nil, ErrNoSource
	}

	snap := comp.Clone()
	id := ulid.Make().String()
	log := e.logger.With("attempt", id, "kind", snap.Kind())
	start := e.now()

	scene, mode, restore := stage.capture()
	defer restore()

	job := renderer.NewJob(scene, snap, mode)
	res := &Result{AttemptID: id, Backend: e.primary.Name()}
	img, err := render(ctx, e.primary, job)
	if err != nil {
		primary := &ExportRenderError{Backend: e.primary.Name(), AttemptID: id, Err: err}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("export %s: %w", id, ctxErr)
		}
		if e.fallback == nil {
			return nil, primary
		}
		log.Warn("primary render failed, using fallback", "backend", e.primary.Name(), "err", err)
		res.Primary, res.Backend = primary, e.fallback.Name()
		img, err = render(ctx, e.fallback, job)
		if err != nil {
			ferr := &ExportFallbackError{Backend: e.fallback.Name(), AttemptID: id, Primary: primary, Err: err}
			log.Error("fallback render failed", "backend", e.fallback.Name(), "err", err)
			return nil, ferr
		}
	}

	t := snap.Target()
	if b := img.Bounds(); b.Dx() != t.Width || b.Dy() != t.Height {
		return nil, fmt.Errorf("export %s: %s produced %dx%d, want %dx%d", id, res.Backend, b.Dx(), b.Dy(), t.Width, t.Height)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("export %s: encode png: %w", id, err)
	}

	res.PNG = buf.Bytes()
	res.Width, res.Height = t.Width, t.Height
	res.Filename = Filename(e.products, snap, e.now())
	log.Info("export finished",
		"backend", res.Backend,
		"file", res.Filename,
		"bytes", len(res.PNG),
		"duration", e.now().Sub(start))
	return res, nil
}

// render turns a panic inside a backend into an error.
func render(ctx context.Context, r renderer.Renderer, job *renderer.Job) (img *image.RGBA, err error) {
	defer func() {
		if p := recover(); p != nil {
			img, err = nil, fmt.Errorf("%s renderer panic: %v", r.Name(), p)
		}
	}()
	return r.Render(ctx, job)
}
