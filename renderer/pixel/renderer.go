// Package pixel is the fallback backend. It skips the scene tree and redraws
// a composition straight onto a gogpu/gg context using the shared layout
// plan, so an export still succeeds when the scene rasterizer fails.
package pixel

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"math"
	"sync"
	"unicode/utf8"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/fonts"
	"github.com/glid-app/studio/layout"
	"github.com/glid-app/studio/logging"
	"github.com/glid-app/studio/renderer"
)

// Renderer draws compositions with gg's software rasterizer.
type Renderer struct {
	logger *slog.Logger

	mu      sync.Mutex
	sources map[string]*text.FontSource
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// New returns a fallback renderer. A nil logger discards output.
func New(logger *slog.Logger) *Renderer {
	return &Renderer{
		logger:  logging.For(logger, logging.ChannelExport).With("backend", "pixel"),
		sources: map[string]*text.FontSource{},
	}
}

// Name returns the backend name.
func (r *Renderer) Name() string { return "pixel" }

// Close releases the loaded font sources.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for key, src := range r.sources {
		errs = append(errs, src.Close())
		delete(r.sources, key)
	}
	return errors.Join(errs...)
}

// Render draws job.Composition at its exact target size. The scene is ignored.
func (r *Renderer) Render(ctx context.Context, job *renderer.Job) (*image.RGBA, error) {
	if job == nil || job.Composition == nil {
		return nil, fmt.Errorf("pixel: job has no composition")
	}
	w, h := job.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pixel: invalid target %dx%d", w, h)
	}
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()

	var err error
	switch c := job.Composition.(type) {
	case *config.Post:
		err = r.drawPost(dc, layout.PlanPost(c, job.Theme, r), job.Preview)
	case *config.Mockup:
		err = r.drawMockup(ctx, dc, layout.PlanMockup(c, job.Theme, r), source(job, c), job.Preview)
	default:
		err = fmt.Errorf("pixel: unsupported composition %T", job.Composition)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return toRGBA(dc.Image()), nil
}

func source(job *renderer.Job, m *config.Mockup) image.Image {
	if img := job.Images[layout.SourceKey]; img != nil {
		return img
	}
	if m.Source != nil {
		return m.Source.Image
	}
	return nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func (r *Renderer) drawPost(dc *gg.Context, plan layout.PostPlan, preview bool) error {
	if err := background(dc, plan.Background, plan.Width, plan.Height, preview); err != nil {
		return err
	}
	for _, c := range plan.Circles {
		dc.SetColor(c.Color.NRGBA())
		dc.DrawCircle(c.CX, c.CY, c.R)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	if plan.Logo != nil {
		if err := r.drawText(dc, *plan.Logo); err != nil {
			return err
		}
	}
	if plan.Badge != nil {
		if err := r.drawPill(dc, *plan.Badge); err != nil {
			return err
		}
	}
	for _, block := range plan.Content {
		if err := r.drawText(dc, block); err != nil {
			return err
		}
	}
	if plan.CTA != nil {
		return r.drawPill(dc, *plan.CTA)
	}
	return nil
}

func background(dc *gg.Context, bg config.Background, w, h float64, preview bool) error {
	switch bg.Mode {
	case config.BackgroundGradient:
		x0, y0, x1, y1 := layout.GradientLine(w, h, bg.Gradient.Angle)
		brush := gg.NewLinearGradientBrush(x0, y0, x1, y1).
			AddColorStop(0, gg.FromColor(bg.Gradient.Start.NRGBA())).
			AddColorStop(1, gg.FromColor(bg.Gradient.End.NRGBA()))
		dc.SetFillBrush(brush)
	case config.BackgroundTransparent:
		if !preview {
			return nil
		}
		return checker(dc, w, h)
	default:
		dc.SetColor(bg.Color.NRGBA())
	}
	dc.DrawRectangle(0, 0, w, h)
	return dc.Fill()
}

func checker(dc *gg.Context, w, h float64) error {
	dc.SetColor(layout.InkLight.NRGBA())
	dc.DrawRectangle(0, 0, w, h)
	if err := dc.Fill(); err != nil {
		return err
	}
	cell := float64(layout.CheckerCell)
	dc.SetColor(layout.Checker.NRGBA())
	for row := 0; float64(row)*cell < h; row++ {
		for col := row % 2; float64(col)*cell < w; col += 2 {
			x, y := float64(col)*cell, float64(row)*cell
			dc.DrawRectangle(x, y, math.Min(cell, w-x), math.Min(cell, h-y))
		}
	}
	return dc.Fill()
}

func (r *Renderer) drawPill(dc *gg.Context, p layout.Pill) error {
	dc.SetColor(p.Fill.NRGBA())
	dc.DrawRoundedRectangle(p.Box.X, p.Box.Y, p.Box.W, p.Box.H, p.Box.H/2)
	if err := dc.Fill(); err != nil {
		return err
	}
	if p.Dot != nil {
		dc.SetColor(p.Dot.Color.NRGBA())
		dc.DrawCircle(p.Dot.CX, p.Dot.CY, p.Dot.R)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return r.drawText(dc, p.Label)
}

func (r *Renderer) drawText(dc *gg.Context, tb layout.TextBlock) error {
	face, err := r.face(tb.Font, tb.Size)
	if err != nil {
		return err
	}
	m := face.Metrics()
	dc.SetFont(face)
	dc.SetColor(tb.Color.NRGBA())
	for i, line := range tb.Lines {
		lr := tb.LineRect(i)
		dc.DrawString(line.Content, lr.X, layout.Baseline(lr, m.Ascent, m.Descent))
	}
	return nil
}

// TextWidth implements layout.Typesetter with gg font advances.
func (r *Renderer) TextWidth(content string, font layout.Font, size float64) float64 {
	face, err := r.face(font, size)
	if err != nil {
		r.logger.Warn("font unavailable, estimating width", "font", font.Name, "err", err)
		return float64(utf8.RuneCountInString(content)) * size * 0.5
	}
	return face.Advance(content)
}

func (r *Renderer) face(font layout.Font, size float64) (text.Face, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src, ok := r.sources[font.Src]
	if !ok {
		data, err := fonts.Load(font.Src)
		if err != nil {
			return nil, err
		}
		src, err = text.NewFontSource(data)
		if err != nil {
			return nil, fmt.Errorf("pixel: parse font %s: %w", font.Name, err)
		}
		r.sources[font.Src] = src
	}
	return src.Face(size), nil
}
