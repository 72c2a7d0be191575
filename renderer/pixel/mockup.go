package pixel

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/layout"
	"github.com/glid-app/studio/media"
)

func (r *Renderer) drawMockup(ctx context.Context, dc *gg.Context, plan layout.MockupPlan, src image.Image, preview bool) error {
	if err := background(dc, plan.Background, plan.Width, plan.Height, preview); err != nil {
		return err
	}
	if plan.Empty != nil {
		return r.drawText(dc, *plan.Empty)
	}
	if src == nil {
		return fmt.Errorf("pixel: mockup has no screenshot")
	}
	if plan.BlurSigma > 0 {
		w, h := int(plan.Width), int(plan.Height)
		backdrop := media.Blur(media.Cover(src, w, h), plan.BlurSigma)
		dc.DrawImageEx(gg.ImageBufFromImage(backdrop), gg.DrawImageOptions{Opacity: layout.BlurOpacity})
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d := plan.Device
	ext := d.Extent()
	layer, err := deviceLayer(d, ext, src)
	if err != nil {
		return err
	}
	x, y := d.Frame.X+ext.X, d.Frame.Y+ext.Y
	if d.Rotation != 0 {
		rotated := media.Rotate(layer, d.Rotation)
		b := rotated.Bounds()
		cx, cy := d.Frame.Center()
		x, y = cx-float64(b.Dx())/2, cy-float64(b.Dy())/2
		layer = rotated
	}
	dc.DrawImage(gg.ImageBufFromImage(layer), x, y)
	return nil
}

// deviceLayer composes shadows, frame, screen and reflection unrotated on an
// offscreen context covering ext.
func deviceLayer(d *layout.DevicePlan, ext layout.Rect, src image.Image) (image.Image, error) {
	w, h := int(math.Ceil(ext.W)), int(math.Ceil(ext.H))
	lc := gg.NewContext(w, h)
	defer func() { _ = lc.Close() }()
	ox, oy := -ext.X, -ext.Y
	fw, fh := d.Frame.W, d.Frame.H

	for _, s := range d.Shadows {
		mask, margin := media.ShadowMask(fw, fh, d.Radius, s.Blur, s.Color.NRGBA())
		m := float64(margin)
		lc.DrawImage(gg.ImageBufFromImage(mask), ox-m, oy+s.OffsetY-m)
	}

	if err := roundRect(lc, layout.Rect{X: ox, Y: oy, W: fw, H: fh}, d.Radius, layout.Frame); err != nil {
		return nil, err
	}
	if err := roundRect(lc, d.Bezel.Offset(ox, oy), d.BezelRadius, layout.Bezel); err != nil {
		return nil, err
	}
	screen := d.Screen.Offset(ox, oy)
	if err := roundRect(lc, screen, d.ScreenRadius, layout.Island); err != nil {
		return nil, err
	}
	if shot := screenImage(src, d.Screen, d.ScreenRadius); shot != nil {
		lc.DrawImage(gg.ImageBufFromImage(shot), screen.X, screen.Y)
	}
	if d.Island != nil {
		is := d.Island.Offset(ox, oy)
		if err := roundRect(lc, is, is.H/2, layout.Island); err != nil {
			return nil, err
		}
	}

	if d.Reflection != nil {
		ref, err := reflection(d, src)
		if err != nil {
			return nil, err
		}
		lc.DrawImage(gg.ImageBufFromImage(ref), ox+d.Reflection.X, oy+d.Reflection.Y)
	}
	return lc.Image(), nil
}

// reflection draws bezel, screen and screenshot, mirrors them and fades the copy out.
func reflection(d *layout.DevicePlan, src image.Image) (*image.NRGBA, error) {
	rw, rh := int(math.Ceil(d.Reflection.W)), int(math.Ceil(d.Reflection.H))
	rc := gg.NewContext(rw, rh)
	defer func() { _ = rc.Close() }()
	if err := roundRect(rc, layout.Rect{W: d.Reflection.W, H: d.Reflection.H}, d.Radius, layout.Bezel); err != nil {
		return nil, err
	}
	if err := roundRect(rc, d.ReflectionScreen, d.ScreenRadius, layout.Island); err != nil {
		return nil, err
	}
	if shot := screenImage(src, d.ReflectionScreen, d.ScreenRadius); shot != nil {
		rc.DrawImage(gg.ImageBufFromImage(shot), d.ReflectionScreen.X, d.ReflectionScreen.Y)
	}
	return media.Fade(media.FlipV(rc.Image()), layout.ReflectionOpacity, layout.ReflectionFadeTop, 0), nil
}

func screenImage(src image.Image, box layout.Rect, radius float64) *image.NRGBA {
	w, h := int(math.Round(box.W)), int(math.Round(box.H))
	if w <= 0 || h <= 0 {
		return nil
	}
	return media.RoundCorners(media.Cover(src, w, h), radius)
}

func roundRect(dc *gg.Context, box layout.Rect, radius float64, c config.Color) error {
	dc.SetColor(c.NRGBA())
	if radius > 0 {
		dc.DrawRoundedRectangle(box.X, box.Y, box.W, box.H, math.Min(radius, math.Min(box.W, box.H)/2))
	} else {
		dc.DrawRectangle(box.X, box.Y, box.W, box.H)
	}
	return dc.Fill()
}
