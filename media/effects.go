package media

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Cover scales and crops img to exactly w×h, centred, like CSS object-fit: cover.
func Cover(img image.Image, w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

// Blur applies a gaussian blur with the given sigma in pixels.
func Blur(img image.Image, sigma float64) *image.NRGBA {
	if sigma <= 0 {
		return imaging.Clone(img)
	}
	return imaging.Blur(img, sigma)
}

// FlipV mirrors img top to bottom.
func FlipV(img image.Image) *image.NRGBA { return imaging.FlipV(img) }

// Rotate turns img clockwise by deg degrees; uncovered corners stay transparent.
func Rotate(img image.Image, deg float64) *image.NRGBA {
	return imaging.Rotate(img, -deg, color.Transparent)
}

// RoundCorners clears everything outside a rounded rectangle of radius r
// covering the whole image. Edge pixels get fractional coverage.
func RoundCorners(img image.Image, r float64) *image.NRGBA {
	out := imaging.Clone(img)
	b := out.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return out
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			cov := roundedCoverage(float64(x)+0.5, float64(y)+0.5, w, h, r)
			if cov >= 1 {
				continue
			}
			i := out.PixOffset(x, y)
			out.Pix[i+3] = uint8(math.Round(float64(out.Pix[i+3]) * cov))
		}
	}
	return out
}

// roundedCoverage approximates how much of the pixel centred at (px, py)
// lies inside the rounded rect.
func roundedCoverage(px, py, w, h, r float64) float64 {
	cx := math.Min(math.Max(px, r), w-r)
	cy := math.Min(math.Max(py, r), h-r)
	dx, dy := px-cx, py-cy
	if dx == 0 && dy == 0 {
		return 1
	}
	d := math.Hypot(dx, dy) - r
	return math.Max(0, math.Min(1, 0.5-d))
}

// Fade multiplies alpha by opacity and by a vertical ramp from `from` at the
// top row to `to` at the bottom row.
func Fade(img image.Image, opacity, from, to float64) *image.NRGBA {
	out := imaging.Clone(img)
	b := out.Bounds()
	rows := b.Dy()
	for y := 0; y < rows; y++ {
		t := 0.0
		if rows > 1 {
			t = float64(y) / float64(rows-1)
		}
		k := opacity * (from + (to-from)*t)
		for x := 0; x < b.Dx(); x++ {
			i := out.PixOffset(x, y)
			out.Pix[i+3] = uint8(math.Round(float64(out.Pix[i+3]) * k))
		}
	}
	return out
}

// Opacity multiplies alpha by a constant.
func Opacity(img image.Image, opacity float64) *image.NRGBA { return Fade(img, opacity, 1, 1) }

// ShadowMask returns a blurred rounded rectangle of colour c. The rectangle
// is w×h and sits at (margin, margin) inside a canvas padded by margin on
// every side.
func ShadowMask(w, h, r, blur float64, c color.NRGBA) (*image.NRGBA, int) {
	margin := int(math.Ceil(blur * 1.5))
	iw, ih := int(math.Ceil(w)), int(math.Ceil(h))
	shape := image.NewNRGBA(image.Rect(0, 0, iw+2*margin, ih+2*margin))
	rr := math.Min(r, math.Min(w, h)/2)
	for y := 0; y < ih; y++ {
		for x := 0; x < iw; x++ {
			cov := roundedCoverage(float64(x)+0.5, float64(y)+0.5, w, h, rr)
			if cov <= 0 {
				continue
			}
			i := shape.PixOffset(x+margin, y+margin)
			shape.Pix[i+0] = c.R
			shape.Pix[i+1] = c.G
			shape.Pix[i+2] = c.B
			shape.Pix[i+3] = uint8(math.Round(float64(c.A) * cov))
		}
	}
	// A box-shadow blur radius is roughly 2 sigma.
	return Blur(shape, blur/2), margin
}
