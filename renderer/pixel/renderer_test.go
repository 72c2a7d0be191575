package pixel

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/layout"
	"github.com/glid-app/studio/renderer"
	canvasrenderer "github.com/glid-app/studio/renderer/canvas"
	"github.com/glid-app/studio/theme"
)

func screenshot(w, h int) *config.Source {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	return &config.Source{Name: "shot.png", MIME: "image/png", Image: img}
}

func bareField() *config.Post {
	p := config.NewPost()
	p.ShowLogo, p.ShowBadge = false, false
	p.Headline, p.Subheadline, p.Body, p.CTA = "", "", "", ""
	_ = p.SetPalette(config.PaletteField)
	return p
}

func within(t *testing.T, got, want color.RGBA, tol int) {
	t.Helper()
	for _, d := range []int{
		int(got.R) - int(want.R), int(got.G) - int(want.G),
		int(got.B) - int(want.B), int(got.A) - int(want.A),
	} {
		if d < -tol || d > tol {
			t.Fatalf("pixel %v differs from %v by more than %d", got, want, tol)
		}
	}
}

func render(t *testing.T, r renderer.Renderer, comp config.Composition, preview bool) *image.RGBA {
	t.Helper()
	job := renderer.NewJob(nil, comp, theme.Light)
	job.Preview = preview
	img, err := r.Render(context.Background(), job)
	require.NoError(t, err)
	return img
}

func TestRenderMatchesTarget(t *testing.T) {
	r := New(nil)
	defer r.Close()
	for _, key := range []string{config.PlatformInstagramSquare, config.PlatformInstagramStory, config.PlatformTwitter} {
		p := config.NewPost()
		require.NoError(t, p.SetPlatform(key))
		img := render(t, r, p, false)
		tgt := p.Target()
		assert.Equal(t, tgt.Width, img.Bounds().Dx(), key)
		assert.Equal(t, tgt.Height, img.Bounds().Dy(), key)
	}
}

func TestSolidField(t *testing.T) {
	r := New(nil)
	defer r.Close()
	p := bareField()
	img := render(t, r, p, false)
	tgt := p.Target()
	within(t, img.RGBAAt(tgt.Width/2, tgt.Height/2), color.RGBA{R: 0x05, G: 0x96, B: 0x69, A: 0xff}, 2)
}

func TestGradientRunsTopLeftToBottomRight(t *testing.T) {
	r := New(nil)
	defer r.Close()
	p := bareField()
	p.SetGradient(config.Gradient{Start: config.MustHex("#000000"), End: config.MustHex("#ffffff"), Angle: 135})
	img := render(t, r, p, false)
	tgt := p.Target()
	first := img.RGBAAt(1, 1)
	last := img.RGBAAt(tgt.Width-2, tgt.Height-2)
	assert.Less(t, first.R, uint8(20))
	assert.Greater(t, last.R, uint8(235))
}

func TestTransparentExport(t *testing.T) {
	r := New(nil)
	defer r.Close()
	m := config.NewMockup()
	m.Background = config.Background{Mode: config.BackgroundTransparent}
	m.Source = screenshot(60, 120)
	assert.Equal(t, uint8(0), render(t, r, m, false).RGBAAt(2, 2).A)
	assert.Equal(t, uint8(255), render(t, r, m, true).RGBAAt(2, 2).A)
}

func TestMockupDrawsScreenshotAndReflection(t *testing.T) {
	r := New(nil)
	defer r.Close()
	m := config.NewMockup()
	m.SetSolid(config.MustHex("#ffffff"))
	m.SetShadow(0)
	m.Source = screenshot(60, 120)
	img := render(t, r, m, false)

	plan := layout.PlanMockup(m, theme.Light, r)
	cx, cy := plan.Device.Frame.Center()
	within(t, img.RGBAAt(int(cx), int(cy)), color.RGBA{R: 200, G: 40, B: 40, A: 255}, 3)

	// 倒影紧挨设备的一端可见，末端完全淡出。
	ref := plan.Device.Reflection.Offset(plan.Device.Frame.X, plan.Device.Frame.Y)
	top := img.RGBAAt(int(cx), int(ref.Y+2))
	assert.Less(t, top.R, uint8(255), "reflection should tint the background near the device")
	bottom := img.RGBAAt(int(cx), int(ref.Y+ref.H-1))
	within(t, bottom, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 2)
}

func TestRotatedMockupKeepsCentre(t *testing.T) {
	r := New(nil)
	defer r.Close()
	m := config.NewMockup()
	m.SetRotation(20)
	m.Source = screenshot(60, 120)
	img := render(t, r, m, false)
	tgt := m.Target()
	within(t, img.RGBAAt(tgt.Width/2, tgt.Height/2), color.RGBA{R: 200, G: 40, B: 40, A: 255}, 3)
}

func TestMockupWithoutSourceDrawsHint(t *testing.T) {
	r := New(nil)
	defer r.Close()
	img := render(t, r, config.NewMockup(), false)
	tgt := config.NewMockup().Target()
	assert.Equal(t, tgt.Width, img.Bounds().Dx())
}

func TestTextWidth(t *testing.T) {
	r := New(nil)
	defer r.Close()
	font := layout.FontFor(layout.RoleHeadline)
	a := r.TextWidth("glid", font, 40)
	b := r.TextWidth("glid studio", font, 40)
	assert.Greater(t, a, 0.0)
	assert.Greater(t, b, a)
}

func TestRejectsEmptyJob(t *testing.T) {
	r := New(nil)
	defer r.Close()
	_, err := r.Render(context.Background(), &renderer.Job{})
	assert.Error(t, err)
}

// TestParityWithCanvas 两条渲染路径在纯色背景与装饰圆上的像素应一致。
func TestParityWithCanvas(t *testing.T) {
	fallback := New(nil)
	defer fallback.Close()
	primary := canvasrenderer.NewRenderer()

	p := bareField()
	scene, err := layout.Build(p, layout.BuildOptions{Typesetter: primary, Theme: theme.Light})
	require.NoError(t, err)
	want, err := primary.Render(context.Background(), renderer.NewJob(scene, p, theme.Light))
	require.NoError(t, err)
	got := render(t, fallback, p, false)

	tgt := p.Target()
	w, h := float64(tgt.Width), float64(tgt.Height)
	circles := layout.DecoCircles(w, h)
	samples := [][2]int{
		{tgt.Width / 2, tgt.Height / 2},
		{5, 5},
		{tgt.Width - 5, tgt.Height - 5},
		{int(circles[0][0]), int(circles[0][1])},
		{int(circles[1][0]), int(circles[1][1])},
	}
	for _, s := range samples {
		within(t, got.RGBAAt(s[0], s[1]), want.RGBAAt(s[0], s[1]), 2)
	}
}

func TestGlyphWidthsDiffer(t *testing.T) {
	r := New(nil)
	defer r.Close()
	font := layout.FontFor(layout.RoleBody)
	assert.Less(t, r.TextWidth("iii", font, 40), r.TextWidth("WWW", font, 40))
}

// inkBox 返回 area 内满足 ink 的像素包围盒与像素数。
func inkBox(img *image.RGBA, area layout.Rect, ink func(color.RGBA) bool) (image.Rectangle, int) {
	box := image.Rectangle{}
	count := 0
	r := image.Rect(int(area.X), int(area.Y), int(area.X+area.W+0.5), int(area.Y+area.H+0.5)).Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if !ink(img.RGBAAt(x, y)) {
				continue
			}
			count++
			px := image.Rect(x, y, x+1, y+1)
			if box.Empty() {
				box = px
			} else {
				box = box.Union(px)
			}
		}
	}
	return box, count
}

func TestHeadlineParityWithCanvas(t *testing.T) {
	fallback := New(nil)
	defer fallback.Close()
	primary := canvasrenderer.NewRenderer()

	p := bareField()
	p.Headline = "Big News!"
	scene, err := layout.Build(p, layout.BuildOptions{Typesetter: primary, Theme: theme.Light})
	require.NoError(t, err)
	want, err := primary.Render(context.Background(), renderer.NewJob(scene, p, theme.Light))
	require.NoError(t, err)
	got := render(t, fallback, p, false)

	plan := layout.PlanPost(p, theme.Light, primary)
	require.Len(t, plan.Content, 1)
	area := plan.Content[0].Box
	white := func(c color.RGBA) bool { return c.R > 160 && c.G > 160 && c.B > 160 }

	wantBox, wantN := inkBox(want, area, white)
	gotBox, gotN := inkBox(got, area, white)
	require.Greater(t, wantN, 200, "canvas headline should leave ink in its box")
	require.Greater(t, gotN, 200, "pixel headline should leave ink in its box")

	const tol = 4
	assert.InDelta(t, wantBox.Min.X, gotBox.Min.X, tol)
	assert.InDelta(t, wantBox.Max.X, gotBox.Max.X, tol)
	assert.InDelta(t, wantBox.Min.Y, gotBox.Min.Y, tol)
	assert.InDelta(t, wantBox.Max.Y, gotBox.Max.Y, tol)

	// 墨迹宽度应接近排版宽度，字形全为占位框时会明显偏离。
	line := plan.Content[0].LineRect(0)
	assert.InDelta(t, line.W, float64(wantBox.Dx()), 0.1*line.W)
}
