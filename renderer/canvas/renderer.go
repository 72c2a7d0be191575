package canvasrenderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"sync"
	"unicode/utf8"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/fonts"
	"github.com/glid-app/studio/layout"
	"github.com/glid-app/studio/logging"
	"github.com/glid-app/studio/media"
	"github.com/glid-app/studio/renderer"
)

// Renderer 通过 github.com/tdewolff/canvas 绘制场景树，并按 1px/mm 栅格化。
type Renderer struct {
	logger *slog.Logger

	fontMu         sync.Mutex
	fontFamilies   map[string]*canvas.FontFamily
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options 配置 canvas 渲染器。
type Options struct {
	Logger *slog.Logger
}

// NewRenderer 创建使用内置字体的渲染器。
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions 创建渲染器，未提供 Logger 时不输出日志。
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{
		logger:       logging.For(opts.Logger, logging.ChannelExport).With("backend", "canvas"),
		fontFamilies: map[string]*canvas.FontFamily{},
	}
}

// Name 返回后端名称。
func (r *Renderer) Name() string { return "canvas" }

// Render 将场景光栅化为目标尺寸的图像。
func (r *Renderer) Render(ctx context.Context, job *renderer.Job) (*image.RGBA, error) {
	if job == nil || job.Scene == nil || job.Scene.Root == nil {
		return nil, fmt.Errorf("渲染任务缺少场景")
	}
	w, h := job.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("无效的输出尺寸 %dx%d", w, h)
	}
	if job.Scene.Width != float64(w) || job.Scene.Height != float64(h) {
		return nil, fmt.Errorf("场景尺寸 %gx%g 与目标 %dx%d 不一致", job.Scene.Width, job.Scene.Height, w, h)
	}

	c, err := r.surface(ctx, job, job.Scene.Root, float64(w), float64(h), 0, 0)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rasterizer.Draw(c, canvas.DPMM(1), canvas.DefaultColorSpace), nil
}

// surface 在一张独立画布上绘制节点，整体平移 (dx, dy)。
func (r *Renderer) surface(ctx context.Context, job *renderer.Job, n *layout.Node, w, h, dx, dy float64) (*canvas.Canvas, error) {
	c := canvas.New(w, h)
	cc := canvas.NewContext(c)
	cc.SetCoordSystem(canvas.CartesianIV) // 使坐标与场景保持左上角为原点
	if err := r.drawNode(ctx, cc, job, n, dx, dy); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Renderer) drawNode(ctx context.Context, cc *canvas.Context, job *renderer.Job, n *layout.Node, ox, oy float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.PreviewOnly && !job.Preview {
		return nil
	}
	x, y := ox+n.X, oy+n.Y
	if needsLayer(n) {
		return r.drawLayer(ctx, cc, job, n, x, y)
	}

	alpha := n.Alpha()
	switch n.Kind {
	case layout.KindRect, layout.KindGroup:
		if n.Fill != nil {
			r.fill(cc, n, x, y, alpha)
		}
	case layout.KindText:
		if err := r.drawText(cc, n.Text, x, y, alpha); err != nil {
			return err
		}
	case layout.KindImage:
		if err := r.drawImage(cc, job, n, x, y, alpha); err != nil {
			return err
		}
	case layout.KindShadow:
		r.drawShadow(cc, n, x, y, alpha)
	default:
		return fmt.Errorf("未知的节点类型 %q（%s）", n.Kind, n.ID)
	}
	for _, child := range n.Children {
		if err := r.drawNode(ctx, cc, job, child, x, y); err != nil {
			return err
		}
	}
	return nil
}

func needsLayer(n *layout.Node) bool {
	return n.Layered() || (n.Transform != nil && n.Transform.Rotate != 0)
}

// drawLayer 把节点子树离屏绘制成位图，再做翻转、遮罩、透明度与旋转后合成。
func (r *Renderer) drawLayer(ctx context.Context, cc *canvas.Context, job *renderer.Job, n *layout.Node, x, y float64) error {
	var rotate float64
	ext := n.Extent()
	if n.Transform != nil && n.Transform.Rotate != 0 {
		rotate = n.Transform.Rotate
		ext = n.PivotExtent(n.Transform.OriginX, n.Transform.OriginY)
	}
	lw, lh := math.Ceil(ext.W), math.Ceil(ext.H)
	if lw <= 0 || lh <= 0 {
		return nil
	}

	flat := *n
	flat.X, flat.Y = 0, 0
	flat.Transform, flat.Mask = nil, nil
	flat.Opacity = 1
	c, err := r.surface(ctx, job, &flat, lw, lh, -ext.X, -ext.Y)
	if err != nil {
		return err
	}
	var img image.Image = rasterizer.Draw(c, canvas.DPMM(1), canvas.DefaultColorSpace)

	// 翻转以图层高度为准，倒影组的范围与其自身尺寸一致。
	if n.Transform != nil && n.Transform.FlipY {
		img = media.FlipV(img)
	}
	switch {
	case n.Mask != nil:
		img = media.Fade(img, n.Alpha(), n.Mask.From, n.Mask.To)
	case n.Alpha() < 1:
		img = media.Opacity(img, n.Alpha())
	}

	dx, dy := x+ext.X, y+ext.Y
	if rotate != 0 {
		rotated := media.Rotate(img, rotate)
		b := rotated.Bounds()
		cx, cy := x+n.Transform.OriginX, y+n.Transform.OriginY
		dx, dy = cx-float64(b.Dx())/2, cy-float64(b.Dy())/2
		img = rotated
	}
	cc.DrawImage(dx, dy, img, canvas.DPMM(1))
	return nil
}

func shape(w, h, radius float64) *canvas.Path {
	if radius > 0 {
		return canvas.RoundedRectangle(w, h, math.Min(radius, math.Min(w, h)/2))
	}
	return canvas.Rectangle(w, h)
}

func (r *Renderer) fill(cc *canvas.Context, n *layout.Node, x, y, alpha float64) {
	p := n.Fill
	switch p.Kind {
	case layout.PaintLinear:
		x0, y0, x1, y1 := layout.GradientLine(n.W, n.H, p.Angle)
		g := canvas.NewLinearGradient(canvas.Point{X: x0, Y: y0}, canvas.Point{X: x1, Y: y1})
		g.Add(0, premultiplied(p.Color, alpha))
		g.Add(1, premultiplied(p.End, alpha))
		cc.SetFill(g)
		cc.DrawPath(x, y, shape(n.W, n.H, n.Radius))
	case layout.PaintChecker:
		cc.SetFillColor(p.End.WithAlpha(alpha).NRGBA())
		cc.DrawPath(x, y, canvas.Rectangle(n.W, n.H))
		cell := p.Cell
		if cell <= 0 {
			cell = layout.CheckerCell
		}
		cc.SetFillColor(p.Color.WithAlpha(alpha).NRGBA())
		for row := 0; float64(row)*cell < n.H; row++ {
			for col := row % 2; float64(col)*cell < n.W; col += 2 {
				cx, cy := float64(col)*cell, float64(row)*cell
				cc.DrawPath(x+cx, y+cy, canvas.Rectangle(math.Min(cell, n.W-cx), math.Min(cell, n.H-cy)))
			}
		}
	default:
		cc.SetFillColor(p.Color.WithAlpha(alpha).NRGBA())
		cc.DrawPath(x, y, shape(n.W, n.H, n.Radius))
	}
}

func premultiplied(c config.Color, alpha float64) color.RGBA {
	return color.RGBAModel.Convert(c.WithAlpha(alpha).NRGBA()).(color.RGBA)
}

func (r *Renderer) drawText(cc *canvas.Context, tb *layout.TextBlock, x, y, alpha float64) error {
	if tb == nil {
		return nil
	}
	face, err := r.fontFace(tb.Font, tb.Size, tb.Color.WithAlpha(alpha).NRGBA())
	if err != nil {
		return err
	}
	metrics := face.Metrics()
	for i, line := range tb.Lines {
		lr := tb.LineRect(i)
		baseline := layout.Baseline(lr, metrics.Ascent, metrics.Descent)
		cc.DrawText(x+lr.X, y+baseline, canvas.NewTextLine(face, line.Content, canvas.Left))
	}
	return nil
}

func (r *Renderer) drawImage(cc *canvas.Context, job *renderer.Job, n *layout.Node, x, y, alpha float64) error {
	src := job.Images[n.Image.Key]
	if src == nil {
		return fmt.Errorf("找不到图片资源 %s（节点 %s）", n.Image.Key, n.ID)
	}
	w, h := int(math.Round(n.W)), int(math.Round(n.H))
	if w <= 0 || h <= 0 {
		return nil
	}
	var img image.Image = media.Cover(src, w, h)
	if n.Image.Blur > 0 {
		img = media.Blur(img, n.Image.Blur)
	}
	if n.Radius > 0 {
		img = media.RoundCorners(img, n.Radius)
	}
	if alpha < 1 {
		img = media.Opacity(img, alpha)
	}
	cc.DrawImage(x, y, img, canvas.DPMM(1))
	return nil
}

func (r *Renderer) drawShadow(cc *canvas.Context, n *layout.Node, x, y, alpha float64) {
	s := n.Shadow
	if s == nil {
		return
	}
	mask, margin := media.ShadowMask(n.W, n.H, n.Radius, s.Blur, s.Color.WithAlpha(alpha).NRGBA())
	m := float64(margin)
	cc.DrawImage(x-m, y+s.OffsetY-m, mask, canvas.DPMM(1))
}

// TextWidth 实现 layout.Typesetter：size 为像素字号，返回像素宽度。
func (r *Renderer) TextWidth(content string, font layout.Font, size float64) float64 {
	face, err := r.fontFace(font, size, color.Black)
	if err != nil {
		r.logger.Warn("字体不可用，按估算宽度排版", "font", font.Name, "err", err)
		return float64(utf8.RuneCountInString(content)) * size * 0.5
	}
	return face.TextWidth(content)
}

// fontFace 按像素字号创建字体面；画布单位为 mm 且 1px=1mm，字号需换算为 pt。
func (r *Renderer) fontFace(font layout.Font, size float64, col color.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(layout.PxToPt(size), col, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.Font) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[font.Src]; ok {
		return family, nil
	}
	name := font.Name
	if name == "" {
		name = "Body"
	}
	family := canvas.NewFontFamily(name)
	if err := loadInto(family, font.Src); err != nil {
		fallback, fbErr := r.fallback()
		if fbErr != nil {
			return nil, err
		}
		r.logger.Warn("加载字体失败，使用后备字体", "font", font.Name, "err", err)
		r.fontFamilies[font.Src] = fallback
		return fallback, nil
	}
	r.fontFamilies[font.Src] = family
	return family, nil
}

func loadInto(family *canvas.FontFamily, src string) error {
	if src == "" {
		return fmt.Errorf("字体缺少 src")
	}
	data, err := fonts.Load(src)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, canvas.FontRegular)
}

// fallback 调用方需持有 fontMu。
func (r *Renderer) fallback() (*canvas.FontFamily, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, nil
	}
	family := canvas.NewFontFamily("studio-fallback")
	if err := loadInto(family, fonts.Regular); err != nil {
		return nil, err
	}
	r.fallbackFamily = family
	return family, nil
}
