package layout

import "math"

// Size 是一个容器或画布的宽高，边长可以是 +Inf（不受限）。
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect 以左上角为原点。
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// PreviewScale 返回把 width×height 的画布放进 container 的缩放比例：
// min(container.W/width, container.H/height, cap)。cap<=0 表示不设上限；
// 容器两边都不受限且无上限时返回 1。
func PreviewScale(width, height int, container Size, cap float64) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	s := math.Min(container.W/float64(width), container.H/float64(height))
	if cap > 0 {
		s = math.Min(s, cap)
	}
	if math.IsInf(s, 1) || math.IsNaN(s) {
		return 1
	}
	return math.Max(s, 0)
}

// Available 返回扣除 padding 并受 maxWidth 限制后的预览容器。
// 帖子编辑页即 min(containerWidth-40, 500)。
func Available(container Size, padding, maxWidth float64) Size {
	w := container.W - padding
	if maxWidth > 0 {
		w = math.Min(w, maxWidth)
	}
	return Size{W: math.Max(w, 0), H: container.H}
}

// GradientLine 返回 CSS linear-gradient 在 w×h 盒子中的起止点：
// 0deg 指向上方，顺时针增加，渐变线长度恰好让两个角落取到端点颜色。
func GradientLine(w, h, angle float64) (x0, y0, x1, y1 float64) {
	rad := angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
	cx, cy := w/2, h/2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}

// Inset 将矩形四边各内缩 d。
func Inset(r Rect, d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: math.Max(r.W-2*d, 0), H: math.Max(r.H-2*d, 0)}
}

// CenterRect 返回在 container 中居中的 w×h 矩形。
func CenterRect(container Size, w, h float64) Rect {
	return Rect{X: (container.W - w) / 2, Y: (container.H - h) / 2, W: w, H: h}
}

// Center 返回矩形中心点。
func (r Rect) Center() (float64, float64) { return r.X + r.W/2, r.Y + r.H/2 }

// Offset 平移矩形。
func (r Rect) Offset(dx, dy float64) Rect { return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H} }

// Union 返回同时包含 r 与 o 的最小矩形。
func (r Rect) Union(o Rect) Rect {
	x0, y0 := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	x1, y1 := math.Max(r.X+r.W, o.X+o.W), math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
