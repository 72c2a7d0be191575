package layout

import "github.com/glid-app/studio/config"

// 该文件定义场景树，供布局计算、渲染与调试 JSON 共用。

// SceneVersion 场景结构版本，调试 JSON 据此区分格式。
const SceneVersion = 1

// Scene 是一次构建的结果：原生像素坐标下的节点树。每次配置变化都会重建，不会原地修改。
type Scene struct {
	Version  int         `json:"version"`
	Revision uint64      `json:"revision"`
	Kind     config.Kind `json:"kind"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Root     *Node       `json:"root"`
}

// NodeKind 标记节点类型。
type NodeKind string

const (
	KindRect   NodeKind = "rect"
	KindImage  NodeKind = "image"
	KindText   NodeKind = "text"
	KindGroup  NodeKind = "group"
	KindShadow NodeKind = "shadow"
)

// Node 是场景中的一个元素。坐标相对父节点左上角；子节点在自身填充之后绘制。
type Node struct {
	ID          string       `json:"id"`
	Kind        NodeKind     `json:"kind"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	W           float64      `json:"w"`
	H           float64      `json:"h"`
	Radius      float64      `json:"radius,omitempty"`
	Fill        *Paint       `json:"fill,omitempty"`
	Opacity     float64      `json:"opacity"`
	Shadow      *ShadowLayer `json:"shadow,omitempty"`
	Text        *TextBlock   `json:"text,omitempty"` // Box 为节点本地坐标
	Image       *ImageRef    `json:"image,omitempty"`
	Transform   *Transform   `json:"transform,omitempty"`
	Mask        *Mask        `json:"mask,omitempty"`
	PreviewOnly bool         `json:"previewOnly,omitempty"`
	Children    []*Node      `json:"children,omitempty"`
}

// PaintKind 填充方式。
type PaintKind string

const (
	PaintSolid   PaintKind = "solid"
	PaintLinear  PaintKind = "linear"
	PaintChecker PaintKind = "checker"
)

// Paint 描述一种填充：纯色、CSS 语义的双色线性渐变或棋盘格。
type Paint struct {
	Kind  PaintKind    `json:"kind"`
	Color config.Color `json:"color"`
	End   config.Color `json:"end,omitempty"`
	Angle float64      `json:"angle,omitempty"`
	Cell  float64      `json:"cell,omitempty"`
}

// ImageRef 引用渲染任务中按 Key 提供的位图，按 cover 方式铺满节点并裁成节点圆角。
type ImageRef struct {
	Key  string  `json:"key"`
	Blur float64 `json:"blur,omitempty"` // 高斯模糊 sigma（px）
}

// Transform 作用于节点及其子树。Rotate 以度为单位、顺时针，围绕 (OriginX, OriginY)；
// FlipY 在节点高度内做垂直翻转。
type Transform struct {
	Rotate  float64 `json:"rotate,omitempty"`
	OriginX float64 `json:"originX,omitempty"`
	OriginY float64 `json:"originY,omitempty"`
	FlipY   bool    `json:"flipY,omitempty"`
}

// Mask 是自上而下的线性透明度遮罩，取值 0-1。
type Mask struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// Alpha 返回节点不透明度，0 视为未设置。
func (n *Node) Alpha() float64 {
	if n.Opacity <= 0 {
		return 1
	}
	return n.Opacity
}

// Layered 表示节点需要先离屏绘制再合成（翻转、遮罩或半透明组）。
func (n *Node) Layered() bool {
	return n.Mask != nil || (n.Transform != nil && n.Transform.FlipY) || (n.Kind == KindGroup && n.Alpha() < 1)
}

// Walk 深度优先遍历节点，fn 返回 false 时不再进入子节点。
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find 按 ID 查找节点。
func (s *Scene) Find(id string) *Node {
	var found *Node
	if s == nil {
		return nil
	}
	s.Root.Walk(func(n *Node) bool {
		if n.ID == id {
			found = n
		}
		return found == nil
	})
	return found
}

// Count 统计满足条件的节点数。
func (s *Scene) Count(match func(*Node) bool) int {
	total := 0
	if s == nil {
		return 0
	}
	s.Root.Walk(func(n *Node) bool {
		if match(n) {
			total++
		}
		return true
	})
	return total
}

// Extent 返回节点及其子树在节点本地坐标中的覆盖范围，包含投影的偏移与扩散。
func (n *Node) Extent() Rect {
	minX, minY, maxX, maxY := 0.0, 0.0, n.W, n.H
	var visit func(c *Node, ox, oy float64)
	visit = func(c *Node, ox, oy float64) {
		x, y := ox+c.X, oy+c.Y
		x0, y0, x1, y1 := x, y, x+c.W, y+c.H
		if c.Shadow != nil {
			spread := 1.5 * c.Shadow.Blur
			x0, x1 = x0-spread, x1+spread
			y0, y1 = y0+c.Shadow.OffsetY-spread, y1+c.Shadow.OffsetY+spread
		}
		minX, minY = min(minX, x0), min(minY, y0)
		maxX, maxY = max(maxX, x1), max(maxY, y1)
		for _, gc := range c.Children {
			visit(gc, x, y)
		}
	}
	for _, c := range n.Children {
		visit(c, 0, 0)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// PivotExtent 把 Extent 扩展为以 (cx, cy) 为中心的对称范围，旋转位图后中心不变。
func (n *Node) PivotExtent(cx, cy float64) Rect {
	ext := n.Extent()
	hw := max(cx-ext.X, ext.X+ext.W-cx)
	hh := max(cy-ext.Y, ext.Y+ext.H-cy)
	return Rect{X: cx - hw, Y: cy - hh, W: 2 * hw, H: 2 * hh}
}
