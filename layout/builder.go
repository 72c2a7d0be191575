package layout

import (
	"fmt"

	"github.com/glid-app/studio/config"
)

// SourceKey 是截图在渲染任务 Images 中的键名。
const SourceKey = "source"

// Build 根据配置生成原生坐标的场景树。纯函数：相同输入得到相同场景。
// 预览缩放不是输入，它由 export.Stage 持有。
func Build(comp config.Composition, opts BuildOptions) (*Scene, error) {
	if comp == nil {
		return nil, fmt.Errorf("配置为空")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	switch c := comp.(type) {
	case *config.Post:
		return BuildPost(c, opts), nil
	case *config.Mockup:
		return BuildMockup(c, opts), nil
	default:
		return nil, fmt.Errorf("layout: 不支持的配置类型 %T", comp)
	}
}

// BuildPost 生成社交帖子场景。
func BuildPost(p *config.Post, opts BuildOptions) *Scene {
	plan := PlanPost(p, opts.Theme, opts.Typesetter)
	root := newScene(config.KindPost, plan.Width, plan.Height, opts)
	add := func(n *Node) { root.Root.Children = append(root.Root.Children, n) }

	add(backgroundNode(plan.Background, plan.Width, plan.Height))
	for i, c := range plan.Circles {
		add(circleNode(fmt.Sprintf("circle-%d", i+1), c))
	}
	if plan.Logo != nil {
		add(textNode("logo", *plan.Logo))
	}
	if plan.Badge != nil {
		add(pillNode("badge", *plan.Badge))
	}
	for _, block := range plan.Content {
		add(textNode(string(block.Role), block))
	}
	if plan.CTA != nil {
		add(pillNode("cta", *plan.CTA))
	}
	return root
}

func newScene(kind config.Kind, w, h float64, opts BuildOptions) *Scene {
	return &Scene{
		Version:  SceneVersion,
		Revision: opts.Revision,
		Kind:     kind,
		Width:    w,
		Height:   h,
		Root:     &Node{ID: "root", Kind: KindGroup, W: w, H: h, Opacity: 1},
	}
}

func backgroundNode(bg config.Background, w, h float64) *Node {
	n := &Node{ID: "background", Kind: KindRect, W: w, H: h, Opacity: 1}
	switch bg.Mode {
	case config.BackgroundGradient:
		n.Fill = &Paint{Kind: PaintLinear, Color: bg.Gradient.Start, End: bg.Gradient.End, Angle: bg.Gradient.Angle}
	case config.BackgroundTransparent:
		n.Fill = &Paint{Kind: PaintChecker, Color: Checker, End: InkLight, Cell: CheckerCell}
		n.PreviewOnly = true
	default:
		n.Fill = &Paint{Kind: PaintSolid, Color: bg.Color}
	}
	return n
}

func circleNode(id string, c Circle) *Node {
	return &Node{
		ID:      id,
		Kind:    KindRect,
		X:       c.CX - c.R,
		Y:       c.CY - c.R,
		W:       2 * c.R,
		H:       2 * c.R,
		Radius:  c.R,
		Fill:    &Paint{Kind: PaintSolid, Color: c.Color},
		Opacity: 1,
	}
}

func textNode(id string, b TextBlock) *Node {
	local := b.At(0, 0)
	return &Node{ID: id, Kind: KindText, X: b.Box.X, Y: b.Box.Y, W: b.Box.W, H: b.Box.H, Text: &local, Opacity: 1}
}

func pillNode(id string, p Pill) *Node {
	g := &Node{ID: id, Kind: KindGroup, X: p.Box.X, Y: p.Box.Y, W: p.Box.W, H: p.Box.H, Opacity: 1}
	g.Children = append(g.Children, &Node{
		ID:      id + "-pill",
		Kind:    KindRect,
		W:       p.Box.W,
		H:       p.Box.H,
		Radius:  p.Box.H / 2,
		Fill:    &Paint{Kind: PaintSolid, Color: p.Fill},
		Opacity: 1,
	})
	if p.Dot != nil {
		dot := *p.Dot
		dot.CX -= p.Box.X
		dot.CY -= p.Box.Y
		g.Children = append(g.Children, circleNode(id+"-dot", dot))
	}
	label := p.Label
	label.Box = label.Box.Offset(-p.Box.X, -p.Box.Y)
	g.Children = append(g.Children, textNode(id+"-label", label))
	return g
}
