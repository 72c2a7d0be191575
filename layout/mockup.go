package layout

import (
	"fmt"

	"github.com/glid-app/studio/config"
)

// BuildMockup 生成截图样机场景：外框 → 边框 → 屏幕 → 截图；倒影复制边框 → 屏幕 → 截图并与外框同在设备组内，
// 旋转只设置在设备组上一次。
func BuildMockup(m *config.Mockup, opts BuildOptions) *Scene {
	plan := PlanMockup(m, opts.Theme, opts.Typesetter)
	scene := newScene(config.KindMockup, plan.Width, plan.Height, opts)
	root := scene.Root

	root.Children = append(root.Children, backgroundNode(plan.Background, plan.Width, plan.Height))
	if plan.BlurSigma > 0 && plan.Device != nil {
		root.Children = append(root.Children, &Node{
			ID:      "backdrop",
			Kind:    KindImage,
			W:       plan.Width,
			H:       plan.Height,
			Image:   &ImageRef{Key: SourceKey, Blur: plan.BlurSigma},
			Opacity: BlurOpacity,
		})
	}
	if plan.Empty != nil {
		root.Children = append(root.Children, textNode("empty", *plan.Empty))
		return scene
	}
	root.Children = append(root.Children, deviceNode(plan.Device))
	return scene
}

func deviceNode(d *DevicePlan) *Node {
	fw, fh := d.Frame.W, d.Frame.H
	group := &Node{ID: "device", Kind: KindGroup, X: d.Frame.X, Y: d.Frame.Y, W: fw, H: fh, Opacity: 1}
	if d.Rotation != 0 {
		group.Transform = &Transform{Rotate: d.Rotation, OriginX: fw / 2, OriginY: fh / 2}
	}

	for i, s := range d.Shadows {
		layer := s
		group.Children = append(group.Children, &Node{
			ID:      fmt.Sprintf("shadow-%d", i+1),
			Kind:    KindShadow,
			W:       fw,
			H:       fh,
			Radius:  d.Radius,
			Shadow:  &layer,
			Opacity: 1,
		})
	}

	screen := &Node{
		ID:      "screen",
		Kind:    KindRect,
		X:       d.Screen.X - d.Bezel.X,
		Y:       d.Screen.Y - d.Bezel.Y,
		W:       d.Screen.W,
		H:       d.Screen.H,
		Radius:  d.ScreenRadius,
		Fill:    &Paint{Kind: PaintSolid, Color: Island},
		Opacity: 1,
		Children: []*Node{{
			ID:      "screenshot",
			Kind:    KindImage,
			W:       d.Screen.W,
			H:       d.Screen.H,
			Radius:  d.ScreenRadius,
			Image:   &ImageRef{Key: SourceKey},
			Opacity: 1,
		}},
	}
	if d.Island != nil {
		is := d.Island.Offset(-d.Screen.X, -d.Screen.Y)
		screen.Children = append(screen.Children, &Node{
			ID:      "island",
			Kind:    KindRect,
			X:       is.X,
			Y:       is.Y,
			W:       is.W,
			H:       is.H,
			Radius:  is.H / 2,
			Fill:    &Paint{Kind: PaintSolid, Color: Island},
			Opacity: 1,
		})
	}
	bezel := &Node{
		ID:       "bezel",
		Kind:     KindRect,
		X:        d.Bezel.X,
		Y:        d.Bezel.Y,
		W:        d.Bezel.W,
		H:        d.Bezel.H,
		Radius:   d.BezelRadius,
		Fill:     &Paint{Kind: PaintSolid, Color: Bezel},
		Opacity:  1,
		Children: []*Node{screen},
	}
	frame := &Node{
		ID:       "frame",
		Kind:     KindRect,
		W:        fw,
		H:        fh,
		Radius:   d.Radius,
		Fill:     &Paint{Kind: PaintSolid, Color: Frame},
		Opacity:  1,
		Children: []*Node{bezel},
	}
	group.Children = append(group.Children, frame)

	if d.Reflection != nil {
		r := *d.Reflection
		group.Children = append(group.Children, &Node{
			ID:        "reflection",
			Kind:      KindGroup,
			X:         r.X,
			Y:         r.Y,
			W:         r.W,
			H:         r.H,
			Opacity:   ReflectionOpacity,
			Transform: &Transform{FlipY: true},
			// 遮罩在翻转后的画面上自上而下渐隐，靠近设备的一端最清晰。
			Mask: &Mask{From: ReflectionFadeTop, To: 0},
			Children: []*Node{{
				ID:      "reflection-bezel",
				Kind:    KindRect,
				W:       r.W,
				H:       r.H,
				Radius:  d.Radius,
				Fill:    &Paint{Kind: PaintSolid, Color: Bezel},
				Opacity: 1,
				Children: []*Node{{
					ID:      "reflection-screen",
					Kind:    KindRect,
					X:       d.ReflectionScreen.X,
					Y:       d.ReflectionScreen.Y,
					W:       d.ReflectionScreen.W,
					H:       d.ReflectionScreen.H,
					Radius:  d.ScreenRadius,
					Fill:    &Paint{Kind: PaintSolid, Color: Island},
					Opacity: 1,
					Children: []*Node{{
						ID:      "reflection-screenshot",
						Kind:    KindImage,
						W:       d.ReflectionScreen.W,
						H:       d.ReflectionScreen.H,
						Radius:  d.ScreenRadius,
						Image:   &ImageRef{Key: SourceKey},
						Opacity: 1,
					}},
				}},
			}},
		})
	}
	return group
}
