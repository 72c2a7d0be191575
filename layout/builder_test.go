package layout

import (
	"encoding/json"
	"image"
	"math"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/theme"
)

// stubTypesetter 是一个最小实现，仅用于测试，避免引入 renderer 造成循环依赖：
// 每个字符宽度为字号的一半。
type stubTypesetter struct{}

func (stubTypesetter) TextWidth(content string, font Font, size float64) float64 {
	return float64(utf8.RuneCountInString(content)) * size * 0.5
}

func buildScene(t *testing.T, comp config.Composition) *Scene {
	t.Helper()
	scene, err := Build(comp, BuildOptions{Typesetter: stubTypesetter{}, Theme: theme.Light})
	if err != nil {
		t.Fatalf("构建场景失败: %v", err)
	}
	return scene
}

func withSource(m *config.Mockup) *config.Mockup {
	m.SetSource(&config.Source{Name: "shot.png", MIME: "image/png", Image: image.NewRGBA(image.Rect(0, 0, 8, 16))})
	return m
}

// TestBuildIsIdempotent 相同输入构建两次，场景完全一致。
func TestBuildIsIdempotent(t *testing.T) {
	for _, comp := range []config.Composition{config.NewPost(), withSource(config.NewMockup())} {
		a, b := buildScene(t, comp), buildScene(t, comp)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s 场景两次构建结果不同", comp.Kind())
		}
		ja, _ := json.Marshal(a)
		jb, _ := json.Marshal(b)
		if string(ja) != string(jb) {
			t.Fatalf("%s 场景 JSON 不同", comp.Kind())
		}
	}
}

func TestBuildRejectsMissingTypesetter(t *testing.T) {
	if _, err := Build(config.NewPost(), BuildOptions{}); err == nil {
		t.Fatalf("缺少 Typesetter 时应返回错误")
	}
	if _, err := Build(nil, BuildOptions{Typesetter: stubTypesetter{}}); err == nil {
		t.Fatalf("配置为空时应返回错误")
	}
}

// TestSceneMatchesTarget 场景尺寸等于目标像素尺寸。
func TestSceneMatchesTarget(t *testing.T) {
	for _, tg := range config.PostTargets() {
		p := config.NewPost()
		if err := p.SetPlatform(tg.Key); err != nil {
			t.Fatal(err)
		}
		s := buildScene(t, p)
		if s.Width != float64(tg.Width) || s.Height != float64(tg.Height) {
			t.Fatalf("%s: 场景 %gx%g 与目标 %dx%d 不符", tg.Key, s.Width, s.Height, tg.Width, tg.Height)
		}
	}
}

// TestEmptyFieldsProduceNoNodes 空文案与关闭的开关不产生任何节点。
func TestEmptyFieldsProduceNoNodes(t *testing.T) {
	p := config.NewPost()
	full := buildScene(t, p)
	for _, id := range []string{"logo", "badge", "headline", "subheadline", "body", "cta"} {
		if full.Find(id) == nil {
			t.Fatalf("默认帖子缺少节点 %s", id)
		}
	}

	p.Subheadline = "   "
	p.Body = ""
	p.CTA = ""
	p.ShowLogo = false
	p.ShowBadge = false
	s := buildScene(t, p)
	for _, id := range []string{"logo", "badge", "subheadline", "body", "cta"} {
		if s.Find(id) != nil {
			t.Fatalf("节点 %s 不应存在", id)
		}
	}
	if s.Find("headline") == nil {
		t.Fatalf("标题节点应保留")
	}
}

// TestContentIsCentered 正文块整体竖直居中，快拍尺寸中心在 0.45H。
func TestContentIsCentered(t *testing.T) {
	for _, key := range []string{config.PlatformInstagramSquare, config.PlatformInstagramStory} {
		p := config.NewPost()
		_ = p.SetPlatform(key)
		plan := PlanPost(p, theme.Light, stubTypesetter{})
		first, last := plan.Content[0], plan.Content[len(plan.Content)-1]
		mid := (first.Box.Y + last.Box.Y + last.Box.H) / 2
		want := ContentCenter(p.Target())
		if diff := mid - want; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("%s: 正文中心 %g，期望 %g", key, mid, want)
		}
	}
}

// TestWrappedLinesFitWidth 除单个超宽词外，每行宽度不超过折行宽度。
func TestWrappedLinesFitWidth(t *testing.T) {
	p := config.NewPost()
	p.Body = "Tennis at the park. Basketball downtown. Pickleball at noon. Volleyball on the beach after work."
	plan := PlanPost(p, theme.Light, stubTypesetter{})
	for _, block := range plan.Content {
		limit := WrapWidth(block.Role, p.Target())
		for _, line := range block.Lines {
			if line.Width > limit && len(strings.Fields(line.Content)) > 1 {
				t.Fatalf("%s 行 %q 宽 %g 超过 %g", block.Role, line.Content, line.Width, limit)
			}
		}
	}
}

// TestInkFollowsBackground 浅色背景用深色文字，其余用白色；透明背景跟随主题。
func TestInkFollowsBackground(t *testing.T) {
	sand, _ := config.PaletteBackground(config.PaletteSand)
	field, _ := config.PaletteBackground(config.PaletteField)
	grad, _ := config.PaletteBackground(config.PaletteGradient)
	if got := InkFor(sand, theme.Dark).Text; got != InkDark {
		t.Fatalf("sand 背景文字应为深色，实际 %s", got.Hex())
	}
	if got := InkFor(field, theme.Light).Text; got != InkLight {
		t.Fatalf("field 背景文字应为白色，实际 %s", got.Hex())
	}
	if got := InkFor(grad, theme.Light).Text; got != InkLight {
		t.Fatalf("渐变背景文字应为白色，实际 %s", got.Hex())
	}
	clear := config.Background{Mode: config.BackgroundTransparent}
	if InkFor(clear, theme.Light).Text != InkDark || InkFor(clear, theme.Dark).Text != InkLight {
		t.Fatalf("透明背景文字颜色应跟随主题")
	}
}

// TestShadowBoundaries 强度为 0 时没有投影节点；偏移、模糊与不透明度随强度单调递增。
func TestShadowBoundaries(t *testing.T) {
	m := withSource(config.NewMockup())
	m.SetShadow(0)
	s := buildScene(t, m)
	if n := s.Count(func(n *Node) bool { return n.Kind == KindShadow }); n != 0 {
		t.Fatalf("强度为 0 时不应有投影节点，实际 %d", n)
	}

	prev := DeviceShadows(1, 0.8)
	for v := 2.0; v <= 100; v++ {
		cur := DeviceShadows(v, 0.8)
		for i := range cur {
			if cur[i].OffsetY <= prev[i].OffsetY || cur[i].Blur <= prev[i].Blur || cur[i].Color.A < prev[i].Color.A {
				t.Fatalf("强度 %g 的第 %d 层投影没有单调增加", v, i)
			}
		}
		prev = cur
	}

	m.SetShadow(100)
	s = buildScene(t, m)
	if n := s.Count(func(n *Node) bool { return n.Kind == KindShadow }); n != 2 {
		t.Fatalf("期望 2 层投影，实际 %d", n)
	}
}

// TestReflectionSubtree 倒影开关只增减倒影子树。
func TestReflectionSubtree(t *testing.T) {
	m := withSource(config.NewMockup())
	with := buildScene(t, m)
	m.ShowReflection = false
	without := buildScene(t, m)

	all := func(*Node) bool { return true }
	if diff := with.Count(all) - without.Count(all); diff != 4 {
		t.Fatalf("倒影子树应为 4 个节点，实际差 %d", diff)
	}
	ref := with.Find("reflection")
	// 倒影复制 边框 → 屏幕 → 截图 这一层级。
	chain := []string{"reflection-bezel", "reflection-screen", "reflection-screenshot"}
	for n, i := ref, 0; i < len(chain); i++ {
		if len(n.Children) != 1 || n.Children[0].ID != chain[i] {
			t.Fatalf("倒影层级应为 %v，在 %s 处不符", chain, n.ID)
		}
		n = n.Children[0]
	}
	if b := with.Find("reflection-bezel"); b.Fill == nil || b.Fill.Color != Bezel {
		t.Fatalf("倒影边框应使用边框颜色: %+v", b.Fill)
	}
	if ref == nil || ref.Transform == nil || !ref.Transform.FlipY || ref.Mask == nil {
		t.Fatalf("倒影应翻转并带遮罩: %+v", ref)
	}
	if ref.Opacity != ReflectionOpacity {
		t.Fatalf("倒影不透明度应为 %g，实际 %g", ReflectionOpacity, ref.Opacity)
	}
	dev := with.Find("device")
	if dev.Children[len(dev.Children)-1] != ref {
		t.Fatalf("倒影应位于设备组内")
	}
}

// TestShadowAndGapFollowScale 投影与倒影间距按 Scale/100 缩放，设备尺寸另乘 0.7。
func TestShadowAndGapFollowScale(t *testing.T) {
	m := withSource(config.NewMockup())
	m.SetScale(80)
	m.SetShadow(50)
	plan := PlanMockup(m, theme.Light, stubTypesetter{})
	d := plan.Device
	if got := d.Shadows[0].OffsetY; math.Abs(got-8) > 1e-9 {
		t.Fatalf("第一层投影偏移应为 20×0.8×0.5=8，实际 %g", got)
	}
	if got := d.Shadows[0].Blur; math.Abs(got-24) > 1e-9 {
		t.Fatalf("第一层投影模糊应为 60×0.8×0.5=24，实际 %g", got)
	}
	if gap := d.Reflection.Y - d.Frame.H; math.Abs(gap-16) > 1e-9 {
		t.Fatalf("倒影间距应为 20×0.8=16，实际 %g", gap)
	}
}

// TestIslandOnlyForIslandDevices 只有带灵动岛的设备才有 island 节点。
func TestIslandOnlyForIslandDevices(t *testing.T) {
	for _, d := range config.Devices() {
		m := withSource(config.NewMockup())
		if err := m.SetDevice(d.Key); err != nil {
			t.Fatal(err)
		}
		has := buildScene(t, m).Find("island") != nil
		if has != d.HasIsland {
			t.Fatalf("%s: island 节点存在=%v，期望 %v", d.Key, has, d.HasIsland)
		}
	}
}

// TestRotationOnDeviceGroupOnly 旋转只出现在设备组上。
func TestRotationOnDeviceGroupOnly(t *testing.T) {
	m := withSource(config.NewMockup())
	m.SetRotation(-12)
	s := buildScene(t, m)
	s.Root.Walk(func(n *Node) bool {
		if n.Transform != nil && n.Transform.Rotate != 0 && n.ID != "device" {
			t.Fatalf("节点 %s 不应带旋转", n.ID)
		}
		return true
	})
	dev := s.Find("device")
	if dev.Transform == nil || dev.Transform.Rotate != -12 {
		t.Fatalf("设备组旋转应为 -12")
	}
	if dev.Transform.OriginX != dev.W/2 || dev.Transform.OriginY != dev.H/2 {
		t.Fatalf("旋转中心应为外框中心")
	}
}

// TestDeviceScalesWithFactor 外框、边框与圆角按 Scale/100×0.7 缩放。
func TestDeviceScalesWithFactor(t *testing.T) {
	m := withSource(config.NewMockup())
	m.SetScale(100)
	dev := m.Profile()
	s := buildScene(t, m)
	frame := s.Find("frame")
	if frame.W != float64(dev.NativeWidth)*0.7 || frame.Radius != float64(dev.CornerRadius)*0.7 {
		t.Fatalf("外框尺寸 %gx%g r%g 与缩放系数不符", frame.W, frame.H, frame.Radius)
	}
	screen := s.Find("screen")
	bezel := s.Find("bezel")
	if got := bezel.X + screen.X; math.Abs(got-float64(dev.Bezel)*0.7) > 1e-9 {
		t.Fatalf("屏幕距外框 %g，期望 %g", got, float64(dev.Bezel)*0.7)
	}
}

// TestMockupWithoutSource 未上传截图时只有背景与提示文字。
func TestMockupWithoutSource(t *testing.T) {
	s := buildScene(t, config.NewMockup())
	if s.Find("device") != nil {
		t.Fatalf("没有截图时不应绘制设备")
	}
	if s.Find("empty") == nil {
		t.Fatalf("没有截图时应显示提示文字")
	}
}

// TestTransparentCheckerIsPreviewOnly 透明背景的棋盘格只用于预览。
func TestTransparentCheckerIsPreviewOnly(t *testing.T) {
	m := withSource(config.NewMockup())
	m.SetTransparent()
	bg := buildScene(t, m).Find("background")
	if bg.Fill.Kind != PaintChecker || !bg.PreviewOnly {
		t.Fatalf("透明背景应为仅预览的棋盘格: %+v", bg)
	}
}

// TestBlurBackdrop 模糊背景在纯色之上叠加模糊截图。
func TestBlurBackdrop(t *testing.T) {
	m := withSource(config.NewMockup())
	m.SetBlur(config.Stone)
	s := buildScene(t, m)
	bd := s.Find("backdrop")
	if bd == nil || bd.Image == nil || bd.Image.Blur <= 0 {
		t.Fatalf("模糊背景缺少 backdrop 节点")
	}
	if s.Root.Children[0].ID != "background" || s.Root.Children[1] != bd {
		t.Fatalf("backdrop 应紧随纯色背景")
	}
}

// TestDeviceExtentCoversShadowAndReflection 设备组范围包含投影与倒影。
func TestDeviceExtentCoversShadowAndReflection(t *testing.T) {
	m := withSource(config.NewMockup())
	m.SetShadow(100)
	dev := buildScene(t, m).Find("device")
	ext := dev.Extent()
	if ext.X >= 0 || ext.Y >= 0 {
		t.Fatalf("投影应向外扩散: %+v", ext)
	}
	ref := dev.Children[len(dev.Children)-1]
	if ext.Y+ext.H < ref.Y+ref.H {
		t.Fatalf("范围应覆盖倒影: %+v", ext)
	}
	piv := dev.PivotExtent(dev.W/2, dev.H/2)
	if cx, cy := piv.Center(); math.Abs(cx-dev.W/2) > 1e-9 || math.Abs(cy-dev.H/2) > 1e-9 {
		t.Fatalf("旋转范围应以外框中心为中心: %+v", piv)
	}
}
