package layout

import (
	"math"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/theme"
)

// Align 文本水平对齐方式。
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// TextBlock 是已经折好行并定好位置的一段文字。
type TextBlock struct {
	Role       Role         `json:"role"`
	Font       Font         `json:"font"`
	Size       float64      `json:"size"`
	LineHeight float64      `json:"lineHeight"` // 每行高度（px）
	Lines      []TextLine   `json:"lines"`
	Box        Rect         `json:"box"`
	Color      config.Color `json:"color"`
	Align      Align        `json:"align"`
}

// LineRect 返回第 i 行的行框。渲染器把基线放在 top + (行高 + ascent - descent)/2。
func (b TextBlock) LineRect(i int) Rect {
	line := b.Lines[i]
	x := b.Box.X
	if b.Align == AlignCenter {
		x += (b.Box.W - line.Width) / 2
	}
	return Rect{X: x, Y: b.Box.Y + float64(i)*b.LineHeight, W: line.Width, H: b.LineHeight}
}

// At 返回移动到 (x, y) 的副本。
func (b TextBlock) At(x, y float64) TextBlock {
	b.Box.X, b.Box.Y = x, y
	return b
}

// Baseline 按字体度量计算行框内的基线位置。
func Baseline(line Rect, ascent, descent float64) float64 {
	return line.Y + (line.H+ascent-descent)/2
}

// Circle 装饰圆或徽章圆点。
type Circle struct {
	CX    float64      `json:"cx"`
	CY    float64      `json:"cy"`
	R     float64      `json:"r"`
	Color config.Color `json:"color"`
}

// Pill 圆角胶囊（徽章、行动按钮）。
type Pill struct {
	Box   Rect         `json:"box"`
	Fill  config.Color `json:"fill"`
	Dot   *Circle      `json:"dot,omitempty"`
	Label TextBlock    `json:"label"`
}

// PostPlan 是社交帖子的完整排版结果，坐标为原生像素。
type PostPlan struct {
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Background config.Background `json:"background"`
	Inks       Inks              `json:"inks"`
	Circles    []Circle          `json:"circles"`
	Logo       *TextBlock        `json:"logo,omitempty"`
	Badge      *Pill             `json:"badge,omitempty"`
	Content    []TextBlock       `json:"content"`
	CTA        *Pill             `json:"cta,omitempty"`
}

// PlanPost 计算帖子中每个元素的位置。空文案与关闭的开关不产生元素。
func PlanPost(p *config.Post, mode theme.Mode, ts Typesetter) PostPlan {
	t := p.Target()
	w, h := float64(t.Width), float64(t.Height)
	pad := Pad(w, h)
	ink := InkFor(p.Background, mode)

	plan := PostPlan{Width: w, Height: h, Background: p.Background, Inks: ink}
	for _, c := range DecoCircles(w, h) {
		plan.Circles = append(plan.Circles, Circle{CX: c[0], CY: c[1], R: c[2], Color: ink.Circle})
	}

	if p.ShowLogo {
		fs := FontSize(RoleLogo, t)
		logo := singleLine(ts, RoleLogo, LogoText, fs, ink.Text)
		logo.Box.X, logo.Box.Y = pad, pad
		plan.Logo = &logo
	}

	if p.ShowBadge {
		fs := FontSize(RoleBadge, t)
		label := singleLine(ts, RoleBadge, BadgeLabel, fs, ink.Text)
		bw, bh, dotR, padX, gap := BadgeMetrics(fs, label.Box.W)
		box := Rect{X: w - pad - bw, Y: pad, W: bw, H: bh}
		label = label.At(box.X+padX+2*dotR+gap, box.Y+(bh-fs)/2)
		plan.Badge = &Pill{
			Box:   box,
			Fill:  ink.BadgeBg,
			Dot:   &Circle{CX: box.X + padX + dotR, CY: box.Y + bh/2, R: dotR, Color: BadgeDot},
			Label: label,
		}
	}

	type field struct {
		role  Role
		text  string
		color config.Color
	}
	fields := []field{
		{RoleHeadline, p.Headline, ink.Text},
		{RoleSubheadline, p.Subheadline, ink.Muted},
		{RoleBody, p.Body, ink.Muted},
	}
	total := 0.0
	for _, f := range fields {
		fs := FontSize(f.role, t)
		lines := WrapLines(f.text, WrapWidth(f.role, t), measurer(ts, f.role, fs))
		if len(lines) == 0 {
			continue
		}
		lh := fs * LineHeight(f.role)
		block := TextBlock{
			Role:       f.role,
			Font:       FontFor(f.role),
			Size:       fs,
			LineHeight: lh,
			Lines:      lines,
			Box:        Rect{X: pad, W: w - 2*pad, H: lh * float64(len(lines))},
			Color:      f.color,
			Align:      AlignCenter,
		}
		if len(plan.Content) > 0 {
			total += BlockGap(fs)
		}
		total += block.Box.H
		plan.Content = append(plan.Content, block)
	}
	y := ContentCenter(t) - total/2
	for i := range plan.Content {
		if i > 0 {
			y += BlockGap(plan.Content[i].Size)
		}
		plan.Content[i].Box.Y = y
		y += plan.Content[i].Box.H
	}

	if p.CTA != "" {
		fs := FontSize(RoleCTA, t)
		label := singleLine(ts, RoleCTA, p.CTA, fs, ink.CTALabel)
		cw, ch := CTAMetrics(fs, label.Box.W)
		box := Rect{X: (w - cw) / 2, Y: h - pad - ch, W: cw, H: ch}
		label = label.At(box.X+(cw-label.Box.W)/2, box.Y+(ch-fs)/2)
		plan.CTA = &Pill{Box: box, Fill: ink.Text, Label: label}
	}
	return plan
}

func singleLine(ts Typesetter, role Role, text string, size float64, c config.Color) TextBlock {
	width := ts.TextWidth(text, FontFor(role), size)
	return TextBlock{
		Role:       role,
		Font:       FontFor(role),
		Size:       size,
		LineHeight: size,
		Lines:      []TextLine{{Content: text, Width: width}},
		Box:        Rect{W: width, H: size},
		Color:      c,
		Align:      AlignLeft,
	}
}

// DevicePlan 描述设备外框及其部件，坐标相对设备左上角。
type DevicePlan struct {
	Frame        Rect          `json:"frame"` // 画布坐标
	Radius       float64       `json:"radius"`
	Bezel        Rect          `json:"bezel"`
	BezelRadius  float64       `json:"bezelRadius"`
	Screen       Rect          `json:"screen"`
	ScreenRadius float64       `json:"screenRadius"`
	Island       *Rect         `json:"island,omitempty"`
	Shadows      []ShadowLayer `json:"shadows,omitempty"`
	Rotation     float64       `json:"rotation"`
	Reflection   *Rect         `json:"reflection,omitempty"`
	// ReflectionScreen 相对倒影左上角。
	ReflectionScreen Rect `json:"reflectionScreen"`
}

// MockupPlan 是截图样机的排版结果。Device 为 nil 表示尚未上传截图。
type MockupPlan struct {
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Background config.Background `json:"background"`
	Inks       Inks              `json:"inks"`
	BlurSigma  float64           `json:"blurSigma,omitempty"`
	Device     *DevicePlan       `json:"device,omitempty"`
	Empty      *TextBlock        `json:"empty,omitempty"`
}

// PlanMockup 计算样机几何：外框、边框与圆角随 Scale/100×0.7 缩放，设备居中。
func PlanMockup(m *config.Mockup, mode theme.Mode, ts Typesetter) MockupPlan {
	t := m.Target()
	w, h := float64(t.Width), float64(t.Height)
	plan := MockupPlan{Width: w, Height: h, Background: m.Background, Inks: InkFor(m.Background, mode)}
	if m.Background.Mode == config.BackgroundBlur {
		plan.BlurSigma = BlurRatio * math.Min(w, h)
	}

	if m.Source == nil {
		fs := FontSize(RoleHint, t)
		hint := singleLine(ts, RoleHint, EmptyHint, fs, plan.Inks.Muted)
		hint.LineHeight = fs * LineHeight(RoleHint)
		hint.Box.H = hint.LineHeight
		hint = hint.At((w-hint.Box.W)/2, (h-hint.Box.H)/2)
		plan.Empty = &hint
		return plan
	}

	dev := m.Profile()
	f := DeviceFactor(m.Scale)
	dw, dh := float64(dev.NativeWidth)*f, float64(dev.NativeHeight)*f
	radius := float64(dev.CornerRadius) * f
	bezel := float64(dev.Bezel) * f
	rim := bezel / 4
	screenRadius := math.Max(float64(dev.CornerRadius-dev.Bezel)*f, 0)

	d := &DevicePlan{
		Frame:        CenterRect(Size{W: w, H: h}, dw, dh),
		Radius:       radius,
		Bezel:        Inset(Rect{W: dw, H: dh}, rim),
		BezelRadius:  math.Max(radius-rim, 0),
		Screen:       Inset(Rect{W: dw, H: dh}, bezel),
		ScreenRadius: screenRadius,
		Shadows:      DeviceShadows(m.ShadowIntensity, m.Scale/100),
		Rotation:     m.Rotation,
	}
	if dev.HasIsland {
		iw, ih := 0.3*d.Screen.W, 0.035*d.Screen.H
		d.Island = &Rect{X: (dw - iw) / 2, Y: bezel + 0.012*dh, W: iw, H: ih}
	}
	if m.ShowReflection {
		rh := ReflectionRatio * dh
		d.Reflection = &Rect{X: 0, Y: dh + ReflectionGap*m.Scale/100, W: dw, H: rh}
		d.ReflectionScreen = Inset(Rect{W: dw, H: rh}, bezel)
	}
	plan.Device = d
	return plan
}

// Extent 返回设备（含投影与倒影）相对设备左上角的覆盖范围；有旋转时以外框中心对称扩展。
func (d *DevicePlan) Extent() Rect {
	fw, fh := d.Frame.W, d.Frame.H
	ext := Rect{W: fw, H: fh}
	for _, s := range d.Shadows {
		spread := 1.5 * s.Blur
		ext = ext.Union(Rect{X: -spread, Y: s.OffsetY - spread, W: fw + 2*spread, H: fh + 2*spread})
	}
	if d.Reflection != nil {
		ext = ext.Union(*d.Reflection)
	}
	if d.Rotation == 0 {
		return ext
	}
	cx, cy := fw/2, fh/2
	hw := max(cx-ext.X, ext.X+ext.W-cx)
	hh := max(cy-ext.Y, ext.Y+ext.H-cy)
	return Rect{X: cx - hw, Y: cy - hh, W: 2 * hw, H: 2 * hh}
}
