package layout

import (
	"math"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/fonts"
	"github.com/glid-app/studio/theme"
)

// 该文件是两条渲染路径共用的纯函数：颜色、字号、折行宽度与装饰几何。
// 主渲染器（场景）与兜底渲染器（直接绘制）都从这里取值，导出结果才能一致。

// Role 标识一段文字在画面中的用途。
type Role string

const (
	RoleLogo        Role = "logo"
	RoleBadge       Role = "badge"
	RoleHeadline    Role = "headline"
	RoleSubheadline Role = "subheadline"
	RoleBody        Role = "body"
	RoleCTA         Role = "cta"
	RoleHint        Role = "hint"
)

// 固定文案。
const (
	LogoText   = "glid"
	BadgeLabel = "Launching 2026"
	EmptyHint  = "Upload a screenshot to preview"
)

// 固定颜色。
var (
	InkDark   = config.MustHex("#1c1917")
	MutedDark = config.MustHex("#57534e")
	InkLight  = config.MustHex("#ffffff")
	BadgeDot  = config.Orange
	Frame     = config.MustHex("#1c1917")
	Bezel     = config.MustHex("#0c0a09")
	Island    = config.MustHex("#000000")
	Checker   = config.MustHex("#cccccc")
)

// CheckerCell 透明背景预览棋盘格边长（px）。
const CheckerCell = 10

// Font 描述一个内置字体。
type Font struct {
	Name string `json:"name"`
	Src  string `json:"src"`
}

// FontFor 返回角色使用的字体。
func FontFor(role Role) Font {
	switch role {
	case RoleLogo, RoleHeadline, RoleCTA:
		return Font{Name: "DejaVuSansCondensed-Bold", Src: fonts.Bold}
	default:
		return Font{Name: "DejaVuSansCondensed", Src: fonts.Regular}
	}
}

// Pad 为画面四周留白：0.08·min(W,H)。
func Pad(w, h float64) float64 { return 0.08 * math.Min(w, h) }

// FontSize 返回角色在目标尺寸下的字号（px）。
func FontSize(role Role, t config.Target) float64 {
	w, h := float64(t.Width), float64(t.Height)
	m := math.Min(w, h)
	switch role {
	case RoleLogo:
		return 0.045 * m
	case RoleBadge:
		return 0.022 * m
	case RoleHeadline:
		if t.IsStory() {
			return 0.085 * w
		}
		return 0.075 * w
	case RoleSubheadline:
		return 0.042 * w
	case RoleBody:
		return 0.03 * w
	case RoleCTA:
		return 0.026 * w
	default:
		return 0.025 * m
	}
}

// LineHeight 返回行高倍数。
func LineHeight(role Role) float64 {
	switch role {
	case RoleHeadline:
		return 1.15
	case RoleSubheadline:
		return 1.3
	case RoleBody, RoleHint:
		return 1.5
	default:
		return 1
	}
}

// WrapWidth 返回角色的折行宽度；正文更窄。
func WrapWidth(role Role, t config.Target) float64 {
	w, h := float64(t.Width), float64(t.Height)
	full := w - 2*Pad(w, h)
	if role == RoleBody {
		return 0.8 * full
	}
	return full
}

// ContentCenter 返回正文块竖直中心；快拍尺寸整体上移。
func ContentCenter(t config.Target) float64 {
	if t.IsStory() {
		return 0.45 * float64(t.Height)
	}
	return 0.5 * float64(t.Height)
}

// Inks 是某个背景上可用的一组文字与装饰颜色。
type Inks struct {
	Text     config.Color `json:"text"`
	Muted    config.Color `json:"muted"`
	BadgeBg  config.Color `json:"badgeBg"`
	Circle   config.Color `json:"circle"`
	CTALabel config.Color `json:"ctaLabel"`
}

// InkFor 根据背景代表色选择深色或浅色文字；透明背景跟随主题。
func InkFor(bg config.Background, mode theme.Mode) Inks {
	dark := false
	if bg.Mode == config.BackgroundTransparent {
		dark = mode != theme.Dark
	} else {
		dark = bg.Tone().IsLight()
	}
	ink := Inks{Text: InkLight, Muted: InkLight.WithAlpha(0.8), CTALabel: InkDark}
	if dark {
		ink = Inks{Text: InkDark, Muted: MutedDark, CTALabel: config.Sand}
	}
	ink.BadgeBg = ink.Text.WithAlpha(0.12)
	ink.Circle = ink.Text.WithAlpha(0.06)
	return ink
}

// BlockGap 是正文块之间的间距：下一块字号的 0.4 倍。
func BlockGap(nextSize float64) float64 { return 0.4 * nextSize }

// DecoCircles 返回两个低透明度装饰圆：(圆心 x, 圆心 y, 半径)。
func DecoCircles(w, h float64) [2][3]float64 {
	m := math.Min(w, h)
	return [2][3]float64{
		{0.85 * w, 0.15 * h, 0.25 * m},
		{0.1 * w, 0.9 * h, 0.18 * m},
	}
}

// BadgeMetrics 给出徽章胶囊的尺寸：高 2.2fs，圆点半径 0.3fs，左右内边距 0.8fs。
func BadgeMetrics(fs, labelWidth float64) (w, h, dotR, padX, gap float64) {
	h = 2.2 * fs
	dotR = 0.3 * fs
	padX = 0.8 * fs
	gap = 0.5 * fs
	w = padX + 2*dotR + gap + labelWidth + padX
	return w, h, dotR, padX, gap
}

// CTAMetrics 给出行动按钮尺寸：高 2.4fs，宽为文字宽 + 3.2fs。
func CTAMetrics(fs, labelWidth float64) (w, h float64) {
	return labelWidth + 3.2*fs, 2.4 * fs
}

// DeviceFactor 是设备缩放系数 Scale/100 × 0.7。
func DeviceFactor(scale float64) float64 { return scale / 100 * 0.7 }

// ShadowLayer 是一层投影。
type ShadowLayer struct {
	OffsetY float64      `json:"offsetY"`
	Blur    float64      `json:"blur"`
	Color   config.Color `json:"color"`
}

// DeviceShadows 返回两层投影，强度为 0 时返回 nil；偏移、模糊与不透明度随强度单调递增。
// scale 为 Scale/100，不含设备尺寸的 0.7 系数。
func DeviceShadows(intensity, scale float64) []ShadowLayer {
	d := intensity / 100
	if d <= 0 {
		return nil
	}
	black := config.Color{A: 0xff}
	return []ShadowLayer{
		{OffsetY: 20 * scale * d, Blur: 60 * scale * d, Color: black.WithAlpha(0.5 * d)},
		{OffsetY: 10 * scale * d, Blur: 30 * scale * d, Color: black.WithAlpha(0.3 * d)},
	}
}

// 倒影参数。
const (
	ReflectionRatio   = 0.3
	ReflectionGap     = 20
	ReflectionOpacity = 0.15
	ReflectionFadeTop = 0.3
)

// 模糊背景参数：截图铺满后按 0.04·min(W,H) 的 sigma 模糊，叠加半透明。
const (
	BlurRatio   = 0.04
	BlurOpacity = 0.6
)
