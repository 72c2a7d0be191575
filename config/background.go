package config

import (
	"fmt"
	"math"
)

// BackgroundMode 背景模式。
type BackgroundMode string

const (
	BackgroundSolid       BackgroundMode = "solid"
	BackgroundGradient    BackgroundMode = "gradient"
	BackgroundBlur        BackgroundMode = "blur"        // 纯色 + 截图模糊铺底
	BackgroundTransparent BackgroundMode = "transparent" // 导出为透明像素，预览显示棋盘格
)

// Gradient 双色线性渐变，角度语义与 CSS linear-gradient 一致（0deg 向上，顺时针）。
type Gradient struct {
	Start Color   `json:"start"`
	End   Color   `json:"end"`
	Angle float64 `json:"angle"`
}

// Background 描述画布背景。Palette 仅用于帖子的具名色板。
type Background struct {
	Mode     BackgroundMode `json:"mode"`
	Color    Color          `json:"color"`
	Gradient Gradient       `json:"gradient"`
	Palette  string         `json:"palette,omitempty"`
}

// Preset 具名颜色或渐变预设。
type Preset struct {
	Name  string
	Color Color
}

// GradientPreset 具名渐变预设。
type GradientPreset struct {
	Name     string
	Gradient Gradient
}

// 帖子色板键名。
const (
	PaletteSand     = "sand"
	PaletteField    = "field"
	PaletteDark     = "dark"
	PaletteGradient = "gradient"
)

var (
	Sand    = MustHex("#fffbeb")
	Emerald = MustHex("#059669")
	Stone   = MustHex("#1c1917")
	Sky     = MustHex("#0ea5e9")
	Violet  = MustHex("#8b5cf6")
	Rose    = MustHex("#f43f5e")
	Orange  = MustHex("#ea580c")
)

// SolidPresets 截图样机的纯色预设。
var SolidPresets = []Preset{
	{Name: "Sand", Color: Sand},
	{Name: "Emerald", Color: Emerald},
	{Name: "Stone", Color: Stone},
	{Name: "Sky", Color: Sky},
	{Name: "Violet", Color: Violet},
	{Name: "Rose", Color: Rose},
}

// GradientPresets 截图样机的渐变预设。
var GradientPresets = []GradientPreset{
	{Name: "Ocean", Gradient: Gradient{Start: Emerald, End: Sky, Angle: 135}},
	{Name: "Sunset", Gradient: Gradient{Start: Violet, End: MustHex("#ec4899"), Angle: 135}},
	{Name: "Dark", Gradient: Gradient{Start: Stone, End: MustHex("#44403c"), Angle: 135}},
	{Name: "Warm", Gradient: Gradient{Start: Sand, End: MustHex("#fef3c7"), Angle: 135}},
	{Name: "Glid", Gradient: Gradient{Start: Emerald, End: Orange, Angle: 135}},
}

// PaletteBackground 返回帖子色板对应的背景。
func PaletteBackground(name string) (Background, error) {
	switch name {
	case PaletteSand:
		return Background{Mode: BackgroundSolid, Color: Sand, Palette: name}, nil
	case PaletteField:
		return Background{Mode: BackgroundSolid, Color: Emerald, Palette: name}, nil
	case PaletteDark:
		return Background{Mode: BackgroundSolid, Color: Stone, Palette: name}, nil
	case PaletteGradient:
		g := Gradient{Start: Emerald, End: Orange, Angle: 135}
		return Background{Mode: BackgroundGradient, Color: g.Start, Gradient: g, Palette: name}, nil
	default:
		return Background{}, fmt.Errorf("未知的背景色板：%s", name)
	}
}

// NormalizeAngle 将角度规整到 [0,360)。
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// Tone 返回决定文字颜色的代表色：渐变取两端混合色。
func (b Background) Tone() Color {
	if b.Mode == BackgroundGradient {
		return b.Gradient.Start.Mix(b.Gradient.End, 0.5)
	}
	return b.Color
}
