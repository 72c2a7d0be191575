package config

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color 采用 0-255 的 RGBA 数值（非预乘）。
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// ParseHex 解析 #rgb、#rrggbb 与 #rrggbbaa 形式的颜色。
func ParseHex(value string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]}) + "ff"
	case 6:
		v += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("无效的颜色值：%s", value)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("无效的颜色值：%s", value)
	}
	return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// MustHex 用于包内常量，解析失败直接 panic。
func MustHex(value string) Color {
	c, err := ParseHex(value)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex 输出 #rrggbb（不透明）或 #rrggbbaa。
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// NRGBA 转为标准库颜色，供渲染器使用。
func (c Color) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// WithAlpha 返回乘以 alpha（0-1）后的颜色。
func (c Color) WithAlpha(alpha float64) Color {
	alpha = math.Max(0, math.Min(1, alpha))
	c.A = uint8(math.Round(float64(c.A) * alpha))
	return c
}

// Luminance 返回 WCAG 相对亮度（0-1）。
func (c Color) Luminance() float64 {
	lin := func(v uint8) float64 {
		s := float64(v) / 255
		if s <= 0.03928 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// IsLight 判断颜色是否属于浅色背景。
func (c Color) IsLight() bool { return c.Luminance() > 0.6 }

// Mix 在两色之间线性插值，t=0 返回 c，t=1 返回 other。
func (c Color) Mix(other Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	lerp := func(a, b uint8) uint8 { return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t)) }
	return Color{R: lerp(c.R, other.R), G: lerp(c.G, other.G), B: lerp(c.B, other.B), A: lerp(c.A, other.A)}
}
