package config

import (
	"fmt"
	"strings"

	"github.com/glid-app/studio/binding"
	"github.com/glid-app/studio/dsl"
)

// entry 是把赋值与命令两种语句统一后的形式。
type entry struct {
	key   string
	args  []string
	block map[string]string
	pos   string
}

// FromDocument 根据组合文件 AST 构建配置，data 用于文案中的 ${} 插值。
// 帖子会先套用 template，再应用显式文案，与语句顺序无关。
func FromDocument(doc *dsl.Document, data any) (Composition, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	entries, err := collectEntries(doc.Block)
	if err != nil {
		return nil, err
	}
	switch Kind(doc.Kind) {
	case KindPost:
		return buildPost(entries, data)
	case KindMockup:
		return buildMockup(entries)
	default:
		return nil, fmt.Errorf("未知的文档类型：%s", doc.Kind)
	}
}

func collectEntries(block *dsl.Block) ([]entry, error) {
	if block == nil {
		return nil, fmt.Errorf("文档缺少内容块")
	}
	var out []entry
	for _, st := range block.Statements {
		switch {
		case st.Assignment != nil:
			a := st.Assignment
			out = append(out, entry{key: a.Key, args: []string{a.Value.Text()}, pos: a.Pos.String()})
		case st.Command != nil:
			c := st.Command
			e := entry{key: c.Name, pos: c.Pos.String()}
			for _, arg := range c.Args {
				e.args = append(e.args, arg.Value)
			}
			if c.Block != nil {
				e.block = map[string]string{}
				for _, inner := range c.Block.Statements {
					if inner.Assignment == nil {
						return nil, fmt.Errorf("%s: %s 块内只允许 key: value", c.Pos, c.Name)
					}
					e.block[inner.Assignment.Key] = inner.Assignment.Value.Text()
				}
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func (e entry) arg(i int) string {
	if i < len(e.args) {
		return e.args[i]
	}
	return ""
}

func (e entry) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: %s: %s", e.pos, e.key, fmt.Sprintf(format, args...))
}

func buildPost(entries []entry, data any) (*Post, error) {
	p := NewPost()
	for _, e := range entries {
		if e.key == "template" {
			if err := p.ApplyTemplate(e.arg(0)); err != nil {
				return nil, e.errorf("%v", err)
			}
		}
	}
	for _, e := range entries {
		var err error
		switch e.key {
		case "template":
		case "platform":
			err = p.SetPlatform(e.arg(0))
		case "headline":
			p.Headline = strings.Join(e.args, " ")
		case "subheadline":
			p.Subheadline = strings.Join(e.args, " ")
		case "body":
			p.Body = strings.Join(e.args, " ")
		case "cta":
			p.CTA = strings.Join(e.args, " ")
		case "background":
			err = applyPostBackground(p, e)
		case "logo":
			p.ShowLogo, err = dsl.ParseBool(e.arg(0))
		case "badge":
			p.ShowBadge, err = dsl.ParseBool(e.arg(0))
		default:
			err = fmt.Errorf("未知的帖子属性")
		}
		if err != nil {
			return nil, e.errorf("%v", err)
		}
	}
	binding.Fields(data, &p.Headline, &p.Subheadline, &p.Body, &p.CTA)
	return p, nil
}

func applyPostBackground(p *Post, e entry) error {
	name := e.arg(0)
	if name == PaletteGradient && e.block != nil {
		g, err := parseGradient(e.block, Gradient{Start: Emerald, End: Orange, Angle: 135})
		if err != nil {
			return err
		}
		p.SetGradient(g)
		return nil
	}
	return p.SetPalette(name)
}

func buildMockup(entries []entry) (*Mockup, error) {
	m := NewMockup()
	for _, e := range entries {
		var err error
		switch e.key {
		case "device":
			err = m.SetDevice(e.arg(0))
		case "platform":
			err = m.SetPlatform(e.arg(0))
		case "background":
			err = applyMockupBackground(m, e)
		case "shadow":
			var v float64
			if v, err = dsl.ParseNumber(e.arg(0)); err == nil {
				m.SetShadow(v)
			}
		case "rotation":
			var v float64
			if v, err = dsl.ParseNumber(e.arg(0)); err == nil {
				m.SetRotation(v)
			}
		case "scale":
			var v float64
			if v, err = dsl.ParseNumber(e.arg(0)); err == nil {
				m.SetScale(v)
			}
		case "reflection":
			m.ShowReflection, err = dsl.ParseBool(e.arg(0))
		case "screenshot":
			m.SourcePath = e.arg(0)
		default:
			err = fmt.Errorf("未知的样机属性")
		}
		if err != nil {
			return nil, e.errorf("%v", err)
		}
	}
	return m, nil
}

func applyMockupBackground(m *Mockup, e entry) error {
	mode := BackgroundMode(e.arg(0))
	switch mode {
	case BackgroundSolid, BackgroundBlur:
		c := m.Background.Color
		if v := e.arg(1); v != "" {
			var err error
			if c, err = resolveColor(v); err != nil {
				return err
			}
		}
		if mode == BackgroundSolid {
			m.SetSolid(c)
		} else {
			m.SetBlur(c)
		}
	case BackgroundGradient:
		base := m.Background.Gradient
		if preset := e.arg(1); preset != "" {
			found := false
			for _, gp := range GradientPresets {
				if strings.EqualFold(gp.Name, preset) {
					base, found = gp.Gradient, true
				}
			}
			if !found {
				return fmt.Errorf("未知的渐变预设：%s", preset)
			}
		}
		g, err := parseGradient(e.block, base)
		if err != nil {
			return err
		}
		m.SetGradient(g)
	case BackgroundTransparent:
		m.SetTransparent()
	default:
		return fmt.Errorf("未知的背景模式：%s", e.arg(0))
	}
	return nil
}

func parseGradient(block map[string]string, base Gradient) (Gradient, error) {
	g := base
	for key, raw := range block {
		var err error
		switch key {
		case "start":
			g.Start, err = resolveColor(raw)
		case "end":
			g.End, err = resolveColor(raw)
		case "angle":
			g.Angle, err = dsl.ParseNumber(raw)
		default:
			err = fmt.Errorf("未知的渐变属性：%s", key)
		}
		if err != nil {
			return Gradient{}, err
		}
	}
	return g, nil
}

// resolveColor 接受 #hex 或纯色预设名（不区分大小写）。
func resolveColor(raw string) (Color, error) {
	if strings.HasPrefix(raw, "#") {
		return ParseHex(raw)
	}
	for _, p := range SolidPresets {
		if strings.EqualFold(p.Name, raw) {
			return p.Color, nil
		}
	}
	return Color{}, fmt.Errorf("无效的颜色值：%s", raw)
}
