package config

// Post 社交帖子配置。会话开始时以默认模板创建，逐字段修改，不做持久化。
type Post struct {
	Platform    string     `json:"platform"`
	Template    string     `json:"template"`
	Headline    string     `json:"headline"`
	Subheadline string     `json:"subheadline"`
	Body        string     `json:"body"`
	CTA         string     `json:"cta"`
	Background  Background `json:"background"`
	ShowLogo    bool       `json:"showLogo"`
	ShowBadge   bool       `json:"showBadge"`
}

var _ Composition = (*Post)(nil)

// NewPost 返回默认帖子：instagram-square、announcement 模板、sand 背景、显示 logo 与徽章。
func NewPost() *Post {
	bg, _ := PaletteBackground(PaletteSand)
	p := &Post{
		Platform:   PlatformInstagramSquare,
		Background: bg,
		ShowLogo:   true,
		ShowBadge:  true,
	}
	_ = p.ApplyTemplate(DefaultTemplate)
	return p
}

// ApplyTemplate 切换模板：只覆盖四个文案字段，不影响平台、背景与开关。
func (p *Post) ApplyTemplate(key string) error {
	t, err := LookupTemplate(key)
	if err != nil {
		return err
	}
	p.Template = t.Key
	p.Headline = t.Headline
	p.Subheadline = t.Subheadline
	p.Body = t.Body
	p.CTA = t.CTA
	return nil
}

// SetPlatform 切换输出尺寸。
func (p *Post) SetPlatform(key string) error {
	t, err := LookupTarget(key)
	if err != nil {
		return err
	}
	p.Platform = t.Key
	return nil
}

// SetPalette 使用具名色板（sand/field/dark/gradient）。
func (p *Post) SetPalette(name string) error {
	bg, err := PaletteBackground(name)
	if err != nil {
		return err
	}
	p.Background = bg
	return nil
}

// SetGradient 使用自定义双色渐变，角度规整到 [0,360)。
func (p *Post) SetGradient(g Gradient) {
	g.Angle = NormalizeAngle(g.Angle)
	p.Background = Background{Mode: BackgroundGradient, Color: g.Start, Gradient: g, Palette: PaletteGradient}
}

func (p *Post) Kind() Kind { return KindPost }

func (p *Post) Target() Target {
	t, err := LookupTarget(p.Platform)
	if err != nil {
		t, _ = LookupTarget(PlatformInstagramSquare)
	}
	return t
}

func (p *Post) Backdrop() Background { return p.Background }

func (p *Post) FilenameParts() (string, string) { return p.Platform, p.Template }

func (p *Post) Clone() Composition {
	c := *p
	return &c
}
