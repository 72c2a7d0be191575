package config

// 各调节项的取值范围；在修改时钳制，渲染代码直接信任这些值。
const (
	MinShadow   = 0
	MaxShadow   = 100
	MinRotation = -30
	MaxRotation = 30
	MinScale    = 40
	MaxScale    = 120
)

// Mockup 截图样机配置。
type Mockup struct {
	Device          string     `json:"device"`
	Platform        string     `json:"platform"`
	Background      Background `json:"background"`
	ShadowIntensity float64    `json:"shadowIntensity"`
	Rotation        float64    `json:"rotation"`
	Scale           float64    `json:"scale"`
	ShowReflection  bool       `json:"showReflection"`
	SourcePath      string     `json:"sourcePath,omitempty"` // 组合文件中声明的截图路径
	Source          *Source    `json:"source,omitempty"`
}

var _ Composition = (*Mockup)(nil)

// NewMockup 返回默认样机配置。
func NewMockup() *Mockup {
	g := Gradient{Start: Emerald, End: Sky, Angle: 135}
	return &Mockup{
		Device:          "iphone-15-pro",
		Platform:        PlatformInstagramSquare,
		Background:      Background{Mode: BackgroundGradient, Color: Emerald, Gradient: g},
		ShadowIntensity: 50,
		Rotation:        0,
		Scale:           80,
		ShowReflection:  true,
	}
}

// SetDevice 切换设备。
func (m *Mockup) SetDevice(key string) error {
	d, err := LookupDevice(key)
	if err != nil {
		return err
	}
	m.Device = d.Key
	return nil
}

// SetPlatform 切换输出尺寸。
func (m *Mockup) SetPlatform(key string) error {
	t, err := LookupTarget(key)
	if err != nil {
		return err
	}
	m.Platform = t.Key
	return nil
}

// SetShadow 设置阴影强度，钳制到 [0,100]。
func (m *Mockup) SetShadow(v float64) { m.ShadowIntensity = Clamp(v, MinShadow, MaxShadow) }

// SetRotation 设置旋转角度，钳制到 [-30,30]。
func (m *Mockup) SetRotation(v float64) { m.Rotation = Clamp(v, MinRotation, MaxRotation) }

// SetScale 设置整体缩放百分比，钳制到 [40,120]。
func (m *Mockup) SetScale(v float64) { m.Scale = Clamp(v, MinScale, MaxScale) }

// SetSolid 纯色背景。
func (m *Mockup) SetSolid(c Color) {
	m.Background = Background{Mode: BackgroundSolid, Color: c, Gradient: m.Background.Gradient}
}

// SetGradient 渐变背景，角度规整到 [0,360)。
func (m *Mockup) SetGradient(g Gradient) {
	g.Angle = NormalizeAngle(g.Angle)
	m.Background = Background{Mode: BackgroundGradient, Color: m.Background.Color, Gradient: g}
}

// SetBlur 纯色 + 截图模糊铺底。
func (m *Mockup) SetBlur(c Color) {
	m.Background = Background{Mode: BackgroundBlur, Color: c, Gradient: m.Background.Gradient}
}

// SetTransparent 透明背景。
func (m *Mockup) SetTransparent() {
	m.Background = Background{Mode: BackgroundTransparent, Color: m.Background.Color, Gradient: m.Background.Gradient}
}

// SetSource 载入截图，nil 表示清除。
func (m *Mockup) SetSource(src *Source) { m.Source = src }

// Profile 返回当前设备，未知键名回落到第一台设备。
func (m *Mockup) Profile() Device {
	d, err := LookupDevice(m.Device)
	if err != nil {
		return devices[0]
	}
	return d
}

func (m *Mockup) Kind() Kind { return KindMockup }

func (m *Mockup) Target() Target {
	t, err := LookupTarget(m.Platform)
	if err != nil {
		t, _ = LookupTarget(PlatformInstagramSquare)
	}
	return t
}

func (m *Mockup) Backdrop() Background { return m.Background }

func (m *Mockup) FilenameParts() (string, string) { return m.Device, m.Platform }

// Clone 共享 Source（截图只读），其余字段复制。
func (m *Mockup) Clone() Composition {
	c := *m
	return &c
}
