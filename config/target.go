package config

import "fmt"

// Target 表示一个输出尺寸（像素），由平台预设决定。
// 宽高始终为正整数，预览缩放由宽高比推导。
type Target struct {
	Key    string `json:"key"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label"`
}

// 平台键名。
const (
	PlatformInstagramSquare = "instagram-square"
	PlatformInstagramStory  = "instagram-story"
	PlatformTwitter         = "twitter"
	PlatformLinkedIn        = "linkedin"
	PlatformCustom          = "custom"
)

var targets = []Target{
	{Key: PlatformInstagramSquare, Width: 1080, Height: 1080, Label: "Instagram Square"},
	{Key: PlatformInstagramStory, Width: 1080, Height: 1920, Label: "Instagram Story"},
	{Key: PlatformTwitter, Width: 1200, Height: 675, Label: "Twitter/X"},
	{Key: PlatformLinkedIn, Width: 1200, Height: 627, Label: "LinkedIn"},
	{Key: PlatformCustom, Width: 1920, Height: 1080, Label: "Custom (1920x1080)"},
}

// Targets 返回全部平台预设（按展示顺序）。
func Targets() []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}

// PostTargets 是社交帖子可选的平台；custom 只用于截图样机。
func PostTargets() []Target {
	out := make([]Target, 0, len(targets))
	for _, t := range targets {
		if t.Key != PlatformCustom {
			out = append(out, t)
		}
	}
	return out
}

// LookupTarget 按键名查找平台预设。
func LookupTarget(key string) (Target, error) {
	for _, t := range targets {
		if t.Key == key {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("未知的平台：%s", key)
}

// IsStory 表示竖版快拍尺寸，排版时内容块整体上移。
func (t Target) IsStory() bool { return t.Key == PlatformInstagramStory }

func (t Target) String() string { return fmt.Sprintf("%s (%dx%d)", t.Label, t.Width, t.Height) }
