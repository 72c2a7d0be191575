package layout

import "github.com/glid-app/studio/theme"

// BuildOptions 配置布局阶段所需的依赖，例如排版后端与主题快照。
type BuildOptions struct {
	Typesetter Typesetter
	// Theme 在构建时读取一次；只影响透明背景上的文字颜色。
	Theme theme.Mode
	// Revision 由调用方递增，写入 Scene 便于判断预览是否过期。
	Revision uint64
}

// Typesetter 负责测量文字宽度（px），折行由 layout.Wrap 完成。
type Typesetter interface {
	TextWidth(content string, font Font, size float64) float64
}

func measurer(ts Typesetter, role Role, size float64) func(string) float64 {
	font := FontFor(role)
	return func(s string) float64 { return ts.TextWidth(s, font, size) }
}
