package fonts

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed DejaVu/*.ttf
var fontFS embed.FS

// Regular、Bold 为内置字体的 embed 路径。
const (
	Regular = "embed:DejaVu/DejaVuSansCondensed.ttf"
	Bold    = "embed:DejaVu/DejaVuSansCondensed-Bold.ttf"
)

// Load 返回内置字体的字节数据，path 可写为 "embed:DejaVu/DejaVuSansCondensed.ttf" 或直接 "DejaVuSansCondensed.ttf"。
func Load(path string) ([]byte, error) {
	path = strings.TrimPrefix(path, "embed:")
	target := "DejaVu/" + strings.TrimPrefix(path, "DejaVu/")
	data, err := fontFS.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("读取内置字体 %s 失败: %w", target, err)
	}
	return data, nil
}
