package layout

import "strings"

// TextLine 表示排版后的一行文本内容及其宽度（px）。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// Wrap 按空白分词做贪心折行：只有当 current+" "+word 的测量宽度严格大于
// maxWidth 且当前行非空时才换行；单个超宽的词独占一行。空白输入返回 nil。
func Wrap(text string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := make([]string, 0, 4)
	current := ""
	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		candidate := current + " " + word
		if measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

// WrapLines 与 Wrap 相同，并附带每行的测量宽度。
func WrapLines(text string, maxWidth float64, measure func(string) float64) []TextLine {
	raw := Wrap(text, maxWidth, measure)
	if raw == nil {
		return nil
	}
	out := make([]TextLine, len(raw))
	for i, s := range raw {
		out[i] = TextLine{Content: s, Width: measure(s)}
	}
	return out
}
