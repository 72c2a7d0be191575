package canvasrenderer

import (
	"testing"

	"github.com/glid-app/studio/layout"
)

// 当两个词拼接后的宽度与折行宽度恰好相等时，不应换行。
func TestNoBreakWhenEqualWidth(t *testing.T) {
	r := NewRenderer()
	font := layout.FontFor(layout.RoleSubheadline)
	measure := func(s string) float64 { return r.TextWidth(s, font, 40) }

	content := "SAMPLE-A SAMPLE-B"
	limit := measure(content)
	if limit <= 0 {
		t.Fatalf("invalid measured width: %g", limit)
	}
	lines := layout.Wrap(content, limit, measure)
	if got := len(lines); got != 1 {
		t.Fatalf("expected 1 line at equal width, got %d", got)
	}

	lines = layout.Wrap(content, limit-0.5, measure)
	if got := len(lines); got != 2 {
		t.Fatalf("expected 2 lines just below the width, got %d", got)
	}
	if lines[0] != "SAMPLE-A" || lines[1] != "SAMPLE-B" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}
