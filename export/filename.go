package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/settings"
)

// Filename builds <product>-<deviceOrPlatform>-<templateOrVariant>-<unixMillis>.png.
func Filename(products settings.Products, comp config.Composition, at time.Time) string {
	product := products.Post
	if comp.Kind() == config.KindMockup {
		product = products.Mockup
	}
	subject, variant := comp.FilenameParts()
	parts := []string{product, subject, variant}
	for i, p := range parts {
		parts[i] = slug(p)
	}
	return fmt.Sprintf("%s-%d.png", strings.Join(parts, "-"), at.UnixMilli())
}

// slug keeps filenames shell friendly.
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '/':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
