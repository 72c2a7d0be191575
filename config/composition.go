package config

import "image"

// Kind 区分两种合成类型。
type Kind string

const (
	KindPost   Kind = "post"
	KindMockup Kind = "mockup"
)

// Composition 是一次合成的完整配置（帖子或截图样机）。
type Composition interface {
	Kind() Kind
	Target() Target
	Backdrop() Background
	// FilenameParts 返回导出文件名中的“设备或平台”与“模板或变体”两段。
	FilenameParts() (subject, variant string)
	// Clone 返回深拷贝，导出时用作快照。
	Clone() Composition
}

// Source 是已加载的截图：原始字节、data URI 与解码后的图像。
type Source struct {
	Name    string      `json:"name"`
	MIME    string      `json:"mime"`
	Bytes   []byte      `json:"-"`
	DataURI string      `json:"-"`
	Image   image.Image `json:"-"`
}

// Bounds 返回解码图像的尺寸，未解码时为零。
func (s *Source) Bounds() image.Rectangle {
	if s == nil || s.Image == nil {
		return image.Rectangle{}
	}
	return s.Image.Bounds()
}

// Clamp 将 v 限制在 [lo, hi]。
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
