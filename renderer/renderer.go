package renderer

import (
	"context"
	"image"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/layout"
	"github.com/glid-app/studio/theme"
)

// Job 是一次渲染任务：场景、生成场景的配置快照以及节点引用的位图。
// 主渲染器绘制 Scene；兜底渲染器直接从 Composition 重新绘制。
type Job struct {
	Scene       *layout.Scene
	Composition config.Composition
	Images      map[string]image.Image
	Theme       theme.Mode
	// Preview 为 true 时绘制仅预览可见的节点（透明背景棋盘格）。
	Preview bool
}

// NewJob 组装渲染任务，截图（如有）以 layout.SourceKey 放入 Images。
func NewJob(scene *layout.Scene, comp config.Composition, mode theme.Mode) *Job {
	job := &Job{Scene: scene, Composition: comp, Images: map[string]image.Image{}, Theme: mode}
	if m, ok := comp.(*config.Mockup); ok && m.Source != nil && m.Source.Image != nil {
		job.Images[layout.SourceKey] = m.Source.Image
	}
	return job
}

// Size 返回输出像素尺寸，以配置的目标尺寸为准。
func (j *Job) Size() (int, int) {
	if j.Composition != nil {
		t := j.Composition.Target()
		return t.Width, t.Height
	}
	if j.Scene != nil {
		return int(j.Scene.Width), int(j.Scene.Height)
	}
	return 0, 0
}

// Renderer 将渲染任务光栅化为目标尺寸的 RGBA 图像。
type Renderer interface {
	Name() string
	Render(ctx context.Context, job *Job) (*image.RGBA, error)
}
