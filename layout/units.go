package layout

// 场景坐标以像素为单位。主渲染器按 1px/mm 栅格化画布，
// 因此像素值可以直接作为 canvas 的 mm 使用，只有字号需要换算成 pt。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt 将像素字号换算为字体系统使用的 pt。
func PxToPt(px float64) float64 { return px * MmToPt }

// PtToPx 将 pt 换算回像素。
func PtToPx(pt float64) float64 { return pt * PtToMm }
