package layout

// 布局统一使用 PostScript 点（pt），渲染器在边界换算为毫米。

// Conversion constants between pt and mm.
const (
	MmToPt = 72.0 / 25.4
	PtToMm = 25.4 / 72.0
)

// ISO A6 纸张，约 297.64 x 419.53 pt。
const (
	A6Width  = 105 * MmToPt
	A6Height = 148 * MmToPt
)

// ToMm 将点(pt)转换为毫米(mm)。
func ToMm(pt float64) float64 { return pt * PtToMm }

// ToPt 将毫米(mm)转换为点(pt)。
func ToPt(mm float64) float64 { return mm * MmToPt }
