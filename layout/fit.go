package layout

import (
	"fmt"
	"math"
)

// MinFontSize 是自动缩小字号的下限，再小的字在标签上已无法阅读。
const MinFontSize = 6.0

// FitFontSize 返回不超过 maxSize 的最大整数字号，使 text 的宽度不超过 width。
// 从 maxSize 开始逐一递减并重新测量；若 MinFontSize 仍放不下，则返回 MinFontSize，
// 文本允许在水平方向溢出。maxSize 本身小于 MinFontSize 时不做缩放，直接返回 maxSize 的整数部分。
func FitFontSize(m Metrics, font Font, text string, width, maxSize float64) (float64, error) {
	if m == nil {
		return 0, fmt.Errorf("layout: 缺少字体度量后端 Metrics")
	}
	size := math.Floor(maxSize)
	if size < 1 {
		return 0, fmt.Errorf("layout: 无效的最大字号 %g", maxSize)
	}
	if size <= MinFontSize {
		return size, nil
	}
	for ; size > MinFontSize; size-- {
		w, err := m.TextWidth(text, font, size)
		if err != nil {
			return 0, err
		}
		if w <= width {
			return size, nil
		}
	}
	return MinFontSize, nil
}
