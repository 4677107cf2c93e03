package canvasrenderer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tdewolff/canvas"
)

// parseSVG 使用 canvas 自带的 SVG 解析器读取 logo，得到以 mm 为单位的画布。
func parseSVG(data []byte) (*canvas.Canvas, error) {
	g, err := canvas.ParseSVG(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解析 SVG 失败: %w", err)
	}
	if g.W <= 0 || g.H <= 0 {
		return nil, fmt.Errorf("SVG 缺少有效的尺寸")
	}
	return g, nil
}

// drawVector 将 g 等比缩放后居中放入 (x, y, w, h)。坐标为 mm，y 以页面顶部为原点；
// g 直接渲染到页面画布上，因此需要按 pageHeight 换算到画布自身 y 向上的坐标系。
func drawVector(dst *canvas.Canvas, g *canvas.Canvas, pageHeight, x, y, w, h float64) {
	scale := math.Min(w/g.W, h/g.H)
	drawnW, drawnH := g.W*scale, g.H*scale
	left := x + (w-drawnW)/2
	bottom := pageHeight - (y + (h-drawnH)/2 + drawnH)
	g.RenderViewTo(dst, canvas.Identity.Translate(left, bottom).Scale(scale, scale))
}
