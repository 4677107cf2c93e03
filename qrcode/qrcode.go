// Package qrcode 生成贴在标签上的二维码 PNG。
package qrcode

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// DefaultSize 为生成图片的边长（像素）。
const DefaultSize = 512

// PNG 以最高纠错等级（H）编码 content，并放大到 size×size 像素。
// size <= 0 时使用 DefaultSize。
func PNG(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("qrcode: 内容为空")
	}
	if size <= 0 {
		size = DefaultSize
	}
	code, err := qr.Encode(content, qr.H, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qrcode: 编码失败: %w", err)
	}
	if w := code.Bounds().Dx(); size < w {
		return nil, fmt.Errorf("qrcode: 尺寸 %d 小于二维码模块数 %d", size, w)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: 缩放失败: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qrcode: 写入 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}
