package layout

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

// fakeMetrics 假定每个字符宽 0.5×字号、行高 1.2×字号，按字符硬切分行。
type fakeMetrics struct{}

func (fakeMetrics) TextWidth(text string, _ Font, size float64) (float64, error) {
	return float64(utf8.RuneCountInString(text)) * size * 0.5, nil
}

func (fakeMetrics) LineHeight(_ Font, size float64) (float64, error) {
	return size * 1.2, nil
}

func (fakeMetrics) LayoutLines(text string, width float64, _ Font, size float64) ([]TextLine, error) {
	perLine := int(math.Floor(width / (size * 0.5)))
	if perLine < 1 {
		perLine = 1
	}
	runes := []rune(text)
	var lines []TextLine
	for len(runes) > 0 {
		n := perLine
		if n > len(runes) {
			n = len(runes)
		}
		lines = append(lines, TextLine{
			Content: strings.TrimSpace(string(runes[:n])),
			Width:   float64(n) * size * 0.5,
			Height:  size * 1.2,
		})
		runes = runes[n:]
	}
	if len(lines) == 0 {
		lines = append(lines, TextLine{Height: size * 1.2})
	}
	return lines, nil
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 29, 29))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
