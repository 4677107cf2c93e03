package canvasrenderer

import (
	"math"
	"strings"
	"unicode"

	"github.com/tdewolff/canvas"

	"github.com/materialpassport/passport/layout"
)

// 以下方法实现 layout.Metrics。入参与返回值均为 pt；canvas 的字体面以 pt 创建、
// 以 mm 返回宽度，换算在这里完成。

// TextWidth 返回单行文本的宽度。
func (r *Renderer) TextWidth(text string, font layout.Font, size float64) (float64, error) {
	face, err := r.fontFace(font, size)
	if err != nil {
		return 0, err
	}
	return layout.ToPt(face.TextWidth(text)), nil
}

// LineHeight 返回字体在该字号下的行高。
func (r *Renderer) LineHeight(font layout.Font, size float64) (float64, error) {
	face, err := r.fontFace(font, size)
	if err != nil {
		return 0, err
	}
	return layout.ToPt(face.Metrics().LineHeight), nil
}

// LayoutLines 使用贪心换行算法把文本拆成不超过 width 的行，优先在空白处断开，
// 单词本身超宽时在词内拆分。显式换行符总会开始新的一行。
func (r *Renderer) LayoutLines(text string, width float64, font layout.Font, size float64) ([]layout.TextLine, error) {
	face, err := r.fontFace(font, size)
	if err != nil {
		return nil, err
	}
	lineHeight := layout.ToPt(face.Metrics().LineHeight)
	lines := greedyWrapTokens(text, layout.ToMm(width), face)
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: ""}}
	}
	for i := range lines {
		lines[i].Width = layout.ToPt(lines[i].Width)
		lines[i].Height = lineHeight
	}
	return lines, nil
}

// greedyWrapTokens 内部所有宽度均为 mm。行首空白被丢弃，行尾空白被裁掉，
// 以免右对齐时出现缩进。
func greedyWrapTokens(content string, limit float64, face *canvas.FontFace) []layout.TextLine {
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var lines []layout.TextLine
	var builder strings.Builder

	emit := func(force bool) {
		str := strings.TrimRightFunc(builder.String(), unicode.IsSpace)
		builder.Reset()
		if str == "" && !force {
			return
		}
		lines = append(lines, layout.TextLine{Content: str, Width: face.TextWidth(str)})
	}

	// fits 报告当前行追加 token 之后是否仍不超宽。
	fits := func(token string) bool {
		return builder.Len() == 0 || face.TextWidth(builder.String()+token) <= limit
	}

	for _, token := range tokenizeContent(content) {
		if token == "\n" {
			emit(true)
			continue
		}
		if isBlank(token) {
			if builder.Len() > 0 {
				builder.WriteString(token)
			}
			continue
		}

		if !fits(token) {
			emit(false)
		}
		if face.TextWidth(token) <= limit {
			builder.WriteString(token)
			continue
		}
		for _, chunk := range splitTokenByWidth(token, limit, face) {
			if !fits(chunk) {
				emit(false)
			}
			builder.WriteString(chunk)
		}
	}
	if builder.Len() > 0 || len(lines) == 0 {
		emit(true)
	}
	return lines
}

func isBlank(token string) bool {
	return strings.TrimFunc(token, unicode.IsSpace) == ""
}

// tokenizeContent 将文本切成交替的空白/非空白片段，换行符单独成为一个片段。
func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

// splitTokenByWidth 在词内按宽度切分，每段至少保留一个字符。
func splitTokenByWidth(token string, limit float64, face *canvas.FontFace) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var current []rune
	for _, r := range token {
		current = append(current, r)
		if len(current) > 1 && face.TextWidth(string(current)) > limit {
			parts = append(parts, string(current[:len(current)-1]))
			current = []rune{r}
		}
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	return parts
}
