package layout

// Options 配置排版阶段所需的依赖，例如字体度量后端。
type Options struct {
	Metrics Metrics
	Author  string // 为空时使用 DefaultAuthor
	Creator string
}

// Font 标识标签使用的四种字重。
type Font string

const (
	FontRegular  Font = "regular"
	FontBold     Font = "bold"
	FontSemiBold Font = "semibold"
	FontThin     Font = "thin"
)

// Fonts 列出全部字重，渲染器按此顺序加载。
var Fonts = []Font{FontRegular, FontBold, FontSemiBold, FontThin}

// Metrics 负责在给定字重与字号（pt）下测量文本，并按宽度将文本拆成行。
// 所有长度均为 pt。
type Metrics interface {
	TextWidth(text string, font Font, size float64) (float64, error)
	LineHeight(font Font, size float64) (float64, error)
	LayoutLines(text string, width float64, font Font, size float64) ([]TextLine, error)
}
