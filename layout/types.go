package layout

// 该文件定义排版结果，供排版、渲染与调试 JSON 共用。所有坐标与尺寸单位均为 pt，
// 原点在页面左上角，Y 向下增长。

// Result 保存单页标签的排版结果。
type Result struct {
	Page Page         `json:"page"`
	Meta DocumentMeta `json:"meta"`
	// Omitted 记录因超出页面底部而未绘制的供应商数量。
	Omitted int `json:"omitted,omitempty"`
}

// Page 记录页面尺寸、边距与最终可以直接渲染的元素。
type Page struct {
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Margin   Margin       `json:"margin"`
	Texts    []TextBox    `json:"texts"`
	Images   []ImageBox   `json:"images"`
	Graphics []GraphicBox `json:"graphics"`
	Lines    []Line       `json:"lines,omitempty"`
}

// Margin 以 pt 为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Role 标记文本块在标签上的用途。
type Role string

const (
	RoleHeading          Role = "heading"
	RoleOrderReference   Role = "order-reference"
	RoleRowLabel         Role = "row-label"
	RoleRowValue         Role = "row-value"
	RoleSupplierName     Role = "supplier-name"
	RoleSupplierLocation Role = "supplier-location"
)

// TextBox 表示一个已经排好坐标的文本块，Y 为文本顶部。
type TextBox struct {
	Role     Role       `json:"role"`
	Content  string     `json:"content"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Font     Font       `json:"font"`
	FontSize float64    `json:"fontSize"`
	Align    string     `json:"align,omitempty"` // left（默认）/center/right
	Lines    []TextLine `json:"lines"`
}

// Bottom 返回文本块底边的 Y。
func (tb TextBox) Bottom() float64 { return tb.Y + tb.Height }

// TextLine 表示排版后的一行文本内容及其宽高。
type TextLine struct {
	Content   string  `json:"content"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
}

// ImageBox 描述位图位置与尺寸，Fit 目前只支持 cover。
type ImageBox struct {
	Name   string  `json:"name"`
	Data   []byte  `json:"-"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fit    string  `json:"fit"`
}

// GraphicBox 描述矢量图形（例如品牌 logo）所在的区域；图形按比例缩放后居中放入。
type GraphicBox struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Line 表示一条线段，Width 为线宽（pt）。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Width float64 `json:"width"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// TextsByRole 按出现顺序返回指定用途的文本块。
func (p Page) TextsByRole(role Role) []TextBox {
	var out []TextBox
	for _, tb := range p.Texts {
		if tb.Role == role {
			out = append(out, tb)
		}
	}
	return out
}
