package layout

import (
	"fmt"

	"github.com/materialpassport/passport/label"
)

// 标签整体布局常量（pt）。中央列宽 160 加上两侧 70 的边距约等于 A6 宽度。
const (
	ColumnWidth = 160.0
	MarginX     = 70.0
	MarginY     = 20.0
	LogoHeight  = 50.0
	RuleWidth   = 1.0

	minorGap  = 2.0
	mediumGap = 5.0
	majorGap  = 10.0

	HeadingSize          = 24.0
	OrderReferenceMax    = 15.0
	RowSize              = 11.0
	SupplierNameSize     = 11.0
	SupplierLocationSize = 9.0
)

// DefaultAuthor 写入 PDF 元信息的作者。
const DefaultAuthor = "Material Passport"

const defaultCreator = "Material Passport label engine"

// Compose 根据输入计算单页标签上每个元素的位置。
// 每一步都按实际测量的高度推进游标，因此供应商名称等可变长度内容不会互相覆盖。
func Compose(in label.Input, opts Options) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if opts.Metrics == nil {
		return nil, fmt.Errorf("layout: 缺少字体度量后端 Metrics")
	}

	c := &composer{
		m:    opts.Metrics,
		page: newPage(),
		cur:  NewCursor(MarginY),
	}
	if err := c.compose(in); err != nil {
		return nil, err
	}

	author := opts.Author
	if author == "" {
		author = DefaultAuthor
	}
	creator := opts.Creator
	if creator == "" {
		creator = defaultCreator
	}
	return &Result{
		Page: c.page,
		Meta: DocumentMeta{
			Title:    in.UID,
			Author:   author,
			Subject:  in.OrderReference,
			Creator:  creator,
			Keywords: []string{"material passport", in.UID, in.OrderReference},
		},
		Omitted: c.omitted,
	}, nil
}

func newPage() Page {
	return Page{
		Width:  A6Width,
		Height: A6Height,
		Margin: Margin{Top: MarginY, Right: MarginX, Bottom: MarginY, Left: MarginX},
	}
}

type composer struct {
	m       Metrics
	page    Page
	cur     *Cursor
	omitted int
}

func (c *composer) columnX() float64 { return c.page.Width/2 - ColumnWidth/2 }

func (c *composer) contentBottom() float64 { return c.page.Height - MarginY }

func (c *composer) compose(in label.Input) error {
	if err := c.heading(in.UID); err != nil {
		return err
	}
	c.qr(in.QRImage)
	c.logo()
	if err := c.orderReference(in.OrderReference); err != nil {
		return err
	}
	c.rule()
	if mass, ok := in.MassText(); ok {
		if err := c.row("WEIGHT:", mass); err != nil {
			return err
		}
	}
	if err := c.row("DATE:", in.DateText()); err != nil {
		return err
	}
	return c.suppliers(in.Suppliers)
}

// heading 居中绘制 UID，文本顶部对齐页边距。
func (c *composer) heading(uid string) error {
	h, err := c.m.LineHeight(FontThin, HeadingSize)
	if err != nil {
		return err
	}
	c.page.Texts = append(c.page.Texts, TextBox{
		Role:     RoleHeading,
		Content:  uid,
		X:        c.columnX(),
		Y:        c.cur.Y(),
		Width:    ColumnWidth,
		Height:   h,
		Font:     FontThin,
		FontSize: HeadingSize,
		Align:    "center",
	})
	c.cur.Advance(h, -mediumGap)
	return nil
}

func (c *composer) qr(data []byte) {
	c.page.Images = append(c.page.Images, ImageBox{
		Name:   "qr",
		Data:   data,
		X:      c.columnX(),
		Y:      c.cur.Y(),
		Width:  ColumnWidth,
		Height: ColumnWidth,
		Fit:    "cover",
	})
	c.cur.Advance(ColumnWidth, -mediumGap)
}

// logo 与二维码等宽，略向上收紧以抵消二维码自带的留白。
func (c *composer) logo() {
	c.page.Graphics = append(c.page.Graphics, GraphicBox{
		Name:   "logo",
		X:      c.columnX(),
		Y:      c.cur.Y() - mediumGap,
		Width:  ColumnWidth,
		Height: LogoHeight,
	})
	c.cur.Advance(LogoHeight, -majorGap)
}

func (c *composer) orderReference(ref string) error {
	size, err := FitFontSize(c.m, FontRegular, ref, ColumnWidth, OrderReferenceMax)
	if err != nil {
		return err
	}
	h, err := c.m.LineHeight(FontRegular, size)
	if err != nil {
		return err
	}
	c.page.Texts = append(c.page.Texts, TextBox{
		Role:     RoleOrderReference,
		Content:  ref,
		X:        c.columnX(),
		Y:        c.cur.Y(),
		Width:    ColumnWidth,
		Height:   h,
		Font:     FontRegular,
		FontSize: size,
		Align:    "center",
	})
	c.cur.Advance(h, mediumGap)
	return nil
}

func (c *composer) rule() {
	y := c.cur.Y()
	c.page.Lines = append(c.page.Lines, Line{
		X1:    MarginX,
		Y1:    y,
		X2:    c.page.Width - MarginX,
		Y2:    y,
		Width: RuleWidth,
	})
	c.cur.Advance(0, mediumGap)
}

// row 绘制 "标签: 值" 一行，标签左对齐，值按测量宽度右对齐。
func (c *composer) row(name, value string) error {
	h, err := c.m.LineHeight(FontRegular, RowSize)
	if err != nil {
		return err
	}
	w, err := c.m.TextWidth(value, FontRegular, RowSize)
	if err != nil {
		return err
	}
	if err := c.labelText(name); err != nil {
		return err
	}
	c.page.Texts = append(c.page.Texts, TextBox{
		Role:     RoleRowValue,
		Content:  value,
		X:        c.page.Width - MarginX - w,
		Y:        c.cur.Y(),
		Width:    w,
		Height:   h,
		Font:     FontRegular,
		FontSize: RowSize,
	})
	c.cur.Advance(h, minorGap)
	return nil
}

func (c *composer) labelText(name string) error {
	h, err := c.m.LineHeight(FontRegular, RowSize)
	if err != nil {
		return err
	}
	w, err := c.m.TextWidth(name, FontRegular, RowSize)
	if err != nil {
		return err
	}
	c.page.Texts = append(c.page.Texts, TextBox{
		Role:     RoleRowLabel,
		Content:  name,
		X:        MarginX,
		Y:        c.cur.Y(),
		Width:    w,
		Height:   h,
		Font:     FontRegular,
		FontSize: RowSize,
	})
	return nil
}

// suppliers 依次绘制每个供应商的名称（粗体）与地址，二者右对齐并允许折行。
// 第一个供应商总会绘制；之后的供应商若连名称首行都放不进底边距以内则省略，
// 已开始绘制的供应商保持完整，即使越过边距也只占用同一页。
func (c *composer) suppliers(suppliers []label.Supplier) error {
	if err := c.labelText("PRODUCED BY:"); err != nil {
		return err
	}
	h, err := c.m.LineHeight(FontRegular, RowSize)
	if err != nil {
		return err
	}
	c.cur.Advance(h, minorGap)

	for i, s := range suppliers {
		name, err := c.wrapped(RoleSupplierName, s.Name, FontBold, SupplierNameSize)
		if err != nil {
			return err
		}
		location, err := c.wrapped(RoleSupplierLocation, s.Location, FontRegular, SupplierLocationSize)
		if err != nil {
			return err
		}
		if i > 0 && c.cur.Y()+firstLineHeight(name.Lines) > c.contentBottom() {
			c.omitted = len(suppliers) - i
			break
		}

		name.Y = c.cur.Y()
		c.page.Texts = append(c.page.Texts, name)
		c.cur.Advance(name.Height, minorGap)

		location.Y = c.cur.Y()
		c.page.Texts = append(c.page.Texts, location)
		c.cur.Advance(location.Height, mediumGap)
	}
	return nil
}

// wrapped 从左边距起、按中央列宽折行并测量总高度，Y 由调用方填写。
func (c *composer) wrapped(role Role, content string, font Font, size float64) (TextBox, error) {
	lines, err := c.m.LayoutLines(content, ColumnWidth, font, size)
	if err != nil {
		return TextBox{}, err
	}
	return TextBox{
		Role:     role,
		Content:  content,
		X:        MarginX,
		Width:    ColumnWidth,
		Height:   linesHeight(lines),
		Font:     font,
		FontSize: size,
		Align:    "right",
		Lines:    lines,
	}, nil
}

func linesHeight(lines []TextLine) float64 {
	total := 0.0
	for _, ln := range lines {
		total += ln.GapBefore + ln.Height
	}
	return total
}

func firstLineHeight(lines []TextLine) float64 {
	if len(lines) == 0 {
		return 0
	}
	return lines[0].Height
}
