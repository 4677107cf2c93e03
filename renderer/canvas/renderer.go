package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/materialpassport/passport/assets"
	"github.com/materialpassport/passport/label"
	"github.com/materialpassport/passport/layout"
	"github.com/materialpassport/passport/renderer"
)

// Renderer draws label layouts via github.com/tdewolff/canvas and measures text for the
// composer. Parsed fonts and the logo are cached; every Render owns its own canvas and
// PDF writer, so one Renderer may serve concurrent renders.
type Renderer struct {
	src assets.Source

	mu       sync.Mutex
	families map[layout.Font]*canvas.FontFamily
	logo     *canvas.Canvas
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Metrics    = (*Renderer)(nil)
)

// Option configures the canvas renderer.
type Option func(*Renderer)

// WithAssets sets where fonts and the logo come from. Defaults to assets.Builtin().
func WithAssets(src assets.Source) Option {
	return func(r *Renderer) {
		if src != nil {
			r.src = src
		}
	}
}

// New creates a canvas-based renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		src:      assets.Builtin(),
		families: map[layout.Font]*canvas.FontFamily{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render 将排版结果写成单页 PDF。资源在写出第一个字节之前全部加载完毕，
// 因此资源缺失不会在 w 中留下任何输出。
func (r *Renderer) Render(w io.Writer, result *layout.Result) error {
	if result == nil {
		return label.Failure("render", fmt.Errorf("排版结果为空"))
	}
	page := result.Page
	if page.Width <= 0 || page.Height <= 0 {
		return label.Failure("render", fmt.Errorf("页面尺寸无效: %gx%g", page.Width, page.Height))
	}
	if err := r.prepare(page); err != nil {
		return err
	}

	width, height := layout.ToMm(page.Width), layout.ToMm(page.Height)
	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点
	if err := r.drawPage(c, ctx, page); err != nil {
		return label.Failure("draw", err)
	}

	writer := pdf.New(w, width, height, nil)
	applyMeta(writer, result.Meta)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return label.Failure("write", fmt.Errorf("写入 PDF 失败: %w", err))
	}
	return nil
}

// prepare 预先加载页面用到的字体与 logo。
func (r *Renderer) prepare(page layout.Page) error {
	for _, tb := range page.Texts {
		if _, err := r.family(tb.Font); err != nil {
			return err
		}
	}
	for _, g := range page.Graphics {
		if g.Name != assets.LogoName {
			return label.AssetError(g.Name, fmt.Errorf("未知的矢量图形"))
		}
		if _, err := r.logoGraphic(); err != nil {
			return err
		}
	}
	return nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) drawPage(c *canvas.Canvas, ctx *canvas.Context, page layout.Page) error {
	r.drawLines(ctx, page.Lines)
	if err := r.drawImages(ctx, page.Images); err != nil {
		return err
	}
	if err := r.drawGraphics(c, page); err != nil {
		return err
	}
	for _, tb := range page.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	face, err := r.fontFace(tb.Font, tb.FontSize)
	if err != nil {
		return err
	}

	lines := tb.Lines
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: tb.Content, Width: tb.Width, Height: tb.Height}}
	}

	// 处理水平对齐：left（默认）/center/right。坐标从 pt 换算为 mm。
	x, width := layout.ToMm(tb.X), layout.ToMm(tb.Width)
	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(tb.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = x + width/2
	case "right", "end":
		textAlign = canvas.Right
		anchorX = x + width
	default:
		textAlign = canvas.Left
		anchorX = x
	}

	metrics := face.Metrics()
	cursorY := layout.ToMm(tb.Y)
	for _, line := range lines {
		cursorY += layout.ToMm(line.GapBefore)
		// 基线位置：行顶部加上字体上升部
		baseline := cursorY + metrics.Ascent
		ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, line.Content, textAlign))

		lineHeight := layout.ToMm(line.Height)
		if lineHeight <= 0 {
			lineHeight = metrics.LineHeight
		}
		cursorY += lineHeight
	}
	return nil
}

// drawImages 按 cover 方式放置位图：先居中裁剪到目标宽高比，再缩放到目标宽度。
func (r *Renderer) drawImages(ctx *canvas.Context, images []layout.ImageBox) error {
	for _, box := range images {
		if len(box.Data) == 0 {
			return fmt.Errorf("图片 %s 没有数据", box.Name)
		}
		img, _, err := image.Decode(bytes.NewReader(box.Data))
		if err != nil {
			return fmt.Errorf("解码图片 %s 失败: %w", box.Name, err)
		}
		if box.Fit == "cover" {
			img = coverCrop(img, box.Width, box.Height)
		}
		width := layout.ToMm(box.Width)
		if width <= 0 || img.Bounds().Dx() == 0 {
			return fmt.Errorf("图片 %s 尺寸无效", box.Name)
		}
		dpmm := float64(img.Bounds().Dx()) / width
		ctx.DrawImage(layout.ToMm(box.X), layout.ToMm(box.Y), img, canvas.DPMM(dpmm))
	}
	return nil
}

// coverCrop 居中裁掉多余部分，使图片宽高比与目标区域一致。
func coverCrop(img image.Image, width, height float64) image.Image {
	if width <= 0 || height <= 0 {
		return img
	}
	b := img.Bounds()
	target := width / height
	cw, ch := b.Dx(), b.Dy()
	if float64(cw)/float64(ch) > target {
		cw = int(math.Round(float64(ch) * target))
	} else {
		ch = int(math.Round(float64(cw) / target))
	}
	if cw == b.Dx() && ch == b.Dy() {
		return img
	}
	return imaging.CropCenter(img, cw, ch)
}

// drawLines 绘制直线列表。
func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = layout.RuleWidth
		}
		ctx.SetStrokeColor(canvas.Black)
		ctx.SetStrokeWidth(layout.ToMm(w))
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(layout.ToMm(ln.X2-ln.X1), layout.ToMm(ln.Y2-ln.Y1))
		ctx.DrawPath(layout.ToMm(ln.X1), layout.ToMm(ln.Y1), p)
	}
}

// drawGraphics 将矢量 logo 等比缩放后居中放入目标区域。
func (r *Renderer) drawGraphics(c *canvas.Canvas, page layout.Page) error {
	for _, box := range page.Graphics {
		g, err := r.logoGraphic()
		if err != nil {
			return err
		}
		drawVector(c, g, layout.ToMm(page.Height),
			layout.ToMm(box.X), layout.ToMm(box.Y), layout.ToMm(box.Width), layout.ToMm(box.Height))
	}
	return nil
}

func (r *Renderer) logoGraphic() (*canvas.Canvas, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.logo != nil {
		return r.logo, nil
	}
	data, err := r.src.Logo()
	if err != nil {
		return nil, assetError(assets.LogoName, err)
	}
	g, err := parseSVG(data)
	if err != nil {
		return nil, label.AssetError(assets.LogoName, err)
	}
	r.logo = g
	return g, nil
}

func (r *Renderer) fontFace(font layout.Font, sizePt float64) (*canvas.FontFace, error) {
	family, err := r.family(font)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, canvas.Black, canvas.FontRegular, canvas.FontNormal), nil
}

// family 返回某个字重的字体家族，首次使用时从资源来源加载。
func (r *Renderer) family(font layout.Font) (*canvas.FontFamily, error) {
	if font == "" {
		font = layout.FontRegular
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if family, ok := r.families[font]; ok {
		return family, nil
	}
	data, err := r.src.Font(font)
	if err != nil {
		return nil, assetError("font:"+string(font), err)
	}
	family := canvas.NewFontFamily("passport-" + string(font))
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, label.AssetError("font:"+string(font), fmt.Errorf("解析字体失败: %w", err))
	}
	r.families[font] = family
	return family, nil
}

// assetError 保留来源已给出的资源错误，其余错误包装为资源不可用。
func assetError(asset string, err error) error {
	var unavailable *label.AssetUnavailableError
	if errors.As(err, &unavailable) {
		return err
	}
	return label.AssetError(asset, err)
}
