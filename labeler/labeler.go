// Package labeler 串联转换、二维码、排版与渲染，是生成标签的入口。
package labeler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mattetti/filebuffer"
	"go.uber.org/zap"

	"github.com/materialpassport/passport/assets"
	"github.com/materialpassport/passport/binding"
	"github.com/materialpassport/passport/label"
	"github.com/materialpassport/passport/layout"
	"github.com/materialpassport/passport/qrcode"
	"github.com/materialpassport/passport/records"
	"github.com/materialpassport/passport/renderer"
	canvasrenderer "github.com/materialpassport/passport/renderer/canvas"
)

var (
	// ErrLabelExists 表示组件已经有标签，不会重复生成。
	ErrLabelExists = errors.New("labeler: 组件已有标签")
	// ErrNotLabelable 表示组件状态尚未到可以生产的阶段。
	ErrNotLabelable = errors.New("labeler: 组件状态不需要标签")
)

// Engine 同时提供字体度量与 PDF 渲染。
type Engine interface {
	renderer.Renderer
	layout.Metrics
}

// Service 生成标签。可被多个 goroutine 同时使用。
type Service struct {
	log         *zap.Logger
	engine      Engine
	author      string
	urlTemplate string
	qrSize      int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. nil keeps the no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithEngine replaces the default canvas engine.
func WithEngine(e Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithAssets uses a canvas engine that loads fonts and the logo from src.
func WithAssets(src assets.Source) Option {
	return func(s *Service) {
		s.engine = canvasrenderer.New(canvasrenderer.WithAssets(src))
	}
}

// WithAuthor sets the PDF author.
func WithAuthor(author string) Option {
	return func(s *Service) { s.author = author }
}

// WithURLTemplate 设置护照链接模板，例如 https://passport.example/passport/${uid}。
// 设置后 Generate 用展开的链接生成二维码，否则使用组件上保存的二维码。
func WithURLTemplate(tmpl string) Option {
	return func(s *Service) { s.urlTemplate = tmpl }
}

// WithQRSize sets the generated QR image size in pixels.
func WithQRSize(px int) Option {
	return func(s *Service) { s.qrSize = px }
}

// New creates a Service.
func New(opts ...Option) *Service {
	s := &Service{
		log:    zap.NewNop(),
		engine: canvasrenderer.New(),
		qrSize: qrcode.DefaultSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan 只做排版，返回页面上每个元素的位置。
func (s *Service) Plan(ctx context.Context, in label.Input) (*layout.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := layout.Compose(in, layout.Options{Metrics: s.engine, Author: s.author})
	if err != nil {
		return nil, label.Failure("measure", err)
	}
	if res.Omitted > 0 {
		s.log.Warn("suppliers omitted to keep a single page",
			zap.String("uid", in.UID),
			zap.Int("omitted", res.Omitted),
			zap.Int("suppliers", len(in.Suppliers)))
	}
	return res, nil
}

// WriteLabel 将 in 渲染为单页 PDF 写入 w。失败时记录日志并返回分类后的错误；
// 缺少数据或资源时 w 不会收到任何字节。
func (s *Service) WriteLabel(ctx context.Context, w io.Writer, in label.Input) error {
	res, err := s.Plan(ctx, in)
	if err == nil {
		err = s.engine.Render(w, res)
	}
	if err != nil {
		s.log.Error("label generation failed", zap.String("uid", in.UID), zap.Error(err))
		return err
	}
	s.log.Debug("label written", zap.String("uid", in.UID), zap.String("order", in.OrderReference))
	return nil
}

// Input 把上游组件转换为渲染输入。已有标签的组件返回 ErrLabelExists，
// 状态早于 Ready for production 的组件返回 ErrNotLabelable。
func (s *Service) Input(ctx context.Context, src records.Source, c records.Component) (label.Input, error) {
	if c.HasLabel {
		return label.Input{}, fmt.Errorf("%s: %w", c.UID, ErrLabelExists)
	}
	if c.Status != "" && !c.Status.Labelable() {
		return label.Input{}, fmt.Errorf("%s (%s): %w", c.UID, c.Status, ErrNotLabelable)
	}
	qr, err := s.qrImage(c)
	if err != nil {
		return label.Input{}, err
	}
	return records.Assemble(ctx, src, c, qr, s.log)
}

// Generate 为一个上游组件生成标签 PDF。
func (s *Service) Generate(ctx context.Context, src records.Source, c records.Component) ([]byte, error) {
	in, err := s.Input(ctx, src, c)
	if err != nil {
		if !errors.Is(err, ErrLabelExists) && !errors.Is(err, ErrNotLabelable) {
			s.log.Error("label generation failed", zap.String("uid", c.UID), zap.Error(err))
		}
		return nil, err
	}

	out := filebuffer.New([]byte{})
	if err := s.WriteLabel(ctx, out, in); err != nil {
		return nil, err
	}
	return out.Buff.Bytes(), nil
}

func (s *Service) qrImage(c records.Component) ([]byte, error) {
	if s.urlTemplate == "" {
		return nil, nil
	}
	link, err := binding.Expand(s.urlTemplate, map[string]string{"uid": c.UID, "id": c.ID})
	if err != nil {
		return nil, err
	}
	return qrcode.PNG(link, s.qrSize)
}
