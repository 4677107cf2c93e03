package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/materialpassport/passport/assets"
	"github.com/materialpassport/passport/binding"
	"github.com/materialpassport/passport/labeler"
	"github.com/materialpassport/passport/layout"
	"github.com/materialpassport/passport/manifest"
	"github.com/materialpassport/passport/records"
)

type config struct {
	input       string
	outputDir   string
	assetDir    string
	urlTemplate string
	uid         string
	debugPath   string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.input, "in", "passport.manifest", "清单文件路径")
	flag.StringVar(&cfg.outputDir, "out", "output", "PDF 输出目录")
	flag.StringVar(&cfg.assetDir, "assets", "", "字体与 logo 目录（font/、svg/），为空时使用内置资源")
	flag.StringVar(&cfg.urlTemplate, "url", "", "护照链接模板，例如 https://passport.example/passport/${uid}")
	flag.StringVar(&cfg.uid, "uid", "", "只生成该 UID 的标签")
	flag.StringVar(&cfg.debugPath, "debug", "", "布局调试 JSON 输出路径（需配合 -uid）")
	dev := flag.Bool("dev", false, "使用开发模式日志")
	flag.Parse()

	log, err := newLogger(*dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	n, err := run(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("生成标签失败", zap.Int("written", n), zap.Error(err))
	}
	fmt.Printf("已生成 %d 个标签：%s\n", n, cfg.outputDir)
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// run 解析清单并为每个组件生成标签，返回成功生成的数量。
// 已有标签或状态尚早的组件被跳过；生成失败的组件记录日志后继续处理其余组件，
// 全部处理完后再返回汇总错误。写文件失败或 ctx 取消会立即中止。
func run(ctx context.Context, cfg config, log *zap.Logger) (int, error) {
	if cfg.debugPath != "" && cfg.uid == "" {
		return 0, fmt.Errorf("-debug 需要同时指定 -uid")
	}
	if cfg.urlTemplate == "" {
		return 0, fmt.Errorf("需要通过 -url 指定护照链接模板")
	}
	if names := binding.Names(cfg.urlTemplate); !contains(names, "uid") && !contains(names, "id") {
		log.Warn("url template has no ${uid} placeholder, every label gets the same QR code",
			zap.String("template", cfg.urlTemplate))
	}

	mem, author, err := loadManifest(cfg.input)
	if err != nil {
		return 0, err
	}

	opts := []labeler.Option{
		labeler.WithLogger(log),
		labeler.WithAuthor(author),
		labeler.WithURLTemplate(cfg.urlTemplate),
	}
	if cfg.assetDir != "" {
		opts = append(opts, labeler.WithAssets(assets.Default(cfg.assetDir)))
	}
	svc := labeler.New(opts...)
	src := records.NewCached(mem)

	if err := os.MkdirAll(cfg.outputDir, 0o755); err != nil {
		return 0, fmt.Errorf("创建输出目录失败: %w", err)
	}

	written, failed := 0, 0
	for _, c := range mem.Components() {
		if cfg.uid != "" && c.UID != cfg.uid {
			continue
		}
		data, err := svc.Generate(ctx, src, c)
		switch {
		case errors.Is(err, labeler.ErrLabelExists), errors.Is(err, labeler.ErrNotLabelable):
			log.Info("skipping component", zap.String("uid", c.UID), zap.Error(err))
			continue
		case ctx.Err() != nil:
			return written, ctx.Err()
		case err != nil:
			// 标签是尽力而为的，单个组件失败不影响批次中的其他组件。
			log.Error("component not labelled", zap.String("uid", c.UID), zap.Error(err))
			failed++
			continue
		}
		if err := writeLabel(cfg.outputDir, c.UID, data); err != nil {
			return written, err
		}
		written++

		if cfg.debugPath != "" {
			if err := writeDebug(ctx, svc, src, c, cfg.debugPath); err != nil {
				return written, err
			}
		}
	}
	if failed > 0 {
		return written, fmt.Errorf("%d 个组件生成标签失败，已生成 %d 个", failed, written)
	}
	if cfg.uid != "" && written == 0 {
		return 0, fmt.Errorf("清单中没有可生成标签的组件 %s", cfg.uid)
	}
	return written, nil
}

func loadManifest(path string) (*records.Memory, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("无法打开清单文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := manifest.Parse(path, file)
	if err != nil {
		return nil, "", fmt.Errorf("解析清单失败: %w", err)
	}
	mem, err := doc.Records()
	if err != nil {
		return nil, "", fmt.Errorf("清单内容无效: %w", err)
	}
	return mem, string(doc.Name), nil
}

// writeLabel 落盘一个已完整渲染的标签；渲染失败的组件不会产生文件。
func writeLabel(dir, uid string, data []byte) error {
	path := filepath.Join(dir, fileName(uid)+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func writeDebug(ctx context.Context, svc *labeler.Service, src records.Source, c records.Component, debugPath string) error {
	in, err := svc.Input(ctx, src, c)
	if err != nil {
		return err
	}
	result, err := svc.Plan(ctx, in)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// fileName 去掉 UID 中不能出现在文件名里的字符。
func fileName(uid string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, uid)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
