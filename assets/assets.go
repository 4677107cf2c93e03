// Package assets 按逻辑名称解析标签渲染所需的资源：四种字重的字体与品牌 logo。
// 资源如何到达进程（打包、挂载目录）由调用方决定，渲染器只通过 Source 取字节。
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/materialpassport/passport/fonts"
	"github.com/materialpassport/passport/label"
	"github.com/materialpassport/passport/layout"
)

// LogoName 是品牌 logo 的逻辑名称。
const LogoName = "logo"

//go:embed brand.svg
var brandSVG []byte

// Source 提供字体与 logo 的字节数据。失败时返回 *label.AssetUnavailableError。
type Source interface {
	Font(f layout.Font) ([]byte, error)
	Logo() ([]byte, error)
}

// FontFiles 是资源目录中各字重对应的 Inter 字体文件名。
var FontFiles = map[layout.Font]string{
	layout.FontRegular:  "Inter-VariableFont_opsz,wght.ttf",
	layout.FontBold:     "Inter_18pt-Bold.ttf",
	layout.FontSemiBold: "Inter_24pt-SemiBold.ttf",
	layout.FontThin:     "Inter_24pt-Thin.ttf",
}

// LogoFile 是资源目录中的 logo 文件名。
const LogoFile = "wikihouse_main_black.svg"

type builtinSource struct{}

// Builtin 返回内置资源：嵌入的品牌 SVG 与 Go 字体家族。
func Builtin() Source { return builtinSource{} }

func (builtinSource) Font(f layout.Font) ([]byte, error) {
	data, err := fonts.Load(string(f))
	if err != nil {
		return nil, label.AssetError("font:"+string(f), err)
	}
	return data, nil
}

func (builtinSource) Logo() ([]byte, error) { return brandSVG, nil }

// DirSource 从目录读取资源，字体位于 font/ 子目录，logo 位于 svg/ 子目录。
type DirSource struct {
	Root string
}

// Dir 返回以 root 为根目录的资源来源。
func Dir(root string) *DirSource { return &DirSource{Root: root} }

func (d *DirSource) Font(f layout.Font) ([]byte, error) {
	name, ok := FontFiles[f]
	if !ok {
		return nil, label.AssetError("font:"+string(f), fmt.Errorf("未知字重"))
	}
	return d.read("font:"+string(f), filepath.Join(d.Root, "font", name))
}

func (d *DirSource) Logo() ([]byte, error) {
	return d.read(LogoName, filepath.Join(d.Root, "svg", LogoFile))
}

func (d *DirSource) read(asset, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, label.AssetError(asset, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, label.AssetError(asset, err)
	}
	if len(data) == 0 {
		return nil, label.AssetError(asset, fmt.Errorf("%s 为空文件", path))
	}
	return data, nil
}

// Chain 依次尝试每个来源，返回第一个成功的结果。
type Chain []Source

func (c Chain) Font(f layout.Font) ([]byte, error) {
	return c.first("font:"+string(f), func(s Source) ([]byte, error) { return s.Font(f) })
}

func (c Chain) Logo() ([]byte, error) {
	return c.first(LogoName, func(s Source) ([]byte, error) { return s.Logo() })
}

func (c Chain) first(asset string, get func(Source) ([]byte, error)) ([]byte, error) {
	var errs []error
	for _, s := range c {
		if s == nil {
			continue
		}
		data, err := get(s)
		if err == nil {
			return data, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, label.AssetError(asset, fmt.Errorf("没有可用的资源来源"))
	}
	return nil, label.AssetError(asset, errors.Join(errs...))
}

// Default 优先使用 root 目录中的 Inter 字体与 logo，缺失时回落到内置资源。
// root 为空时只使用内置资源。
func Default(root string) Source {
	if root == "" {
		return Builtin()
	}
	return Chain{Dir(root), Builtin()}
}
