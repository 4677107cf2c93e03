package label

import (
	"errors"
	"fmt"
)

// 标签生成的错误分类，可通过 errors.Is 判断。
var (
	ErrMissingData      = errors.New("label: 缺少必需数据")
	ErrAssetUnavailable = errors.New("label: 资源不可用")
	ErrRender           = errors.New("label: 渲染失败")
)

// MissingDataError 表示上游记录缺少必需字段，在任何绘制之前检出。
// 修复上游数据之前重试没有意义。
type MissingDataError struct {
	Field  string // 缺失的字段，例如 "suppliers"
	Reason string
}

func (e *MissingDataError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("label: 缺少 %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("label: 缺少 %s", e.Field)
}

func (e *MissingDataError) Is(target error) bool { return target == ErrMissingData }

// AssetUnavailableError 表示字体或 logo 资源无法加载（打包/部署问题）。
type AssetUnavailableError struct {
	Asset string
	Err   error
}

func (e *AssetUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("label: 资源 %s 不可用: %v", e.Asset, e.Err)
	}
	return fmt.Sprintf("label: 资源 %s 不可用", e.Asset)
}

func (e *AssetUnavailableError) Unwrap() error { return e.Err }

func (e *AssetUnavailableError) Is(target error) bool { return target == ErrAssetUnavailable }

// RenderFailure 是排版或写出过程中的其他失败，Op 记录出错的步骤。
type RenderFailure struct {
	Op  string // 例如 "measure", "draw", "write"
	Err error
}

func (e *RenderFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("label.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("label.%s: 未知错误", e.Op)
}

func (e *RenderFailure) Unwrap() error { return e.Err }

func (e *RenderFailure) Is(target error) bool { return target == ErrRender }

// Missing 构造 MissingDataError。
func Missing(field, reason string) *MissingDataError {
	return &MissingDataError{Field: field, Reason: reason}
}

// AssetError 构造 AssetUnavailableError。
func AssetError(asset string, err error) *AssetUnavailableError {
	return &AssetUnavailableError{Asset: asset, Err: err}
}

// Failure 把任意错误包装成 RenderFailure；已分类的错误原样返回。
func Failure(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		missing *MissingDataError
		asset   *AssetUnavailableError
		failure *RenderFailure
	)
	if errors.As(err, &missing) || errors.As(err, &asset) || errors.As(err, &failure) {
		return err
	}
	return &RenderFailure{Op: op, Err: err}
}
