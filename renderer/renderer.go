package renderer

import (
	"io"

	"github.com/materialpassport/passport/layout"
)

// Renderer 将排版结果输出为最终文件（例如 PDF），边生成边写入 w。
// 返回错误时 w 中可能已有部分输出，调用方应丢弃。
type Renderer interface {
	Render(w io.Writer, result *layout.Result) error
}
