// Package fonts 提供内置字体的字节数据，在未配置 Inter 字体目录时作为后备。
package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体没有细体，thin 回落到 regular。
var builtin = map[string][]byte{
	"regular":  goregular.TTF,
	"bold":     gobold.TTF,
	"semibold": gomedium.TTF,
	"thin":     goregular.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "builtin:bold" 或直接 "bold"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "builtin:"))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 未知字重", name)
	}
	return data, nil
}
