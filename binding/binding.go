// Package binding 展开护照链接模板中的 ${name} 占位符。
package binding

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// Expand 将 template 中的 ${name} 替换为 vars[name]，值按 URL 路径段转义。
// 名称两侧的空白会被忽略；任何未知或空的名称都会返回错误，列出全部缺失项。
func Expand(template string, vars map[string]string) (string, error) {
	var missing []string
	out := exprPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.TrimSpace(exprPattern.FindStringSubmatch(match)[1])
		val, ok := vars[name]
		if name == "" || !ok {
			missing = append(missing, match)
			return match
		}
		return url.PathEscape(val)
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("binding: 未知的占位符 %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// Names 返回模板中出现的占位符名称，按出现顺序去重。
func Names(template string) []string {
	var names []string
	seen := map[string]bool{}
	for _, groups := range exprPattern.FindAllStringSubmatch(template, -1) {
		name := strings.TrimSpace(groups[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
