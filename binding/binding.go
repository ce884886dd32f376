// Package binding 把部件描述属性值里的 ${path.to.value} 占位符替换为
// 外部数据中的内容，使同一份描述可以渲染不同的数据。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 把 text 中的 ${path.to.value} 占位符替换为 data 中对应的值。
// data 为空或路径未命中时占位符原样保留，方便排查缺失的数据。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		// 模式保证 match 形如 ${...}，直接剥掉两端取路径。
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := Resolve(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Resolve 按点分路径（支持 name[0] 形式的下标）在 data 中取值。
func Resolve(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			m, isMap := current.(map[string]any)
			if !isMap {
				return nil, false
			}
			current, ok = m[name]
			if !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, isArr := current.([]any)
			if !isArr || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// splitSegment 把 name[1][2] 拆成名字与下标序列。
func splitSegment(segment string) (string, []int, bool) {
	name, rest, found := strings.Cut(segment, "[")
	if !found {
		return segment, nil, true
	}
	var indexes []int
	rest = "[" + rest
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		body, tail, found := strings.Cut(rest[1:], "]")
		if !found {
			return "", nil, false
		}
		idx, err := strconv.Atoi(body)
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = tail
	}
	return name, indexes, true
}
