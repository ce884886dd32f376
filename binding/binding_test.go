package binding

import "testing"

func sampleData() any {
	return map[string]any{
		"theme": map[string]any{"primary": "#3465a4"},
		"items": []any{
			map[string]any{"w": 40},
			map[string]any{"w": 60.5},
		},
	}
}

// TestInterpolate 验证占位符替换与未命中路径的原样保留。
func TestInterpolate(t *testing.T) {
	data := sampleData()
	if got := Interpolate("${theme.primary}", data); got != "#3465a4" {
		t.Fatalf("期望取到主题色，实际 %q", got)
	}
	if got := Interpolate("${items[1].w}mm", data); got != "60.5mm" {
		t.Fatalf("下标路径插值错误: %q", got)
	}
	if got := Interpolate("${missing.path}", data); got != "${missing.path}" {
		t.Fatalf("未命中路径应保留占位符，实际 %q", got)
	}
	if got := Interpolate("plain", data); got != "plain" {
		t.Fatalf("无占位符文本应原样返回，实际 %q", got)
	}
	if got := Interpolate("${theme.primary}", nil); got != "${theme.primary}" {
		t.Fatalf("data 为空时应原样返回，实际 %q", got)
	}
}

// TestResolve 覆盖点分路径与多级下标。
func TestResolve(t *testing.T) {
	data := map[string]any{
		"grid": []any{
			[]any{"a", "b"},
		},
	}
	v, ok := Resolve(data, "grid[0][1]")
	if !ok || v != "b" {
		t.Fatalf("多级下标解析失败: v=%v ok=%v", v, ok)
	}
	if _, ok := Resolve(data, "grid[2]"); ok {
		t.Fatalf("越界下标不应命中")
	}
	if _, ok := Resolve(data, "grid[x]"); ok {
		t.Fatalf("非法下标不应命中")
	}
}
