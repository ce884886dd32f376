package widget

import (
	"math"
	"testing"
)

// TestBoxMeasure 验证固定尺寸收缩到约束、零尺寸方向扩展到约束上限。
func TestBoxMeasure(t *testing.T) {
	fixed := &Box{Width: 40, Height: 20}
	s, err := fixed.Measure(Bounded(100, 400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 40 || s.Height != 20 {
		t.Fatalf("固定尺寸盒子测量结果错误: %+v", s)
	}

	clamped, err := fixed.Measure(Bounded(30, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clamped.Width != 30 || clamped.Height != 10 {
		t.Fatalf("约束收缩失败: %+v", clamped)
	}

	expand := &Box{}
	s, err = expand.Measure(Bounded(100, 400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 100 || s.Height != 400 {
		t.Fatalf("扩展盒子应占满约束: %+v", s)
	}

	// 无界约束下扩展盒子把无界原样报出，供上层裁决。
	s, err = expand.Measure(Constraints{MaxWidth: Unbounded, MaxHeight: Unbounded})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsBounded() {
		t.Fatalf("无界约束下的扩展盒子不应报告有界尺寸: %+v", s)
	}
}

// TestColumnRowMeasure 验证纵向求和、横向取最大及间距累计。
func TestColumnRowMeasure(t *testing.T) {
	col := &Column{
		Gap: 2,
		Children: []Widget{
			&Box{Width: 40, Height: 20},
			&Box{Width: 60, Height: 10},
		},
	}
	s, err := col.Measure(Bounded(100, 400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 60 || math.Abs(s.Height-32) > 1e-9 {
		t.Fatalf("column 测量结果错误: %+v", s)
	}

	row := &Row{
		Gap: 3,
		Children: []Widget{
			&Box{Width: 10, Height: 20},
			&Box{Width: 10, Height: 30},
		},
	}
	s, err = row.Measure(Bounded(100, 400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(s.Width-23) > 1e-9 || s.Height != 30 {
		t.Fatalf("row 测量结果错误: %+v", s)
	}
}

// TestPaddingMeasure 验证留白叠加与约束收缩的传递。
func TestPaddingMeasure(t *testing.T) {
	p := &Padding{Insets: Uniform(5), Child: &Box{Width: 40, Height: 20}}
	s, err := p.Measure(Bounded(100, 400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 50 || s.Height != 30 {
		t.Fatalf("padding 测量结果错误: %+v", s)
	}

	// 子部件在收缩后的约束内扩展。
	p = &Padding{Insets: Uniform(10), Child: &Box{}}
	s, err = p.Measure(Bounded(100, 400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 100 || s.Height != 400 {
		t.Fatalf("padding 内扩展盒子的测量结果错误: %+v", s)
	}
}

// TestCenterMeasure 验证居中容器在有界约束下占满、无界约束下收缩。
func TestCenterMeasure(t *testing.T) {
	c := &Center{Child: &Box{Width: 10, Height: 10}}
	s, err := c.Measure(Bounded(100, 400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 100 || s.Height != 400 {
		t.Fatalf("有界约束下居中容器应占满: %+v", s)
	}

	s, err = c.Measure(Constraints{MaxWidth: Unbounded, MaxHeight: Unbounded})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 10 || s.Height != 10 {
		t.Fatalf("无界约束下居中容器应收缩为子部件尺寸: %+v", s)
	}
}

// TestRectOf 验证按左上角坐标加尺寸构造矩形。
func TestRectOf(t *testing.T) {
	got := RectOf(3, 4, Size{Width: 10, Height: 20})
	want := Rect{X: 3, Y: 4, Width: 10, Height: 20}
	if got != want {
		t.Fatalf("期望 %+v，实际 %+v", want, got)
	}
}

// TestConstrainedBoxClamp 验证外部边界对子约束的收紧。
func TestConstrainedBoxClamp(t *testing.T) {
	b := &ConstrainedBox{MaxWidth: 50, MaxHeight: 60, Child: &Box{}}
	s, err := b.Measure(Constraints{MaxWidth: Unbounded, MaxHeight: Unbounded})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 50 || s.Height != 60 {
		t.Fatalf("外部边界未生效: %+v", s)
	}

	if _, err := (&ConstrainedBox{}).Measure(Bounded(1, 1)); err == nil {
		t.Fatalf("缺少子部件时应报错")
	}
}

// TestOutline 验证测量快照包含种类与子节点。
func TestOutline(t *testing.T) {
	w := &Column{Children: []Widget{
		&Box{Width: 10, Height: 10},
		&Circle{Radius: 5},
	}}
	node, err := Outline(w, Bounded(100, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Kind != "column" || len(node.Children) != 2 {
		t.Fatalf("快照结构错误: %+v", node)
	}
	if node.Children[1].Kind != "circle" || node.Children[1].Size.Width != 10 {
		t.Fatalf("圆形子节点快照错误: %+v", node.Children[1])
	}
}
