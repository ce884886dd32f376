package widget

import (
	"fmt"
	"math"
)

// 该文件定义布局约束与几何类型，供部件测量、离屏渲染与调试 JSON 共用。
// 所有数值单位均为毫米（mm）。

// Unbounded 表示某个方向上没有尺寸上限。
var Unbounded = math.Inf(1)

// Constraints 描述父级允许的最大尺寸。没有最小尺寸的概念：
// 部件总是自行收缩到内容大小，或扩展到约束上限。
type Constraints struct {
	MaxWidth  float64 `json:"maxWidth"`
	MaxHeight float64 `json:"maxHeight"`
}

// Bounded 构造一个两个方向都有界的约束。
func Bounded(maxWidth, maxHeight float64) Constraints {
	return Constraints{MaxWidth: maxWidth, MaxHeight: maxHeight}
}

// IsBounded 报告两个方向是否都是有限值。
func (c Constraints) IsBounded() bool {
	return isFinite(c.MaxWidth) && isFinite(c.MaxHeight)
}

// Constrain 将尺寸收缩到约束范围内。
func (c Constraints) Constrain(s Size) Size {
	return Size{
		Width:  math.Min(s.Width, c.MaxWidth),
		Height: math.Min(s.Height, c.MaxHeight),
	}
}

// Deflate 返回去掉四周留白后的约束，用于 Padding 等包装部件。
func (c Constraints) Deflate(horizontal, vertical float64) Constraints {
	out := c
	if isFinite(out.MaxWidth) {
		out.MaxWidth = math.Max(out.MaxWidth-horizontal, 0)
	}
	if isFinite(out.MaxHeight) {
		out.MaxHeight = math.Max(out.MaxHeight-vertical, 0)
	}
	return out
}

func (c Constraints) String() string {
	return fmt.Sprintf("Constraints(maxWidth=%s, maxHeight=%s)", fmtBound(c.MaxWidth), fmtBound(c.MaxHeight))
}

// Size 是测量结果。IsBounded 为 false 时说明部件把无界约束原样报了出来。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsBounded 报告宽高是否都是有限值。
func (s Size) IsBounded() bool {
	return isFinite(s.Width) && isFinite(s.Height)
}

// IsEmpty 报告是否存在零尺寸的方向。
func (s Size) IsEmpty() bool { return s.Width <= 0 || s.Height <= 0 }

// Rect 描述一块分配给部件的绘制区域，原点为左上角。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectOf 以左上角坐标与尺寸构造 Rect。
func RectOf(x, y float64, s Size) Rect {
	return Rect{X: x, Y: y, Width: s.Width, Height: s.Height}
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func fmtBound(v float64) string {
	if !isFinite(v) {
		return "unbounded"
	}
	return fmt.Sprintf("%.3fmm", v)
}
