package widget

import (
	"fmt"
	"math"

	"github.com/tdewolff/canvas"
)

// Widget 是可测量、可绘制的部件。Measure 返回给定约束下的有效尺寸，
// Paint 在分配的区域内绘制自身。两者都不保留状态，重复调用结果一致。
type Widget interface {
	Measure(c Constraints) (Size, error)
	Paint(ctx *canvas.Context, bounds Rect) error
}

// ConstrainedBox 用外部给定的上限收紧子部件的约束。
// 离屏捕获用它把调用方要求的边界套在部件描述外面。
type ConstrainedBox struct {
	MaxWidth  float64
	MaxHeight float64
	Child     Widget
}

func (b *ConstrainedBox) clamp(c Constraints) Constraints {
	return Constraints{
		MaxWidth:  math.Min(c.MaxWidth, b.MaxWidth),
		MaxHeight: math.Min(c.MaxHeight, b.MaxHeight),
	}
}

func (b *ConstrainedBox) Measure(c Constraints) (Size, error) {
	if b.Child == nil {
		return Size{}, fmt.Errorf("ConstrainedBox 缺少子部件")
	}
	return b.Child.Measure(b.clamp(c))
}

func (b *ConstrainedBox) Paint(ctx *canvas.Context, bounds Rect) error {
	if b.Child == nil {
		return fmt.Errorf("ConstrainedBox 缺少子部件")
	}
	return b.Child.Paint(ctx, bounds)
}

// Center 占满可用空间并把子部件居中。约束无界时收缩为子部件尺寸。
type Center struct {
	Child Widget
}

func (w *Center) Measure(c Constraints) (Size, error) {
	child, err := w.childSize(c)
	if err != nil {
		return Size{}, err
	}
	out := child
	if isFinite(c.MaxWidth) {
		out.Width = c.MaxWidth
	}
	if isFinite(c.MaxHeight) {
		out.Height = c.MaxHeight
	}
	return out, nil
}

func (w *Center) Paint(ctx *canvas.Context, bounds Rect) error {
	if w.Child == nil {
		return nil
	}
	child, err := w.childSize(Bounded(bounds.Width, bounds.Height))
	if err != nil {
		return err
	}
	area := RectOf(
		bounds.X+(bounds.Width-child.Width)/2,
		bounds.Y+(bounds.Height-child.Height)/2,
		child,
	)
	return w.Child.Paint(ctx, area)
}

func (w *Center) childSize(c Constraints) (Size, error) {
	if w.Child == nil {
		return Size{}, nil
	}
	return w.Child.Measure(c)
}
