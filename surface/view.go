package surface

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/widgetshot/widget"
)

// 宿主的基准像素密度为每逻辑毫米 1 像素：density 为 1 时，
// 100mm 宽的视图栅格化出 100 像素，density 相当于设备像素比。

// View 是一次性搭建的离屏渲染视图：一块按已知边界建好的画布、
// 一个绘制上下文，以及恰好一轮布局加绘制。视图不会被复用，
// 每次捕获各自搭建、各自释放。
type View struct {
	width  float64 // mm
	height float64 // mm
	c      *canvas.Canvas
	ctx    *canvas.Context

	painted bool
	closed  bool
}

// NewView 以毫米为单位创建一个边界已知的离屏视图。
// 宽高必须为有限正值，否则无法搭建画布。
func NewView(width, height float64) (*View, error) {
	if !isPositive(width) || !isPositive(height) {
		return nil, fmt.Errorf("离屏视图的宽高必须为有限正值（width=%g height=%g）", width, height)
	}
	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与部件布局保持左上角为原点
	return &View{width: width, height: height, c: c, ctx: ctx}, nil
}

// Bounds 返回视图边界（mm）。
func (v *View) Bounds() widget.Size {
	return widget.Size{Width: v.width, Height: v.height}
}

// RenderOnce 对根部件做恰好一轮同步布局加绘制。不做增量重排，
// 不做动画调度；重复调用是使用错误。
func (v *View) RenderOnce(root widget.Widget) error {
	if v.closed {
		return fmt.Errorf("离屏视图已经释放")
	}
	if v.painted {
		return fmt.Errorf("离屏视图只允许一轮绘制")
	}
	if root == nil {
		return fmt.Errorf("根部件不能为空")
	}
	if _, err := root.Measure(widget.Bounded(v.width, v.height)); err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	if err := root.Paint(v.ctx, widget.Rect{X: 0, Y: 0, Width: v.width, Height: v.height}); err != nil {
		return fmt.Errorf("绘制失败: %w", err)
	}
	v.painted = true
	return nil
}

// Snapshot 实现 Surface：把画布栅格化为 RGBA 像素。
// density 为每毫米像素数，即基准密度上的缩放倍数。
func (v *View) Snapshot(ctx context.Context, density float64) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v.closed {
		return nil, fmt.Errorf("离屏视图已经释放")
	}
	if !v.painted {
		return nil, fmt.Errorf("离屏视图尚未完成绘制")
	}
	// 像素尺寸四舍五入后为零时视为后端没有产出像素。
	if int(v.width*density+0.5) <= 0 || int(v.height*density+0.5) <= 0 {
		return nil, nil
	}
	return rasterizer.Draw(v.c, canvas.DPMM(density), canvas.LinearColorSpace{}), nil
}

// Close 释放视图。之后的任何绘制或快照都会报错。
func (v *View) Close() {
	v.closed = true
	v.c = nil
	v.ctx = nil
}

var _ Surface = (*View)(nil)

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
