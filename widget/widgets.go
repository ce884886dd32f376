package widget

import (
	"fmt"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
)

// 内置部件集合。均按 mm 计算几何，绘制时假定坐标系为左上角原点
//（canvas.CartesianIV，由离屏渲染管线统一设置）。

const defaultStrokeWidth = 0.2

// Box 是固定或扩展尺寸的矩形。Width/Height 为 0 时在该方向扩展到
// 约束上限，因此在无界约束下会把无界尺寸原样报出去。
type Box struct {
	Width       float64
	Height      float64
	Fill        *Color
	Stroke      *Color
	StrokeWidth float64
	Child       Widget
}

func (b *Box) Measure(c Constraints) (Size, error) {
	out := Size{Width: b.Width, Height: b.Height}
	if out.Width <= 0 {
		out.Width = c.MaxWidth
	} else {
		out.Width = math.Min(out.Width, c.MaxWidth)
	}
	if out.Height <= 0 {
		out.Height = c.MaxHeight
	} else {
		out.Height = math.Min(out.Height, c.MaxHeight)
	}
	if b.Child != nil {
		if _, err := b.Child.Measure(Bounded(out.Width, out.Height)); err != nil {
			return Size{}, err
		}
	}
	return out, nil
}

func (b *Box) Paint(ctx *canvas.Context, bounds Rect) error {
	paintRect(ctx, bounds, b.Fill, b.Stroke, b.StrokeWidth)
	if b.Child != nil {
		return b.Child.Paint(ctx, bounds)
	}
	return nil
}

// Circle 是半径固定的圆。
type Circle struct {
	Radius      float64
	Fill        *Color
	Stroke      *Color
	StrokeWidth float64
}

func (w *Circle) Measure(c Constraints) (Size, error) {
	if w.Radius <= 0 {
		return Size{}, fmt.Errorf("圆形部件的半径必须大于 0")
	}
	return c.Constrain(Size{Width: 2 * w.Radius, Height: 2 * w.Radius}), nil
}

func (w *Circle) Paint(ctx *canvas.Context, bounds Rect) error {
	sw := w.StrokeWidth
	if sw <= 0 {
		sw = defaultStrokeWidth
	}
	setPaint(ctx, w.Fill, w.Stroke, sw)
	r := math.Min(bounds.Width, bounds.Height) / 2
	cx := bounds.X + bounds.Width/2
	cy := bounds.Y + bounds.Height/2
	ctx.DrawPath(cx-r, cy-r, canvas.Circle(r))
	return nil
}

// Column 纵向依次排列子部件，宽度取子部件最大值。
// 子部件在纵向上拿到的是无界约束，自行收缩。
type Column struct {
	Gap      float64
	Children []Widget
}

func (w *Column) Measure(c Constraints) (Size, error) {
	child := Constraints{MaxWidth: c.MaxWidth, MaxHeight: Unbounded}
	var out Size
	for i, ch := range w.Children {
		s, err := ch.Measure(child)
		if err != nil {
			return Size{}, err
		}
		out.Width = math.Max(out.Width, s.Width)
		out.Height += s.Height
		if i > 0 {
			out.Height += w.Gap
		}
	}
	return out, nil
}

func (w *Column) Paint(ctx *canvas.Context, bounds Rect) error {
	child := Constraints{MaxWidth: bounds.Width, MaxHeight: Unbounded}
	y := bounds.Y
	for _, ch := range w.Children {
		s, err := ch.Measure(child)
		if err != nil {
			return err
		}
		if err := ch.Paint(ctx, RectOf(bounds.X, y, s)); err != nil {
			return err
		}
		y += s.Height + w.Gap
	}
	return nil
}

// Row 横向依次排列子部件，高度取子部件最大值。
type Row struct {
	Gap      float64
	Children []Widget
}

func (w *Row) Measure(c Constraints) (Size, error) {
	child := Constraints{MaxWidth: Unbounded, MaxHeight: c.MaxHeight}
	var out Size
	for i, ch := range w.Children {
		s, err := ch.Measure(child)
		if err != nil {
			return Size{}, err
		}
		out.Height = math.Max(out.Height, s.Height)
		out.Width += s.Width
		if i > 0 {
			out.Width += w.Gap
		}
	}
	return out, nil
}

func (w *Row) Paint(ctx *canvas.Context, bounds Rect) error {
	child := Constraints{MaxWidth: Unbounded, MaxHeight: bounds.Height}
	x := bounds.X
	for _, ch := range w.Children {
		s, err := ch.Measure(child)
		if err != nil {
			return err
		}
		if err := ch.Paint(ctx, RectOf(x, bounds.Y, s)); err != nil {
			return err
		}
		x += s.Width + w.Gap
	}
	return nil
}

// Insets 以毫米为单位描述四周留白。
type Insets struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Uniform 构造四边相等的留白。
func Uniform(v float64) Insets { return Insets{Top: v, Right: v, Bottom: v, Left: v} }

// Padding 在子部件四周加留白。
type Padding struct {
	Insets Insets
	Child  Widget
}

func (w *Padding) Measure(c Constraints) (Size, error) {
	h := w.Insets.Left + w.Insets.Right
	v := w.Insets.Top + w.Insets.Bottom
	if w.Child == nil {
		return c.Constrain(Size{Width: h, Height: v}), nil
	}
	s, err := w.Child.Measure(c.Deflate(h, v))
	if err != nil {
		return Size{}, err
	}
	return Size{Width: s.Width + h, Height: s.Height + v}, nil
}

func (w *Padding) Paint(ctx *canvas.Context, bounds Rect) error {
	if w.Child == nil {
		return nil
	}
	inner := Rect{
		X:      bounds.X + w.Insets.Left,
		Y:      bounds.Y + w.Insets.Top,
		Width:  math.Max(bounds.Width-w.Insets.Left-w.Insets.Right, 0),
		Height: math.Max(bounds.Height-w.Insets.Top-w.Insets.Bottom, 0),
	}
	return w.Child.Paint(ctx, inner)
}

// Spacer 占位但不绘制。
type Spacer struct {
	Width  float64
	Height float64
}

func (w *Spacer) Measure(c Constraints) (Size, error) {
	return c.Constrain(Size{Width: w.Width, Height: w.Height}), nil
}

func (w *Spacer) Paint(*canvas.Context, Rect) error { return nil }

func paintRect(ctx *canvas.Context, bounds Rect, fill, stroke *Color, strokeWidth float64) {
	if strokeWidth <= 0 {
		strokeWidth = defaultStrokeWidth
	}
	setPaint(ctx, fill, stroke, strokeWidth)
	ctx.DrawPath(bounds.X, bounds.Y, canvas.Rectangle(bounds.Width, bounds.Height))
}

func setPaint(ctx *canvas.Context, fill, stroke *Color, strokeWidth float64) {
	if fill != nil {
		ctx.SetFillColor(fill.Canvas())
	} else {
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	}
	if stroke != nil {
		ctx.SetStrokeColor(stroke.Canvas())
		ctx.SetStrokeWidth(strokeWidth)
	} else {
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	}
}
