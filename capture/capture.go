// Package capture 把一块已渲染的 UI 表面栅格化为像素缓冲，并把缓冲
// 包装成 PDF 文档可嵌入的图像源。两条捕获路径：按句柄截取已挂载的
// 表面，或按部件描述加显式边界临时搭建离屏渲染管线。
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/ByLCY/widgetshot/surface"
	"github.com/ByLCY/widgetshot/widget"
)

// 使用错误与运行错误的哨兵，调用方可用 errors.Is 区分。
var (
	// ErrUnboundedConstraints 表示按构造捕获时没有提供有界尺寸。
	ErrUnboundedConstraints = errors.New("按构造捕获必须提供有界尺寸")
	// ErrUnmeasurableWidget 表示部件没有给出可用的尺寸信息。
	ErrUnmeasurableWidget = errors.New("部件没有可测量的尺寸信息")
	// ErrWidgetIgnoresBounds 表示部件的固有布局无视了外部边界，
	// 测量结果仍然无界，无法转换为图像。
	ErrWidgetIgnoresBounds = errors.New("无法转换无界的部件")
	// ErrEmptySnapshot 表示按构造捕获时后端没有产出像素数据。
	ErrEmptySnapshot = errors.New("无法读取图像数据")
)

// Orientation 描述像素缓冲的朝向，语义与 EXIF 的旋转子集一致。
type Orientation int

const (
	// OrientationTopLeft 是默认朝向，不旋转。
	OrientationTopLeft Orientation = iota
	// OrientationRightTop 顺时针旋转 90 度。
	OrientationRightTop
	// OrientationBottomRight 旋转 180 度。
	OrientationBottomRight
	// OrientationLeftBottom 顺时针旋转 270 度。
	OrientationLeftBottom
)

// Angle 返回放置时应用的顺时针旋转角度。
func (o Orientation) Angle() float64 {
	switch o {
	case OrientationRightTop:
		return 90
	case OrientationBottomRight:
		return 180
	case OrientationLeftBottom:
		return 270
	default:
		return 0
	}
}

// Options 配置一次捕获。零值不是合法配置：像素密度必须为正，
// 请从 DefaultOptions 出发按需覆盖。
type Options struct {
	// PixelDensity 是栅格化时叠加的缩放倍数，必须大于 0。
	PixelDensity float64
	// Orientation 记录在输出里，放置时应用，默认 OrientationTopLeft。
	Orientation Orientation
	// DPI 可选，0 表示未指定（嵌入文档时按基准密度 1px/mm 换算）。
	DPI float64
}

// DefaultOptions 返回默认配置：密度 1.0、朝向左上、DPI 未指定。
func DefaultOptions() Options {
	return Options{PixelDensity: 1.0, Orientation: OrientationTopLeft}
}

// CapturedImage 是两条捕获路径共同的输出：原始 RGBA 像素及其宽高、
// 朝向与 DPI。创建后不再修改，由发起捕获的调用方独占持有。
type CapturedImage struct {
	// Pixels 是紧凑排列的 RGBA 字节，长度恒为 Width*Height*4。
	Pixels []byte
	// Width、Height 为像素数。宽高为 0 表示空捕获。
	Width  int
	Height int

	Orientation Orientation
	DPI         float64
}

// IsEmpty 报告是否为空捕获（按句柄路径的软空结果）。
func (m *CapturedImage) IsEmpty() bool {
	return m.Width == 0 || m.Height == 0 || len(m.Pixels) == 0
}

// CaptureByHandle 截取注册表中已挂载、已绘制的表面。
//
// 像素密度必须大于 0，违反时在任何渲染工作之前报错。句柄解析失败是
// 不可恢复的错误。后端读回没有产出像素时不算失败：返回零尺寸的空
// CapturedImage，是否可用由调用方自行判断。
func CaptureByHandle(ctx context.Context, reg *surface.Registry, h surface.Handle, opts Options) (*CapturedImage, error) {
	if err := validateDensity(opts.PixelDensity); err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("表面注册表不能为空")
	}
	s, err := reg.Resolve(h)
	if err != nil {
		return nil, err
	}
	img, err := s.Snapshot(ctx, opts.PixelDensity)
	if err != nil {
		return nil, fmt.Errorf("离屏读回失败: %w", err)
	}
	if img == nil || img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		// 软空：按句柄路径不把空读回当作错误。
		return &CapturedImage{Orientation: opts.Orientation, DPI: opts.DPI}, nil
	}
	return fromRGBA(img, opts), nil
}

// CaptureByConstruction 按部件描述与显式边界临时搭建离屏渲染管线，
// 完成恰好一轮布局加绘制后栅格化。
//
// 由于不存在父级布局环境，bounds 两个方向都必须有界，否则立即以
// ErrUnboundedConstraints 失败，不会搭建任何渲染树。部件测量结果
// 无界（固有布局无视了外部边界）时以 ErrWidgetIgnoresBounds 失败。
// 与按句柄路径不同，这里的空读回是硬错误 ErrEmptySnapshot。
func CaptureByConstruction(ctx context.Context, w widget.Widget, bounds widget.Constraints, opts Options) (*CapturedImage, error) {
	if err := validateDensity(opts.PixelDensity); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: 部件为空", ErrUnmeasurableWidget)
	}
	if !bounds.IsBounded() {
		return nil, fmt.Errorf("%w: %s", ErrUnboundedConstraints, bounds)
	}

	// 第一步：用显式约束容器把部件描述包起来。
	root := &widget.ConstrainedBox{
		MaxWidth:  bounds.MaxWidth,
		MaxHeight: bounds.MaxHeight,
		Child:     w,
	}

	// 第二步：通过部件自身的测量能力反查有效尺寸，校验外部边界
	// 确实被吸收了，再决定是否搭建完整的离屏渲染树。
	size, err := root.Measure(bounds)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnmeasurableWidget, err)
	}
	if !size.IsBounded() {
		return nil, fmt.Errorf("%w: 测量结果 %+v", ErrWidgetIgnoresBounds, size)
	}
	if size.IsEmpty() {
		return nil, fmt.Errorf("%w: 测量结果为零尺寸", ErrUnmeasurableWidget)
	}

	// 第三、四步：按有效尺寸搭建一次性的离屏视图，居中容器托住
	// 部件，做恰好一轮同步布局加绘制。
	view, err := surface.NewView(size.Width, size.Height)
	if err != nil {
		return nil, err
	}
	defer view.Close()
	if err := view.RenderOnce(&widget.Center{Child: root}); err != nil {
		return nil, err
	}

	// 第五步：栅格化。此路径没有软空回退。
	img, err := view.Snapshot(ctx, opts.PixelDensity)
	if err != nil {
		return nil, fmt.Errorf("离屏读回失败: %w", err)
	}
	if img == nil || img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		return nil, ErrEmptySnapshot
	}
	return fromRGBA(img, opts), nil
}

func validateDensity(density float64) error {
	if !(density > 0) {
		return fmt.Errorf("像素密度必须大于 0，实际为 %g", density)
	}
	return nil
}

// fromRGBA 把栅格化结果拷贝为紧凑的 RGBA 缓冲。
func fromRGBA(img *image.RGBA, opts Options) *CapturedImage {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, w*h*4)
	rowLen := w * 4
	for y := 0; y < h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pixels[y*rowLen:(y+1)*rowLen], img.Pix[off:off+rowLen])
	}
	return &CapturedImage{
		Pixels:      pixels,
		Width:       w,
		Height:      h,
		Orientation: opts.Orientation,
		DPI:         opts.DPI,
	}
}
