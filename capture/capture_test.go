package capture

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/widgetshot/surface"
	"github.com/ByLCY/widgetshot/widget"
)

// stubWidget 固定报告给定尺寸，并记录是否被测量过，用来模拟
// 固有布局无视外部边界的部件。
type stubWidget struct {
	size     widget.Size
	measured bool
}

func (s *stubWidget) Measure(widget.Constraints) (widget.Size, error) {
	s.measured = true
	return s.size, nil
}

func (s *stubWidget) Paint(*canvas.Context, widget.Rect) error { return nil }

// brokenSurface 模拟读回失败的后端。
type brokenSurface struct{ err error }

func (s *brokenSurface) Snapshot(context.Context, float64) (*image.RGBA, error) {
	return nil, s.err
}

func redBox(w, h float64) *widget.Box {
	fill := widget.Color{R: 220, G: 40, B: 40, A: 255}
	return &widget.Box{Width: w, Height: h, Fill: &fill}
}

// TestCaptureByHandleRejectsBadDensity 验证非法密度在任何渲染工作
// 之前就被拒绝。
func TestCaptureByHandleRejectsBadDensity(t *testing.T) {
	reg := surface.NewRegistry()
	h := reg.Mount(surface.NewImageSurface(nil))
	for _, density := range []float64{0, -1, -0.5} {
		opts := DefaultOptions()
		opts.PixelDensity = density
		if _, err := CaptureByHandle(context.Background(), reg, h, opts); err == nil {
			t.Fatalf("密度 %g 应被拒绝", density)
		}
	}
}

// TestCaptureByHandleUnmountedFaults 验证解析未挂载句柄是不可恢复错误。
func TestCaptureByHandleUnmountedFaults(t *testing.T) {
	reg := surface.NewRegistry()
	if _, err := CaptureByHandle(context.Background(), reg, surface.Handle(42), DefaultOptions()); err == nil {
		t.Fatalf("未挂载句柄应报错")
	}
}

// TestCaptureByHandleSoftEmpty 验证软空策略：后端没有产出像素时
// 返回零尺寸结果而不是错误。
func TestCaptureByHandleSoftEmpty(t *testing.T) {
	reg := surface.NewRegistry()
	h := reg.Mount(surface.NewImageSurface(nil))

	img, err := CaptureByHandle(context.Background(), reg, h, DefaultOptions())
	if err != nil {
		t.Fatalf("软空路径不应报错: %v", err)
	}
	if !img.IsEmpty() || img.Width != 0 || img.Height != 0 || len(img.Pixels) != 0 {
		t.Fatalf("期望零尺寸空结果，实际 %dx%d len=%d", img.Width, img.Height, len(img.Pixels))
	}
}

// TestCaptureByHandlePixels 验证捕获尺寸与像素缓冲长度的不变量。
func TestCaptureByHandlePixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := range src.Pix {
		src.Pix[i] = 0x7f
	}
	reg := surface.NewRegistry()
	h := reg.Mount(surface.NewImageSurface(src))

	opts := DefaultOptions()
	opts.DPI = 150
	img, err := CaptureByHandle(context.Background(), reg, h, opts)
	if err != nil {
		t.Fatalf("捕获失败: %v", err)
	}
	if img.Width != 8 || img.Height != 6 {
		t.Fatalf("捕获尺寸错误: %dx%d", img.Width, img.Height)
	}
	if len(img.Pixels) != 8*6*4 {
		t.Fatalf("像素缓冲长度应为 W*H*4=%d，实际 %d", 8*6*4, len(img.Pixels))
	}
	if img.DPI != 150 || img.Orientation != OrientationTopLeft {
		t.Fatalf("元数据未透传: %+v", img)
	}
}

// TestCaptureByHandleBackendError 验证后端错误原样上抛。
func TestCaptureByHandleBackendError(t *testing.T) {
	wantErr := errors.New("backend gone")
	reg := surface.NewRegistry()
	h := reg.Mount(&brokenSurface{err: wantErr})
	if _, err := CaptureByHandle(context.Background(), reg, h, DefaultOptions()); !errors.Is(err, wantErr) {
		t.Fatalf("期望后端错误上抛，实际 %v", err)
	}
}

// TestCaptureByConstructionRejectsUnbounded 验证无界约束立即失败，
// 且不会触碰部件（不搭建渲染树）。
func TestCaptureByConstructionRejectsUnbounded(t *testing.T) {
	stub := &stubWidget{size: widget.Size{Width: 10, Height: 10}}
	cases := []widget.Constraints{
		{MaxWidth: widget.Unbounded, MaxHeight: 100},
		{MaxWidth: 100, MaxHeight: widget.Unbounded},
		{MaxWidth: widget.Unbounded, MaxHeight: widget.Unbounded},
	}
	for _, cons := range cases {
		_, err := CaptureByConstruction(context.Background(), stub, cons, DefaultOptions())
		if !errors.Is(err, ErrUnboundedConstraints) {
			t.Fatalf("约束 %v 应报 ErrUnboundedConstraints，实际 %v", cons, err)
		}
	}
	if stub.measured {
		t.Fatalf("无界约束下不应进行任何测量")
	}
}

// TestCaptureByConstructionRejectsBadDensity 验证非法密度先于约束检查。
func TestCaptureByConstructionRejectsBadDensity(t *testing.T) {
	opts := DefaultOptions()
	opts.PixelDensity = 0
	stub := &stubWidget{size: widget.Size{Width: 10, Height: 10}}
	if _, err := CaptureByConstruction(context.Background(), stub, widget.Bounded(10, 10), opts); err == nil {
		t.Fatalf("零密度应被拒绝")
	}
	if stub.measured {
		t.Fatalf("非法密度下不应进行任何测量")
	}
}

// TestCaptureByConstructionWidgetIgnoresBounds 验证固有布局无视外部
// 边界的部件以 ErrWidgetIgnoresBounds 失败。
func TestCaptureByConstructionWidgetIgnoresBounds(t *testing.T) {
	stub := &stubWidget{size: widget.Size{Width: widget.Unbounded, Height: 10}}
	_, err := CaptureByConstruction(context.Background(), stub, widget.Bounded(100, 400), DefaultOptions())
	if !errors.Is(err, ErrWidgetIgnoresBounds) {
		t.Fatalf("期望 ErrWidgetIgnoresBounds，实际 %v", err)
	}
}

// TestCaptureByConstructionZeroSize 验证零尺寸测量结果按不可测量处理。
func TestCaptureByConstructionZeroSize(t *testing.T) {
	stub := &stubWidget{size: widget.Size{}}
	_, err := CaptureByConstruction(context.Background(), stub, widget.Bounded(100, 400), DefaultOptions())
	if !errors.Is(err, ErrUnmeasurableWidget) {
		t.Fatalf("期望 ErrUnmeasurableWidget，实际 %v", err)
	}
}

// TestCaptureByConstructionBox 对应基准场景：100x400 的约束、密度 3、
// 固定尺寸色块，宽度应接近 100*3，高度接近固有高度*3。
func TestCaptureByConstructionBox(t *testing.T) {
	opts := DefaultOptions()
	opts.PixelDensity = 3
	img, err := CaptureByConstruction(context.Background(), redBox(100, 30), widget.Bounded(100, 400), opts)
	if err != nil {
		t.Fatalf("捕获失败: %v", err)
	}
	if abs(img.Width-300) > 2 || abs(img.Height-90) > 2 {
		t.Fatalf("期望约 300x90，实际 %dx%d", img.Width, img.Height)
	}
	if len(img.Pixels) != img.Width*img.Height*4 {
		t.Fatalf("像素缓冲长度应为 W*H*4=%d，实际 %d", img.Width*img.Height*4, len(img.Pixels))
	}
}

// TestCaptureByConstructionEmptyIsHardError 验证与按句柄路径相反的
// 策略：空读回在构造路径上是硬错误。
func TestCaptureByConstructionEmptyIsHardError(t *testing.T) {
	opts := DefaultOptions()
	opts.PixelDensity = 0.001 // 栅格化结果为零像素
	_, err := CaptureByConstruction(context.Background(), redBox(10, 10), widget.Bounded(100, 400), opts)
	if !errors.Is(err, ErrEmptySnapshot) {
		t.Fatalf("期望 ErrEmptySnapshot，实际 %v", err)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
