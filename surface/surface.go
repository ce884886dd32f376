// Package surface 提供可被截取的渲染表面：既包括临时搭建的离屏渲染
// 视图（View），也包括已经绘制完成、仅待读取像素的表面（ImageSurface），
// 以及按句柄管理已挂载表面的注册表（Registry）。
package surface

import (
	"context"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Surface 是一块已经完成布局与绘制、可以读出像素的渲染表面。
//
// Snapshot 在给定像素密度下做一次离屏读回，返回原始 RGBA 像素。
// 这是整个捕获流程中唯一的挂起点：调用方会阻塞到后端完成读回为止，
// 不设超时。返回 (nil, nil) 表示后端没有产出像素数据，由调用方决定
// 如何处理。
type Surface interface {
	Snapshot(ctx context.Context, density float64) (*image.RGBA, error)
}

// ImageSurface 包装一块已经绘制好的像素表面。
// 快照密度不为 1 时按 BiLinear 插值重采样。
type ImageSurface struct {
	img image.Image
}

// NewImageSurface 以现成的图像构造表面。img 为 nil 时表面挂载成功，
// 但任何快照都不会产出像素。
func NewImageSurface(img image.Image) *ImageSurface {
	return &ImageSurface{img: img}
}

// Snapshot 实现 Surface。density 为相对原始像素的缩放倍数。
func (s *ImageSurface) Snapshot(ctx context.Context, density float64) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.img == nil {
		return nil, nil
	}
	bounds := s.img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, nil
	}
	if density == 1 {
		if rgba, ok := s.img.(*image.RGBA); ok {
			return rgba, nil
		}
	}
	w := int(float64(bounds.Dx()) * density)
	h := int(float64(bounds.Dy()) * density)
	if w <= 0 || h <= 0 {
		return nil, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(out, out.Bounds(), s.img, bounds, xdraw.Src, nil)
	return out, nil
}
