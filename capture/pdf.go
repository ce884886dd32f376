package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync/atomic"

	"codeberg.org/go-pdf/fpdf"
)

// 注册到文档图像表时使用的名字必须全局唯一，用自增序号区分。
var imageSeq atomic.Uint64

// PlaceableImage 是已经登记进某个 PDF 文档图像表、可直接放置到页面
// 内容里的图像。尺寸单位为 mm。
type PlaceableImage struct {
	doc         *fpdf.Fpdf
	name        string
	Width       float64
	Height      float64
	Orientation Orientation
}

// BuildImage 把捕获结果登记到 doc 的图像表并返回可放置的图像。
//
// width/height（mm）大于 0 时优先采用，否则按捕获到的像素尺寸换算：
// 换算使用捕获记录里的 DPI，未指定时按基准密度 1px/mm（25.4 DPI），
// 此时声明尺寸与捕获像素数在数值上一致。空捕获在没有显式尺寸时
// 得到零尺寸图像，放置它是空操作。
func (m *CapturedImage) BuildImage(doc *fpdf.Fpdf, width, height float64) (*PlaceableImage, error) {
	if doc == nil {
		return nil, fmt.Errorf("目标文档不能为空")
	}
	out := &PlaceableImage{doc: doc, Orientation: m.Orientation}

	dpi := m.DPI
	if dpi <= 0 {
		dpi = 25.4
	}
	if width > 0 {
		out.Width = width
	} else {
		out.Width = pxToMM(m.Width, dpi)
	}
	if height > 0 {
		out.Height = height
	} else {
		out.Height = pxToMM(m.Height, dpi)
	}

	if m.IsEmpty() {
		return out, nil
	}
	if len(m.Pixels) != m.Width*m.Height*4 {
		return nil, fmt.Errorf("像素缓冲长度 %d 与尺寸 %dx%d 不符", len(m.Pixels), m.Width, m.Height)
	}

	img := &image.RGBA{
		Pix:    m.Pixels,
		Stride: m.Width * 4,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码捕获像素失败: %w", err)
	}

	out.name = fmt.Sprintf("widgetshot-%d", imageSeq.Add(1))
	doc.RegisterImageOptionsReader(out.name, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("登记图像到文档失败: %w", err)
	}
	return out, nil
}

// Place 把图像绘制到当前页面的 (x, y) 处（mm，左上角）。
// 朝向不是左上时围绕图像中心旋转。零尺寸图像不产生任何输出。
func (p *PlaceableImage) Place(x, y float64) error {
	if p.doc == nil || p.name == "" || p.Width <= 0 || p.Height <= 0 {
		return nil
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	angle := p.Orientation.Angle()
	if angle != 0 {
		p.doc.TransformBegin()
		// fpdf 的旋转为逆时针，这里取负角实现顺时针语义。
		p.doc.TransformRotate(-angle, x+p.Width/2, y+p.Height/2)
	}
	p.doc.ImageOptions(p.name, x, y, p.Width, p.Height, false, opts, 0, "")
	if angle != 0 {
		p.doc.TransformEnd()
	}
	return p.doc.Error()
}

func pxToMM(px int, dpi float64) float64 {
	return float64(px) * 25.4 / dpi
}
