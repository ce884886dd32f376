package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/widgetshot/capture"
	"github.com/ByLCY/widgetshot/dsl"
	"github.com/ByLCY/widgetshot/widget"
)

func main() {
	input := flag.String("in", "examples/demo.widget", "部件描述文件路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	dataJSON := flag.String("data", "", "绑定到描述的 JSON 数据")
	density := flag.Float64("density", 1.0, "栅格化像素密度（倍数）")
	dpi := flag.Float64("dpi", 0, "输出图像的 DPI（0 表示按 1px/mm 换算）")
	maxWidth := flag.Float64("max-width", 0, "覆盖描述中的 maxWidth（mm）")
	maxHeight := flag.Float64("max-height", 0, "覆盖描述中的 maxHeight（mm）")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	if err := run(*input, *output, *debug, inputData, *density, *dpi, *maxWidth, *maxHeight); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

// run 串联解析、离屏捕获与 PDF 输出。
func run(inputPath, outputPath, debugPath string, data any, density, dpi, maxWidth, maxHeight float64) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开部件描述文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	desc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析部件描述失败: %w", err)
	}

	w, cons, err := dsl.BuildWidget(desc, data)
	if err != nil {
		return fmt.Errorf("构造部件树失败: %w", err)
	}
	if maxWidth > 0 {
		cons.MaxWidth = maxWidth
	}
	if maxHeight > 0 {
		cons.MaxHeight = maxHeight
	}

	if debugPath != "" {
		if err := writeDebug(w, cons, debugPath); err != nil {
			return err
		}
	}

	opts := capture.DefaultOptions()
	opts.PixelDensity = density
	opts.DPI = dpi
	img, err := capture.CaptureByConstruction(context.Background(), w, cons, opts)
	if err != nil {
		return fmt.Errorf("捕获部件失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	pdfBytes, err := renderPDF(img)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

// renderPDF 生成一页恰好容纳捕获图像的 PDF。
func renderPDF(img *capture.CapturedImage) ([]byte, error) {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 210, Ht: 297}, // 占位，真实页面尺寸跟随图像
	})
	placeable, err := img.BuildImage(doc, 0, 0)
	if err != nil {
		return nil, err
	}
	pageW, pageH := placeable.Width, placeable.Height
	if pageW <= 0 || pageH <= 0 {
		return nil, fmt.Errorf("捕获结果为空，没有可输出的页面")
	}
	doc.AddPageFormat("P", fpdf.SizeType{Wd: pageW, Ht: pageH})
	if err := placeable.Place(0, 0); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeDebug(w widget.Widget, cons widget.Constraints, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	node, err := widget.Outline(w, cons)
	if err != nil {
		return fmt.Errorf("测量部件树失败: %w", err)
	}
	if err := widget.WriteDebugJSON(node, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
