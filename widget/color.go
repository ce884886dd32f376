package widget

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
)

// Color 采用 0-255 的 RGB 数值，Alpha 省略时视为不透明。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
	A int `json:"a"`
}

// Opaque 报告颜色是否完全不透明。
func (c Color) Opaque() bool { return c.A == 0 || c.A == 255 }

// Canvas 转换为 canvas 使用的 color.Color。
func (c Color) Canvas() color.Color {
	a := c.A
	if a == 0 {
		a = 255
	}
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(a)/255.0)
}

// ParseColor 解析 #RGB、#RRGGBB 或 #RRGGBBAA 形式的颜色。
func ParseColor(value string) (Color, error) {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "#") {
		return Color{}, fmt.Errorf("颜色 %q 必须以 # 开头", value)
	}
	hex := v[1:]
	switch len(hex) {
	case 3:
		var out Color
		parts := []*int{&out.R, &out.G, &out.B}
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.Repeat(string(hex[i]), 2), 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("解析颜色 %q 失败: %w", value, err)
			}
			*p = int(n)
		}
		out.A = 255
		return out, nil
	case 6, 8:
		var out Color
		parts := []*int{&out.R, &out.G, &out.B}
		if len(hex) == 8 {
			parts = append(parts, &out.A)
		} else {
			out.A = 255
		}
		for i, p := range parts {
			n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("解析颜色 %q 失败: %w", value, err)
			}
			*p = int(n)
		}
		return out, nil
	default:
		return Color{}, fmt.Errorf("颜色 %q 长度不合法", value)
	}
}
