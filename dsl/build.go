package dsl

import (
	"fmt"

	"github.com/ByLCY/widgetshot/binding"
	"github.com/ByLCY/widgetshot/widget"
)

// BuildWidget 把解析出的描述解析为部件树与根级约束。
// data 用于把属性值里的 ${path} 占位符替换为实际数据。
// 描述中未指定 maxWidth/maxHeight 时对应方向为无界，
// 是否允许由捕获入口裁决。
func BuildWidget(desc *Description, data any) (widget.Widget, widget.Constraints, error) {
	if desc == nil {
		return nil, widget.Constraints{}, fmt.Errorf("部件描述为空")
	}

	cons := widget.Constraints{MaxWidth: widget.Unbounded, MaxHeight: widget.Unbounded}
	var root *Node
	for _, stmt := range desc.Statements {
		switch {
		case stmt.Assignment != nil:
			key := stmt.Assignment.Key
			val := binding.Interpolate(stmt.Assignment.Value.Text(), data)
			switch key {
			case "maxWidth":
				cons.MaxWidth = widget.ParseLengthMM(val)
			case "maxHeight":
				cons.MaxHeight = widget.ParseLengthMM(val)
			default:
				return nil, widget.Constraints{}, fmt.Errorf("未知的根级属性 %q", key)
			}
		case stmt.Node != nil:
			if root != nil {
				return nil, widget.Constraints{}, fmt.Errorf("部件描述只允许一个根部件，第二个出现在 %s", stmt.Node.Pos)
			}
			root = stmt.Node
		}
	}
	if root == nil {
		return nil, widget.Constraints{}, fmt.Errorf("部件描述 %s 缺少根部件", desc.Name)
	}

	w, err := buildNode(root, data)
	if err != nil {
		return nil, widget.Constraints{}, err
	}
	return w, cons, nil
}

func buildNode(n *Node, data any) (widget.Widget, error) {
	attrs, err := resolveAttrs(n, data)
	if err != nil {
		return nil, err
	}

	switch n.Name {
	case "box":
		child, err := optionalChild(n, data)
		if err != nil {
			return nil, err
		}
		fill, stroke, sw, err := paintAttrs(n, attrs)
		if err != nil {
			return nil, err
		}
		return &widget.Box{
			Width:       widget.ParseLengthMM(attrs["width"]),
			Height:      widget.ParseLengthMM(attrs["height"]),
			Fill:        fill,
			Stroke:      stroke,
			StrokeWidth: sw,
			Child:       child,
		}, nil
	case "circle":
		fill, stroke, sw, err := paintAttrs(n, attrs)
		if err != nil {
			return nil, err
		}
		return &widget.Circle{
			Radius:      widget.ParseLengthMM(attrs["radius"]),
			Fill:        fill,
			Stroke:      stroke,
			StrokeWidth: sw,
		}, nil
	case "column":
		children, err := buildChildren(n, data)
		if err != nil {
			return nil, err
		}
		return &widget.Column{Gap: widget.ParseLengthMM(attrs["gap"]), Children: children}, nil
	case "row":
		children, err := buildChildren(n, data)
		if err != nil {
			return nil, err
		}
		return &widget.Row{Gap: widget.ParseLengthMM(attrs["gap"]), Children: children}, nil
	case "padding":
		child, err := requiredChild(n, data)
		if err != nil {
			return nil, err
		}
		insets := widget.Uniform(widget.ParseLengthMM(attrs["all"]))
		if v, ok := attrs["top"]; ok {
			insets.Top = widget.ParseLengthMM(v)
		}
		if v, ok := attrs["right"]; ok {
			insets.Right = widget.ParseLengthMM(v)
		}
		if v, ok := attrs["bottom"]; ok {
			insets.Bottom = widget.ParseLengthMM(v)
		}
		if v, ok := attrs["left"]; ok {
			insets.Left = widget.ParseLengthMM(v)
		}
		return &widget.Padding{Insets: insets, Child: child}, nil
	case "center":
		child, err := requiredChild(n, data)
		if err != nil {
			return nil, err
		}
		return &widget.Center{Child: child}, nil
	case "spacer":
		return &widget.Spacer{
			Width:  widget.ParseLengthMM(attrs["width"]),
			Height: widget.ParseLengthMM(attrs["height"]),
		}, nil
	default:
		return nil, fmt.Errorf("未知的部件类型 %q（%s）", n.Name, n.Pos)
	}
}

// resolveAttrs 把节点属性转为文本并完成数据绑定。
func resolveAttrs(n *Node, data any) (map[string]string, error) {
	attrs := make(map[string]string, len(n.Attrs))
	for _, a := range n.Attrs {
		if _, ok := attrs[a.Key]; ok {
			return nil, fmt.Errorf("部件 %s 的属性 %q 重复（%s）", n.Name, a.Key, n.Pos)
		}
		attrs[a.Key] = binding.Interpolate(a.Value.Text(), data)
	}
	return attrs, nil
}

func paintAttrs(n *Node, attrs map[string]string) (fill, stroke *widget.Color, strokeWidth float64, err error) {
	if v, ok := attrs["fill"]; ok {
		c, perr := widget.ParseColor(v)
		if perr != nil {
			return nil, nil, 0, fmt.Errorf("部件 %s（%s）: %w", n.Name, n.Pos, perr)
		}
		fill = &c
	}
	if v, ok := attrs["stroke"]; ok {
		c, perr := widget.ParseColor(v)
		if perr != nil {
			return nil, nil, 0, fmt.Errorf("部件 %s（%s）: %w", n.Name, n.Pos, perr)
		}
		stroke = &c
	}
	strokeWidth = widget.ParseLengthMM(attrs["stroke-width"])
	return fill, stroke, strokeWidth, nil
}

func buildChildren(n *Node, data any) ([]widget.Widget, error) {
	out := make([]widget.Widget, 0, len(n.Children))
	for _, c := range n.Children {
		w, err := buildNode(c, data)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func requiredChild(n *Node, data any) (widget.Widget, error) {
	if len(n.Children) != 1 {
		return nil, fmt.Errorf("部件 %s（%s）需要恰好一个子部件，实际 %d 个", n.Name, n.Pos, len(n.Children))
	}
	return buildNode(n.Children[0], data)
}

func optionalChild(n *Node, data any) (widget.Widget, error) {
	switch len(n.Children) {
	case 0:
		return nil, nil
	case 1:
		return buildNode(n.Children[0], data)
	default:
		return nil, fmt.Errorf("部件 %s（%s）至多允许一个子部件，实际 %d 个", n.Name, n.Pos, len(n.Children))
	}
}
