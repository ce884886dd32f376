package widget

import (
	"encoding/json"
	"fmt"
	"os"
)

// Node 是部件树的测量快照，用于调试或可视化。
type Node struct {
	Kind     string  `json:"kind"`
	Size     Size    `json:"size"`
	Children []*Node `json:"children,omitempty"`
}

// Outline 在给定约束下测量部件树并生成快照。
func Outline(w Widget, c Constraints) (*Node, error) {
	if w == nil {
		return nil, nil
	}
	size, err := w.Measure(c)
	if err != nil {
		return nil, err
	}
	node := &Node{Kind: kindOf(w), Size: size}
	for _, ch := range childrenOf(w) {
		sub, err := Outline(ch, c)
		if err != nil {
			return nil, err
		}
		if sub != nil {
			node.Children = append(node.Children, sub)
		}
	}
	return node, nil
}

// WriteDebugJSON 将测量快照输出为 JSON，便于调试。
func WriteDebugJSON(node *Node, path string) error {
	if node == nil {
		return nil
	}
	data, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func kindOf(w Widget) string {
	switch w.(type) {
	case *Box:
		return "box"
	case *Circle:
		return "circle"
	case *Column:
		return "column"
	case *Row:
		return "row"
	case *Padding:
		return "padding"
	case *Center:
		return "center"
	case *Spacer:
		return "spacer"
	case *ConstrainedBox:
		return "constrained"
	default:
		return fmt.Sprintf("%T", w)
	}
}

func childrenOf(w Widget) []Widget {
	switch v := w.(type) {
	case *Box:
		if v.Child != nil {
			return []Widget{v.Child}
		}
	case *Column:
		return v.Children
	case *Row:
		return v.Children
	case *Padding:
		if v.Child != nil {
			return []Widget{v.Child}
		}
	case *Center:
		if v.Child != nil {
			return []Widget{v.Child}
		}
	case *ConstrainedBox:
		if v.Child != nil {
			return []Widget{v.Child}
		}
	}
	return nil
}
