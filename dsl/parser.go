package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		// 分支按长度从长到短排列：Go 正则取第一个命中的分支，
		// 短分支在前会把 #ff0000 切成 #ff0 加残余数字。
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`},
		{Name: "Expr", Pattern: `\$\{[^}]*\}`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[=:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	descriptionParser = participle.MustBuild[Description](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
		participle.UseLookahead(2),
	)
)

// Description 是部件描述文件的根节点。
type Description struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Name       string         `parser:"Newline* 'widget' @Ident"`
	Statements []*Statement   `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Statement 是根块内的一条语句：约束赋值或部件节点。
type Statement struct {
	Assignment *Assignment `parser:"  @@"`
	Node       *Node       `parser:"| @@"`
}

// Assignment 使用冒号语法（key: value），用于根级约束等属性。
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Node 描述一个部件及其属性与子节点。
type Node struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"@Ident"`
	Attrs    []*Attr        `parser:"@@*"`
	Children []*Node        `parser:"( Newline* '{' Newline* ( @@ ( ';' | Newline )* )* '}' )?"`
}

// Attr 使用等号语法（key=value）。
type Attr struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"'=' @@"`
}

// Value 是属性值：字符串、数值（可带单位）、颜色或 ${path} 表达式。
// Text 返回统一的文本形式，绑定与解析在上层进行。
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Expr   *string        `parser:"| @Expr"`
	Ident  *string        `parser:"| @Ident"`
}

// Text 返回属性值的原始文本。
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Expr != nil:
		return *v.Expr
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringLiteral 在捕获时去掉 Go 风格的引号。
type StringLiteral string

// Capture 实现 participle.Capture。
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse 从 io.Reader 解析部件描述。
func Parse(r io.Reader) (*Description, error) {
	return descriptionParser.Parse("", r)
}

// ParseString 从字符串解析部件描述。
func ParseString(input string) (*Description, error) {
	return descriptionParser.ParseString("", input)
}
