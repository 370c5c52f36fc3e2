package evaluator

import (
	"strconv"
	"strings"
)

// Value is the runtime value union: number, string or list.
type Value interface {
	valueNode()
	Type() string
}

type Number struct {
	Val float64
}

func (Number) valueNode()   {}
func (Number) Type() string { return "number" }

type Str struct {
	Val string
}

func (Str) valueNode()   {}
func (Str) Type() string { return "string" }

type List struct {
	Elements []Value
}

func (List) valueNode()   {}
func (List) Type() string { return "list" }

func NewNumber(v float64) Number { return Number{Val: v} }
func NewString(v string) Str     { return Str{Val: v} }
func NewList(elems []Value) List { return List{Elements: elems} }

// FormatValue renders a value for print output. Numbers use the shortest
// decimal representation, strings appear bare at the top level but quoted
// inside lists.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case Number:
		return formatNumber(val.Val)
	case Str:
		return val.Val
	case List:
		return formatList(val)
	default:
		return "<unknown>"
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatList(l List) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, elem := range l.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch e := elem.(type) {
		case Str:
			sb.WriteByte('\'')
			sb.WriteString(e.Val)
			sb.WriteByte('\'')
		default:
			sb.WriteString(FormatValue(elem))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
