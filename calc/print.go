package calc

import (
	"math"
	"strconv"
	"strings"
)

// NodeString renders an expression back to source form. All operators share one
// precedence level, so only a binary right operand needs parentheses.
func NodeString(n node) string {
	var b strings.Builder
	writeNode(&b, n, false)
	return b.String()
}

func writeNode(b *strings.Builder, n node, group bool) {
	switch nn := n.(type) {
	case nodeNumber:
		b.WriteString(FormatNumber(nn.v))
	case nodeIdent:
		b.WriteString(nn.name)
	case nodeBinary:
		if group {
			b.WriteByte('(')
		}
		writeNode(b, nn.left, false)
		b.WriteByte(' ')
		b.WriteByte(nn.op)
		b.WriteByte(' ')
		writeNode(b, nn.right, true)
		if group {
			b.WriteByte(')')
		}
	case nodeCall:
		b.WriteString(nn.name)
		b.WriteByte('(')
		for i, a := range nn.args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, a, false)
		}
		b.WriteByte(')')
	default:
		b.WriteString("<?>")
	}
}

// FormatNumber formats f with up to 12 significant digits.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', 12, 64)
}

func joinParams(params []string) string { return strings.Join(params, ", ") }
