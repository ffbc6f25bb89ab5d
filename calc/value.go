package calc

import "fmt"

// ValueKind tags the result of one statement.
type ValueKind uint8

const (
	// ValueVoid acknowledges a function definition.
	ValueVoid ValueKind = iota
	ValueNumber
	ValueSolved
	ValueGraph
)

// Value is the result of one statement.
type Value struct {
	Kind     ValueKind
	Number   float64
	Variable string
	Graph    *Graph
}

func VoidValue() Value { return Value{Kind: ValueVoid} }

func NumberValue(f float64) Value { return Value{Kind: ValueNumber, Number: f} }

func SolvedValue(variable string, f float64) Value {
	return Value{Kind: ValueSolved, Variable: variable, Number: f}
}

func GraphValue(g *Graph) Value { return Value{Kind: ValueGraph, Graph: g} }

func (v Value) String() string {
	switch v.Kind {
	case ValueVoid:
		return "ok"
	case ValueNumber:
		return FormatNumber(v.Number)
	case ValueSolved:
		return fmt.Sprintf("%s = %s", v.Variable, FormatNumber(v.Number))
	case ValueGraph:
		if v.Graph == nil {
			return "plot <nil>"
		}
		return "plot " + v.Graph.Name()
	default:
		return "<?>"
	}
}
