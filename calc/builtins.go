package calc

import (
	"fmt"
	"math"
	"sort"
)

// builtin describes a native function callable from expressions.
type builtin struct {
	arity int
	fn    func(args []float64) (float64, error)
}

var builtinConstants = map[string]float64{
	"e":  math.E,
	"pi": math.Pi,
}

var builtinFuncs = map[string]builtin{
	"abs": {arity: 1, fn: scalarUnary("abs", math.Abs)},

	// Trigonometry.
	"sin":  {arity: 1, fn: scalarUnary("sin", math.Sin)},
	"cos":  {arity: 1, fn: scalarUnary("cos", math.Cos)},
	"tan":  {arity: 1, fn: scalarUnary("tan", math.Tan)},
	"asin": {arity: 1, fn: scalarUnary("asin", math.Asin)},
	"acos": {arity: 1, fn: scalarUnary("acos", math.Acos)},
	"atan": {arity: 1, fn: scalarUnary("atan", math.Atan)},

	// Hyperbolic.
	"sinh":  {arity: 1, fn: scalarUnary("sinh", math.Sinh)},
	"cosh":  {arity: 1, fn: scalarUnary("cosh", math.Cosh)},
	"tanh":  {arity: 1, fn: scalarUnary("tanh", math.Tanh)},
	"asinh": {arity: 1, fn: scalarUnary("asinh", math.Asinh)},
	"acosh": {arity: 1, fn: scalarUnary("acosh", math.Acosh)},
	"atanh": {arity: 1, fn: scalarUnary("atanh", math.Atanh)},

	// Roots, exponentials and logs.
	"sqrt":  {arity: 1, fn: scalarUnary("sqrt", math.Sqrt)},
	"exp":   {arity: 1, fn: scalarUnary("exp", math.Exp)},
	"ln":    {arity: 1, fn: scalarUnary("ln", math.Log)},
	"log2":  {arity: 1, fn: scalarUnary("log2", math.Log2)},
	"log10": {arity: 1, fn: scalarUnary("log10", math.Log10)},
}

// scalarUnary wraps a math function. A NaN result from a non-NaN argument is reported
// as ErrDomain instead of being passed on.
func scalarUnary(name string, fn func(float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		x := args[0]
		y := fn(x)
		if math.IsNaN(y) && !math.IsNaN(x) {
			return 0, fmt.Errorf("%w: %s(%s)", ErrDomain, name, FormatNumber(x))
		}
		return y, nil
	}
}

func isReserved(name string) bool {
	if _, ok := builtinConstants[name]; ok {
		return true
	}
	_, ok := builtinFuncs[name]
	return ok
}

// BuiltinNames returns the sorted names of all built-in constants and functions.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinConstants)+len(builtinFuncs))
	for name := range builtinConstants {
		names = append(names, name)
	}
	for name := range builtinFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
