package calc

// This file contains the expression evaluator.

import (
	"fmt"
	"math"
)

func (n nodeNumber) Eval(_ *Env) (float64, error) { return n.v, nil }

func (n nodeIdent) Eval(e *Env) (float64, error) { return e.LookupValue(n.name) }

func (n nodeBinary) Eval(e *Env) (float64, error) {
	a, err := n.left.Eval(e)
	if err != nil {
		return 0, err
	}
	b, err := n.right.Eval(e)
	if err != nil {
		return 0, err
	}
	return applyBinary(n.op, a, b)
}

func applyBinary(op byte, a, b float64) (float64, error) {
	switch op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		if b == 0 {
			return 0, fmt.Errorf("%w: %s / 0", ErrDivisionByZero, FormatNumber(a))
		}
		return a / b, nil
	case '%':
		if b == 0 {
			return 0, fmt.Errorf("%w: %s %% 0", ErrDivisionByZero, FormatNumber(a))
		}
		return mod(a, b), nil
	case '^':
		return pow(a, b)
	default:
		panic(fmt.Sprintf("calc: unknown operator %q", op))
	}
}

// mod is the floored remainder: the result takes the sign of the divisor.
func mod(a, b float64) float64 { return a - b*math.Floor(a/b) }

func pow(a, b float64) (float64, error) {
	if a < 0 && !math.IsInf(b, 0) && b != math.Trunc(b) {
		return 0, fmt.Errorf("%w: %s ^ %s has no real value", ErrDomain, FormatNumber(a), FormatNumber(b))
	}
	return math.Pow(a, b), nil
}

func (n nodeCall) Eval(e *Env) (float64, error) {
	args := make([]float64, 0, len(n.args))
	for _, a := range n.args {
		v, err := a.Eval(e)
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}

	fn, err := e.lookupFunction(n.name)
	if err != nil {
		return 0, err
	}
	return call(e, fn, args)
}

func call(e *Env, fn callee, args []float64) (float64, error) {
	if want := fn.arity(); want != len(args) {
		return 0, &ArityError{Name: fn.name, Want: want, Got: len(args)}
	}
	if fn.builtin != nil {
		return fn.builtin.fn(args)
	}
	frame, err := e.frame(fn, args)
	if err != nil {
		return 0, err
	}
	return fn.def.body.Eval(frame)
}
