package calc

import "fmt"

// linear is coef*target + konst.
type linear struct {
	coef  float64
	konst float64
}

func constant(v float64) linear { return linear{konst: v} }

// solveFor isolates target in lhs = rhs. The equation must be linear in target, and
// target must not appear inside function arguments.
func solveFor(lhs, rhs node, target string, e *Env) (float64, error) {
	if isReserved(target) {
		return 0, reserved(target)
	}
	l, err := linearize(lhs, target, e)
	if err != nil {
		return 0, err
	}
	r, err := linearize(rhs, target, e)
	if err != nil {
		return 0, err
	}

	coef := l.coef - r.coef
	konst := r.konst - l.konst
	if coef == 0 {
		if konst == 0 {
			return 0, fmt.Errorf("%w for %s", ErrInfiniteSolutions, target)
		}
		return 0, fmt.Errorf("%w for %s", ErrNoSolution, target)
	}
	return konst / coef, nil
}

func linearize(n node, target string, e *Env) (linear, error) {
	switch nn := n.(type) {
	case nodeNumber:
		return constant(nn.v), nil

	case nodeIdent:
		if nn.name == target {
			return linear{coef: 1}, nil
		}
		v, err := e.LookupValue(nn.name)
		if err != nil {
			return linear{}, err
		}
		return constant(v), nil

	case nodeCall:
		for _, a := range nn.args {
			if hasIdent(a, target) {
				return linear{}, fmt.Errorf("%w: %s appears in %s", ErrTargetInFunctionArgs, target, NodeString(nn))
			}
		}
		v, err := nn.Eval(e)
		if err != nil {
			return linear{}, err
		}
		return constant(v), nil

	case nodeBinary:
		return linearizeBinary(nn, target, e)

	default:
		panic(fmt.Sprintf("calc: unknown node %T", n))
	}
}

func linearizeBinary(n nodeBinary, target string, e *Env) (linear, error) {
	leftDep := hasIdent(n.left, target)
	rightDep := hasIdent(n.right, target)

	switch n.op {
	case '+', '-':
		l, err := linearize(n.left, target, e)
		if err != nil {
			return linear{}, err
		}
		r, err := linearize(n.right, target, e)
		if err != nil {
			return linear{}, err
		}
		if n.op == '+' {
			return linear{coef: l.coef + r.coef, konst: l.konst + r.konst}, nil
		}
		return linear{coef: l.coef - r.coef, konst: l.konst - r.konst}, nil

	case '*':
		if leftDep && rightDep {
			return linear{}, nonLinear(n, target)
		}
		l, err := linearize(n.left, target, e)
		if err != nil {
			return linear{}, err
		}
		r, err := linearize(n.right, target, e)
		if err != nil {
			return linear{}, err
		}
		if rightDep {
			l, r = r, l
		}
		// l carries the coefficient, r is a plain constant.
		return linear{coef: l.coef * r.konst, konst: l.konst * r.konst}, nil

	case '/':
		if rightDep {
			return linear{}, nonLinear(n, target)
		}
		l, err := linearize(n.left, target, e)
		if err != nil {
			return linear{}, err
		}
		d, err := n.right.Eval(e)
		if err != nil {
			return linear{}, err
		}
		if d == 0 {
			return linear{}, fmt.Errorf("%w: %s", ErrDivisionByZero, NodeString(n))
		}
		return linear{coef: l.coef / d, konst: l.konst / d}, nil

	case '%', '^':
		if leftDep || rightDep {
			return linear{}, nonLinear(n, target)
		}
		v, err := n.Eval(e)
		if err != nil {
			return linear{}, err
		}
		return constant(v), nil

	default:
		panic(fmt.Sprintf("calc: unknown operator %q", n.op))
	}
}

func nonLinear(n node, target string) error {
	return fmt.Errorf("%w in %s: %s", ErrNonLinear, target, NodeString(n))
}

// hasIdent reports whether name is referenced anywhere in n, including call arguments.
func hasIdent(n node, name string) bool {
	switch nn := n.(type) {
	case nodeIdent:
		return nn.name == name
	case nodeNumber:
		return false
	case nodeBinary:
		return hasIdent(nn.left, name) || hasIdent(nn.right, name)
	case nodeCall:
		for _, a := range nn.args {
			if hasIdent(a, name) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
