package calc

import (
	"fmt"
	"sync"
)

// Options configures a Calculator.
type Options struct {
	// MaxDepth bounds nested user-function calls. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Calculator executes statements against one environment. Execute holds a single
// lock for the whole statement, so it may be shared between goroutines.
type Calculator struct {
	mu  sync.Mutex
	env *Env
}

// New returns a Calculator with default options.
func New() *Calculator { return NewWithOptions(Options{}) }

func NewWithOptions(opts Options) *Calculator {
	e := NewEnv()
	if opts.MaxDepth > 0 {
		e.maxDepth = opts.MaxDepth
	}
	return &Calculator{env: e}
}

// Execute parses and runs one statement:
//
//	1 + 2                          -> 3
//	a := 6                         -> 6
//	f(x) := x ^ 2                  -> ok
//	solve 3 * x - 2 = x + a for x  -> x = 4
//	plot f                         -> plot f
//
// A failed statement leaves the environment unchanged.
func (c *Calculator) Execute(line string) (Value, error) {
	st, err := parse(line)
	if err != nil {
		return Value{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatch(st)
}

func (c *Calculator) dispatch(st statement) (Value, error) {
	switch s := st.(type) {
	case stmtFunction:
		if err := c.env.BindFunction(s.name, s.def); err != nil {
			return Value{}, err
		}
		return VoidValue(), nil

	case stmtAssign:
		v, err := s.expr.Eval(c.env)
		if err != nil {
			return Value{}, err
		}
		if err := c.env.BindVariable(s.name, v); err != nil {
			return Value{}, err
		}
		return NumberValue(v), nil

	case stmtPlot:
		g, err := newGraph(s.name, c.env)
		if err != nil {
			return Value{}, err
		}
		return GraphValue(g), nil

	case stmtSolveFor:
		v, err := solveFor(s.lhs, s.rhs, s.target, c.env)
		if err != nil {
			return Value{}, err
		}
		return SolvedValue(s.target, v), nil

	case stmtExpr:
		v, err := s.expr.Eval(c.env)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(v), nil

	default:
		panic(fmt.Sprintf("calc: unknown statement %T", st))
	}
}

// Bindings lists the user-defined variables and functions, sorted by name.
func (c *Calculator) Bindings() []Binding {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.env.bindings()
}

// Graph resolves name for plotting without going through the statement grammar.
func (c *Calculator) Graph(name string) (*Graph, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return newGraph(name, c.env)
}
