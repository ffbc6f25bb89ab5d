package calc

import (
	"fmt"
	"sort"
)

// DefaultMaxDepth bounds nested user-function calls.
const DefaultMaxDepth = 256

// Env is the evaluation environment. The root Env holds variables and user functions;
// a call frame holds the parameter bindings of one user-function call and resolves
// everything else through the root. Built-in constants and functions are shared and
// cannot be rebound.
type Env struct {
	root     *Env
	depth    int
	maxDepth int

	vars  map[string]float64
	funcs map[string]*FunctionDef
}

// NewEnv returns a root environment holding only the built-ins.
func NewEnv() *Env {
	e := &Env{
		maxDepth: DefaultMaxDepth,
		vars:     make(map[string]float64),
		funcs:    make(map[string]*FunctionDef),
	}
	e.root = e
	return e
}

func (e *Env) isFrame() bool { return e.root != e }

// callee is a resolved function: either a built-in or a user definition.
type callee struct {
	name    string
	builtin *builtin
	def     *FunctionDef
}

func (c callee) arity() int {
	if c.builtin != nil {
		return c.builtin.arity
	}
	return len(c.def.Params)
}

// LookupValue resolves a constant or a variable. Names bound only as functions are
// reported as undefined.
func (e *Env) LookupValue(name string) (float64, error) {
	if v, ok := builtinConstants[name]; ok {
		return v, nil
	}
	if v, ok := e.vars[name]; ok {
		return v, nil
	}
	if e.isFrame() {
		if v, ok := e.root.vars[name]; ok {
			return v, nil
		}
	}
	return 0, undefined(name)
}

func (e *Env) lookupFunction(name string) (callee, error) {
	if b, ok := builtinFuncs[name]; ok {
		return callee{name: name, builtin: &b}, nil
	}
	if _, ok := builtinConstants[name]; ok {
		return callee{}, notCallable(name)
	}
	if _, ok := e.vars[name]; ok {
		return callee{}, notCallable(name)
	}
	r := e.root
	if def, ok := r.funcs[name]; ok {
		return callee{name: name, def: def}, nil
	}
	if _, ok := r.vars[name]; ok {
		return callee{}, notCallable(name)
	}
	return callee{}, undefined(name)
}

// BindVariable sets name to v, replacing a user function of the same name.
func (e *Env) BindVariable(name string, v float64) error {
	if isReserved(name) {
		return reserved(name)
	}
	delete(e.funcs, name)
	e.vars[name] = v
	return nil
}

// BindFunction defines name, replacing a variable of the same name.
func (e *Env) BindFunction(name string, def *FunctionDef) error {
	if isReserved(name) {
		return reserved(name)
	}
	for _, p := range def.Params {
		if isReserved(p) {
			return fmt.Errorf("%w: parameter %q of %s", ErrReservedName, p, name)
		}
	}
	delete(e.vars, name)
	e.funcs[name] = def
	return nil
}

// frame returns a call frame one level deeper than e.
func (e *Env) frame(c callee, args []float64) (*Env, error) {
	r := e.root
	if e.depth+1 > r.maxDepth {
		return nil, fmt.Errorf("%w: %s nested deeper than %d calls", ErrStackExhausted, c.name, r.maxDepth)
	}
	vars := make(map[string]float64, len(args))
	for i, p := range c.def.Params {
		vars[p] = args[i]
	}
	return &Env{root: r, depth: e.depth + 1, vars: vars}, nil
}

func (e *Env) clone() *Env {
	r := e.root
	out := NewEnv()
	out.maxDepth = r.maxDepth
	for k, v := range r.vars {
		out.vars[k] = v
	}
	for k, v := range r.funcs {
		out.funcs[k] = v
	}
	return out
}

// Binding describes one user binding.
type Binding struct {
	Name     string
	Value    float64
	Function *FunctionDef
}

func (b Binding) String() string {
	if b.Function != nil {
		return fmt.Sprintf("%s(%s) := %s", b.Name, joinParams(b.Function.Params), b.Function.Body())
	}
	return fmt.Sprintf("%s := %s", b.Name, FormatNumber(b.Value))
}

func (e *Env) bindings() []Binding {
	r := e.root
	out := make([]Binding, 0, len(r.vars)+len(r.funcs))
	for name, v := range r.vars {
		out = append(out, Binding{Name: name, Value: v})
	}
	for name, def := range r.funcs {
		out = append(out, Binding{Name: name, Function: def})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
