package calc

import (
	"errors"
	"math"
	"testing"
)

// run executes lines in order and returns the last result.
func run(t *testing.T, c *Calculator, lines ...string) (Value, error) {
	t.Helper()
	var (
		v   Value
		err error
	)
	for i, line := range lines {
		v, err = c.Execute(line)
		if err != nil && i < len(lines)-1 {
			t.Fatalf("Execute(%q) error: %v", line, err)
		}
	}
	return v, err
}

func mustNumber(t *testing.T, c *Calculator, lines ...string) float64 {
	t.Helper()
	v, err := run(t, c, lines...)
	if err != nil {
		t.Fatalf("Execute(%q) error: %v", lines[len(lines)-1], err)
	}
	if v.Kind != ValueNumber {
		t.Fatalf("Execute(%q) kind=%d, want number", lines[len(lines)-1], v.Kind)
	}
	return v.Number
}

func TestEval_Arithmetic(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "3 + 4 * 2", want: 14},
		{in: "3 + (4 * 2)", want: 11},
		{in: "17 % 5", want: 2},
		{in: "-7 % 3", want: 2},
		{in: "7 % -3", want: -2},
		{in: "3 ^ 2", want: 9},
		{in: "3 ^ 4", want: 81},
		{in: "2 ^ 3 ^ 2", want: 64},
		{in: "-8 ^ 3", want: -512},
		{in: "2 ^ -1", want: 0.5},
		{in: "10 - 4 - 3", want: 3},
		{in: "12 / 4 / 3", want: 1},
		{in: "abs(-1)", want: 1},
		{in: "abs(3 - 10)", want: 7},
		{in: "sqrt(16) + 1", want: 5},
		{in: "ln(e)", want: 1},
		{in: "log10(1000)", want: 3},
		{in: "log2(8)", want: 3},
		{in: "cos(0)", want: 1},
		{in: "pi", want: math.Pi},
		{in: "1e2 * 2", want: 200},
	}

	for _, tt := range tests {
		got := mustNumber(t, New(), tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("%s = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{in: "1 / 0", want: ErrDivisionByZero},
		{in: "5 % 0", want: ErrDivisionByZero},
		{in: "1 / (2 - 2)", want: ErrDivisionByZero},
		{in: "-8 ^ 0.5", want: ErrDomain},
		{in: "sqrt(-1)", want: ErrDomain},
		{in: "ln(-1)", want: ErrDomain},
		{in: "asin(2)", want: ErrDomain},
		{in: "undefined_name + 1", want: ErrUndefinedSymbol},
		{in: "nope(1)", want: ErrUndefinedSymbol},
		{in: "pi(1)", want: ErrNotCallable},
		{in: "sin", want: ErrUndefinedSymbol},
		{in: "sin(1, 2)", want: ErrArityMismatch},
		{in: "abs()", want: ErrArityMismatch},
		{in: "1 +", want: ErrSyntax},
	}

	for _, tt := range tests {
		_, err := New().Execute(tt.in)
		if !errors.Is(err, tt.want) {
			t.Fatalf("Execute(%q) err=%v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestEval_ArityErrorDetails(t *testing.T) {
	c := New()
	_, err := run(t, c, "sum3(x,y,z) := x+y+z", "sum3(1, 2)")
	var ae *ArityError
	if !errors.As(err, &ae) {
		t.Fatalf("err=%v, want *ArityError", err)
	}
	if ae.Name != "sum3" || ae.Want != 3 || ae.Got != 2 {
		t.Fatalf("arity error=%+v", ae)
	}
}

func TestEval_Variables(t *testing.T) {
	c := New()
	if got := mustNumber(t, c, "a := 12", "a * 3"); got != 36 {
		t.Fatalf("a * 3 = %v, want 36", got)
	}
	if got := mustNumber(t, c, "a := 5", "a * 3"); got != 15 {
		t.Fatalf("a * 3 = %v, want 15", got)
	}

	v, err := c.Execute("b := a + 1")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if v.Kind != ValueNumber || v.Number != 6 {
		t.Fatalf("assignment result=%+v, want 6", v)
	}
}

func TestEval_UserFunctions(t *testing.T) {
	c := New()
	if got := mustNumber(t, c, "add1(x) := x + 1", "add1(12)"); got != 13 {
		t.Fatalf("add1(12) = %v, want 13", got)
	}
	if got := mustNumber(t, c, "sum3(x,y,z) := x+y+z", "sum3(1,2,3)"); got != 6 {
		t.Fatalf("sum3(1,2,3) = %v, want 6", got)
	}
	if got := mustNumber(t, c, "twice(x) := add1(add1(x))", "twice(sum3(1, 1, 1))"); got != 5 {
		t.Fatalf("twice(...) = %v, want 5", got)
	}
	if got := mustNumber(t, c, "k() := 42", "k() + 1"); got != 43 {
		t.Fatalf("k() + 1 = %v, want 43", got)
	}
}

func TestEval_DefinitionAcknowledged(t *testing.T) {
	v, err := New().Execute("f(x) := x ^ 2")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if v.Kind != ValueVoid || v.String() != "ok" {
		t.Fatalf("definition result=%+v (%s)", v, v)
	}
}

func TestEval_ParametersShadowGlobals(t *testing.T) {
	c := New()
	if got := mustNumber(t, c, "x := 10", "f(x) := x * 2", "f(3)"); got != 6 {
		t.Fatalf("f(3) = %v, want 6", got)
	}
	if got := mustNumber(t, c, "x"); got != 10 {
		t.Fatalf("x = %v after call, want 10", got)
	}
}

func TestEval_BodyReadsGlobalsAtCallTime(t *testing.T) {
	c := New()
	if got := mustNumber(t, c, "b := 2", "fb(x) := x * b", "b := 3", "fb(2)"); got != 6 {
		t.Fatalf("fb(2) = %v, want 6", got)
	}

	_, err := run(t, c, "late(x) := x + missing", "late(1)")
	if !errors.Is(err, ErrUndefinedSymbol) {
		t.Fatalf("late(1) err=%v, want ErrUndefinedSymbol", err)
	}
	if got := mustNumber(t, c, "missing := 1", "late(1)"); got != 2 {
		t.Fatalf("late(1) = %v, want 2", got)
	}
}

func TestEval_ReservedNames(t *testing.T) {
	tests := []string{
		"pi := 1",
		"e := 2",
		"sin := 3",
		"sin(x) := x",
		"f(pi) := pi",
		"g(x, sqrt) := x",
	}
	for _, in := range tests {
		c := New()
		_, err := c.Execute(in)
		if !errors.Is(err, ErrReservedName) {
			t.Fatalf("Execute(%q) err=%v, want ErrReservedName", in, err)
		}
		if len(c.Bindings()) != 0 {
			t.Fatalf("Execute(%q) left bindings %v", in, c.Bindings())
		}
	}

	c := New()
	c.Execute("pi := 1")
	if got := mustNumber(t, c, "pi"); got != math.Pi {
		t.Fatalf("pi = %v after failed rebind", got)
	}
}

func TestEval_RebindingSwitchesKind(t *testing.T) {
	c := New()
	if got := mustNumber(t, c, "g := 3", "g(x) := x", "g(2)"); got != 2 {
		t.Fatalf("g(2) = %v, want 2", got)
	}
	if _, err := c.Execute("g + 1"); !errors.Is(err, ErrUndefinedSymbol) {
		t.Fatalf("g + 1 err=%v, want ErrUndefinedSymbol", err)
	}
	if got := mustNumber(t, c, "g := 7", "g"); got != 7 {
		t.Fatalf("g = %v, want 7", got)
	}
	if _, err := c.Execute("g(1)"); !errors.Is(err, ErrNotCallable) {
		t.Fatalf("g(1) err=%v, want ErrNotCallable", err)
	}
}

func TestEval_FailedStatementLeavesEnvironment(t *testing.T) {
	c := New()
	_, err := run(t, c, "c := 1", "c := 1 / 0")
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("err=%v, want ErrDivisionByZero", err)
	}
	if got := mustNumber(t, c, "c"); got != 1 {
		t.Fatalf("c = %v, want 1", got)
	}
}

func TestEval_RecursionIsBounded(t *testing.T) {
	c := New()
	_, err := run(t, c, "loop(x) := loop(x + 1)", "loop(0)")
	if !errors.Is(err, ErrStackExhausted) {
		t.Fatalf("loop(0) err=%v, want ErrStackExhausted", err)
	}

	// The environment is still usable afterwards.
	if got := mustNumber(t, c, "1 + 1"); got != 2 {
		t.Fatalf("1 + 1 = %v", got)
	}
}

func TestEval_MaxDepthOption(t *testing.T) {
	c := NewWithOptions(Options{MaxDepth: 3})
	if got := mustNumber(t, c, "f(x) := x + 1", "g(x) := f(x) + 1", "h(x) := g(x) + 1", "h(0)"); got != 3 {
		t.Fatalf("h(0) = %v, want 3", got)
	}
	_, err := run(t, c, "k(x) := h(x) + 1", "k(0)")
	if !errors.Is(err, ErrStackExhausted) {
		t.Fatalf("k(0) err=%v, want ErrStackExhausted", err)
	}
}

func TestEval_DoesNotMutateEnvironment(t *testing.T) {
	c := New()
	run(t, c, "x := 1", "f(x, y) := x + y")
	before := c.Bindings()
	mustNumber(t, c, "f(5, 6) * x")
	after := c.Bindings()
	if len(before) != len(after) {
		t.Fatalf("bindings changed: %v -> %v", before, after)
	}
	for i := range before {
		if before[i].String() != after[i].String() {
			t.Fatalf("binding %d changed: %s -> %s", i, before[i], after[i])
		}
	}
}
