package calc

import (
	"errors"
	"math"
	"testing"
)

func TestSolve_Linear(t *testing.T) {
	tests := []struct {
		setup []string
		in    string
		want  float64
	}{
		{in: "solve x = 4 for x", want: 4},
		{in: "solve 12 * x = 33 + x for x", want: 3},
		{in: "solve 4 = x for x", want: 4},
		{in: "solve x * 3 = 12 for x", want: 4},
		{in: "solve x / 4 = 2 for x", want: 8},
		{in: "solve (12 * x - 15) / 3 = 3 for x", want: 2},
		{in: "solve 3 - x = 1 for x", want: 2},
		// Flat precedence: (5 + 2) * x + 12 = (22 - 6) * x + 7.
		{in: "solve 5 + 2 * x + 12 = 22 - 6 * x + 7 for x", want: 5.0 / 9.0},
		{setup: []string{"a := 6"}, in: "solve 3 * x - 2 = x + a for x", want: 4},
		{setup: []string{"k := 2"}, in: "solve x * k = 10 for x", want: 5},
		{in: "solve y + sqrt(16) = 10 for y", want: 6},
		{in: "solve 2 ^ 3 + x = 10 for x", want: 2},
		{setup: []string{"f(t) := t * 10"}, in: "solve x + f(2) = 25 for x", want: 5},
	}

	for _, tt := range tests {
		c := New()
		for _, line := range tt.setup {
			if _, err := c.Execute(line); err != nil {
				t.Fatalf("Execute(%q) error: %v", line, err)
			}
		}
		v, err := c.Execute(tt.in)
		if err != nil {
			t.Fatalf("Execute(%q) error: %v", tt.in, err)
		}
		if v.Kind != ValueSolved {
			t.Fatalf("Execute(%q) kind=%d, want solved", tt.in, v.Kind)
		}
		if math.Abs(v.Number-tt.want) > 1e-12 {
			t.Fatalf("Execute(%q)=%v, want %v", tt.in, v.Number, tt.want)
		}
	}
}

func TestSolve_Errors(t *testing.T) {
	tests := []struct {
		setup []string
		in    string
		want  error
	}{
		{in: "solve sin(x) = 1 for x", want: ErrTargetInFunctionArgs},
		{in: "solve abs(2 * x) + 1 = 1 for x", want: ErrTargetInFunctionArgs},
		{setup: []string{"g(a, b) := a + b"}, in: "solve g(1, x) = 3 for x", want: ErrTargetInFunctionArgs},
		{in: "solve x * x = 4 for x", want: ErrNonLinear},
		{in: "solve 1 / x = 4 for x", want: ErrNonLinear},
		{in: "solve x ^ 2 = 4 for x", want: ErrNonLinear},
		{in: "solve 2 ^ x = 4 for x", want: ErrNonLinear},
		{in: "solve x % 2 = 1 for x", want: ErrNonLinear},
		{in: "solve x = x + 1 for x", want: ErrNoSolution},
		{in: "solve x + 1 = 1 + x for x", want: ErrInfiniteSolutions},
		{in: "solve x + y = 1 for x", want: ErrUndefinedSymbol},
		{in: "solve x / 0 = 1 for x", want: ErrDivisionByZero},
		{in: "solve pi = 1 for pi", want: ErrReservedName},
	}

	for _, tt := range tests {
		c := New()
		for _, line := range tt.setup {
			if _, err := c.Execute(line); err != nil {
				t.Fatalf("Execute(%q) error: %v", line, err)
			}
		}
		_, err := c.Execute(tt.in)
		if !errors.Is(err, tt.want) {
			t.Fatalf("Execute(%q) err=%v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestSolve_NoUniqueSolutionFamily(t *testing.T) {
	for _, in := range []string{"solve x = x + 1 for x", "solve 2 * x = x + x for x"} {
		_, err := New().Execute(in)
		if !errors.Is(err, ErrNoUniqueSolution) {
			t.Fatalf("Execute(%q) err=%v, want ErrNoUniqueSolution", in, err)
		}
	}
}

func TestSolve_IgnoresExistingBinding(t *testing.T) {
	c := New()
	if _, err := c.Execute("x := 100"); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	v, err := c.Execute("solve x + 1 = 5 for x")
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if v.Number != 4 || v.Variable != "x" || v.String() != "x = 4" {
		t.Fatalf("solve=%+v (%s)", v, v)
	}
	// Solving does not bind the target.
	x, err := c.Execute("x")
	if err != nil || x.Number != 100 {
		t.Fatalf("x=%v err=%v, want 100", x.Number, err)
	}
}
