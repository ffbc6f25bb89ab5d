package calc

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax = errors.New("syntax error")

	// ErrUndefinedSymbol is returned when a name has no binding usable in its position.
	ErrUndefinedSymbol = errors.New("undefined symbol")
	ErrNotCallable     = errors.New("not callable")
	ErrReservedName    = errors.New("reserved name")
	ErrArityMismatch   = errors.New("arity mismatch")

	ErrDivisionByZero = errors.New("division by zero")
	ErrDomain         = errors.New("domain error")

	ErrNonLinear            = errors.New("equation is not linear")
	ErrTargetInFunctionArgs = errors.New("dependent variable in function arguments")
	// ErrNoUniqueSolution is matched by both ErrNoSolution and ErrInfiniteSolutions.
	ErrNoUniqueSolution  = errors.New("no unique solution")
	ErrNoSolution        = fmt.Errorf("%w: no solution", ErrNoUniqueSolution)
	ErrInfiniteSolutions = fmt.Errorf("%w: infinitely many solutions", ErrNoUniqueSolution)

	ErrStackExhausted = errors.New("stack exhausted")

	ErrPlot = errors.New("plot error")
)

// SyntaxError reports where the grammar stopped matching the input.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d: %s", ErrSyntax, e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: %s expects %d argument(s), got %d", ErrArityMismatch, e.Name, e.Want, e.Got)
}

func (e *ArityError) Unwrap() error { return ErrArityMismatch }

func undefined(name string) error { return fmt.Errorf("%w %q", ErrUndefinedSymbol, name) }

func notCallable(name string) error { return fmt.Errorf("%w: %q", ErrNotCallable, name) }

func reserved(name string) error { return fmt.Errorf("%w: %q cannot be rebound", ErrReservedName, name) }
