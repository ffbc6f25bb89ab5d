package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"linecalc/calc"
	"linecalc/hal"
)

func TestExec(t *testing.T) {
	var out bytes.Buffer
	err := Exec(calc.New(), []string{"a := 2", "f(x) := x * a", "f(3)", "solve 2 * x = 8 for x", ":vars"}, &out, nil, Config{})
	if err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	want := "2\nok\n6\nx = 4\na := 2\nf(x) := x * a\n"
	if got := out.String(); got != want {
		t.Fatalf("out=%q, want %q", got, want)
	}
}

func TestExec_StopsAtFirstError(t *testing.T) {
	var out, log bytes.Buffer
	err := Exec(calc.New(), []string{"1 + 1", "1 / 0", "2 + 2"}, &out, hal.NewLogger(&log), Config{Verbose: true})
	if !errors.Is(err, calc.ErrDivisionByZero) {
		t.Fatalf("err=%v, want division by zero", err)
	}
	if !strings.Contains(err.Error(), `"1 / 0"`) {
		t.Fatalf("err=%q does not name the statement", err)
	}
	if got := out.String(); got != "2\n" {
		t.Fatalf("out=%q, want only the first result", got)
	}
	if !strings.Contains(log.String(), `linecalc: rejected "1 / 0"`) {
		t.Fatalf("log=%q", log.String())
	}
}

func TestShell_Commands(t *testing.T) {
	tests := []struct {
		line  string
		want  string
		isErr error
		usage bool
	}{
		{line: ":range -1 1 -2 2", want: "range x[-1, 1] y[-2, 2]"},
		{line: ":range", want: "range x[-10, 10] y[-10, 10]"},
		{line: ":range 1 2", usage: true},
		{line: ":range 1 'x' 0 1", usage: true},
		{line: ":range 1 0 0 1", isErr: calc.ErrPlot},
		{line: ":plot", usage: true},
		{line: `:plot "sqrt"`, want: "plot sqrt"},
		{line: ":plot nope", isErr: calc.ErrUndefinedSymbol},
		{line: ":nope", isErr: errUnknownCommand},
		{line: ":", isErr: errUnknownCommand},
	}
	for _, tt := range tests {
		sh := newShell(calc.New(), nil, Config{})
		res, err := sh.run(tt.line)
		switch {
		case tt.usage:
			if err == nil || !strings.HasPrefix(err.Error(), "usage:") {
				t.Fatalf("%q: err=%v, want usage", tt.line, err)
			}
		case tt.isErr != nil:
			if !errors.Is(err, tt.isErr) {
				t.Fatalf("%q: err=%v, want %v", tt.line, err, tt.isErr)
			}
		default:
			if err != nil {
				t.Fatalf("%q: error: %v", tt.line, err)
			}
			if len(res.lines) != 1 || res.lines[0] != tt.want {
				t.Fatalf("%q: lines=%q, want %q", tt.line, res.lines, tt.want)
			}
		}
	}
}

func TestShell_RangeAppliesToLaterPlots(t *testing.T) {
	sh := newShell(calc.New(), nil, Config{})
	if _, err := sh.run(":range 0 4 0 2"); err != nil {
		t.Fatalf("range error: %v", err)
	}
	if sh.area.X.Max != 4 || sh.area.Y.Max != 2 {
		t.Fatalf("area=%+v", sh.area)
	}
	res, err := sh.run("plot sqrt")
	if err != nil {
		t.Fatalf("plot error: %v", err)
	}
	if res.graph == nil || res.graph.Name() != "sqrt" {
		t.Fatalf("graph=%v", res.graph)
	}
}

func TestShell_QuitAndClear(t *testing.T) {
	sh := newShell(calc.New(), nil, Config{})
	sh.bareQuit = true
	for _, line := range []string{"quit", "exit", ":quit", ":q"} {
		res, err := sh.run(line)
		if err != nil || !res.quit {
			t.Fatalf("%q: res=%+v err=%v, want quit", line, res, err)
		}
	}
	if res, _ := sh.run(":clear"); !res.clear {
		t.Fatalf(":clear did not clear")
	}
	if res, err := sh.run("   "); err != nil || len(res.lines) != 0 {
		t.Fatalf("blank line: res=%+v err=%v", res, err)
	}
}

func TestREPL(t *testing.T) {
	in := strings.NewReader("a := 2\na * 3\n:vars\nbogus +\nquit\n1\n")
	var out bytes.Buffer
	if err := REPL(context.Background(), in, &out, calc.New(), nil, Config{}); err != nil {
		t.Fatalf("REPL error: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "linecalc ") {
		t.Fatalf("missing banner: %q", got)
	}
	for _, want := range []string{"> 2\n", "> 6\n", "> a := 2\n", "> error: syntax error"} {
		if !strings.Contains(got, want) {
			t.Fatalf("out=%q, missing %q", got, want)
		}
	}
	if n := strings.Count(got, replPrompt); n != 5 {
		t.Fatalf("prompts=%d, want 5 (input after quit is ignored)", n)
	}
}

func TestREPL_QuitCanBeBound(t *testing.T) {
	in := strings.NewReader("quit := 3\nquit * 2\nquit\n:quit\n1\n")
	var out bytes.Buffer
	if err := REPL(context.Background(), in, &out, calc.New(), nil, Config{}); err != nil {
		t.Fatalf("REPL error: %v", err)
	}
	got := out.String()
	for _, want := range []string{"> 3\n", "> 6\n> 3\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("out=%q, missing %q", got, want)
		}
	}
	if n := strings.Count(got, replPrompt); n != 4 {
		t.Fatalf("prompts=%d, want 4", n)
	}
}

func TestREPL_EOF(t *testing.T) {
	var out bytes.Buffer
	if err := REPL(context.Background(), strings.NewReader("1 + 1"), &out, calc.New(), nil, Config{}); err != nil {
		t.Fatalf("REPL error: %v", err)
	}
	if !strings.Contains(out.String(), "> 2\n") {
		t.Fatalf("out=%q", out.String())
	}
}

func TestREPL_Canceled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := REPL(ctx, r, io.Discard, calc.New(), nil, Config{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}

func TestREPL_PrintsChart(t *testing.T) {
	in := strings.NewReader("f(x) := x\nplot f\n")
	var out bytes.Buffer
	cfg := Config{PlotWidth: 20, PlotHeight: 10}
	if err := REPL(context.Background(), in, &out, calc.New(), nil, cfg); err != nil {
		t.Fatalf("REPL error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "> plot f\n") || !strings.Contains(got, "range x[-10, 10] y[-10, 10]") {
		t.Fatalf("out=%q", got)
	}
	if strings.Count(got, "*") != 20 {
		t.Fatalf("chart points=%d, want 20:\n%s", strings.Count(got, "*"), got)
	}
}

func TestChart(t *testing.T) {
	c := calc.New()
	if _, err := c.Execute("f(x) := x"); err != nil {
		t.Fatalf("define: %v", err)
	}
	g, err := c.Graph("f")
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	rows := Chart(g, DefaultConfig().Area, 20, 20)
	if len(rows) != 20 {
		t.Fatalf("rows=%d, want 20", len(rows))
	}
	for i, row := range rows {
		if len(row) != 20 {
			t.Fatalf("row %d len=%d", i, len(row))
		}
	}
	if rows[19][0] != '*' {
		t.Fatalf("bottom-left=%q, want *", rows[19][0])
	}
	if rows[5][10] != '|' {
		t.Fatalf("y axis cell=%q, want |", rows[5][10])
	}
	if rows[9][3] != '-' {
		t.Fatalf("x axis cell=%q, want -", rows[9][3])
	}
	if n := strings.Count(strings.Join(rows, ""), "*"); n != 20 {
		t.Fatalf("points=%d, want 20", n)
	}

	if Chart(nil, DefaultConfig().Area, 20, 20) != nil {
		t.Fatalf("nil graph produced a chart")
	}
}
