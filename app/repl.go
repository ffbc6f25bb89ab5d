package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"linecalc/calc"
	"linecalc/hal"
	"linecalc/internal/buildinfo"
)

const replPrompt = "> "

// REPL reads one statement per line from in and writes each result to out. It returns
// nil on EOF or quit, and ctx.Err() once ctx is done.
func REPL(ctx context.Context, in io.Reader, out io.Writer, c *calc.Calculator, log hal.Logger, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sh := newShell(c, log, cfg)
	sh.bareQuit = true
	lines, errc := scanLines(ctx, in)

	fmt.Fprintf(out, "linecalc %s (:help for help)\n", buildinfo.Short())
	for {
		fmt.Fprint(out, replPrompt)
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return <-errc
			}
			line = l
		}

		res, err := sh.run(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if res.quit {
			return nil
		}
		if res.clear {
			fmt.Fprint(out, "\x1b[H\x1b[2J")
		}
		for _, l := range res.lines {
			fmt.Fprintln(out, l)
		}
		if res.graph != nil {
			writeChart(out, res.graph, sh)
		}
	}
}

func writeChart(out io.Writer, g *calc.Graph, sh *shell) {
	for _, row := range Chart(g, sh.area, sh.cfg.PlotWidth, sh.cfg.PlotHeight) {
		fmt.Fprintln(out, strings.TrimRight(row, " "))
	}
	fmt.Fprintln(out, formatArea(sh.area))
}

// scanLines reads in on its own goroutine so a blocked read does not hold up
// cancellation. errc receives the scanner error once lines is closed.
func scanLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

// Exec runs each statement in order and writes its result to out. It stops at the
// first failing statement.
func Exec(c *calc.Calculator, stmts []string, out io.Writer, log hal.Logger, cfg Config) error {
	sh := newShell(c, log, cfg)
	sh.bareQuit = true
	for _, stmt := range stmts {
		res, err := sh.run(stmt)
		if err != nil {
			return fmt.Errorf("%q: %w", stmt, err)
		}
		if res.quit {
			return nil
		}
		for _, l := range res.lines {
			fmt.Fprintln(out, l)
		}
		if res.graph != nil {
			writeChart(out, res.graph, sh)
		}
	}
	return nil
}
