package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"linecalc/calc"
	"linecalc/hal"

	"github.com/google/shlex"
)

var errUnknownCommand = errors.New("unknown command")

// shell executes one input line for either front-end: statements go to the
// calculator, lines starting with ':' are front-end commands.
type shell struct {
	calc *calc.Calculator
	log  hal.Logger
	cfg  Config
	// home is the area set by config or :range; area follows panning in the window.
	home calc.Area
	area calc.Area
	// bareQuit lets the words quit and exit end the session while they are unbound.
	bareQuit bool
}

func newShell(c *calc.Calculator, log hal.Logger, cfg Config) *shell {
	if log == nil {
		log = hal.Discard
	}
	cfg = cfg.withDefaults()
	return &shell{calc: c, log: log, cfg: cfg, home: cfg.Area, area: cfg.Area}
}

// outcome is what a line produced.
type outcome struct {
	lines []string
	// graph is set when the line asked for a plot.
	graph *calc.Graph
	clear bool
	quit  bool
}

func (s *shell) run(line string) (outcome, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return outcome{}, nil
	case s.bareQuit && (line == "quit" || line == "exit") && !s.bound(line):
		return outcome{quit: true}, nil
	case strings.HasPrefix(line, ":"):
		out, err := s.command(line[1:])
		if err != nil {
			s.reject(line, err)
		}
		return out, err
	}

	v, err := s.calc.Execute(line)
	if err != nil {
		s.reject(line, err)
		return outcome{}, err
	}
	out := outcome{lines: []string{v.String()}}
	if v.Kind == calc.ValueGraph {
		out.graph = v.Graph
	}
	return out, nil
}

func (s *shell) bound(name string) bool {
	for _, b := range s.calc.Bindings() {
		if b.Name == name {
			return true
		}
	}
	return false
}

func (s *shell) reject(line string, err error) {
	if s.cfg.Verbose {
		s.log.WriteLineString(fmt.Sprintf("linecalc: rejected %q: %v", line, err))
	}
}

func (s *shell) command(cmdline string) (outcome, error) {
	fields, err := shlex.Split(cmdline)
	if err != nil {
		return outcome{}, fmt.Errorf("bad command: %w", err)
	}
	if len(fields) == 0 {
		return outcome{}, fmt.Errorf("%w: empty (try :help)", errUnknownCommand)
	}

	switch cmd, args := fields[0], fields[1:]; cmd {
	case "help", "h", "?":
		return outcome{lines: helpLines()}, nil
	case "vars":
		var lines []string
		for _, b := range s.calc.Bindings() {
			lines = append(lines, b.String())
		}
		if len(lines) == 0 {
			lines = []string{"no bindings"}
		}
		return outcome{lines: lines}, nil
	case "range":
		if len(args) == 0 {
			return outcome{lines: []string{formatArea(s.area)}}, nil
		}
		if len(args) != 4 {
			return outcome{}, errors.New("usage: :range XMIN XMAX YMIN YMAX")
		}
		var v [4]float64
		for i, a := range args {
			f, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return outcome{}, fmt.Errorf("usage: :range XMIN XMAX YMIN YMAX: %q is not a number", a)
			}
			v[i] = f
		}
		area, err := calc.NewArea(v[0], v[2], v[1], v[3])
		if err != nil {
			return outcome{}, err
		}
		s.home, s.area = area, area
		return outcome{lines: []string{formatArea(area)}}, nil
	case "plot":
		if len(args) != 1 {
			return outcome{}, errors.New("usage: :plot NAME")
		}
		g, err := s.calc.Graph(args[0])
		if err != nil {
			return outcome{}, err
		}
		return outcome{lines: []string{"plot " + g.Name()}, graph: g}, nil
	case "clear":
		return outcome{clear: true}, nil
	case "quit", "q":
		return outcome{quit: true}, nil
	default:
		return outcome{}, fmt.Errorf("%w :%s (try :help)", errUnknownCommand, cmd)
	}
}

func helpLines() []string {
	return []string{
		"statements:",
		"  expr                  evaluate, e.g. 1 + 2 * 3 (left to right)",
		"  name := expr          bind a variable",
		"  f(x, y) := expr       define a function",
		"  solve l = r for x     solve a linear equation for x",
		"  plot f                plot a one-argument function",
		"commands:",
		"  :vars                 list bindings",
		"  :range X0 X1 Y0 Y1    set the plot area",
		"  :plot f               plot f",
		"  :clear                clear the screen",
		"  :quit                 leave",
		"plot view: arrows pan, +/- zoom, 0 back to the :range area, Esc returns",
		"builtins: " + strings.Join(calc.BuiltinNames(), " "),
	}
}

func formatArea(a calc.Area) string {
	return fmt.Sprintf("range x[%s, %s] y[%s, %s]",
		calc.FormatNumber(a.X.Min), calc.FormatNumber(a.X.Max),
		calc.FormatNumber(a.Y.Min), calc.FormatNumber(a.Y.Max))
}
