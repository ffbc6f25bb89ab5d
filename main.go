package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"linecalc/app"
	"linecalc/hal"
	"linecalc/internal/buildinfo"
)

// stmtList collects repeated -e flags.
type stmtList []string

func (l *stmtList) String() string { return strings.Join(*l, "; ") }

func (l *stmtList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func main() {
	var (
		hcfg     hal.HeadlessConfig
		wcfg     hal.WindowConfig
		stmts    stmtList
		headless bool
		window   bool
		version  bool
	)
	cfg := app.DefaultConfig()
	flag.BoolVar(&headless, "headless", false, "Run the window session without a window.")
	flag.BoolVar(&window, "window", false, "Open the framebuffer window instead of the terminal REPL.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run until interrupted).")
	flag.IntVar(&wcfg.Scale, "scale", 2, "Window scale factor.")
	flag.Var(&stmts, "e", "Statement to run; repeatable. Without -headless the results are printed and linecalc exits.")
	flag.IntVar(&cfg.MaxDepth, "max-depth", 0, "Maximum nested function calls (0 = default).")
	flag.BoolVar(&cfg.Verbose, "v", false, "Log rejected statements to stderr.")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	logger := hal.NewLogger(os.Stderr)
	c := app.NewCalculator(cfg)
	newApp := func(h hal.HAL) func() error { return app.NewSession(h, c, cfg) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case headless:
		for _, s := range stmts {
			hcfg.Script = append(hcfg.Script, hal.TypeLine(s)...)
		}
		err = hal.RunHeadless(ctx, newApp, logger, hcfg)
	case window:
		err = hal.RunWindow(newApp, logger, wcfg)
	case len(stmts) > 0:
		err = app.Exec(c, stmts, os.Stdout, logger, cfg)
	default:
		err = app.REPL(ctx, os.Stdin, os.Stdout, c, logger, cfg)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
