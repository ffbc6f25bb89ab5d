package app

import (
	"linecalc/calc"
	"linecalc/ui/plotview"
)

// Config is shared by the REPL and the window session.
type Config struct {
	// MaxDepth bounds user function call nesting; 0 uses calc.DefaultMaxDepth.
	MaxDepth int
	// Verbose logs rejected statements.
	Verbose bool

	// Area is the initial plot area.
	Area calc.Area
	// PlotWidth and PlotHeight size the text chart printed by the REPL.
	PlotWidth  int
	PlotHeight int
}

func DefaultConfig() Config {
	return Config{
		Area:       plotview.DefaultArea,
		PlotWidth:  60,
		PlotHeight: 20,
	}
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.Area.X.Distance() <= 0 || cfg.Area.Y.Distance() <= 0 {
		cfg.Area = def.Area
	}
	if cfg.PlotWidth <= 0 {
		cfg.PlotWidth = def.PlotWidth
	}
	if cfg.PlotHeight <= 0 {
		cfg.PlotHeight = def.PlotHeight
	}
	return cfg
}

// NewCalculator builds the calculator configured by cfg.
func NewCalculator(cfg Config) *calc.Calculator {
	return calc.NewWithOptions(calc.Options{MaxDepth: cfg.MaxDepth})
}
