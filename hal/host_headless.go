package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
	// Script is fed to the keyboard before the first step, as far as the queue allows,
	// and topped up on later ticks.
	Script []KeyEvent
}

// RunHeadless drives the app step function from a ticker without opening a window.
// It returns after cfg.Ticks steps (0 runs until ctx is done) or on the first step error.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, logger Logger, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(logger, DefaultWidth, DefaultHeight)
	step := newApp(h)
	script := cfg.Script

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		for len(script) > 0 && h.kbd.push(script[0]) {
			script = script[1:]
		}
		if step != nil {
			if err := step(); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			h.logger.WriteLineString(fmt.Sprintf("headless: %d ticks, %d frames", tick, h.fb.frames()))
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
