package app

import (
	"fmt"

	"linecalc/calc"
	"linecalc/hal"
	"linecalc/ui"
	"linecalc/ui/console"
	"linecalc/ui/plotview"
)

type mode uint8

const (
	modeConsole mode = iota
	modePlot
)

const (
	panStep = 0.1
	zoomIn  = 0.8
	zoomOut = 1.25
)

// session is the framebuffer front-end: a console that switches to a plot view
// whenever a statement produces a graph.
type session struct {
	h   hal.HAL
	kbd hal.Keyboard
	sh  *shell

	console *console.Console
	plot    *plotview.View
	mode    mode
	dirty   bool
}

// NewSession returns the step function of a window or headless run. Each step drains
// pending key events and redraws when something changed. It returns hal.ErrQuit once
// the user quits.
func NewSession(h hal.HAL, c *calc.Calculator, cfg Config) func() error {
	s := newSession(h, c, cfg)
	return guard(h, s.step)
}

func newSession(h hal.HAL, c *calc.Calculator, cfg Config) *session {
	d := ui.NewDisplay(h.Display().Framebuffer())
	s := &session{
		h:       h,
		sh:      newShell(c, h.Logger(), cfg),
		console: console.New(d),
		plot:    plotview.New(d),
		dirty:   true,
	}
	if in := h.Input(); in != nil {
		s.kbd = in.Keyboard()
	}
	s.plot.SetHome(s.sh.home)
	s.plot.SetArea(s.sh.area)

	w, hgt := d.Size()
	s.sh.log.WriteLineString(fmt.Sprintf("linecalc: session %dx%d", w, hgt))
	s.console.Println("linecalc (:help for help)")
	return s
}

func (s *session) step() error {
	if s.kbd != nil {
	drain:
		for {
			select {
			case ev := <-s.kbd.Events():
				if err := s.handleKey(ev); err != nil {
					return err
				}
			default:
				break drain
			}
		}
	}
	if !s.dirty {
		return nil
	}
	s.dirty = false
	switch s.mode {
	case modePlot:
		s.plot.Render()
	default:
		s.console.Render()
	}
	return nil
}

func (s *session) handleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	s.dirty = true
	if s.mode == modePlot {
		s.handlePlotKey(ev)
		return nil
	}

	if ev.Code == hal.KeyTab && s.plot.Graph() != nil {
		s.mode = modePlot
		return nil
	}
	line, ok := s.console.HandleKey(ev)
	if !ok {
		return nil
	}
	res, err := s.sh.run(line)
	if err != nil {
		s.console.Println("error: " + err.Error())
		return nil
	}
	if res.quit {
		return hal.ErrQuit
	}
	if res.clear {
		s.console.Clear()
	}
	for _, l := range res.lines {
		s.console.Println(l)
	}
	if res.graph != nil {
		s.plot.SetGraph(res.graph)
		s.plot.SetHome(s.sh.home)
		s.plot.SetArea(s.sh.area)
		s.mode = modePlot
	}
	return nil
}

func (s *session) handlePlotKey(ev hal.KeyEvent) {
	switch ev.Code {
	case hal.KeyEscape, hal.KeyTab:
		s.sh.area = s.plot.Area()
		s.mode = modeConsole
	case hal.KeyLeft:
		s.plot.Pan(-panStep, 0)
	case hal.KeyRight:
		s.plot.Pan(panStep, 0)
	case hal.KeyUp:
		s.plot.Pan(0, panStep)
	case hal.KeyDown:
		s.plot.Pan(0, -panStep)
	case hal.KeyPageUp:
		s.plot.Zoom(zoomIn)
	case hal.KeyPageDown:
		s.plot.Zoom(zoomOut)
	case hal.KeyUnknown:
		switch ev.Rune {
		case '+', '=':
			s.plot.Zoom(zoomIn)
		case '-':
			s.plot.Zoom(zoomOut)
		case '0':
			s.plot.Reset()
		case 'q':
			s.sh.area = s.plot.Area()
			s.mode = modeConsole
		}
	}
}
