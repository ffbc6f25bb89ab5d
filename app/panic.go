package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"linecalc/hal"
	"linecalc/ui"
)

// guard turns a panic inside step into an error. The panic and its stack are logged
// and painted over the framebuffer so a window run shows what went wrong before it closes.
func guard(h hal.HAL, step func() error) func() error {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			stack := debug.Stack()
			reportPanic(h, v, stack)
			err = fmt.Errorf("linecalc panic: %v", v)
		}()
		return step()
	}
}

func reportPanic(h hal.HAL, v any, stack []byte) {
	lines := []string{"linecalc panic:", fmt.Sprintf("panic: %v", v)}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return
	}
	d := ui.NewDisplay(disp.Framebuffer())
	w, hgt := d.Size()
	_ = d.FillRectangle(0, 0, w, hgt, ui.ColorBG)

	cols := int(w / ui.FontWidth())
	if cols <= 0 {
		cols = 1
	}
	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 && y+ui.FontHeight <= hgt {
			chunk, rest := takeRunes(line, cols)
			d.DrawString(0, y, chunk, ui.ColorErr, cols)
			y += ui.FontHeight
			line = strings.TrimLeft(rest, " ")
		}
		if y+ui.FontHeight > hgt {
			break
		}
	}
	_ = d.Display()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	return s[:i], s[i:]
}
