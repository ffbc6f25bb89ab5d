// Package console is the text side of the window front-end: a tinyterm transcript
// above a one-line editor.
package console

import (
	"image/color"
	"strings"

	"linecalc/hal"
	"linecalc/ui"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	maxOutputLines = 200
	prompt         = "> "
)

// Console owns the whole display while active.
type Console struct {
	d    *ui.Display
	area *region
	ed   Editor

	lines []string
}

func New(d *ui.Display) *Console {
	w, h := d.Size()
	rows := (h - ui.FontHeight - 1) / ui.FontHeight
	return &Console{
		d:    d,
		area: &region{base: d, w: w, h: max(rows, 0) * ui.FontHeight},
	}
}

func (c *Console) Editor() *Editor { return &c.ed }

// Lines returns the transcript, oldest first.
func (c *Console) Lines() []string { return c.lines }

// Println appends s to the transcript, one entry per line of s.
func (c *Console) Println(s string) {
	for _, line := range strings.Split(s, "\n") {
		c.appendLine(line)
	}
}

func (c *Console) appendLine(s string) {
	if len(c.lines) >= maxOutputLines {
		copy(c.lines, c.lines[1:])
		c.lines[len(c.lines)-1] = s
		return
	}
	c.lines = append(c.lines, s)
}

func (c *Console) Clear() { c.lines = c.lines[:0] }

// HandleKey applies ev to the editor. On Enter it returns the submitted line and
// true; the line is echoed to the transcript.
func (c *Console) HandleKey(ev hal.KeyEvent) (string, bool) {
	if !ev.Press {
		return "", false
	}
	switch ev.Code {
	case hal.KeyEnter:
		line := c.ed.Submit()
		c.appendLine(prompt + line)
		return line, true
	case hal.KeyBackspace:
		c.ed.Backspace()
	case hal.KeyDelete:
		c.ed.Delete()
	case hal.KeyLeft:
		c.ed.Left()
	case hal.KeyRight:
		c.ed.Right()
	case hal.KeyHome:
		c.ed.Home()
	case hal.KeyEnd:
		c.ed.End()
	case hal.KeyUp:
		c.ed.HistoryUp()
	case hal.KeyDown:
		c.ed.HistoryDown()
	case hal.KeyUnknown:
		switch r := ev.Rune; {
		case r == 0x01:
			c.ed.Home()
		case r == 0x05:
			c.ed.End()
		case r == 0x15:
			c.ed.Kill()
		case r >= 0x20 && r != 0x7f:
			c.ed.Insert(r)
		}
	}
	return "", false
}

func (c *Console) cols() int {
	fw := ui.FontWidth()
	if fw <= 0 {
		return 0
	}
	w, _ := c.d.Size()
	return int(w / fw)
}

// visible returns the tail of the transcript, wrapped to the terminal width, that
// fits above the input line.
func (c *Console) visible() []string {
	cols := c.cols()
	rows := int(c.area.h/ui.FontHeight) - 1
	if cols <= 0 || rows <= 0 {
		return nil
	}
	var out []string
	for i := len(c.lines) - 1; i >= 0 && len(out) < rows; i-- {
		chunks := wrap(c.lines[i], cols)
		for j := len(chunks) - 1; j >= 0 && len(out) < rows; j-- {
			out = append(out, chunks[j])
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func wrap(s string, cols int) []string {
	rs := []rune(s)
	if len(rs) <= cols {
		return []string{s}
	}
	var out []string
	for len(rs) > cols {
		out = append(out, string(rs[:cols]))
		rs = rs[cols:]
	}
	return append(out, string(rs))
}

// Render redraws the transcript and the input line and presents the frame.
func (c *Console) Render() {
	w, h := c.d.Size()
	_ = c.d.FillRectangle(0, 0, w, h, ui.ColorBG)

	c.area.scroll = 0
	t := tinyterm.NewTerminal(c.area)
	t.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: ui.FontHeight,
		FontOffset: ui.FontOffset,
	})
	_, _ = t.Write([]byte(strings.Join(c.visible(), "\n")))

	barY := h - ui.FontHeight
	_ = c.d.FillRectangle(0, barY-1, w, ui.FontHeight+1, ui.ColorBar)
	cols := c.cols()
	text, cursor := c.inputWindow(cols - len(prompt))
	c.d.DrawString(0, barY, prompt+text, ui.ColorFG, cols)

	fw := ui.FontWidth()
	cx := int16(len(prompt)+cursor) * fw
	_ = c.d.FillRectangle(cx, h-2, fw, 2, ui.ColorFG)

	_ = c.d.Display()
}

// inputWindow scrolls the input horizontally so the cursor stays visible.
func (c *Console) inputWindow(width int) (string, int) {
	rs := []rune(c.ed.Text())
	cur := c.ed.Cursor()
	if width <= 1 || len(rs) < width {
		return string(rs), cur
	}
	start := 0
	if cur >= width {
		start = cur - width + 1
	}
	end := min(len(rs), start+width)
	return string(rs[start:end]), cur - start
}

// region is the transcript part of the display; drawing outside it is dropped.
// tinyterm scrolls by moving the scroll line and redrawing the row that left the
// top, so y is a position in a ring of h rows and the screen shows row scroll first.
type region struct {
	base   *ui.Display
	w, h   int16
	scroll int16
}

func (r *region) Size() (x, y int16) { return r.w, r.h }

// screenY maps a ring row to the display row it is shown on.
func (r *region) screenY(y int16) int16 {
	v := (int(y) - int(r.scroll)) % int(r.h)
	if v < 0 {
		v += int(r.h)
	}
	return int16(v)
}

func (r *region) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= r.w || y < 0 || y >= r.h {
		return
	}
	r.base.SetPixel(x, r.screenY(y), c)
}

func (r *region) Display() error { return r.base.Display() }

func (r *region) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if y < 0 {
		height += y
		y = 0
	}
	if y+height > r.h {
		height = r.h - y
	}
	if height <= 0 {
		return nil
	}
	for row := y; row < y+height; row++ {
		if err := r.base.FillRectangle(x, r.screenY(row), width, 1, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *region) SetScroll(line int16) {
	if r.h <= 0 {
		return
	}
	r.scroll = int16(((int(line) % int(r.h)) + int(r.h)) % int(r.h))
}

func (r *region) SetRotation(rotation drivers.Rotation) error { return r.base.SetRotation(rotation) }
