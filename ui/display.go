// Package ui holds the framebuffer drawing surface shared by the console and the
// plot view.
package ui

import (
	"image/color"

	"linecalc/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	ColorBG   = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	ColorFG   = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	ColorDim  = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
	ColorBar  = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	ColorErr  = color.RGBA{R: 0xFF, G: 0x6A, B: 0x6A, A: 0xFF}
	ColorGrid = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	ColorAxis = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
	ColorPlot = color.RGBA{R: 0x4A, G: 0xD1, B: 0xFF, A: 0xFF}
)

// Font is the monospace UI font. FontHeight is the line pitch and FontOffset the
// baseline offset from the top of a line.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	FontHeight int16 = 10
	FontOffset int16 = 6
)

// FontWidth returns the advance of one glyph of Font.
func FontWidth() int16 {
	_, w := tinyfont.LineWidth(Font, "0")
	return int16(w)
}

// Display adapts an RGB565 hal.Framebuffer to the tinygo drivers.Displayer
// interface, plus the extras tinyterm needs.
type Display struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*Display)(nil)

func NewDisplay(fb hal.Framebuffer) *Display {
	return &Display{fb: fb}
}

func (d *Display) Framebuffer() hal.Framebuffer { return d.fb }

func (d *Display) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *Display) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// SetScroll is a no-op: the framebuffer has no hardware scroll line. Scrolling
// terminals draw through a region that keeps its own.
func (d *Display) SetScroll(line int16) {}

func (d *Display) SetRotation(rotation drivers.Rotation) error { return nil }

// DrawLine draws a Bresenham line from (x0, y0) to (x1, y1), both ends inclusive.
func (d *Display) DrawLine(x0, y0, x1, y1 int16, c color.RGBA) {
	dx := absInt(int(x1) - int(x0))
	dy := -absInt(int(y1) - int(y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		d.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += int16(sx)
		}
		if e2 <= dx {
			err += dx
			y0 += int16(sy)
		}
	}
}

// DrawString draws s with its top-left corner at (x, y), clipped to cols glyphs.
func (d *Display) DrawString(x, y int16, s string, fg color.RGBA, cols int) {
	fw := FontWidth()
	col := int16(0)
	for _, r := range s {
		if int(col) >= cols {
			return
		}
		tinyfont.DrawChar(d, Font, x+col*fw, y+FontOffset, r, fg)
		col++
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
