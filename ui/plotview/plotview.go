// Package plotview rasterizes a calc graph onto a framebuffer: grid, axes, tic
// labels and the function polyline.
package plotview

import (
	"fmt"
	"math"

	"linecalc/calc"
	"linecalc/ui"
)

// DefaultArea is the initial visible region.
var DefaultArea = calc.Area{
	X: calc.Range{Min: -10, Max: 10},
	Y: calc.Range{Min: -10, Max: 10},
}

const (
	minSpan = 1e-9
	maxSpan = 1e12
)

// View renders one graph at a time into a rectangle of a ui.Display.
type View struct {
	d     *ui.Display
	area  calc.Area
	home  calc.Area
	graph *calc.Graph
}

func New(d *ui.Display) *View {
	return &View{d: d, area: DefaultArea, home: DefaultArea}
}

// SetGraph replaces the plotted graph and keeps the current area.
func (v *View) SetGraph(g *calc.Graph) { v.graph = g }

func (v *View) Graph() *calc.Graph { return v.graph }

func (v *View) Area() calc.Area { return v.area }

func (v *View) SetArea(a calc.Area) { v.area = a }

// SetHome sets the area Reset returns to.
func (v *View) SetHome(a calc.Area) { v.home = a }

func (v *View) Reset() { v.area = v.home }

// Pan moves the area by fractions of its width and height.
func (v *View) Pan(dxFrac, dyFrac float64) {
	v.area.MoveBy(dxFrac*v.area.X.Distance(), dyFrac*v.area.Y.Distance())
}

// Zoom scales both ranges around their centers. factor < 1 zooms in. Requests that
// would collapse or blow up the area are ignored.
func (v *View) Zoom(factor float64) {
	if !(factor > 0) {
		return
	}
	next := v.area
	next.X.Zoom(factor)
	next.Y.Zoom(factor)
	for _, r := range []calc.Range{next.X, next.Y} {
		d := r.Distance()
		if !(d > minSpan) || !(d < maxSpan) {
			return
		}
	}
	v.area = next
}

// rect is the pixel rectangle the graph is drawn into.
type rect struct {
	X, Y, W, H int16
}

func (v *View) layout() rect {
	w, h := v.d.Size()
	left := 6 * ui.FontWidth()
	top := ui.FontHeight + 1
	bottom := ui.FontHeight + 1
	return rect{X: left, Y: top, W: w - left - 1, H: h - top - bottom}
}

// Render draws the header, grid, axes and graph, presents the frame and returns the
// projected plot (nil when there is nothing to draw).
func (v *View) Render() *calc.Plot {
	w, h := v.d.Size()
	_ = v.d.FillRectangle(0, 0, w, h, ui.ColorBG)
	_ = v.d.FillRectangle(0, 0, w, ui.FontHeight, ui.ColorBar)
	cols := int(w / ui.FontWidth())
	v.d.DrawString(0, 0, v.header(), ui.ColorFG, cols)

	l := v.layout()
	if v.graph == nil || l.W <= 2 || l.H <= 2 {
		_ = v.d.Display()
		return nil
	}

	screen := calc.Area{
		X: calc.Range{Min: 0, Max: float64(l.W)},
		Y: calc.Range{Min: 0, Max: float64(l.H)},
	}
	p := v.graph.Plot(v.area, screen)

	v.drawGrid(l, screen)
	v.drawAxes(l, p)
	v.drawPoints(l, p)

	_ = v.d.Display()
	return p
}

func (v *View) header() string {
	name := "-"
	if v.graph != nil {
		name = v.graph.Name()
	}
	a := v.area
	return fmt.Sprintf("plot %s  x[%s,%s] y[%s,%s]", name,
		formatTic(a.X.Min), formatTic(a.X.Max), formatTic(a.Y.Min), formatTic(a.Y.Max))
}

// row converts a screen y position (0 at the bottom) into a display row.
func row(l rect, pos float64) int16 {
	return l.Y + l.H - 1 - int16(pos)
}

func (v *View) drawGrid(l rect, screen calc.Area) {
	fw := ui.FontWidth()

	xtics := calc.Tics(screen.X, v.area.X)
	every := labelStride(xtics, float64(4*fw))
	for i, tic := range xtics {
		x := l.X + int16(tic.Pos)
		v.d.DrawLine(x, l.Y, x, l.Y+l.H-1, ui.ColorGrid)
		if i%every != 0 {
			continue
		}
		s := formatTic(tic.Label)
		lx := x - int16(len(s))*fw/2
		if lx < 0 {
			lx = 0
		}
		v.d.DrawString(lx, l.Y+l.H+1, s, ui.ColorDim, len(s))
	}

	ytics := calc.Tics(screen.Y, v.area.Y)
	every = labelStride(ytics, float64(ui.FontHeight))
	for i, tic := range ytics {
		y := row(l, tic.Pos)
		v.d.DrawLine(l.X, y, l.X+l.W-1, y, ui.ColorGrid)
		if i%every != 0 {
			continue
		}
		s := formatTic(tic.Label)
		cols := int(l.X/fw) - 1
		lx := l.X - 1 - int16(min(len(s), cols))*fw
		if lx < 0 {
			lx = 0
		}
		v.d.DrawString(lx, y-ui.FontHeight/2, s, ui.ColorDim, cols)
	}
}

// labelStride returns how many tics to skip between labels so that labels are at
// least minGap pixels apart.
func labelStride(tics []calc.Tic, minGap float64) int {
	if len(tics) < 2 {
		return 1
	}
	gap := math.Abs(tics[1].Pos - tics[0].Pos)
	if gap <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(minGap/gap)))
}

func (v *View) drawAxes(l rect, p *calc.Plot) {
	if p.XAxis != nil {
		y := row(l, p.XAxis.Pos)
		v.d.DrawLine(l.X, y, l.X+l.W-1, y, ui.ColorAxis)
	}
	if p.YAxis != nil {
		x := l.X + int16(p.YAxis.Pos)
		v.d.DrawLine(x, l.Y, x, l.Y+l.H-1, ui.ColorAxis)
	}
}

func (v *View) drawPoints(l rect, p *calc.Plot) {
	var prev calc.Point
	for _, pt := range p.Points {
		if !pt.OK {
			prev = pt
			continue
		}
		x := l.X + int16(pt.X)
		y := row(l, pt.Y)
		if prev.OK {
			v.d.DrawLine(l.X+int16(prev.X), row(l, prev.Y), x, y, ui.ColorPlot)
		} else {
			v.d.SetPixel(x, y, ui.ColorPlot)
		}
		prev = pt
	}
}

func formatTic(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	if math.Abs(v) < 1e-12 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 1000 || av < 0.01:
		return fmt.Sprintf("%.2g", v)
	case av == math.Trunc(av):
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
