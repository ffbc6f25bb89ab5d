package plotview

import (
	"testing"

	"linecalc/calc"
	"linecalc/hal"
	"linecalc/ui"
)

func newView(t *testing.T, lines ...string) (*View, hal.Framebuffer) {
	t.Helper()
	c := calc.New()
	var g *calc.Graph
	for _, line := range lines {
		v, err := c.Execute(line)
		if err != nil {
			t.Fatalf("Execute(%q) error: %v", line, err)
		}
		g = v.Graph
	}
	fb := hal.NewFramebuffer(320, 240)
	v := New(ui.NewDisplay(fb))
	v.SetGraph(g)
	return v, fb
}

func countColor(fb hal.Framebuffer, want uint16) int {
	buf := fb.Buffer()
	n := 0
	for i := 0; i+1 < len(buf); i += 2 {
		if uint16(buf[i])|uint16(buf[i+1])<<8 == want {
			n++
		}
	}
	return n
}

func TestRender_Line(t *testing.T) {
	v, fb := newView(t, "f(x) := x", "plot f")
	p := v.Render()
	if p == nil {
		t.Fatalf("Render returned nil")
	}

	l := v.layout()
	if len(p.Points) != int(l.W) {
		t.Fatalf("len(points)=%d, want %d", len(p.Points), l.W)
	}
	if p.XAxis == nil || p.YAxis == nil {
		t.Fatalf("axes=%+v %+v, want both", p.XAxis, p.YAxis)
	}

	plotColor := hal.RGB565(ui.ColorPlot.R, ui.ColorPlot.G, ui.ColorPlot.B)
	if n := countColor(fb, plotColor); n < int(l.W)/2 {
		t.Fatalf("plot pixels=%d, want at least %d", n, l.W/2)
	}
	axisColor := hal.RGB565(ui.ColorAxis.R, ui.ColorAxis.G, ui.ColorAxis.B)
	if n := countColor(fb, axisColor); n == 0 {
		t.Fatalf("no axis pixels")
	}
}

func TestRender_NothingToPlot(t *testing.T) {
	fb := hal.NewFramebuffer(100, 80)
	v := New(ui.NewDisplay(fb))
	if p := v.Render(); p != nil {
		t.Fatalf("Render=%+v, want nil", p)
	}
	if got := v.header(); got != "plot -  x[-10,10] y[-10,10]" {
		t.Fatalf("header=%q", got)
	}
}

func TestRender_UndefinedRegion(t *testing.T) {
	v, _ := newView(t, "plot sqrt")
	p := v.Render()
	for i, pt := range p.Points[:len(p.Points)/2-1] {
		if pt.OK {
			t.Fatalf("points[%d]=%+v defined for negative x", i, pt)
		}
	}
}

func TestPanZoom(t *testing.T) {
	v, _ := newView(t, "plot sin")

	v.Pan(0.5, -0.25)
	a := v.Area()
	if a.X.Min != 0 || a.X.Max != 20 || a.Y.Min != -15 || a.Y.Max != 5 {
		t.Fatalf("after Pan: %+v", a)
	}

	v.Zoom(0.5)
	a = v.Area()
	if a.X.Min != 5 || a.X.Max != 15 || a.Y.Min != -10 || a.Y.Max != 0 {
		t.Fatalf("after Zoom: %+v", a)
	}

	v.Zoom(1e-12)
	if v.Area() != a {
		t.Fatalf("collapsing zoom applied: %+v", v.Area())
	}
	v.Zoom(0)
	if v.Area() != a {
		t.Fatalf("zero zoom applied: %+v", v.Area())
	}

	v.Reset()
	if v.Area() != DefaultArea {
		t.Fatalf("after Reset: %+v", v.Area())
	}
	if got := v.header(); got != "plot sin  x[-10,10] y[-10,10]" {
		t.Fatalf("header=%q", got)
	}

	home := calc.Area{X: calc.Range{Min: 0, Max: 1}, Y: calc.Range{Min: -1, Max: 1}}
	v.SetHome(home)
	v.Pan(1, 1)
	v.Reset()
	if v.Area() != home {
		t.Fatalf("Reset after SetHome: %+v, want %+v", v.Area(), home)
	}
}

func TestFormatTic(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: 1e-15, want: "0"},
		{in: 5, want: "5"},
		{in: -20, want: "-20"},
		{in: 0.5, want: "0.50"},
		{in: 12.5, want: "12.5"},
		{in: 2000, want: "2e+03"},
		{in: 0.001, want: "0.001"},
	}
	for _, tt := range tests {
		if got := formatTic(tt.in); got != tt.want {
			t.Fatalf("formatTic(%v)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabelStride(t *testing.T) {
	tics := []calc.Tic{{Pos: 0}, {Pos: 5}, {Pos: 10}}
	if got := labelStride(tics, 12); got != 3 {
		t.Fatalf("labelStride=%d, want 3", got)
	}
	if got := labelStride(tics[:1], 12); got != 1 {
		t.Fatalf("labelStride(single)=%d, want 1", got)
	}
}
