package calc

import (
	"fmt"
	"math"
)

// Graph is a plottable one-argument function bound to a snapshot of the environment
// taken when it was created.
type Graph struct {
	fn  callee
	env *Env
}

func newGraph(name string, e *Env) (*Graph, error) {
	fn, err := e.lookupFunction(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlot, err)
	}
	if fn.arity() != 1 {
		return nil, fmt.Errorf("%w: %w", ErrPlot, &ArityError{Name: name, Want: 1, Got: fn.arity()})
	}
	return &Graph{fn: fn, env: e.clone()}, nil
}

func (g *Graph) Name() string { return g.fn.name }

// At evaluates the function at x.
func (g *Graph) At(x float64) (float64, error) {
	return call(g.env, g.fn, []float64{x})
}

// Point is one sample. OK is false where the function failed or was not finite.
type Point struct {
	X, Y float64
	OK   bool
}

// Sample evaluates the function at n evenly spaced points from r.Min to r.Max.
func (g *Graph) Sample(r Range, n int) []Point {
	if n <= 0 {
		return nil
	}
	out := make([]Point, n)
	for i := range out {
		x := r.Min
		if n > 1 {
			x = r.Min + float64(i)*r.Distance()/float64(n-1)
		}
		y, err := g.At(x)
		out[i] = Point{X: x, Y: y, OK: err == nil && isFinite(y)}
	}
	return out
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Range is an interval with Min < Max.
type Range struct {
	Min float64
	Max float64
}

func NewRange(min, max float64) (Range, error) {
	if !(min < max) {
		return Range{}, fmt.Errorf("%w: min %s must be smaller than max %s", ErrPlot, FormatNumber(min), FormatNumber(max))
	}
	return Range{Min: min, Max: max}, nil
}

// Contains reports min <= v <= max.
func (r Range) Contains(v float64) bool { return r.Min <= v && v <= r.Max }

func (r Range) Distance() float64 { return r.Max - r.Min }

// Project maps v from r onto to. Values outside [Min, Max) do not project.
func (r Range) Project(v float64, to Range) (float64, bool) {
	if !(r.Min <= v && v < r.Max) {
		return 0, false
	}
	return to.Min + (v-r.Min)/r.Distance()*to.Distance(), true
}

func (r *Range) MoveBy(delta float64) {
	r.Min += delta
	r.Max += delta
}

// Zoom scales the range around its center.
func (r *Range) Zoom(factor float64) {
	c := (r.Min + r.Max) / 2
	half := r.Distance() / 2 * factor
	r.Min = c - half
	r.Max = c + half
}

// Area is a rectangle of two ranges.
type Area struct {
	X Range
	Y Range
}

func NewArea(xMin, yMin, xMax, yMax float64) (Area, error) {
	x, err := NewRange(xMin, xMax)
	if err != nil {
		return Area{}, err
	}
	y, err := NewRange(yMin, yMax)
	if err != nil {
		return Area{}, err
	}
	return Area{X: x, Y: y}, nil
}

func (a *Area) MoveBy(dx, dy float64) {
	a.X.MoveBy(dx)
	a.Y.MoveBy(dy)
}

// Tic is an axis mark: screen position and the area value it labels.
type Tic struct {
	Pos   float64
	Label float64
}

// maxTics bounds the marks along one axis.
const maxTics = 1000

// Tics places marks every 10^round(log10(width)-1) along area, projected to screen.
// It returns nil when the spacing is too fine to be represented at the area's
// magnitude.
func Tics(screen, area Range) []Tic {
	if !(area.Distance() > 0) || !isFinite(area.Distance()) {
		return nil
	}
	step := math.Pow(10, math.Round(math.Log10(area.Distance())-1))
	var labels []float64
	if area.Contains(0) {
		for i := int(math.Ceil(area.Min / step)); len(labels) < maxTics; i++ {
			l := float64(i) * step
			if l >= area.Max {
				break
			}
			if l > area.Min || i == 0 {
				labels = append(labels, l)
			}
		}
	} else {
		base := math.Ceil(area.Min/step) * step
		if base+step == base {
			return nil
		}
		for k := 0; k < maxTics; k++ {
			l := base + float64(k)*step
			if l >= area.Max {
				break
			}
			labels = append(labels, l)
		}
	}

	out := make([]Tic, 0, len(labels))
	for _, l := range labels {
		pos, ok := area.Project(l, screen)
		if !ok {
			continue
		}
		out = append(out, Tic{Pos: pos, Label: l})
	}
	return out
}

// Axis is a screen line at Pos with its tics.
type Axis struct {
	Pos  float64
	Tics []Tic
}

// Plot is a graph projected onto a screen: one point per screen column.
type Plot struct {
	Points []Point
	Screen Area
	XAxis  *Axis
	YAxis  *Axis
}

// Plot projects the graph from area onto screen. A column whose value is undefined or
// outside area is reported with OK=false.
func (g *Graph) Plot(area, screen Area) *Plot {
	x0 := int(screen.X.Min)
	x1 := int(screen.X.Max)
	points := make([]Point, 0, max(x1-x0, 0))
	for w := x0; w < x1; w++ {
		p := Point{X: float64(w)}
		if x, ok := screen.X.Project(float64(w), area.X); ok {
			if y, err := g.At(x); err == nil {
				p.Y, p.OK = area.Y.Project(y, screen.Y)
			}
		}
		points = append(points, p)
	}

	out := &Plot{Points: points, Screen: screen}
	if pos, ok := area.Y.Project(0, screen.Y); ok {
		out.XAxis = &Axis{Pos: pos, Tics: Tics(screen.X, area.X)}
	}
	if pos, ok := area.X.Project(0, screen.X); ok {
		out.YAxis = &Axis{Pos: pos, Tics: Tics(screen.Y, area.Y)}
	}
	return out
}
