// Command mkplot renders one plot to a PNG file without opening a window.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"linecalc/calc"
	"linecalc/hal"
	"linecalc/ui"
	"linecalc/ui/plotview"
)

type stmtList []string

func (l *stmtList) String() string { return strings.Join(*l, "; ") }

func (l *stmtList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func main() {
	var defs stmtList
	var (
		name    = flag.String("f", "", "Function to plot.")
		outPath = flag.String("out", "plot.png", "Output PNG file.")
		width   = flag.Int("width", hal.DefaultWidth, "Image width in pixels.")
		height  = flag.Int("height", hal.DefaultHeight, "Image height in pixels.")
		xmin    = flag.Float64("xmin", plotview.DefaultArea.X.Min, "Left edge of the plot area.")
		xmax    = flag.Float64("xmax", plotview.DefaultArea.X.Max, "Right edge of the plot area.")
		ymin    = flag.Float64("ymin", plotview.DefaultArea.Y.Min, "Bottom edge of the plot area.")
		ymax    = flag.Float64("ymax", plotview.DefaultArea.Y.Max, "Top edge of the plot area.")
	)
	flag.Var(&defs, "def", "Statement to run before plotting; repeatable.")
	flag.Parse()

	if *name == "" {
		fatalf("usage: mkplot -def 'f(x) := x * x' -f f [-out plot.png] [-xmin -10 -xmax 10 -ymin -10 -ymax 10]")
	}
	area, err := calc.NewArea(*xmin, *ymin, *xmax, *ymax)
	if err != nil {
		fatalf("area: %v", err)
	}
	img, err := render(defs, *name, area, *width, *height)
	if err != nil {
		fatalf("render: %v", err)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fatalf("create %q: %v", *outPath, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		fatalf("encode %q: %v", *outPath, err)
	}
	if err := f.Close(); err != nil {
		fatalf("close %q: %v", *outPath, err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// render runs defs, plots name over area and returns the framebuffer as an image.
func render(defs []string, name string, area calc.Area, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || width > 4096 || height > 4096 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	c := calc.New()
	for _, d := range defs {
		if _, err := c.Execute(d); err != nil {
			return nil, fmt.Errorf("%q: %w", d, err)
		}
	}
	gr, err := c.Graph(name)
	if err != nil {
		return nil, err
	}

	fb := hal.NewFramebuffer(width, height)
	v := plotview.New(ui.NewDisplay(fb))
	v.SetGraph(gr)
	v.SetArea(area)
	v.Render()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := hal.PixelAt(fb, x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}
	return img, nil
}
