package app

import "linecalc/calc"

// Chart renders g over area as text, top row first: '*' for points, '-' and '|'
// for the axes and '+' where they cross.
func Chart(g *calc.Graph, area calc.Area, width, height int) []string {
	if g == nil || width <= 0 || height <= 0 {
		return nil
	}
	screen := calc.Area{
		X: calc.Range{Min: 0, Max: float64(width)},
		Y: calc.Range{Min: 0, Max: float64(height)},
	}
	p := g.Plot(area, screen)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}
	put := func(col int, pos float64, r rune) {
		row := height - 1 - int(pos)
		if row < 0 || row >= height || col < 0 || col >= width {
			return
		}
		grid[row][col] = r
	}

	if p.XAxis != nil {
		for x := 0; x < width; x++ {
			put(x, p.XAxis.Pos, '-')
		}
	}
	if p.YAxis != nil {
		col := int(p.YAxis.Pos)
		for y := 0; y < height; y++ {
			put(col, float64(y), '|')
		}
		if p.XAxis != nil {
			put(col, p.XAxis.Pos, '+')
		}
	}
	for _, pt := range p.Points {
		if pt.OK {
			put(int(pt.X), pt.Y, '*')
		}
	}

	out := make([]string, height)
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}
