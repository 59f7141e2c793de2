package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gostiff/internal/deform"
	"github.com/guptarohit/asciigraph"
)

// Segment is a straight line between two points
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Label marks a point with text
type Label struct {
	X, Y float64
	Text string
}

// StructureDiagramData holds what is drawn for a structure: the undeformed
// members, the deflected curves and node labels
type StructureDiagramData struct {
	Title    string
	Original []Segment
	Deformed []deform.Polyline
	Nodes    []Label
	Scale    float64
}

// bounds returns the drawing extents, padded so that degenerate
// directions still have a size
func (d StructureDiagramData) bounds() (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	add := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, s := range d.Original {
		add(s.X1, s.Y1)
		add(s.X2, s.Y2)
	}
	for _, p := range d.Deformed {
		for i := range p.X {
			add(p.X[i], p.Y[i])
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 1, 0, 1
	}
	if maxX-minX < 1e-9 {
		minX, maxX = minX-0.5, maxX+0.5
	}
	if maxY-minY < 1e-9 {
		minY, maxY = minY-0.5, maxY+0.5
	}
	return minX, maxX, minY, maxY
}

// DrawASCIIStructure rasterizes the structure on a character grid.
// Undeformed members are drawn with '·', deflected curves with '█' and
// nodes with their label's first rune.
func DrawASCIIStructure(data StructureDiagramData) string {
	const widthChars, heightChars = 60, 20

	grid := make([][]rune, heightChars+1)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", widthChars+1))
	}

	minX, maxX, minY, maxY := data.bounds()
	// keep aspect ratio: a character cell is about twice as tall as wide
	sx := float64(widthChars) / (maxX - minX)
	sy := float64(heightChars) / (maxY - minY)
	if sy*2 > sx {
		sy = sx / 2
	} else {
		sx = sy * 2
	}
	cell := func(x, y float64) (int, int) {
		col := int(math.Round((x - minX) * sx))
		row := heightChars - int(math.Round((y-minY)*sy))
		return col, row
	}
	plot := func(x, y float64, r rune) {
		col, row := cell(x, y)
		if row >= 0 && row <= heightChars && col >= 0 && col <= widthChars {
			grid[row][col] = r
		}
	}
	line := func(x1, y1, x2, y2 float64, r rune) {
		c1, r1 := cell(x1, y1)
		c2, r2 := cell(x2, y2)
		steps := max(abs(c2-c1), abs(r2-r1), 1)
		for i := 0; i <= steps; i++ {
			f := float64(i) / float64(steps)
			plot(x1+(x2-x1)*f, y1+(y2-y1)*f, r)
		}
	}

	for _, s := range data.Original {
		line(s.X1, s.Y1, s.X2, s.Y2, '·')
	}
	for _, p := range data.Deformed {
		for i := 1; i < p.Len(); i++ {
			line(p.X[i-1], p.Y[i-1], p.X[i], p.Y[i], '█')
		}
	}
	for _, n := range data.Nodes {
		r := []rune(n.Text)
		if len(r) > 0 {
			plot(n.X, n.Y, r[0])
		}
	}

	var sb strings.Builder
	sb.WriteString("\n")
	if data.Title != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(data.Title)))
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("─", len([]rune(data.Title)))))
	}
	for _, row := range grid {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n  Legend:\n")
	sb.WriteString("  ··· = Undeformed\n")
	if len(data.Deformed) > 0 {
		sb.WriteString(fmt.Sprintf("  ███ = Deformed (scale ×%.1f)\n", data.Scale))
	}
	return sb.String()
}

// DrawCurveChart plots one or more series as a terminal line chart
func DrawCurveChart(caption string, series ...[]float64) string {
	var data [][]float64
	for _, s := range series {
		if len(s) > 0 {
			data = append(data, s)
		}
	}
	if len(data) == 0 {
		return ""
	}
	opts := []asciigraph.Option{
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
	}
	if len(data) == 1 {
		return asciigraph.Plot(data[0], opts...) + "\n"
	}
	return asciigraph.PlotMany(data, opts...) + "\n"
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; %-*s counts bytes, which breaks on ω or θ
func pad(s string, n int) string {
	if k := len([]rune(s)); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
