package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gostiff/internal/section"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	originalColor = color.Gray{Y: 128}
	deformedColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	nodeColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// ExportStructure exports the original and deflected structure to an image
// file. The format follows the extension (.png, .svg, .pdf); anything else
// gets .png appended.
func ExportStructure(data StructureDiagramData, filename string) error {
	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = "Structure"
	}
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	p.Add(plotter.NewGrid())

	for i, s := range data.Original {
		l, err := plotter.NewLine(plotter.XYs{{X: s.X1, Y: s.Y1}, {X: s.X2, Y: s.Y2}})
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = originalColor
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(l)
		if i == 0 {
			p.Legend.Add("Undeformed", l)
		}
	}

	for i, curve := range data.Deformed {
		if curve.Len() < 2 {
			continue
		}
		l, err := plotter.NewLine(curve)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Color = deformedColor
		p.Add(l)
		if i == 0 {
			p.Legend.Add(fmt.Sprintf("Deformed (×%.1f)", data.Scale), l)
		}
	}

	if len(data.Nodes) > 0 {
		pts := make(plotter.XYs, len(data.Nodes))
		texts := make([]string, len(data.Nodes))
		for i, n := range data.Nodes {
			pts[i] = plotter.XY{X: n.X, Y: n.Y}
			texts[i] = n.Text
		}
		nodes, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		nodes.GlyphStyle.Color = nodeColor
		nodes.GlyphStyle.Radius = vg.Points(4)
		nodes.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(nodes)

		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: texts})
		if err != nil {
			return err
		}
		labels.Offset = vg.Point{X: vg.Points(6), Y: vg.Points(6)}
		p.Add(labels)
	}

	minX, maxX, minY, maxY := data.bounds()
	padX, padY := 0.1*(maxX-minX), 0.1*(maxY-minY)
	p.X.Min, p.X.Max = minX-padX, maxX+padX
	p.Y.Min, p.Y.Max = minY-padY, maxY+padY

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ExportSection exports the outline of a cross-section with its
// centroidal axis
func ExportSection(sec section.Section, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Section (%s)", sec.Shape)
	p.X.Label.Text = "Width (m)"
	p.Y.Label.Text = "Height (m)"

	outlines := sectionOutlines(sec)
	if len(outlines) == 0 {
		return fmt.Errorf("section %q has no drawable outline", sec.Shape)
	}
	for i, pts := range outlines {
		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return err
		}
		if i == 0 {
			poly.Color = color.RGBA{R: 100, G: 149, B: 237, A: 150}
		} else {
			poly.Color = color.White
		}
		poly.LineStyle.Color = deformedColor
		p.Add(poly)
	}

	props := sec.CalculateProperties()
	axis, err := plotter.NewLine(plotter.XYs{
		{X: props.MinX - 0.1*(props.MaxX-props.MinX), Y: props.CentroidY},
		{X: props.MaxX + 0.1*(props.MaxX-props.MinX), Y: props.CentroidY},
	})
	if err != nil {
		return err
	}
	axis.LineStyle.Width = vg.Points(1.5)
	axis.LineStyle.Color = nodeColor
	axis.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(axis)

	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: props.MaxX, Y: props.CentroidY}},
		Labels: []string{fmt.Sprintf("A=%.4g m²  I=%.4g m⁴", props.Area, props.Inertia)},
	})
	if err != nil {
		return err
	}
	p.Add(l)

	return save(p, 6*vg.Inch, 6*vg.Inch, filename)
}

// sectionOutlines returns the outer outline first and any hole after it
func sectionOutlines(sec section.Section) []plotter.XYs {
	circle := func(r float64) plotter.XYs {
		const n = 48
		pts := make(plotter.XYs, n)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / n
			pts[i] = plotter.XY{X: r * math.Cos(a), Y: r * math.Sin(a)}
		}
		return pts
	}
	rect := func(b, h float64) plotter.XYs {
		return plotter.XYs{{X: -b / 2, Y: -h / 2}, {X: b / 2, Y: -h / 2}, {X: b / 2, Y: h / 2}, {X: -b / 2, Y: h / 2}}
	}

	switch sec.Shape {
	case section.SolidCircle:
		if sec.Radius > 0 {
			return []plotter.XYs{circle(sec.Radius)}
		}
	case section.HollowCircle:
		if sec.OuterRadius > 0 {
			out := []plotter.XYs{circle(sec.OuterRadius)}
			if sec.InnerRadius > 0 && sec.InnerRadius < sec.OuterRadius {
				out = append(out, circle(sec.InnerRadius))
			}
			return out
		}
	case section.Rectangle:
		if sec.Base > 0 && sec.Height > 0 {
			return []plotter.XYs{rect(sec.Base, sec.Height)}
		}
	case section.Square:
		if sec.Side > 0 {
			return []plotter.XYs{rect(sec.Side, sec.Side)}
		}
	case section.Polygon:
		if len(sec.Vertices) >= 3 {
			pts := make(plotter.XYs, len(sec.Vertices))
			for i, v := range sec.Vertices {
				pts[i] = plotter.XY{X: v.X, Y: v.Y}
			}
			return []plotter.XYs{pts}
		}
	}
	return nil
}

// save writes the plot, creating the parent directory if needed
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
