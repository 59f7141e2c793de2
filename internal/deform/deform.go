// Package deform rebuilds continuous deflected shapes of elements from
// nodal displacements, for plotting static results and mode shapes.
package deform

import (
	"math"

	"github.com/alexiusacademia/gostiff/internal/dof"
	"github.com/alexiusacademia/gostiff/internal/element"
	"github.com/alexiusacademia/gostiff/internal/model"
	"gonum.org/v1/gonum/mat"
)

// DefaultPoints is the number of samples per element
const DefaultPoints = 20

// Polyline is a sampled curve in global coordinates
type Polyline struct {
	ElementID int
	X         []float64
	Y         []float64
}

// Len returns the number of points
func (p Polyline) Len() int { return len(p.X) }

// XY returns point i; it lets a Polyline be used as a plotter.XYer
func (p Polyline) XY(i int) (float64, float64) { return p.X[i], p.Y[i] }

// Hermite returns the cubic shape functions at s = x/L
func Hermite(s, L float64) (h1, h2, h3, h4 float64) {
	s2, s3 := s*s, s*s*s
	h1 = 2*s3 - 3*s2 + 1
	h2 = (s3 - 2*s2 + s) * L
	h3 = -2*s3 + 3*s2
	h4 = (s3 - s2) * L
	return
}

// HermiteSlope returns the derivatives of the shape functions with
// respect to x (not s)
func HermiteSlope(s, L float64) (d1, d2, d3, d4 float64) {
	s2 := s * s
	d1 = (6*s2 - 6*s) / L
	d2 = 3*s2 - 4*s + 1
	d3 = (-6*s2 + 6*s) / L
	d4 = 3*s2 - 2*s
	return
}

// NodeDisplacement returns the global (Δx, Δy, Δθ) of a node from a
// full-length displacement vector. Directions the element type lacks and
// fixed nodes read as zero.
func NodeDisplacement(n *dof.Numbering, node int, u []float64) (dx, dy, dt float64) {
	get := func(d element.Direction) float64 {
		if g := n.Dof(node, d); g > 0 && g <= len(u) {
			return u[g-1]
		}
		return 0
	}
	return get(element.X), get(element.Y), get(element.Theta)
}

// Interpolate samples the deflected shape of one element. Displacements
// and rotations are multiplied by scale; points below 2 are raised to 2.
func Interpolate(el model.Element, n *dof.Numbering, u []float64, scale float64, points int) Polyline {
	if points < 2 {
		points = 2
	}
	x1, y1 := el.Start.X, el.Start.Y
	dx1, dy1, t1 := NodeDisplacement(n, el.Start.ID, u)
	dx2, dy2, t2 := NodeDisplacement(n, el.End.ID, u)

	line := Polyline{ElementID: el.ID, X: make([]float64, points), Y: make([]float64, points)}
	L := el.Length
	c, s := math.Cos(el.Beta), math.Sin(el.Beta)

	switch el.Kind() {
	case element.BarKind:
		ax, ay := x1+dx1*scale, y1+dy1*scale
		bx, by := el.End.X+dx2*scale, el.End.Y+dy2*scale
		for i := 0; i < points; i++ {
			f := float64(i) / float64(points-1)
			line.X[i] = ax + (bx-ax)*f
			line.Y[i] = ay + (by-ay)*f
		}

	case element.BeamKind:
		// Beam DOFs are global transverse displacement and rotation
		for i := 0; i < points; i++ {
			f := float64(i) / float64(points-1)
			h1, h2, h3, h4 := Hermite(f, L)
			v := (h1*dy1 + h2*t1 + h3*dy2 + h4*t2) * scale
			line.X[i] = x1 + f*L*c
			line.Y[i] = y1 + f*L*s + v
		}

	default:
		g := mat.NewVecDense(6, []float64{dx1, dy1, t1, dx2, dy2, t2})
		var d mat.VecDense
		d.MulVec(el.Transformation(el.Beta), g)
		d.ScaleVec(scale, &d)
		for i := 0; i < points; i++ {
			f := float64(i) / float64(points-1)
			h1, h2, h3, h4 := Hermite(f, L)
			axial := d.AtVec(0)*(1-f) + d.AtVec(3)*f
			v := h1*d.AtVec(1) + h2*d.AtVec(2) + h3*d.AtVec(4) + h4*d.AtVec(5)
			xl := f*L + axial
			line.X[i] = x1 + xl*c - v*s
			line.Y[i] = y1 + xl*s + v*c
		}
	}
	return line
}

// Structure interpolates every element
func Structure(elements []model.Element, n *dof.Numbering, u []float64, scale float64, points int) []Polyline {
	lines := make([]Polyline, 0, len(elements))
	for _, el := range elements {
		lines = append(lines, Interpolate(el, n, u, scale, points))
	}
	return lines
}

// Displaced returns the nodes moved by scale·u
func Displaced(nodes []model.Node, n *dof.Numbering, u []float64, scale float64) []model.Node {
	out := make([]model.Node, len(nodes))
	for i, node := range nodes {
		dx, dy, _ := NodeDisplacement(n, node.ID, u)
		out[i] = node
		out[i].X += dx * scale
		out[i].Y += dy * scale
	}
	return out
}

// AutoScale picks a plotting scale so that the largest displacement spans
// a tenth of the structure's size. The result is clamped to [1, 500], and
// is 1 for a vanishing vector.
func AutoScale(nodes []model.Node, u []float64) float64 {
	peak := 0.0
	for _, v := range u {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak <= 1e-9 {
		return 1
	}
	minX, maxX, minY, maxY := model.Bounds(nodes)
	size := math.Max(math.Max(maxX-minX, maxY-minY), 1)
	return math.Min(math.Max(0.1*size/peak, 1), 500)
}
