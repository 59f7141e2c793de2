package deform_test

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gostiff/internal/deform"
	"github.com/alexiusacademia/gostiff/internal/dof"
	"github.com/alexiusacademia/gostiff/internal/element"
	"github.com/alexiusacademia/gostiff/internal/material"
	"github.com/alexiusacademia/gostiff/internal/model"
	"github.com/alexiusacademia/gostiff/internal/section"
	"gonum.org/v1/gonum/floats/scalar"
)

func setup(t *testing.T, kind element.Kind, end model.Node) ([]model.Element, *dof.Numbering) {
	t.Helper()
	m := &model.Model{
		ElementType: kind,
		Nodes:       []model.Node{{ID: 1, X: 1, Y: 2}, end},
		Members: []model.Member{{
			ID: 1, Start: 1, End: end.ID, Material: "Acero 4130",
			Section: &section.Section{Shape: section.Square, Side: 0.05},
		}},
	}
	elements, err := m.Elements(material.Default())
	if err != nil {
		t.Fatal(err)
	}
	n, err := dof.Assign(m.Nodes, elements, kind)
	if err != nil {
		t.Fatal(err)
	}
	return elements, n
}

func TestHermite(t *testing.T) {
	const L = 2.5
	for _, s := range []float64{0, 0.2, 0.5, 0.9, 1} {
		h1, _, h3, _ := deform.Hermite(s, L)
		if !scalar.EqualWithinAbs(h1+h3, 1, 1e-15) {
			t.Errorf("s=%g: H1+H3 = %g, want 1", s, h1+h3)
		}
	}

	h1, h2, h3, h4 := deform.Hermite(0, L)
	if h1 != 1 || h2 != 0 || h3 != 0 || h4 != 0 {
		t.Errorf("s=0: %g %g %g %g", h1, h2, h3, h4)
	}
	h1, h2, h3, h4 = deform.Hermite(1, L)
	if h1 != 0 || h2 != 0 || h3 != 1 || h4 != 0 {
		t.Errorf("s=1: %g %g %g %g", h1, h2, h3, h4)
	}

	d1, d2, d3, d4 := deform.HermiteSlope(0, L)
	if d1 != 0 || d2 != 1 || d3 != 0 || d4 != 0 {
		t.Errorf("slope at s=0: %g %g %g %g", d1, d2, d3, d4)
	}
	d1, d2, d3, d4 = deform.HermiteSlope(1, L)
	if d1 != 0 || d2 != 0 || d3 != 0 || d4 != 1 {
		t.Errorf("slope at s=1: %g %g %g %g", d1, d2, d3, d4)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	tcs := []struct {
		name string
		kind element.Kind
		end  model.Node
		u    []float64
	}{
		{"bar inclined", element.BarKind, model.Node{ID: 2, X: 4, Y: 6}, []float64{0.01, -0.02, 0.03, 0.005}},
		{"beam", element.BeamKind, model.Node{ID: 2, X: 4, Y: 2}, []float64{0.01, 0.002, -0.03, 0.004}},
		{"frame inclined", element.FrameKind, model.Node{ID: 2, X: -2, Y: 6}, []float64{0.01, -0.02, 0.001, 0.03, 0.005, -0.002}},
	}

	const scale = 7.5
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			elements, n := setup(t, tc.kind, tc.end)
			line := deform.Interpolate(elements[0], n, tc.u, scale, 11)
			if line.Len() != 11 {
				t.Fatalf("points: got %d", line.Len())
			}

			for i, node := range []model.Node{elements[0].Start, elements[0].End} {
				dx, dy, _ := deform.NodeDisplacement(n, node.ID, tc.u)
				x, y := line.XY(i * (line.Len() - 1))
				if !scalar.EqualWithinAbs(x, node.X+dx*scale, 1e-12) || !scalar.EqualWithinAbs(y, node.Y+dy*scale, 1e-12) {
					t.Errorf("node %d: got (%g, %g), want (%g, %g)", node.ID, x, y, node.X+dx*scale, node.Y+dy*scale)
				}
			}
		})
	}
}

func TestInterpolateFrameSlope(t *testing.T) {
	elements, n := setup(t, element.FrameKind, model.Node{ID: 2, X: 5, Y: 2})
	u := []float64{0, 0, 0.01, 0, 0, -0.02}

	const points = 1001
	line := deform.Interpolate(elements[0], n, u, 1, points)
	h := line.X[1] - line.X[0]
	start := (line.Y[1] - line.Y[0]) / h
	end := (line.Y[points-1] - line.Y[points-2]) / h
	if !scalar.EqualWithinAbs(start, 0.01, 1e-4) {
		t.Errorf("slope at start: got %g, want 0.01", start)
	}
	if !scalar.EqualWithinAbs(end, -0.02, 1e-4) {
		t.Errorf("slope at end: got %g, want -0.02", end)
	}
}

func TestInterpolateFixedNode(t *testing.T) {
	m := &model.Model{
		ElementType: element.FrameKind,
		Nodes:       []model.Node{{ID: 1, Constraint: model.Fixed}, {ID: 2, X: 1}},
		Members:     []model.Member{{ID: 1, Start: 1, End: 2, E: 1, Section: &section.Section{Shape: section.Square, Side: 1}}},
	}
	elements, _ := m.Elements(material.Default())
	n, _ := dof.Assign(m.Nodes, elements, m.ElementType)

	u := []float64{0, 0.1, 0}
	line := deform.Interpolate(elements[0], n, u, 1, 1)
	if line.Len() != 2 {
		t.Fatalf("points should be raised to 2, got %d", line.Len())
	}
	if line.X[0] != 0 || line.Y[0] != 0 || line.Y[1] != 0.1 {
		t.Errorf("got %v %v", line.X, line.Y)
	}

	moved := deform.Displaced(m.Nodes, n, u, 2)
	if moved[0].Y != 0 || moved[1].Y != 0.2 {
		t.Errorf("displaced nodes: %+v", moved)
	}
	if lines := deform.Structure(elements, n, u, 1, 5); len(lines) != 1 || lines[0].ElementID != 1 {
		t.Errorf("structure: %+v", lines)
	}
}

func TestAutoScale(t *testing.T) {
	nodes := []model.Node{{ID: 1}, {ID: 2, X: 10, Y: 2}}
	tcs := []struct {
		name string
		u    []float64
		want float64
	}{
		{"zero", []float64{0, 1e-12}, 1},
		{"mid", []float64{0.1, -0.2}, 0.1 * 10 / 0.2},
		{"clamped high", []float64{1e-6}, 500},
		{"clamped low", []float64{0, -5}, 1},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := deform.AutoScale(nodes, tc.u); !scalar.EqualWithinAbsOrRel(got, tc.want, 1e-12, 1e-12) {
				t.Errorf("got %g, want %g", got, tc.want)
			}
		})
	}

	small := []model.Node{{ID: 1}, {ID: 2, X: 0.1}}
	if got := deform.AutoScale(small, []float64{0.01}); !scalar.EqualWithinAbs(got, 10, 1e-12) {
		t.Errorf("size below 1 m must count as 1: got %g", got)
	}
	if math.IsNaN(deform.AutoScale(nil, nil)) {
		t.Error("empty input must not produce NaN")
	}
}
