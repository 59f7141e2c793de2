package solver_test

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gostiff/internal/assembly"
	"github.com/alexiusacademia/gostiff/internal/dof"
	"github.com/alexiusacademia/gostiff/internal/element"
	"github.com/alexiusacademia/gostiff/internal/material"
	"github.com/alexiusacademia/gostiff/internal/model"
	"github.com/alexiusacademia/gostiff/internal/nscp"
	"github.com/alexiusacademia/gostiff/internal/section"
	"github.com/alexiusacademia/gostiff/internal/solver"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// system numbers, loads and assembles a model
func system(t *testing.T, m *model.Model, mass bool) (*assembly.System, *dof.Numbering) {
	t.Helper()
	elements, err := m.Elements(material.Default())
	if err != nil {
		t.Fatal(err)
	}
	n, err := dof.Assign(m.Nodes, elements, m.ElementType)
	if err != nil {
		t.Fatal(err)
	}
	n.Apply(m.Nodes, nscp.Unfactored)
	sys, err := assembly.Assemble(elements, n, assembly.Options{Mass: mass})
	if err != nil {
		t.Fatal(err)
	}
	return sys, n
}

var aluminiumBar = &section.Section{Shape: section.Custom, Area: 1e-4}

func singleBar() *model.Model {
	return &model.Model{
		ElementType: element.BarKind,
		Nodes: []model.Node{
			{ID: 1, Known: map[element.Direction]float64{element.X: 0, element.Y: 0}},
			{
				ID: 2, X: 1,
				Known:  map[element.Direction]float64{element.Y: 0},
				Forces: map[element.Direction]float64{element.X: 1000},
			},
		},
		Members: []model.Member{{ID: 1, Start: 1, End: 2, Material: "Aluminio 6061-T6", Section: aluminiumBar}},
	}
}

func TestSolveStaticBar(t *testing.T) {
	sys, n := system(t, singleBar(), false)
	records, warnings := solver.ResolveConditions(n.Records)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings %v", warnings)
	}

	res, err := solver.SolveStatic(sys.K, records)
	if err != nil {
		t.Fatal(err)
	}

	want := 1000.0 * 1 / (68.9e9 * 1e-4)
	if u := res.Displacement(n.Dof(2, element.X)); !scalar.EqualWithinAbsOrRel(u, want, 1e-15, 1e-9) {
		t.Errorf("u2x: got %g, want %g", u, want)
	}
	if !scalar.EqualWithinAbsOrRel(want, 1.4514e-4, 0, 1e-4) {
		t.Errorf("reference displacement drifted: %g", want)
	}
	if f := res.Force(n.Dof(1, element.X)); !scalar.EqualWithinAbsOrRel(f, -1000, 1e-6, 1e-9) {
		t.Errorf("reaction F1x: got %g, want -1000", f)
	}
	if f := res.Force(n.Dof(2, element.X)); f != 1000 {
		t.Errorf("applied force must be reported as given, got %g", f)
	}
	if res.Determinant != 0 {
		t.Errorf("determinant of the unrestrained bar K should be 0, got %g", res.Determinant)
	}
}

func TestSolveStaticSingular(t *testing.T) {
	m := singleBar()
	for i := range m.Nodes {
		m.Nodes[i].Known = nil
	}
	sys, n := system(t, m, false)
	records, warnings := solver.ResolveConditions(n.Records)
	if len(warnings) != 3 {
		t.Errorf("warnings: got %d, want 3", len(warnings))
	}

	_, err := solver.SolveStatic(sys.K, records)
	if !errors.Is(err, solver.ErrSingularStiffness) {
		t.Fatalf("got %v, want singular stiffness", err)
	}
	var se *solver.StaticError
	if !errors.As(err, &se) {
		t.Errorf("error should be a *StaticError: %T", err)
	}
}

func TestSolveStaticUnresolved(t *testing.T) {
	m := singleBar()
	m.Nodes[1].Forces = nil
	sys, n := system(t, m, false)

	if _, err := solver.SolveStatic(sys.K, n.Records); !errors.Is(err, solver.ErrMissingBoundaryConditions) {
		t.Fatalf("got %v, want missing boundary conditions", err)
	}
	if _, err := solver.SolveStatic(nil, nil); !errors.Is(err, solver.ErrNoFreeDofs) {
		t.Fatalf("got %v, want no free DOFs", err)
	}
}

func TestResolveConditions(t *testing.T) {
	in := []dof.Record{
		{Index: 1, ForceKnown: true, Force: 5, DisplacementKnown: true, Displacement: 0.1},
		{Index: 2},
		{Index: 3, ForceKnown: true, Force: 7},
	}
	out, warnings := solver.ResolveConditions(in)
	if len(warnings) != 2 || warnings[0].Dof != 1 || warnings[1].Dof != 2 {
		t.Fatalf("warnings: %v", warnings)
	}
	if out[0].ForceKnown || !out[0].DisplacementKnown || out[0].Displacement != 0.1 {
		t.Errorf("both-known must prefer displacement: %+v", out[0])
	}
	if !out[1].ForceKnown || out[1].Force != 0 {
		t.Errorf("neither-known must become zero force: %+v", out[1])
	}
	if out[2] != in[2] {
		t.Errorf("resolved record changed: %+v", out[2])
	}
	if !in[0].ForceKnown || in[1].ForceKnown {
		t.Error("input records modified")
	}
}

func TestSolveStaticPrescribedDisplacement(t *testing.T) {
	m := singleBar()
	m.Nodes[1].Forces = nil
	m.Nodes[1].Known[element.X] = 0.002
	sys, n := system(t, m, false)

	res, err := solver.SolveStatic(sys.K, n.Records)
	if err != nil {
		t.Fatal(err)
	}
	k := 68.9e9 * 1e-4
	if f := res.Force(n.Dof(2, element.X)); !scalar.EqualWithinAbsOrRel(f, k*0.002, 1e-6, 1e-9) {
		t.Errorf("F2x: got %g, want %g", f, k*0.002)
	}
	if f := res.Force(n.Dof(1, element.X)); !scalar.EqualWithinAbsOrRel(f, -k*0.002, 1e-6, 1e-9) {
		t.Errorf("F1x: got %g, want %g", f, -k*0.002)
	}
}

func cantilever(elements int) *model.Model {
	m := &model.Model{
		ElementType: element.FrameKind,
		Nodes:       []model.Node{{ID: 1, Constraint: model.Fixed}},
	}
	for i := 1; i <= elements; i++ {
		m.Nodes = append(m.Nodes, model.Node{ID: i + 1, X: float64(i) / float64(elements)})
		m.Members = append(m.Members, model.Member{
			ID: i, Start: i, End: i + 1, Material: "Acero 4130",
			Section: &section.Section{Shape: section.Square, Side: 0.02},
		})
	}
	return m
}

func TestSolveStaticCantilever(t *testing.T) {
	m := cantilever(2)
	m.Nodes[2].Forces = map[element.Direction]float64{element.Y: -100}
	sys, n := system(t, m, false)
	records, _ := solver.ResolveConditions(n.Records)

	res, err := solver.SolveStatic(sys.K, records)
	if err != nil {
		t.Fatal(err)
	}
	ei := 205e9 * math.Pow(0.02, 4) / 12
	want := -100.0 / (3 * ei)
	if v := res.Displacement(n.Dof(3, element.Y)); !scalar.EqualWithinAbsOrRel(v, want, 1e-12, 1e-9) {
		t.Errorf("tip deflection: got %g, want %g", v, want)
	}
	if th := res.Displacement(n.Dof(3, element.Theta)); !scalar.EqualWithinAbsOrRel(th, -100.0/(2*ei), 1e-12, 1e-9) {
		t.Errorf("tip rotation: got %g", th)
	}
	if res.Determinant <= 0 {
		t.Errorf("restrained frame K should be positive definite, det=%g", res.Determinant)
	}
}

func TestSolveDynamicBar(t *testing.T) {
	m := singleBar()
	m.Nodes[0].Constraint = model.Fixed
	m.Nodes[1].Restrained = []element.Direction{element.Y}
	sys, n := system(t, m, true)

	res, err := solver.SolveDynamic(sys.K, sys.M, n.Records)
	if err != nil {
		t.Fatal(err)
	}
	if res.NumModes() != 1 {
		t.Fatalf("modes: got %d, want 1", res.NumModes())
	}
	want := 3 * 68.9e9 / 2700
	if !scalar.EqualWithinAbsOrRel(res.Eigenvalues[0], want, 1e-9, 1e-9) {
		t.Errorf("λ: got %g, want %g", res.Eigenvalues[0], want)
	}
	if len(res.FreeDofs) != 1 || len(res.RestrainedDofs) != 1 || res.RestrainedDofs[0] != 2 {
		t.Errorf("free %v restrained %v", res.FreeDofs, res.RestrainedDofs)
	}
	full := res.ModeVector(0)
	if len(full) != 2 || math.Abs(full[0]) != 1 || full[1] != 0 {
		t.Errorf("full mode vector: %v", full)
	}
}

func TestSolveDynamicBarUnrestrained(t *testing.T) {
	tcs := []struct {
		name string
		x, y float64
	}{
		{"horizontal", 1, 0},
		{"inclined", 0.6, 0.8},
	}
	for i := range tcs {
		t.Run(tcs[i].name, func(t *testing.T) {
			m := singleBar()
			m.Nodes[0].Constraint = model.Fixed
			m.Nodes[1].X, m.Nodes[1].Y = tcs[i].x, tcs[i].y
			sys, n := system(t, m, true)

			res, err := solver.SolveDynamic(sys.K, sys.M, n.Records)
			if err != nil {
				t.Fatal(err)
			}
			if res.NumModes() != 1 {
				t.Fatalf("modes: got %d, want 1", res.NumModes())
			}
			want := 3 * 68.9e9 / 2700
			if !scalar.EqualWithinAbsOrRel(res.Eigenvalues[0], want, 1e-9, 1e-9) {
				t.Errorf("λ: got %g, want %g", res.Eigenvalues[0], want)
			}
			if len(res.FreeDofs) != 2 || len(res.RestrainedDofs) != 0 {
				t.Errorf("free %v restrained %v", res.FreeDofs, res.RestrainedDofs)
			}

			// the mode moves along the bar axis
			full := res.ModeVector(0)
			ux, uy := full[0], full[1]
			if !scalar.EqualWithinAbs(math.Max(math.Abs(ux), math.Abs(uy)), 1, 1e-9) {
				t.Errorf("mode not normalized: %v", full)
			}
			if !scalar.EqualWithinAbs(ux*tcs[i].y-uy*tcs[i].x, 0, 1e-9) {
				t.Errorf("mode %v not along the bar (%g, %g)", full, tcs[i].x, tcs[i].y)
			}
		})
	}
}

func TestSolveDynamicCantilever(t *testing.T) {
	m := cantilever(8)
	sys, n := system(t, m, true)

	res, err := solver.SolveDynamic(sys.K, sys.M, n.Records)
	if err != nil {
		t.Fatal(err)
	}

	for i, l := range res.Eigenvalues {
		if l <= solver.EigenThreshold {
			t.Errorf("mode %d: eigenvalue %g not above threshold", i, l)
		}
		if i > 0 && l <= res.Eigenvalues[i-1] {
			t.Errorf("mode %d: eigenvalues not strictly ascending", i)
		}
		if f := math.Sqrt(l) / (2 * math.Pi); !scalar.EqualWithinAbsOrRel(res.FrequenciesHz[i], f, 1e-12, 1e-12) {
			t.Errorf("mode %d: f=%g, want %g", i, res.FrequenciesHz[i], f)
		}
		col := mat.Col(nil, i, res.Modes)
		peak := 0.0
		for _, v := range col {
			peak = math.Max(peak, math.Abs(v))
		}
		if !scalar.EqualWithinAbs(peak, 1, 1e-12) {
			t.Errorf("mode %d: max |φ| = %g", i, peak)
		}
	}

	// First bending mode of a clamped-free beam: ω = 1.8751² √(EI/(ρA L⁴))
	a, i := 0.02*0.02, math.Pow(0.02, 4)/12
	omega := 1.87510407 * 1.87510407 * math.Sqrt(205e9*i/(7850*a))
	if !scalar.EqualWithinRel(res.FrequenciesRad[0], omega, 1e-3) {
		t.Errorf("ω1: got %g, want %g", res.FrequenciesRad[0], omega)
	}

	again, err := solver.SolveDynamic(sys.K, sys.M, n.Records)
	if err != nil {
		t.Fatal(err)
	}
	if !floatsEqual(res.Eigenvalues, again.Eigenvalues) || !mat.Equal(res.Modes, again.Modes) {
		t.Error("repeated solve is not identical")
	}
}

func TestSolveDynamicErrors(t *testing.T) {
	m := cantilever(1)
	m.Nodes[1].Restrained = []element.Direction{element.X, element.Y, element.Theta}
	sys, n := system(t, m, true)
	if _, err := solver.SolveDynamic(sys.K, sys.M, n.Records); !errors.Is(err, solver.ErrNoFreeDofs) {
		t.Errorf("all restrained: got %v", err)
	}

	m = cantilever(1)
	m.Members[0].Material = ""
	m.Members[0].E = 205e9
	sys, n = system(t, m, true)
	if _, err := solver.SolveDynamic(sys.K, sys.M, n.Records); !errors.Is(err, solver.ErrNoValidModes) {
		t.Errorf("zero density: got %v", err)
	}

	var de *solver.DynamicError
	_, err := solver.SolveDynamic(nil, nil, nil)
	if !errors.As(err, &de) || !errors.Is(err, solver.ErrNoFreeDofs) {
		t.Errorf("empty system: got %v", err)
	}
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
