package model_test

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gostiff/internal/element"
	"github.com/alexiusacademia/gostiff/internal/material"
	"github.com/alexiusacademia/gostiff/internal/model"
	"github.com/alexiusacademia/gostiff/internal/section"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestGeometry(t *testing.T) {
	a := model.Node{ID: 1, X: 1, Y: 1}
	b := model.Node{ID: 2, X: 4, Y: 5}

	if l := model.Length(a, b); l != 5 {
		t.Errorf("length: got %g, want 5", l)
	}
	if beta := model.Orientation(a, b); !scalar.EqualWithinAbs(beta, math.Atan2(4, 3), 1e-15) {
		t.Errorf("orientation: got %g", beta)
	}
	if beta := model.Orientation(b, a); beta > 0 {
		t.Errorf("reversed orientation should be negative, got %g", beta)
	}

	minX, maxX, minY, maxY := model.Bounds([]model.Node{a, b, {X: -2, Y: 3}})
	if minX != -2 || maxX != 4 || minY != 1 || maxY != 5 {
		t.Errorf("bounds: got %g %g %g %g", minX, maxX, minY, maxY)
	}
}

func TestValidate(t *testing.T) {
	base := func() model.Model {
		return model.Model{
			ElementType: element.BarKind,
			Nodes:       []model.Node{{ID: 1}, {ID: 2, X: 1}},
			Members:     []model.Member{{ID: 1, Start: 1, End: 2}},
		}
	}

	tcs := []struct {
		name   string
		modify func(m *model.Model)
		errMsg string
	}{
		{"valid", func(m *model.Model) {}, ""},
		{"element type", func(m *model.Model) { m.ElementType = "truss" }, "unknown element type"},
		{"no nodes", func(m *model.Model) { m.Nodes = nil }, "at least one node"},
		{"duplicate node", func(m *model.Model) { m.Nodes[1].ID = 1 }, "duplicate node"},
		{"constraint", func(m *model.Model) { m.Nodes[0].Constraint = "pinned" }, "unknown constraint"},
		{"missing node", func(m *model.Model) { m.Members[0].End = 9 }, "end node 9 not found"},
		{"coincident", func(m *model.Model) { m.Nodes[1].X = 0 }, "coincide"},
		{"theta on bar", func(m *model.Model) {
			m.Nodes[0].Known = map[element.Direction]float64{element.Theta: 0}
		}, "not a bar DOF"},
		{"load type", func(m *model.Model) {
			m.Nodes[1].Loads = []model.Load{{Type: "snow", Direction: element.X, Value: 1}}
		}, "unknown load type"},
		{"group member", func(m *model.Model) {
			m.Groups = []model.Group{{Name: "g", Members: []int{5}}}
		}, "member 5 not found"},
		{"member group", func(m *model.Model) { m.Members[0].Group = "g" }, `group "g" not found`},
		{"combination", func(m *model.Model) { m.Combination = "99" }, "99"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			m := base()
			tc.modify(&m)
			err := m.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Fatalf("got %v, want error containing %q", err, tc.errMsg)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	m, err := model.LoadFromFile(filepath.Join("testdata", "cantilever.json"))
	if err != nil {
		t.Fatal(err)
	}
	if m.ElementType != element.FrameKind || len(m.Nodes) != 3 || len(m.Members) != 2 {
		t.Fatalf("unexpected model: %+v", m)
	}
	if m.Nodes[2].Forces[element.Y] != -1000 {
		t.Errorf("forces not decoded: %v", m.Nodes[2].Forces)
	}

	elements, err := m.Elements(material.Default())
	if err != nil {
		t.Fatal(err)
	}
	steel := material.Default()["Acero 4130"]

	first, second := elements[0], elements[1]
	if first.Properties().E != steel.E {
		t.Errorf("group material E: got %g, want %g", first.Properties().E, steel.E)
	}
	if second.Properties().E != 70e9 {
		t.Errorf("member override E: got %g", second.Properties().E)
	}
	if second.Properties().Density != steel.Density {
		t.Errorf("density from group material: got %g", second.Properties().Density)
	}
	if !scalar.EqualWithinAbsOrRel(first.Properties().A, 0.02, 1e-15, 1e-12) {
		t.Errorf("area: got %g", first.Properties().A)
	}
	if !scalar.EqualWithinAbsOrRel(first.Properties().I, 0.1*0.008/12, 1e-15, 1e-12) {
		t.Errorf("inertia: got %g", first.Properties().I)
	}
	if first.Length != 1 || first.Beta != 0 {
		t.Errorf("geometry: L=%g beta=%g", first.Length, first.Beta)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := model.LoadFromFile(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	_, err := model.Decode(strings.NewReader(`{"element_type": "bar", "nodes": []}`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	_, err = model.Decode(strings.NewReader(`{`))
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestElementsBarDropsInertia(t *testing.T) {
	m := model.Model{
		ElementType: element.BarKind,
		Nodes:       []model.Node{{ID: 1}, {ID: 2, X: 3, Y: 4}},
		Members: []model.Member{{
			ID: 1, Start: 1, End: 2, E: 200e9,
			Section: &section.Section{Shape: section.Square, Side: 0.1},
		}},
		Materials: []model.MaterialDef{{Name: "Custom", E: 1, Density: 1}},
	}
	elements, err := m.Elements(material.Default())
	if err != nil {
		t.Fatal(err)
	}
	p := elements[0].Properties()
	if p.I != 0 || p.E != 200e9 || p.Density != 0 {
		t.Errorf("unexpected properties %+v", p)
	}
	if elements[0].Length != 5 {
		t.Errorf("length: got %g", elements[0].Length)
	}

	m.Members[0].Material = "Unobtainium"
	if _, err := m.Elements(material.Default()); err == nil {
		t.Error("expected unknown material error")
	}
	if _, ok := m.Library(material.Default())["Custom"]; !ok {
		t.Error("model material not added to library")
	}
}
