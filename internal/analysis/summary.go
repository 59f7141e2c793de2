package analysis

import (
	"github.com/alexiusacademia/gostiff/internal/dof"
	"github.com/alexiusacademia/gostiff/internal/element"
)

// DofValue is one entry of a result vector
type DofValue struct {
	Dof       int               `json:"dof"`
	Node      int               `json:"node"`
	Direction element.Direction `json:"direction"`
	Value     float64           `json:"value"`
	Known     bool              `json:"known,omitempty"` // value was prescribed, not solved
}

// Curve is an interpolated element curve
type Curve struct {
	Element int       `json:"element"`
	X       []float64 `json:"x"`
	Y       []float64 `json:"y"`
}

// Skipped is an element left out of the assembly
type Skipped = dof.DofMismatchError

// skipped lists the mismatches collected in issues
func skipped(issues error) []Skipped {
	var out []Skipped
	for _, m := range dof.Mismatches(issues) {
		out = append(out, *m)
	}
	return out
}

// StaticSummary is the serializable form of a StaticReport
type StaticSummary struct {
	Name          string     `json:"name,omitempty"`
	ElementType   string     `json:"element_type"`
	Combination   string     `json:"combination"`
	Dofs          int        `json:"dofs"`
	Determinant   float64    `json:"determinant"`
	Displacements []DofValue `json:"displacements"`
	Forces        []DofValue `json:"forces"`
	Warnings      []string   `json:"warnings,omitempty"`
	Issues        string     `json:"issues,omitempty"`
	Skipped       []Skipped  `json:"skipped,omitempty"`
	Scale         float64    `json:"scale"`
	Curves        []Curve    `json:"curves,omitempty"`
}

// Mode is one vibration mode of a ModalSummary
type Mode struct {
	Number     int        `json:"number"` // 1-based
	Eigenvalue float64    `json:"eigenvalue"`
	Omega      float64    `json:"omega"`
	Frequency  float64    `json:"frequency"`
	Period     float64    `json:"period"`
	Shape      []DofValue `json:"shape"`
	Scale      float64    `json:"scale,omitempty"`
	Curves     []Curve    `json:"curves,omitempty"`
}

// ModalSummary is the serializable form of a ModalReport
type ModalSummary struct {
	Name           string    `json:"name,omitempty"`
	ElementType    string    `json:"element_type"`
	Dofs           int       `json:"dofs"`
	FreeDofs       []int     `json:"free_dofs"`
	RestrainedDofs []int     `json:"restrained_dofs"`
	Modes          []Mode    `json:"modes"`
	Issues         string    `json:"issues,omitempty"`
	Skipped        []Skipped `json:"skipped,omitempty"`
}

// Summary flattens the report
func (r *StaticReport) Summary() StaticSummary {
	s := StaticSummary{
		Name:        r.Model.Name,
		ElementType: string(r.Model.ElementType),
		Combination: r.Combination.Description,
		Dofs:        r.Numbering.Count(),
		Determinant: r.Result.Determinant,
		Scale:       r.Scale,
	}
	for _, rec := range r.Numbering.Records {
		s.Displacements = append(s.Displacements, DofValue{
			Dof: rec.Index, Node: rec.Node, Direction: rec.Direction,
			Value: r.Result.Displacement(rec.Index), Known: rec.DisplacementKnown,
		})
		s.Forces = append(s.Forces, DofValue{
			Dof: rec.Index, Node: rec.Node, Direction: rec.Direction,
			Value: r.Result.Force(rec.Index), Known: rec.ForceKnown,
		})
	}
	for _, w := range r.Result.Warnings {
		s.Warnings = append(s.Warnings, w.String())
	}
	if r.Issues != nil {
		s.Issues = r.Issues.Error()
		s.Skipped = skipped(r.Issues)
	}
	for _, c := range r.Curves {
		s.Curves = append(s.Curves, Curve{Element: c.ElementID, X: c.X, Y: c.Y})
	}
	return s
}

// Summary flattens the report
func (r *ModalReport) Summary() ModalSummary {
	s := ModalSummary{
		Name:           r.Model.Name,
		ElementType:    string(r.Model.ElementType),
		Dofs:           r.Numbering.Count(),
		FreeDofs:       r.Result.FreeDofs,
		RestrainedDofs: r.Result.RestrainedDofs,
	}
	for i := 0; i < r.Result.NumModes(); i++ {
		mode := Mode{
			Number:     i + 1,
			Eigenvalue: r.Result.Eigenvalues[i],
			Omega:      r.Result.FrequenciesRad[i],
			Frequency:  r.Result.FrequenciesHz[i],
			Period:     1 / r.Result.FrequenciesHz[i],
		}
		v := r.Result.ModeVector(i)
		for _, rec := range r.Numbering.Records {
			mode.Shape = append(mode.Shape, DofValue{
				Dof: rec.Index, Node: rec.Node, Direction: rec.Direction,
				Value: v[rec.Index-1], Known: rec.Restrained,
			})
		}
		if i < len(r.Shapes) {
			mode.Scale = r.Shapes[i].Scale
			for _, c := range r.Shapes[i].Curves {
				mode.Curves = append(mode.Curves, Curve{Element: c.ElementID, X: c.X, Y: c.Y})
			}
		}
		s.Modes = append(s.Modes, mode)
	}
	if r.Issues != nil {
		s.Issues = r.Issues.Error()
		s.Skipped = skipped(r.Issues)
	}
	return s
}
