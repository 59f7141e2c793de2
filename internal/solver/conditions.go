package solver

import (
	"fmt"

	"github.com/alexiusacademia/gostiff/internal/dof"
	"github.com/alexiusacademia/gostiff/internal/element"
)

// Warning reports a boundary condition that was resolved by a default
type Warning struct {
	Dof       int
	Node      int
	Direction element.Direction
	Message   string
}

func (w Warning) String() string {
	return fmt.Sprintf("DOF %d (node %d, %s): %s", w.Dof, w.Node, w.Direction.Label(), w.Message)
}

// ResolveConditions makes every record either force-known or
// displacement-known. A DOF with both set keeps its prescribed
// displacement; a DOF with neither set gets a zero applied force. Each
// resolution is reported. The input slice is not modified.
func ResolveConditions(records []dof.Record) ([]dof.Record, []Warning) {
	out := append([]dof.Record(nil), records...)
	var warnings []Warning
	for i := range out {
		r := &out[i]
		switch {
		case r.ForceKnown && r.DisplacementKnown:
			warnings = append(warnings, Warning{
				Dof: r.Index, Node: r.Node, Direction: r.Direction,
				Message: fmt.Sprintf("both force and displacement given; using displacement %g", r.Displacement),
			})
			r.ForceKnown, r.Force = false, 0
		case !r.ForceKnown && !r.DisplacementKnown:
			warnings = append(warnings, Warning{
				Dof: r.Index, Node: r.Node, Direction: r.Direction,
				Message: "no condition given; assuming zero applied force",
			})
			r.ForceKnown, r.Force = true, 0
		}
	}
	return out, warnings
}
