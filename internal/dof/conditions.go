package dof

import (
	"github.com/alexiusacademia/gostiff/internal/model"
	"github.com/alexiusacademia/gostiff/internal/nscp"
)

// Apply copies the boundary data of the nodes onto the DOF records.
// Prescribed displacements mark a DOF displacement-known; direct forces
// and the combined load cases mark it force-known. No conflict
// resolution happens here: a DOF may end up with both flags or neither.
func (n *Numbering) Apply(nodes []model.Node, combo nscp.LoadCombination) {
	byID := make(map[int]model.Node, len(nodes))
	for _, node := range nodes {
		byID[node.ID] = node
	}

	for i := range n.Records {
		r := &n.Records[i]
		node, ok := byID[r.Node]
		if !ok {
			continue
		}

		r.DisplacementKnown, r.Displacement = false, 0
		if v, ok := node.Known[r.Direction]; ok {
			r.DisplacementKnown, r.Displacement = true, v
		}

		r.ForceKnown, r.Force = false, 0
		if v, ok := node.Forces[r.Direction]; ok {
			r.ForceKnown, r.Force = true, v
		}
		cases := make(map[nscp.LoadType]float64)
		for _, l := range node.Loads {
			if l.Direction == r.Direction {
				cases[l.Type] += l.Value
			}
		}
		if len(cases) > 0 {
			r.ForceKnown = true
			r.Force += combo.Combine(cases)
		}

		r.Restrained = false
		for _, d := range node.Restrained {
			if d == r.Direction {
				r.Restrained = true
			}
		}
	}
}

// Restrained returns the modal restraint flags keyed by global DOF number
func (n *Numbering) Restrained() map[int]bool {
	flags := make(map[int]bool, len(n.Records))
	for _, r := range n.Records {
		flags[r.Index] = r.Restrained
	}
	return flags
}
