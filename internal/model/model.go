// Package model holds the user-facing structural model: nodes, members,
// groups and boundary data, and resolves it into analysis elements.
package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/alexiusacademia/gostiff/internal/element"
	"github.com/alexiusacademia/gostiff/internal/material"
	"github.com/alexiusacademia/gostiff/internal/nscp"
	"github.com/alexiusacademia/gostiff/internal/section"
)

// LoadFromFile loads a model definition from a JSON file
func LoadFromFile(filepath string) (*Model, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads and validates a JSON model
func Decode(r io.Reader) (*Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the topology and the boundary data of the model.
// Section and material values are not checked here: partially configured
// members are accepted and simply contribute zero stiffness.
func (m *Model) Validate() error {
	if !m.ElementType.Valid() {
		return &ValidationError{msg: fmt.Sprintf("unknown element type %q", m.ElementType)}
	}
	if len(m.Nodes) == 0 {
		return &ValidationError{"model must have at least one node"}
	}

	nodes := make(map[int]Node, len(m.Nodes))
	for _, n := range m.Nodes {
		if n.ID <= 0 {
			return &ValidationError{msg: fmt.Sprintf("node id %d must be positive", n.ID)}
		}
		if _, dup := nodes[n.ID]; dup {
			return &ValidationError{msg: fmt.Sprintf("duplicate node id %d", n.ID)}
		}
		switch n.Constraint {
		case "", Free, Fixed:
		default:
			return &ValidationError{msg: fmt.Sprintf("node %d: unknown constraint %q", n.ID, n.Constraint)}
		}
		if err := m.validateDirections(n); err != nil {
			return err
		}
		nodes[n.ID] = n
	}

	members := make(map[int]bool, len(m.Members))
	for _, mb := range m.Members {
		if members[mb.ID] {
			return &ValidationError{msg: fmt.Sprintf("duplicate member id %d", mb.ID)}
		}
		members[mb.ID] = true

		a, ok := nodes[mb.Start]
		if !ok {
			return &ValidationError{msg: fmt.Sprintf("member %d: start node %d not found", mb.ID, mb.Start)}
		}
		b, ok := nodes[mb.End]
		if !ok {
			return &ValidationError{msg: fmt.Sprintf("member %d: end node %d not found", mb.ID, mb.End)}
		}
		if Length(a, b) == 0 {
			return &ValidationError{msg: fmt.Sprintf("member %d: nodes %d and %d coincide", mb.ID, mb.Start, mb.End)}
		}
	}

	groups := make(map[string]bool, len(m.Groups))
	for _, g := range m.Groups {
		if g.Name == "" {
			return &ValidationError{"group name must not be empty"}
		}
		if groups[g.Name] {
			return &ValidationError{msg: fmt.Sprintf("duplicate group %q", g.Name)}
		}
		groups[g.Name] = true
		for _, id := range g.Members {
			if !members[id] {
				return &ValidationError{msg: fmt.Sprintf("group %q: member %d not found", g.Name, id)}
			}
		}
	}
	for _, mb := range m.Members {
		if mb.Group != "" && !groups[mb.Group] {
			return &ValidationError{msg: fmt.Sprintf("member %d: group %q not found", mb.ID, mb.Group)}
		}
	}

	if _, err := nscp.Find(m.Combination); err != nil {
		return &ValidationError{msg: err.Error()}
	}
	return nil
}

func (m *Model) validateDirections(n Node) error {
	check := func(d element.Direction, what string) error {
		if !m.ElementType.Has(d) {
			return &ValidationError{msg: fmt.Sprintf("node %d: %s direction %q is not a %s DOF", n.ID, what, d, m.ElementType)}
		}
		return nil
	}
	for d := range n.Known {
		if err := check(d, "known displacement"); err != nil {
			return err
		}
	}
	for d := range n.Forces {
		if err := check(d, "force"); err != nil {
			return err
		}
	}
	for _, l := range n.Loads {
		if err := check(l.Direction, "load"); err != nil {
			return err
		}
		if !nscp.ValidLoadType(l.Type) {
			return &ValidationError{msg: fmt.Sprintf("node %d: unknown load type %q", n.ID, l.Type)}
		}
	}
	for _, d := range n.Restrained {
		if err := check(d, "restrained"); err != nil {
			return err
		}
	}
	return nil
}

// SortedNodes returns a copy of the nodes ordered by id
func (m *Model) SortedNodes() []Node {
	nodes := append([]Node(nil), m.Nodes...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// Node looks up a node by id
func (m *Model) Node(id int) (Node, bool) {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Library returns lib extended with the model's own materials
func (m *Model) Library(lib material.Library) material.Library {
	out := make(material.Library, len(lib)+len(m.Materials))
	for name, mat := range lib {
		out[name] = mat
	}
	for _, d := range m.Materials {
		out.Add(material.Material{Name: d.Name, E: d.E, Density: d.Density})
	}
	return out
}

// Elements resolves every member into an analysis element: geometry from
// its nodes, E and density from the material library, A and I from the
// section. Group settings apply first and member settings override them.
func (m *Model) Elements(lib material.Library) ([]Element, error) {
	lib = m.Library(lib)

	nodes := make(map[int]Node, len(m.Nodes))
	for _, n := range m.Nodes {
		nodes[n.ID] = n
	}

	groupOf := make(map[int]Group)
	for _, g := range m.Groups {
		for _, id := range g.Members {
			groupOf[id] = g
		}
	}
	groups := make(map[string]Group, len(m.Groups))
	for _, g := range m.Groups {
		groups[g.Name] = g
	}

	elements := make([]Element, 0, len(m.Members))
	for _, mb := range m.Members {
		a, ok := nodes[mb.Start]
		if !ok {
			return nil, &ValidationError{msg: fmt.Sprintf("member %d: start node %d not found", mb.ID, mb.Start)}
		}
		b, ok := nodes[mb.End]
		if !ok {
			return nil, &ValidationError{msg: fmt.Sprintf("member %d: end node %d not found", mb.ID, mb.End)}
		}

		var settings Group
		if g, ok := groups[mb.Group]; ok {
			settings = g
		} else if g, ok := groupOf[mb.ID]; ok {
			settings = g
		}
		settings = settings.override(mb)

		props := element.Properties{E: settings.E, Density: settings.Density}
		if settings.Material != "" {
			mat, err := lib.Get(settings.Material)
			if err != nil {
				return nil, &ValidationError{msg: fmt.Sprintf("member %d: %v", mb.ID, err)}
			}
			if props.E == 0 {
				props.E = mat.E
			}
			if props.Density == 0 {
				props.Density = mat.Density
			}
		}

		var sec section.Section
		if settings.Section != nil {
			sec = *settings.Section
		}
		props.A, props.I = sec.AreaAndInertia()
		if m.ElementType == element.BarKind {
			props.I = 0
		}

		e, err := element.New(m.ElementType, props)
		if err != nil {
			return nil, err
		}
		elements = append(elements, Element{
			ID:       mb.ID,
			Start:    a,
			End:      b,
			Length:   Length(a, b),
			Beta:     Orientation(a, b),
			Section:  sec,
			Material: settings.Material,
			Element:  e,
		})
	}
	return elements, nil
}

func (g Group) override(mb Member) Group {
	if mb.Material != "" {
		g.Material = mb.Material
		// explicit values of the group belong to the group's material
		g.E, g.Density = 0, 0
	}
	if mb.E != 0 {
		g.E = mb.E
	}
	if mb.Density != 0 {
		g.Density = mb.Density
	}
	if mb.Section != nil {
		g.Section = mb.Section
	}
	return g
}

// ValidationError represents a model validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
