package model

import (
	"github.com/alexiusacademia/gostiff/internal/element"
	"github.com/alexiusacademia/gostiff/internal/nscp"
	"github.com/alexiusacademia/gostiff/internal/section"
)

// Constraint is the support class of a node
type Constraint string

const (
	Free  Constraint = "free"
	Fixed Constraint = "fixed"
)

// Model is a complete structural model as edited by the user.
// It is plain data: DOF numbering, matrices and results are derived from
// it and must be recomputed whenever it changes.
type Model struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	ElementType element.Kind `json:"element_type"`

	Nodes   []Node   `json:"nodes"`
	Members []Member `json:"members"`
	Groups  []Group  `json:"groups,omitempty"`

	// Materials extends the built-in library
	Materials []MaterialDef `json:"materials,omitempty"`

	// Combination selects the NSCP load combination applied to nodal
	// load cases. Empty means every case with factor 1.
	Combination string `json:"combination,omitempty"`
}

// Node is a structural joint
type Node struct {
	ID         int        `json:"id"`
	X          float64    `json:"x"` // m
	Y          float64    `json:"y"` // m
	Constraint Constraint `json:"constraint,omitempty"`

	// Static boundary data, keyed by direction
	Known  map[element.Direction]float64 `json:"known,omitempty"`  // prescribed displacement (m or rad)
	Forces map[element.Direction]float64 `json:"forces,omitempty"` // applied force (N or N·m)
	Loads  []Load                        `json:"loads,omitempty"`

	// Modal boundary data: directions held at zero displacement
	Restrained []element.Direction `json:"restrained,omitempty"`
}

// Load is a nodal load belonging to an NSCP load type
type Load struct {
	Type      nscp.LoadType     `json:"type"`
	Direction element.Direction `json:"direction"`
	Value     float64           `json:"value"`
}

// Member connects two nodes. Explicit E/Density override the material,
// and any explicit value overrides the member's group.
type Member struct {
	ID       int              `json:"id"`
	Start    int              `json:"start"`
	End      int              `json:"end"`
	Group    string           `json:"group,omitempty"`
	Material string           `json:"material,omitempty"`
	E        float64          `json:"e,omitempty"`
	Density  float64          `json:"density,omitempty"`
	Section  *section.Section `json:"section,omitempty"`
}

// Group applies one material and section to several members
type Group struct {
	Name     string           `json:"name"`
	Members  []int            `json:"members"`
	Material string           `json:"material,omitempty"`
	E        float64          `json:"e,omitempty"`
	Density  float64          `json:"density,omitempty"`
	Section  *section.Section `json:"section,omitempty"`
}

// MaterialDef is a user-defined material
type MaterialDef struct {
	Name    string  `json:"name"`
	E       float64 `json:"e"`
	Density float64 `json:"density"`
}

// Element is a member resolved against nodes, materials and sections
type Element struct {
	ID     int
	Start  Node
	End    Node
	Length float64 // m
	Beta   float64 // rad, local x-axis from global x-axis

	Section  section.Section
	Material string

	element.Element
}

// IsFixed reports whether the node is fully restrained
func (n Node) IsFixed() bool {
	return n.Constraint == Fixed
}
