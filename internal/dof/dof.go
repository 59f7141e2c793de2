// Package dof numbers the global degrees of freedom of a model and records,
// for every element, where its local matrix rows land in the global system.
package dof

import (
	stderrors "errors"
	"fmt"
	"sort"

	"github.com/Konstantin8105/errors"
	"github.com/alexiusacademia/gostiff/internal/element"
	"github.com/alexiusacademia/gostiff/internal/model"
)

// Record describes one global degree of freedom
type Record struct {
	Index     int               // 1-based global number
	Node      int               // owning node id
	Direction element.Direction // nodal direction

	// Static analysis: force-known and displacement-known are exclusive
	// once resolved
	ForceKnown        bool
	Force             float64
	DisplacementKnown bool
	Displacement      float64

	// Modal analysis: displacement held at zero
	Restrained bool
}

// Location maps local matrix rows of an element to global DOF numbers.
// An entry is 0 when the direction belongs to a fixed node.
type Location []int

// Free returns the global numbers of the unconstrained entries, in order
func (l Location) Free() []int {
	free := make([]int, 0, len(l))
	for _, g := range l {
		if g > 0 {
			free = append(free, g)
		}
	}
	return free
}

// Numbering is the result of DOF assignment
type Numbering struct {
	Kind    element.Kind
	Records []Record // ordered by Index

	nodes    map[int]Location // per node, in direction order
	elements map[int]Location
}

// Count returns the number of free DOFs
func (n *Numbering) Count() int {
	return len(n.Records)
}

// NodeDofs returns the free DOF numbers of a node; empty if it is fixed
func (n *Numbering) NodeDofs(node int) []int {
	return n.nodes[node].Free()
}

// Dof returns the global number of a node direction, 0 when the node is
// fixed or the direction does not exist for the element type
func (n *Numbering) Dof(node int, d element.Direction) int {
	loc, ok := n.nodes[node]
	if !ok {
		return 0
	}
	for i, kd := range n.Kind.Directions() {
		if kd == d {
			return loc[i]
		}
	}
	return 0
}

// Element returns the location array of an element
func (n *Numbering) Element(id int) (Location, bool) {
	loc, ok := n.elements[id]
	return loc, ok
}

// Record returns the record of a global DOF number
func (n *Numbering) Record(index int) (Record, bool) {
	if index < 1 || index > len(n.Records) {
		return Record{}, false
	}
	return n.Records[index-1], true
}

// DofMismatchError reports an element whose local matrix cannot be mapped
// onto the global numbering
type DofMismatchError struct {
	ElementID int `json:"element"`
	Expected  int `json:"expected"` // local matrix dimension
	Actual    int `json:"actual"`   // free DOFs found across both nodes
}

func (e *DofMismatchError) Error() string {
	return fmt.Sprintf("element %d: local matrix has %d DOFs but the element has %d free DOFs",
		e.ElementID, e.Expected, e.Actual)
}

// Mismatches returns every DofMismatchError held by err, which is either
// an error tree returned by Assign or Assemble or a single error
func Mismatches(err error) []*DofMismatchError {
	var out []*DofMismatchError
	collect := func(e error) {
		var m *DofMismatchError
		if stderrors.As(e, &m) {
			out = append(out, m)
		}
	}
	if et, ok := err.(*errors.Tree); ok {
		errors.Walk(et, collect)
	} else if err != nil {
		collect(err)
	}
	return out
}

// Assign walks the nodes in id order and gives each direction of a free
// node the next global number. Fixed nodes receive none.
//
// Elements whose nodes carry no free DOF at all, or that reference an
// unknown node, are reported as DofMismatchError in the returned error
// tree. The numbering is still valid for the remaining elements.
func Assign(nodes []model.Node, elements []model.Element, kind element.Kind) (*Numbering, error) {
	sorted := append([]model.Node(nil), nodes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	dirs := kind.Directions()
	n := &Numbering{
		Kind:     kind,
		nodes:    make(map[int]Location, len(sorted)),
		elements: make(map[int]Location, len(elements)),
	}

	counter := 1
	for _, node := range sorted {
		loc := make(Location, len(dirs))
		if !node.IsFixed() {
			for i, d := range dirs {
				loc[i] = counter
				n.Records = append(n.Records, Record{Index: counter, Node: node.ID, Direction: d})
				counter++
			}
		}
		n.nodes[node.ID] = loc
	}

	et := errors.New("DOF assignment")
	for _, el := range elements {
		start, okStart := n.nodes[el.Start.ID]
		end, okEnd := n.nodes[el.End.ID]
		if !okStart || !okEnd {
			et.Add(&DofMismatchError{ElementID: el.ID, Expected: 2 * len(dirs), Actual: 0})
			continue
		}
		loc := make(Location, 0, 2*len(dirs))
		loc = append(loc, start...)
		loc = append(loc, end...)
		n.elements[el.ID] = loc

		if free := len(loc.Free()); free == 0 {
			et.Add(&DofMismatchError{ElementID: el.ID, Expected: len(loc), Actual: free})
		}
	}

	if et.IsError() {
		return n, et
	}
	return n, nil
}
