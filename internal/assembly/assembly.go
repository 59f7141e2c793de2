// Package assembly scatters element matrices into the global stiffness and
// mass matrices using the DOF location arrays.
package assembly

import (
	"github.com/Konstantin8105/errors"
	"github.com/alexiusacademia/gostiff/internal/dof"
	"github.com/alexiusacademia/gostiff/internal/element"
	"github.com/alexiusacademia/gostiff/internal/model"
	"gonum.org/v1/gonum/mat"
)

// ElementMatrices are the matrices of one element, in local and global axes
type ElementMatrices struct {
	ID              int
	LocalStiffness  *mat.SymDense
	GlobalStiffness *mat.SymDense
	Transformation  *mat.Dense

	// Only set when mass was requested
	LocalMass  *mat.SymDense
	GlobalMass *mat.SymDense
}

// System is an assembled global system. K and M are N×N where N is the
// number of free DOFs; M is nil unless mass was requested.
type System struct {
	K        *mat.SymDense
	M        *mat.SymDense
	Elements []ElementMatrices
}

// Options control assembly
type Options struct {
	Mass  bool
	Cache *Cache // optional element-matrix memo
}

// Assemble builds the global matrices. An element whose location array
// does not match its local matrix dimension, or that has no free DOF, is
// skipped and reported in the returned error tree; the system built from
// the remaining elements is still returned.
func Assemble(elements []model.Element, n *dof.Numbering, opts Options) (*System, error) {
	size := n.Count()
	sys := &System{Elements: make([]ElementMatrices, 0, len(elements))}
	if size > 0 {
		sys.K = mat.NewSymDense(size, nil)
		if opts.Mass {
			sys.M = mat.NewSymDense(size, nil)
		}
	}

	et := errors.New("assembly")
	for _, el := range elements {
		loc, ok := n.Element(el.ID)
		if !ok {
			et.Add(&dof.DofMismatchError{ElementID: el.ID, Expected: el.Size(), Actual: 0})
			continue
		}
		free := len(loc.Free())
		if len(loc) != el.Size() || free == 0 {
			et.Add(&dof.DofMismatchError{ElementID: el.ID, Expected: el.Size(), Actual: free})
			continue
		}

		em := opts.Cache.matrices(el, opts.Mass)
		sys.Elements = append(sys.Elements, em)

		scatter(sys.K, em.GlobalStiffness, loc)
		if opts.Mass {
			scatter(sys.M, em.GlobalMass, loc)
		}
	}

	if et.IsError() {
		return sys, et
	}
	return sys, nil
}

// Matrices computes the local and global matrices of a single element
func Matrices(el model.Element, withMass bool) ElementMatrices {
	em := ElementMatrices{ID: el.ID}
	em.GlobalStiffness, em.LocalStiffness = element.GlobalStiffness(el.Element, el.Length, el.Beta)
	em.Transformation = el.Transformation(el.Beta)
	if withMass {
		em.GlobalMass, em.LocalMass = element.GlobalMass(el.Element, el.Length, el.Beta)
	}
	return em
}

// scatter adds the upper triangle of a local matrix into g. Zero entries
// of loc belong to fixed DOFs and are dropped.
func scatter(g, a *mat.SymDense, loc dof.Location) {
	for i, gi := range loc {
		if gi == 0 {
			continue
		}
		for j := i; j < len(loc); j++ {
			gj := loc[j]
			if gj == 0 {
				continue
			}
			r, c := gi-1, gj-1
			v := a.At(i, j)
			if r == c && i != j {
				// two local entries mapped onto one diagonal term
				v *= 2
			}
			g.SetSym(r, c, g.At(r, c)+v)
		}
	}
}
