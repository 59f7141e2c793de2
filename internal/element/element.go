// Package element provides the local stiffness, consistent mass and
// coordinate transformation matrices of the 2D skeletal elements.
//
// Each element type is a value of the closed Element sum type:
//
//	Bar    axial only             nodal DOFs {x, y}
//	Beam   Euler-Bernoulli        nodal DOFs {v, θ}, β taken as 0
//	Frame  axial + bending        nodal DOFs {x, y, θ}
//
// Returned matrices are freshly allocated; callers own them.
package element

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Kind is the element-type tag of an analysis session
type Kind string

const (
	BarKind   Kind = "bar"
	BeamKind  Kind = "beam"
	FrameKind Kind = "frame"
)

// Kinds lists the supported element types
var Kinds = []Kind{BarKind, BeamKind, FrameKind}

// Direction labels a nodal degree of freedom
type Direction string

const (
	X     Direction = "x"
	Y     Direction = "y"
	Theta Direction = "theta"
)

// Label returns the short label used in tables
func (d Direction) Label() string {
	switch d {
	case X:
		return "X"
	case Y:
		return "Y"
	case Theta:
		return "θ"
	}
	return string(d)
}

// Valid reports whether k names a supported element type
func (k Kind) Valid() bool {
	switch k {
	case BarKind, BeamKind, FrameKind:
		return true
	}
	return false
}

// DofsPerNode returns the number of degrees of freedom at each node
func (k Kind) DofsPerNode() int {
	if k == FrameKind {
		return 3
	}
	return 2
}

// Directions returns the nodal directions in numbering order
func (k Kind) Directions() []Direction {
	switch k {
	case BarKind:
		return []Direction{X, Y}
	case BeamKind:
		return []Direction{Y, Theta}
	default:
		return []Direction{X, Y, Theta}
	}
}

// Has reports whether d is one of the nodal directions of k
func (k Kind) Has(d Direction) bool {
	for _, kd := range k.Directions() {
		if kd == d {
			return true
		}
	}
	return false
}

// Properties are the material and section values an element is built from.
// I is ignored by Bar. Density is only needed for modal analysis.
type Properties struct {
	E       float64 // Young's modulus (Pa)
	A       float64 // area (m²)
	I       float64 // moment of inertia (m⁴)
	Density float64 // kg/m³
}

// Element is implemented by Bar, Beam and Frame only
type Element interface {
	Kind() Kind
	// Size is the dimension of the local matrices: 2 × DofsPerNode
	Size() int
	LocalStiffness(L float64) *mat.SymDense
	LocalMass(L float64) *mat.SymDense
	Transformation(beta float64) *mat.Dense
	Properties() Properties

	element()
}

// New builds the element of the given kind
func New(kind Kind, p Properties) (Element, error) {
	switch kind {
	case BarKind:
		return Bar{E: p.E, A: p.A, Density: p.Density}, nil
	case BeamKind:
		return Beam{E: p.E, A: p.A, I: p.I, Density: p.Density}, nil
	case FrameKind:
		return Frame{E: p.E, A: p.A, I: p.I, Density: p.Density}, nil
	}
	return nil, fmt.Errorf("unknown element type %q", kind)
}

// GlobalStiffness returns Tᵗ·K·T together with the local stiffness K
func GlobalStiffness(e Element, L, beta float64) (global, local *mat.SymDense) {
	local = e.LocalStiffness(L)
	return rotate(local, e.Transformation(beta)), local
}

// GlobalMass returns Tᵗ·M·T together with the local consistent mass M
func GlobalMass(e Element, L, beta float64) (global, local *mat.SymDense) {
	local = e.LocalMass(L)
	return rotate(local, e.Transformation(beta)), local
}

// rotate computes Tᵗ·A·T and stores the symmetric part of the product
func rotate(a mat.Symmetric, t mat.Matrix) *mat.SymDense {
	n := a.SymmetricDim()
	var at, tat mat.Dense
	at.Mul(a, t)
	tat.Mul(t.T(), &at)

	g := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			g.SetSym(i, j, (tat.At(i, j)+tat.At(j, i))/2)
		}
	}
	return g
}

// bendingTerms are the Euler-Bernoulli coefficients 12EI/L³, 6EI/L², 4EI/L, 2EI/L
func bendingTerms(E, I, L float64) (k1, k2, k3, k4 float64) {
	ei := E * I
	return 12 * ei / (L * L * L), 6 * ei / (L * L), 4 * ei / L, 2 * ei / L
}

// rotation2 fills the 2×2 direction-cosine block at (off, off)
func rotation2(t *mat.Dense, off int, c, s float64) {
	t.Set(off, off, c)
	t.Set(off, off+1, s)
	t.Set(off+1, off, -s)
	t.Set(off+1, off+1, c)
}
