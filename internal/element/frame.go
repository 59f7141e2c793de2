package element

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Frame is a beam-column member combining axial and bending stiffness
type Frame struct {
	E       float64
	A       float64
	I       float64
	Density float64
}

func (Frame) element() {}

// Kind implements Element
func (Frame) Kind() Kind { return FrameKind }

// Size implements Element
func (Frame) Size() int { return 6 }

// Properties implements Element
func (f Frame) Properties() Properties {
	return Properties{E: f.E, A: f.A, I: f.I, Density: f.Density}
}

// LocalStiffness returns the 6×6 stiffness over (u1, v1, θ1, u2, v2, θ2)
func (f Frame) LocalStiffness(L float64) *mat.SymDense {
	a := f.E * f.A / L
	k1, k2, k3, k4 := bendingTerms(f.E, f.I, L)
	return mat.NewSymDense(6, []float64{
		a, 0, 0, -a, 0, 0,
		0, k1, k2, 0, -k1, k2,
		0, k2, k3, 0, -k2, k4,
		-a, 0, 0, a, 0, 0,
		0, -k1, -k2, 0, k1, -k2,
		0, k2, k4, 0, -k2, k3,
	})
}

// LocalMass returns the 6×6 consistent frame mass
func (f Frame) LocalMass(L float64) *mat.SymDense {
	m := f.Density * f.A * L
	LL := L * L
	return mat.NewSymDense(6, []float64{
		m / 3, 0, 0, m / 6, 0, 0,
		0, 13 * m / 35, 11 * m * L / 210, 0, 9 * m / 70, -13 * m * L / 420,
		0, 11 * m * L / 210, m * LL / 105, 0, 13 * m * L / 420, -m * LL / 140,
		m / 6, 0, 0, m / 3, 0, 0,
		0, 9 * m / 70, 13 * m * L / 420, 0, 13 * m / 35, -11 * m * L / 210,
		0, -13 * m * L / 420, -m * LL / 140, 0, -11 * m * L / 210, m * LL / 105,
	})
}

// Transformation returns the block rotation; θ is left unrotated
func (Frame) Transformation(beta float64) *mat.Dense {
	c, s := math.Cos(beta), math.Sin(beta)
	t := mat.NewDense(6, 6, nil)
	rotation2(t, 0, c, s)
	t.Set(2, 2, 1)
	rotation2(t, 3, c, s)
	t.Set(5, 5, 1)
	return t
}
