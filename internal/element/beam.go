package element

import (
	"gonum.org/v1/gonum/mat"
)

// Beam is a pure-bending Euler-Bernoulli member. Its DOFs are already the
// global transverse displacement and rotation, so no rotation is applied.
type Beam struct {
	E       float64
	A       float64
	I       float64
	Density float64
}

func (Beam) element() {}

// Kind implements Element
func (Beam) Kind() Kind { return BeamKind }

// Size implements Element
func (Beam) Size() int { return 4 }

// Properties implements Element
func (b Beam) Properties() Properties {
	return Properties{E: b.E, A: b.A, I: b.I, Density: b.Density}
}

// LocalStiffness returns the classical 4×4 bending stiffness over (v1, θ1, v2, θ2)
func (b Beam) LocalStiffness(L float64) *mat.SymDense {
	k1, k2, k3, k4 := bendingTerms(b.E, b.I, L)
	return mat.NewSymDense(4, []float64{
		k1, k2, -k1, k2,
		k2, k3, -k2, k4,
		-k1, -k2, k1, -k2,
		k2, k4, -k2, k3,
	})
}

// LocalMass returns the consistent beam mass scaled by ρAL/420
func (b Beam) LocalMass(L float64) *mat.SymDense {
	m := b.Density * b.A * L / 420
	LL := L * L
	return mat.NewSymDense(4, []float64{
		156 * m, 22 * L * m, 54 * m, -13 * L * m,
		22 * L * m, 4 * LL * m, 13 * L * m, -3 * LL * m,
		54 * m, 13 * L * m, 156 * m, -22 * L * m,
		-13 * L * m, -3 * LL * m, -22 * L * m, 4 * LL * m,
	})
}

// Transformation is the identity: beam DOFs are not rotated
func (Beam) Transformation(float64) *mat.Dense {
	t := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		t.Set(i, i, 1)
	}
	return t
}
