package element

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Bar is an axial-only truss member
type Bar struct {
	E       float64
	A       float64
	Density float64
}

func (Bar) element() {}

// Kind implements Element
func (Bar) Kind() Kind { return BarKind }

// Size implements Element
func (Bar) Size() int { return 4 }

// Properties implements Element
func (b Bar) Properties() Properties {
	return Properties{E: b.E, A: b.A, Density: b.Density}
}

// LocalStiffness returns (EA/L)·[[1,0,-1,0],[0,0,0,0],[-1,0,1,0],[0,0,0,0]]
func (b Bar) LocalStiffness(L float64) *mat.SymDense {
	k := b.E * b.A / L
	return mat.NewSymDense(4, []float64{
		k, 0, -k, 0,
		0, 0, 0, 0,
		-k, 0, k, 0,
		0, 0, 0, 0,
	})
}

// LocalMass returns the consistent axial mass (ρAL/6)·[[2,0,1,0],[0,0,0,0],[1,0,2,0],[0,0,0,0]]
func (b Bar) LocalMass(L float64) *mat.SymDense {
	m := b.Density * b.A * L / 6
	return mat.NewSymDense(4, []float64{
		2 * m, 0, m, 0,
		0, 0, 0, 0,
		m, 0, 2 * m, 0,
		0, 0, 0, 0,
	})
}

// Transformation returns the 4×4 rotation acting on (x, y) at each node
func (Bar) Transformation(beta float64) *mat.Dense {
	c, s := math.Cos(beta), math.Sin(beta)
	t := mat.NewDense(4, 4, nil)
	rotation2(t, 0, c, s)
	rotation2(t, 2, c, s)
	return t
}
