package solver

import (
	"fmt"

	"github.com/alexiusacademia/gostiff/internal/dof"
	"gonum.org/v1/gonum/mat"
)

// StaticResult is the solution of K·U = F. Vectors are indexed by
// global DOF number minus one.
type StaticResult struct {
	Displacements []float64
	// Applied forces at unknown-displacement DOFs, reactions elsewhere
	Forces      []float64
	Determinant float64
	Warnings    []Warning
}

// Displacement returns the displacement of a 1-based global DOF
func (r *StaticResult) Displacement(dof int) float64 {
	return r.Displacements[dof-1]
}

// Force returns the force of a 1-based global DOF
func (r *StaticResult) Force(dof int) float64 {
	return r.Forces[dof-1]
}

// SolveStatic partitions the DOFs into unknown (U) and known (K)
// displacement sets and solves K_uu·U_u = F_u − K_uk·U_k. Every record
// must be exactly one of force-known or displacement-known; run
// ResolveConditions first when the input may be incomplete.
func SolveStatic(k mat.Symmetric, records []dof.Record) (*StaticResult, error) {
	n := 0
	if k != nil {
		n = k.SymmetricDim()
	}
	if n == 0 || len(records) == 0 {
		return nil, &StaticError{Reason: ErrNoFreeDofs}
	}
	if len(records) != n {
		return nil, &StaticError{
			Reason: ErrMissingBoundaryConditions,
			Detail: fmt.Sprintf("%d records for %d DOFs", len(records), n),
		}
	}

	var unknown, known []int
	for i, r := range records {
		if r.ForceKnown == r.DisplacementKnown {
			return nil, &StaticError{
				Reason: ErrMissingBoundaryConditions,
				Detail: fmt.Sprintf("DOF %d (node %d, %s) needs exactly one of force or displacement", r.Index, r.Node, r.Direction.Label()),
			}
		}
		if r.DisplacementKnown {
			known = append(known, i)
		} else {
			unknown = append(unknown, i)
		}
	}

	u := make([]float64, n)
	for _, i := range known {
		u[i] = records[i].Displacement
	}

	if len(unknown) > 0 {
		kuu := mat.NewDense(len(unknown), len(unknown), nil)
		feff := mat.NewVecDense(len(unknown), nil)
		for a, i := range unknown {
			for b, j := range unknown {
				kuu.Set(a, b, k.At(i, j))
			}
			f := records[i].Force
			for _, j := range known {
				f -= k.At(i, j) * u[j]
			}
			feff.SetVec(a, f)
		}

		var lu mat.LU
		lu.Factorize(kuu)
		if lu.Det() == 0 {
			return nil, &StaticError{Reason: ErrSingularStiffness}
		}
		var uu mat.VecDense
		if err := lu.SolveVecTo(&uu, false, feff); err != nil {
			// mat.Condition is reported for near-singular systems too
			return nil, &StaticError{Reason: ErrSingularStiffness, Detail: err.Error()}
		}
		for a, i := range unknown {
			u[i] = uu.AtVec(a)
		}
	}

	var full mat.VecDense
	full.MulVec(k, mat.NewVecDense(n, u))
	forces := make([]float64, n)
	for i := range forces {
		forces[i] = full.AtVec(i)
	}
	for _, i := range unknown {
		forces[i] = records[i].Force
	}

	return &StaticResult{
		Displacements: u,
		Forces:        forces,
		Determinant:   mat.Det(k),
	}, nil
}
