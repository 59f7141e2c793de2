package solver

import (
	"math"
	"sort"

	"github.com/alexiusacademia/gostiff/internal/dof"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EigenThreshold is the smallest eigenvalue kept as a vibration mode.
// Anything at or below it is a rigid-body or spurious mode.
const EigenThreshold = 1e-9

// DynamicResult holds the retained vibration modes in ascending order
type DynamicResult struct {
	Eigenvalues    []float64 // ω² (rad²/s²)
	FrequenciesRad []float64 // ω (rad/s)
	FrequenciesHz  []float64 // f (Hz)

	// Modes has one column per mode and one row per free DOF, normalized
	// so the largest component has magnitude 1
	Modes *mat.Dense

	FreeDofs       []int // row of Modes → global DOF number
	RestrainedDofs []int
	Size           int // total number of global DOFs
}

// NumModes returns the number of retained modes
func (r *DynamicResult) NumModes() int {
	return len(r.Eigenvalues)
}

// ModeVector expands mode i to a full-length vector indexed by global DOF
// number minus one, with zeros at restrained DOFs
func (r *DynamicResult) ModeVector(i int) []float64 {
	v := make([]float64, r.Size)
	for row, g := range r.FreeDofs {
		v[g-1] = r.Modes.At(row, i)
	}
	return v
}

// SolveDynamic solves K_ff·φ = λ·M_ff·φ over the DOFs that are not
// restrained.
func SolveDynamic(k, m mat.Symmetric, records []dof.Record) (*DynamicResult, error) {
	n := 0
	if k != nil && m != nil {
		n = k.SymmetricDim()
	}
	if n == 0 {
		return nil, &DynamicError{Reason: ErrNoFreeDofs}
	}

	res := &DynamicResult{Size: n}
	for i := 0; i < n; i++ {
		if i < len(records) && records[i].Restrained {
			res.RestrainedDofs = append(res.RestrainedDofs, i+1)
		} else {
			res.FreeDofs = append(res.FreeDofs, i+1)
		}
	}
	nf := len(res.FreeDofs)
	if nf == 0 {
		return nil, &DynamicError{Reason: ErrNoFreeDofs, Detail: "every DOF is restrained"}
	}

	kff := mat.NewSymDense(nf, nil)
	mff := mat.NewSymDense(nf, nil)
	for a, i := range res.FreeDofs {
		for b := a; b < nf; b++ {
			j := res.FreeDofs[b]
			kff.SetSym(a, b, k.At(i-1, j-1))
			mff.SetSym(a, b, m.At(i-1, j-1))
		}
	}
	if isZero(kff) {
		return nil, &DynamicError{Reason: ErrNoValidModes, Detail: "stiffness of the free DOFs is zero"}
	}
	if isZero(mff) {
		return nil, &DynamicError{Reason: ErrNoValidModes, Detail: "mass of the free DOFs is zero, check densities"}
	}

	// DOFs with no stiffness and no mass (e.g. transverse to a lone bar)
	// are 0/0 pairs; they are solved out and keep a zero mode component
	active := activeDofs(kff, mff)
	values, sub, err := eigen(restrict(kff, active), restrict(mff, active))
	if err != nil {
		return nil, err
	}
	vectors := mat.NewDense(nf, len(values), nil)
	for r, i := range active {
		for c := range values {
			vectors.Set(i, c, sub.At(r, c))
		}
	}

	type pair struct {
		lambda float64
		col    int
	}
	var kept []pair
	for i, l := range values {
		if math.IsNaN(l) || math.IsInf(l, 0) || l <= EigenThreshold {
			continue
		}
		kept = append(kept, pair{l, i})
	}
	if len(kept) == 0 {
		return nil, &DynamicError{Reason: ErrNoValidModes}
	}
	sort.SliceStable(kept, func(a, b int) bool { return kept[a].lambda < kept[b].lambda })

	res.Modes = mat.NewDense(nf, len(kept), nil)
	col := make([]float64, nf)
	for c, p := range kept {
		mat.Col(col, p.col, vectors)
		if peak := math.Max(floats.Max(col), -floats.Min(col)); peak > 0 {
			floats.Scale(1/peak, col)
		}
		res.Modes.SetCol(c, col)

		omega := math.Sqrt(p.lambda)
		res.Eigenvalues = append(res.Eigenvalues, p.lambda)
		res.FrequenciesRad = append(res.FrequenciesRad, omega)
		res.FrequenciesHz = append(res.FrequenciesHz, omega/(2*math.Pi))
	}
	return res, nil
}

// eigen returns the eigenvalues of K·φ = λ·M·φ and the eigenvectors as
// columns. The symmetric-definite reduction is tried on M, then on K with
// the reciprocal problem. When both are singular the problem is restricted
// to the range of K+M, and only then handed to the general solver on M⁻¹K.
func eigen(k, m *mat.SymDense) ([]float64, *mat.Dense, error) {
	if values, vectors, ok := reduced(k, m, false); ok {
		return values, vectors, nil
	}
	if values, vectors, ok := reduced(m, k, true); ok {
		return values, vectors, nil
	}
	if q := commonRange(k, m); q != nil {
		values, sub, err := eigen(project(k, q), project(m, q))
		if err != nil {
			return nil, nil, err
		}
		var vectors mat.Dense
		vectors.Mul(q, sub)
		return values, &vectors, nil
	}

	var a mat.Dense
	if err := a.Solve(m, k); err != nil {
		return nil, nil, &DynamicError{Reason: ErrLinearAlgebraFailure, Detail: err.Error()}
	}
	var eig mat.Eigen
	if !eig.Factorize(&a, mat.EigenRight) {
		return nil, nil, &DynamicError{Reason: ErrLinearAlgebraFailure, Detail: "eigen decomposition did not converge"}
	}
	cvals := eig.Values(nil)
	var cvecs mat.CDense
	eig.VectorsTo(&cvecs)

	n := len(cvals)
	values := make([]float64, n)
	vectors := mat.NewDense(n, n, nil)
	for j, v := range cvals {
		values[j] = real(v)
		for i := 0; i < n; i++ {
			vectors.Set(i, j, real(cvecs.At(i, j)))
		}
	}
	return values, vectors, nil
}

// reduced solves a·φ = λ·b·φ with b = L·Lᵗ by forming C = L⁻¹·a·L⁻ᵗ.
// With reciprocal set the roles are swapped by the caller and λ = 1/μ;
// μ values that are negligible against the largest one stand for
// infinite λ and are dropped.
func reduced(a, b *mat.SymDense, reciprocal bool) ([]float64, *mat.Dense, bool) {
	var chol mat.Cholesky
	if !chol.Factorize(b) {
		return nil, nil, false
	}
	var l, li mat.TriDense
	chol.LTo(&l)
	if err := li.InverseTri(&l); err != nil {
		return nil, nil, false
	}

	var tmp, c mat.Dense
	tmp.Mul(&li, a)
	c.Mul(&tmp, li.T())
	n := b.SymmetricDim()
	cs := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cs.SetSym(i, j, (c.At(i, j)+c.At(j, i))/2)
		}
	}

	var es mat.EigenSym
	if !es.Factorize(cs, true) {
		return nil, nil, false
	}
	values := es.Values(nil)
	var y, phi mat.Dense
	es.VectorsTo(&y)
	phi.Mul(li.T(), &y)

	if reciprocal {
		peak := floats.Max(values)
		for i, mu := range values {
			if mu <= peak*1e-12 {
				values[i] = math.Inf(1)
				continue
			}
			values[i] = 1 / mu
		}
	}
	return values, &phi, true
}

// activeDofs returns the indices whose row is nonzero in k or in m
func activeDofs(k, m mat.Symmetric) []int {
	n := k.SymmetricDim()
	var active []int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if k.At(i, j) != 0 || m.At(i, j) != 0 {
				active = append(active, i)
				break
			}
		}
	}
	return active
}

func restrict(a mat.Symmetric, idx []int) *mat.SymDense {
	out := mat.NewSymDense(len(idx), nil)
	for r, i := range idx {
		for c := r; c < len(idx); c++ {
			out.SetSym(r, c, a.At(i, idx[c]))
		}
	}
	return out
}

// commonRange returns an orthonormal basis of the range of k+m, or nil
// when k+m has full rank. Directions outside it carry neither stiffness
// nor mass.
func commonRange(k, m *mat.SymDense) *mat.Dense {
	n := k.SymmetricDim()
	var sum mat.SymDense
	sum.AddSym(k, m)
	var es mat.EigenSym
	if !es.Factorize(&sum, true) {
		return nil
	}
	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)

	tol := floats.Max(values) * 1e-12
	var cols []int
	for i, v := range values {
		if v > tol {
			cols = append(cols, i)
		}
	}
	if len(cols) == 0 || len(cols) == n {
		return nil
	}
	q := mat.NewDense(n, len(cols), nil)
	col := make([]float64, n)
	for c, i := range cols {
		mat.Col(col, i, &vectors)
		q.SetCol(c, col)
	}
	return q
}

// project returns qᵗ·a·q
func project(a *mat.SymDense, q *mat.Dense) *mat.SymDense {
	var tmp, p mat.Dense
	tmp.Mul(q.T(), a)
	p.Mul(&tmp, q)
	r := p.RawMatrix().Rows
	out := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			out.SetSym(i, j, (p.At(i, j)+p.At(j, i))/2)
		}
	}
	return out
}

func isZero(a mat.Symmetric) bool {
	n := a.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if a.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}
