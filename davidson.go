// davidson.go --  This file is part of goCI project.
//
//	goCI is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package main

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DavidsonOptions tunes the iterative eigensolver. Zero fields fall back to
// the defaults of DefaultDavidsonOptions.
type DavidsonOptions struct {
	Tol     float64 // residual RMS threshold per root
	MaxIter int
	MaxSub  int // subspace bound before collapse
}

// DefaultDavidsonOptions returns the solver settings used by the CI drivers.
func DefaultDavidsonOptions() DavidsonOptions {
	return DavidsonOptions{Tol: 1e-8, MaxIter: 200}
}

// Davidson computes the k lowest eigenpairs of the symmetric matrix H by
// subspace iteration: project H onto an orthonormal trial basis, diagonalize
// the small projected matrix, and expand the basis with residual vectors
// preconditioned by the diagonal of H, collapsing the basis onto the current
// Ritz vectors when it grows past the subspace bound. Eigenvalues come back
// ascending with unit-norm eigenvectors as the columns of the returned
// matrix; eigenvector sign is not fixed. Returns ErrDavidsonNotConverged when
// the roots are not stationary within the iteration cap.
func Davidson(H mat.Symmetric, k int, opt DavidsonOptions) ([]float64, *mat.Dense, error) {
	n := H.SymmetricDim()
	if k < 1 || k > n {
		return nil, nil, errors.Errorf("davidson: %d roots requested from a %d-dimensional space", k, n)
	}
	if opt.Tol <= 0 {
		opt.Tol = DefaultDavidsonOptions().Tol
	}
	if opt.MaxIter < 1 {
		opt.MaxIter = DefaultDavidsonOptions().MaxIter
	}
	if opt.MaxSub < 2*k {
		opt.MaxSub = max(6*k, k+20)
	}
	if opt.MaxSub > n {
		opt.MaxSub = n
	}

	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = H.At(i, i)
	}

	// initial guesses: unit vectors on the smallest diagonal entries
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		switch {
		case diag[a] < diag[b]:
			return -1
		case diag[a] > diag[b]:
			return 1
		}
		return a - b
	})
	nGuess := min(n, 2*k)
	V := make([][]float64, 0, opt.MaxSub)
	W := make([][]float64, 0, opt.MaxSub)
	for g := 0; g < nGuess; g++ {
		v := make([]float64, n)
		v[order[g]] = 1
		V = append(V, v)
		W = append(W, symMulVec(H, v))
	}

	evals := make([]float64, k)
	ritz := make([][]float64, k)

	for iter := 0; iter < opt.MaxIter; iter++ {
		m := len(V)

		T := mat.NewSymDense(m, nil)
		for i := 0; i < m; i++ {
			for j := 0; j <= i; j++ {
				T.SetSym(i, j, floats.Dot(V[i], W[j]))
			}
		}
		var es mat.EigenSym
		if ok := es.Factorize(T, true); !ok {
			return nil, nil, errors.New("davidson: projected matrix eigendecomposition failed")
		}
		theta := es.Values(nil)
		var C mat.Dense
		es.VectorsTo(&C)

		// Ritz vectors, residuals, and the convergence number per root
		residuals := make([][]float64, k)
		maxRMS := 0.0
		for r := 0; r < k; r++ {
			x := make([]float64, n)
			hx := make([]float64, n)
			for i := 0; i < m; i++ {
				floats.AddScaled(x, C.At(i, r), V[i])
				floats.AddScaled(hx, C.At(i, r), W[i])
			}
			res := make([]float64, n)
			copy(res, hx)
			floats.AddScaled(res, -theta[r], x)

			sq := make([]float64, n)
			for i, v := range res {
				sq[i] = v * v
			}
			rms := math.Sqrt(stat.Mean(sq, nil))
			if rms > maxRMS {
				maxRMS = rms
			}
			evals[r] = theta[r]
			ritz[r] = x
			residuals[r] = res
		}

		if maxRMS < opt.Tol {
			return evals, ritzMatrix(n, k, ritz), nil
		}

		// collapse onto the current Ritz space when the basis is full,
		// keeping room for at least one expansion vector
		if m+k > opt.MaxSub {
			nKeep := min(2*k, m, opt.MaxSub-k)
			if nKeep < k {
				nKeep = k
			}
			newV := make([][]float64, nKeep)
			newW := make([][]float64, nKeep)
			for r := 0; r < nKeep; r++ {
				x := make([]float64, n)
				hx := make([]float64, n)
				for i := 0; i < m; i++ {
					floats.AddScaled(x, C.At(i, r), V[i])
					floats.AddScaled(hx, C.At(i, r), W[i])
				}
				newV[r] = x
				newW[r] = hx
			}
			V, W = newV, newW
		}

		// expand with preconditioned residuals of the unconverged roots
		added := 0
		for r := 0; r < k && len(V) < opt.MaxSub; r++ {
			q := make([]float64, n)
			for j := 0; j < n; j++ {
				denom := evals[r] - diag[j]
				if math.Abs(denom) < 1e-12 {
					denom = math.Copysign(1e-12, denom)
				}
				q[j] = residuals[r][j] / denom
			}
			if orthonormalizeAgainst(q, V) {
				V = append(V, q)
				W = append(W, symMulVec(H, q))
				added++
			}
		}
		if added == 0 {
			if len(V) >= n {
				// the basis spans the full space, the projected solve is exact
				return evals, ritzMatrix(n, k, ritz), nil
			}
			return nil, nil, errors.Wrapf(ErrDavidsonNotConverged,
				"subspace stagnated after %d iterations, residual RMS %.3e", iter+1, maxRMS)
		}
	}

	return nil, nil, errors.Wrapf(ErrDavidsonNotConverged,
		"%d iterations, tolerance %.3e not reached", opt.MaxIter, opt.Tol)
}

func symMulVec(H mat.Symmetric, v []float64) []float64 {
	var w mat.VecDense
	w.MulVec(H, mat.NewVecDense(len(v), v))
	out := make([]float64, len(v))
	copy(out, w.RawVector().Data)
	return out
}

// orthonormalizeAgainst projects q out of the span of basis (two Gram-Schmidt
// sweeps) and normalizes it. Reports false when q has no component left.
func orthonormalizeAgainst(q []float64, basis [][]float64) bool {
	for sweep := 0; sweep < 2; sweep++ {
		for _, b := range basis {
			floats.AddScaled(q, -floats.Dot(q, b), b)
		}
	}
	nrm := floats.Norm(q, 2)
	if nrm < 1e-10 {
		return false
	}
	floats.Scale(1/nrm, q)
	return true
}

func ritzMatrix(n, k int, ritz [][]float64) *mat.Dense {
	X := mat.NewDense(n, k, nil)
	for r := 0; r < k; r++ {
		nrm := floats.Norm(ritz[r], 2)
		for i := 0; i < n; i++ {
			X.Set(i, r, ritz[r][i]/nrm)
		}
	}
	return X
}
