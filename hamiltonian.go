// hamiltonian.go --  This file is part of goCI project.
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
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// MatrixElement returns <det1|H|det2> by the Slater-Condon rules, dispatching
// on the excitation degree of the pair.
func (so *SpinOrbitals) MatrixElement(det1, det2 Determinant) float64 {
	exc := GetExcitation(det1, det2)

	switch exc.Degree {
	case 0:
		res := 0.0
		occ := det1.Occupied()
		for _, m := range occ {
			res += so.Hp[m][m]
			for _, n := range occ {
				res += 0.5 * so.DoubleBar[m][n][m][n]
			}
		}
		return res

	case 1:
		m, p := exc.Holes[0], exc.Particles[0]
		res := so.Hp[m][p]
		for _, n := range CommonIndex(det1, det2) {
			res += so.DoubleBar[m][n][p][n]
		}
		return exc.Phase * res

	case 2:
		return exc.Phase * so.DoubleBar[exc.Holes[0]][exc.Holes[1]][exc.Particles[0]][exc.Particles[1]]

	default:
		return 0
	}
}

// BuildFullHamiltonian constructs the CI matrix H[i][j] = <det_i|H|det_j>
// over the determinant list. Only the lower triangle is evaluated; the matrix
// is symmetric by construction. Rows are sharded across GOMAXPROCS workers;
// every (i,j) cell is written by exactly one worker, so no locking is needed.
func (so *SpinOrbitals) BuildFullHamiltonian(detList []Determinant) *mat.SymDense {
	n := len(detList)
	H := mat.NewSymDense(n, nil)

	nw := runtime.GOMAXPROCS(-1)
	if nw > n {
		nw = n
	}
	if nw < 1 {
		nw = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < n; i += nw {
				for j := 0; j <= i; j++ {
					H.SetSym(i, j, so.MatrixElement(detList[i], detList[j]))
				}
			}
		}(w)
	}
	wg.Wait()

	return H
}
