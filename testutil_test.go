// testutil_test.go --  This file is part of goCI project.
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
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// symmetrizedERI returns a random spatial two-electron tensor with the full
// 8-fold permutational symmetry of real (pq|rs) integrals.
func symmetrizedERI(nb int, scale float64, rng *rand.Rand) [][][][]float64 {
	t := zeros4D(nb)
	for p := 0; p < nb; p++ {
		for q := 0; q < nb; q++ {
			for r := 0; r < nb; r++ {
				for s := 0; s < nb; s++ {
					t[p][q][r][s] = rng.Float64()
				}
			}
		}
	}
	g := zeros4D(nb)
	for p := 0; p < nb; p++ {
		for q := 0; q < nb; q++ {
			for r := 0; r < nb; r++ {
				for s := 0; s < nb; s++ {
					g[p][q][r][s] = scale / 8.0 *
						(t[p][q][r][s] + t[q][p][r][s] + t[p][q][s][r] + t[q][p][s][r] +
							t[r][s][p][q] + t[s][r][p][q] + t[r][s][q][p] + t[s][r][q][p])
				}
			}
		}
	}
	return g
}

// toyReference builds a converged reference with ascending orbital energies,
// a diagonal MO core Hamiltonian and a random symmetric two-electron tensor.
func toyReference(nb, nelec int, eriScale float64, seed int64) *Reference {
	rng := rand.New(rand.NewSource(seed))
	eps := make([]float64, nb)
	core := zeros2D(nb)
	for p := 0; p < nb; p++ {
		eps[p] = -1.5 + 0.4*float64(p)
		core[p][p] = eps[p]
	}
	return &Reference{
		NElec:           nelec,
		NBasis:          nb,
		Enuc:            0.7,
		Escf:            -1.1,
		Converged:       true,
		OrbitalEnergies: eps,
		CoreMO:          core,
		ERI:             symmetrizedERI(nb, eriScale, rng),
	}
}

// minimalModelReference is a two-spatial-orbital closed-shell model with only
// the Coulomb integrals (11|11), (22|22) and the exchange class (12|12)
// non-zero. Its FCI problem has a hand-checkable closed-shell block
// [[2h1+J1, K], [K, 2h2+J2]].
func minimalModelReference(h1, h2, j1, j2, k float64) *Reference {
	eri := zeros4D(2)
	eri[0][0][0][0] = j1
	eri[1][1][1][1] = j2
	eri[0][1][0][1] = k
	eri[1][0][0][1] = k
	eri[0][1][1][0] = k
	eri[1][0][1][0] = k
	core := zeros2D(2)
	core[0][0] = h1
	core[1][1] = h2
	return &Reference{
		NElec:           2,
		NBasis:          2,
		Enuc:            0.5,
		Escf:            2*h1 + j1 + 0.5,
		Converged:       true,
		OrbitalEnergies: []float64{h1, h2},
		CoreMO:          core,
		ERI:             eri,
	}
}

// lowestEigsSym fully diagonalizes H and returns the k smallest eigenvalues.
func lowestEigsSym(H mat.Symmetric, k int) []float64 {
	var es mat.EigenSym
	if ok := es.Factorize(H, false); !ok {
		panic("test eigendecomposition failed")
	}
	return es.Values(nil)[:k]
}

// randSymDominant returns an n x n symmetric matrix with an increasing
// diagonal and off-diagonal noise of the given magnitude.
func randSymDominant(n int, noise float64, seed int64) *mat.SymDense {
	rng := rand.New(rand.NewSource(seed))
	H := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		H.SetSym(i, i, float64(i)+rng.Float64())
		for j := 0; j < i; j++ {
			H.SetSym(i, j, noise*(2*rng.Float64()-1))
		}
	}
	return H
}
