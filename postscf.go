// postscf.go --  This file is part of goCI project.
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
	"gonum.org/v1/gonum/mat"
)

const hartreeToEV = 27.211399

// PostSCF drives the correlation treatments on top of a converged SCF
// reference.
type PostSCF struct {
	Ref        *Reference
	SO         *SpinOrbitals
	DetCeiling int
	Roots      int
	Davidson   DavidsonOptions
}

// NewPostSCF validates the reference and builds the spin-orbital quantities.
// Returns ErrNotConverged when the SCF did not converge.
func NewPostSCF(ref *Reference) (*PostSCF, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return &PostSCF{
		Ref:        ref,
		SO:         ref.BuildSpinOrbitals(),
		DetCeiling: DefaultDetCeiling,
		Roots:      3,
		Davidson:   DefaultDavidsonOptions(),
	}, nil
}

// MP2 returns the MP2 total energy. The spin-orbital variant sums
// 0.25 <ij||ab>^2 / (f_i + f_j - f_a - f_b) over occupied ij and virtual ab;
// the spatial variant is the closed-shell expression over spatial orbitals.
// Both give the same number for an RHF reference.
func (ps *PostSCF) MP2(spinOrbital bool) float64 {
	if spinOrbital {
		norb := ps.SO.NOrb
		nocc := ps.Ref.NElec
		emp2 := 0.0
		for i := 0; i < nocc; i++ {
			for j := 0; j < nocc; j++ {
				for a := nocc; a < norb; a++ {
					for b := nocc; b < norb; b++ {
						denom := ps.SO.Fs[i] + ps.SO.Fs[j] - ps.SO.Fs[a] - ps.SO.Fs[b]
						numer := ps.SO.DoubleBar[i][j][a][b]
						emp2 += numer * numer / denom
					}
				}
			}
		}
		return 0.25*emp2 + ps.Ref.Escf
	}

	nocc := ps.Ref.NElec / 2
	nb := ps.Ref.NBasis
	eps := ps.Ref.OrbitalEnergies
	emp2 := 0.0
	for i := 0; i < nocc; i++ {
		for j := 0; j < nocc; j++ {
			for a := nocc; a < nb; a++ {
				for b := nocc; b < nb; b++ {
					denom := eps[i] + eps[j] - eps[a] - eps[b]
					numer := ps.Ref.ERI[i][a][j][b] *
						(2.0*ps.Ref.ERI[i][a][j][b] - ps.Ref.ERI[i][b][j][a])
					emp2 += numer / denom
				}
			}
		}
	}
	return emp2 + ps.Ref.Escf
}

// CIResult reports a determinant-CI calculation: the space size, total
// energies of the computed roots (eigenvalue + nuclear repulsion), and the CI
// vectors in determinant-list order.
type CIResult struct {
	Method   string
	NDets    int
	Etot     float64
	Ecorr    float64
	Energies []float64
	Vectors  *mat.Dense
}

// CISD diagonalizes the Hamiltonian over all single and double excitations
// from the Hartree-Fock reference determinant.
func (ps *PostSCF) CISD() (*CIResult, error) {
	refDet := ReferenceDeterminant(ps.Ref.NElec, ps.SO.NOrb)
	detList := SingleDoubleDeterminants(refDet, ps.SO.NOrb)
	return ps.diagonalize("CISD", detList)
}

// FCI diagonalizes the Hamiltonian over every N-electron occupation of the
// spin orbitals. The C(M,N) space size is checked against the ceiling before
// any determinant is generated.
func (ps *PostSCF) FCI() (*CIResult, error) {
	if err := CheckSpaceSize(FCISpaceSize(ps.Ref.NElec, ps.SO.NOrb), ps.DetCeiling); err != nil {
		return nil, err
	}
	detList := FCIDeterminants(ps.Ref.NElec, ps.SO.NOrb)
	return ps.diagonalize("FCI", detList)
}

func (ps *PostSCF) diagonalize(method string, detList []Determinant) (*CIResult, error) {
	if err := CheckSpaceSize(len(detList), ps.DetCeiling); err != nil {
		return nil, err
	}

	H := ps.SO.BuildFullHamiltonian(detList)

	k := min(ps.Roots, len(detList))
	evals, vecs, err := Davidson(H, k, ps.Davidson)
	if err != nil {
		return nil, errors.Wrapf(err, "%s diagonalization", method)
	}

	res := &CIResult{Method: method, NDets: len(detList), Vectors: vecs}
	for _, e := range evals {
		res.Energies = append(res.Energies, e+ps.Ref.Enuc)
	}
	res.Etot = res.Energies[0]
	res.Ecorr = res.Etot - ps.Ref.Escf
	return res, nil
}

// CISResult reports CIS excited states: excitation energies in eV, ascending,
// and the corresponding oscillator strengths (zero when the reference carries
// no dipole integrals).
type CISResult struct {
	NOV        int
	Omega      []float64
	Oscillator []float64
}

// CIS solves the singles problem A[ia,jb] = dij dab (f_a - f_i) + <aj||ib>
// by full symmetric diagonalization.
func (ps *PostSCF) CIS() (*CISResult, error) {
	nOcc := ps.Ref.NElec
	nVir := ps.SO.NOrb - nOcc
	nOV := nOcc * nVir
	if err := CheckSpaceSize(nOV, ps.DetCeiling); err != nil {
		return nil, err
	}

	A := ps.singlesMatrixA()
	var es mat.EigenSym
	if ok := es.Factorize(A, true); !ok {
		return nil, errors.New("CIS: eigendecomposition failed")
	}
	omega := es.Values(nil)
	var C mat.Dense
	es.VectorsTo(&C)

	osc := make([]float64, nOV)
	if ps.SO.Dipole != nil {
		for state := 0; state < nOV; state++ {
			sumSq := 0.0
			for comp := 0; comp < 3; comp++ {
				td := 0.0
				for i := 0; i < nOcc; i++ {
					for a := 0; a < nVir; a++ {
						td += C.At(i*nVir+a, state) * ps.SO.Dipole[comp][i][nOcc+a]
					}
				}
				sumSq += td * td
			}
			osc[state] = (2.0 / 3.0) * omega[state] * sumSq
		}
	}

	for i := range omega {
		omega[i] *= hartreeToEV
	}
	return &CISResult{NOV: nOV, Omega: omega, Oscillator: osc}, nil
}

// TDHF returns the TDHF excitation energies in eV, ascending.
//
// alg selects the working equations:
//
//	"hermitian"  sqrtm(A-B) (A+B) sqrtm(A-B), symmetric eigenproblem
//	"reduced"    (A-B)(A+B), non-symmetric eigenproblem in omega^2
//	"full"       [[A,B],[-B,-A]], non-symmetric, positive branch kept
func (ps *PostSCF) TDHF(alg string) ([]float64, error) {
	nOcc := ps.Ref.NElec
	nVir := ps.SO.NOrb - nOcc
	nOV := nOcc * nVir
	if err := CheckSpaceSize(nOV, ps.DetCeiling); err != nil {
		return nil, err
	}

	A := ps.singlesMatrixA()
	B := ps.singlesMatrixB()

	apb := mat.NewSymDense(nOV, nil)
	amb := mat.NewSymDense(nOV, nil)
	for i := 0; i < nOV; i++ {
		for j := 0; j <= i; j++ {
			apb.SetSym(i, j, A.At(i, j)+B.At(i, j))
			amb.SetSym(i, j, A.At(i, j)-B.At(i, j))
		}
	}

	var omega []float64
	switch alg {
	case "hermitian", "":
		S, err := MatrixSqrtSym(amb)
		if err != nil {
			return nil, errors.Wrap(err, "TDHF hermitian")
		}
		var tmp, hd mat.Dense
		tmp.Mul(S, apb)
		hd.Mul(&tmp, S)
		hsym := mat.NewSymDense(nOV, nil)
		for i := 0; i < nOV; i++ {
			for j := 0; j <= i; j++ {
				hsym.SetSym(i, j, 0.5*(hd.At(i, j)+hd.At(j, i)))
			}
		}
		var es mat.EigenSym
		if ok := es.Factorize(hsym, false); !ok {
			return nil, errors.New("TDHF hermitian: eigendecomposition failed")
		}
		for _, w2 := range es.Values(nil) {
			omega = append(omega, math.Sqrt(math.Max(w2, 0)))
		}

	case "reduced":
		var hd mat.Dense
		hd.Mul(amb, apb)
		var eig mat.Eigen
		if ok := eig.Factorize(&hd, mat.EigenNone); !ok {
			return nil, errors.New("TDHF reduced: eigendecomposition failed")
		}
		for _, w2 := range eig.Values(nil) {
			omega = append(omega, math.Sqrt(math.Max(real(w2), 0)))
		}
		slices.Sort(omega)

	case "full":
		n2 := 2 * nOV
		M := mat.NewDense(n2, n2, nil)
		for i := 0; i < nOV; i++ {
			for j := 0; j < nOV; j++ {
				M.Set(i, j, A.At(i, j))
				M.Set(i, nOV+j, B.At(i, j))
				M.Set(nOV+i, j, -B.At(i, j))
				M.Set(nOV+i, nOV+j, -A.At(i, j))
			}
		}
		var eig mat.Eigen
		if ok := eig.Factorize(M, mat.EigenNone); !ok {
			return nil, errors.New("TDHF full: eigendecomposition failed")
		}
		all := make([]float64, 0, n2)
		for _, w := range eig.Values(nil) {
			all = append(all, real(w))
		}
		slices.Sort(all)
		omega = all[nOV:] // positive branch

	default:
		return nil, errors.Errorf("TDHF: unknown algorithm %q", alg)
	}

	for i := range omega {
		omega[i] *= hartreeToEV
	}
	return omega, nil
}

// singlesMatrixA builds the CIS/TDHF A matrix over the ia composite index,
// ia = i*nVir + a with i occupied and a virtual spin orbitals.
func (ps *PostSCF) singlesMatrixA() *mat.SymDense {
	nOcc := ps.Ref.NElec
	nVir := ps.SO.NOrb - nOcc
	A := mat.NewSymDense(nOcc*nVir, nil)
	for i := 0; i < nOcc; i++ {
		for a := 0; a < nVir; a++ {
			ia := i*nVir + a
			for j := 0; j < nOcc; j++ {
				for b := 0; b < nVir; b++ {
					jb := j*nVir + b
					if jb > ia {
						continue
					}
					v := ps.SO.DoubleBar[nOcc+a][j][i][nOcc+b] // <aj||ib>
					if i == j && a == b {
						v += ps.SO.Fs[nOcc+a] - ps.SO.Fs[i]
					}
					A.SetSym(ia, jb, v)
				}
			}
		}
	}
	return A
}

// singlesMatrixB builds the TDHF B matrix, B[ia,jb] = <ab||ij>.
func (ps *PostSCF) singlesMatrixB() *mat.SymDense {
	nOcc := ps.Ref.NElec
	nVir := ps.SO.NOrb - nOcc
	B := mat.NewSymDense(nOcc*nVir, nil)
	for i := 0; i < nOcc; i++ {
		for a := 0; a < nVir; a++ {
			ia := i*nVir + a
			for j := 0; j < nOcc; j++ {
				for b := 0; b < nVir; b++ {
					jb := j*nVir + b
					if jb > ia {
						continue
					}
					B.SetSym(ia, jb, ps.SO.DoubleBar[nOcc+a][nOcc+b][i][j])
				}
			}
		}
	}
	return B
}
