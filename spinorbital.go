// spinorbital.go --  This file is part of goCI project.
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

// SpinOrbitals holds the spin-orbital quantities consumed by the correlation
// methods: the antisymmetrized two-electron tensor <pq||rs>, the one-electron
// operator Hp, the Fock eigenvalue diagonal Fs, and optionally the dipole
// matrices. Spin orbitals interleave spin within each spatial orbital:
// spin orbital p has spatial part p/2 and spin p%2.
type SpinOrbitals struct {
	NOrb      int
	Hp        [][]float64
	Fs        []float64
	DoubleBar [][][][]float64
	Dipole    [][][]float64 // 3 x NOrb x NOrb, nil when the reference has no dipoles
}

// BuildSpinOrbitals tiles the spatial MO quantities of a reference onto spin
// orbitals. The spatial two-electron integrals are chemist notation (pq|rs);
// the physicist spin-orbital element is
//
//	<pq|rs> = (pr|qs) * delta(sigma_p,sigma_r) * delta(sigma_q,sigma_s)
//
// and DoubleBar stores <pq||rs> = <pq|rs> - <pq|sr>.
func (ref *Reference) BuildSpinOrbitals() *SpinOrbitals {
	nb := ref.NBasis
	norb := 2 * nb
	so := &SpinOrbitals{
		NOrb:      norb,
		Hp:        zeros2D(norb),
		Fs:        make([]float64, norb),
		DoubleBar: zeros4D(norb),
	}

	for p := 0; p < norb; p++ {
		for q := 0; q < norb; q++ {
			for r := 0; r < norb; r++ {
				for s := 0; s < norb; s++ {
					v1 := 0.0
					if p%2 == r%2 && q%2 == s%2 {
						v1 = ref.ERI[p/2][r/2][q/2][s/2]
					}
					v2 := 0.0
					if p%2 == s%2 && q%2 == r%2 {
						v2 = ref.ERI[p/2][s/2][q/2][r/2]
					}
					so.DoubleBar[p][q][r][s] = v1 - v2
				}
			}
		}
	}

	for p := 0; p < norb; p++ {
		so.Fs[p] = ref.OrbitalEnergies[p/2]
		for q := 0; q < norb; q++ {
			if p%2 == q%2 {
				so.Hp[p][q] = ref.CoreMO[p/2][q/2]
			}
		}
	}

	if ref.DipoleMO != nil {
		so.Dipole = make([][][]float64, 3)
		for c := 0; c < 3; c++ {
			so.Dipole[c] = zeros2D(norb)
			for p := 0; p < norb; p++ {
				for q := 0; q < norb; q++ {
					if p%2 == q%2 {
						so.Dipole[c][p][q] = ref.DipoleMO[c][p/2][q/2]
					}
				}
			}
		}
	}

	return so
}

func zeros2D(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

func zeros4D(n int) [][][][]float64 {
	t := make([][][][]float64, n)
	for p := range t {
		t[p] = make([][][]float64, n)
		for q := range t[p] {
			t[p][q] = make([][]float64, n)
			for r := range t[p][q] {
				t[p][q][r] = make([]float64, n)
			}
		}
	}
	return t
}
