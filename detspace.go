// detspace.go --  This file is part of goCI project.
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
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat/combin"
)

// DefaultDetCeiling bounds the determinant-space size before Hamiltonian
// assembly. Matrix construction is quadratic in the space size, so runaway
// spaces are refused instead of exhausting memory.
const DefaultDetCeiling = 5000

// Residues returns all determinants obtained by removing two occupied spin
// orbitals from det, considering the nOrb lowest orbitals.
func Residues(det Determinant, nOrb int) []Determinant {
	var residues []Determinant
	for i := 0; i < nOrb; i++ {
		if !det.IsOccupied(i) {
			continue
		}
		for j := 0; j < i; j++ {
			if !det.IsOccupied(j) {
				continue
			}
			residues = append(residues, det.Clear(i).Clear(j))
		}
	}
	return residues
}

// AddParticles returns all determinants obtained by occupying two distinct
// empty spin orbitals of each residue. Duplicates arising from different
// removal/addition routes to the same occupation are merged, and the result
// is sorted by occupation value so the list order is reproducible.
func AddParticles(residues []Determinant, nOrb int) []Determinant {
	seen := make(map[string]Determinant)
	for _, res := range residues {
		for i := 0; i < nOrb; i++ {
			if res.IsOccupied(i) {
				continue
			}
			one := res.Set(i)
			for j := 0; j < i; j++ {
				if one.IsOccupied(j) {
					continue
				}
				two := one.Set(j)
				seen[two.Key()] = two
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	dets := make([]Determinant, len(keys))
	for i, k := range keys {
		dets[i] = seen[k]
	}
	return dets
}

// SingleDoubleDeterminants builds the CISD determinant space from a reference
// determinant: every configuration reachable by removing two occupied
// orbitals and re-adding two. Re-adding the removed pair recovers the
// reference itself, re-adding one of them gives the singles, so the list is
// reference + all singles + all doubles, each exactly once.
func SingleDoubleDeterminants(ref Determinant, nOrb int) []Determinant {
	return AddParticles(Residues(ref, nOrb), nOrb)
}

// FCIDeterminants enumerates every nEle-electron occupation of nOrb spin
// orbitals, in combination order.
func FCIDeterminants(nEle, nOrb int) []Determinant {
	dets := make([]Determinant, 0, combin.Binomial(nOrb, nEle))
	gen := combin.NewCombinationGenerator(nOrb, nEle)
	for gen.Next() {
		d := NewDeterminant(nOrb)
		for _, orb := range gen.Combination(nil) {
			d[orb/64] |= 1 << (orb % 64)
		}
		dets = append(dets, d)
	}
	return dets
}

// CheckSpaceSize enforces the determinant ceiling.
func CheckSpaceSize(size, ceiling int) error {
	if size > ceiling {
		return errors.Wrapf(ErrSpaceTooLarge, "%d determinants exceed ceiling %d", size, ceiling)
	}
	return nil
}

// FCISpaceSize returns C(nOrb, nEle) without enumerating the space, so the
// ceiling can be checked before any determinant is built.
func FCISpaceSize(nEle, nOrb int) int {
	return combin.Binomial(nOrb, nEle)
}
