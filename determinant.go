// determinant.go --  This file is part of goCI project.
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
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Determinant is a Slater determinant encoded as an occupation bit string
// over spin orbitals. Bit i of word i/64 is set iff spin orbital i is
// occupied. A determinant for an N-electron state carries exactly N set bits.
// All operations treat the receiver as an immutable value: modifying
// operations return a fresh copy.
type Determinant []uint64

// NewDeterminant returns an empty determinant with room for nOrb spin orbitals.
func NewDeterminant(nOrb int) Determinant {
	if nOrb < 1 {
		panic(fmt.Sprintf("determinant: invalid orbital count %d", nOrb))
	}
	return make(Determinant, (nOrb+63)/64)
}

// ReferenceDeterminant returns the determinant with the lowest nEle spin
// orbitals occupied, the Hartree-Fock reference configuration.
func ReferenceDeterminant(nEle, nOrb int) Determinant {
	if nEle < 0 || nEle > nOrb {
		panic(fmt.Sprintf("determinant: %d electrons do not fit %d spin orbitals", nEle, nOrb))
	}
	d := NewDeterminant(nOrb)
	for i := 0; i < nEle; i++ {
		d[i/64] |= 1 << (i % 64)
	}
	return d
}

func (d Determinant) checkOrbital(orb int) {
	if orb < 0 || orb >= 64*len(d) {
		panic(fmt.Sprintf("determinant: orbital index %d out of range [0,%d)", orb, 64*len(d)))
	}
}

// Clone returns a copy backed by fresh storage.
func (d Determinant) Clone() Determinant {
	c := make(Determinant, len(d))
	copy(c, d)
	return c
}

// IsOccupied reports whether spin orbital orb is occupied.
func (d Determinant) IsOccupied(orb int) bool {
	d.checkOrbital(orb)
	return d[orb/64]&(1<<(orb%64)) != 0
}

// Set returns a copy with spin orbital orb occupied.
func (d Determinant) Set(orb int) Determinant {
	d.checkOrbital(orb)
	c := d.Clone()
	c[orb/64] |= 1 << (orb % 64)
	return c
}

// Clear returns a copy with spin orbital orb unoccupied.
func (d Determinant) Clear(orb int) Determinant {
	d.checkOrbital(orb)
	c := d.Clone()
	c[orb/64] &^= 1 << (orb % 64)
	return c
}

// PopCount returns the number of occupied spin orbitals.
func (d Determinant) PopCount() int {
	n := 0
	for _, w := range d {
		n += bits.OnesCount64(w)
	}
	return n
}

// Xor returns the symmetric difference: orbitals occupied in exactly one of
// the two determinants.
func (d Determinant) Xor(o Determinant) Determinant {
	if len(d) != len(o) {
		panic(fmt.Sprintf("determinant: word count mismatch %d vs %d", len(d), len(o)))
	}
	c := make(Determinant, len(d))
	for i := range d {
		c[i] = d[i] ^ o[i]
	}
	return c
}

// And returns the intersection: orbitals occupied in both determinants.
func (d Determinant) And(o Determinant) Determinant {
	if len(d) != len(o) {
		panic(fmt.Sprintf("determinant: word count mismatch %d vs %d", len(d), len(o)))
	}
	c := make(Determinant, len(d))
	for i := range d {
		c[i] = d[i] & o[i]
	}
	return c
}

// Equal reports whether both determinants describe the same occupation.
func (d Determinant) Equal(o Determinant) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if d[i] != o[i] {
			return false
		}
	}
	return true
}

// Occupied returns the occupied spin orbital indices in ascending order.
func (d Determinant) Occupied() []int {
	occ := make([]int, 0, d.PopCount())
	for w, word := range d {
		for word != 0 {
			occ = append(occ, 64*w+bits.TrailingZeros64(word))
			word &= word - 1
		}
	}
	return occ
}

// Key returns a byte-string key whose lexicographic order equals the numeric
// order of the occupation integer. Used for set membership and to fix a
// reproducible determinant-list ordering.
func (d Determinant) Key() string {
	buf := make([]byte, 8*len(d))
	for i, w := range d {
		binary.BigEndian.PutUint64(buf[8*(len(d)-1-i):], w)
	}
	return string(buf)
}

// String renders the occupation pattern with the highest orbital first, the
// way binary literals read.
func (d Determinant) String() string {
	s := ""
	for _, w := range d {
		s = fmt.Sprintf("%064b", w) + s
	}
	return s
}
