// slater.go --  This file is part of goCI project.
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

// Excitation describes how det2 relates to det1: the excitation degree, the
// spin orbitals vacated (holes, occupied in det1 only) and filled (particles,
// occupied in det2 only), both in ascending order, and the fermionic phase of
// the corresponding operator string. Phase is 0 when Degree > 2, where the
// Slater-Condon matrix element vanishes and no sign is defined.
type Excitation struct {
	Degree    int
	Holes     []int
	Particles []int
	Phase     float64
}

// ExcitationDegree returns half the number of occupation differences between
// the two determinants.
func ExcitationDegree(d1, d2 Determinant) int {
	return d1.Xor(d2).PopCount() / 2
}

// GetExcitation analyzes the pair (d1, d2) and returns the excitation
// descriptor, including the phase relating the two determinants under the
// global ascending orbital ordering. The phase follows the second-quantization
// sign rule: one sign flip per occupied orbital crossed when moving each hole
// to its particle position, with holes and particles paired in ascending
// order, plus one flip when the two intervals of a double excitation
// interleave.
func GetExcitation(d1, d2 Determinant) Excitation {
	diff := d1.Xor(d2)
	degree := diff.PopCount() / 2

	if degree > 2 {
		return Excitation{Degree: degree}
	}
	if degree == 0 {
		return Excitation{Degree: 0, Phase: 1}
	}

	holes := d1.And(diff).Occupied()
	particles := d2.And(diff).Occupied()

	nperm := 0
	for l := range holes {
		low, high := holes[l], particles[l]
		if low > high {
			low, high = high, low
		}
		nperm += countOccupiedBetween(d1, low, high)
	}
	if degree == 2 {
		a := min(holes[0], particles[0])
		b := max(holes[0], particles[0])
		c := min(holes[1], particles[1])
		d := max(holes[1], particles[1])
		if c > a && c < b && d > b {
			nperm++
		}
	}

	phase := 1.0
	if nperm%2 == 1 {
		phase = -1.0
	}
	return Excitation{Degree: degree, Holes: holes, Particles: particles, Phase: phase}
}

// countOccupiedBetween counts occupied orbitals of d strictly between low and high.
func countOccupiedBetween(d Determinant, low, high int) int {
	n := 0
	for orb := low + 1; orb < high; orb++ {
		if d.IsOccupied(orb) {
			n++
		}
	}
	return n
}

// CommonIndex returns the spin orbitals occupied in both determinants, in
// ascending order.
func CommonIndex(d1, d2 Determinant) []int {
	return d1.And(d2).Occupied()
}
