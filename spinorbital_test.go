// spinorbital_test.go --  This file is part of goCI project.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleBarAntisymmetry(t *testing.T) {
	ref := toyReference(3, 2, 0.5, 13)
	so := ref.BuildSpinOrbitals()
	require.Equal(t, 6, so.NOrb)

	for p := 0; p < so.NOrb; p++ {
		for q := 0; q < so.NOrb; q++ {
			for r := 0; r < so.NOrb; r++ {
				for s := 0; s < so.NOrb; s++ {
					v := so.DoubleBar[p][q][r][s]
					assert.InDelta(t, -v, so.DoubleBar[p][q][s][r], 1e-14)
					assert.InDelta(t, -v, so.DoubleBar[q][p][r][s], 1e-14)
					assert.InDelta(t, v, so.DoubleBar[q][p][s][r], 1e-14)
					assert.InDelta(t, v, so.DoubleBar[r][s][p][q], 1e-14)
				}
			}
		}
	}
}

func TestSpinTiling(t *testing.T) {
	ref := toyReference(3, 2, 0.1, 17)
	ref.CoreMO[0][1] = -0.05
	ref.CoreMO[1][0] = -0.05
	so := ref.BuildSpinOrbitals()

	for p := 0; p < ref.NBasis; p++ {
		assert.Equal(t, ref.OrbitalEnergies[p], so.Fs[2*p])
		assert.Equal(t, ref.OrbitalEnergies[p], so.Fs[2*p+1])
		for q := 0; q < ref.NBasis; q++ {
			assert.Equal(t, ref.CoreMO[p][q], so.Hp[2*p][2*q], "same spin block")
			assert.Equal(t, ref.CoreMO[p][q], so.Hp[2*p+1][2*q+1])
			assert.Zero(t, so.Hp[2*p][2*q+1], "no spin-flip one-electron elements")
			assert.Zero(t, so.Hp[2*p+1][2*q])
		}
	}
}

func TestSpinTilingSameSpinDiagonalPairVanishes(t *testing.T) {
	ref := toyReference(2, 2, 0.4, 19)
	so := ref.BuildSpinOrbitals()

	// <pp||pp> and <pq||pq> for p,q the two spins of one spatial orbital:
	// the Coulomb and exchange parts cancel for same-spin, same-spatial pairs
	for p := 0; p < so.NOrb; p++ {
		assert.Zero(t, so.DoubleBar[p][p][p][p])
	}
	assert.InDelta(t, ref.ERI[0][0][0][0], so.DoubleBar[0][1][0][1], 1e-14,
		"opposite spins keep the bare Coulomb integral")
}
