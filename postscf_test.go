// postscf_test.go --  This file is part of goCI project.
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

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostSCFRejectsUnconvergedReference(t *testing.T) {
	ref := toyReference(2, 2, 0.1, 1)
	ref.Converged = false

	_, err := NewPostSCF(ref)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConverged))
}

func TestMP2SpinOrbitalEqualsSpatial(t *testing.T) {
	ref := toyReference(4, 4, 0.15, 21)
	ps, err := NewPostSCF(ref)
	require.NoError(t, err)

	assert.InDelta(t, ps.MP2(false), ps.MP2(true), 1e-10)
}

func TestFCIMinimalModel(t *testing.T) {
	ref := minimalModelReference(-1.2, -0.3, 0.65, 0.71, 0.18)
	ps, err := NewPostSCF(ref)
	require.NoError(t, err)

	res, err := ps.FCI()
	require.NoError(t, err)
	assert.Equal(t, 6, res.NDets, "C(4,2) determinants")

	// the iterative solver must agree with a dense diagonalization
	dets := FCIDeterminants(ref.NElec, ps.SO.NOrb)
	H := ps.SO.BuildFullHamiltonian(dets)
	want := lowestEigsSym(H, 1)[0] + ref.Enuc

	assert.InDelta(t, want, res.Etot, 1e-8)
	assert.InDelta(t, res.Etot-ref.Escf, res.Ecorr, 1e-12)
	assert.Len(t, res.Energies, 3)
}

func TestCISDEqualsFCIForTwoElectrons(t *testing.T) {
	// with two electrons every excitation is at most a double
	ref := toyReference(3, 2, 0.2, 33)
	ps, err := NewPostSCF(ref)
	require.NoError(t, err)

	cisd, err := ps.CISD()
	require.NoError(t, err)
	fci, err := ps.FCI()
	require.NoError(t, err)

	assert.Equal(t, fci.NDets, cisd.NDets)
	assert.InDelta(t, fci.Etot, cisd.Etot, 1e-9)
}

func TestFCITooLargeFailsBeforeAssembly(t *testing.T) {
	// M=60, N=30: C(60,30) is astronomically past the ceiling. The spin
	// tensors are left empty on purpose: the size check must fire before
	// anything touches them.
	ref := &Reference{NElec: 30, NBasis: 30, Converged: true}
	ps := &PostSCF{
		Ref:        ref,
		SO:         &SpinOrbitals{NOrb: 60},
		DetCeiling: DefaultDetCeiling,
		Roots:      1,
		Davidson:   DefaultDavidsonOptions(),
	}

	_, err := ps.FCI()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpaceTooLarge))
}

func TestCISDCeiling(t *testing.T) {
	ref := toyReference(3, 2, 0.1, 2)
	ps, err := NewPostSCF(ref)
	require.NoError(t, err)
	ps.DetCeiling = 3

	_, err = ps.CISD()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpaceTooLarge))
}

func TestCISZeroCoupling(t *testing.T) {
	ref := toyReference(2, 2, 0, 4)
	ref.ERI = zeros4D(2)
	ps, err := NewPostSCF(ref)
	require.NoError(t, err)

	res, err := ps.CIS()
	require.NoError(t, err)
	require.Equal(t, 4, res.NOV)

	gap := (ref.OrbitalEnergies[1] - ref.OrbitalEnergies[0]) * hartreeToEV
	for state := 0; state < res.NOV; state++ {
		assert.InDelta(t, gap, res.Omega[state], 1e-10)
		assert.Zero(t, res.Oscillator[state], "no dipoles, no oscillator strength")
	}
}

func TestCISOscillatorStrengths(t *testing.T) {
	ref := toyReference(2, 2, 0, 4)
	ref.ERI = zeros4D(2)
	dip := make([][][]float64, 3)
	for c := range dip {
		dip[c] = zeros2D(2)
		dip[c][0][1] = 0.4
		dip[c][1][0] = 0.4
	}
	ref.DipoleMO = dip

	ps, err := NewPostSCF(ref)
	require.NoError(t, err)
	res, err := ps.CIS()
	require.NoError(t, err)

	total := 0.0
	for _, f := range res.Oscillator {
		assert.GreaterOrEqual(t, f, 0.0)
		total += f
	}
	assert.Greater(t, total, 0.0, "transition dipoles must produce intensity somewhere")
}

func TestTDHFZeroCouplingMatchesCIS(t *testing.T) {
	ref := toyReference(2, 2, 0, 6)
	ref.ERI = zeros4D(2)
	ps, err := NewPostSCF(ref)
	require.NoError(t, err)

	cis, err := ps.CIS()
	require.NoError(t, err)

	for _, alg := range []string{"hermitian", "reduced", "full"} {
		omega, err := ps.TDHF(alg)
		require.NoError(t, err, alg)
		require.Len(t, omega, cis.NOV, alg)
		for i := range omega {
			assert.InDeltaf(t, cis.Omega[i], omega[i], 1e-6, "alg %s state %d", alg, i)
		}
	}
}

func TestTDHFVariantsAgree(t *testing.T) {
	ref := toyReference(3, 2, 0.02, 8)
	ps, err := NewPostSCF(ref)
	require.NoError(t, err)

	herm, err := ps.TDHF("hermitian")
	require.NoError(t, err)
	red, err := ps.TDHF("reduced")
	require.NoError(t, err)

	require.Equal(t, len(herm), len(red))
	for i := range herm {
		assert.InDelta(t, herm[i], red[i], 1e-6)
	}

	_, err = ps.TDHF("nosuch")
	require.Error(t, err)
}
