// reference.go --  This file is part of goCI project.
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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Reference carries the converged SCF data the correlation methods consume.
// All matrices and tensors are in the spatial MO basis; ERI is chemist
// notation (pq|rs). The SCF program itself is a separate collaborator: this
// package only reads its results.
type Reference struct {
	NElec           int
	NBasis          int
	Enuc            float64
	Escf            float64
	Converged       bool
	OrbitalEnergies []float64
	CoreMO          [][]float64
	ERI             [][][][]float64
	DipoleMO        [][][]float64 // 3 x NBasis x NBasis, optional
}

// Validate checks the reference before any post-SCF work starts.
func (ref *Reference) Validate() error {
	if !ref.Converged {
		return errors.Wrap(ErrNotConverged, "refusing post-SCF on an unconverged reference")
	}
	if ref.NBasis < 1 {
		return errors.Errorf("reference: invalid basis size %d", ref.NBasis)
	}
	if ref.NElec < 1 || ref.NElec > 2*ref.NBasis {
		return errors.Errorf("reference: %d electrons do not fit %d spatial orbitals", ref.NElec, ref.NBasis)
	}
	if len(ref.OrbitalEnergies) != ref.NBasis {
		return errors.Errorf("reference: %d orbital energies for %d basis functions", len(ref.OrbitalEnergies), ref.NBasis)
	}
	if len(ref.CoreMO) != ref.NBasis {
		return errors.Errorf("reference: core Hamiltonian dimension %d, want %d", len(ref.CoreMO), ref.NBasis)
	}
	if len(ref.ERI) != ref.NBasis {
		return errors.Errorf("reference: two-electron tensor dimension %d, want %d", len(ref.ERI), ref.NBasis)
	}
	return nil
}

// LoadReference reads an SCF dump directory:
//
//	scf.txt      key/value lines: nelec, nbasis, enuc, escf, converged
//	energies.txt orbital energies, one per line
//	core_mo.txt  MO core Hamiltonian matrix
//	eri_mo.txt   MO two-electron integrals as "p q r s value" lines
//	dipole_{x,y,z}.txt  optional MO dipole matrices
func LoadReference(dir string) (*Reference, error) {
	ref := &Reference{}

	lines, err := ReadFileLines(filepath.Join(dir, "scf.txt"))
	if err != nil {
		return nil, errors.Wrap(err, "reading scf.txt")
	}
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) < 2 {
			continue
		}
		key, val := strings.ToLower(words[0]), words[1]
		switch key {
		case "nelec":
			ref.NElec, err = strconv.Atoi(val)
		case "nbasis":
			ref.NBasis, err = strconv.Atoi(val)
		case "enuc":
			ref.Enuc, err = strconv.ParseFloat(val, 64)
		case "escf":
			ref.Escf, err = strconv.ParseFloat(val, 64)
		case "converged":
			ref.Converged, err = strconv.ParseBool(val)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "scf.txt: bad value for %s", key)
		}
	}

	eps, err := Slice2DFromTxtFile(filepath.Join(dir, "energies.txt"))
	if err != nil {
		return nil, errors.Wrap(err, "reading energies.txt")
	}
	for _, row := range eps {
		ref.OrbitalEnergies = append(ref.OrbitalEnergies, row...)
	}

	ref.CoreMO, err = Slice2DFromTxtFile(filepath.Join(dir, "core_mo.txt"))
	if err != nil {
		return nil, errors.Wrap(err, "reading core_mo.txt")
	}

	ref.ERI, err = Slice4DFromTxtFile(filepath.Join(dir, "eri_mo.txt"), ref.NBasis)
	if err != nil {
		return nil, errors.Wrap(err, "reading eri_mo.txt")
	}

	var dip [][][]float64
	for _, comp := range []string{"x", "y", "z"} {
		fname := filepath.Join(dir, "dipole_"+comp+".txt")
		m, derr := Slice2DFromTxtFile(fname)
		if derr != nil {
			dip = nil
			break
		}
		dip = append(dip, m)
	}
	ref.DipoleMO = dip

	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return ref, nil
}

// DumpReference writes ref in the layout LoadReference reads. The SCF side of
// the boundary uses the same helper, so round trips are exact to the printed
// precision.
func DumpReference(ref *Reference, dir string) error {
	var sb strings.Builder
	sb.WriteString("nelec " + strconv.Itoa(ref.NElec) + "\n")
	sb.WriteString("nbasis " + strconv.Itoa(ref.NBasis) + "\n")
	sb.WriteString("enuc " + strconv.FormatFloat(ref.Enuc, 'e', 14, 64) + "\n")
	sb.WriteString("escf " + strconv.FormatFloat(ref.Escf, 'e', 14, 64) + "\n")
	sb.WriteString("converged " + strconv.FormatBool(ref.Converged) + "\n")
	if err := writeTextFile(filepath.Join(dir, "scf.txt"), sb.String()); err != nil {
		return err
	}
	if err := TxtFileFrom2DSlice([][]float64{ref.OrbitalEnergies}, filepath.Join(dir, "energies.txt")); err != nil {
		return err
	}
	if err := TxtFileFrom2DSlice(ref.CoreMO, filepath.Join(dir, "core_mo.txt")); err != nil {
		return err
	}
	if err := TxtFileFrom4DSlice(ref.ERI, filepath.Join(dir, "eri_mo.txt")); err != nil {
		return err
	}
	if ref.DipoleMO != nil {
		for c, comp := range []string{"x", "y", "z"} {
			if err := TxtFileFrom2DSlice(ref.DipoleMO[c], filepath.Join(dir, "dipole_"+comp+".txt")); err != nil {
				return err
			}
		}
	}
	return nil
}
