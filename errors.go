// errors.go --  This file is part of goCI project.
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
)

var (
	// ErrSpaceTooLarge is returned when a determinant space exceeds the
	// configured ceiling. Matrix construction cost is quadratic in the space
	// size, so the calculation is refused before any element is evaluated.
	ErrSpaceTooLarge = errors.New("configuration space too large")

	// ErrNotConverged is returned when the upstream SCF reference is not
	// converged. Post-SCF methods built on an unconverged reference are
	// meaningless.
	ErrNotConverged = errors.New("SCF reference not converged")

	// ErrDavidsonNotConverged is returned when the iterative eigensolver
	// exhausts its iteration cap before the requested roots are stationary.
	ErrDavidsonNotConverged = errors.New("davidson iterations not converged")
)
