// helper.go --  This file is part of goCI project.
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
	"bufio"
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func ReadFileLines(fname string) ([]string, error) {
	var result []string
	var err error

	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	err = scanner.Err()

	return result, err
}

func TxtFileFrom2DSlice(data [][]float64, fname string) error {
	var ftext string
	for i := 0; i < len(data); i++ {
		for j := 0; j < len(data[i]); j++ {
			ftext += fmt.Sprintf("%22.14e", data[i][j])
		}
		ftext += "\n"
	}
	return os.WriteFile(fname, []byte(ftext), 0644)
}

func Slice2DFromTxtFile(fname string) ([][]float64, error) {
	lines, err := ReadFileLines(fname)
	if err != nil {
		return nil, err
	}
	var data [][]float64
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		row := make([]float64, len(words))
		for i, w := range words {
			row[i], err = strconv.ParseFloat(w, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "bad matrix entry in %s", fname)
			}
		}
		data = append(data, row)
	}
	return data, nil
}

// TxtFileFrom4DSlice writes a 4-index tensor as "p q r s value" lines,
// skipping zero entries.
func TxtFileFrom4DSlice(data [][][][]float64, fname string) error {
	var sb strings.Builder
	for p := range data {
		for q := range data[p] {
			for r := range data[p][q] {
				for s, v := range data[p][q][r] {
					if v == 0 {
						continue
					}
					fmt.Fprintf(&sb, "%d %d %d %d %22.14e\n", p, q, r, s, v)
				}
			}
		}
	}
	return os.WriteFile(fname, []byte(sb.String()), 0644)
}

// Slice4DFromTxtFile reads a dim^4 tensor written by TxtFileFrom4DSlice.
func Slice4DFromTxtFile(fname string, dim int) ([][][][]float64, error) {
	lines, err := ReadFileLines(fname)
	if err != nil {
		return nil, err
	}
	data := zeros4D(dim)
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		if len(words) != 5 {
			return nil, errors.Errorf("bad tensor line in %s: %q", fname, line)
		}
		var idx [4]int
		for i := 0; i < 4; i++ {
			n, err := strconv.Atoi(words[i])
			if err != nil || n < 0 || n >= dim {
				return nil, errors.Errorf("bad tensor index in %s: %q", fname, line)
			}
			idx[i] = n
		}
		v, err := strconv.ParseFloat(words[4], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad tensor value in %s", fname)
		}
		data[idx[0]][idx[1]][idx[2]][idx[3]] = v
	}
	return data, nil
}

func writeTextFile(fname, text string) error {
	return os.WriteFile(fname, []byte(text), 0644)
}

func flatten(arr [][]float64) []float64 {
	dim := len(arr)
	res := make([]float64, dim*dim)
	for i := range arr {
		for j := range arr[i] {
			res[i*dim+j] = arr[i][j]
		}
	}
	return res
}

func PrintMat(M [][]float64) {
	aaa := mat.NewDense(len(M), len(M), flatten(M))
	PrintDense(aaa)
}

func PrintDense(D *mat.Dense) {
	fa := mat.Formatted(D, mat.Prefix("    "), mat.Squeeze())
	fmt.Printf("    %.8f\n", fa)
}

// MatrixSqrtSym returns the symmetric square root of a symmetric
// positive-semidefinite matrix via eigendecomposition.
func MatrixSqrtSym(S mat.Symmetric) (*mat.SymDense, error) {
	n := S.SymmetricDim()
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(S, true); !ok {
		return nil, errors.New("matrix square root: eigendecomposition failed")
	}
	vals := eigsym.Values(nil)
	var ev mat.Dense
	eigsym.VectorsTo(&ev)

	res := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := 0.0
			for l := 0; l < n; l++ {
				if vals[l] < 0 {
					if vals[l] < -1e-10 {
						return nil, errors.Errorf("matrix square root: negative eigenvalue %g", vals[l])
					}
					continue
				}
				sum += ev.At(i, l) * math.Sqrt(vals[l]) * ev.At(j, l)
			}
			res.SetSym(i, j, sum)
		}
	}
	return res, nil
}

func MyMemDebug() {
	var memStats runtime.MemStats

	runtime.ReadMemStats(&memStats)

	fmt.Printf("Alloc: %d bytes\n", memStats.Alloc)
	fmt.Printf("TotalAlloc: %d bytes\n", memStats.TotalAlloc)
	fmt.Printf("HeapAlloc: %d bytes\n", memStats.HeapAlloc)
	fmt.Printf("HeapSys: %d bytes\n", memStats.HeapSys)
}
