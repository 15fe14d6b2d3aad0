// main.go --  This file is part of goCI project.
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
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
)

var (
	WarningLogger *log.Logger
	InfoLogger    *log.Logger
	ErrorLogger   *log.Logger
	OutputLogger  *log.Logger
)

func initLog(fname string) {
	file, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal(err)
	}

	InfoLogger = log.New(file, "INFO: ", log.Ldate|log.Ltime)
	WarningLogger = log.New(file, "WARNING: ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(file, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	OutputLogger = log.New(file, "", 0)
}

func appInfo() {
	OutputLogger.Println("\ngoCI -- determinant CI and response methods on a converged SCF reference\n" +
		"MP2 | CISD | FCI | CIS | TDHF")
}

func printOutputDelimiter() {
	OutputLogger.Println(strings.Repeat("-", 70))
}

// Config collects everything the input file can set.
type Config struct {
	RefDir     string
	Tasks      []string
	Roots      int
	Ceiling    int
	DavTol     float64
	DavMaxIter int
	TDHFAlg    string
}

func processInput(data []string) Config {
	cfg := Config{Roots: 3, Ceiling: DefaultDetCeiling, TDHFAlg: "hermitian"}
	for i := 0; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) == 0 {
			continue
		}
		switch strings.ToLower(words[0]) {
		case "reference":
			end := findBlockEnd(i, data, "Reference")
			if end > i+1 {
				cfg.RefDir = strings.TrimSpace(data[i+1])
			}
			OutputLogger.Print("Parsing input. Reference block found: ", cfg.RefDir)
		case "tasks":
			end := findBlockEnd(i, data, "Tasks")
			for j := i + 1; j < end; j++ {
				w := strings.Fields(data[j])
				if len(w) > 0 {
					cfg.Tasks = append(cfg.Tasks, strings.ToLower(w[0]))
				}
			}
			OutputLogger.Print("Parsing input. Tasks block found: ", strings.Join(cfg.Tasks, " "))
		case "nprocs":
			nprocs, _ := strconv.Atoi(words[1])
			runtime.GOMAXPROCS(nprocs)
			OutputLogger.Print("Parsing input. Number of threads set to " + words[1] + ".")
		case "roots":
			cfg.Roots, _ = strconv.Atoi(words[1])
		case "ceiling":
			cfg.Ceiling, _ = strconv.Atoi(words[1])
		case "davtol":
			cfg.DavTol, _ = strconv.ParseFloat(words[1], 64)
		case "davmaxiter":
			cfg.DavMaxIter, _ = strconv.Atoi(words[1])
		case "tdhfalg":
			cfg.TDHFAlg = strings.ToLower(words[1])
		}
	}
	if cfg.RefDir == "" {
		ErrorLogger.Fatal("Parsing input. No Reference found.")
	}
	if len(cfg.Tasks) == 0 {
		OutputLogger.Println("Parsing input. No Tasks found. Running default task: MP2.")
		cfg.Tasks = []string{"mp2"}
	}
	return cfg
}

func findBlockEnd(n int, data []string, bname string) int {
	for i := n; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) > 0 {
			if strings.ToLower(words[0]) == "end" {
				return i
			}
		}
	}
	ErrorLogger.Fatal("No end of block " + bname + ".")
	return 0
}

func runTasks(ps *PostSCF, cfg Config) {
	for _, task := range cfg.Tasks {
		printOutputDelimiter()
		switch task {
		case "mp2":
			emp2 := ps.MP2(true)
			OutputLogger.Printf("E(MP2) = %16.10f a.u.", emp2)
			fmt.Printf("E(MP2) = %16.10f a.u.\n", emp2)
		case "mp2spatial":
			emp2 := ps.MP2(false)
			OutputLogger.Printf("E(MP2, spatial) = %16.10f a.u.", emp2)
			fmt.Printf("E(MP2, spatial) = %16.10f a.u.\n", emp2)
		case "cisd":
			res, err := ps.CISD()
			if err != nil {
				ErrorLogger.Fatal("CISD failed: ", err)
			}
			reportCI(res, ps)
		case "fci":
			res, err := ps.FCI()
			if err != nil {
				ErrorLogger.Fatal("FCI failed: ", err)
			}
			reportCI(res, ps)
		case "cis":
			res, err := ps.CIS()
			if err != nil {
				ErrorLogger.Fatal("CIS failed: ", err)
			}
			OutputLogger.Println("\nConfiguration Interaction Singles (CIS)")
			OutputLogger.Println("# Singles: ", res.NOV)
			for state := 0; state < min(res.NOV, 30); state++ {
				OutputLogger.Printf("CIS state %2d (eV): %12.4f (f=%6.4f)",
					state+1, res.Omega[state], res.Oscillator[state])
			}
		case "tdhf":
			omega, err := ps.TDHF(cfg.TDHFAlg)
			if err != nil {
				ErrorLogger.Fatal("TDHF failed: ", err)
			}
			OutputLogger.Println("\nTime-dependent Hartree-Fock (TDHF)")
			OutputLogger.Println("Algorithm: ", cfg.TDHFAlg)
			for state := 0; state < min(len(omega), 10); state++ {
				OutputLogger.Printf("TDHF state %2d (eV): %12.4f", state+1, omega[state])
			}
		default:
			WarningLogger.Println("Unknown task skipped: ", task)
		}
	}
}

func reportCI(res *CIResult, ps *PostSCF) {
	OutputLogger.Println("\n" + res.Method)
	OutputLogger.Println("# Determinants: ", res.NDets)
	OutputLogger.Printf("SCF energy:  %14.8f a.u.", ps.Ref.Escf)
	OutputLogger.Printf("%s corr:   %14.8f a.u.", res.Method, res.Ecorr)
	OutputLogger.Printf("%s energy: %14.8f a.u.", res.Method, res.Etot)
	for i, e := range res.Energies {
		OutputLogger.Printf("Root %2d: %16.10f a.u.", i+1, e)
	}
	fmt.Printf("%s energy = %16.10f a.u.\n", res.Method, res.Etot)
}

func main() {
	runtime.GOMAXPROCS(1)

	var inpFname, outFname string
	if len(os.Args) > 1 {
		inpFname = os.Args[1]
		split_inpFname := strings.Split(inpFname, ".")
		fExt := split_inpFname[len(split_inpFname)-1]
		outFname = inpFname[0:(len(inpFname)-len(fExt))] + "out"
		fmt.Println("Output file: ", outFname)
	} else {
		log.Fatal("No input file.")
	}

	initLog(outFname)

	InfoLogger.Println("Starting goCI...")
	appInfo()

	OutputLogger.Println("Input file content:")
	printOutputDelimiter()
	inpData, err := ReadFileLines(inpFname)
	if err != nil {
		ErrorLogger.Fatal("Cannot read input file: ", err)
	}
	for _, i := range inpData {
		OutputLogger.Println(i)
	}
	printOutputDelimiter()

	cfg := processInput(inpData)

	ref, err := LoadReference(cfg.RefDir)
	if err != nil {
		ErrorLogger.Fatal("Cannot load SCF reference: ", err)
	}
	OutputLogger.Println("Reference loaded. nelec =", ref.NElec, ", nbasis =", ref.NBasis)
	OutputLogger.Println("Nuclei Repulsion Energy: ", ref.Enuc, " a.u.")
	OutputLogger.Println("SCF total energy: ", ref.Escf, " a.u.")

	ps, err := NewPostSCF(ref)
	if err != nil {
		ErrorLogger.Fatal("Cannot start post-SCF: ", err)
	}
	ps.Roots = cfg.Roots
	ps.DetCeiling = cfg.Ceiling
	if cfg.DavTol > 0 {
		ps.Davidson.Tol = cfg.DavTol
	}
	if cfg.DavMaxIter > 0 {
		ps.Davidson.MaxIter = cfg.DavMaxIter
	}

	runTasks(ps, cfg)

	printOutputDelimiter()
	MyMemDebug()

	InfoLogger.Println("Exiting goCI...")
	fmt.Println("goCI done.")
}
