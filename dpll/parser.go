package dpll

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseSlice parses a slice of slices of CNF literals and returns the
// equivalent Formula. The argument is supposed to be a well-formed CNF:
// a zero literal makes the function panic.
func ParseSlice(cnf [][]int) *Formula {
	var f Formula
	for _, line := range cnf {
		lits := make([]Lit, len(line))
		for j, val := range line {
			if val == 0 {
				panic("null literal in clause")
			}
			lits[j] = IntToLit(val)
			if v := lits[j].Var().Int(); v > f.NbVars {
				f.NbVars = v
			}
		}
		f.Clauses = append(f.Clauses, lits)
	}
	return &f
}

// ParseCNF parses a DIMACS CNF stream and returns the corresponding Formula.
// Comment lines start with 'c', the header is "p cnf <nbVars> <nbClauses>",
// and each clause is a sequence of literals terminated by 0, possibly
// spanning several lines.
func ParseCNF(r io.Reader) (*Formula, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var (
		f          Formula
		clause     []Lit
		headerSeen bool
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == 'c' {
			continue
		}
		if line[0] == 'p' {
			if headerSeen {
				return nil, errors.Errorf("duplicate header %q", line)
			}
			nbVars, nbClauses, err := parseHeader(line)
			if err != nil {
				return nil, errors.Wrap(err, "cannot parse CNF header")
			}
			f.NbVars = nbVars
			f.Clauses = make([][]Lit, 0, nbClauses)
			headerSeen = true
			continue
		}
		if !headerSeen {
			return nil, errors.Errorf("clause %q found before header", line)
		}
		for _, field := range strings.Fields(line) {
			val, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid literal %q", field)
			}
			if val == 0 {
				f.Clauses = append(f.Clauses, clause)
				clause = nil
				continue
			}
			if val > f.NbVars || -val > f.NbVars {
				return nil, errors.Errorf("invalid literal %d for problem with %d vars only", val, f.NbVars)
			}
			clause = append(clause, IntToLit(val))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read CNF stream")
	}
	if !headerSeen {
		return nil, errors.New("no header found in CNF stream")
	}
	if len(clause) != 0 {
		return nil, errors.New("unfinished clause while EOF found")
	}
	return &f, nil
}

func parseHeader(line string) (nbVars, nbClauses int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
		return 0, 0, errors.Errorf("invalid syntax %q in header", line)
	}
	nbVars, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, errors.Errorf("nbvars not an int : %q", fields[2])
	}
	nbClauses, err = strconv.Atoi(fields[3])
	if err != nil {
		return 0, 0, errors.Errorf("nbclauses not an int : %q", fields[3])
	}
	return nbVars, nbClauses, nil
}
