package dpll

import (
	"fmt"
	"strings"
)

// A Formula is a CNF problem: a number of variables and a list of clauses
// over them. Variables are numbered 1..NbVars. Each clause is a disjunction
// of literals; the clause list is their conjunction.
//
// A Formula is never modified by the solver: search states derive their own
// structures from it and clauses can safely be shared between a Formula and
// the code that built it.
type Formula struct {
	NbVars  int     // Total nb of vars
	Clauses [][]Lit // List of clauses. An empty clause makes the formula trivially unsat.
}

// CNF returns a DIMACS CNF representation of the formula.
func (f *Formula) CNF() string {
	var b strings.Builder
	fmt.Fprintf(&b, "p cnf %d %d\n", f.NbVars, len(f.Clauses))
	for _, clause := range f.Clauses {
		for _, lit := range clause {
			fmt.Fprintf(&b, "%d ", lit.Int())
		}
		b.WriteString("0\n")
	}
	return b.String()
}
