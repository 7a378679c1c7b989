/*
Package dpll decides the satisfiability of propositional formulas in
conjunctive normal form with the classical Davis-Putnam-Logemann-Loveland
backtracking procedure, and produces a satisfying assignment when one exists.

A problem can be described in several ways:

1. parse a DIMACS stream (io.Reader). If the io.Reader produces the following
content:

	p cnf 3 3
	1 2 0
	-1 2 0
	-2 3 0

the programmer can create the Formula by doing:

	f, err := dpll.ParseCNF(r)

2. create the equivalent list of lists of literals:

	f := dpll.ParseSlice([][]int{{1, 2}, {-1, 2}, {-2, 3}})

Solving is then:

	s := dpll.New(f)
	if s.Solve() == dpll.Sat {
		model := s.Model()
		...
	}

The engine applies pure-literal elimination and unit propagation at every
node of the search tree, and branches on a deterministically chosen variable
when neither rule applies. It does not learn clauses, restart, or jump back
more than one level at a time: it is a plain DPLL solver, written for
clarity, not a CDCL one.

Two search state representations are provided behind the State interface: an
indexed one (the default, see New) maintaining a literal-to-clauses index
with an undo trail, and a flat one (see NewFlat) re-deriving the reduced
clause list at every step. Both give the same answers; the flat form mostly
serves as an oracle for testing the indexed one.

Variables that the search never had to bind are reported as true in the
model.
*/
package dpll
