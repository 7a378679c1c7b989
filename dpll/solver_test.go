package dpll

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// A test associates a CNF with the expected status.
type test struct {
	name     string
	cnf      [][]int
	expected Status
}

var tests = []test{
	{"single unit", [][]int{{1}}, Sat},
	{"unit chain", [][]int{{1}, {-1, 2}, {-2, 3}, {-3, 4}}, Sat},
	{"forced by unit", [][]int{{1, 2}, {1, -2}, {-2}}, Sat},
	{"two vars unsat", [][]int{{1, 2}, {-1, -2}, {1, -2}, {-1, 2}}, Unsat},
	{"pure literal", [][]int{{1, 2}, {1, 3}}, Sat},
	{"trivially unsat", [][]int{{1}, {-1}}, Unsat},
	{"three colors", [][]int{{1, 2, 3}, {4, 5, 6}, {-1, -4}, {-2, -5}, {-3, -6}, {-1, -3}, {-4, -6}}, Sat},
	{"pigeons", [][]int{{1, 2}, {3, 4}, {5, 6}, {-1, -3}, {-1, -5}, {-3, -5}, {-2, -4}, {-2, -6}, {-4, -6}}, Unsat},
	{"mixed", [][]int{{1}, {-2, 3}, {-2, 4}, {-5, 3}, {-5, 6}, {-7, 3}, {-7, 8}, {-9, 10}, {-9, 4}, {-1, 10}, {-1, 6}, {3, 10}, {-3, -10}, {4, 6, 8}}, Sat},
}

// satisfies reports whether every clause of cnf contains a literal made true
// by model (1-based variables).
func satisfies(cnf [][]int, model []bool) bool {
	for _, clause := range cnf {
		sat := false
		for _, lit := range clause {
			v := lit
			if v < 0 {
				v = -v
			}
			if model[v-1] == (lit > 0) {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

// bruteForceSat enumerates all assignments over nbVars variables.
func bruteForceSat(cnf [][]int, nbVars int) bool {
	model := make([]bool, nbVars)
	for mask := 0; mask < 1<<nbVars; mask++ {
		for i := range model {
			model[i] = mask&(1<<i) != 0
		}
		if satisfies(cnf, model) {
			return true
		}
	}
	return false
}

func runSolverTests(t *testing.T, mk func(*Formula) *Solver) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseSlice(tt.cnf)
			s := mk(f)
			status := s.Solve()
			require.Equal(t, tt.expected, status, "wrong status for %v", tt.cnf)
			if status == Sat {
				require.True(t, satisfies(tt.cnf, s.Model()), "model %v does not satisfy %v", s.Model(), tt.cnf)
			}
		})
	}
}

func TestSolverIndexed(t *testing.T) {
	runSolverTests(t, New)
}

func TestSolverFlat(t *testing.T) {
	runSolverTests(t, NewFlat)
}

func TestSingleUnitAssignment(t *testing.T) {
	s := New(ParseSlice([][]int{{1}}))
	require.Equal(t, Sat, s.Solve())
	require.Equal(t, map[int]bool{1: true}, s.Assignment())
}

func TestUnitThenForced(t *testing.T) {
	// The unit clause binds 2 to false, which reduces both remaining
	// clauses to {1}.
	s := New(ParseSlice([][]int{{1, 2}, {1, -2}, {-2}}))
	require.Equal(t, Sat, s.Solve())
	require.Equal(t, map[int]bool{1: true, 2: false}, s.Assignment())
	require.Zero(t, s.Stats.NbDecisions)
}

func TestPureLiteralNoBranching(t *testing.T) {
	// 1 is never negated: it must be bound to true without any decision.
	s := New(ParseSlice([][]int{{1, 2}, {1, 3}}))
	require.Equal(t, Sat, s.Solve())
	require.True(t, s.Assignment()[1])
	require.Zero(t, s.Stats.NbDecisions)
	require.NotZero(t, s.Stats.NbPures)
}

func TestUnsatNoModel(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {-1, -2}, {1, -2}, {-1, 2}}))
	require.Equal(t, Unsat, s.Solve())
	require.Panics(t, func() { s.Model() })
}

func TestNoClauses(t *testing.T) {
	// A formula without clauses is immediately satisfiable and every
	// variable takes the default binding.
	f := &Formula{NbVars: 3}
	for _, s := range []*Solver{New(f), NewFlat(f)} {
		require.Equal(t, Sat, s.Solve())
		require.Equal(t, []bool{true, true, true}, s.Model())
	}
}

func TestEmptyClause(t *testing.T) {
	f := &Formula{NbVars: 2, Clauses: [][]Lit{{IntToLit(1)}, {}}}
	for _, s := range []*Solver{New(f), NewFlat(f)} {
		require.Equal(t, Unsat, s.Solve())
	}
}

func TestCompletenessBruteForce(t *testing.T) {
	// Deterministic pseudo-random 3-SAT instances, small enough to check
	// against exhaustive enumeration.
	const nbVars = 6
	seed := uint64(42)
	next := func(n int) int {
		seed = seed*6364136223846793005 + 1442695040888963407
		return int((seed >> 33) % uint64(n))
	}
	for i := 0; i < 50; i++ {
		nbClauses := 8 + next(20)
		cnf := make([][]int, nbClauses)
		for j := range cnf {
			// One to three distinct variables per clause: no duplicate
			// literal, no tautology, units and binary clauses included so
			// that backtracking crosses pure-set updates.
			size := 1 + next(3)
			vars := map[int]bool{}
			for len(vars) < size {
				vars[1+next(nbVars)] = true
			}
			var clause []int
			for v := 1; v <= nbVars; v++ {
				if !vars[v] {
					continue
				}
				if next(2) == 0 {
					clause = append(clause, -v)
				} else {
					clause = append(clause, v)
				}
			}
			cnf[j] = clause
		}
		expected := Unsat
		if bruteForceSat(cnf, nbVars) {
			expected = Sat
		}
		s := New(ParseSlice(cnf))
		require.Equal(t, expected, s.Solve(), "wrong status for %v", cnf)
		if expected == Sat {
			model := s.Model()
			for len(model) < nbVars {
				model = append(model, true)
			}
			require.True(t, satisfies(cnf, model), "model %v does not satisfy %v", model, cnf)
		}
	}
}

// stuckPureState always reports a pure literal whose assertion fails.
// No well-formed state behaves like this; the engine must still terminate
// on it instead of recursing on an unchanged state.
type stuckPureState struct{}

func (stuckPureState) Assert(Lit) Status { return Unsat }

func (stuckPureState) Retract() {}

func (stuckPureState) Solved() bool { return false }

func (stuckPureState) Unit() (Lit, bool) { return 0, false }

func (stuckPureState) Pure() (Lit, bool) { return IntToLit(1), true }

func (stuckPureState) Branch() (Lit, bool) { return 0, false }

func (stuckPureState) Assignment() map[Var]bool { return nil }

func TestPureConflictFailsBranch(t *testing.T) {
	f := ParseSlice([][]int{{1}})
	s := NewWithState(f, stuckPureState{})
	require.Equal(t, Unsat, s.Solve())
	require.Equal(t, 1, s.Stats.NbConflicts)
}

func TestStop(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {-1, 2}}))
	s.Stop()
	require.Equal(t, Indet, s.Solve())
	require.Equal(t, Indet, s.Status())
}

func TestOutputModel(t *testing.T) {
	s := New(ParseSlice([][]int{{-1}, {2}}))
	require.Equal(t, Sat, s.Solve())
	var b strings.Builder
	s.OutputModel(&b)
	require.Equal(t, "s SATISFIABLE\nv -1 2 0\n", b.String())

	s = New(ParseSlice([][]int{{1}, {-1}}))
	require.Equal(t, Unsat, s.Solve())
	b.Reset()
	s.OutputModel(&b)
	require.Equal(t, "s UNSATISFIABLE\n", b.String())
}
