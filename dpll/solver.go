package dpll

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Stats are statistics about the resolution of the problem.
// They are provided for information purpose only.
type Stats struct {
	NbDecisions int // How many times the solver branched on a variable
	NbUnits     int // How many unit clauses were propagated
	NbPures     int // How many pure literals were eliminated
	NbConflicts int // How many times an assertion emptied a clause
	MaxDepth    int // Deepest point of the search, in assigned variables
}

// A Solver solves a given Formula with the DPLL procedure: unit propagation
// and pure-literal elimination as long as they apply, then a binary branch on
// the lowest eligible variable, backtracking chronologically on conflict.
type Solver struct {
	Stats  Stats
	nbVars int
	status Status
	state  State
	log    *logrus.Logger
	stop   atomic.Bool
}

// New returns a solver for the given formula, backed by the indexed
// incremental search state.
func New(f *Formula) *Solver {
	return NewWithState(f, NewIndexedState(f))
}

// NewFlat returns a solver backed by the re-simplifying search state.
// It agrees with the indexed solver on every answer; only the order in which
// the search tree is explored may differ.
func NewFlat(f *Formula) *Solver {
	return NewWithState(f, NewFlatState(f))
}

// NewWithState returns a solver for f exploring its search tree through st.
// st must be the root state of f.
func NewWithState(f *Formula, st State) *Solver {
	s := &Solver{
		nbVars: f.NbVars,
		status: Indet,
		state:  st,
		log:    discardLogger(),
	}
	for _, clause := range f.Clauses {
		if len(clause) == 0 {
			s.status = Unsat
			break
		}
	}
	return s
}

// SetLogger makes the solver trace its search on l, at debug level.
func (s *Solver) SetLogger(l *logrus.Logger) {
	if l != nil {
		s.log = l
	}
}

// Stop makes the current and any future Solve call return Indet as soon as
// possible. It is safe to call from another goroutine.
func (s *Solver) Stop() {
	s.stop.Store(true)
}

// Solve runs the search and returns Sat, Unsat, or Indet if the solver was
// stopped before an answer was reached.
func (s *Solver) Solve() Status {
	if s.status == Unsat {
		return Unsat
	}
	s.status = Indet
	switch {
	case s.search(0):
		s.status = Sat
	case s.stop.Load():
		s.status = Indet
	default:
		s.status = Unsat
	}
	s.log.WithFields(logrus.Fields{
		"status":    s.status,
		"decisions": s.Stats.NbDecisions,
		"units":     s.Stats.NbUnits,
		"pures":     s.Stats.NbPures,
		"conflicts": s.Stats.NbConflicts,
	}).Debug("search finished")
	return s.status
}

// search explores the subtree rooted at the current state, depth-first.
// It returns true iff a satisfying assignment was found; on return the state
// either holds that assignment or is exactly as it was on entry.
func (s *Solver) search(depth int) bool {
	if s.stop.Load() {
		return false
	}
	if depth > s.Stats.MaxDepth {
		s.Stats.MaxDepth = depth
	}
	if s.state.Solved() {
		return true
	}
	if l, ok := s.state.Pure(); ok {
		s.Stats.NbPures++
		s.log.WithField("lit", l.Int()).Debug("pure literal")
		if s.state.Assert(l) == Unsat {
			// A sound pure set never contradicts. If the state reports one
			// anyway, failing the branch keeps the search terminating.
			s.Stats.NbConflicts++
			return false
		}
		if s.search(depth + 1) {
			return true
		}
		s.state.Retract()
		return false
	}
	if l, ok := s.state.Unit(); ok {
		s.Stats.NbUnits++
		s.log.WithField("lit", l.Int()).Debug("unit propagation")
		if s.state.Assert(l) == Unsat {
			s.Stats.NbConflicts++
			return false
		}
		if s.search(depth + 1) {
			return true
		}
		s.state.Retract()
		return false
	}
	l, ok := s.state.Branch()
	if !ok {
		// No active clause mentions an unassigned variable; with clauses
		// remaining this is unreachable.
		return s.state.Solved()
	}
	s.Stats.NbDecisions++
	s.log.WithField("lit", l.Int()).Debug("branching")
	for _, lit := range [2]Lit{l, l.Negation()} {
		if s.state.Assert(lit) == Unsat {
			s.Stats.NbConflicts++
			continue
		}
		if s.search(depth + 1) {
			return true
		}
		s.state.Retract()
	}
	return false
}

// Model returns a binding for every variable of the formula.
// Variables never touched by propagation, elimination or branching are bound
// to true: any value would do, true is the documented, deterministic choice.
// It panics if the problem was not proven Sat.
func (s *Solver) Model() []bool {
	if s.status != Sat {
		panic("cannot call Model() from a non-Sat solver")
	}
	res := make([]bool, s.nbVars)
	for i := range res {
		res[i] = true
	}
	for v, b := range s.state.Assignment() {
		res[v] = b
	}
	return res
}

// Assignment returns the model as a map from CNF variables (1-based) to
// their binding, with the same completion policy as Model.
func (s *Solver) Assignment() map[int]bool {
	model := s.Model()
	res := make(map[int]bool, len(model))
	for i, b := range model {
		res[i+1] = b
	}
	return res
}

// Status returns the current status of the problem: Indet until Solve is
// called, then whatever Solve returned.
func (s *Solver) Status() Status {
	return s.status
}

// OutputModel writes the result on w using DIMACS output conventions.
func (s *Solver) OutputModel(w io.Writer) {
	switch s.status {
	case Sat:
		fmt.Fprintf(w, "s SATISFIABLE\nv ")
		for i, b := range s.Model() {
			if b {
				fmt.Fprintf(w, "%d ", i+1)
			} else {
				fmt.Fprintf(w, "%d ", -i-1)
			}
		}
		fmt.Fprintf(w, "0\n")
	case Unsat:
		fmt.Fprintf(w, "s UNSATISFIABLE\n")
	default:
		fmt.Fprintf(w, "s INDETERMINATE\n")
	}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
