package dpll

// The flat state carries no index: it is just the reduced clause list under
// the accumulated assignment. Asserting a literal derives a fresh list from
// the current one; the parent list is pushed on a snapshot stack so that
// Retract restores it and the second alternative of a branch always reduces
// from the same parent list as the first. Units and pures are found by
// scanning on demand. Strictly more work per node than the indexed form,
// much less machinery.

type flatState struct {
	nbVars  int
	reduced [][]Lit
	assign  map[Var]bool
	snaps   []flatSnapshot
}

type flatSnapshot struct {
	v       Var
	reduced [][]Lit
}

// NewFlatState derives the root search state of f, copying its clause list.
func NewFlatState(f *Formula) State {
	reduced := make([][]Lit, len(f.Clauses))
	for i, clause := range f.Clauses {
		lits := make([]Lit, len(clause))
		copy(lits, clause)
		reduced[i] = lits
	}
	return &flatState{
		nbVars:  f.NbVars,
		reduced: reduced,
		assign:  make(map[Var]bool),
	}
}

func (st *flatState) Assert(l Lit) Status {
	neg := l.Negation()
	next := make([][]Lit, 0, len(st.reduced))
	for _, clause := range st.reduced {
		if containsLit(clause, l) {
			continue // Satisfied, drop it.
		}
		if !containsLit(clause, neg) {
			next = append(next, clause)
			continue
		}
		if len(clause) == 1 {
			// Reducing would empty the clause. The state is untouched:
			// next is discarded.
			return Unsat
		}
		kept := make([]Lit, 0, len(clause)-1)
		for _, l2 := range clause {
			if l2 != neg {
				kept = append(kept, l2)
			}
		}
		next = append(next, kept)
	}
	st.snaps = append(st.snaps, flatSnapshot{v: l.Var(), reduced: st.reduced})
	st.reduced = next
	st.assign[l.Var()] = l.IsPositive()
	if len(next) == 0 {
		return Sat
	}
	return Indet
}

func (st *flatState) Retract() {
	if len(st.snaps) == 0 {
		panic("nothing to retract")
	}
	snap := st.snaps[len(st.snaps)-1]
	st.snaps = st.snaps[:len(st.snaps)-1]
	st.reduced = snap.reduced
	delete(st.assign, snap.v)
}

func (st *flatState) Solved() bool {
	return len(st.reduced) == 0
}

func (st *flatState) Unit() (Lit, bool) {
	for _, clause := range st.reduced {
		if len(clause) == 1 {
			return clause[0], true
		}
	}
	return 0, false
}

func (st *flatState) Pure() (Lit, bool) {
	seen := make(map[Lit]struct{})
	for _, clause := range st.reduced {
		for _, l := range clause {
			seen[l] = struct{}{}
		}
	}
	best := Lit(-1)
	for l := range seen {
		if _, ok := seen[l.Negation()]; ok {
			continue
		}
		if best == -1 || l < best {
			best = l
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func (st *flatState) Branch() (Lit, bool) {
	for _, clause := range st.reduced {
		if len(clause) > 0 {
			return clause[0], true
		}
	}
	return 0, false
}

func (st *flatState) Assignment() map[Var]bool {
	res := make(map[Var]bool, len(st.assign))
	for v, b := range st.assign {
		res[v] = b
	}
	return res
}

func containsLit(clause []Lit, l Lit) bool {
	for _, l2 := range clause {
		if l2 == l {
			return true
		}
	}
	return false
}
