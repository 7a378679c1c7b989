package dpll

// The indexed state keeps, for every literal, the set of active clauses that
// still contain it. Asserting a literal deletes the clauses it satisfies,
// strips its negation from the others and maintains the unit and pure sets
// incrementally. Every mutation is recorded on a trail so that Retract can
// replay it in reverse; branch isolation costs one undo frame per assertion
// instead of a copy of the whole state.

type indexedState struct {
	nbVars int
	// Active clauses, by id. Satisfied clauses are deleted wholesale.
	clauses map[int][]Lit
	// For each literal, the ids of the active clauses containing it.
	occurs map[Lit]map[int]struct{}
	assign map[Var]bool
	units  map[int]struct{} // ids of active clauses of size 1
	pures  map[Lit]struct{} // literals whose negation occurs in no active clause
	trail  []indexedFrame
}

// An indexedFrame records everything one Assert changed, so that Retract can
// restore the previous state exactly.
type indexedFrame struct {
	v              Var
	removedClauses map[int][]Lit // Satisfied clauses, with the literals they held.
	removedLits    []litRemoval  // Falsified literals stripped from surviving clauses.
	addedUnits     []int
	removedUnits   []int
	addedPures     []Lit
	removedPures   []Lit
}

type litRemoval struct {
	id  int
	lit Lit
}

// NewIndexedState derives the root search state of f, with its occurrence
// index and its initial unit and pure sets.
func NewIndexedState(f *Formula) State {
	st := &indexedState{
		nbVars:  f.NbVars,
		clauses: make(map[int][]Lit, len(f.Clauses)),
		occurs:  make(map[Lit]map[int]struct{}),
		assign:  make(map[Var]bool),
		units:   make(map[int]struct{}),
		pures:   make(map[Lit]struct{}),
	}
	for id, clause := range f.Clauses {
		lits := make([]Lit, len(clause))
		copy(lits, clause)
		st.clauses[id] = lits
		for _, l := range lits {
			occ, ok := st.occurs[l]
			if !ok {
				occ = make(map[int]struct{})
				st.occurs[l] = occ
			}
			occ[id] = struct{}{}
		}
		if len(lits) == 1 {
			st.units[id] = struct{}{}
		}
	}
	for l := range st.occurs {
		if len(st.occurs[l.Negation()]) == 0 {
			st.pures[l] = struct{}{}
		}
	}
	return st
}

func (st *indexedState) Assert(l Lit) Status {
	neg := l.Negation()
	// A unit clause holding neg would become empty: fail before touching
	// anything, so the state is unchanged on contradiction.
	for id := range st.occurs[neg] {
		if len(st.clauses[id]) == 1 {
			return Unsat
		}
	}
	fr := indexedFrame{v: l.Var(), removedClauses: make(map[int][]Lit)}
	st.assign[l.Var()] = l.IsPositive()

	// Neither polarity can be pure once the variable is bound.
	for _, p := range [2]Lit{l, neg} {
		if _, ok := st.pures[p]; ok {
			delete(st.pures, p)
			fr.removedPures = append(fr.removedPures, p)
		}
	}

	// Clauses satisfied by l disappear, together with their index entries.
	satisfied := make([]int, 0, len(st.occurs[l]))
	for id := range st.occurs[l] {
		satisfied = append(satisfied, id)
	}
	for _, id := range satisfied {
		lits := st.clauses[id]
		fr.removedClauses[id] = lits
		delete(st.clauses, id)
		if _, ok := st.units[id]; ok {
			delete(st.units, id)
			fr.removedUnits = append(fr.removedUnits, id)
		}
		for _, l2 := range lits {
			occ := st.occurs[l2]
			delete(occ, id)
			if len(occ) > 0 {
				continue
			}
			delete(st.occurs, l2)
			if _, ok := st.pures[l2]; ok {
				delete(st.pures, l2)
				// A literal marked pure earlier in this same frame must
				// net out to no delta at all, or Retract would resurrect
				// an entry the parent state never had.
				if !dropLit(&fr.addedPures, l2) {
					fr.removedPures = append(fr.removedPures, l2)
				}
			}
			// The last occurrence of l2 is gone: its negation, if still
			// present, cannot be falsified anymore.
			n2 := l2.Negation()
			if l2 != l && len(st.occurs[n2]) > 0 {
				if _, ok := st.pures[n2]; !ok {
					st.pures[n2] = struct{}{}
					fr.addedPures = append(fr.addedPures, n2)
				}
			}
		}
	}

	// neg is falsified: strip it from every clause still holding it.
	falsified := make([]int, 0, len(st.occurs[neg]))
	for id := range st.occurs[neg] {
		falsified = append(falsified, id)
	}
	for _, id := range falsified {
		lits := st.clauses[id]
		for i, l2 := range lits {
			if l2 == neg {
				lits[i] = lits[len(lits)-1]
				lits = lits[:len(lits)-1]
				break
			}
		}
		st.clauses[id] = lits
		fr.removedLits = append(fr.removedLits, litRemoval{id: id, lit: neg})
		if len(lits) == 1 {
			st.units[id] = struct{}{}
			fr.addedUnits = append(fr.addedUnits, id)
		}
	}
	delete(st.occurs, neg)

	st.trail = append(st.trail, fr)
	if len(st.clauses) == 0 {
		return Sat
	}
	return Indet
}

func (st *indexedState) Retract() {
	if len(st.trail) == 0 {
		panic("nothing to retract")
	}
	fr := st.trail[len(st.trail)-1]
	st.trail = st.trail[:len(st.trail)-1]
	for i := len(fr.removedLits) - 1; i >= 0; i-- {
		rm := fr.removedLits[i]
		st.clauses[rm.id] = append(st.clauses[rm.id], rm.lit)
		st.addOccurrence(rm.lit, rm.id)
	}
	for id, lits := range fr.removedClauses {
		st.clauses[id] = lits
		for _, l := range lits {
			st.addOccurrence(l, id)
		}
	}
	for _, id := range fr.addedUnits {
		delete(st.units, id)
	}
	for _, id := range fr.removedUnits {
		st.units[id] = struct{}{}
	}
	for _, p := range fr.addedPures {
		delete(st.pures, p)
	}
	for _, p := range fr.removedPures {
		st.pures[p] = struct{}{}
	}
	delete(st.assign, fr.v)
}

// dropLit removes l from lits if present and reports whether it did.
func dropLit(lits *[]Lit, l Lit) bool {
	for i, l2 := range *lits {
		if l2 == l {
			(*lits)[i] = (*lits)[len(*lits)-1]
			*lits = (*lits)[:len(*lits)-1]
			return true
		}
	}
	return false
}

func (st *indexedState) addOccurrence(l Lit, id int) {
	occ, ok := st.occurs[l]
	if !ok {
		occ = make(map[int]struct{})
		st.occurs[l] = occ
	}
	occ[id] = struct{}{}
}

func (st *indexedState) Solved() bool {
	return len(st.clauses) == 0
}

func (st *indexedState) Unit() (Lit, bool) {
	best := -1
	for id := range st.units {
		if best == -1 || id < best {
			best = id
		}
	}
	if best == -1 {
		return 0, false
	}
	return st.clauses[best][0], true
}

func (st *indexedState) Pure() (Lit, bool) {
	best := Lit(-1)
	for l := range st.pures {
		if best == -1 || l < best {
			best = l
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func (st *indexedState) Branch() (Lit, bool) {
	for v := Var(0); v < Var(st.nbVars); v++ {
		if _, ok := st.assign[v]; ok {
			continue
		}
		pos := v.Lit()
		if len(st.occurs[pos]) > 0 {
			return pos, true
		}
		if len(st.occurs[pos.Negation()]) > 0 {
			return pos.Negation(), true
		}
	}
	return 0, false
}

func (st *indexedState) Assignment() map[Var]bool {
	res := make(map[Var]bool, len(st.assign))
	for v, b := range st.assign {
		res[v] = b
	}
	return res
}
