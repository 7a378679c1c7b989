package dpll

// A State is a formula under a partial assignment. It is the structure the
// search engine manipulates: asserting a literal reduces the formula
// (satisfied clauses disappear, falsified literals are stripped), and
// retracting undoes the most recent assertion so that the two alternatives
// of a branch never observe each other's mutations.
//
// Two implementations are provided: an indexed one that maintains an
// occurrence index incrementally with an undo trail, and a flat one that
// re-derives the reduced clause list at every step. They are interchangeable
// and must agree on every answer.
type State interface {
	// Assert makes l true in the state.
	// It returns Unsat if doing so would empty a clause; in that case the
	// state is left unchanged. Otherwise it returns Sat if no active clause
	// remains, or Indet if the search must go on.
	Assert(l Lit) Status

	// Retract undoes the most recent successful Assert.
	// It panics if nothing has been asserted.
	Retract()

	// Solved reports whether no active clause remains.
	Solved() bool

	// Unit returns the sole literal of an active unit clause, if any.
	// The choice is deterministic: the unit clause with the lowest id
	// (indexed form) or the first one in clause order (flat form).
	Unit() (Lit, bool)

	// Pure returns a literal whose negation occurs in no active clause, if
	// any. The lowest-encoded pure literal is returned. Variables with no
	// occurrence at all are not considered pure; they are left to the
	// completion policy of the engine.
	Pure() (Lit, bool)

	// Branch returns the literal to branch on when no inference applies:
	// the lowest unassigned variable still occurring in an active clause
	// (indexed form) or the first literal of the first active clause (flat
	// form). It returns false if every active clause is gone.
	Branch() (Lit, bool)

	// Assignment returns a copy of the accumulated partial assignment.
	Assignment() map[Var]bool
}
