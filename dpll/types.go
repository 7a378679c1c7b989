package dpll

// Basic types and constants used throughout the package.

// Status is the status of a problem, or of a single assertion on a search
// state, at a given moment.
type Status byte

const (
	// Indet means the problem is not proven sat or unsat yet.
	Indet = Status(iota)
	// Sat means the problem is satisfied.
	Sat
	// Unsat means the problem, or the assertion that was attempted, is
	// unsatisfiable.
	Unsat
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		panic("invalid status")
	}
}

// A Var numbers a variable from 0, so the CNF variable 1 is Var 0.
type Var int32

// A Lit packs a signed CNF literal into a non-negative value: the variable
// index shifted left once, with the low bit carrying the sign.
// The CNF literal -3 becomes 2*(3-1) + 1 = 5.
type Lit int32

// IntToLit converts a CNF literal to a Lit.
func IntToLit(i int) Lit {
	if i < 0 {
		return Lit(2*(-i-1) + 1)
	}
	return Lit(2 * (i - 1))
}

// IntToVar converts a CNF variable to a Var.
func IntToVar(i int) Var {
	return Var(i - 1)
}

// Lit returns the positive literal of v.
func (v Var) Lit() Lit {
	return Lit(v * 2)
}

// Int returns the equivalent CNF variable.
func (v Var) Int() int {
	return int(v) + 1
}

// Var returns the variable of l.
func (l Lit) Var() Var {
	return Var(l / 2)
}

// Int returns the equivalent CNF literal.
func (l Lit) Int() int {
	res := int(l/2 + 1)
	if l&1 == 1 {
		return -res
	}
	return res
}

// IsPositive reports whether l is the unnegated literal of its variable.
func (l Lit) IsPositive() bool {
	return l%2 == 0
}

// Negation returns the literal of the same variable with the opposite sign.
func (l Lit) Negation() Lit {
	return l ^ 1
}
