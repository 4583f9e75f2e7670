package air

import "github.com/vybium/bfstark-vm/internal/bfstark/core"

// Kind distinguishes the three constraint classes spec §4.5 defines.
type Kind int

const (
	Boundary Kind = iota
	Transition
	Terminal
)

func (k Kind) String() string {
	switch k {
	case Boundary:
		return "boundary"
	case Transition:
		return "transition"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// EvalFunc evaluates one constraint at a row (curr) and, for transition
// constraints, its successor (next), given the drawn challenges and hints.
// A satisfied constraint evaluates to zero.
type EvalFunc func(field *core.Field, curr, next TraceState, ch Challenges, hints Hints) *core.ExtFieldElement

// Constraint is one named polynomial constraint, tagged with its table,
// kind, and a degree bound used by the verifier's OOD degree-adjustment
// arithmetic (spec §4.7 step 6).
type Constraint struct {
	Name   string
	Table  string
	Kind   Kind
	Degree int
	Eval   EvalFunc
}
