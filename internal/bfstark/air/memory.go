package air

import "github.com/vybium/bfstark-vm/internal/bfstark/core"

// MemoryConstraints returns every boundary and transition constraint
// declared over the Memory table (spec §4.5.2, and the Memory side of
// §4.5.4's permutation argument).
//
// Each prose clause of §4.5.2 ("if mp advances then mv'=0", "if Dummy=1
// then mp'=mp and mv'=mv", "if mp'=mp then cycle'=cycle+1") is encoded as
// its own implication-style constraint: a selector factor (itself zero
// exactly on the rows the clause doesn't apply to) times the difference
// the clause forces to zero. See DESIGN.md's Open Question decision for
// why this module resolves the "multiply vs. add disjuncts" ambiguity by
// keeping clauses as separately-gated products rather than one additively
// combined polynomial.
func MemoryConstraints() []Constraint {
	return []Constraint{
		{Name: "memory.permutation0", Table: "Memory", Kind: Boundary, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				return curr.Memory.Permutation.Sub(core.ExtOne(field))
			}},

		{Name: "memory.mp_delta_boolean", Table: "Memory", Kind: Transition, Degree: 2,
			Eval: func(field *core.Field, curr, next TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				delta := next.Memory.Mp.Sub(curr.Memory.Mp)
				return delta.Mul(delta.Sub(core.ExtOne(field)))
			}},
		{Name: "memory.mp_advances_resets_memval", Table: "Memory", Kind: Transition, Degree: 2,
			Eval: func(field *core.Field, curr, next TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				mpDelta := next.Memory.Mp.Sub(curr.Memory.Mp)
				return mpDelta.Mul(next.Memory.MemVal)
			}},
		{Name: "memory.dummy_boolean", Table: "Memory", Kind: Transition, Degree: 2,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				d := curr.Memory.Dummy
				return d.Mul(d.Sub(core.ExtOne(field)))
			}},
		{Name: "memory.dummy_freezes_mp", Table: "Memory", Kind: Transition, Degree: 2,
			Eval: func(field *core.Field, curr, next TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				c, n := curr.Memory, next.Memory
				return c.Dummy.Mul(n.Mp.Sub(c.Mp))
			}},
		{Name: "memory.dummy_freezes_memval", Table: "Memory", Kind: Transition, Degree: 2,
			Eval: func(field *core.Field, curr, next TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				c, n := curr.Memory, next.Memory
				return c.Dummy.Mul(n.MemVal.Sub(c.MemVal))
			}},
		{Name: "memory.mp_stays_implies_cycle_advances", Table: "Memory", Kind: Transition, Degree: 2,
			Eval: func(field *core.Field, curr, next TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				c, n := curr.Memory, next.Memory
				mpDelta := n.Mp.Sub(c.Mp)
				mpStays := core.ExtOne(field).Sub(mpDelta)
				cycleAdvance := n.Cycle.Sub(c.Cycle).Sub(core.ExtOne(field))
				return mpStays.Mul(cycleAdvance)
			}},

		{Name: "memory.permutation.transition", Table: "Memory", Kind: Transition, Degree: 3,
			Eval: func(field *core.Field, curr, next TraceState, ch Challenges, _ Hints) *core.ExtFieldElement {
				c, n := curr.Memory, next.Memory
				factor := ch.Beta.Sub(ch.D.Mul(c.Cycle)).Sub(ch.E.Mul(c.Mp)).Sub(ch.F.Mul(c.MemVal))
				return n.Permutation.Sub(c.Permutation.Mul(factor))
			}},
	}
}
