package air

import "github.com/vybium/bfstark-vm/internal/bfstark/core"

// InputConstraints returns the Input table's constraints: its Evaluation
// column folds every row's value under Gamma (spec §4.5.4 describes the
// Processor-side mirror of this same running sum; the Input table side
// simply replays it over its own, shorter row sequence).
func InputConstraints() []Constraint {
	return []Constraint{
		{Name: "input.evaluation0", Table: "Input", Kind: Boundary, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				return curr.Input.Evaluation.Sub(curr.Input.Value)
			}},
		{Name: "input.evaluation.transition", Table: "Input", Kind: Transition, Degree: 2,
			Eval: func(field *core.Field, curr, next TraceState, ch Challenges, _ Hints) *core.ExtFieldElement {
				updated := ch.Gamma.Mul(curr.Input.Evaluation).Add(next.Input.Value)
				return next.Input.Evaluation.Sub(updated)
			}},
	}
}

// OutputConstraints returns the Output table's constraints, mirroring
// InputConstraints with the Delta challenge.
func OutputConstraints() []Constraint {
	return []Constraint{
		{Name: "output.evaluation0", Table: "Output", Kind: Boundary, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				return curr.Output.Evaluation.Sub(curr.Output.Value)
			}},
		{Name: "output.evaluation.transition", Table: "Output", Kind: Transition, Degree: 2,
			Eval: func(field *core.Field, curr, next TraceState, ch Challenges, _ Hints) *core.ExtFieldElement {
				updated := ch.Delta.Mul(curr.Output.Evaluation).Add(next.Output.Value)
				return next.Output.Evaluation.Sub(updated)
			}},
	}
}
