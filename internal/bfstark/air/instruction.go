package air

import "github.com/vybium/bfstark-vm/internal/bfstark/core"

// InstructionConstraints returns every boundary and transition constraint
// declared over the Instruction table (spec §4.5.3, and the Instruction
// side of §4.5.4's permutation/evaluation arguments).
func InstructionConstraints() []Constraint {
	return []Constraint{
		{Name: "instruction.ip0", Table: "Instruction", Kind: Boundary, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				return curr.Instruction.Ip
			}},
		{Name: "instruction.processor_permutation0", Table: "Instruction", Kind: Boundary, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				return curr.Instruction.ProcessorPermutation.Sub(core.ExtOne(field))
			}},
		// ProgramEvaluation seeds with the first row's own (ip, curr_instr,
		// next_instr) term rather than zero, since the transition below only
		// folds in a row's term when ip advances INTO it — row 0's term
		// would otherwise never enter the accumulator at all.
		{Name: "instruction.program_evaluation0", Table: "Instruction", Kind: Boundary, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, ch Challenges, _ Hints) *core.ExtFieldElement {
				i := curr.Instruction
				seed := ch.A.Mul(i.Ip).Add(ch.B.Mul(i.CurrInstr)).Add(ch.C.Mul(i.NextInstr))
				return i.ProgramEvaluation.Sub(seed)
			}},

		{Name: "instruction.ip_delta_boolean", Table: "Instruction", Kind: Transition, Degree: 2,
			Eval: func(field *core.Field, curr, next TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				delta := next.Instruction.Ip.Sub(curr.Instruction.Ip)
				return delta.Mul(delta.Sub(core.ExtOne(field)))
			}},
		{Name: "instruction.unchanged_instr_when_ip_unchanged", Table: "Instruction", Kind: Transition, Degree: 3,
			Eval: func(field *core.Field, curr, next TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				c, n := curr.Instruction, next.Instruction
				ipUnchanged := core.ExtOne(field).Sub(n.Ip.Sub(c.Ip))
				currDiff := n.CurrInstr.Sub(c.CurrInstr)
				nextDiff := n.NextInstr.Sub(c.NextInstr)
				return ipUnchanged.Mul(currDiff.Add(nextDiff))
			}},

		{Name: "instruction.processor_permutation.transition", Table: "Instruction", Kind: Transition, Degree: 3,
			Eval: func(field *core.Field, curr, next TraceState, ch Challenges, _ Hints) *core.ExtFieldElement {
				c, n := curr.Instruction, next.Instruction
				factor := ch.Alpha.Sub(ch.A.Mul(c.Ip)).Sub(ch.B.Mul(c.CurrInstr)).Sub(ch.C.Mul(c.NextInstr))
				return n.ProcessorPermutation.Sub(c.ProcessorPermutation.Mul(factor))
			}},
		{Name: "instruction.program_evaluation.transition", Table: "Instruction", Kind: Transition, Degree: 3,
			Eval: func(field *core.Field, curr, next TraceState, ch Challenges, _ Hints) *core.ExtFieldElement {
				c, n := curr.Instruction, next.Instruction
				ipAdvanced := n.Ip.Sub(c.Ip)
				updated := ch.Eta.Mul(c.ProgramEvaluation).Add(ch.A.Mul(n.Ip)).Add(ch.B.Mul(n.CurrInstr)).Add(ch.C.Mul(n.NextInstr))
				ipUnchangedCoeff := core.ExtOne(field).Sub(ipAdvanced)
				lhs := ipUnchangedCoeff.Mul(n.ProgramEvaluation.Sub(c.ProgramEvaluation))
				rhs := ipAdvanced.Mul(n.ProgramEvaluation.Sub(updated))
				return lhs.Add(rhs)
			}},
	}
}
