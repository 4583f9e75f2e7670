package air

import "github.com/vybium/bfstark-vm/internal/bfstark/core"

// TerminalConstraints returns the cross-table terminal constraints (spec
// §4.5.4's closing paragraph): equalities that must hold only at the trace's
// final row, tying each permutation argument's two independently-accumulated
// sides together and tying each evaluation argument to its public hint.
//
// Unlike the per-table boundary/transition constraints, a terminal
// constraint reads more than one table's column at the same row, which
// TraceState already bundles together; next is unused (terminal checks
// only the last row, there is no row after it).
func TerminalConstraints() []Constraint {
	return []Constraint{
		{Name: "terminal.instruction_permutation", Table: "Processor/Instruction", Kind: Terminal, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				return curr.Processor.InstructionPermutation.Sub(curr.Instruction.ProcessorPermutation)
			}},
		{Name: "terminal.memory_permutation", Table: "Processor/Memory", Kind: Terminal, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				return curr.Processor.MemoryPermutation.Sub(curr.Memory.Permutation)
			}},
		{Name: "terminal.input_evaluation", Table: "Processor", Kind: Terminal, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, hints Hints) *core.ExtFieldElement {
				return curr.Processor.InputEvaluation.Sub(hints.Input)
			}},
		{Name: "terminal.output_evaluation", Table: "Processor", Kind: Terminal, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, hints Hints) *core.ExtFieldElement {
				return curr.Processor.OutputEvaluation.Sub(hints.Output)
			}},
		{Name: "terminal.program_evaluation", Table: "Instruction", Kind: Terminal, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, hints Hints) *core.ExtFieldElement {
				return curr.Instruction.ProgramEvaluation.Sub(hints.Instruction)
			}},
		{Name: "terminal.input_table_evaluation", Table: "Input", Kind: Terminal, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, hints Hints) *core.ExtFieldElement {
				return curr.Input.Evaluation.Sub(hints.Input.Mul(hints.InputOffset))
			}},
		{Name: "terminal.output_table_evaluation", Table: "Output", Kind: Terminal, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, hints Hints) *core.ExtFieldElement {
				return curr.Output.Evaluation.Sub(hints.Output.Mul(hints.OutputOffset))
			}},
	}
}
