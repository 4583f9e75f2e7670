// Package air declares the Brainfuck AIR: boundary, transition, and
// terminal polynomial constraints over the five execution-trace tables,
// plus the four cross-table permutation/evaluation accumulators (spec
// §4.5). Constraints are evaluated numerically at a single out-of-domain
// point, the way a STARK verifier consumes them — not manipulated as
// symbolic polynomials, since constructing and committing to those is the
// prover's job (spec §1, external collaborator).
package air

import (
	"fmt"

	"github.com/vybium/bfstark-vm/internal/bfstark/core"
)

// ProcessorState is one row's worth of Processor-table column values,
// lifted into the extension field for OOD evaluation.
type ProcessorState struct {
	Cycle, Ip, CurrInstr, NextInstr, Mp, MemVal, MemValInv, Dummy *core.ExtFieldElement
	InstructionPermutation, MemoryPermutation                    *core.ExtFieldElement
	InputEvaluation, OutputEvaluation                            *core.ExtFieldElement
}

// InstructionState is one row's worth of Instruction-table column values.
type InstructionState struct {
	Ip, CurrInstr, NextInstr                *core.ExtFieldElement
	ProcessorPermutation, ProgramEvaluation *core.ExtFieldElement
}

// MemoryState is one row's worth of Memory-table column values.
type MemoryState struct {
	Cycle, Mp, MemVal, Dummy *core.ExtFieldElement
	Permutation              *core.ExtFieldElement
}

// IOState is one row's worth of an Input or Output table's column values.
type IOState struct {
	Value      *core.ExtFieldElement
	Evaluation *core.ExtFieldElement
}

// TraceState bundles one row (across all five tables) of column values, as
// needed to evaluate every constraint at a single row index (or, for the
// verifier, at the single out-of-domain point z).
type TraceState struct {
	Processor   ProcessorState
	Instruction InstructionState
	Memory      MemoryState
	Input       IOState
	Output      IOState
}

// BaseColumns returns every non-accumulator column across all five tables,
// in a fixed order shared by the OOD trace states and the master base
// table's row layout (so a query row and an OOD row index identically).
func (s TraceState) BaseColumns() []*core.ExtFieldElement {
	p := s.Processor
	i := s.Instruction
	m := s.Memory
	return []*core.ExtFieldElement{
		p.Cycle, p.Ip, p.CurrInstr, p.NextInstr, p.Mp, p.MemVal, p.MemValInv, p.Dummy,
		i.Ip, i.CurrInstr, i.NextInstr,
		m.Cycle, m.Mp, m.MemVal, m.Dummy,
		s.Input.Value,
		s.Output.Value,
	}
}

// ExtColumns returns every extension (running-accumulator) column across
// all five tables, in a fixed order shared by the OOD trace states and the
// master extension table's row layout.
func (s TraceState) ExtColumns() []*core.ExtFieldElement {
	p := s.Processor
	i := s.Instruction
	return []*core.ExtFieldElement{
		p.InstructionPermutation, p.MemoryPermutation, p.InputEvaluation, p.OutputEvaluation,
		i.ProcessorPermutation, i.ProgramEvaluation,
		s.Memory.Permutation,
		s.Input.Evaluation,
		s.Output.Evaluation,
	}
}

// TraceStateFromColumns inflates the flat column order BaseColumns/
// ExtColumns define back into a TraceState, the way the wire format's
// row-major ood_trace_states arrays (spec §6) are rebuilt into named
// fields for constraint evaluation. Panics if the slice lengths don't
// match the fixed 17-base/9-ext column layout, since a mismatch here
// means the proof was built against a different AIR entirely.
func TraceStateFromColumns(base, ext []*core.ExtFieldElement) TraceState {
	if len(base) != 17 {
		panic(fmt.Sprintf("expected 17 base columns, got %d", len(base)))
	}
	if len(ext) != 9 {
		panic(fmt.Sprintf("expected 9 extension columns, got %d", len(ext)))
	}
	return TraceState{
		Processor: ProcessorState{
			Cycle: base[0], Ip: base[1], CurrInstr: base[2], NextInstr: base[3],
			Mp: base[4], MemVal: base[5], MemValInv: base[6], Dummy: base[7],
			InstructionPermutation: ext[0], MemoryPermutation: ext[1],
			InputEvaluation: ext[2], OutputEvaluation: ext[3],
		},
		Instruction: InstructionState{
			Ip: base[8], CurrInstr: base[9], NextInstr: base[10],
			ProcessorPermutation: ext[4], ProgramEvaluation: ext[5],
		},
		Memory: MemoryState{
			Cycle: base[11], Mp: base[12], MemVal: base[13], Dummy: base[14],
			Permutation: ext[6],
		},
		Input:  IOState{Value: base[15], Evaluation: ext[7]},
		Output: IOState{Value: base[16], Evaluation: ext[8]},
	}
}

// Challenges are the eleven public-coin-drawn field elements used to fold
// trace rows into the four running accumulators (spec §3, §4.5.4).
type Challenges struct {
	Alpha, Beta, Gamma, Delta, Eta *core.ExtFieldElement
	A, B, C, D, E, F               *core.ExtFieldElement
}

// Hints are the five field elements derived from the public inputs (spec
// §3): the three terminal values the evaluation/permutation arguments must
// match, plus the two trailing-factor corrections for short tapes.
type Hints struct {
	Input, Output, Instruction      *core.ExtFieldElement
	InputOffset, OutputOffset       *core.ExtFieldElement
}
