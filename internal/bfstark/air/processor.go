package air

import "github.com/vybium/bfstark-vm/internal/bfstark/core"

// processorBoundaryConstraints returns the Processor table's first-row
// constraints: the VM always starts at cycle 0, instruction pointer 0,
// memory pointer 0, reading an as-yet-unwritten (hence zero) tape cell.
// The four extension accumulators start at their fold identities: 1 for
// the running permutation products, 0 for the running evaluation sums —
// each column's first real contribution is then folded in by the
// transition constraint from row 0 to row 1, not baked into the boundary.
func processorBoundaryConstraints() []Constraint {
	zero := func(name string, get func(ProcessorState) *core.ExtFieldElement) Constraint {
		return Constraint{Name: name, Table: "Processor", Kind: Boundary, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				return get(curr.Processor)
			}}
	}
	one := func(name string, get func(ProcessorState) *core.ExtFieldElement) Constraint {
		return Constraint{Name: name, Table: "Processor", Kind: Boundary, Degree: 1,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				return get(curr.Processor).Sub(core.ExtOne(field))
			}}
	}
	return []Constraint{
		zero("processor.cycle0", func(p ProcessorState) *core.ExtFieldElement { return p.Cycle }),
		zero("processor.ip0", func(p ProcessorState) *core.ExtFieldElement { return p.Ip }),
		zero("processor.mp0", func(p ProcessorState) *core.ExtFieldElement { return p.Mp }),
		zero("processor.memval0", func(p ProcessorState) *core.ExtFieldElement { return p.MemVal }),
		one("processor.instruction_permutation0", func(p ProcessorState) *core.ExtFieldElement { return p.InstructionPermutation }),
		one("processor.memory_permutation0", func(p ProcessorState) *core.ExtFieldElement { return p.MemoryPermutation }),
		zero("processor.input_evaluation0", func(p ProcessorState) *core.ExtFieldElement { return p.InputEvaluation }),
		zero("processor.output_evaluation0", func(p ProcessorState) *core.ExtFieldElement { return p.OutputEvaluation }),
	}
}

// processorSlots returns the per-opcode (ip, mp, mem_val)
// transition triples of spec §4.5.1, each still unweighted by its
// deselector — processorTransitionConstraints combines them.
type slotTriple struct {
	op           int64
	ipSlot       EvalFunc
	mpSlot       EvalFunc
	memValSlot   EvalFunc
}

func linear(f func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement) EvalFunc {
	return func(field *core.Field, curr, next TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
		return f(curr.Processor, next.Processor, field)
	}
}

func processorSlots() []slotTriple {
	ipAdvanceOne := func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement {
		return n.Ip.Sub(p.Ip).Sub(core.ExtOne(field))
	}
	mpUnchanged := func(p, n ProcessorState, _ *core.Field) *core.ExtFieldElement {
		return n.Mp.Sub(p.Mp)
	}
	memValUnchanged := func(p, n ProcessorState, _ *core.Field) *core.ExtFieldElement {
		return n.MemVal.Sub(p.MemVal)
	}

	return []slotTriple{
		{op: '>',
			ipSlot: linear(ipAdvanceOne),
			mpSlot: linear(func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement {
				return n.Mp.Sub(p.Mp).Sub(core.ExtOne(field))
			}),
			memValSlot: nil,
		},
		{op: '<',
			ipSlot: linear(ipAdvanceOne),
			mpSlot: linear(func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement {
				return n.Mp.Sub(p.Mp).Add(core.ExtOne(field))
			}),
			memValSlot: nil,
		},
		{op: '+',
			ipSlot: linear(ipAdvanceOne),
			mpSlot: linear(mpUnchanged),
			memValSlot: linear(func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement {
				return n.MemVal.Sub(p.MemVal).Sub(core.ExtOne(field))
			}),
		},
		{op: '-',
			ipSlot: linear(ipAdvanceOne),
			mpSlot: linear(mpUnchanged),
			memValSlot: linear(func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement {
				return n.MemVal.Sub(p.MemVal).Add(core.ExtOne(field))
			}),
		},
		{op: '.',
			ipSlot:     linear(ipAdvanceOne),
			mpSlot:     linear(mpUnchanged),
			memValSlot: nil,
		},
		{op: ',',
			ipSlot:     linear(ipAdvanceOne),
			mpSlot:     linear(mpUnchanged),
			memValSlot: linear(memValUnchanged),
		},
		{op: '[',
			ipSlot: linear(func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement {
				two := field.NewElementFromInt64(2)
				term1 := p.MemVal.Mul(n.Ip.Sub(p.Ip).Sub(core.ExtFromBase(two)))
				mvInvTerm := p.MemVal.Mul(p.MemValInv).Sub(core.ExtOne(field))
				term2 := mvInvTerm.Mul(n.Ip.Sub(p.NextInstr))
				return term1.Add(term2)
			}),
			mpSlot:     linear(mpUnchanged),
			memValSlot: linear(memValUnchanged),
		},
		{op: ']',
			ipSlot: linear(func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement {
				two := field.NewElementFromInt64(2)
				mvInvTerm := p.MemVal.Mul(p.MemValInv).Sub(core.ExtOne(field))
				term1 := mvInvTerm.Mul(n.Ip.Sub(p.Ip).Sub(core.ExtFromBase(two)))
				term2 := p.MemVal.Mul(n.Ip.Sub(p.NextInstr))
				return term1.Add(term2)
			}),
			mpSlot:     linear(mpUnchanged),
			memValSlot: linear(memValUnchanged),
		},
	}
}

// processorTransitionConstraints builds the deselector-weighted per-opcode
// constraints of spec §4.5.1, the cycle-independent constraints, and the
// four extension-column recurrences of spec §4.5.4 that live on the
// Processor table.
func processorTransitionConstraints() []Constraint {
	var constraints []Constraint

	for _, slot := range processorSlots() {
		op := slot.op
		if slot.ipSlot != nil {
			ipSlot := slot.ipSlot
			constraints = append(constraints, Constraint{
				Name: "processor.transition.ip." + string(rune(op)), Table: "Processor", Kind: Transition, Degree: 10,
				Eval: func(field *core.Field, curr, next TraceState, ch Challenges, hints Hints) *core.ExtFieldElement {
					return Deselector(field, op, curr.Processor.CurrInstr).Mul(ipSlot(field, curr, next, ch, hints))
				},
			})
		}
		if slot.mpSlot != nil {
			mpSlot := slot.mpSlot
			constraints = append(constraints, Constraint{
				Name: "processor.transition.mp." + string(rune(op)), Table: "Processor", Kind: Transition, Degree: 9,
				Eval: func(field *core.Field, curr, next TraceState, ch Challenges, hints Hints) *core.ExtFieldElement {
					return Deselector(field, op, curr.Processor.CurrInstr).Mul(mpSlot(field, curr, next, ch, hints))
				},
			})
		}
		if slot.memValSlot != nil {
			memValSlot := slot.memValSlot
			constraints = append(constraints, Constraint{
				Name: "processor.transition.memval." + string(rune(op)), Table: "Processor", Kind: Transition, Degree: 9,
				Eval: func(field *core.Field, curr, next TraceState, ch Challenges, hints Hints) *core.ExtFieldElement {
					return Deselector(field, op, curr.Processor.CurrInstr).Mul(memValSlot(field, curr, next, ch, hints))
				},
			})
		}
	}

	constraints = append(constraints,
		Constraint{Name: "processor.cycle_advances", Table: "Processor", Kind: Transition, Degree: 1,
			Eval: linear(func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement {
				return n.Cycle.Sub(p.Cycle).Sub(core.ExtOne(field))
			})},
		Constraint{Name: "processor.memval_inv_consistent_memval", Table: "Processor", Kind: Transition, Degree: 3,
			Eval: linear(func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement {
				return p.MemVal.Mul(p.MemVal.Mul(p.MemValInv).Sub(core.ExtOne(field)))
			})},
		Constraint{Name: "processor.memval_inv_consistent_inv", Table: "Processor", Kind: Transition, Degree: 3,
			Eval: linear(func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement {
				return p.MemValInv.Mul(p.MemVal.Mul(p.MemValInv).Sub(core.ExtOne(field)))
			})},
		Constraint{Name: "processor.dummy_boolean", Table: "Processor", Kind: Transition, Degree: 2,
			Eval: linear(func(p, n ProcessorState, field *core.Field) *core.ExtFieldElement {
				return p.Dummy.Mul(p.Dummy.Sub(core.ExtOne(field)))
			})},
		Constraint{Name: "processor.dummy_opcode_coherence", Table: "Processor", Kind: Transition, Degree: 8,
			Eval: func(field *core.Field, curr, _ TraceState, _ Challenges, _ Hints) *core.ExtFieldElement {
				p := curr.Processor
				left := InstrZerofier(field, p.CurrInstr).Mul(p.Dummy.Sub(core.ExtOne(field)))
				right := p.CurrInstr.Mul(p.Dummy)
				return left.Add(right)
			}},
	)

	constraints = append(constraints, processorExtensionConstraints()...)
	return constraints
}

// processorExtensionConstraints implements the four Processor-side
// extension-column recurrences of spec §4.5.4: the instruction and memory
// permutation running products, and the input/output evaluation running
// sums.
func processorExtensionConstraints() []Constraint {
	return []Constraint{
		{Name: "processor.instruction_permutation.transition", Table: "Processor", Kind: Transition, Degree: 3,
			Eval: func(field *core.Field, curr, next TraceState, ch Challenges, _ Hints) *core.ExtFieldElement {
				p, n := curr.Processor, next.Processor
				factor := ch.Alpha.Sub(ch.A.Mul(p.Ip)).Sub(ch.B.Mul(p.CurrInstr)).Sub(ch.C.Mul(p.NextInstr))
				return n.InstructionPermutation.Sub(p.InstructionPermutation.Mul(factor))
			}},
		{Name: "processor.memory_permutation.transition", Table: "Processor", Kind: Transition, Degree: 3,
			Eval: func(field *core.Field, curr, next TraceState, ch Challenges, _ Hints) *core.ExtFieldElement {
				p, n := curr.Processor, next.Processor
				factor := ch.Beta.Sub(ch.D.Mul(p.Cycle)).Sub(ch.E.Mul(p.Mp)).Sub(ch.F.Mul(p.MemVal))
				return n.MemoryPermutation.Sub(p.MemoryPermutation.Mul(factor))
			}},
		{Name: "processor.input_evaluation.transition", Table: "Processor", Kind: Transition, Degree: 9,
			Eval: func(field *core.Field, curr, next TraceState, ch Challenges, _ Hints) *core.ExtFieldElement {
				p, n := curr.Processor, next.Processor
				updated := ch.Gamma.Mul(p.InputEvaluation).Add(n.MemVal)
				commaWeight := opcodeNormalizationConstant(field, ',')
				selected := Deselector(field, ',', p.CurrInstr)
				lhs := n.InputEvaluation.Sub(p.InputEvaluation).Mul(commaWeight)
				rhs := selected.Mul(updated.Sub(p.InputEvaluation))
				return lhs.Sub(rhs)
			}},
		{Name: "processor.output_evaluation.transition", Table: "Processor", Kind: Transition, Degree: 9,
			Eval: func(field *core.Field, curr, next TraceState, ch Challenges, _ Hints) *core.ExtFieldElement {
				p, n := curr.Processor, next.Processor
				updated := ch.Delta.Mul(p.OutputEvaluation).Add(p.MemVal)
				dotWeight := opcodeNormalizationConstant(field, '.')
				selected := Deselector(field, '.', p.CurrInstr)
				lhs := n.OutputEvaluation.Sub(p.OutputEvaluation).Mul(dotWeight)
				rhs := selected.Mul(updated.Sub(p.OutputEvaluation))
				return lhs.Sub(rhs)
			}},
	}
}

// ProcessorConstraints returns every boundary and transition constraint
// declared over the Processor table.
func ProcessorConstraints() []Constraint {
	var out []Constraint
	out = append(out, processorBoundaryConstraints()...)
	out = append(out, processorTransitionConstraints()...)
	return out
}
