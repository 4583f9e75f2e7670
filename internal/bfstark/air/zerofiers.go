package air

import "github.com/vybium/bfstark-vm/internal/bfstark/core"

// opcodeValues mirrors vm.AllOpcodes without importing the vm package (air
// depends only on core, keeping the vm -> air -> protocols layering
// acyclic); the eight ASCII codepoints are a closed, fixed set (spec §3).
var opcodeValues = [8]int64{'>', '<', '+', '-', '.', ',', '[', ']'}

// InstrZerofier is ∏_{op ∈ Opcodes} (x − op): zero iff x is a valid opcode
// (spec §4.5). It is used to gate padding rows, whose CurrInstr = 0 is not
// a valid opcode, so the zerofier is nonzero there.
func InstrZerofier(field *core.Field, x *core.ExtFieldElement) *core.ExtFieldElement {
	result := core.ExtOne(field)
	for _, op := range opcodeValues {
		opElem := core.ExtFromBase(field.NewElementFromInt64(op))
		result = result.Mul(x.Sub(opElem))
	}
	return result
}

// IfNotInstr is ∏_{other ∈ Opcodes \ {op}} (x − other): zero when x equals
// any opcode other than op, nonzero (and proportional) when x = op.
func IfNotInstr(field *core.Field, op int64, x *core.ExtFieldElement) *core.ExtFieldElement {
	result := core.ExtOne(field)
	for _, other := range opcodeValues {
		if other == op {
			continue
		}
		otherElem := core.ExtFromBase(field.NewElementFromInt64(other))
		result = result.Mul(x.Sub(otherElem))
	}
	return result
}

// IfInstr is x − op: zero iff x = op.
func IfInstr(field *core.Field, op int64, x *core.ExtFieldElement) *core.ExtFieldElement {
	opElem := core.ExtFromBase(field.NewElementFromInt64(op))
	return x.Sub(opElem)
}

// opcodeNormalizationConstant is Deselector(op, op): the nonzero constant
// the deselector evaluates to at its own opcode. Binary (single-opcode)
// extension-column updates (input/output evaluation) use it to scale an
// equation so the deselector acts as an exact 0/1 indicator without
// needing a per-row field inversion.
func opcodeNormalizationConstant(field *core.Field, op int64) *core.ExtFieldElement {
	opElem := core.ExtFromBase(field.NewElementFromInt64(op))
	return Deselector(field, op, opElem)
}

// Deselector is the weight spec §4.5 composes every per-opcode transition
// constraint with: if_not_instr(op, curr_instr) * curr_instr. It is nonzero
// (and proportional to the per-opcode constraint) exactly when curr_instr
// equals op, and zero for every other opcode and for padding rows
// (curr_instr = 0).
func Deselector(field *core.Field, op int64, currInstr *core.ExtFieldElement) *core.ExtFieldElement {
	return IfNotInstr(field, op, currInstr).Mul(currInstr)
}
