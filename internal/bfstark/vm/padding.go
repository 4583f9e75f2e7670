package vm

import "github.com/vybium/bfstark-vm/internal/bfstark/core"

// Tables bundles the five padded execution-trace tables (spec §3), ready
// for the AIR layer to evaluate constraints over and for the prover (out of
// scope) to commit to.
type Tables struct {
	Processor   *ProcessorTable
	Instruction *InstructionTable
	Memory      *MemoryTable
	Input       *IOTable
	Output      *IOTable
	Height      int
}

// BuildTables runs the Memory-table derivation and the padder over a raw
// ExecutionTrace, producing the five tables at their common padded height
// N = ceil_pow2(max(|processor|,|memory|,|instruction|,|input|,|output|))
// (spec §3, §4.4).
func BuildTables(field *core.Field, trace *ExecutionTrace) *Tables {
	memoryRows := DeriveMemoryTable(trace.Processor)

	processor := NewProcessorTable(field, trace.Processor)
	instruction := NewInstructionTable(trace.Instruction)
	memory := &MemoryTable{}
	for _, r := range memoryRows {
		memory.Cycle = append(memory.Cycle, r.Cycle)
		memory.Mp = append(memory.Mp, r.Mp)
		memory.MemVal = append(memory.MemVal, r.MemVal)
		memory.Dummy = append(memory.Dummy, r.Dummy)
	}
	input := NewIOTable(trace.Input)
	output := NewIOTable(trace.Output)

	maxRows := processor.Height()
	for _, h := range []int{instruction.Height(), memory.Height(), input.Height(), output.Height()} {
		if h > maxRows {
			maxRows = h
		}
	}
	n := core.NextPowerOfTwo(maxRows)

	processor.Pad(n)
	instruction.Pad(n)
	memory.Pad(n)
	input.Pad(n)
	output.Pad(n)

	return &Tables{
		Processor:   processor,
		Instruction: instruction,
		Memory:      memory,
		Input:       input,
		Output:      output,
		Height:      n,
	}
}
