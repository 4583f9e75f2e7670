package bfstark

import "github.com/vybium/bfstark-vm/internal/bfstark/vm"

// Compile parses Brainfuck source into a Program, resolving every loop
// bracket's jump target (spec §2). Non-opcode characters are ignored.
func Compile(source string) (Program, error) {
	program, err := vm.Compile(source)
	if err != nil {
		return nil, newError(ErrCompile, "failed to compile program", err)
	}
	return program, nil
}

// Simulate executes a compiled Program against an input byte stream and
// returns its execution trace (spec §4.2), including the bytes it wrote
// to output.
func Simulate(program Program, input []byte) (*ExecutionTrace, error) {
	trace, err := vm.Simulate(program, input)
	if err != nil {
		return nil, newError(ErrSimulate, "program simulation failed", err)
	}
	return &ExecutionTrace{
		Output:     trace.OutputBytes,
		CycleCount: len(trace.Processor),
		internal:   trace,
	}, nil
}

// PaddedHeight rounds n up to the next power of two, the padded trace
// height a Claim's TraceInfo must declare (spec §4.4).
func PaddedHeight(n int) int {
	if n <= 1 {
		return 1
	}
	h := 1
	for h < n {
		h <<= 1
	}
	return h
}
