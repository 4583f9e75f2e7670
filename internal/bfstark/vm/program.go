package vm

// Program is the ordered sequence of integers a compiled Brainfuck source
// produces: single opcode cells interleaved with two-cell bracket
// instructions (opcode followed immediately by its resolved jump target).
// Spec §3 requires that execution never dispatch a jump-target cell as an
// opcode; they are only ever read via the lookahead (NextInstr) register.
type Program []int64

// Len returns the number of cells in the program.
func (p Program) Len() int { return len(p) }

// At returns the cell at index i, or 0 (the halt sentinel) if i is out of
// range — mirroring the simulator's convention that running off the end of
// the program is the halt condition, not an error.
func (p Program) At(i int) int64 {
	if i < 0 || i >= len(p) {
		return 0
	}
	return p[i]
}

// Compile scans source text, discarding every byte that is not one of the
// eight opcodes, and emits a Program with resolved loop targets (spec
// §4.1). On `[` it pushes the address of a placeholder jump-target cell; on
// `]` it pops that address, writes addr+1 into its own jump cell, and
// back-patches the placeholder with the index immediately after this `]`.
func Compile(source string) (Program, error) {
	program := make(Program, 0, len(source))
	var openStack []int

	for _, r := range source {
		op := Opcode(r)
		if !IsValid(op) {
			continue
		}

		switch op {
		case OpLoopOpen:
			program = append(program, int64(op), 0) // placeholder target
			openStack = append(openStack, len(program)-1)
		case OpLoopClose:
			if len(openStack) == 0 {
				return nil, newError(UnmatchedLoop, "unmatched ']' with no open '['")
			}
			openIdx := openStack[len(openStack)-1]
			openStack = openStack[:len(openStack)-1]

			program = append(program, int64(op), 0)
			closeTargetIdx := len(program) - 1

			// `[`'s jump cell (openIdx) holds the index past this `]`.
			program[openIdx] = int64(len(program))
			// `]`'s jump cell holds the index past the matching `[`.
			program[closeTargetIdx] = int64(openIdx + 1)
		default:
			program = append(program, int64(op))
		}
	}

	if len(openStack) != 0 {
		return nil, newErrorf(UnmatchedLoop, "%d unmatched '[' at end of source", len(openStack))
	}

	return program, nil
}
