package vm

// ExecutionTrace is the simulator's raw output: one row per cycle in each
// of the Processor/Instruction tables, plus the Input/Output rows actually
// consumed/produced, and the final tape contents (used by tests, not by
// the verifier). The Memory table is derived separately (spec §4.3) since
// it is not produced directly by the simulator's cycle loop.
type ExecutionTrace struct {
	Processor   []ProcessorRow
	Instruction []InstructionRow
	Input       []IORow
	Output      []IORow
	OutputBytes []byte
}

// Simulate executes program against the given input stream, emitting the
// Processor/Instruction/Input/Output base-column rows (spec §4.2). The tape
// is represented sparsely: unwritten cells read as zero, matching spec §3.
func Simulate(program Program, input []byte) (*ExecutionTrace, error) {
	tape := make(map[int64]byte)
	trace := &ExecutionTrace{}

	var ip int64
	var mp int64
	var cycle int64
	var inputPos int

	for {
		curr := program.At(int(ip))
		next := program.At(int(ip) + 1)
		memVal := int64(tape[mp])

		if curr != 0 && !IsValid(Opcode(curr)) {
			return nil, newErrorf(UnknownOpcode, "invalid opcode %d at ip=%d", curr, ip)
		}

		var dummy int64
		if curr == 0 {
			// halt row: CurrInstr=0 forces Dummy=1 by
			// processor.dummy_opcode_coherence, the same coherence rule
			// padding rows satisfy by continuing to hold CurrInstr=0.
			dummy = 1
		}
		trace.Processor = append(trace.Processor, ProcessorRow{
			Cycle: cycle, Ip: ip, CurrInstr: curr, NextInstr: next, Mp: mp, MemVal: memVal, Dummy: dummy,
		})
		trace.Instruction = append(trace.Instruction, InstructionRow{
			Ip: ip, CurrInstr: curr, NextInstr: next,
		})

		if curr == 0 {
			break
		}

		switch Opcode(curr) {
		case OpMoveRight:
			mp++
			ip++
		case OpMoveLeft:
			mp--
			ip++
		case OpIncrement:
			tape[mp] = byte((int(tape[mp]) + 1) % 256)
			ip++
		case OpDecrement:
			tape[mp] = byte((int(tape[mp]) + 255) % 256)
			ip++
		case OpOutput:
			value := tape[mp]
			trace.Output = append(trace.Output, IORow{Value: int64(value)})
			trace.OutputBytes = append(trace.OutputBytes, value)
			ip++
		case OpInput:
			if inputPos >= len(input) {
				return nil, newError(EndOfInput, "input exhausted on ','")
			}
			value := input[inputPos]
			inputPos++
			tape[mp] = value
			trace.Input = append(trace.Input, IORow{Value: int64(value)})
			ip++
		case OpLoopOpen:
			if memVal == 0 {
				ip = next
			} else {
				ip += 2
			}
		case OpLoopClose:
			if memVal != 0 {
				ip = next
			} else {
				ip += 2
			}
		}

		cycle++
	}

	return trace, nil
}
