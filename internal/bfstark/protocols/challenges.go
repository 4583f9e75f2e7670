package protocols

import (
	"math/big"

	"github.com/vybium/bfstark-vm/internal/bfstark/air"
	"github.com/vybium/bfstark-vm/internal/bfstark/core"
)

// DrawChallenges draws the eleven public-coin challenges of spec §3/§4.5.4
// in a fixed order, then derives the three hints (plus the two offset
// corrections) from the claim's public input/output bytes.
//
// Offset corrections (InputOffset, OutputOffset): the Input/Output tables'
// own Evaluation columns accumulate unconditionally every row, including
// padding rows, while the Processor table's InputEvaluation/OutputEvaluation
// only update on real (non-padding) ','/'.' rows. Since the trace is padded
// to the claim's padded height N, which is almost always larger than the
// number of real input/output bytes, the Input/Output table's terminal
// Evaluation value is diluted by an extra Gamma^(N-k)/Delta^(N-k) factor
// relative to the Processor table's undiluted hint — InputOffset/
// OutputOffset correct for exactly that dilution (see
// _examples/original_source/examples/brainfuck/constraints.rs's Input/
// OutputExtensionColumn::terminal_constraints vs.
// ProcessorExtensionColumn::terminal_constraints).
func DrawChallenges(field *core.Field, claim Claim, coin *PublicCoin) (air.Challenges, air.Hints) {
	ch := air.Challenges{
		Alpha: coin.DrawExt(),
		Beta:  coin.DrawExt(),
		Gamma: coin.DrawExt(),
		Delta: coin.DrawExt(),
		Eta:   coin.DrawExt(),
		A:     coin.DrawExt(),
		B:     coin.DrawExt(),
		C:     coin.DrawExt(),
		D:     coin.DrawExt(),
		E:     coin.DrawExt(),
		F:     coin.DrawExt(),
	}

	inputHint, outputHint := claim.deriveHints(field, ch.Gamma, ch.Delta)
	instructionHint := programEvaluationHint(field, claim.Program, ch.Eta, ch.A, ch.B, ch.C)

	paddedHeight := claim.TraceInfo.PaddedHeight
	inputOffset := dilutionOffset(ch.Gamma, paddedHeight, len(claim.Input))
	outputOffset := dilutionOffset(ch.Delta, paddedHeight, len(claim.Output))

	hints := air.Hints{
		Input:        inputHint,
		Output:       outputHint,
		Instruction:  instructionHint,
		InputOffset:  inputOffset,
		OutputOffset: outputOffset,
	}
	return ch, hints
}

// dilutionOffset computes challenge^(paddedHeight-tapeLen), the factor by
// which an Input/Output table's unconditionally-accumulating Evaluation
// column outruns the Processor table's conditionally-accumulating one over
// the padding rows appended past the tape's real entries.
func dilutionOffset(challenge *core.ExtFieldElement, paddedHeight, tapeLen int) *core.ExtFieldElement {
	gap := paddedHeight - tapeLen
	if gap < 0 {
		gap = 0
	}
	return challenge.Exp(big.NewInt(int64(gap)))
}

// programEvaluationHint folds the compiled program's (ip, curr_instr,
// next_instr) triples under (Eta, A, B, C), mirroring the Instruction
// table's own ProgramEvaluation recurrence (spec §4.5.4) so the verifier
// can independently recompute the terminal value the proof's Instruction
// table must match.
//
// The fold seeds with ip=0's own term (matching
// instruction.program_evaluation0's boundary constraint) and continues
// through ip=len(program) inclusive: the Instruction table carries one row
// past the program's last real cell for the halt sentinel (ip, curr_instr,
// next_instr) = (len(program), 0, 0), and that row's term folds in too
// since its ip is one more than the previous row's.
func programEvaluationHint(field *core.Field, program []int64, eta, a, b, c *core.ExtFieldElement) *core.ExtFieldElement {
	at := func(ip int64) int64 {
		if ip < 0 || int(ip) >= len(program) {
			return 0
		}
		return program[ip]
	}
	term := func(ip int64) *core.ExtFieldElement {
		ipElem := core.ExtFromBase(field.NewElementFromInt64(ip))
		currElem := core.ExtFromBase(field.NewElementFromInt64(at(ip)))
		nextElem := core.ExtFromBase(field.NewElementFromInt64(at(ip + 1)))
		return a.Mul(ipElem).Add(b.Mul(currElem)).Add(c.Mul(nextElem))
	}
	acc := term(0)
	for ip := int64(1); ip <= int64(len(program)); ip++ {
		acc = eta.Mul(acc).Add(term(ip))
	}
	return acc
}
