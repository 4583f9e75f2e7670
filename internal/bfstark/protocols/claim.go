package protocols

import (
	"encoding/binary"

	"github.com/vybium/bfstark-vm/internal/bfstark/core"
)

// TraceInfo carries the public shape metadata the verifier needs before it
// can derive domains: the padded trace height (spec calls this N) and the
// original program's length, both absorbed into the transcript before any
// Merkle root (spec §4.7 step 1).
type TraceInfo struct {
	PaddedHeight  int
	ProgramLength int
}

// Claim is the public statement a Proof attests to: the compiled program,
// and the input/output byte streams (spec §6's public_inputs, plus the
// trace_info this module seeds the coin with alongside it).
//
// Grounded on the teacher's protocols/claim.go Claim struct, replaced with
// this spec's actual public inputs (a Brainfuck program and its I/O tapes)
// in place of the teacher's ISA program digest.
type Claim struct {
	Program   []int64
	Input     []byte
	Output    []byte
	TraceInfo TraceInfo
	Options   Options
}

// CanonicalBytes encodes the claim the way spec §4.7 step 1 requires:
// public_inputs || trace_info || options, in a fixed, order-preserving
// byte layout so two verifiers seed identical transcripts from an
// identical claim.
func (c Claim) CanonicalBytes() []byte {
	var buf []byte
	buf = appendUint64(buf, uint64(len(c.Program)))
	for _, op := range c.Program {
		buf = appendUint64(buf, uint64(op))
	}
	buf = appendUint64(buf, uint64(len(c.Input)))
	buf = append(buf, c.Input...)
	buf = appendUint64(buf, uint64(len(c.Output)))
	buf = append(buf, c.Output...)
	buf = appendUint64(buf, uint64(c.TraceInfo.PaddedHeight))
	buf = appendUint64(buf, uint64(c.TraceInfo.ProgramLength))
	buf = append(buf, byte(c.Options.NumQueries), byte(c.Options.ExpansionFactor), byte(c.Options.GrindingFactor))
	buf = appendUint64(buf, uint64(c.Options.Fri.FoldingFactor))
	buf = appendUint64(buf, uint64(c.Options.Fri.MaxRemainderDeg))
	return buf
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

// deriveHints folds the claim's actual input/output bytes under the
// evaluation-argument challenges to recover the public values the
// Processor table's running evaluation columns must terminate at (spec
// §3, §4.5.4). These are derived by the verifier, not carried on the wire.
func (c Claim) deriveHints(field *core.Field, gamma, delta *core.ExtFieldElement) (inputHint, outputHint *core.ExtFieldElement) {
	inputHint = core.ExtZero(field)
	for _, b := range c.Input {
		inputHint = gamma.Mul(inputHint).Add(core.ExtFromBase(field.NewElementFromUint64(uint64(b))))
	}
	outputHint = core.ExtZero(field)
	for _, b := range c.Output {
		outputHint = delta.Mul(outputHint).Add(core.ExtFromBase(field.NewElementFromUint64(uint64(b))))
	}
	return inputHint, outputHint
}
