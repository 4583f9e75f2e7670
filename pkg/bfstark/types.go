package bfstark

import (
	"github.com/vybium/bfstark-vm/internal/bfstark/core"
	"github.com/vybium/bfstark-vm/internal/bfstark/protocols"
	"github.com/vybium/bfstark-vm/internal/bfstark/vm"
)

// FieldElement is an element of the prime field this module's STARK
// arithmetic runs over.
type FieldElement = core.FieldElement

// Field is the finite prime field itself.
type Field = core.Field

// Program is a compiled Brainfuck program: one int64 cell per opcode, each
// an ASCII opcode codepoint (spec's universal encoding), with every `[` and
// `]` followed by a cell holding its jump target. Non-opcode source
// characters are dropped.
type Program = vm.Program

// Proof is the verifier-facing shape of a zkSTARK proof for a Brainfuck
// execution trace.
type Proof = protocols.Proof

// Claim is the public statement a Proof attests to.
type Claim = protocols.Claim

// TraceInfo carries the public trace-shape metadata a Claim commits to.
type TraceInfo = protocols.TraceInfo

// Options configures the verifier's query count, LDE blowup, grinding
// requirement, and nested FRI parameters.
type Options = protocols.Options

// FriOptions are the nested FRI-specific parameters of Options.
type FriOptions = protocols.FriOptions

// DefaultOptions returns a conservative default Options value.
func DefaultOptions() Options {
	return protocols.DefaultOptions()
}

// DefaultField returns the prime field this module's examples and tests
// are built over.
func DefaultField() *Field {
	return core.DefaultPrimeField
}

// ExecutionTrace is the result of simulating a Program: the output bytes it
// produced and its Processor-table row count, with the simulator's raw
// trace rows kept unexported.
type ExecutionTrace struct {
	Output     []byte
	CycleCount int

	internal *vm.ExecutionTrace
}

// VerificationResult reports the outcome of verifying a Proof against a
// Claim, mirroring the teacher's ProofVerificationResult shape: a
// structured pass/fail value for callers that would rather branch on a
// field than a type-switch, while Verify still returns a Go error for
// malformed input it cannot even attempt to check.
type VerificationResult struct {
	Valid bool
	Error string
}
