package protocols

import (
	"github.com/vybium/bfstark-vm/internal/bfstark/air"
	"github.com/vybium/bfstark-vm/internal/bfstark/core"
)

// TraceQuery is one queried row of the LDE domain, opened against each of
// the base, extension, and composition commitments (spec §6 trace_queries,
// §4.7 step 12).
type TraceQuery struct {
	Position int

	BaseRow []*core.FieldElement
	ExtRow  []*core.ExtFieldElement
	CompRow []*core.ExtFieldElement

	BaseProof *core.MerkleProof
	ExtProof  *core.MerkleProof
	CompProof *core.MerkleProof
}

// Proof is the verifier-facing shape of spec §6's wire format. The
// public_inputs/trace_info/options prefix spec §6 describes as part of the
// same canonical byte sequence is carried alongside a Proof as a Claim
// (passed separately to Verify, as the teacher's Verify(claim, proof) does)
// rather than duplicated inside this struct.
//
// Grounded on the teacher's protocols/proof.go Proof/ProofItem shape
// (typed, selectively-Fiat-Shamir'd items) but flattened to named fields:
// every field here is exactly one of spec §6's named wire components, so
// nothing needs a runtime type switch to interpret.
type Proof struct {
	BaseCommit core.Digest
	ExtCommit  *core.Digest
	CompCommit core.Digest

	OodCurr air.TraceState
	OodNext air.TraceState

	OodEvalValues []*core.ExtFieldElement

	TraceQueries []TraceQuery

	FriProof core.FriProof

	PowNonce uint64
}

// CanonicalBaseRowBytes encodes a base-column row the way the leaf hash of
// spec §4.7 step 12 requires: H(canonical_bytes(row)).
func CanonicalBaseRowBytes(row []*core.FieldElement) []byte {
	buf := make([]byte, 0, len(row)*8)
	for _, v := range row {
		b := v.FixedBytes()
		buf = append(buf, b[:]...)
	}
	return buf
}

// CanonicalExtRowBytes encodes an extension-column or composition row: each
// element's three base-field coefficients, concatenated in column order.
func CanonicalExtRowBytes(row []*core.ExtFieldElement) []byte {
	buf := make([]byte, 0, len(row)*24)
	for _, v := range row {
		for _, c := range v.Coeffs() {
			b := c.FixedBytes()
			buf = append(buf, b[:]...)
		}
	}
	return buf
}
