package protocols

import (
	"fmt"

	"github.com/vybium/bfstark-vm/internal/bfstark/air"
	"github.com/vybium/bfstark-vm/internal/bfstark/core"
)

// Verifier checks Brainfuck STARK proofs against a claim.
//
// Grounded on the teacher's protocols.Verifier (NewVerifier + Verify step
// sequence), but the step bodies here perform the actual cryptographic
// checks spec §4.7 specifies rather than the teacher's structural-only
// placeholders — the teacher's own verifier explicitly defers constraint
// and FRI arithmetic to "a full implementation"; this module is that full
// implementation for the Brainfuck AIR.
type Verifier struct {
	field *core.Field
}

// NewVerifier constructs a verifier over the given prime field.
func NewVerifier(field *core.Field) (*Verifier, error) {
	if field == nil {
		return nil, fmt.Errorf("field cannot be nil")
	}
	return &Verifier{field: field}, nil
}

// Verify runs the full 14-step verification pipeline of spec §4.7.
func (v *Verifier) Verify(claim Claim, proof *Proof) error {
	if err := claim.Options.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	field := v.field
	n := claim.TraceInfo.PaddedHeight
	if !core.IsPowerOfTwo(n) || n <= 0 {
		return fmt.Errorf("trace_info.padded_height must be a positive power of two, got %d", n)
	}

	// Step 1: seed with public_inputs || trace_info || options.
	coin := NewPublicCoin(field, claim.CanonicalBytes())

	// Step 2: reseed with base_commit; draw challenges and hints.
	coin.Reseed(proof.BaseCommit[:])
	challenges, hints := DrawChallenges(field, claim, coin)

	// Step 3: this AIR always declares extension columns; reseed with
	// ext_commit and draw one composition coefficient pair per constraint.
	if proof.ExtCommit == nil {
		return fmt.Errorf("proof is missing ext_commit: this AIR always declares extension columns")
	}
	coin.Reseed(proof.ExtCommit[:])
	numConstraints := len(air.AllConstraints())
	compCoeffs := DrawCompositionCoefficients(coin, numConstraints)

	// Step 4: reseed with comp_commit; draw the out-of-domain point z.
	coin.Reseed(proof.CompCommit[:])
	z := coin.DrawExt()

	// Step 5: reseed with ood_trace_states.curr, then .next.
	coin.Reseed(CanonicalExtRowBytes(proof.OodCurr.BaseColumns()))
	coin.Reseed(CanonicalExtRowBytes(proof.OodCurr.ExtColumns()))
	coin.Reseed(CanonicalExtRowBytes(proof.OodNext.BaseColumns()))
	coin.Reseed(CanonicalExtRowBytes(proof.OodNext.ExtColumns()))

	// Step 6: recompute the expected out-of-domain composition value.
	compositionDegree := CompositionDegree(n, int(claim.Options.ExpansionFactor))
	expectedOod, err := RecomputeExpectedOod(field, z, n, compositionDegree, proof.OodCurr, proof.OodNext, challenges, hints, compCoeffs)
	if err != nil {
		return fmt.Errorf("failed to recompute expected ood value: %w", err)
	}

	// Step 7: reseed with ood_eval_values; fold via Horner in z.
	coin.Reseed(CanonicalExtRowBytes(proof.OodEvalValues))
	providedOod := core.FoldHornerExt(proof.OodEvalValues, z)
	if !expectedOod.Equal(providedOod) {
		return newVerificationError(InconsistentOodConstraintEvaluations,
			fmt.Sprintf("expected %s, proof provided %s", expectedOod, providedOod))
	}

	// Step 8: draw DEEP composition coefficients.
	numBase := len(proof.OodCurr.BaseColumns())
	numExt := len(proof.OodCurr.ExtColumns())
	deepCoeffs := DrawDeepCoefficients(coin, numBase, numExt, len(proof.OodEvalValues))

	// Step 9: initialise the FRI verifier.
	friDomain, err := core.FriDomain(field, n, int(claim.Options.ExpansionFactor))
	if err != nil {
		return fmt.Errorf("failed to derive fri domain: %w", err)
	}
	friVerifier, err := core.NewFriVerifier(friDomain, claim.Options.Fri.FoldingFactor, claim.Options.Fri.MaxRemainderDeg)
	if err != nil {
		return fmt.Errorf("failed to initialise fri verifier: %w", err)
	}

	// Step 10: grinding / proof-of-work check.
	if claim.Options.GrindingFactor > 0 {
		var nonceBytes [8]byte
		for i := 0; i < 8; i++ {
			nonceBytes[i] = byte(proof.PowNonce >> (8 * i))
		}
		coin.Reseed(nonceBytes[:])
		if coin.SeedLeadingZeros() < int(claim.Options.GrindingFactor) {
			return newVerificationError(FriProofOfWork, "insufficient leading zero bits on pow_nonce")
		}
	}

	// Step 11: draw query positions.
	positions := make([]int, claim.Options.NumQueries)
	for i := range positions {
		positions[i] = coin.DrawRng(friDomain.Length)
	}

	if len(proof.TraceQueries) != len(positions) {
		return fmt.Errorf("proof has %d trace queries, expected %d", len(proof.TraceQueries), len(positions))
	}

	friRoundChallenges := make([]*core.ExtFieldElement, friVerifier.NumRounds())
	for i := range friRoundChallenges {
		friRoundChallenges[i] = coin.DrawExt()
	}

	oodCurrCols := proof.OodCurr.BaseColumns()
	oodNextCols := proof.OodNext.BaseColumns()
	oodCurrExt := proof.OodCurr.ExtColumns()
	oodNextExt := proof.OodNext.ExtColumns()
	oodCurrAll := append(append([]*core.ExtFieldElement{}, oodCurrCols...), oodCurrExt...)
	oodNextAll := append(append([]*core.ExtFieldElement{}, oodNextCols...), oodNextExt...)
	g := field.GetPrimitiveRootOfUnity(n)
	if g == nil {
		return fmt.Errorf("field has no primitive root of unity of order %d", n)
	}

	for idx, q := range proof.TraceQueries {
		if q.Position != positions[idx] {
			return fmt.Errorf("trace query %d: position %d does not match drawn index %d", idx, q.Position, positions[idx])
		}

		// Step 12: verify the Merkle opening of each commitment present.
		if !core.VerifyProof(proof.BaseCommit, CanonicalBaseRowBytes(q.BaseRow), q.BaseProof) {
			return newVerificationError(BaseTraceQueryDoesNotMatchCommitment,
				fmt.Sprintf("query at position %d", q.Position))
		}
		if !core.VerifyProof(*proof.ExtCommit, CanonicalExtRowBytes(q.ExtRow), q.ExtProof) {
			return newVerificationError(ExtensionTraceQueryDoesNotMatchCommitment,
				fmt.Sprintf("query at position %d", q.Position))
		}
		if !core.VerifyProof(proof.CompCommit, CanonicalExtRowBytes(q.CompRow), q.CompProof) {
			return newVerificationError(CompositionTraceQueryDoesNotMatchCommitment,
				fmt.Sprintf("query at position %d", q.Position))
		}

		// Step 13: compute the DEEP evaluation at this query position.
		x := core.ExtFromBase(friDomain.Element(q.Position))
		baseRowExt := make([]*core.ExtFieldElement, len(q.BaseRow))
		for i, v := range q.BaseRow {
			baseRowExt[i] = core.ExtFromBase(v)
		}
		deepValue, err := DeepEvaluate(field, x, z, g, baseRowExt, q.ExtRow, q.CompRow, oodCurrAll, oodNextAll, proof.OodEvalValues, deepCoeffs)
		if err != nil {
			return fmt.Errorf("deep evaluation at position %d: %w", q.Position, err)
		}

		if err := checkFriRoundZeroMatches(proof.FriProof, q.Position, deepValue); err != nil {
			return wrapVerificationError(FriVerification, fmt.Sprintf("position %d", q.Position), err)
		}
	}

	// Step 14: delegate to the FRI verifier.
	if len(proof.FriProof.RoundCommitments) == 0 {
		return wrapVerificationError(FriVerification, "fri proof has no round commitments", nil)
	}
	if err := friVerifier.Verify(&proof.FriProof, proof.FriProof.RoundCommitments[0].Root, friRoundChallenges, field); err != nil {
		return wrapVerificationError(FriVerification, "fri verification failed", err)
	}

	return nil
}

// checkFriRoundZeroMatches asserts that the DEEP evaluation independently
// computed for a query position equals the value the FRI proof's own
// round-0 opening claims at that position, i.e. that the FRI codeword the
// prover committed to really is the DEEP composition's LDE and not some
// unrelated codeword that merely folds consistently on its own.
func checkFriRoundZeroMatches(friProof core.FriProof, position int, deepValue *core.ExtFieldElement) error {
	for _, query := range friProof.Queries {
		if query.Position != position {
			continue
		}
		if len(query.Rounds) == 0 {
			return fmt.Errorf("fri proof has no rounds for position %d", position)
		}
		round0 := query.Rounds[0]
		if round0.ValueA.Equal(deepValue) || round0.ValueB.Equal(deepValue) {
			return nil
		}
		return fmt.Errorf("fri round-0 opening does not match the independently computed deep evaluation")
	}
	return fmt.Errorf("fri proof has no query at position %d", position)
}
