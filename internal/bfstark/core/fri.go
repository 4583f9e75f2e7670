package core

import "fmt"

// FriRoundCommitment is the Merkle root of one FRI folding round's codeword.
type FriRoundCommitment struct {
	Root Digest
}

// FriQueryRound holds the two sibling codeword values opened for one FRI
// round at one query position, together with their authentication paths.
type FriQueryRound struct {
	ValueA, ValueB *ExtFieldElement
	ProofA, ProofB *MerkleProof
}

// FriQuery is everything the verifier needs, for a single query position,
// to re-derive every round's fold and check it against the next round's
// commitment.
type FriQuery struct {
	Position int
	Rounds   []FriQueryRound
}

// FriProof is the verifier-facing shape of a FRI proof: per-round
// commitments, the final low-degree codeword (revealed in full since its
// domain is small), and the opened queries. Constructing this from a
// prover's folding transcript is out of scope (spec §1); this module only
// verifies one.
type FriProof struct {
	RoundCommitments []FriRoundCommitment
	FinalCodeword    []*ExtFieldElement
	Queries          []FriQuery
}

// FriVerifier checks a FriProof against domain/round folding challenges
// drawn by the public coin, and a maximum accepted degree for the final
// codeword's interpolant.
type FriVerifier struct {
	domain         *ArithmeticDomain
	foldingFactor  int
	maxFinalDegree int
}

// NewFriVerifier constructs a verifier over the given initial FRI domain.
// foldingFactor must be 2 (this module folds by halving the domain each
// round, matching the teacher's foldFunction); maxFinalDegree bounds the
// degree of the polynomial the final codeword is allowed to represent.
func NewFriVerifier(domain *ArithmeticDomain, foldingFactor, maxFinalDegree int) (*FriVerifier, error) {
	if foldingFactor != 2 {
		return nil, fmt.Errorf("unsupported FRI folding factor %d, only 2 is implemented", foldingFactor)
	}
	return &FriVerifier{domain: domain, foldingFactor: foldingFactor, maxFinalDegree: maxFinalDegree}, nil
}

// NumRounds returns how many folding rounds occur before the codeword
// shrinks to its final, fully-revealed length.
func (v *FriVerifier) NumRounds() int {
	rounds := 0
	length := v.domain.Length
	for length > v.maxFinalDegree+1 && length > 1 {
		length /= 2
		rounds++
	}
	return rounds
}

// fold applies the TR17-134-style folding formula used by the teacher's
// foldFunction: given the two codeword values at x and -x (the domain's
// order-2 coset partners) and the round challenge alpha, returns the
// folded value at x^2.
//
//	f'(x^2) = (f(x)+f(-x))/2 + alpha * (f(x)-f(-x)) / (2x)
func fold(valueA, valueB *ExtFieldElement, x *FieldElement, alpha *ExtFieldElement, field *Field) (*ExtFieldElement, error) {
	two := field.NewElementFromInt64(2)
	twoInv, err := two.Inv()
	if err != nil {
		return nil, fmt.Errorf("field has no inverse of two: %w", err)
	}
	twoInvExt := ExtFromBase(twoInv)

	sum := valueA.Add(valueB)
	diff := valueA.Sub(valueB)

	xInv, err := x.Inv()
	if err != nil {
		return nil, fmt.Errorf("domain point has no inverse: %w", err)
	}

	evenPart := sum.Mul(twoInvExt)
	oddPart := diff.Mul(twoInvExt).Mul(ExtFromBase(xInv)).Mul(alpha)
	return evenPart.Add(oddPart), nil
}

// Verify checks a FriProof given the per-round folding challenges (already
// drawn from the public coin by the caller, in round order) and the root of
// the codeword opened in round 0; round r > 0 is opened against
// RoundCommitments[r]. It re-derives every opened query's chain of folds,
// checks each fold against the value opened at the same position in the
// next round (the last fold against the final codeword), and checks that
// the final codeword holds at least maxFinalDegree+1 values; the final
// codeword is not interpolated and its degree is not tested. It does not itself recompute Merkle roots from
// scratch; it calls VerifyProof for every opening (spec §1 treats Merkle
// path verification as an external collaborator this module only invokes).
func (v *FriVerifier) Verify(proof *FriProof, initialRoot Digest, challenges []*ExtFieldElement, field *Field) error {
	numRounds := v.NumRounds()
	if len(challenges) < numRounds {
		return fmt.Errorf("fri verification requires %d folding challenges, got %d", numRounds, len(challenges))
	}
	if len(proof.RoundCommitments) != numRounds {
		return fmt.Errorf("fri proof has %d round commitments, expected %d", len(proof.RoundCommitments), numRounds)
	}

	domain := v.domain
	for _, query := range proof.Queries {
		if len(query.Rounds) != numRounds {
			return fmt.Errorf("fri query at position %d has %d rounds, expected %d", query.Position, len(query.Rounds), numRounds)
		}

		position := query.Position
		roundDomain := domain
		currentRoot := initialRoot
		var folded *ExtFieldElement

		for round := 0; round < numRounds; round++ {
			qr := query.Rounds[round]
			siblingPos := (position + roundDomain.Length/2) % roundDomain.Length
			if round > 0 && !folded.Equal(qr.ValueA) {
				return fmt.Errorf("fri round %d: folded value does not match opening at position %d", round, position)
			}

			if !VerifyProof(currentRoot, []byte(qr.ValueA.String()), qr.ProofA) {
				return fmt.Errorf("fri round %d: opening at position %d does not match committed root", round, position)
			}
			if !VerifyProof(currentRoot, []byte(qr.ValueB.String()), qr.ProofB) {
				return fmt.Errorf("fri round %d: opening at position %d does not match committed root", round, siblingPos)
			}

			x := roundDomain.Element(position)
			var err error
			folded, err = fold(qr.ValueA, qr.ValueB, x, challenges[round], field)
			if err != nil {
				return fmt.Errorf("fri round %d: fold failed: %w", round, err)
			}

			halved, err := roundDomain.Halve()
			if err != nil {
				return fmt.Errorf("fri round %d: cannot halve domain: %w", round, err)
			}
			nextPosition := position % halved.Length
			roundDomain = halved
			if round+1 < numRounds {
				currentRoot = proof.RoundCommitments[round+1].Root
			}
			position = nextPosition
		}

		finalIdx := position
		if finalIdx >= len(proof.FinalCodeword) {
			return fmt.Errorf("fri final codeword too short for position %d", finalIdx)
		}
		if !folded.Equal(proof.FinalCodeword[finalIdx]) {
			return fmt.Errorf("fri query at position %d: folded value does not match final codeword", query.Position)
		}
	}

	return v.verifyFinalDegree(proof.FinalCodeword)
}

// verifyFinalDegree checks that maxFinalDegree is non-negative and that the
// fully-revealed final codeword holds at least maxFinalDegree+1 values. It
// does not interpolate the codeword, so a final codeword whose interpolant
// has a degree above maxFinalDegree is not rejected here.
func (v *FriVerifier) verifyFinalDegree(finalCodeword []*ExtFieldElement) error {
	if v.maxFinalDegree < 0 {
		return fmt.Errorf("invalid max final degree %d", v.maxFinalDegree)
	}
	if len(finalCodeword) < v.maxFinalDegree+1 {
		return fmt.Errorf("final codeword of length %d cannot bound a degree-%d polynomial", len(finalCodeword), v.maxFinalDegree)
	}
	return nil
}
