package protocols

import (
	"testing"

	"github.com/vybium/bfstark-vm/internal/bfstark/core"
)

func TestNewVerifierRejectsNilField(t *testing.T) {
	if _, err := NewVerifier(nil); err == nil {
		t.Fatal("expected error for nil field")
	}
}

func TestVerifyRejectsInvalidOptions(t *testing.T) {
	field := core.DefaultPrimeField
	v, err := NewVerifier(field)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claim := sampleClaim()
	claim.Options = claim.Options.WithNumQueries(0)
	if err := v.Verify(claim, &Proof{}); err == nil {
		t.Fatal("expected error for invalid options")
	}
}

func TestVerifyRejectsNonPowerOfTwoPaddedHeight(t *testing.T) {
	field := core.DefaultPrimeField
	v, err := NewVerifier(field)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claim := sampleClaim()
	claim.TraceInfo.PaddedHeight = 7
	if err := v.Verify(claim, &Proof{}); err == nil {
		t.Fatal("expected error for non-power-of-two padded height")
	}
}

func TestVerifyRejectsMissingExtCommit(t *testing.T) {
	field := core.DefaultPrimeField
	v, err := NewVerifier(field)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claim := sampleClaim()
	proof := &Proof{ExtCommit: nil}
	if err := v.Verify(claim, proof); err == nil {
		t.Fatal("expected error for missing ext_commit")
	}
}

func TestCheckFriRoundZeroMatchesRejectsUnknownPosition(t *testing.T) {
	field := core.DefaultPrimeField
	deepValue := core.ExtFromBase(field.NewElementFromInt64(1))
	err := checkFriRoundZeroMatches(core.FriProof{}, 3, deepValue)
	if err == nil {
		t.Fatal("expected error for a fri proof with no query at the position")
	}
}

func TestCheckFriRoundZeroMatchesRejectsDivergentValue(t *testing.T) {
	field := core.DefaultPrimeField
	a := core.ExtFromBase(field.NewElementFromInt64(1))
	b := core.ExtFromBase(field.NewElementFromInt64(2))
	proof := core.FriProof{
		Queries: []core.FriQuery{
			{Position: 3, Rounds: []core.FriQueryRound{{ValueA: a, ValueB: a}}},
		},
	}
	if err := checkFriRoundZeroMatches(proof, 3, b); err == nil {
		t.Fatal("expected error when neither round-0 value matches the deep evaluation")
	}
}

func TestCheckFriRoundZeroMatchesAcceptsMatchingValue(t *testing.T) {
	field := core.DefaultPrimeField
	a := core.ExtFromBase(field.NewElementFromInt64(1))
	b := core.ExtFromBase(field.NewElementFromInt64(2))
	proof := core.FriProof{
		Queries: []core.FriQuery{
			{Position: 3, Rounds: []core.FriQueryRound{{ValueA: a, ValueB: b}}},
		},
	}
	if err := checkFriRoundZeroMatches(proof, 3, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
