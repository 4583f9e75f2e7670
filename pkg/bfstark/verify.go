package bfstark

import (
	"errors"

	"github.com/vybium/bfstark-vm/internal/bfstark/protocols"
)

// Verifier checks zkSTARK proofs of Brainfuck program execution.
type Verifier struct {
	inner *protocols.Verifier
}

// NewVerifier constructs a Verifier over the given field (use DefaultField
// unless a specific modulus is required).
func NewVerifier(field *Field) (*Verifier, error) {
	inner, err := protocols.NewVerifier(field)
	if err != nil {
		return nil, newError(ErrInvalidConfig, "failed to construct verifier", err)
	}
	return &Verifier{inner: inner}, nil
}

// Verify checks proof against claim, returning a VerificationResult that
// reports whether the proof was accepted. A non-nil error is returned only
// when the claim or proof is malformed in a way that prevents even
// attempting verification (e.g. options that don't validate); a rejected
// but well-formed proof reports Valid=false with no error.
func (v *Verifier) Verify(claim Claim, proof *Proof) (*VerificationResult, error) {
	err := v.inner.Verify(claim, proof)
	if err == nil {
		return &VerificationResult{Valid: true}, nil
	}

	var verr *protocols.VerificationError
	if errors.As(err, &verr) {
		return &VerificationResult{Valid: false, Error: verr.Error()}, nil
	}

	return nil, newError(ErrVerification, "verification could not be attempted", err)
}
