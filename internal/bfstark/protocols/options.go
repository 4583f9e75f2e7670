package protocols

import "fmt"

// FriOptions are the FRI-nested parameters of spec §6: folding factor and
// the maximum degree the final remainder codeword may have.
type FriOptions struct {
	FoldingFactor   int
	MaxRemainderDeg int
}

// Validate rejects any FRI option this module cannot represent, mirroring
// the teacher's Config.Validate rejecting out-of-range STARKParameters.
func (o FriOptions) Validate() error {
	if o.FoldingFactor != 2 {
		return fmt.Errorf("folding factor must be 2, got %d", o.FoldingFactor)
	}
	if o.MaxRemainderDeg < 0 {
		return fmt.Errorf("max remainder degree must be non-negative, got %d", o.MaxRemainderDeg)
	}
	return nil
}

// Options is the verifier-facing configuration of spec §6: the number of
// FRI query rounds, the LDE blow-up factor, the proof-of-work grinding
// requirement, and the nested FRI options.
//
// Grounded on the teacher's utils.Config builder shape (Validate + With*
// chain), generalized from the teacher's trace-length/security-level
// parameters to this spec's exact field names.
type Options struct {
	NumQueries      uint8
	ExpansionFactor uint8
	GrindingFactor  uint8
	Fri             FriOptions
}

// DefaultOptions returns a conservative default configuration, mirroring
// the teacher's DefaultConfig().
func DefaultOptions() Options {
	return Options{
		NumQueries:      32,
		ExpansionFactor: 4,
		GrindingFactor:  0,
		Fri: FriOptions{
			FoldingFactor:   2,
			MaxRemainderDeg: 1,
		},
	}
}

// Validate rejects any option value the verifier cannot represent or
// considers insecure (spec §6).
func (o Options) Validate() error {
	if o.NumQueries == 0 {
		return fmt.Errorf("num_queries must be positive")
	}
	if o.ExpansionFactor < 2 || !isPowerOfTwoU8(o.ExpansionFactor) {
		return fmt.Errorf("expansion_factor must be a power of two >= 2, got %d", o.ExpansionFactor)
	}
	if err := o.Fri.Validate(); err != nil {
		return fmt.Errorf("invalid fri options: %w", err)
	}
	return nil
}

// WithNumQueries sets the query count.
func (o Options) WithNumQueries(n uint8) Options {
	o.NumQueries = n
	return o
}

// WithExpansionFactor sets the LDE blow-up factor.
func (o Options) WithExpansionFactor(n uint8) Options {
	o.ExpansionFactor = n
	return o
}

// WithGrindingFactor sets the required proof-of-work leading-zero count.
func (o Options) WithGrindingFactor(n uint8) Options {
	o.GrindingFactor = n
	return o
}

func isPowerOfTwoU8(n uint8) bool {
	return n != 0 && n&(n-1) == 0
}
