package protocols

import "testing"

func TestDefaultOptionsValidates(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("default options should validate: %v", err)
	}
}

func TestOptionsValidateRejectsZeroQueries(t *testing.T) {
	o := DefaultOptions().WithNumQueries(0)
	if err := o.Validate(); err == nil {
		t.Fatal("expected error for zero num_queries")
	}
}

func TestOptionsValidateRejectsNonPowerOfTwoExpansion(t *testing.T) {
	o := DefaultOptions().WithExpansionFactor(3)
	if err := o.Validate(); err == nil {
		t.Fatal("expected error for non-power-of-two expansion_factor")
	}
}

func TestOptionsValidateRejectsExpansionFactorOne(t *testing.T) {
	o := DefaultOptions().WithExpansionFactor(1)
	if err := o.Validate(); err == nil {
		t.Fatal("expected error for expansion_factor < 2")
	}
}

func TestOptionsWithBuildersAreImmutable(t *testing.T) {
	base := DefaultOptions()
	derived := base.WithNumQueries(64).WithGrindingFactor(8)
	if base.NumQueries == derived.NumQueries {
		t.Fatal("With* should not mutate the receiver")
	}
	if derived.NumQueries != 64 || derived.GrindingFactor != 8 {
		t.Fatalf("unexpected derived options: %+v", derived)
	}
}

func TestFriOptionsValidateRejectsNonTwoFoldingFactor(t *testing.T) {
	o := FriOptions{FoldingFactor: 4, MaxRemainderDeg: 1}
	if err := o.Validate(); err == nil {
		t.Fatal("expected error for folding factor != 2")
	}
}

func TestFriOptionsValidateRejectsNegativeRemainderDegree(t *testing.T) {
	o := FriOptions{FoldingFactor: 2, MaxRemainderDeg: -1}
	if err := o.Validate(); err == nil {
		t.Fatal("expected error for negative max_remainder_degree")
	}
}
