package protocols

import (
	"testing"

	"github.com/vybium/bfstark-vm/internal/bfstark/air"
	"github.com/vybium/bfstark-vm/internal/bfstark/core"
)

func TestDivisorAtBoundaryIsReciprocalOfZMinusOne(t *testing.T) {
	field := core.DefaultPrimeField
	z := core.ExtFromBase(field.NewElementFromInt64(9))
	gInv := core.ExtFromBase(field.NewElementFromInt64(3))
	zH := core.ExtFromBase(field.NewElementFromInt64(5))
	got, err := divisorAt(field, air.Boundary, z, gInv, zH)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	zMinusOne := z.Sub(core.ExtOne(field))
	if !got.Mul(zMinusOne).Equal(core.ExtOne(field)) {
		t.Fatal("boundary divisor should be the multiplicative inverse of (z-1)")
	}
}

func TestDivisorAtTerminalIsReciprocalOfZMinusGInv(t *testing.T) {
	field := core.DefaultPrimeField
	z := core.ExtFromBase(field.NewElementFromInt64(9))
	gInv := core.ExtFromBase(field.NewElementFromInt64(3))
	zH := core.ExtFromBase(field.NewElementFromInt64(5))
	got, err := divisorAt(field, air.Terminal, z, gInv, zH)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	zMinusGInv := z.Sub(gInv)
	if !got.Mul(zMinusGInv).Equal(core.ExtOne(field)) {
		t.Fatal("terminal divisor should be the multiplicative inverse of (z-g^-1)")
	}
}

func TestDivisorAtTransitionIsZMinusGInvOverZH(t *testing.T) {
	field := core.DefaultPrimeField
	z := core.ExtFromBase(field.NewElementFromInt64(9))
	gInv := core.ExtFromBase(field.NewElementFromInt64(3))
	zH := core.ExtFromBase(field.NewElementFromInt64(5))
	got, err := divisorAt(field, air.Transition, z, gInv, zH)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (z.Sub(gInv))
	wantOverZh, err := want.Div(zH)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(wantOverZh) {
		t.Fatal("transition divisor should equal (z-g^-1)/Z_H(z)")
	}
}

func TestDivisorAtUnknownKindErrors(t *testing.T) {
	field := core.DefaultPrimeField
	z := core.ExtFromBase(field.NewElementFromInt64(9))
	gInv := core.ExtFromBase(field.NewElementFromInt64(3))
	zH := core.ExtFromBase(field.NewElementFromInt64(5))
	if _, err := divisorAt(field, air.Kind(99), z, gInv, zH); err == nil {
		t.Fatal("expected error for unknown constraint kind")
	}
}

func TestDegreeAdjustmentTransitionFormula(t *testing.T) {
	got := degreeAdjustment(100, 2, 8, air.Transition)
	want := 100 - (2-1)*(8-1)
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestDegreeAdjustmentBoundaryFormula(t *testing.T) {
	got := degreeAdjustment(100, 1, 8, air.Boundary)
	want := 100 - 1*(8-1) + 1
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestDegreeAdjustmentTerminalFormula(t *testing.T) {
	got := degreeAdjustment(100, 1, 8, air.Terminal)
	want := 100 - 1*(8-1) + 1
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestCompositionDegreeFormula(t *testing.T) {
	if got := CompositionDegree(8, 4); got != 31 {
		t.Fatalf("expected 8*4-1=31, got %d", got)
	}
}

func TestDrawCompositionCoefficientsCounts(t *testing.T) {
	field := core.DefaultPrimeField
	coin := NewPublicCoin(field, []byte("seed"))
	cc := DrawCompositionCoefficients(coin, 5)
	if len(cc.Alphas) != 5 || len(cc.Betas) != 5 {
		t.Fatalf("expected 5 alphas/betas, got %d/%d", len(cc.Alphas), len(cc.Betas))
	}
}

func TestDrawDeepCoefficientsCounts(t *testing.T) {
	field := core.DefaultPrimeField
	coin := NewPublicCoin(field, []byte("seed"))
	dc := DrawDeepCoefficients(coin, 17, 9, 1)
	if len(dc.BaseAlphas) != 17 || len(dc.BaseBetas) != 17 {
		t.Fatalf("expected 17 base alphas/betas, got %d/%d", len(dc.BaseAlphas), len(dc.BaseBetas))
	}
	if len(dc.ExtAlphas) != 9 || len(dc.ExtBetas) != 9 {
		t.Fatalf("expected 9 ext alphas/betas, got %d/%d", len(dc.ExtAlphas), len(dc.ExtBetas))
	}
	if len(dc.CompAlphas) != 1 {
		t.Fatalf("expected 1 comp alpha, got %d", len(dc.CompAlphas))
	}
	if dc.DegAlpha == nil || dc.DegBeta == nil {
		t.Fatal("expected non-nil degree-adjustment coefficients")
	}
}

func TestDeepEvaluateRejectsMismatchedLengths(t *testing.T) {
	field := core.DefaultPrimeField
	coin := NewPublicCoin(field, []byte("seed"))
	dc := DrawDeepCoefficients(coin, 2, 1, 1)
	z := core.ExtFromBase(field.NewElementFromInt64(5))
	x := core.ExtFromBase(field.NewElementFromInt64(9))
	g := field.NewElementFromInt64(2)
	baseRow := []*core.ExtFieldElement{core.ExtOne(field)}
	_, err := DeepEvaluate(field, x, z, g, baseRow, nil, nil, nil, nil, nil, dc)
	if err == nil {
		t.Fatal("expected length-mismatch error")
	}
}
