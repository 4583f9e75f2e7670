package core

import (
	"math/big"
	"testing"
)

func TestFieldArithmetic(t *testing.T) {
	f := DefaultPrimeField

	t.Run("add and sub are inverse", func(t *testing.T) {
		a := f.NewElementFromInt64(17)
		b := f.NewElementFromInt64(42)
		sum := a.Add(b)
		back := sum.Sub(b)
		if !back.Equal(a) {
			t.Fatalf("expected %s, got %s", a, back)
		}
	})

	t.Run("mul and div are inverse", func(t *testing.T) {
		a := f.NewElementFromInt64(123456)
		b := f.NewElementFromInt64(7)
		prod := a.Mul(b)
		quot, err := prod.Div(b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !quot.Equal(a) {
			t.Fatalf("expected %s, got %s", a, quot)
		}
	})

	t.Run("inverse of zero fails", func(t *testing.T) {
		if _, err := f.Zero().Inv(); err == nil {
			t.Fatal("expected error inverting zero")
		}
	})

	t.Run("exp matches repeated mul", func(t *testing.T) {
		a := f.NewElementFromInt64(3)
		expected := a.Mul(a).Mul(a)
		got := a.Exp(big.NewInt(3))
		if !got.Equal(expected) {
			t.Fatalf("expected %s, got %s", expected, got)
		}
	})

	t.Run("negative reduces into range", func(t *testing.T) {
		a := f.NewElement(big.NewInt(-1))
		if a.IsZero() {
			t.Fatal("expected nonzero element")
		}
		if !a.Add(f.One()).IsZero() {
			t.Fatal("expected -1 + 1 == 0")
		}
	})
}

func TestPrimitiveRootOfUnity(t *testing.T) {
	f := DefaultPrimeField
	root := f.GetPrimitiveRootOfUnity(1024)
	if root == nil {
		t.Fatal("expected a root of unity of order 1024")
	}
	power := root.Exp(big.NewInt(1024))
	if !power.IsOne() {
		t.Fatalf("root^1024 should be 1, got %s", power)
	}
	half := root.Exp(big.NewInt(512))
	if half.IsOne() {
		t.Fatal("root should have exact order 1024, not a divisor")
	}
}
