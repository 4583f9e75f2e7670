package core

import (
	"fmt"
	"math/big"
)

// ExtFieldElement is an element of the degree-3 extension field Fq = Fp[x]/(x^3 - x - 10),
// used for Fiat-Shamir challenges, hints, and the running extension-column
// accumulators, exactly as spec.md's data model separates base-field trace
// cells from extension-field challenges/accumulators.
type ExtFieldElement struct {
	field  *Field
	coeffs [3]*FieldElement // c0 + c1*x + c2*x^2
}

// NewExtFieldElement builds an extension element from three base-field coefficients.
func NewExtFieldElement(f *Field, c0, c1, c2 *FieldElement) *ExtFieldElement {
	return &ExtFieldElement{field: f, coeffs: [3]*FieldElement{c0, c1, c2}}
}

// ExtFromBase lifts a base-field element into the extension field.
func ExtFromBase(fe *FieldElement) *ExtFieldElement {
	f := fe.field
	return NewExtFieldElement(f, fe, f.Zero(), f.Zero())
}

// ExtZero is the extension field's additive identity.
func ExtZero(f *Field) *ExtFieldElement {
	return NewExtFieldElement(f, f.Zero(), f.Zero(), f.Zero())
}

// ExtOne is the extension field's multiplicative identity.
func ExtOne(f *Field) *ExtFieldElement {
	return NewExtFieldElement(f, f.One(), f.Zero(), f.Zero())
}

// Coeffs returns the three base-field coefficients, low-degree first.
func (e *ExtFieldElement) Coeffs() [3]*FieldElement { return e.coeffs }

// Add performs coefficient-wise addition.
func (e *ExtFieldElement) Add(other *ExtFieldElement) *ExtFieldElement {
	return NewExtFieldElement(e.field,
		e.coeffs[0].Add(other.coeffs[0]),
		e.coeffs[1].Add(other.coeffs[1]),
		e.coeffs[2].Add(other.coeffs[2]),
	)
}

// Sub performs coefficient-wise subtraction.
func (e *ExtFieldElement) Sub(other *ExtFieldElement) *ExtFieldElement {
	return NewExtFieldElement(e.field,
		e.coeffs[0].Sub(other.coeffs[0]),
		e.coeffs[1].Sub(other.coeffs[1]),
		e.coeffs[2].Sub(other.coeffs[2]),
	)
}

// Neg returns the additive inverse.
func (e *ExtFieldElement) Neg() *ExtFieldElement {
	return NewExtFieldElement(e.field, e.coeffs[0].Neg(), e.coeffs[1].Neg(), e.coeffs[2].Neg())
}

// Mul performs polynomial multiplication modulo x^3 - x - 10, i.e.
// x^3 = x + 10, x^4 = x^2 + 10x.
func (e *ExtFieldElement) Mul(other *ExtFieldElement) *ExtFieldElement {
	a, b := e.coeffs, other.coeffs
	// (a0+a1x+a2x^2)(b0+b1x+b2x^2) = sum of degree-0..4 terms, reduced.
	d0 := a[0].Mul(b[0])
	d1 := a[0].Mul(b[1]).Add(a[1].Mul(b[0]))
	d2 := a[0].Mul(b[2]).Add(a[1].Mul(b[1])).Add(a[2].Mul(b[0]))
	d3 := a[1].Mul(b[2]).Add(a[2].Mul(b[1]))
	d4 := a[2].Mul(b[2])
	// x^3 = x + 10 ; x^4 = x^2 + 10x
	ten := e.field.NewElementFromInt64(10)
	c0 := d0.Add(d3.Mul(ten))
	c1 := d1.Add(d3).Add(d4.Mul(ten))
	c2 := d2.Add(d4)
	return NewExtFieldElement(e.field, c0, c1, c2)
}

// ScalarMul multiplies by a base-field scalar.
func (e *ExtFieldElement) ScalarMul(scalar *FieldElement) *ExtFieldElement {
	return NewExtFieldElement(e.field,
		e.coeffs[0].Mul(scalar), e.coeffs[1].Mul(scalar), e.coeffs[2].Mul(scalar))
}

// IsZero reports whether all coefficients are zero.
func (e *ExtFieldElement) IsZero() bool {
	return e.coeffs[0].IsZero() && e.coeffs[1].IsZero() && e.coeffs[2].IsZero()
}

// Equal reports coefficient-wise equality.
func (e *ExtFieldElement) Equal(other *ExtFieldElement) bool {
	if other == nil {
		return false
	}
	return e.coeffs[0].Equal(other.coeffs[0]) &&
		e.coeffs[1].Equal(other.coeffs[1]) &&
		e.coeffs[2].Equal(other.coeffs[2])
}

// Exp raises e to a non-negative exponent via square-and-multiply.
func (e *ExtFieldElement) Exp(exponent *big.Int) *ExtFieldElement {
	result := ExtOne(e.field)
	base := e
	exp := new(big.Int).Set(exponent)
	zero := big.NewInt(0)
	two := big.NewInt(2)
	for exp.Cmp(zero) > 0 {
		if new(big.Int).And(exp, big.NewInt(1)).Cmp(zero) != 0 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp.Div(exp, two)
	}
	return result
}

// Inv computes the multiplicative inverse by exponentiating to q-2, where
// q = p^3 is the extension field's order (Fermat's little theorem
// generalized to GF(p^3)).
func (e *ExtFieldElement) Inv() (*ExtFieldElement, error) {
	if e.IsZero() {
		return nil, fmt.Errorf("cannot invert zero extension element")
	}
	p := e.field.Modulus()
	q := new(big.Int).Exp(p, big.NewInt(3), nil)
	qMinus2 := new(big.Int).Sub(q, big.NewInt(2))
	return e.Exp(qMinus2), nil
}

// Div computes e * other^-1.
func (e *ExtFieldElement) Div(other *ExtFieldElement) (*ExtFieldElement, error) {
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("extension division failed: %w", err)
	}
	return e.Mul(inv), nil
}

// String renders the coefficient triple.
func (e *ExtFieldElement) String() string {
	return fmt.Sprintf("(%s + %s*x + %s*x^2)", e.coeffs[0], e.coeffs[1], e.coeffs[2])
}
