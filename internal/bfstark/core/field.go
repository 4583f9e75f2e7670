// Package core provides the finite-field, extension-field, polynomial,
// Merkle, and FRI primitives the Brainfuck STARK verifier is built on.
package core

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Field is a prime field Fp, p = Modulus.
type Field struct {
	modulus *big.Int
}

// FieldElement is an element of a Field.
type FieldElement struct {
	field *Field
	value *big.Int
}

// NewField creates a prime field with the given modulus.
func NewField(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("modulus must be greater than 2")
	}
	return &Field{modulus: new(big.Int).Set(modulus)}, nil
}

// Modulus returns a copy of the field modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// NewElement reduces value modulo the field and wraps it.
func (f *Field) NewElement(value *big.Int) *FieldElement {
	normalized := new(big.Int).Mod(value, f.modulus)
	return &FieldElement{field: f, value: normalized}
}

// NewElementFromInt64 wraps an int64.
func (f *Field) NewElementFromInt64(value int64) *FieldElement {
	return f.NewElement(big.NewInt(value))
}

// NewElementFromUint64 wraps a uint64.
func (f *Field) NewElementFromUint64(value uint64) *FieldElement {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// RandomElement draws a uniform element using crypto/rand.
func (f *Field) RandomElement() (*FieldElement, error) {
	value, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random element: %w", err)
	}
	return f.NewElement(value), nil
}

// Zero returns the additive identity.
func (f *Field) Zero() *FieldElement { return f.NewElement(big.NewInt(0)) }

// One returns the multiplicative identity.
func (f *Field) One() *FieldElement { return f.NewElement(big.NewInt(1)) }

// Equals reports whether two fields share a modulus.
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// Big returns the element's value as a big.Int copy.
func (fe *FieldElement) Big() *big.Int { return new(big.Int).Set(fe.value) }

// Field returns the element's parent field.
func (fe *FieldElement) Field() *Field { return fe.field }

// Add performs field addition.
func (fe *FieldElement) Add(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot add elements from different fields")
	}
	return fe.field.NewElement(new(big.Int).Add(fe.value, other.value))
}

// Sub performs field subtraction.
func (fe *FieldElement) Sub(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot subtract elements from different fields")
	}
	return fe.field.NewElement(new(big.Int).Sub(fe.value, other.value))
}

// Neg returns the additive inverse.
func (fe *FieldElement) Neg() *FieldElement {
	return fe.field.NewElement(new(big.Int).Neg(fe.value))
}

// Mul performs field multiplication.
func (fe *FieldElement) Mul(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot multiply elements from different fields")
	}
	return fe.field.NewElement(new(big.Int).Mul(fe.value, other.value))
}

// Div performs field division (multiplication by inverse).
func (fe *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	if !fe.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot divide elements from different fields")
	}
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("division failed: %w", err)
	}
	return fe.Mul(inv), nil
}

// Inv computes the multiplicative inverse via the extended Euclidean algorithm.
func (fe *FieldElement) Inv() (*FieldElement, error) {
	if fe.IsZero() {
		return nil, fmt.Errorf("cannot compute inverse of zero")
	}
	gcd, x, _ := new(big.Int), new(big.Int), new(big.Int)
	y := new(big.Int)
	gcd.GCD(x, y, fe.value, fe.field.modulus)
	if gcd.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("inverse does not exist")
	}
	if x.Sign() < 0 {
		x.Add(x, fe.field.modulus)
	}
	return fe.field.NewElement(x), nil
}

// Exp performs field exponentiation by a non-negative exponent.
func (fe *FieldElement) Exp(exponent *big.Int) *FieldElement {
	return fe.field.NewElement(new(big.Int).Exp(fe.value, exponent, fe.field.modulus))
}

// ExpInt is a convenience wrapper around Exp for small int exponents.
func (fe *FieldElement) ExpInt(exponent int64) *FieldElement {
	return fe.Exp(big.NewInt(exponent))
}

// Equal reports value equality within the same field.
func (fe *FieldElement) Equal(other *FieldElement) bool {
	if other == nil || !fe.field.Equals(other.field) {
		return false
	}
	return fe.value.Cmp(other.value) == 0
}

// IsZero reports whether the element is the additive identity.
func (fe *FieldElement) IsZero() bool { return fe.value.Sign() == 0 }

// IsOne reports whether the element is the multiplicative identity.
func (fe *FieldElement) IsOne() bool { return fe.value.Cmp(big.NewInt(1)) == 0 }

// String renders the element's decimal value.
func (fe *FieldElement) String() string { return fe.value.String() }

// Bytes returns the big-endian byte representation (unpadded).
func (fe *FieldElement) Bytes() []byte { return fe.value.Bytes() }

// FixedBytes returns an 8-byte little-endian encoding, used for the
// canonical wire encoding of proof items (spec §6).
func (fe *FieldElement) FixedBytes() [8]byte {
	var out [8]byte
	b := fe.value.Bytes()
	for i := 0; i < len(b) && i < 8; i++ {
		out[i] = b[len(b)-1-i]
	}
	return out
}

// GetPrimitiveRootOfUnity returns a generator of the unique subgroup of
// order n, where n must divide p-1 and be a power of two. Returns nil if
// no such root exists for this field's modulus.
func (f *Field) GetPrimitiveRootOfUnity(n int) *FieldElement {
	if n <= 0 || (n&(n-1)) != 0 {
		return nil
	}
	pMinusOne := new(big.Int).Sub(f.modulus, big.NewInt(1))
	quotient, rem := new(big.Int).QuoRem(pMinusOne, big.NewInt(int64(n)), new(big.Int))
	if rem.Sign() != 0 {
		return nil
	}
	// DefaultGenerator is a generator of the full multiplicative group;
	// raising it to (p-1)/n yields a generator of the order-n subgroup.
	root := DefaultGenerator.Exp(quotient)
	if root.field != f {
		root = f.NewElement(root.Big())
	}
	return root
}

// DefaultPrimeField is the field used throughout this module: p = 3*2^30+1,
// chosen (as in the teacher repo) for having a large power-of-two-order
// multiplicative subgroup, which every FRI/LDE domain in this module needs.
var (
	DefaultPrimeField, _ = NewField(big.NewInt(3221225473))
	// DefaultGenerator generates the full multiplicative group of DefaultPrimeField.
	DefaultGenerator = DefaultPrimeField.NewElementFromInt64(5)
)
