package core

// EvaluateHorner evaluates a base-field polynomial, given low-degree-first
// coefficients, at a base-field point using Horner's method.
func EvaluateHorner(coeffs []*FieldElement, point *FieldElement) *FieldElement {
	if len(coeffs) == 0 {
		return point.Field().Zero()
	}
	result := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = result.Mul(point).Add(coeffs[i])
	}
	return result
}

// EvaluateHornerExt evaluates a base-field polynomial at an extension-field
// point, used throughout the verifier's OOD step where z is drawn from Fq.
func EvaluateHornerExt(coeffs []*FieldElement, point *ExtFieldElement) *ExtFieldElement {
	f := point.Coeffs()[0].Field()
	if len(coeffs) == 0 {
		return ExtZero(f)
	}
	result := ExtFromBase(coeffs[len(coeffs)-1])
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = result.Mul(point).Add(ExtFromBase(coeffs[i]))
	}
	return result
}

// FoldHornerExt Horner-folds a sequence of extension-field values using an
// extension-field folding coefficient, as the verifier does when combining
// ood_eval_values into a single provided_ood value (spec §4.7 step 9).
func FoldHornerExt(values []*ExtFieldElement, coeff *ExtFieldElement) *ExtFieldElement {
	if len(values) == 0 {
		return ExtZero(coeff.Coeffs()[0].Field())
	}
	result := values[len(values)-1]
	for i := len(values) - 2; i >= 0; i-- {
		result = result.Mul(coeff).Add(values[i])
	}
	return result
}

// ZerofierAt evaluates the vanishing polynomial of the order-n subgroup
// generated by g, i.e. Z_H(x) = x^n - 1, at point x (extension field).
func ZerofierAt(x *ExtFieldElement, n int) *ExtFieldElement {
	f := x.Coeffs()[0].Field()
	xn := x.Exp(bigFromInt(n))
	return xn.Sub(ExtOne(f))
}
