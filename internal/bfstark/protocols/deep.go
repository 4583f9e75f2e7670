package protocols

import (
	"fmt"
	"math/big"

	"github.com/vybium/bfstark-vm/internal/bfstark/air"
	"github.com/vybium/bfstark-vm/internal/bfstark/core"
)

// CompositionCoefficients are the (alpha_c, beta_c) pair the verifier draws
// for every constraint before recomputing expected_ood (spec §4.7 step 3).
type CompositionCoefficients struct {
	Alphas []*core.ExtFieldElement
	Betas  []*core.ExtFieldElement
}

// DrawCompositionCoefficients draws one (alpha, beta) pair per constraint,
// in the same order air.AllConstraints() returns them, so both prover and
// verifier index identically.
func DrawCompositionCoefficients(coin *PublicCoin, numConstraints int) CompositionCoefficients {
	cc := CompositionCoefficients{
		Alphas: make([]*core.ExtFieldElement, numConstraints),
		Betas:  make([]*core.ExtFieldElement, numConstraints),
	}
	for i := 0; i < numConstraints; i++ {
		cc.Alphas[i] = coin.DrawExt()
		cc.Betas[i] = coin.DrawExt()
	}
	return cc
}

// DeepCoefficients are the (alpha, beta) weights the verifier draws for
// each base/extension column, plus one alpha per composition row and the
// final degree-adjustment pair (spec §4.7 step 8, step 13).
type DeepCoefficients struct {
	BaseAlphas, BaseBetas []*core.ExtFieldElement
	ExtAlphas, ExtBetas   []*core.ExtFieldElement
	CompAlphas            []*core.ExtFieldElement
	DegAlpha, DegBeta     *core.ExtFieldElement
}

// DrawDeepCoefficients draws the DEEP composition coefficients (spec §4.7
// step 8): one (alpha,beta) pair per base column, one per extension column,
// one alpha per composition row, and one final degree-adjustment pair.
func DrawDeepCoefficients(coin *PublicCoin, numBase, numExt, numComp int) DeepCoefficients {
	dc := DeepCoefficients{
		BaseAlphas: make([]*core.ExtFieldElement, numBase),
		BaseBetas:  make([]*core.ExtFieldElement, numBase),
		ExtAlphas:  make([]*core.ExtFieldElement, numExt),
		ExtBetas:   make([]*core.ExtFieldElement, numExt),
		CompAlphas: make([]*core.ExtFieldElement, numComp),
	}
	for i := 0; i < numBase; i++ {
		dc.BaseAlphas[i] = coin.DrawExt()
		dc.BaseBetas[i] = coin.DrawExt()
	}
	for i := 0; i < numExt; i++ {
		dc.ExtAlphas[i] = coin.DrawExt()
		dc.ExtBetas[i] = coin.DrawExt()
	}
	for i := 0; i < numComp; i++ {
		dc.CompAlphas[i] = coin.DrawExt()
	}
	dc.DegAlpha = coin.DrawExt()
	dc.DegBeta = coin.DrawExt()
	return dc
}

// divisorAt evaluates 1/zerofier_c(z) for the given constraint kind (spec
// §4.7 step 6's three divisor formulas), where g is the trace domain
// generator and zH is Z_H(z) = z^N - 1.
//
// These are literally the reciprocal-zerofier weights Triton-VM-style STARKs
// call "divisors": boundary_zerofier(x) = x-1, terminal_zerofier(x) = x-g^-1,
// transition_zerofier(x) = Z_H(x)/(x-g^-1). Spec.md's own formulas for
// "divisor_c" are exactly these zerofiers' reciprocals, so the combination
// step 6 describes as "constraint_c(z)/divisor_c(z)" is read here as
// constraint_c(z) * divisor_c(z) — multiplying by the reciprocal-zerofier is
// the standard quotienting operation (constraint/zerofier), and matches how
// the three divisor formulas are themselves defined (see DESIGN.md's Open
// Question decisions for why the literal division reading would invert
// every other Triton-VM-derived formula in this file).
func divisorAt(field *core.Field, kind air.Kind, z, gInv, zH *core.ExtFieldElement) (*core.ExtFieldElement, error) {
	one := core.ExtOne(field)
	switch kind {
	case air.Boundary:
		denom := z.Sub(one)
		inv, err := denom.Inv()
		if err != nil {
			return nil, fmt.Errorf("boundary divisor: z lands on the domain's first point: %w", err)
		}
		return inv, nil
	case air.Terminal:
		denom := z.Sub(gInv)
		inv, err := denom.Inv()
		if err != nil {
			return nil, fmt.Errorf("terminal divisor: z lands on the domain's last point: %w", err)
		}
		return inv, nil
	case air.Transition:
		numerator := z.Sub(gInv)
		zHInv, err := zH.Inv()
		if err != nil {
			return nil, fmt.Errorf("transition divisor: z is a trace-domain point: %w", err)
		}
		return numerator.Mul(zHInv), nil
	default:
		return nil, fmt.Errorf("unknown constraint kind %v", kind)
	}
}

// degreeAdjustment computes d_c (spec §4.7 step 6) for a constraint of the
// given algebraic degree and kind, over a trace domain of size n.
func degreeAdjustment(compositionDegree, constraintDegree, n int, kind air.Kind) int {
	switch kind {
	case air.Transition:
		// divisor_degree = n-1
		return compositionDegree - (constraintDegree-1)*(n-1)
	default: // Boundary, Terminal: divisor_degree = 1
		return compositionDegree - constraintDegree*(n-1) + 1
	}
}

// RecomputeExpectedOod implements spec §4.7 step 6: folds every
// constraint's out-of-domain evaluation, weighted by its degree-adjusted
// composition coefficient and reciprocal-zerofier divisor, into a single
// expected composition-polynomial value at z.
//
// Any negative degree adjustment is a soundness bug (the composition degree
// budget was set too low for this AIR) and panics rather than returning a
// verdict, per spec §7's closing paragraph.
func RecomputeExpectedOod(field *core.Field, z *core.ExtFieldElement, n, compositionDegree int,
	curr, next air.TraceState, challenges air.Challenges, hints air.Hints, cc CompositionCoefficients) (*core.ExtFieldElement, error) {

	g := field.GetPrimitiveRootOfUnity(n)
	if g == nil {
		return nil, fmt.Errorf("field has no primitive root of unity of order %d", n)
	}
	gInvBase, err := g.Inv()
	if err != nil {
		return nil, fmt.Errorf("trace domain generator has no inverse: %w", err)
	}
	gInv := core.ExtFromBase(gInvBase)
	zH := core.ZerofierAt(z, n)

	constraints := air.AllConstraints()
	if len(cc.Alphas) != len(constraints) || len(cc.Betas) != len(constraints) {
		return nil, fmt.Errorf("composition coefficients: expected %d pairs, got %d/%d", len(constraints), len(cc.Alphas), len(cc.Betas))
	}

	expected := core.ExtZero(field)
	for i, constraint := range constraints {
		dC := degreeAdjustment(compositionDegree, constraint.Degree, n, constraint.Kind)
		if dC < 0 {
			panic(fmt.Sprintf("soundness bug: negative degree adjustment for constraint %q (d_c=%d)", constraint.Name, dC))
		}

		value := constraint.Eval(field, curr, next, challenges, hints)
		divisor, err := divisorAt(field, constraint.Kind, z, gInv, zH)
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", constraint.Name, err)
		}

		zPowD := z.Exp(big.NewInt(int64(dC)))
		weight := cc.Alphas[i].Mul(zPowD).Add(cc.Betas[i])
		term := weight.Mul(value).Mul(divisor)
		expected = expected.Add(term)
	}
	return expected, nil
}

// CompositionDegree is the maximum degree the composition polynomial's LDE
// is built to represent: the FRI/LDE domain has n*expansionFactor points,
// so a polynomial of degree up to that many points minus one is the largest
// this module ever commits to.
func CompositionDegree(n, expansionFactor int) int {
	return n*expansionFactor - 1
}

// DeepEvaluate computes the DEEP composition value at one queried domain
// point x (spec §4.7 step 13): a linear combination of every base/extension
// column's (curr,next)-anchored difference quotient, every composition
// row's ood-anchored difference quotient, and a final degree adjustment.
//
// kappa, the exponent relating x to the out-of-domain point for composition
// rows, is 1 throughout this module: the composition polynomial is
// committed as a single (unsegmented) codeword rather than split into
// ce_blowup_factor quotient segments, since segmenting is a prover-side
// commitment-size optimization with no bearing on verifier soundness (spec
// §1 scopes prover strategy out).
func DeepEvaluate(field *core.Field, x, z *core.ExtFieldElement, g *core.FieldElement,
	baseRow, extRow, compRow []*core.ExtFieldElement,
	oodCurrCols, oodNextCols, oodEvalValues []*core.ExtFieldElement,
	dc DeepCoefficients) (*core.ExtFieldElement, error) {

	if len(baseRow) != len(dc.BaseAlphas) || len(baseRow)+len(extRow) != len(oodCurrCols) || len(baseRow)+len(extRow) != len(oodNextCols) {
		return nil, fmt.Errorf("base row/coefficient/ood length mismatch: row=%d alphas=%d curr=%d next=%d",
			len(baseRow), len(dc.BaseAlphas), len(oodCurrCols), len(oodNextCols))
	}
	if len(extRow) != len(dc.ExtAlphas) {
		return nil, fmt.Errorf("extension row/coefficient length mismatch: row=%d alphas=%d", len(extRow), len(dc.ExtAlphas))
	}
	if len(compRow) != len(dc.CompAlphas) || len(compRow) != len(oodEvalValues) {
		return nil, fmt.Errorf("composition row/coefficient/ood length mismatch: row=%d alphas=%d ood=%d",
			len(compRow), len(dc.CompAlphas), len(oodEvalValues))
	}

	xMinusZ := x.Sub(z)
	xMinusZInv, err := xMinusZ.Inv()
	if err != nil {
		return nil, fmt.Errorf("deep evaluation: x coincides with z: %w", err)
	}
	zg := z.Mul(core.ExtFromBase(g))
	xMinusZg := x.Sub(zg)
	xMinusZgInv, err := xMinusZg.Inv()
	if err != nil {
		return nil, fmt.Errorf("deep evaluation: x coincides with z*g: %w", err)
	}

	sum := core.ExtZero(field)
	for i, val := range baseRow {
		currTerm := dc.BaseAlphas[i].Mul(val.Sub(oodCurrCols[i])).Mul(xMinusZInv)
		nextTerm := dc.BaseBetas[i].Mul(val.Sub(oodNextCols[i])).Mul(xMinusZgInv)
		sum = sum.Add(currTerm).Add(nextTerm)
	}
	baseCols := len(baseRow)
	for i, val := range extRow {
		currTerm := dc.ExtAlphas[i].Mul(val.Sub(oodCurrCols[baseCols+i])).Mul(xMinusZInv)
		nextTerm := dc.ExtBetas[i].Mul(val.Sub(oodNextCols[baseCols+i])).Mul(xMinusZgInv)
		sum = sum.Add(currTerm).Add(nextTerm)
	}

	xMinusZ1 := x.Sub(z) // kappa=1: x^kappa - z^kappa = x - z
	xMinusZ1Inv, err := xMinusZ1.Inv()
	if err != nil {
		return nil, fmt.Errorf("deep evaluation: composition term, x coincides with z: %w", err)
	}
	for i, val := range compRow {
		sum = sum.Add(dc.CompAlphas[i].Mul(val.Sub(oodEvalValues[i])).Mul(xMinusZ1Inv))
	}

	adjustment := dc.DegAlpha.Add(dc.DegBeta.Mul(x))
	return sum.Mul(adjustment), nil
}
