// Package gadget constrains the witnesses that the hint package computes
// for the components of encoded floats, so circuits can rely on them.
package gadget

import (
	"math/big"
	"math/bits"

	"github.com/consensys/gnark/frontend"

	"soft-float/hint"
)

// Components of an encoded float, as returned by hint.DecodeFloatHint.
type Components struct {
	Sign       frontend.Variable
	Exponent   frontend.Variable
	Mantissa   frontend.Variable
	IsAbnormal frontend.Variable
}

// FloatGadget works on the encodings of floats with E exponent bits and M
// mantissa bits.
type FloatGadget struct {
	api     frontend.API
	checker *RangeChecker
	e, m    int
}

// New returns a gadget whose range checks are sized for arith.
func New(api frontend.API, e, m int, arith Arithmetization) *FloatGadget {
	return &FloatGadget{api, NewRangeChecker(api, 0, arith), e, m}
}

func pow2(n int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}

// exp2 computes 2^s for 0 <= s < 2^n.
func (f *FloatGadget) exp2(s frontend.Variable, n int) frontend.Variable {
	var res frontend.Variable = 1
	for i, b := range f.api.ToBinary(s, n) {
		res = f.api.Mul(res, f.api.Select(b, pow2(1<<i), 1))
	}
	return res
}

// Decode splits x into its components. Subnormals are normalized so that the
// mantissa always has its bit M set, zeros get the exponent emin-1-M and a
// zero mantissa.
func (f *FloatGadget) Decode(x frontend.Variable) Components {
	api := f.api
	bias := 1<<(f.e-1) - 1

	outputs, err := api.Compiler().NewHint(hint.DecodeFloatHint, 4, x, f.e, f.m)
	if err != nil {
		panic(err)
	}
	c := Components{outputs[0], outputs[1], outputs[2], outputs[3]}

	b := api.ToBinary(x, 1+f.e+f.m)
	fraction := api.FromBinary(b[:f.m]...)
	biased := api.FromBinary(b[f.m : f.m+f.e]...)
	api.AssertIsEqual(c.Sign, b[f.m+f.e])

	isAbnormal := api.IsZero(api.Sub(biased, 1<<f.e-1))
	api.AssertIsEqual(c.IsAbnormal, isAbnormal)
	isSmall := api.IsZero(biased)
	isZeroFraction := api.IsZero(fraction)
	isNaN := api.Mul(isAbnormal, api.Sub(1, isZeroFraction))
	isSubnormal := api.Mul(isSmall, api.Sub(1, isZeroFraction))

	// A subnormal mantissa is the fraction shifted left until bit M is set.
	shift := api.Select(isSubnormal, api.Sub(1, bias, c.Exponent), 0)
	shifted := api.Mul(fraction, f.exp2(shift, bits.Len(uint(f.m))))
	f.checker.Check(api.Select(isSubnormal, api.Sub(c.Mantissa, pow2(f.m)), 0), f.m)

	// Infinities and NaNs have the biased exponent 2*bias+1.
	normalExponent := api.Sub(biased, bias)
	normalMantissa := api.Select(isNaN, 0, api.Add(fraction, pow2(f.m)))
	smallExponent := api.Select(isZeroFraction, api.Sub(0, bias+f.m), c.Exponent)

	api.AssertIsEqual(c.Exponent, api.Select(isSmall, smallExponent, normalExponent))
	api.AssertIsEqual(c.Mantissa, api.Select(isSmall, shifted, normalMantissa))
	return c
}

// Normalize returns the shift that moves the highest set bit of mantissa
// to index length-1 and the shifted mantissa. The mantissa must fit in
// length bits, at most 64. A zero mantissa is shifted by length.
func (f *FloatGadget) Normalize(mantissa frontend.Variable, length int) (frontend.Variable, frontend.Variable) {
	if length < 1 || length > 64 {
		panic("gadget: normalize length out of range")
	}
	api := f.api
	f.checker.Check(mantissa, length)

	outputs, err := api.Compiler().NewHint(hint.NormalizeHint, 1, mantissa, length)
	if err != nil {
		panic(err)
	}
	shift := outputs[0]
	shifted := api.Mul(mantissa, f.exp2(shift, bits.Len(uint(length))))

	isZero := api.IsZero(mantissa)
	api.AssertIsEqual(api.Mul(isZero, api.Sub(shift, length)), 0)
	f.checker.Check(api.Select(isZero, 0, api.Sub(shifted, pow2(length-1))), length-1)
	return shift, shifted
}
