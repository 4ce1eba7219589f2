// Package math implements constants and elementary functions on top of the
// arithmetic of the float package, for any precision.
package math

import (
	"math/bits"

	"soft-float/float"
)

// Polynomial holds the coefficients of a polynomial, starting with the
// constant term.
type Polynomial[S float.Semantics] []float.Float[S]

// Eval evaluates the polynomial at a given point with Horner's Method
func (p Polynomial[S]) Eval(at float.Float[S]) float.Float[S] {
	var result float.Float[S]

	// Iterate over the coefficients of the polynomial in reverse order.
	for i := len(p) - 1; i >= 0; i-- {
		// Multiply the current result by 'at' (the point of evaluation).
		result = result.Mul(at).Add(p[i])
	}

	return result
}

// Pi computes π with the Gauss-Legendre (Brent-Salamin) algorithm, see
// Fast Multiple-Precision Evaluation of Elementary Functions, R. P. Brent,
// page 246. The number of correct digits doubles every step.
func Pi[S float.Semantics]() float.Float[S] {
	one := float.One[S]()
	two := float.FromUint64[S](2)
	four := float.FromUint64[S](4)

	a := one
	b := one.Div(two.Sqrt())
	t := one.Div(four)
	x := one

	var s S
	steps := 2*bits.Len(uint(s.MantissaBits())) + 8
	for i := 0; i < steps && !a.Equal(b); i++ {
		y := a
		a = a.Add(b).Div(two)
		b = b.Mul(y).Sqrt()
		t = t.Sub(x.Mul(a.Sub(y).Sqr()))
		x = x.Mul(two)
	}
	return a.Mul(a).Div(t)
}

// E computes Euler's number from the continued fraction
// e = 2 + 1/(1 + 1/(2 + 2/(3 + 3/(4 + ...)))).
func E[S float.Semantics]() float.Float[S] {
	one := float.One[S]()
	two := float.FromUint64[S](2)

	var s S
	term := one
	for i := 2*s.ExponentBits() - 1; i > 0; i-- {
		v := float.FromUint64[S](uint64(i))
		term = v.Add(v.Div(term))
	}
	return two.Add(one.Div(term))
}

// sinSeries holds the coefficients of the Taylor series of sin(x)/x as a
// polynomial in x^2: 1 - x^2/3! + x^4/5! - ...
func sinSeries[S float.Semantics]() Polynomial[S] {
	one := float.One[S]()
	p := make(Polynomial[S], 10)
	factorial := uint64(1)
	for i := range p {
		if i > 0 {
			factorial *= uint64(2*i) * uint64(2*i+1)
		}
		c := one.Div(float.FromUint64[S](factorial))
		if i%2 == 1 {
			c = c.Neg()
		}
		p[i] = c
	}
	return p
}

// sinReduced computes the sine of a small non-negative number. The argument
// is divided by three `steps` times before the series is evaluated, and the
// identity sin(3x) = 3sin(x) - 4sin(x)^3 brings the result back up.
func sinReduced[S float.Semantics](x float.Float[S], steps int) float.Float[S] {
	three := float.FromUint64[S](3)
	if steps == 0 {
		return x.Mul(sinSeries[S]().Eval(x.Sqr()))
	}
	sx := sinReduced(x.Div(three), steps-1)
	four := float.FromUint64[S](4)
	return three.Mul(sx).Sub(four.Mul(sx.Mul(sx).Mul(sx)))
}

// Sin returns the sine of x, see Fast Trigonometric functions for Arbitrary
// Precision number, H. Vestermark. The argument is reduced to [0, π/2]
// first, using the symmetries of the function.
func Sin[S float.Semantics](x float.Float[S]) float.Float[S] {
	switch {
	case x.IsZero():
		return x
	case !x.IsFinite():
		return float.NaN[S](x.Sign())
	}

	neg := x.IsNegative()
	val := x.Abs()

	pi := Pi[S]()
	twoPi := pi.Scale(1, float.TowardZero)
	halfPi := pi.Scale(-1, float.TowardZero)

	// sin(x) = sin(x mod 2π)
	if val.Greater(twoPi) {
		val = val.Rem(twoPi)
	}
	// sin(x) = -sin(x - π)
	if val.Greater(pi) {
		val = val.Sub(pi)
		neg = !neg
	}
	// sin(x) = sin(π - x)
	if val.Greater(halfPi) {
		val = pi.Sub(val)
	}

	res := sinReduced(val, 5)
	if neg {
		return res.Neg()
	}
	return res
}

// Cos returns the cosine of x as sin(|x| + π/2).
func Cos[S float.Semantics](x float.Float[S]) float.Float[S] {
	if !x.IsFinite() {
		return float.NaN[S](x.Sign())
	}
	halfPi := Pi[S]().Scale(-1, float.TowardZero)
	return Sin(x.Abs().Add(halfPi))
}
