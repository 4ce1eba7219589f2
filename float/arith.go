package float

import (
	"fmt"

	"soft-float/bigint"
)

// Compute the absolute value of the number.
func (x Float[S]) Abs() Float[S] {
	x.sign = false
	return x
}

// Negate the number by flipping the sign.
func (x Float[S]) Neg() Float[S] {
	x.sign = !x.sign
	return x
}

// Add two numbers, rounding to nearest.
func (x Float[S]) Add(y Float[S]) Float[S] {
	return x.AddWithRM(y, NearestTiesToEven)
}

// Add two numbers with the given rounding mode.
//
// Rule of addition:
//
//	|       | +Inf | -Inf | NaN | other |
//	|-------|------|------|-----|-------|
//	| +Inf  | +Inf |  NaN | NaN | +Inf  |
//	| -Inf  |  NaN | -Inf | NaN | -Inf  |
//	| NaN   |  NaN |  NaN | NaN |  NaN  |
//	| other | +Inf | -Inf | NaN |       |
func (x Float[S]) AddWithRM(y Float[S], rm RoundingMode) Float[S] {
	switch {
	case x.IsNaN():
		return x
	case y.IsNaN():
		return y
	case x.IsInf() && y.IsInf():
		if x.sign != y.sign {
			return NaN[S](x.sign)
		}
		return x
	case x.IsInf():
		return x
	case y.IsInf():
		return y
	case x.IsZero() && y.IsZero():
		if x.sign == y.sign {
			return x
		}
		return Zero[S](rm == TowardNegative)
	case x.IsZero():
		return y
	case y.IsZero():
		return x
	}
	return add(x, y, rm)
}

// Subtract two numbers.
// This is implemented by negating `y` and adding it to `x`.
func (x Float[S]) Sub(y Float[S]) Float[S] {
	return x.AddWithRM(y.Neg(), NearestTiesToEven)
}

func (x Float[S]) SubWithRM(y Float[S], rm RoundingMode) Float[S] {
	return x.AddWithRM(y.Neg(), rm)
}

// add is the core of the addition, both operands are finite and non-zero.
// See Chapter 8. Algorithms for the Five Basic Operations, Handbook of
// Floating-Point Arithmetic.
func add[S Semantics](x, y Float[S], rm RoundingMode) Float[S] {
	if y.exp > x.exp {
		x, y = y, x
	}
	l := layoutOf[S]()
	width := 2 * l.parts
	xm := x.mantissa.Resize(width)
	ym := y.mantissa.Resize(width)

	// Align the mantissas by shifting the one with the larger exponent to
	// the left, so that the sum is exact. Beyond `guard` bits of distance
	// `y` can only affect the rounding, so it is shifted right instead and
	// the discarded bits are folded into its lowest bit. The guard bits
	// keep that sticky bit well below the rounding position.
	guard := int64(l.mantissa + 3)
	delta := x.exp - y.exp
	if delta > guard {
		var loss bigint.LossFraction
		ym, loss = ym.ShrLoss(uint(delta - guard))
		if !loss.IsExactlyZero() {
			ym = ym.SetBit(0, 1)
		}
		delta = guard
	}
	xm = xm.Shl(uint(delta))
	exp := x.exp - delta

	sign := x.sign
	var sum bigint.Int
	if x.sign == y.sign {
		var carry bool
		sum, carry = xm.Add(ym)
		if carry {
			panic(fmt.Sprintf("float: mantissa addition overflowed %d parts", width))
		}
	} else if xm.Cmp(ym) >= 0 {
		sum, _ = xm.Sub(ym)
	} else {
		// The operand assumed to be larger was not, flip the sign.
		sum, _ = ym.Sub(xm)
		sign = !sign
	}

	// Exact cancellation is +0, except when rounding toward negative.
	if sum.IsZero() {
		return Zero[S](rm == TowardNegative)
	}
	return normalize[S](sign, exp, sum, rm, bigint.ExactlyZero)
}

// Multiply two numbers, rounding to nearest.
func (x Float[S]) Mul(y Float[S]) Float[S] {
	return x.MulWithRM(y, NearestTiesToEven)
}

func (x Float[S]) MulWithRM(y Float[S], rm RoundingMode) Float[S] {
	// The result is negative if and only if the signs of x and y are different.
	sign := x.sign != y.sign
	switch {
	case x.IsNaN():
		return x
	case y.IsNaN():
		return y
	case x.IsInf() || y.IsInf():
		if x.IsZero() || y.IsZero() {
			return NaN[S](sign)
		}
		return Inf[S](sign)
	case x.IsZero() || y.IsZero():
		return Zero[S](sign)
	}

	// Both mantissas have M+1 bits, so the product has up to 2M+2 bits and
	// a unit of 2^(ex + ey - 2M).
	l := layoutOf[S]()
	mantissa := x.mantissa.Mul(y.mantissa)
	exp := x.exp + y.exp - int64(l.mantissa)
	return normalize[S](sign, exp, mantissa, rm, bigint.ExactlyZero)
}

// Square the number.
func (x Float[S]) Sqr() Float[S] {
	return x.Mul(x)
}

// Divide two numbers, rounding to nearest.
func (x Float[S]) Div(y Float[S]) Float[S] {
	return x.DivWithRM(y, NearestTiesToEven)
}

func (x Float[S]) DivWithRM(y Float[S], rm RoundingMode) Float[S] {
	sign := x.sign != y.sign
	switch {
	case x.IsNaN():
		return x
	case y.IsNaN():
		return y
	case x.IsInf():
		if y.IsInf() {
			return NaN[S](sign)
		}
		return Inf[S](sign)
	case y.IsInf():
		return Zero[S](sign)
	case y.IsZero():
		if x.IsZero() {
			return NaN[S](sign)
		}
		return Inf[S](sign)
	case x.IsZero():
		return Zero[S](sign)
	}

	l := layoutOf[S]()
	width := 2 * l.parts

	// Work on significands with the leading bit set, so that the quotient
	// of the two is in (1/2, 2). Shifting the dividend by M+3 leaves at
	// least two bits below the rounding position, and the remainder tells
	// the rest.
	shift := l.mantissa + 3
	num := x.Significand().Resize(width).Shl(uint(shift))
	den := y.Significand().Resize(width)
	quotient, remainder := divide(num, den)

	loss := bigint.ExactlyZero
	if !remainder.IsZero() {
		switch remainder.Shl(1).Cmp(den) {
		case -1:
			loss = bigint.LessThanHalf
		case 0:
			loss = bigint.ExactlyHalf
		default:
			loss = bigint.MoreThanHalf
		}
	}

	exp := x.Logb() - y.Logb() - int64(shift-l.mantissa)
	return normalize[S](sign, exp, quotient, rm, loss)
}

// divide performs long division one bit at a time, shifting the dividend
// into the remainder and subtracting the divisor whenever it fits.
func divide(num, den bigint.Int) (quotient, remainder bigint.Int) {
	quotient = bigint.New(num.Len())
	remainder = bigint.New(num.Len())
	for i := num.BitLen() - 1; i >= 0; i-- {
		remainder = remainder.Shl(1).SetBit(0, num.Bit(i))
		if remainder.Cmp(den) >= 0 {
			remainder, _ = remainder.Sub(den)
			quotient = quotient.SetBit(i, 1)
		}
	}
	return quotient, remainder
}

// Scale multiplies the number by 2^n, similar to scalbn.
func (x Float[S]) Scale(n int64, rm RoundingMode) Float[S] {
	if x.category != CategoryNormal {
		return x
	}
	// Anything beyond the full exponent range plus the mantissa width
	// overflows or underflows the same way, clamp to keep exp in range.
	l := layoutOf[S]()
	limit := 2 * (l.emax + int64(l.mantissa) + 2)
	n = max(-limit, min(n, limit))
	return normalize[S](x.sign, x.exp+n, x.mantissa, rm, bigint.ExactlyZero)
}

// RoundToIntegral rounds the number to an integer value with the given
// rounding mode.
func (x Float[S]) RoundToIntegral(rm RoundingMode) Float[S] {
	if x.category != CategoryNormal {
		return x
	}
	l := layoutOf[S]()
	fraction := int64(l.mantissa) - x.exp
	if fraction <= 0 {
		// Already an integer.
		return x
	}
	m, loss := x.mantissa.Resize(2 * l.parts).ShrLoss(uint(fraction))
	if rm.roundUp(x.sign, loss, m.Bit(0) == 1) {
		m, _ = m.Inc()
	}
	if m.IsZero() {
		return Zero[S](x.sign)
	}
	return normalize[S](x.sign, int64(l.mantissa), m, rm, bigint.ExactlyZero)
}

// Round the number toward zero to an integer.
func (x Float[S]) Trunc() Float[S] {
	return x.RoundToIntegral(TowardZero)
}

// Round the number toward negative infinity to an integer.
func (x Float[S]) Floor() Float[S] {
	return x.RoundToIntegral(TowardNegative)
}

// Round the number toward positive infinity to an integer.
func (x Float[S]) Ceil() Float[S] {
	return x.RoundToIntegral(TowardPositive)
}
