package float

// Sqrt calculates the square root with the Newton-Raphson method,
// x' = (x + v/x) / 2, starting at max(2, v). The iterates decrease
// monotonically toward the root, so the loop stops as soon as an iterate
// fails to decrease. The result is not correctly rounded: it can be one ulp
// above the nearest value to the exact root.
func (x Float[S]) Sqrt() Float[S] {
	switch {
	case x.IsZero():
		// (+/-) zero
		return x
	case x.IsNaN() || x.IsNegative():
		return NaN[S](x.sign)
	case x.IsInf():
		return x
	}

	two := FromUint64[S](2)
	r := x
	if r.Less(two) {
		r = two
	}
	prev := r
	for {
		r = r.Add(x.Div(r)).Div(two)
		if prev.Less(r) || r.Equal(prev) {
			return r
		}
		prev = r
	}
}

// Rem returns the remainder of x / y with the sign of x, like C's fmod.
//
// Subtracting `y` in a loop would take as many steps as the quotient. We
// subtract `y` scaled by the largest power of two that does not overshoot
// instead, which at least halves the remainder on every step. Every
// subtraction is exact since the scaled divisor is within a factor of two
// of the remainder.
func (x Float[S]) Rem(y Float[S]) Float[S] {
	switch {
	case x.IsNaN() || y.IsNaN() || x.IsInf() || y.IsZero():
		return NaN[S](x.sign)
	case x.IsZero() || y.IsInf():
		return x
	}

	lhs := x.Abs()
	rhs := y.Abs()
	for lhs.category == CategoryNormal && lhs.GreaterEq(rhs) {
		scale := lhs.Logb() - rhs.Logb()
		// Scale `rhs` by a power of two. If we overshoot, take a step back.
		diff := rhs.Scale(scale, NearestTiesToEven)
		if diff.Greater(lhs) {
			diff = rhs.Scale(scale-1, NearestTiesToEven)
		}
		lhs = lhs.Sub(diff)
	}

	// The remainder takes the sign of x, zeros included.
	lhs.sign = x.sign
	return lhs
}
