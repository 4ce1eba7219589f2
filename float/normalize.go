package float

import (
	"fmt"

	"soft-float/bigint"
)

type RoundingMode uint8

const (
	NearestTiesToEven RoundingMode = iota
	NearestTiesToAway
	TowardZero
	TowardPositive
	TowardNegative
)

func (rm RoundingMode) String() string {
	switch rm {
	case NearestTiesToEven:
		return "NearestTiesToEven"
	case NearestTiesToAway:
		return "NearestTiesToAway"
	case TowardZero:
		return "TowardZero"
	case TowardPositive:
		return "TowardPositive"
	case TowardNegative:
		return "TowardNegative"
	}
	return fmt.Sprintf("RoundingMode(%d)", uint8(rm))
}

// Determine whether the magnitude has to be incremented by one unit in the
// last place, given the sign of the number, the loss of the discarded bits
// and whether the retained mantissa is odd.
func (rm RoundingMode) roundUp(neg bool, loss bigint.LossFraction, odd bool) bool {
	if loss.IsExactlyZero() {
		return false
	}
	switch rm {
	case NearestTiesToEven:
		return loss.IsMTHalf() || (loss.IsExactlyHalf() && odd)
	case NearestTiesToAway:
		return !loss.IsLTHalf()
	case TowardPositive:
		return !neg
	case TowardNegative:
		return neg
	}
	return false
}

// normalize brings a raw number with the value mantissa * 2^(exp - M), whose
// mantissa may have any width and any alignment, into canonical form. `loss`
// describes bits that were discarded below the mantissa before the call.
//
// The steps are:
//  1. align the leading bit of the mantissa to bit M, right shifts record the
//     shifted out bits in `loss` and left shifts stop at the minimum exponent;
//  2. shift numbers below the minimum exponent further right, which gives
//     subnormals (or zero);
//  3. numbers above the maximum exponent become infinities;
//  4. round according to `rm`, which may carry into the exponent and overflow
//     once more.
func normalize[S Semantics](sign bool, exp int64, mantissa bigint.Int, rm RoundingMode, loss bigint.LossFraction) Float[S] {
	l := layoutOf[S]()
	if mantissa.IsZero() && loss.IsExactlyZero() {
		return Zero[S](sign)
	}

	m := mantissa.Resize(max(mantissa.Len(), 2*l.parts))
	target := int64(l.mantissa + 1)

	if m.IsZero() {
		// Everything was shifted out already, only the rounding is left.
		exp = l.emin
	} else if msb := int64(m.BitLen()); msb > target {
		var shifted bigint.LossFraction
		m, shifted = m.ShrLoss(uint(msb - target))
		loss = shifted.Combine(loss)
		exp += msb - target
	} else if msb < target {
		// Shifting left never moves bits in, callers only get here with an
		// exact mantissa.
		shift := min(target-msb, exp-l.emin)
		if shift > 0 {
			m = m.Shl(uint(shift))
			exp -= shift
		}
	}

	// Produce subnormals.
	if exp < l.emin {
		var shifted bigint.LossFraction
		m, shifted = m.ShrLoss(uint(l.emin - exp))
		loss = shifted.Combine(loss)
		exp = l.emin
	}

	if exp > l.emax {
		return Inf[S](sign)
	}

	if rm.roundUp(sign, loss, m.Bit(0) == 1) {
		m, _ = m.Inc()
		// Carry out of the mantissa: 1.111 + 0.001 = 10.000
		if int64(m.BitLen()) > target {
			m = m.Shr(1)
			exp++
			if exp > l.emax {
				return Inf[S](sign)
			}
		}
	}

	if m.IsZero() {
		return Zero[S](sign)
	}

	return Float[S]{
		sign:     sign,
		exp:      exp,
		mantissa: m.Resize(l.parts),
		category: CategoryNormal,
	}
}
