package float

import (
	"fmt"
	"math"
	"strconv"

	"github.com/x448/float16"
	"golang.org/x/exp/constraints"

	"soft-float/bigint"
)

// mask returns a mask full of 1s, of b bits.
func mask(b int) uint64 {
	return uint64(1)<<b - 1
}

func (l layout) checkEncodable() {
	if 1+l.exponent+l.mantissa > 64 {
		panic(fmt.Sprintf("float: %d bit encoding does not fit in 64 bits", 1+l.exponent+l.mantissa))
	}
}

func fromUint64[S Semantics](neg bool, v uint64, rm RoundingMode) Float[S] {
	l := layoutOf[S]()
	return normalize[S](neg, int64(l.mantissa), bigint.FromUint64(1, v), rm, bigint.ExactlyZero)
}

// FromUint64 converts an integer, rounding to nearest if it has more
// significant bits than the mantissa.
func FromUint64[S Semantics](v uint64) Float[S] {
	return fromUint64[S](false, v, NearestTiesToEven)
}

func FromInt64[S Semantics](v int64) Float[S] {
	if v < 0 {
		// -MinInt64 wraps to itself, whose unsigned value is the right
		// magnitude.
		return fromUint64[S](true, uint64(-v), NearestTiesToEven)
	}
	return fromUint64[S](false, uint64(v), NearestTiesToEven)
}

// FromInteger converts any native integer.
func FromInteger[S Semantics, T constraints.Integer](v T) Float[S] {
	if v < 0 {
		return FromInt64[S](int64(v))
	}
	return FromUint64[S](uint64(v))
}

// FromBits decodes an IEEE-754 bit pattern laid out as 1 sign bit, E
// exponent bits and M mantissa bits.
func FromBits[S Semantics](v uint64) Float[S] {
	l := layoutOf[S]()
	l.checkEncodable()

	// Extract the biased exponent, the sign and the mantissa.
	biased := (v >> l.mantissa) & mask(l.exponent)
	sign := (v>>(l.exponent+l.mantissa))&1 == 1
	m := v & mask(l.mantissa)

	// Check for NaN and infinity.
	if biased == mask(l.exponent) {
		if m == 0 {
			return Inf[S](sign)
		}
		return NaN[S](sign)
	}

	exp := int64(biased) - l.bias
	if biased != 0 {
		// Add the implicit bit of normal numbers.
		m |= uint64(1) << l.mantissa
	} else {
		// Subnormals have no implicit bit and share the minimum exponent.
		exp++
	}
	return normalize[S](sign, exp, bigint.FromUint64(l.parts, m), NearestTiesToEven, bigint.ExactlyZero)
}

// Bits encodes the number as an IEEE-754 bit pattern. NaNs are encoded with
// the quiet bit as their only payload.
func (x Float[S]) Bits() uint64 {
	l := layoutOf[S]()
	l.checkEncodable()

	var exp, m uint64
	switch x.category {
	case CategoryInfinity:
		exp = mask(l.exponent)
	case CategoryNaN:
		exp = mask(l.exponent)
		m = uint64(1) << (l.mantissa - 1)
	case CategoryNormal:
		exp = uint64(x.exp + l.bias)
		// A number at the minimum exponent without a leading 1 is a
		// subnormal and is encoded with an all-zeros exponent.
		if x.exp == l.emin && x.mantissa.Bit(l.mantissa) == 0 {
			exp = 0
		}
		m = x.mantissa.Uint64() & mask(l.mantissa)
	}

	var bits uint64
	if x.sign {
		bits = 1
	}
	bits = bits<<l.exponent | exp
	bits = bits<<l.mantissa | m
	return bits
}

// Cast converts x to the format T, rounding to nearest when T is narrower.
func Cast[T, S Semantics](x Float[S]) Float[T] {
	return CastWithRM[T](x, NearestTiesToEven)
}

// CastWithRM converts x to the format T with the given rounding mode. The
// mantissa is reinterpreted with the exponent adjusted for the difference
// in mantissa widths and then normalized, which widens exactly and narrows
// with rounding.
func CastWithRM[T, S Semantics](x Float[S], rm RoundingMode) Float[T] {
	switch x.category {
	case CategoryZero:
		return Zero[T](x.sign)
	case CategoryInfinity:
		return Inf[T](x.sign)
	case CategoryNaN:
		return NaN[T](x.sign)
	}
	from := layoutOf[S]()
	to := layoutOf[T]()
	exp := x.exp - int64(from.mantissa) + int64(to.mantissa)
	return normalize[T](x.sign, exp, x.mantissa, rm, bigint.ExactlyZero)
}

func FromFloat32[S Semantics](f float32) Float[S] {
	return Cast[S](FromBits[Single](uint64(math.Float32bits(f))))
}

func FromFloat64[S Semantics](f float64) Float[S] {
	return Cast[S](FromBits[Double](math.Float64bits(f)))
}

func FromFloat16[S Semantics](f float16.Float16) Float[S] {
	return Cast[S](FromBits[Half](uint64(f.Bits())))
}

func (x Float[S]) Float32() float32 {
	return math.Float32frombits(uint32(Cast[Single](x).Bits()))
}

func (x Float[S]) Float64() float64 {
	return math.Float64frombits(Cast[Double](x).Bits())
}

func (x Float[S]) Float16() float16.Float16 {
	return float16.Frombits(uint16(Cast[Half](x).Bits()))
}

// Parse reads a decimal or hexadecimal floating point literal. The text is
// parsed as a float64 first, so formats wider than 64 bits only get 53 bits
// of precision from it.
func Parse[S Semantics](s string) (Float[S], error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Float[S]{}, fmt.Errorf("float: parsing %q: %w", s, err)
	}
	return FromFloat64[S](f), nil
}

// Text formats the number through its float64 value.
func (x Float[S]) Text(format byte, prec int) string {
	return strconv.FormatFloat(x.Float64(), format, prec, 64)
}
