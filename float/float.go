package float

import (
	"fmt"

	"soft-float/bigint"
)

// Semantics describes the shape of a floating point format: the number of
// bits in the encoded exponent, the number of bits in the encoded mantissa
// (without the leading bit), and the number of 64-bit limbs used to store
// the mantissa.
type Semantics interface {
	ExponentBits() int
	MantissaBits() int
	Parts() int
}

type Half struct{}

func (Half) ExponentBits() int { return 5 }
func (Half) MantissaBits() int { return 10 }
func (Half) Parts() int        { return 1 }

type BFloat struct{}

func (BFloat) ExponentBits() int { return 8 }
func (BFloat) MantissaBits() int { return 7 }
func (BFloat) Parts() int        { return 1 }

type Single struct{}

func (Single) ExponentBits() int { return 8 }
func (Single) MantissaBits() int { return 23 }
func (Single) Parts() int        { return 1 }

type Double struct{}

func (Double) ExponentBits() int { return 11 }
func (Double) MantissaBits() int { return 52 }
func (Double) Parts() int        { return 1 }

type Quad struct{}

func (Quad) ExponentBits() int { return 15 }
func (Quad) MantissaBits() int { return 112 }
func (Quad) Parts() int        { return 2 }

type Octuple struct{}

func (Octuple) ExponentBits() int { return 19 }
func (Octuple) MantissaBits() int { return 236 }
func (Octuple) Parts() int        { return 4 }

type (
	FP16  = Float[Half]
	BF16  = Float[BFloat]
	FP32  = Float[Single]
	FP64  = Float[Double]
	FP128 = Float[Quad]
	FP256 = Float[Octuple]
)

// Category is the class of a floating point value. A Normal value may be
// subnormal, in which case its exponent is the minimum exponent and its
// leading mantissa bit is 0.
type Category uint8

const (
	CategoryZero Category = iota
	CategoryNormal
	CategoryInfinity
	CategoryNaN
)

func (c Category) String() string {
	switch c {
	case CategoryZero:
		return "Zero"
	case CategoryNormal:
		return "Normal"
	case CategoryInfinity:
		return "Infinity"
	case CategoryNaN:
		return "NaN"
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// layout holds the derived constants of a Semantics.
type layout struct {
	exponent int
	mantissa int
	parts    int
	bias     int64
	emin     int64
	emax     int64
}

func layoutOf[S Semantics]() layout {
	var s S
	l := layout{
		exponent: s.ExponentBits(),
		mantissa: s.MantissaBits(),
		parts:    s.Parts(),
	}
	// The mantissa has to fit its storage, and twice the mantissa plus the
	// guard bits used by addition and division has to fit the scratch space.
	if l.exponent < 2 || l.exponent > 30 ||
		l.mantissa < 2 ||
		2*l.parts > bigint.MaxParts ||
		l.mantissa+1 > l.parts*bigint.PartBits ||
		2*l.mantissa+8 > 2*l.parts*bigint.PartBits {
		panic(fmt.Sprintf("float: unsupported semantics %T (E=%d, M=%d, parts=%d)", s, l.exponent, l.mantissa, l.parts))
	}
	l.bias = int64(1)<<(l.exponent-1) - 1
	l.emin = 1 - l.bias
	l.emax = l.bias
	return l
}

// BitWidth returns the number of bits in the IEEE encoding of S.
func BitWidth[S Semantics]() int {
	l := layoutOf[S]()
	return 1 + l.exponent + l.mantissa
}

// Bias returns the exponent bias of S.
func Bias[S Semantics]() int64 {
	return layoutOf[S]().bias
}

// ExponentBounds returns the smallest and the largest exponent of a normal
// number of S.
func ExponentBounds[S Semantics]() (int64, int64) {
	l := layoutOf[S]()
	return l.emin, l.emax
}

// Float is a binary floating point number with the shape given by S.
//
// The mantissa is stored with an explicit leading bit at index M, so a
// normal number looks like 1.xxxx and a subnormal like 0.xxxx, and the value
// of a Normal float is mantissa * 2^(exp - M). The zero value is +0.
type Float[S Semantics] struct {
	sign     bool
	exp      int64
	mantissa bigint.Int
	category Category
}

// Zero returns a zero with the given sign.
func Zero[S Semantics](neg bool) Float[S] {
	return Float[S]{sign: neg, category: CategoryZero}
}

// Inf returns an infinity with the given sign.
func Inf[S Semantics](neg bool) Float[S] {
	return Float[S]{sign: neg, category: CategoryInfinity}
}

// NaN returns a NaN with the given sign.
func NaN[S Semantics](neg bool) Float[S] {
	return Float[S]{sign: neg, category: CategoryNaN}
}

func One[S Semantics]() Float[S] {
	return FromUint64[S](1)
}

// New builds a float from its components, with the value
// mantissa * 2^(exp - M). It panics if the exponent is outside the range of
// normal exponents or if the mantissa is wider than M+1 bits: both are
// programming errors, not numeric conditions.
func New[S Semantics](sign bool, exp int64, mantissa bigint.Int) Float[S] {
	l := layoutOf[S]()
	if exp < l.emin || exp > l.emax {
		panic(fmt.Sprintf("float: exponent %d out of range [%d, %d]", exp, l.emin, l.emax))
	}
	if mantissa.BitLen() > l.mantissa+1 {
		panic(fmt.Sprintf("float: mantissa %s wider than %d bits", mantissa, l.mantissa+1))
	}
	return normalize[S](sign, exp, mantissa, NearestTiesToEven, bigint.ExactlyZero)
}

func (x Float[S]) Category() Category { return x.category }

// Sign returns true if the sign bit is set, including for -0 and NaNs.
func (x Float[S]) Sign() bool { return x.sign }

func (x Float[S]) IsNegative() bool { return x.sign }
func (x Float[S]) IsZero() bool     { return x.category == CategoryZero }
func (x Float[S]) IsInf() bool      { return x.category == CategoryInfinity }
func (x Float[S]) IsNaN() bool      { return x.category == CategoryNaN }

// IsFinite reports whether x is a zero, a normal or a subnormal number.
func (x Float[S]) IsFinite() bool {
	return x.category == CategoryZero || x.category == CategoryNormal
}

// IsNormal reports whether x is a normal number in the IEEE sense, i.e. not
// zero, subnormal, infinite or NaN.
func (x Float[S]) IsNormal() bool {
	return x.category == CategoryNormal && x.mantissa.Bit(layoutOf[S]().mantissa) == 1
}

func (x Float[S]) IsSubnormal() bool {
	return x.category == CategoryNormal && x.mantissa.Bit(layoutOf[S]().mantissa) == 0
}

// Exponent returns the unbiased exponent. Zeros report the exponent of the
// all-zeros encoding and infinities and NaNs the one of the all-ones
// encoding.
func (x Float[S]) Exponent() int64 {
	l := layoutOf[S]()
	switch x.category {
	case CategoryZero:
		return -l.bias
	case CategoryNormal:
		return x.exp
	}
	return l.bias + 1
}

// Mantissa returns the mantissa including the explicit leading bit.
func (x Float[S]) Mantissa() bigint.Int {
	l := layoutOf[S]()
	switch x.category {
	case CategoryNormal:
		return x.mantissa
	case CategoryNaN:
		return bigint.New(l.parts).SetBit(l.mantissa-1, 1)
	}
	return bigint.New(l.parts)
}

// Logb returns the exponent of the most significant set bit, which for
// subnormals is below the minimum exponent. It panics for non-finite values
// and zeros.
func (x Float[S]) Logb() int64 {
	if x.category != CategoryNormal {
		panic(fmt.Sprintf("float: Logb of %s", x.category))
	}
	l := layoutOf[S]()
	return x.exp - int64(l.mantissa+1-x.mantissa.BitLen())
}

// Significand returns the mantissa shifted so that the leading bit is set,
// matching the exponent returned by Logb.
func (x Float[S]) Significand() bigint.Int {
	if x.category != CategoryNormal {
		panic(fmt.Sprintf("float: Significand of %s", x.category))
	}
	l := layoutOf[S]()
	return x.mantissa.Shl(uint(l.mantissa + 1 - x.mantissa.BitLen()))
}

// String dumps the components of the number.
func (x Float[S]) String() string {
	s := 0
	if x.sign {
		s = 1
	}
	switch x.category {
	case CategoryZero:
		return fmt.Sprintf("FP[S=%d : Zero]", s)
	case CategoryInfinity:
		return fmt.Sprintf("FP[S=%d : Inf]", s)
	case CategoryNaN:
		return fmt.Sprintf("FP[S=%d : NaN]", s)
	}
	return fmt.Sprintf("FP[S=%d : E=%d : M=%s]", s, x.exp, x.mantissa)
}
