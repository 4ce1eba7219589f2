package float

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"soft-float/internal/testutil"
)

func TestSqrt(t *testing.T) {
	for i := uint64(0); i < 256; i++ {
		assert.Equal(t, float64(i), FromUint64[Double](i*i).Sqrt().Float64())
		assert.Equal(t, float32(i), FromUint64[Single](i*i).Sqrt().Float32())
	}

	// Categories and signs of the special values.
	for _, v := range testutil.SpecialValues() {
		want := math.Sqrt(v)
		got := f64(v).Sqrt()
		assert.Equal(t, math.IsInf(want, 0), got.IsInf(), "%v", v)
		assert.Equal(t, math.IsNaN(want), got.IsNaN(), "%v", v)
		if !got.IsNaN() {
			assert.Equal(t, math.Signbit(want), got.IsNegative(), "%v", v)
		}
	}

	for _, c := range [][2]float64{
		{1.5, 1.224744871391589},
		{2.3, 1.51657508881031},
		{6.7, 2.588435821108957},
		{7.9, 2.8106938645110393},
		{11.45, 3.383784863137726},
		{1049.3, 32.39290045673589},
		{90210.7, 300.35096137685326},
		{199120056003.73413, 446228.70369770494},
		{0.6666666666666666, 0.816496580927726},
		{0.4347826086956522, 0.6593804733957871},
		{0.14925373134328357, 0.3863337046431279},
		{0.12658227848101264, 0.35578403348241},
		{0.08733624454148473, 0.29552706228277087},
		{0.0009530162965786716, 0.030870962028719993},
		{1.1085159520988087e-5, 0.00332943831914455},
		{5.0120298432056786e-8, 0.0002238756316173263},
	} {
		assert.Equal(t, c[1], f64(c[0]).Sqrt().Float64(), "sqrt(%v)", c[0])
	}

	// Wider formats have enough precision to round the result correctly.
	assert.Equal(t, math.Sqrt2, FromUint64[Quad](2).Sqrt().Float64())
	assert.Equal(t, math.Sqrt(3), FromUint64[Octuple](3).Sqrt().Float64())
}

func TestSqrtWithinOneUlp(t *testing.T) {
	lfsr := testutil.NewLFSR()
	for i := 0; i < 500; i++ {
		bits := lfsr.Uint64() &^ (1 << 63)
		v := math.Float64frombits(bits)
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		want := math.Float64bits(math.Sqrt(v))
		got := f64(v).Sqrt().Bits()
		assert.LessOrEqual(t, max(got, want)-min(got, want), uint64(1), "sqrt(%v)", v)
	}
}

func TestRem(t *testing.T) {
	check := func(a, b float64) bool {
		return sameFloat64(t, math.Mod(a, b), f64(a).Rem(f64(b)).Float64(), "%v %% %v", a, b)
	}

	check(1.4, 2.5)
	check(2.4, 1.5)
	check(1000., math.Pi)
	check(10000000000000000000., math.Pi/1000.)
	check(10000000000000000000., math.Pi)
	check(100., math.Pi)
	check(100., -math.Pi)
	check(-100., math.Pi)
	check(0., 10.)
	check(math.Pi, 10.0)
	check(math.MaxFloat64, math.SmallestNonzeroFloat64)
	check(0x1p-1030, 0x1.8p-1070)

	lfsr := testutil.NewLFSR()
	for i := 0; i < 5000; i++ {
		if !check(math.Float64frombits(lfsr.Uint64()), math.Float64frombits(lfsr.Uint64())) {
			return
		}
	}

	for _, a := range testutil.SpecialValues() {
		for _, b := range testutil.SpecialValues() {
			check(a, b)
		}
	}

	assert.True(t, FromFloat64[Half](-7).Rem(FromFloat64[Half](2)).IsNegative())
	assert.Equal(t, -1., FromFloat64[Half](-7).Rem(FromFloat64[Half](2)).Float64())
}

// minNum and maxNum ignore a NaN operand, unlike math.Min and math.Max.
func minNum(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	}
	return math.Min(a, b)
}

func maxNum(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	}
	return math.Max(a, b)
}

func TestMinMax(t *testing.T) {
	check := func(a, b float64) {
		sameFloat64(t, minNum(a, b), f64(a).Min(f64(b)).Float64(), "min(%v, %v)", a, b)
		sameFloat64(t, maxNum(a, b), f64(a).Max(f64(b)).Float64(), "max(%v, %v)", a, b)
	}

	for _, a := range testutil.SpecialValues() {
		for _, b := range testutil.SpecialValues() {
			check(a, b)
		}
	}

	lfsr := testutil.NewLFSR()
	for i := 0; i < 100; i++ {
		check(math.Float64frombits(lfsr.Uint64()), math.Float64frombits(lfsr.Uint64()))
	}
}

func TestAbs(t *testing.T) {
	for _, v := range testutil.SpecialValues() {
		sameFloat64(t, math.Abs(v), f64(v).Abs().Float64(), "%v", v)
	}
	assert.False(t, NaN[Single](true).Abs().IsNegative())
	assert.True(t, Inf[Single](false).Neg().IsNegative())
}

func TestCmp(t *testing.T) {
	check := func(a, b float64) {
		x, y := f64(a), f64(b)
		_, ordered := x.Cmp(y)
		assert.Equal(t, !math.IsNaN(a) && !math.IsNaN(b), ordered, "%v <> %v", a, b)
		assert.Equal(t, a == b, x.Equal(y), "%v == %v", a, b)
		assert.Equal(t, a < b, x.Less(y), "%v < %v", a, b)
		assert.Equal(t, a <= b, x.LessEq(y), "%v <= %v", a, b)
		assert.Equal(t, a > b, x.Greater(y), "%v > %v", a, b)
		assert.Equal(t, a >= b, x.GreaterEq(y), "%v >= %v", a, b)
	}

	values := testutil.SpecialValues()
	for _, a := range values {
		for _, b := range values {
			check(a, b)
		}
	}

	lfsr := testutil.NewLFSR()
	for i := 0; i < 1000; i++ {
		a := math.Float64frombits(lfsr.Uint64())
		check(a, math.Float64frombits(lfsr.Uint64()))
		check(a, math.Nextafter(a, 0))
		check(a, -a)
	}

	c, ok := Zero[Half](true).Cmp(Zero[Half](false))
	assert.True(t, ok)
	assert.Zero(t, c)
}
