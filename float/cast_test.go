package float

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"soft-float/internal/testutil"
)

func TestRoundTripNativeFloatCast(t *testing.T) {
	f := math.Float32frombits(0x41700000)
	assert.Equal(t, f, FromFloat32[Single](f).Float32())

	pi := 355. / 113.
	assert.Equal(t, pi, FromFloat64[Double](pi).Float64())

	assert.True(t, f64(math.NaN()).IsNaN())
	assert.False(t, f64(math.NaN()).IsInf())
	assert.True(t, f64(math.Inf(1)).IsInf())
	assert.False(t, f64(math.Inf(1)).IsNaN())
	assert.True(t, f64(math.Inf(-1)).IsInf())

	a := math.Float32frombits(0x3f8fffff)
	wide := FromFloat32[Double](a)
	assert.Equal(t, a, wide.Float32())
	assert.Equal(t, a, Cast[Single](wide).Float32())

	z := FromFloat32[Single](0)
	assert.False(t, z.IsNormal())
	assert.Equal(t, float32(0), z.Float32())
}

func TestCastEasy(t *testing.T) {
	for _, v := range []uint32{0x3f8fffff, 0x40800000, 0x3f000000, 0xc60b40ec, 0xbc675793} {
		want := math.Float32frombits(v)
		wide := FromFloat32[Double](want)
		assert.Equal(t, want, wide.Float32())
		assert.Equal(t, want, Cast[Single](wide).Float32())
		assert.Equal(t, want, Cast[Single](Cast[Quad](wide)).Float32())
	}
}

func TestCastFromIntegers(t *testing.T) {
	pi := 355. / 133.
	e := 193. / 71.

	assert.Equal(t, float32(1<<32), FromInt64[Single](1<<32).Float32())
	assert.Equal(t, float32(1<<34), FromInt64[Single](1<<34).Float32())
	assert.Equal(t, float32(pi), FromFloat64[Single](pi).Float32())
	assert.Equal(t, float32(e), FromFloat64[Single](e).Float32())
	assert.Equal(t, float32(8388610), FromUint64[Single](8388610).Float32())

	for i := uint64(0); i < 1<<16; i++ {
		require.Equal(t, float32(i<<12), FromUint64[Single](i<<12).Float32(), "%d", i<<12)
	}

	assert.Equal(t, 0., FromInt64[Double](0).Float64())
	assert.Equal(t, 65504., FromInt64[Half](65500).Float64())
	assert.Equal(t, 65504., FromInt64[Half](65504).Float64())
	assert.Equal(t, 65504., FromInt64[Half](65519).Float64())
	assert.Equal(t, math.Inf(1), FromInt64[Half](65520).Float64())
	assert.Equal(t, math.Inf(1), FromInt64[Half](65536).Float64())

	for i := int64(-100); i < 100; i++ {
		assert.Equal(t, FromFloat64[Single](float64(i)).Float32(), FromInt64[Single](i).Float32())
	}

	assert.Equal(t, -0x1p63, FromInt64[Double](math.MinInt64).Float64())
	assert.Equal(t, 0x1p64, FromUint64[Double](math.MaxUint64).Float64())
	assert.Equal(t, -7., FromInteger[Double](int8(-7)).Float64())
	assert.Equal(t, 200., FromInteger[Double](uint8(200)).Float64())
}

func TestCastZeroNaNInf(t *testing.T) {
	assert.True(t, math.IsNaN(NaN[Double](true).Float64()))
	assert.Equal(t, math.Float64bits(0), math.Float64bits(Zero[Double](false).Float64()))
	assert.Equal(t, math.Float64bits(math.Copysign(0, -1)), math.Float64bits(Zero[Double](true).Float64()))

	a := FromFloat32[Single](math.Float32frombits(0x3f8fffff))
	assert.False(t, a.IsInf())
	assert.False(t, a.IsNaN())
	assert.False(t, a.IsNegative())

	a = FromFloat32[Single](math.Float32frombits(0xf48fffff))
	assert.False(t, a.IsInf())
	assert.False(t, a.IsNaN())
	assert.True(t, a.IsNegative())

	a = FromFloat32[Single](math.Float32frombits(0xff800000))
	assert.True(t, a.IsInf())
	assert.True(t, a.IsNegative())

	a = FromFloat32[Single](math.Float32frombits(0xffc00000))
	assert.True(t, a.IsNaN())
	assert.True(t, a.IsNegative())

	assert.True(t, f64(math.Float64frombits(mask(32)<<32)).IsNaN())

	// Casting propagates infinities and NaNs.
	b := Cast[Double](FromBits[Single](0xff800000))
	assert.True(t, b.IsInf())
	assert.True(t, b.IsNegative())
	assert.True(t, Cast[Half](NaN[Quad](false)).IsNaN())
}

func TestCastDown(t *testing.T) {
	for _, v := range []float64{0.3, 0.1, 14151241515., 14151215., 0.0000000001, 1000000000.} {
		assert.Equal(t, math.Float64bits(v), math.Float64bits(f64(v).Float64()))
		assert.Equal(t, float32(v), f64(v).Float32())
	}

	// Difficult values such as infinities, NaNs and subnormals.
	for _, v := range testutil.SpecialValues() {
		sameFloat64(t, v, f64(v).Float64(), "%v", v)
		sameFloat32(t, float32(v), f64(v).Float32(), "%v", v)
	}

	// Wide values overflow the narrow formats.
	assert.True(t, Cast[Single](f64(1e300)).IsInf())
	assert.True(t, Cast[Half](f64(-1e6)).IsInf())
	assert.True(t, Cast[Half](f64(-1e-9)).IsZero())
	assert.True(t, Cast[Half](f64(-1e-9)).IsNegative())
}

func TestCastWithRM(t *testing.T) {
	third := f64(1).Div(f64(3))
	assert.Equal(t, uint64(0x3eaaaaab), Cast[Single](third).Bits())
	assert.Equal(t, uint64(0x3eaaaaaa), CastWithRM[Single](third, TowardZero).Bits())
	assert.Equal(t, uint64(0x3eaaaaaa), CastWithRM[Single](third, TowardNegative).Bits())
	assert.Equal(t, uint64(0x3eaaaaab), CastWithRM[Single](third, TowardPositive).Bits())
	assert.Equal(t, uint64(0xbeaaaaab), CastWithRM[Single](third.Neg(), TowardNegative).Bits())
}

func TestLoadStoreAllFloat32(t *testing.T) {
	// Load and store normals and subnormals.
	for i := uint64(0); i < 1<<16; i++ {
		in := math.Float32frombits(uint32(i << 10))
		out := FromFloat32[Single](in).Float32()
		if !sameFloat32(t, in, out, "%#x", i<<10) {
			return
		}
	}
}

func TestRoundTripBits(t *testing.T) {
	lfsr := testutil.NewLFSR()
	for i := 0; i < 5000; i++ {
		v := lfsr.Uint64()
		x := FromBits[Double](v)
		if x.IsNaN() {
			continue
		}
		require.Equal(t, v, x.Bits(), "%#x", v)
	}

	// Every half precision pattern survives widening and narrowing back.
	for v := uint64(0); v < 1<<16; v++ {
		x := FromBits[Half](v)
		if x.IsNaN() {
			assert.True(t, Cast[Half](Cast[Quad](x)).IsNaN())
			continue
		}
		require.Equal(t, v, Cast[Half](Cast[Single](x)).Bits(), "%#x", v)
		require.Equal(t, v, Cast[Half](Cast[Octuple](x)).Bits(), "%#x", v)
	}

	assert.Equal(t, uint64(0x7e00), NaN[Half](false).Bits())
	assert.Panics(t, func() { One[Quad]().Bits() })
	assert.Panics(t, func() { FromBits[Octuple](0) })
}

func TestFloat16(t *testing.T) {
	for v := uint16(0); ; v++ {
		h := float16.Frombits(v)
		x := FromFloat16[Half](h)
		if h.IsNaN() {
			assert.True(t, x.IsNaN())
		} else {
			// The x448 package converts through float32 exactly.
			require.Equal(t, h.Float32(), x.Float32(), "%#x", v)
			require.Equal(t, v, x.Float16().Bits(), "%#x", v)
		}
		if v == math.MaxUint16 {
			break
		}
	}

	lfsr := testutil.NewLFSR()
	for i := 0; i < 5000; i++ {
		f := math.Float32frombits(lfsr.Uint32())
		if f != f {
			continue
		}
		// Both round to nearest even, including into subnormals.
		want := float16.Fromfloat32(f)
		got := FromFloat32[Single](f).Float16()
		require.Equal(t, want.Bits(), got.Bits(), "%v", f)
	}
}

func TestBFloat16(t *testing.T) {
	lfsr := testutil.NewLFSR()
	for i := 0; i < 5000; i++ {
		bits := lfsr.Uint32()
		f := math.Float32frombits(bits)
		if f != f {
			continue
		}
		// bfloat16 is the upper half of a float32, rounded to nearest even.
		want := (uint64(bits) + 0x7fff + uint64((bits>>16)&1)) >> 16
		got := Cast[BFloat](FromFloat32[Single](f)).Bits()
		require.Equal(t, want, got, "%#x", bits)
	}
}

func TestParseText(t *testing.T) {
	x, err := Parse[Double]("3.25")
	require.NoError(t, err)
	assert.Equal(t, 3.25, x.Float64())

	x, err = Parse[Double]("-0x1p-1074")
	require.NoError(t, err)
	assert.Equal(t, -math.SmallestNonzeroFloat64, x.Float64())

	h, err := Parse[Half]("1e10")
	require.NoError(t, err)
	assert.True(t, h.IsInf())

	_, err = Parse[Single]("pi")
	assert.ErrorContains(t, err, `"pi"`)

	assert.Equal(t, "0.5", f64(0.5).Text('g', -1))
	assert.Equal(t, "-Inf", Inf[Quad](true).Text('g', -1))
}
