// Package testutil provides the deterministic inputs shared by the tests: a
// linear-feedback shift register and a list of floating point values that
// tend to catch edge cases.
package testutil

import "math"

// SpecialValues returns a list of interesting values that various tests use
// to catch edge cases.
func SpecialValues() []float64 {
	return []float64{
		-math.NaN(),
		math.NaN(),
		math.Inf(1),
		math.Inf(-1),
		Epsilon,
		-Epsilon,
		0.000000000000000000000000000000000000001,
		-math.MaxFloat64,
		math.MaxFloat64,
		math.Pi,
		math.Ln2,
		math.Sqrt2,
		math.E,
		0.0,
		math.Copysign(0, -1),
		10.,
		-10.,
		-0.00001,
		0.1,
		355. / 113.,
		math.SmallestNonzeroFloat64,
		-math.SmallestNonzeroFloat64,
		0x1p-1022,
	}
}

// Epsilon is the difference between 1 and the next float64.
const Epsilon = 0x1p-52

// LFSR is a 32 bit linear-feedback shift register.
type LFSR struct {
	state uint32
}

func NewLFSR() *LFSR {
	return &LFSR{state: 0x13371337}
}

func (l *LFSR) next() {
	a := (l.state >> 24) & 1
	b := (l.state >> 23) & 1
	c := (l.state >> 22) & 1
	d := (l.state >> 17) & 1
	n := a ^ b ^ c ^ d ^ 1
	l.state <<= 1
	l.state |= n
}

// Uint32 returns the next 32 bits of the stream.
func (l *LFSR) Uint32() uint32 {
	var res uint32
	for i := 0; i < 32; i++ {
		l.next()
		res <<= 1
		res ^= l.state & 1
	}
	return res
}

// Uint64 returns the next 64 bits of the stream.
func (l *LFSR) Uint64() uint64 {
	hi := uint64(l.Uint32())
	return hi<<32 | uint64(l.Uint32())
}
