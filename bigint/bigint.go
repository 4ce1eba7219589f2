// Package bigint implements the fixed-width unsigned integers that back the
// mantissa of a soft float.
//
// An Int is a value type: it owns a fixed array of 64-bit limbs (least
// significant first) and a count of how many of them are in use. Copying an
// Int copies its limbs, so two floats never share mantissa storage, and no
// operation allocates.
package bigint

import (
	"fmt"
	"math/bits"
	"strings"
)

// MaxParts is the largest number of limbs an Int can hold.
const MaxParts = 8

// PartBits is the width of a single limb.
const PartBits = 64

type Int struct {
	parts [MaxParts]uint64
	n     int
}

// New returns a zero Int made of `parts` limbs.
func New(parts int) Int {
	if parts < 1 || parts > MaxParts {
		panic(fmt.Sprintf("bigint: invalid number of parts %d", parts))
	}
	return Int{n: parts}
}

// FromUint64 returns an Int made of `parts` limbs holding v.
func FromUint64(parts int, v uint64) Int {
	x := New(parts)
	x.parts[0] = v
	return x
}

// FromParts builds an Int from limbs given least significant first.
func FromParts(parts ...uint64) Int {
	x := New(len(parts))
	copy(x.parts[:], parts)
	return x
}

// Len returns the number of limbs in use.
func (x Int) Len() int {
	return x.n
}

// Width returns the number of bits the Int can hold.
func (x Int) Width() int {
	return x.n * PartBits
}

// Part returns the i-th limb.
func (x Int) Part(i int) uint64 {
	return x.parts[i]
}

// Uint64 returns the lowest limb.
func (x Int) Uint64() uint64 {
	return x.parts[0]
}

func (x Int) IsZero() bool {
	for i := 0; i < x.n; i++ {
		if x.parts[i] != 0 {
			return false
		}
	}
	return true
}

// Bit returns the value of the i-th bit. Bits beyond the width read as zero.
func (x Int) Bit(i int) uint {
	if i < 0 || i >= x.Width() {
		return 0
	}
	return uint(x.parts[i/PartBits]>>(i%PartBits)) & 1
}

// SetBit returns x with the i-th bit set to b.
func (x Int) SetBit(i int, b uint) Int {
	if i < 0 || i >= x.Width() {
		panic(fmt.Sprintf("bigint: bit %d out of range for %d bit integer", i, x.Width()))
	}
	mask := uint64(1) << (i % PartBits)
	if b == 0 {
		x.parts[i/PartBits] &^= mask
	} else {
		x.parts[i/PartBits] |= mask
	}
	return x
}

// BitLen returns the index of the most significant set bit plus one, and 0
// for a zero value.
func (x Int) BitLen() int {
	for i := x.n - 1; i >= 0; i-- {
		if x.parts[i] != 0 {
			return i*PartBits + bits.Len64(x.parts[i])
		}
	}
	return 0
}

// LeadingZeros counts the zero bits above the most significant set bit.
func (x Int) LeadingZeros() int {
	return x.Width() - x.BitLen()
}

// TrailingZeros counts the zero bits below the least significant set bit.
// A zero value has Width trailing zeros.
func (x Int) TrailingZeros() int {
	for i := 0; i < x.n; i++ {
		if x.parts[i] != 0 {
			return i*PartBits + bits.TrailingZeros64(x.parts[i])
		}
	}
	return x.Width()
}

func (x Int) checkLen(y Int) {
	if x.n != y.n {
		panic(fmt.Sprintf("bigint: mismatched widths %d and %d", x.n, y.n))
	}
}

// Add returns x + y and whether the sum carried out of the top limb.
func (x Int) Add(y Int) (Int, bool) {
	x.checkLen(y)
	var carry uint64
	for i := 0; i < x.n; i++ {
		x.parts[i], carry = bits.Add64(x.parts[i], y.parts[i], carry)
	}
	return x, carry != 0
}

// Sub returns x - y and whether the difference borrowed past the top limb.
func (x Int) Sub(y Int) (Int, bool) {
	x.checkLen(y)
	var borrow uint64
	for i := 0; i < x.n; i++ {
		x.parts[i], borrow = bits.Sub64(x.parts[i], y.parts[i], borrow)
	}
	return x, borrow != 0
}

// Inc returns x + 1 and whether it carried out.
func (x Int) Inc() (Int, bool) {
	return x.Add(FromUint64(x.n, 1))
}

// Mul returns the full product of x and y, which has twice as many limbs as
// the operands.
func (x Int) Mul(y Int) Int {
	x.checkLen(y)
	r := New(2 * x.n)
	for i := 0; i < x.n; i++ {
		if x.parts[i] == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < y.n; j++ {
			hi, lo := bits.Mul64(x.parts[i], y.parts[j])
			var c uint64
			lo, c = bits.Add64(lo, r.parts[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			r.parts[i+j] = lo
			carry = hi
		}
		r.parts[i+x.n] = carry
	}
	return r
}

// Shl returns x shifted left by k bits. Bits shifted past the width are
// dropped; shifting by the full width or more yields zero.
func (x Int) Shl(k uint) Int {
	if k == 0 {
		return x
	}
	r := New(x.n)
	if k >= uint(x.Width()) {
		return r
	}
	words := int(k / PartBits)
	shift := k % PartBits
	for i := x.n - 1; i >= words; i-- {
		v := x.parts[i-words] << shift
		if shift != 0 && i-words-1 >= 0 {
			v |= x.parts[i-words-1] >> (PartBits - shift)
		}
		r.parts[i] = v
	}
	return r
}

// Shr returns x shifted right by k bits, discarding the low bits.
func (x Int) Shr(k uint) Int {
	if k == 0 {
		return x
	}
	r := New(x.n)
	if k >= uint(x.Width()) {
		return r
	}
	words := int(k / PartBits)
	shift := k % PartBits
	for i := 0; i+words < x.n; i++ {
		v := x.parts[i+words] >> shift
		if shift != 0 && i+words+1 < x.n {
			v |= x.parts[i+words+1] << (PartBits - shift)
		}
		r.parts[i] = v
	}
	return r
}

// ShrLoss returns x shifted right by k bits together with the classification
// of the bits that were shifted out.
func (x Int) ShrLoss(k uint) (Int, LossFraction) {
	return x.Shr(k), LossOf(x, k)
}

// anyBelow reports whether any of the lowest k bits are set.
func (x Int) anyBelow(k uint) bool {
	if k == 0 {
		return false
	}
	if k >= uint(x.Width()) {
		return !x.IsZero()
	}
	words := int(k / PartBits)
	for i := 0; i < words; i++ {
		if x.parts[i] != 0 {
			return true
		}
	}
	rest := k % PartBits
	return rest != 0 && x.parts[words]&(uint64(1)<<rest-1) != 0
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Int) Cmp(y Int) int {
	x.checkLen(y)
	for i := x.n - 1; i >= 0; i-- {
		switch {
		case x.parts[i] < y.parts[i]:
			return -1
		case x.parts[i] > y.parts[i]:
			return 1
		}
	}
	return 0
}

// Resize changes the number of limbs. Widening zero-extends. Narrowing
// panics if any dropped limb is non-zero: values are never truncated
// silently.
func (x Int) Resize(parts int) Int {
	r := New(parts)
	for i := 0; i < x.n; i++ {
		if i < parts {
			r.parts[i] = x.parts[i]
		} else if x.parts[i] != 0 {
			panic(fmt.Sprintf("bigint: resizing %s to %d parts drops set bits", x, parts))
		}
	}
	return r
}

// String formats the value as a hexadecimal number.
func (x Int) String() string {
	var sb strings.Builder
	sb.WriteString("0x")
	top := x.n - 1
	for top > 0 && x.parts[top] == 0 {
		top--
	}
	fmt.Fprintf(&sb, "%x", x.parts[top])
	for i := top - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%016x", x.parts[i])
	}
	return sb.String()
}
