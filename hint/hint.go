// Package hint provides gnark solver hints that compute floating point
// witnesses with the soft-float engine. A circuit asks for the IEEE-754
// encoding of a result through a hint and then constrains it.
//
// Every operation hint takes the encoded operands followed by the exponent
// and mantissa widths E and M, and outputs the encoded result.
package hint

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"

	"soft-float/bigint"
	"soft-float/float"
	sfmath "soft-float/math"
)

func init() {
	solver.RegisterHint(DecodeFloatHint)
	solver.RegisterHint(NormalizeHint)
	solver.RegisterHint(AddHint)
	solver.RegisterHint(SubHint)
	solver.RegisterHint(MulHint)
	solver.RegisterHint(DivHint)
	solver.RegisterHint(RemHint)
	solver.RegisterHint(SqrtHint)
	solver.RegisterHint(SinHint)
}

var (
	ErrUnsupportedShape = errors.New("unsupported float shape")
	ErrArity            = errors.New("wrong number of inputs or outputs")
	ErrOperand          = errors.New("operand out of range")
)

type op int

const (
	opAdd op = iota
	opSub
	opMul
	opDiv
	opRem
	opSqrt
	opSin
	opCount
)

type unaryFunc func(uint64) uint64
type binaryFunc func(uint64, uint64) uint64

// engine holds the operations of one float shape, working on encodings.
type engine struct {
	exponent, mantissa int
	unary              [opCount]unaryFunc
	binary             [opCount]binaryFunc
	decode             func(uint64) (sign bool, exponent int64, significand uint64, abnormal bool)
}

func engineFor[S float.Semantics]() *engine {
	var s S
	un := func(f func(float.Float[S]) float.Float[S]) unaryFunc {
		return func(a uint64) uint64 {
			return f(float.FromBits[S](a)).Bits()
		}
	}
	bin := func(f func(float.Float[S], float.Float[S]) float.Float[S]) binaryFunc {
		return func(a, b uint64) uint64 {
			return f(float.FromBits[S](a), float.FromBits[S](b)).Bits()
		}
	}

	e := &engine{exponent: s.ExponentBits(), mantissa: s.MantissaBits()}
	e.binary[opAdd] = bin(float.Float[S].Add)
	e.binary[opSub] = bin(float.Float[S].Sub)
	e.binary[opMul] = bin(float.Float[S].Mul)
	e.binary[opDiv] = bin(float.Float[S].Div)
	e.binary[opRem] = bin(float.Float[S].Rem)
	e.unary[opSqrt] = un(float.Float[S].Sqrt)
	e.unary[opSin] = un(sfmath.Sin[S])
	e.decode = func(v uint64) (bool, int64, uint64, bool) {
		x := float.FromBits[S](v)
		switch x.Category() {
		case float.CategoryZero:
			emin, _ := float.ExponentBounds[S]()
			return x.Sign(), emin - 1 - int64(e.mantissa), 0, false
		case float.CategoryNormal:
			return x.Sign(), x.Logb(), x.Significand().Uint64(), false
		case float.CategoryInfinity:
			return x.Sign(), x.Exponent(), uint64(1) << e.mantissa, true
		}
		return x.Sign(), x.Exponent(), 0, true
	}
	return e
}

type shape struct {
	exponent, mantissa uint64
}

var engines = map[shape]*engine{
	{5, 10}:  engineFor[float.Half](),
	{8, 7}:   engineFor[float.BFloat](),
	{8, 23}:  engineFor[float.Single](),
	{11, 52}: engineFor[float.Double](),
}

// lookup finds the engine for the trailing (E, M) inputs and checks the
// operands that precede them.
func lookup(inputs []*big.Int, operands int) (*engine, []uint64, error) {
	if len(inputs) != operands+2 {
		return nil, nil, fmt.Errorf("%w: got %d inputs, want %d", ErrArity, len(inputs), operands+2)
	}
	for _, in := range inputs[operands:] {
		if !in.IsUint64() {
			return nil, nil, fmt.Errorf("%w: E=%s M=%s", ErrUnsupportedShape, inputs[operands], inputs[operands+1])
		}
	}
	e, ok := engines[shape{inputs[operands].Uint64(), inputs[operands+1].Uint64()}]
	if !ok {
		return nil, nil, fmt.Errorf("%w: E=%s M=%s", ErrUnsupportedShape, inputs[operands], inputs[operands+1])
	}

	width := 1 + e.exponent + e.mantissa
	values := make([]uint64, operands)
	for i, in := range inputs[:operands] {
		if in.Sign() < 0 || in.BitLen() > width {
			return nil, nil, fmt.Errorf("%w: %s does not fit %d bits", ErrOperand, in, width)
		}
		values[i] = in.Uint64()
	}
	return e, values, nil
}

func unaryHint(o op, inputs []*big.Int, outputs []*big.Int) error {
	if len(outputs) != 1 {
		return fmt.Errorf("%w: got %d outputs, want 1", ErrArity, len(outputs))
	}
	e, v, err := lookup(inputs, 1)
	if err != nil {
		return err
	}
	outputs[0].SetUint64(e.unary[o](v[0]))
	return nil
}

func binaryHint(o op, inputs []*big.Int, outputs []*big.Int) error {
	if len(outputs) != 1 {
		return fmt.Errorf("%w: got %d outputs, want 1", ErrArity, len(outputs))
	}
	e, v, err := lookup(inputs, 2)
	if err != nil {
		return err
	}
	outputs[0].SetUint64(e.binary[o](v[0], v[1]))
	return nil
}

// DecodeFloatHint splits an encoded value into its sign, the exponent of its
// leading bit, its significand with the leading bit at index M, and a flag
// for infinities and NaNs. Zeros get the exponent emin - 1 - M and a zero
// significand, infinities a significand of 2^M and NaNs a zero significand.
// Negative exponents are reduced modulo the field.
func DecodeFloatHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if len(outputs) != 4 {
		return fmt.Errorf("%w: got %d outputs, want 4", ErrArity, len(outputs))
	}
	e, v, err := lookup(inputs, 1)
	if err != nil {
		return err
	}
	sign, exponent, significand, abnormal := e.decode(v[0])

	outputs[0].SetUint64(boolToUint(sign))
	outputs[1].Mod(big.NewInt(exponent), field)
	outputs[2].SetUint64(significand)
	outputs[3].SetUint64(boolToUint(abnormal))
	return nil
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// NormalizeHint returns how many bits the mantissa has to be shifted to
// the left for its bit at index length-1 to be set. Only the low `length`
// bits of the mantissa are considered.
func NormalizeHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if len(inputs) != 2 || len(outputs) != 1 {
		return fmt.Errorf("%w: got %d inputs and %d outputs, want 2 and 1", ErrArity, len(inputs), len(outputs))
	}
	mantissa, err := toInt(inputs[0])
	if err != nil {
		return err
	}
	if !inputs[1].IsUint64() || inputs[1].Uint64() > uint64(mantissa.Width()) {
		return fmt.Errorf("%w: length %s exceeds %d bits", ErrOperand, inputs[1], mantissa.Width())
	}
	length := inputs[1].Uint64()

	// Drop the bits at and above `length`.
	drop := uint(mantissa.Width()) - uint(length)
	mantissa = mantissa.Shl(drop).Shr(drop)

	outputs[0].SetUint64(length - uint64(mantissa.BitLen()))
	return nil
}

// toInt converts a field element to a wide integer of the full width.
func toInt(v *big.Int) (bigint.Int, error) {
	if v.Sign() < 0 || v.BitLen() > bigint.MaxParts*bigint.PartBits {
		return bigint.Int{}, fmt.Errorf("%w: %s does not fit %d bits", ErrOperand, v, bigint.MaxParts*bigint.PartBits)
	}
	parts := make([]uint64, bigint.MaxParts)
	t := new(big.Int).Set(v)
	limb := new(big.Int).SetUint64(math.MaxUint64)
	for i := range parts {
		parts[i] = new(big.Int).And(t, limb).Uint64()
		t.Rsh(t, bigint.PartBits)
	}
	return bigint.FromParts(parts...), nil
}

func AddHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	return binaryHint(opAdd, inputs, outputs)
}

func SubHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	return binaryHint(opSub, inputs, outputs)
}

func MulHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	return binaryHint(opMul, inputs, outputs)
}

func DivHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	return binaryHint(opDiv, inputs, outputs)
}

// RemHint computes the remainder with the sign of the dividend, like fmod.
func RemHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	return binaryHint(opRem, inputs, outputs)
}

func SqrtHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	return unaryHint(opSqrt, inputs, outputs)
}

func SinHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	return unaryHint(opSin, inputs, outputs)
}
