package gadget

import (
	"fmt"
	"math"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/logderivarg"
)

func init() {
	solver.RegisterHint(LimbsHint)
}

// Arithmetization is the constraint system a circuit is compiled to. It
// decides how many constraints a range check costs.
type Arithmetization int

const (
	R1CS Arithmetization = iota
	PLONK
)

type checked struct {
	v    frontend.Variable
	bits int
}

// RangeChecker collects variables that must fit in a number of bits and
// checks all of them once the circuit is defined, by splitting them into
// limbs that are looked up in a table of every limb value.
type RangeChecker struct {
	collected []checked
	width     int
	arith     Arithmetization
	closed    bool
}

// NewRangeChecker returns a checker using limbs of the given width. A width
// of zero picks the width with the fewest constraints under arith.
func NewRangeChecker(api frontend.API, width int, arith Arithmetization) *RangeChecker {
	c := &RangeChecker{width: width, arith: arith}
	api.Compiler().Defer(c.commit)
	return c
}

// Check records that 0 <= v < 2^bits.
func (c *RangeChecker) Check(v frontend.Variable, bits int) {
	if c.closed {
		panic("gadget: range checker already committed")
	}
	c.collected = append(c.collected, checked{v, bits})
}

func (c *RangeChecker) commit(api frontend.API) error {
	if c.closed {
		return nil
	}
	c.closed = true
	if len(c.collected) == 0 {
		return nil
	}

	width := c.width
	if width <= 0 {
		width = optimalWidth(c.collected, c.arith)
	}

	one := big.NewInt(1)
	var limbs []frontend.Variable
	for _, in := range c.collected {
		if in.bits <= 0 {
			api.AssertIsEqual(in.v, 0)
			continue
		}
		n := limbCount(in.bits, width)
		parts := []frontend.Variable{in.v}
		if n > 1 {
			var err error
			parts, err = api.Compiler().NewHint(LimbsHint, n, in.bits, width, in.v)
			if err != nil {
				return fmt.Errorf("split into limbs: %w", err)
			}
			var composed frontend.Variable = 0
			for j, p := range parts {
				composed = api.Add(composed, api.Mul(p, new(big.Int).Lsh(one, uint(width*j))))
			}
			api.AssertIsEqual(in.v, composed)
		}
		limbs = append(limbs, parts...)

		// The top limb only has the remaining bits.
		if rest := n*width - in.bits; rest != 0 {
			limbs = append(limbs, api.Mul(parts[n-1], new(big.Int).Lsh(one, uint(rest))))
		}
	}
	if len(limbs) == 0 {
		return nil
	}

	table := make([]frontend.Variable, 1<<width)
	for i := range table {
		table[i] = i
	}
	return logderivarg.Build(api, logderivarg.AsTable(table), logderivarg.AsTable(limbs))
}

func limbCount(bits, width int) int {
	return (bits + width - 1) / width
}

// LimbsHint splits inputs[2] into little-endian limbs of inputs[1] bits.
// inputs[0] is the bit length of the value.
func LimbsHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if len(inputs) != 3 {
		return fmt.Errorf("limbs: got %d inputs, want 3", len(inputs))
	}
	if !inputs[0].IsUint64() || !inputs[1].IsUint64() || inputs[1].Sign() == 0 {
		return fmt.Errorf("limbs: bad sizes %s and %s", inputs[0], inputs[1])
	}
	bits, width := int(inputs[0].Uint64()), int(inputs[1].Uint64())
	if n := limbCount(bits, width); len(outputs) != n {
		return fmt.Errorf("limbs: got %d outputs, want %d", len(outputs), n)
	}

	base := new(big.Int).Lsh(big.NewInt(1), uint(width))
	v := new(big.Int).Set(inputs[2])
	for _, out := range outputs {
		out.Mod(v, base)
		v.Rsh(v, uint(width))
	}
	return nil
}

func optimalWidth(collected []checked, arith Arithmetization) int {
	best, bestWidth := math.MaxInt, 0
	for width := 2; width < 18; width++ {
		if c := cost(collected, width, arith); c < best {
			best, bestWidth = c, width
		}
	}
	return bestWidth
}

// cost estimates the constraints spent on the collected variables.
func cost(collected []checked, width int, arith Arithmetization) int {
	limbs := 0
	for _, in := range collected {
		n := limbCount(in.bits, width)
		if n*width > in.bits {
			n++
		}
		limbs += n
	}
	if arith == PLONK {
		return 3*(1<<width) + 4*limbs + 1
	}
	return 1<<width + limbs + len(collected) + 1
}
