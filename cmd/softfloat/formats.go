package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"soft-float/float"
	sfmath "soft-float/math"
)

// format is a float.Semantics chosen at run time.
type format interface {
	// describe writes a row with the value parsed from s.
	describe(w io.Writer, s string) error
	eval(w io.Writer, rm float.RoundingMode, op string, args []string) error
	constant(w io.Writer, name string) error
	// sweep checks the round trip of bit patterns and returns how many it
	// checked.
	sweep(ctx context.Context, workers int, step uint64) (uint64, error)
}

var formats = map[string]format{
	"half":    formatOf[float.Half]{"half"},
	"bfloat":  formatOf[float.BFloat]{"bfloat"},
	"single":  formatOf[float.Single]{"single"},
	"double":  formatOf[float.Double]{"double"},
	"quad":    formatOf[float.Quad]{"quad"},
	"octuple": formatOf[float.Octuple]{"octuple"},
}

// formatKeys lists the formats from the narrowest to the widest.
var formatKeys = []string{"half", "bfloat", "single", "double", "quad", "octuple"}

var modes = map[string]float.RoundingMode{
	"rne": float.NearestTiesToEven,
	"rna": float.NearestTiesToAway,
	"rtz": float.TowardZero,
	"rtp": float.TowardPositive,
	"rtn": float.TowardNegative,
}

var modeKeys = sortedKeys(modes)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseMode(s string) (float.RoundingMode, error) {
	rm, ok := modes[s]
	if !ok {
		return 0, fmt.Errorf("unknown rounding mode %q", s)
	}
	return rm, nil
}

type unaryOp[S float.Semantics] func(x float.Float[S], rm float.RoundingMode) float.Float[S]
type binaryOp[S float.Semantics] func(x, y float.Float[S], rm float.RoundingMode) float.Float[S]

func unaryOps[S float.Semantics]() map[string]unaryOp[S] {
	ignoreRM := func(f func(float.Float[S]) float.Float[S]) unaryOp[S] {
		return func(x float.Float[S], _ float.RoundingMode) float.Float[S] {
			return f(x)
		}
	}
	return map[string]unaryOp[S]{
		"neg":   ignoreRM(float.Float[S].Neg),
		"abs":   ignoreRM(float.Float[S].Abs),
		"sqrt":  ignoreRM(float.Float[S].Sqrt),
		"sqr":   ignoreRM(float.Float[S].Sqr),
		"trunc": ignoreRM(float.Float[S].Trunc),
		"floor": ignoreRM(float.Float[S].Floor),
		"ceil":  ignoreRM(float.Float[S].Ceil),
		"sin":   ignoreRM(sfmath.Sin[S]),
		"cos":   ignoreRM(sfmath.Cos[S]),
		"round": float.Float[S].RoundToIntegral,
	}
}

func binaryOps[S float.Semantics]() map[string]binaryOp[S] {
	ignoreRM := func(f func(float.Float[S], float.Float[S]) float.Float[S]) binaryOp[S] {
		return func(x, y float.Float[S], _ float.RoundingMode) float.Float[S] {
			return f(x, y)
		}
	}
	return map[string]binaryOp[S]{
		"add": float.Float[S].AddWithRM,
		"sub": float.Float[S].SubWithRM,
		"mul": float.Float[S].MulWithRM,
		"div": float.Float[S].DivWithRM,
		"rem": ignoreRM(float.Float[S].Rem),
		"min": ignoreRM(float.Float[S].Min),
		"max": ignoreRM(float.Float[S].Max),
	}
}

type formatOf[S float.Semantics] struct {
	name string
}

func (f formatOf[S]) row(w io.Writer, label string, x float.Float[S]) {
	bits := "-"
	if width := float.BitWidth[S](); width <= 64 {
		bits = fmt.Sprintf("0x%0*x", width/4, x.Bits())
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", label, x.Text('g', -1), bits, x)
}

func (f formatOf[S]) parse(s string) (float.Float[S], error) {
	x, err := float.Parse[S](s)
	if err != nil {
		return x, fmt.Errorf("%s: %w", f.name, err)
	}
	return x, nil
}

func (f formatOf[S]) describe(w io.Writer, s string) error {
	x, err := f.parse(s)
	if err != nil {
		return err
	}
	f.row(w, f.name, x)
	return nil
}

func (f formatOf[S]) eval(w io.Writer, rm float.RoundingMode, op string, args []string) error {
	operands := make([]float.Float[S], len(args))
	for i, a := range args {
		x, err := f.parse(a)
		if err != nil {
			return err
		}
		operands[i] = x
	}

	var res float.Float[S]
	if u, ok := unaryOps[S]()[op]; ok {
		if len(operands) != 1 {
			return fmt.Errorf("%s takes one operand, got %d", op, len(operands))
		}
		res = u(operands[0], rm)
	} else if b, ok := binaryOps[S]()[op]; ok {
		if len(operands) != 2 {
			return fmt.Errorf("%s takes two operands, got %d", op, len(operands))
		}
		res = b(operands[0], operands[1], rm)
	} else {
		return fmt.Errorf("unknown operation %q", op)
	}

	log.Debug().Str("op", op).Strs("args", args).Stringer("result", res).Msg("evaluated")
	for i, x := range operands {
		f.row(w, fmt.Sprintf("arg%d", i), x)
	}
	f.row(w, op, res)
	return nil
}

func (f formatOf[S]) constant(w io.Writer, name string) error {
	var x float.Float[S]
	switch name {
	case "pi":
		x = sfmath.Pi[S]()
	case "e":
		x = sfmath.E[S]()
	default:
		return fmt.Errorf("unknown constant %q", name)
	}
	f.row(w, name, x)
	return nil
}

// chunk is the number of bit patterns checked by one goroutine.
const chunk = 1 << 16

func (f formatOf[S]) sweep(ctx context.Context, workers int, step uint64) (uint64, error) {
	width := float.BitWidth[S]()
	if width > 32 {
		return 0, fmt.Errorf("sweep: %s has %d bits, at most 32 are supported", f.name, width)
	}
	total := uint64(1) << width

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	var checked atomic.Uint64
	for start := uint64(0); start < total && gctx.Err() == nil; start += chunk {
		start := start
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := roundTrip[S](start, min(start+chunk, total), step)
			checked.Add(n)
			log.Debug().Uint64("from", start).Uint64("checked", n).Msg("chunk done")
			return err
		})
	}
	// The group context is always canceled once Wait returns, only the
	// caller's context tells whether the sweep was interrupted.
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return checked.Load(), err
}

// roundTrip checks the multiples of step in [from, to): every pattern that
// is not a NaN must encode back to itself, directly and after a detour
// through a wider format.
func roundTrip[S float.Semantics](from, to, step uint64) (uint64, error) {
	var n uint64
	for v := (from + step - 1) / step * step; v < to; v += step {
		n++
		x := float.FromBits[S](v)
		if x.IsNaN() {
			if !float.Cast[S](float.Cast[float.Quad](x)).IsNaN() {
				return n, fmt.Errorf("NaN %#x lost through quad", v)
			}
			continue
		}
		if got := x.Bits(); got != v {
			return n, fmt.Errorf("%#x decodes to %s and encodes to %#x", v, x, got)
		}
		if got := float.Cast[S](float.Cast[float.Quad](x)).Bits(); got != v {
			return n, fmt.Errorf("%#x encodes to %#x through quad", v, got)
		}
	}
	return n, nil
}
