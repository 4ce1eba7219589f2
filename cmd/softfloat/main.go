// softfloat shows the encodings of floating point numbers in the formats of
// the float package and evaluates operations on them, mostly for debugging
// conversions and rounding.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"soft-float/float"
)

var (
	typeFlag    = flag.String("type", "double", "`format` to compute in, one of: "+strings.Join(formatKeys, ", "))
	rmFlag      = flag.String("rm", "rne", "rounding `mode`, one of: "+strings.Join(modeKeys, ", "))
	verboseFlag = flag.Bool("v", false, "enable debug logging")
	workersFlag = flag.Int("workers", runtime.GOMAXPROCS(0), "number of goroutines used by sweep")
	stepFlag    = flag.Uint64("step", 1, "check only every `n`th bit pattern in sweep")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help)
		fmt.Fprintln(flag.CommandLine.Output(), "\nOptional arguments:")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := zerolog.InfoLevel
	if *verboseFlag {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()

	if flag.NArg() < 1 {
		fail("Need a command.")
	}

	f, ok := formats[*typeFlag]
	if !ok {
		fail(fmt.Sprintf("Unknown format %q.", *typeFlag))
	}
	rm, err := parseMode(*rmFlag)
	if err != nil {
		fail(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	cmd, args := flag.Arg(0), flag.Args()[1:]
	log.Debug().Str("command", cmd).Str("format", *typeFlag).Stringer("rm", rm).Msg("starting")

	switch cmd {
	case "show":
		err = show(w, args)
	case "eval":
		err = eval(w, f, rm, args)
	case "const":
		err = constant(w, f, args)
	case "sweep":
		err = sweep(ctx, f, *workersFlag, *stepFlag)
	default:
		fail(fmt.Sprintf("Unknown command %q.", cmd))
	}
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("softfloat failed")
	}
}

func show(w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("show: need exactly one value, got %d", len(args))
	}
	fmt.Fprintln(w, "format\tvalue\tbits\tcomponents")
	for _, k := range formatKeys {
		if err := formats[k].describe(w, args[0]); err != nil {
			return fmt.Errorf("show: %w", err)
		}
	}
	return nil
}

func eval(w io.Writer, f format, rm float.RoundingMode, args []string) error {
	if len(args) < 2 {
		return errors.New("eval: need an operation and its operands")
	}
	return f.eval(w, rm, args[0], args[1:])
}

func constant(w io.Writer, f format, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("const: need exactly one name, got %d", len(args))
	}
	return f.constant(w, args[0])
}

func sweep(ctx context.Context, f format, workers int, step uint64) error {
	if workers < 1 || step < 1 {
		return fmt.Errorf("sweep: workers and step must be positive, got %d and %d", workers, step)
	}
	start := time.Now()
	checked, err := f.sweep(ctx, workers, step)
	if err != nil {
		return err
	}
	log.Info().
		Uint64("checked", checked).
		Dur("elapsed", time.Since(start)).
		Msg("all bit patterns round trip")
	return nil
}

func fail(reason string) {
	fmt.Fprintln(os.Stderr, reason)
	fmt.Fprint(os.Stderr, help)
	os.Exit(1)
}

const help = `softfloat computes with software floating point numbers.
Usage:
	softfloat [-type format] [-rm mode] show value
	softfloat [-type format] [-rm mode] eval op a [b]
	softfloat [-type format] const pi|e
	softfloat [-type format] [-workers n] [-step n] sweep

Values are decimal or hexadecimal float literals in Go syntax. show prints the
value in every format, eval applies an operation in the selected format, const
computes a constant and sweep checks that every bit pattern of a format of at
most 32 bits decodes and encodes back to itself.
`
