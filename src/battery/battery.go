// Package battery implements the statistical tests applied to a sample set.
// Every test is a pure function of its input; none of them grade the result,
// that is left to the verdict package.
package battery

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lost-woods/rngaudit/src/samples"
)

type TestID int

const (
	Mean TestID = iota
	MonteCarloPi
	Entropy
	ChiSquare
	Autocorrelation
	Monobit
	Runs
)

// All lists the tests in report order.
var All = []TestID{Mean, MonteCarloPi, Entropy, ChiSquare, Autocorrelation, Monobit, Runs}

var names = map[TestID]string{
	Mean:            "Arithmetic Mean",
	MonteCarloPi:    "Monte Carlo Pi",
	Entropy:         "Shannon Entropy",
	ChiSquare:       "Chi-Square Test",
	Autocorrelation: "Autocorrelation",
	Monobit:         "NIST Monobit",
	Runs:            "NIST Runs",
}

func (id TestID) String() string {
	if n, ok := names[id]; ok {
		return n
	}
	return "Unknown"
}

// Measurement is the raw numeric output of one test.
type Measurement struct {
	Test TestID
	// Value is the headline statistic (mean, pi estimate, entropy, p-value, coefficient).
	Value float64
	// Score is the quantity the verdict policy grades.
	Score float64
	// Aux is the secondary statistic shown next to Value.
	Aux float64
	// Count carries an integer side result (pairs, bit balance, runs).
	Count int
	// Degenerate marks inputs the test could not evaluate.
	Degenerate bool
	Reason     string
}

func degenerate(id TestID, reason string) Measurement {
	return Measurement{Test: id, Degenerate: true, Reason: reason}
}

// Params holds the tunable cutoffs the tests themselves depend on.
type Params struct {
	// RunsPreconditionFactor is c in |pi - 1/2| >= c/sqrt(n).
	RunsPreconditionFactor float64
}

func DefaultParams() Params {
	return Params{RunsPreconditionFactor: DefaultRunsPreconditionFactor}
}

// Evaluate runs a single test against set.
func Evaluate(id TestID, set *samples.Set, p Params) Measurement {
	switch id {
	case Mean:
		return ArithmeticMean(set)
	case MonteCarloPi:
		return MonteCarloPiEstimate(set)
	case Entropy:
		return ShannonEntropy(set)
	case ChiSquare:
		return ChiSquareUniformity(set)
	case Autocorrelation:
		return LagOneAutocorrelation(set)
	case Monobit:
		return MonobitTest(set.Bits())
	case Runs:
		return RunsTestWithFactor(set.Bits(), p.RunsPreconditionFactor)
	}
	return degenerate(id, "Unknown test")
}

// Run evaluates every test concurrently and returns the measurements in All order.
func Run(ctx context.Context, set *samples.Set, p Params) ([]Measurement, error) {
	out := make([]Measurement, len(All))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range All {
		i, id := i, id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Evaluate(id, set, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
