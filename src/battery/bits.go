package battery

import (
	"math"

	"github.com/lost-woods/rngaudit/src/samples"
)

// DefaultRunsPreconditionFactor is the c of the runs-test frequency
// precondition |pi - 1/2| >= c/sqrt(n). The value is heuristic.
const DefaultRunsPreconditionFactor = 2.0

// MonobitTest checks overall bit balance. Value and Score are the two-sided
// p-value, Aux is |S_n|/sqrt(n) and Count is the signed balance S_n.
func MonobitTest(b samples.BitString) Measurement {
	n := b.Len()
	if n == 0 {
		return degenerate(Monobit, "No data")
	}

	ones := b.Ones()
	sn := ones - (n - ones)
	obs := math.Abs(float64(sn)) / math.Sqrt(float64(n))
	p := math.Erfc(obs / math.Sqrt2)
	return Measurement{
		Test:  Monobit,
		Value: p,
		Score: p,
		Aux:   obs,
		Count: sn,
	}
}

// RunsTest counts maximal runs of identical bits using the default precondition.
func RunsTest(b samples.BitString) Measurement {
	return RunsTestWithFactor(b, DefaultRunsPreconditionFactor)
}

// RunsTestWithFactor is RunsTest with an explicit precondition factor.
// Value and Score are the p-value, Aux is the proportion of ones and Count is
// the observed run count.
//
// Below 16 bits c/sqrt(n) exceeds 1/2 and the precondition cannot trigger, so
// constant strings are rejected separately before the p-value divides by
// pi(1-pi).
func RunsTestWithFactor(b samples.BitString, factor float64) Measurement {
	n := b.Len()
	if n == 0 {
		return degenerate(Runs, "No data")
	}

	fn := float64(n)
	pi := float64(b.Ones()) / fn
	if math.Abs(pi-0.5) >= factor/math.Sqrt(fn) {
		m := degenerate(Runs, "Freq Fail")
		m.Aux = pi
		return m
	}
	spread := pi * (1 - pi)
	if spread == 0 {
		m := degenerate(Runs, "Freq Fail")
		m.Aux = pi
		return m
	}

	vn := 1 + b.Transitions()
	num := math.Abs(float64(vn) - 2*fn*spread)
	den := 2 * math.Sqrt(2*fn) * spread
	p := math.Erfc(num / den)
	return Measurement{
		Test:  Runs,
		Value: p,
		Score: p,
		Aux:   pi,
		Count: vn,
	}
}
