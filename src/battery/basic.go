package battery

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/lost-woods/rngaudit/src/samples"
)

// ArithmeticMean compares the sample mean with the alphabet midpoint.
// Score is the absolute distance; Aux is the midpoint.
func ArithmeticMean(set *samples.Set) Measurement {
	ideal := set.Options().ExpectedMean()
	avg, err := stats.Mean(set.Floats())
	if err != nil {
		m := degenerate(Mean, "No data")
		m.Aux = ideal
		return m
	}
	return Measurement{
		Test:  Mean,
		Value: avg,
		Score: math.Abs(avg - ideal),
		Aux:   ideal,
	}
}

// MonteCarloPiEstimate treats consecutive sample pairs as points in the unit
// square and estimates pi from the share falling inside the quarter circle.
// Score and Aux are the relative error in percent; Count is the pair count.
func MonteCarloPiEstimate(set *samples.Set) Measurement {
	pairs := set.Len() / 2
	if pairs == 0 {
		return degenerate(MonteCarloPi, "Insufficient Data")
	}

	hits := 0
	for i := 0; i < pairs; i++ {
		x := float64(set.At(2*i)) / 255.0
		y := float64(set.At(2*i+1)) / 255.0
		if x*x+y*y <= 1.0 {
			hits++
		}
	}

	est := 4.0 * (float64(hits) / float64(pairs))
	errPct := math.Abs(est-math.Pi) / math.Pi * 100
	return Measurement{
		Test:  MonteCarloPi,
		Value: est,
		Score: errPct,
		Aux:   errPct,
		Count: pairs,
	}
}

// LagOneAutocorrelation is the serial correlation between each sample and its
// successor. Both sums run over the first n-1 samples around the full mean.
func LagOneAutocorrelation(set *samples.Set) Measurement {
	data := set.Floats()
	mean, err := stats.Mean(data)
	if err != nil {
		return degenerate(Autocorrelation, "DivByZero")
	}

	var num, den float64
	for i := 0; i < len(data)-1; i++ {
		d := data[i] - mean
		num += d * (data[i+1] - mean)
		den += d * d
	}
	if den == 0 {
		return degenerate(Autocorrelation, "DivByZero")
	}

	corr := num / den
	return Measurement{
		Test:  Autocorrelation,
		Value: corr,
		Score: math.Abs(corr),
		Count: len(data) - 1,
	}
}
