package battery

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lost-woods/rngaudit/src/samples"
)

// ShannonEntropy is the empirical entropy in bits per symbol over the values
// present. Score is the deficit against the alphabet maximum, held in Aux.
func ShannonEntropy(set *samples.Set) Measurement {
	maxEnt := set.Options().MaxEntropy()
	total := set.Len()
	if total == 0 {
		m := degenerate(Entropy, "No data")
		m.Score = maxEnt
		m.Aux = maxEnt
		return m
	}

	h := set.Histogram()
	var ent float64
	distinct := 0
	for _, c := range h {
		if c == 0 {
			continue
		}
		distinct++
		p := float64(c) / float64(total)
		ent -= p * math.Log2(p)
	}

	return Measurement{
		Test:  Entropy,
		Value: ent,
		Score: maxEnt - ent,
		Aux:   maxEnt,
		Count: distinct,
	}
}

// ChiSquareUniformity runs Pearson's goodness-of-fit test of the symbol
// histogram against a uniform distribution over the alphabet. Value and Score
// are the p-value; Aux is the statistic.
func ChiSquareUniformity(set *samples.Set) Measurement {
	total := set.Len()
	if total == 0 {
		return degenerate(ChiSquare, "No data")
	}

	opts := set.Options()
	h := set.Histogram()
	k := opts.AlphabetSize()
	observed := make([]float64, 0, k)
	for v := opts.AlphabetStart(); v < 256; v++ {
		observed = append(observed, float64(h[v]))
	}
	expected := make([]float64, k)
	for i := range expected {
		expected[i] = float64(total) / float64(k)
	}

	chi := stat.ChiSquare(observed, expected)
	p := distuv.ChiSquared{K: float64(k - 1)}.Survival(chi)
	return Measurement{
		Test:  ChiSquare,
		Value: p,
		Score: p,
		Aux:   chi,
		Count: k - 1,
	}
}
