package report

import (
	"fmt"

	"github.com/lost-woods/rngaudit/src/battery"
	"github.com/lost-woods/rngaudit/src/samples"
	"github.com/lost-woods/rngaudit/src/verdict"
	"github.com/lost-woods/rngaudit/src/whiten"
)

// ComparisonResult is the reduced statistic set used to contrast two streams.
type ComparisonResult struct {
	Label           string  `json:"label"`
	Entropy         float64 `json:"entropy"`
	ChiSquarePValue float64 `json:"chi_square_p"`
	MonobitPValue   float64 `json:"monobit_p"`
	Mean            float64 `json:"mean"`
	SampleCount     int     `json:"samples"`
	// Ideal is the midpoint the mean is measured against.
	Ideal float64 `json:"ideal"`
}

// Summarize evaluates the reduced subset of the battery.
func Summarize(label string, set *samples.Set) ComparisonResult {
	return ComparisonResult{
		Label:           label,
		Entropy:         battery.ShannonEntropy(set).Value,
		ChiSquarePValue: battery.ChiSquareUniformity(set).Value,
		MonobitPValue:   battery.MonobitTest(set.Bits()).Value,
		Mean:            battery.ArithmeticMean(set).Value,
		SampleCount:     set.Len(),
		Ideal:           set.Options().ExpectedMean(),
	}
}

// Row is one metric of the comparison table.
type Row struct {
	Metric    string         `json:"metric"`
	Raw       string         `json:"raw"`
	Processed string         `json:"processed"`
	Status    verdict.Change `json:"status"`
}

type Comparison struct {
	Raw       ComparisonResult `json:"raw"`
	Processed ComparisonResult `json:"processed"`
	Rows      []Row            `json:"rows"`
}

// Compare classifies how each metric moved from raw to processed.
func Compare(raw, processed ComparisonResult) Comparison {
	ideal := processed.Ideal
	if ideal == 0 {
		ideal = 127.5
	}
	return Comparison{
		Raw:       raw,
		Processed: processed,
		Rows: []Row{
			{
				Metric:    "Shannon Entropy",
				Raw:       fmt.Sprintf("%.5f bits", raw.Entropy),
				Processed: fmt.Sprintf("%.5f bits", processed.Entropy),
				Status:    verdict.EntropyChange(raw.Entropy, processed.Entropy),
			},
			{
				Metric:    "Arithmetic Mean",
				Raw:       fmt.Sprintf("%.4f", raw.Mean),
				Processed: fmt.Sprintf("%.4f", processed.Mean),
				Status:    verdict.MeanChange(raw.Mean, processed.Mean, ideal),
			},
			{
				Metric:    "Chi-Square P-Val",
				Raw:       formatP(raw.ChiSquarePValue),
				Processed: formatP(processed.ChiSquarePValue),
				Status:    verdict.PValueChange(processed.ChiSquarePValue, verdict.CompareChiSquareCutoff),
			},
			{
				Metric:    "NIST Monobit P",
				Raw:       formatP(raw.MonobitPValue),
				Processed: formatP(processed.MonobitPValue),
				Status:    verdict.PValueChange(processed.MonobitPValue, verdict.CompareMonobitCutoff),
			},
		},
	}
}

// WhitenAndCompare whitens raw with tr and compares both streams. The
// whitened stream always uses the full byte alphabet. The whitened bytes are
// returned so callers can persist them.
func WhitenAndCompare(raw *samples.Set, tr whiten.Transform) (Comparison, []byte) {
	processed := tr.Apply(raw.Bytes())
	out := samples.New(processed, samples.Options{})
	return Compare(Summarize("Raw Hardware", raw), Summarize(tr.Name(), out)), processed
}

func formatP(p float64) string {
	if p > 0.0001 {
		return fmt.Sprintf("%.4f", p)
	}
	return fmt.Sprintf("%.2e", p)
}
