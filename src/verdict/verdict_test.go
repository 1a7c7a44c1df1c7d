package verdict_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lost-woods/rngaudit/src/battery"
	"github.com/lost-woods/rngaudit/src/verdict"
)

func TestDefaultPolicy_CoversEveryTest(t *testing.T) {
	p := verdict.DefaultPolicy()
	for _, id := range battery.All {
		_, ok := p[id]
		assert.True(t, ok, "missing threshold for %s", id)
	}
}

func TestDefaultPolicy_Boundaries(t *testing.T) {
	p := verdict.DefaultPolicy()
	tests := []struct {
		id    battery.TestID
		score float64
		want  verdict.Status
	}{
		{battery.Mean, 0, verdict.Pass},
		{battery.Mean, 1.0, verdict.Pass},
		{battery.Mean, 1.01, verdict.Weak},
		{battery.Mean, 2.0, verdict.Weak},
		{battery.Mean, 2.01, verdict.Fail},

		{battery.MonteCarloPi, 2.5, verdict.Pass},
		{battery.MonteCarloPi, 2.6, verdict.Weak},
		{battery.MonteCarloPi, 5.0, verdict.Weak},
		{battery.MonteCarloPi, 5.1, verdict.Fail},

		{battery.Entropy, 0.0, verdict.Pass},
		{battery.Entropy, 0.049, verdict.Pass},
		{battery.Entropy, 0.05, verdict.Fail},
		{battery.Entropy, 3, verdict.Fail},

		{battery.ChiSquare, 0.5, verdict.Pass},
		{battery.ChiSquare, 0.05, verdict.Pass},
		{battery.ChiSquare, 0.049, verdict.Weak},
		{battery.ChiSquare, 0.001, verdict.Weak},
		{battery.ChiSquare, 0.0009, verdict.Fail},

		{battery.Autocorrelation, 0.049, verdict.Pass},
		{battery.Autocorrelation, 0.05, verdict.Fail},

		{battery.Monobit, 1.0, verdict.Pass},
		{battery.Monobit, 0.0101, verdict.Pass},
		{battery.Monobit, 0.01, verdict.Fail},

		{battery.Runs, 0.02, verdict.Pass},
		{battery.Runs, 0.01, verdict.Fail},
		{battery.Runs, math.Erfc(2), verdict.Fail},
	}

	for _, tc := range tests {
		got := p.Judge(battery.Measurement{Test: tc.id, Score: tc.score})
		if got != tc.want {
			t.Fatalf("%s score=%v got %s want %s", tc.id, tc.score, got, tc.want)
		}
	}
}

func TestJudge_DegenerateAndUnknownFail(t *testing.T) {
	p := verdict.DefaultPolicy()
	assert.Equal(t, verdict.Fail, p.Judge(battery.Measurement{Test: battery.Mean, Degenerate: true}))
	assert.Equal(t, verdict.Fail, p.Judge(battery.Measurement{Test: battery.TestID(42)}))
	assert.Equal(t, verdict.Fail, p.Judge(battery.Measurement{Test: battery.Monobit, Score: math.NaN()}))
}

func TestPolicy_Overridable(t *testing.T) {
	p := verdict.DefaultPolicy()
	p[battery.Mean] = verdict.Threshold{Direction: verdict.AtMost, Fail: 10}
	assert.Equal(t, verdict.Pass, p.Judge(battery.Measurement{Test: battery.Mean, Score: 5}))
	assert.Equal(t, verdict.Weak, verdict.DefaultPolicy().Judge(battery.Measurement{Test: battery.Mean, Score: 1.5}))
}

func TestComparisonChanges(t *testing.T) {
	assert.Equal(t, verdict.Improved, verdict.EntropyChange(4.0, 7.7))
	assert.Equal(t, verdict.Same, verdict.EntropyChange(8.0, 8.0))
	assert.Equal(t, verdict.Same, verdict.EntropyChange(8.0, 7.9))

	assert.Equal(t, verdict.Centered, verdict.MeanChange(7.5, 130.75, 127.5))
	assert.Equal(t, verdict.Biased, verdict.MeanChange(127.5, 127.5, 127.5))
	assert.Equal(t, verdict.Biased, verdict.MeanChange(126.5, 128.5, 127.5))

	assert.Equal(t, verdict.Passed, verdict.PValueChange(0.2, verdict.CompareChiSquareCutoff))
	assert.Equal(t, verdict.Failed, verdict.PValueChange(0.05, verdict.CompareChiSquareCutoff))
	assert.Equal(t, verdict.Failed, verdict.PValueChange(0.01, verdict.CompareMonobitCutoff))
}
