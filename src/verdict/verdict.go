// Package verdict turns battery measurements into PASS / WEAK / FAIL.
// All cutoffs live in one table so they can be inspected and tested on their own.
package verdict

import (
	"github.com/lost-woods/rngaudit/src/battery"
)

type Status string

const (
	Pass Status = "PASS"
	Weak Status = "WEAK"
	Fail Status = "FAIL"
)

// Direction says which side of a threshold is bad.
type Direction int

const (
	// AtMost grades a distance or error: large scores are bad.
	AtMost Direction = iota
	// AtLeast grades a p-value: small scores are bad.
	AtLeast
)

// Threshold is one row of the policy table.
type Threshold struct {
	Direction Direction
	Fail      float64
	Weak      float64
	HasWeak   bool
	// Inclusive makes a score equal to a cutoff count as crossing it.
	Inclusive bool
}

func (t Threshold) crosses(score, cutoff float64) bool {
	switch t.Direction {
	case AtLeast:
		if t.Inclusive {
			return score <= cutoff
		}
		return score < cutoff
	default:
		if t.Inclusive {
			return score >= cutoff
		}
		return score > cutoff
	}
}

// Grade maps a score onto a status.
func (t Threshold) Grade(score float64) Status {
	if score != score {
		return Fail
	}
	if t.crosses(score, t.Fail) {
		return Fail
	}
	if t.HasWeak && t.crosses(score, t.Weak) {
		return Weak
	}
	return Pass
}

// Policy is the per-test threshold table.
type Policy map[battery.TestID]Threshold

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		battery.Mean:            {Direction: AtMost, Weak: 1.0, Fail: 2.0, HasWeak: true},
		battery.MonteCarloPi:    {Direction: AtMost, Weak: 2.5, Fail: 5.0, HasWeak: true},
		battery.Entropy:         {Direction: AtMost, Fail: 0.05, Inclusive: true},
		battery.ChiSquare:       {Direction: AtLeast, Weak: 0.05, Fail: 0.001, HasWeak: true},
		battery.Autocorrelation: {Direction: AtMost, Fail: 0.05, Inclusive: true},
		battery.Monobit:         {Direction: AtLeast, Fail: 0.01, Inclusive: true},
		battery.Runs:            {Direction: AtLeast, Fail: 0.01, Inclusive: true},
	}
}

// Judge grades a measurement. Degenerate measurements and tests missing from
// the table always fail.
func (p Policy) Judge(m battery.Measurement) Status {
	if m.Degenerate {
		return Fail
	}
	t, ok := p[m.Test]
	if !ok {
		return Fail
	}
	return t.Grade(m.Score)
}
