// Package report formats battery results for people: a single-run report card
// and a raw versus whitened comparison.
package report

import (
	"fmt"

	"github.com/lost-woods/rngaudit/src/battery"
	"github.com/lost-woods/rngaudit/src/verdict"
)

// Outcome is one graded, formatted test result.
type Outcome struct {
	Test    battery.TestID `json:"-"`
	Name    string         `json:"name"`
	Status  verdict.Status `json:"status"`
	Primary string         `json:"value"`
	Detail  string         `json:"detail"`
}

// NewOutcome grades m with policy and formats its values.
func NewOutcome(m battery.Measurement, policy verdict.Policy) Outcome {
	primary, detail := format(m)
	return Outcome{
		Test:    m.Test,
		Name:    m.Test.String(),
		Status:  policy.Judge(m),
		Primary: primary,
		Detail:  detail,
	}
}

func format(m battery.Measurement) (string, string) {
	if m.Degenerate {
		return sentinel(m.Test), m.Reason
	}
	switch m.Test {
	case battery.Mean:
		return fmt.Sprintf("%.4f", m.Value), fmt.Sprintf("Ideal: %.1f", m.Aux)
	case battery.MonteCarloPi:
		return fmt.Sprintf("%.5f", m.Value), fmt.Sprintf("Error: %.2f%%", m.Aux)
	case battery.Entropy:
		return fmt.Sprintf("%.5f bits", m.Value), fmt.Sprintf("Max: %.5f", m.Aux)
	case battery.ChiSquare:
		return fmt.Sprintf("P-Val: %.5f", m.Value), fmt.Sprintf("Stat: %.2f", m.Aux)
	case battery.Autocorrelation:
		return fmt.Sprintf("Coeff: %.5f", m.Value), "Threshold: +/- 0.05"
	case battery.Monobit:
		return fmt.Sprintf("P-Val: %.5f", m.Value), fmt.Sprintf("Balance: %+d", m.Count)
	case battery.Runs:
		return fmt.Sprintf("P-Val: %.5f", m.Value), "Oscillation Check"
	}
	return fmt.Sprintf("%g", m.Value), ""
}

func sentinel(id battery.TestID) string {
	switch id {
	case battery.Entropy:
		return "0.00000 bits"
	case battery.ChiSquare, battery.Monobit:
		return "P-Val: 0.00000"
	case battery.Autocorrelation:
		return "0.00"
	}
	return "0.0000"
}
