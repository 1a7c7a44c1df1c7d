package report

import (
	"context"

	"github.com/lost-woods/rngaudit/src/battery"
	"github.com/lost-woods/rngaudit/src/samples"
	"github.com/lost-woods/rngaudit/src/verdict"
)

// Section groups related tests on the report card.
type Section struct {
	Title string
	Tests []battery.TestID
}

var Sections = []Section{
	{"1. BASIC STATISTICAL CHECKS", []battery.TestID{battery.Mean, battery.MonteCarloPi}},
	{"2. INFORMATION & UNIFORMITY", []battery.TestID{battery.Entropy, battery.ChiSquare}},
	{"3. HARDWARE & PATTERN CHECKS", []battery.TestID{battery.Autocorrelation, battery.Monobit, battery.Runs}},
}

// Card is the single-run report.
type Card struct {
	Label    string    `json:"label"`
	Samples  int       `json:"samples"`
	Bits     int       `json:"bits"`
	Outcomes []Outcome `json:"outcomes"`
	Failures []string  `json:"failures"`
}

// NewCard grades every measurement and collects the failing test names.
func NewCard(label string, set *samples.Set, ms []battery.Measurement, policy verdict.Policy) Card {
	card := Card{
		Label:    label,
		Samples:  set.Len(),
		Bits:     set.Bits().Len(),
		Outcomes: make([]Outcome, 0, len(ms)),
		Failures: []string{},
	}
	for _, m := range ms {
		o := NewOutcome(m, policy)
		card.Outcomes = append(card.Outcomes, o)
		if o.Status == verdict.Fail {
			card.Failures = append(card.Failures, o.Name)
		}
	}
	return card
}

// Analyze runs the full battery against set and builds its card.
func Analyze(ctx context.Context, label string, set *samples.Set, params battery.Params, policy verdict.Policy) (Card, error) {
	ms, err := battery.Run(ctx, set, params)
	if err != nil {
		return Card{}, err
	}
	return NewCard(label, set, ms, policy), nil
}

func (c Card) Passed() bool { return len(c.Failures) == 0 }

// Outcome looks up a test by id.
func (c Card) Outcome(id battery.TestID) (Outcome, bool) {
	for _, o := range c.Outcomes {
		if o.Test == id {
			return o, true
		}
	}
	return Outcome{}, false
}
