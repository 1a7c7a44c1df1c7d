package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lost-woods/rngaudit/src/verdict"
)

type styles struct {
	header  lipgloss.Style
	alert   lipgloss.Style
	name    lipgloss.Style
	detail  lipgloss.Style
	note    lipgloss.Style
	pass    lipgloss.Style
	weak    lipgloss.Style
	fail    lipgloss.Style
	heading string
}

// newStyles binds colors to w. Writers that are not terminals get plain text.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		alert:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		name:    r.NewStyle().Bold(true),
		detail:  r.NewStyle().Foreground(lipgloss.Color("12")),
		note:    r.NewStyle().Foreground(lipgloss.Color("11")),
		pass:    r.NewStyle().Foreground(lipgloss.Color("10")),
		weak:    r.NewStyle().Foreground(lipgloss.Color("11")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("9")),
		heading: strings.Repeat("=", 60),
	}
}

func (s styles) status(st verdict.Status) lipgloss.Style {
	switch st {
	case verdict.Pass:
		return s.pass
	case verdict.Weak:
		return s.weak
	}
	return s.fail
}

func (s styles) banner(w io.Writer, style lipgloss.Style, text string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, style.Render(s.heading))
	fmt.Fprintln(w, style.Render(" "+text))
	fmt.Fprintln(w, style.Render(s.heading))
}

// RenderCard writes the report card: one block per section, then the summary.
func RenderCard(w io.Writer, c Card) error {
	s := newStyles(w)
	fmt.Fprintf(w, "   Loaded %d bytes\n", c.Samples)
	fmt.Fprintf(w, "   Analyzed %d bits\n", c.Bits)
	if c.Label != "" {
		s.banner(w, s.alert, strings.ToUpper(c.Label))
	}

	for _, sec := range Sections {
		s.banner(w, s.header, sec.Title)
		for _, id := range sec.Tests {
			o, ok := c.Outcome(id)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%s : %s\n", s.name.Render(fmt.Sprintf("%-25s", o.Name)), o.Primary)
			if o.Detail != "" {
				fmt.Fprintf(w, "%-25s   %s\n", "", s.detail.Render("("+o.Detail+")"))
			}
			fmt.Fprintf(w, "%-25s -> %s\n", "", s.status(o.Status).Render("[ "+string(o.Status)+" ]"))
		}
	}

	s.banner(w, s.header, "FINAL REPORT CARD")
	if c.Passed() {
		fmt.Fprintln(w, s.pass.Bold(true).Render("EXCELLENT! ALL TESTS PASSED."))
		_, err := fmt.Fprintln(w, "System is producing high-quality non-deterministic entropy.")
		return err
	}

	fmt.Fprintln(w, s.fail.Bold(true).Render(fmt.Sprintf("SYSTEM FAILED %d TEST(S):", len(c.Failures))))
	for _, f := range c.Failures {
		fmt.Fprintf(w, "   x %s\n", f)
	}
	fmt.Fprintln(w)
	_, err := fmt.Fprintln(w, s.note.Render("Note: Failures in Chi-Square or Runs are common for raw\nhardware sources without post-processing (SHAKE-256)."))
	return err
}

// RenderComparison writes the four column raw versus processed table.
func RenderComparison(w io.Writer, c Comparison) error {
	s := newStyles(w)
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.header.Render(rule))
	fmt.Fprintln(w, s.header.Render(" COMPARATIVE ANALYSIS: RAW vs "+strings.ToUpper(c.Processed.Label)+" PROCESSED"))
	fmt.Fprintln(w, s.header.Render(rule))
	fmt.Fprintf(w, "%-20s | %-20s | %-20s | %s\n", "METRIC", "RAW DATA", "PROCESSED", "STATUS")
	fmt.Fprintln(w, strings.Repeat("-", 70))

	for _, row := range c.Rows {
		fmt.Fprintf(w, "%-20s | %-20s | %-20s | %s\n",
			row.Metric, row.Raw, row.Processed, s.change(row.Status).Render(string(row.Status)))
	}
	_, err := fmt.Fprintln(w, strings.Repeat("-", 70))
	return err
}

func (s styles) change(c verdict.Change) lipgloss.Style {
	switch c {
	case verdict.Improved, verdict.Centered, verdict.Passed:
		return s.pass
	case verdict.Same:
		return s.weak
	}
	return s.fail
}
