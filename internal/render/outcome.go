// Package render turns assessment outcomes into terminal output.
package render

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/previda/internal/assign"
	"github.com/abhisek/previda/internal/careplan"
)

// Currency is appended to shift totals.
const Currency = "COP"

// Options adds optional sections to a rendered outcome.
type Options struct {
	Reference string
	Briefing  *careplan.Briefing
}

// Outcome renders the status banner and, for high-risk outcomes, the
// assigned profile and shift quote cards.
func Outcome(o assign.Outcome, opts Options) string {
	var parts []string
	if opts.Reference != "" {
		parts = append(parts, hintStyle.Render("Reference: "+opts.Reference))
	}

	if !o.HighRisk() {
		parts = append(parts,
			independentStyle.Render(fmt.Sprintf("INDEPENDENT PATIENT (risk probability: %s)", Percent(o.Probability))),
			hintStyle.Render(o.Recommendation()),
		)
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts = append(parts,
		highRiskStyle.Render(fmt.Sprintf("HIGH RISK DETECTED (probability: %s)", Percent(o.Probability))),
		bodyStyle.Render("The caregiver assignment protocol has been activated."),
	)
	if q := o.Quote; q != nil {
		parts = append(parts, "", QuoteCards(*q))
	}
	parts = append(parts, "", warningStyle.Render("Action required: "+o.Recommendation()))

	if opts.Briefing != nil {
		parts = append(parts, "", Briefing(opts.Briefing))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// QuoteCards renders the profile card and the shift quote card side by side.
func QuoteCards(q assign.Quote) string {
	profile := card("Assigned Profile", q.Profile.Name, q.Profile.Specialty)
	quote := card(
		fmt.Sprintf("Shift Quote (%dh)", q.RequestedHours),
		Money(q.Total)+" "+Currency,
		"Hourly rate: "+Money(q.Profile.HourlyRate),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, profile, " ", quote)
}

func card(label, value, detail string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardLabelStyle.Render(label),
		cardValueStyle.Render(value),
		hintStyle.Render(detail),
	))
}

// Briefing renders a caregiver briefing as a titled list.
func Briefing(b *careplan.Briefing) string {
	lines := []string{
		titleStyle.Render("Caregiver Briefing"),
		bodyStyle.Render(b.Summary),
		"",
	}
	for i, p := range b.Priorities {
		lines = append(lines, bodyStyle.Render(fmt.Sprintf("%d. %s", i+1, p)))
	}
	lines = append(lines, "", hintStyle.Render("For the family: "+b.FamilyNote))
	if b.Model != "" {
		lines = append(lines, hintStyle.Render("Written by "+b.Model))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Money formats an amount with comma thousands separators, e.g. $192,000.
func Money(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + humanize.Comma(v)
}

// Percent formats a probability with one decimal, e.g. 82.4%.
func Percent(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 1, 64) + "%"
}
