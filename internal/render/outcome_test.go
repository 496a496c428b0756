package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/previda/internal/assign"
	"github.com/abhisek/previda/internal/careplan"
	"github.com/abhisek/previda/internal/patient"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1,000"},
		{24000, "$24,000"},
		{192000, "$192,000"},
		{660000, "$660,000"},
		{1234567, "$1,234,567"},
		{-55000, "-$55,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.in), "Money(%d)", tt.in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "65.0%", Percent(0.65))
	assert.Equal(t, "82.4%", Percent(0.8241))
	assert.Equal(t, "0.0%", Percent(0))
}

func TestOutcome_Independent(t *testing.T) {
	rec := patient.NewInteractive(65, 0, 0, 0, true)
	out := ansi.Strip(Outcome(assign.Decide(0.123, rec, 8), Options{}))

	assert.Contains(t, out, "INDEPENDENT PATIENT (risk probability: 12.3%)")
	assert.Contains(t, out, "Preventive monitoring is suggested.")
	assert.NotContains(t, out, "COP")
}

func TestOutcome_HighRiskTicket(t *testing.T) {
	rec := patient.NewInteractive(75, 1, 2, 1, true)
	out := ansi.Strip(Outcome(assign.Decide(0.8, rec, 8), Options{Reference: "ref-001"}))

	for _, want := range []string{
		"Reference: ref-001",
		"HIGH RISK DETECTED (probability: 80.0%)",
		"Assigned Profile",
		"Nursing Assistant",
		"Basic Support",
		"Shift Quote (8h)",
		"$192,000 COP",
		"Hourly rate: $24,000",
		"Action required: Immediate hiring is recommended",
	} {
		assert.Contains(t, out, want)
	}
}

func TestOutcome_CardsSideBySide(t *testing.T) {
	rec := patient.NewInteractive(70, 4, 2, 1, true)
	out := ansi.Strip(QuoteCards(*assign.Decide(0.9, rec, 6).Quote))

	var found bool
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Chief Nurse") && strings.Contains(line, "$330,000 COP") {
			found = true
		}
	}
	assert.True(t, found, "profile and quote should share a line:\n%s", out)
}

func TestOutcome_WithBriefing(t *testing.T) {
	rec := patient.NewInteractive(88, 0, 1, 1, false)
	b := &careplan.Briefing{
		Summary:    "Lives alone and needs company.",
		Priorities: []string{"Plan a daily walk", "Call the family every Friday"},
		FamilyNote: "We will keep you posted.",
		Model:      "mock",
	}
	out := ansi.Strip(Outcome(assign.Decide(0.7, rec, 4), Options{Briefing: b}))

	assert.Contains(t, out, "Caregiver Briefing")
	assert.Contains(t, out, "1. Plan a daily walk")
	assert.Contains(t, out, "2. Call the family every Friday")
	assert.Contains(t, out, "For the family: We will keep you posted.")
	assert.Contains(t, out, "Written by mock")
}

func TestTable(t *testing.T) {
	out := ansi.Strip(Table([]string{"ID", "Status"}, [][]string{{"abc123", "high-risk"}}))
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "high-risk")
}
