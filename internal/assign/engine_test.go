package assign

import (
	"testing"

	"github.com/abhisek/previda/internal/patient"
	"github.com/abhisek/previda/internal/riskmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedScorer returns the same probability for every record.
type fixedScorer float64

func (f fixedScorer) Probability(patient.Record) float64 { return float64(f) }

func TestDecide_Threshold(t *testing.T) {
	r := patient.NewInteractive(75, 1, 2, 1, true)

	tests := []struct {
		p    float64
		want Status
	}{
		{0, StatusIndependent},
		{0.5, StatusIndependent},
		{0.6499999, StatusIndependent},
		{0.65, StatusHighRisk},
		{0.9, StatusHighRisk},
		{1, StatusHighRisk},
	}
	for _, tt := range tests {
		out := Decide(tt.p, r, 8)
		assert.Equal(t, tt.want, out.Status, "p=%v", tt.p)
		assert.Equal(t, tt.p, out.Probability)
	}
}

func TestDecide_IndependentHasNoQuote(t *testing.T) {
	out := Decide(0.2, patient.NewInteractive(90, 5, 10, 10, false), 12)
	assert.Equal(t, StatusIndependent, out.Status)
	assert.Nil(t, out.Quote)
	assert.Empty(t, out.Rule)
	assert.False(t, out.HighRisk())
	assert.Contains(t, out.Recommendation(), "Preventive monitoring")
}

func TestQuote_Arithmetic(t *testing.T) {
	for _, p := range []Profile{ChiefNurse, Gerontologist, NursingAssistant} {
		for h := patient.MinHours; h <= patient.MaxHours; h++ {
			q := NewQuote(p, h)
			assert.Equal(t, p.HourlyRate*int64(h), q.Total)
			assert.Equal(t, h, q.RequestedHours)
		}
	}
}

func TestAssess_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		record  patient.Record
		hours   int
		profile Profile
		total   int64
	}{
		{
			name:    "supported low chronic",
			record:  patient.NewInteractive(75, 1, 2, 1, true),
			hours:   8,
			profile: NursingAssistant,
			total:   192000,
		},
		{
			name:    "four chronic conditions",
			record:  patient.NewInteractive(70, 4, 0, 0, true),
			hours:   6,
			profile: ChiefNurse,
			total:   330000,
		},
		{
			name:    "no chronic, lives alone",
			record:  patient.NewInteractive(88, 0, 5, 5, false),
			hours:   4,
			profile: Gerontologist,
			total:   140000,
		},
		{
			name:    "three chronic, lives alone",
			record:  patient.NewInteractive(82, 3, 1, 1, false),
			hours:   12,
			profile: ChiefNurse,
			total:   660000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Assess(fixedScorer(0.8), tt.record, tt.hours)
			require.Equal(t, StatusHighRisk, out.Status)
			require.NotNil(t, out.Quote)
			assert.Equal(t, tt.profile, out.Quote.Profile)
			assert.Equal(t, tt.total, out.Quote.Total)
			assert.Contains(t, out.Recommendation(), "Immediate hiring")
		})
	}
}

func TestEngine_MatchesOneShotAssess(t *testing.T) {
	m, err := riskmodel.Build(riskmodel.DefaultConfig())
	require.NoError(t, err)
	e := NewEngine(m)

	for _, chronic := range []int{0, 1, 3, 5} {
		for _, support := range []bool{false, true} {
			r := patient.NewInteractive(85, chronic, 3, 2, support)
			assert.Equal(t, Assess(m, r, 10), e.Assess(r, 10))
		}
	}
}

func TestEngine_ReferenceScenario(t *testing.T) {
	m, err := riskmodel.Build(riskmodel.DefaultConfig())
	require.NoError(t, err)

	r := patient.NewInteractive(75, 1, 2, 1, true)
	out := NewEngine(m).Assess(r, 8)

	assert.Equal(t, m.Probability(r), out.Probability)
	if out.Probability < RiskThreshold {
		assert.Equal(t, StatusIndependent, out.Status)
		assert.Nil(t, out.Quote)
		return
	}
	require.NotNil(t, out.Quote)
	assert.Equal(t, NursingAssistant, out.Quote.Profile)
	assert.Equal(t, int64(192000), out.Quote.Total)
}

func TestEngine_HighRiskPatient(t *testing.T) {
	m, err := riskmodel.Build(riskmodel.DefaultConfig())
	require.NoError(t, err)

	// 1.5*35 + 10*5 + 25 = 127.5, far above the label cut-off.
	out := NewEngine(m).Assess(patient.NewInteractive(95, 5, 2, 1, false), 8)
	require.Equal(t, StatusHighRisk, out.Status)
	assert.Equal(t, "chronic-load", out.Rule)
	assert.Equal(t, ChiefNurse, out.Quote.Profile)
	assert.Equal(t, int64(440000), out.Quote.Total)
}
