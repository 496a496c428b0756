package assign

import (
	"testing"

	"github.com/abhisek/previda/internal/patient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules_Order(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 3)
	assert.Equal(t, "chronic-load", rules[0].Name)
	assert.Equal(t, "lives-alone", rules[1].Name)
	assert.Equal(t, "baseline", rules[2].Name)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		chronic int
		support bool
		want    Profile
	}{
		{"chronic with support", 3, true, ChiefNurse},
		{"chronic alone beats lives-alone", 3, false, ChiefNurse},
		{"max chronic", 5, false, ChiefNurse},
		{"alone", 0, false, Gerontologist},
		{"alone below chronic threshold", 2, false, Gerontologist},
		{"supported", 0, true, NursingAssistant},
		{"supported below threshold", 2, true, NursingAssistant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := patient.NewInteractive(80, tt.chronic, 2, 1, tt.support)
			rule, ok := Match(DefaultRules(), r)
			require.True(t, ok)
			assert.Equal(t, tt.want, rule.Profile)
		})
	}
}

func TestMatch_EmptyTable(t *testing.T) {
	_, ok := Match(nil, patient.NewInteractive(80, 0, 0, 0, true))
	assert.False(t, ok)
}

func TestProfiles_Rates(t *testing.T) {
	assert.Equal(t, int64(55000), ChiefNurse.HourlyRate)
	assert.Equal(t, int64(35000), Gerontologist.HourlyRate)
	assert.Equal(t, int64(24000), NursingAssistant.HourlyRate)
}
