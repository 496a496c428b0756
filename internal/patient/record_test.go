package patient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInteractive_FillsConstants(t *testing.T) {
	r := NewInteractive(75, 1, 2, 1, true)
	assert.Equal(t, InteractiveAppointmentRequests, r.AppointmentRequests)
	assert.Equal(t, InteractiveShoppingRequests, r.ShoppingRequests)
	assert.True(t, r.FamilySupport)
}

func TestFeatures_Order(t *testing.T) {
	r := Record{
		Age:                   80,
		ChronicConditions:     3,
		AccompanimentRequests: 4,
		MedicationRequests:    5,
		AppointmentRequests:   6,
		ShoppingRequests:      7,
		FamilySupport:         false,
	}
	got := r.Features()
	require.Len(t, got, FeatureCount)
	assert.Equal(t, []float64{80, 3, 4, 5, 6, 7, 0}, got)

	r.FamilySupport = true
	assert.Equal(t, 1.0, r.Features()[6])
	assert.Equal(t, 1, r.FamilySupportFlag())
}

func TestValidate(t *testing.T) {
	base := NewInteractive(75, 1, 2, 1, true)

	tests := []struct {
		name   string
		mutate func(*Record)
		field  string
	}{
		{"valid", func(*Record) {}, ""},
		{"age low", func(r *Record) { r.Age = 59 }, "age"},
		{"age high", func(r *Record) { r.Age = 101 }, "age"},
		{"age edges ok", func(r *Record) { r.Age = 100 }, ""},
		{"chronic high", func(r *Record) { r.ChronicConditions = 6 }, "chronic_conditions"},
		{"chronic negative", func(r *Record) { r.ChronicConditions = -1 }, "chronic_conditions"},
		{"accompaniment high", func(r *Record) { r.AccompanimentRequests = 11 }, "appointment_accompaniment_requests"},
		{"medication high", func(r *Record) { r.MedicationRequests = 11 }, "medication_pickup_requests"},
		{"appointments negative", func(r *Record) { r.AppointmentRequests = -1 }, "appointment_requests"},
		{"shopping high", func(r *Record) { r.ShoppingRequests = 11 }, "shopping_assistance_requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			err := r.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutOfRange))
			var re *RangeError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.field, re.Field)
		})
	}
}

func TestValidateHours(t *testing.T) {
	for h := MinHours; h <= MaxHours; h++ {
		assert.NoError(t, ValidateHours(h), "hours %d", h)
	}
	assert.ErrorIs(t, ValidateHours(3), ErrOutOfRange)
	assert.ErrorIs(t, ValidateHours(13), ErrOutOfRange)
}
