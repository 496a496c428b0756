package patient

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is wrapped by every range violation.
var ErrOutOfRange = errors.New("value out of range")

// Accepted ranges (inclusive).
const (
	MinAge, MaxAge                     = 60, 100
	MinChronic, MaxChronic             = 0, 5
	MinAccompaniment, MaxAccompaniment = 0, 10
	MinMedication, MaxMedication       = 0, 10
	MinAppointments, MaxAppointments   = 0, 10
	MinShopping, MaxShopping           = 0, 10
	MinHours, MaxHours                 = 4, 12
)

// RangeError reports a single field outside its accepted range.
type RangeError struct {
	Field    string
	Value    int
	Min, Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s = %d: must be within [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// Validate checks every attribute against its accepted range.
// The first violation is returned.
func (r Record) Validate() error {
	checks := []struct {
		field    string
		value    int
		min, max int
	}{
		{"age", r.Age, MinAge, MaxAge},
		{"chronic_conditions", r.ChronicConditions, MinChronic, MaxChronic},
		{"appointment_accompaniment_requests", r.AccompanimentRequests, MinAccompaniment, MaxAccompaniment},
		{"medication_pickup_requests", r.MedicationRequests, MinMedication, MaxMedication},
		{"appointment_requests", r.AppointmentRequests, MinAppointments, MaxAppointments},
		{"shopping_assistance_requests", r.ShoppingRequests, MinShopping, MaxShopping},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return &RangeError{Field: c.field, Value: c.value, Min: c.min, Max: c.max}
		}
	}
	return nil
}

// ValidateHours checks the requested shift length.
func ValidateHours(hours int) error {
	if hours < MinHours || hours > MaxHours {
		return &RangeError{Field: "requested_hours", Value: hours, Min: MinHours, Max: MaxHours}
	}
	return nil
}
