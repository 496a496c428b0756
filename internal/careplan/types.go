package careplan

import (
	"errors"

	"github.com/abhisek/previda/internal/assign"
	"github.com/abhisek/previda/internal/patient"
)

// ErrNotHighRisk is returned when a briefing is requested for an outcome
// that did not trigger a caregiver assignment.
var ErrNotHighRisk = errors.New("briefings are only written for high-risk outcomes")

// Input is the assessment a briefing is written for.
type Input struct {
	Reference string
	Record    patient.Record
	Outcome   assign.Outcome
}

// Briefing is the caregiver's first-visit handout.
type Briefing struct {
	Summary    string   `json:"summary" yaml:"summary"`
	Priorities []string `json:"priorities" yaml:"priorities"`
	FamilyNote string   `json:"family_note" yaml:"familyNote"`

	// Model is the model that wrote the briefing.
	Model string `json:"model" yaml:"model"`
}
