package patient

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed intake.schema.json
var intakeSchemaJSON []byte

const intakeSchemaURL = "schema://previda/intake.json"

// Intake is a single assessment request read from a file.
type Intake struct {
	Reference      string `json:"reference,omitempty"`
	Record         Record `json:"record"`
	RequestedHours int    `json:"requested_hours"`
}

// intakeDoc mirrors Intake on the wire. appointment_requests and
// shopping_assistance_requests are optional and default to the
// interactive constants.
type intakeDoc struct {
	Reference      string `json:"reference"`
	RequestedHours int    `json:"requested_hours"`
	Record         struct {
		Age                   int        `json:"age"`
		ChronicConditions     int        `json:"chronic_conditions"`
		AccompanimentRequests int        `json:"appointment_accompaniment_requests"`
		MedicationRequests    int        `json:"medication_pickup_requests"`
		AppointmentRequests   *int       `json:"appointment_requests"`
		ShoppingRequests      *int       `json:"shopping_assistance_requests"`
		FamilySupport         supportVal `json:"has_family_support"`
	} `json:"record"`
}

// supportVal accepts either a JSON boolean or the integers 0 and 1.
type supportVal bool

func (s *supportVal) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true", "1":
		*s = true
	case "false", "0":
		*s = false
	default:
		return fmt.Errorf("has_family_support: expected boolean or 0/1, got %s", b)
	}
	return nil
}

var intakeSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(intakeSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse intake schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(intakeSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add intake schema: %w", err)
	}
	return c.Compile(intakeSchemaURL)
})

// ParseIntake decodes and validates an intake document. Schema violations
// and range violations are both reported as errors.
func ParseIntake(data []byte) (*Intake, error) {
	schema, err := intakeSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("intake does not match schema: %w", err)
	}

	var doc intakeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode intake: %w", err)
	}

	in := &Intake{
		Reference:      doc.Reference,
		RequestedHours: doc.RequestedHours,
		Record: Record{
			Age:                   doc.Record.Age,
			ChronicConditions:     doc.Record.ChronicConditions,
			AccompanimentRequests: doc.Record.AccompanimentRequests,
			MedicationRequests:    doc.Record.MedicationRequests,
			AppointmentRequests:   InteractiveAppointmentRequests,
			ShoppingRequests:      InteractiveShoppingRequests,
			FamilySupport:         bool(doc.Record.FamilySupport),
		},
	}
	if doc.Record.AppointmentRequests != nil {
		in.Record.AppointmentRequests = *doc.Record.AppointmentRequests
	}
	if doc.Record.ShoppingRequests != nil {
		in.Record.ShoppingRequests = *doc.Record.ShoppingRequests
	}

	if err := in.Record.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateHours(in.RequestedHours); err != nil {
		return nil, err
	}
	return in, nil
}
