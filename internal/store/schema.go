package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	assessmentsTable = "assessments"
	llmEventsTable   = "llm_request_events"
)

var (
	assessmentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "reference", Type: field.TypeString, Default: ""},
		{Name: "age", Type: field.TypeInt},
		{Name: "chronic_conditions", Type: field.TypeInt},
		{Name: "accompaniment_requests", Type: field.TypeInt},
		{Name: "medication_requests", Type: field.TypeInt},
		{Name: "appointment_requests", Type: field.TypeInt},
		{Name: "shopping_requests", Type: field.TypeInt},
		{Name: "family_support", Type: field.TypeBool},
		{Name: "requested_hours", Type: field.TypeInt},
		{Name: "probability", Type: field.TypeFloat64},
		{Name: "status", Type: field.TypeString},
		{Name: "rule", Type: field.TypeString, Default: ""},
		{Name: "profile", Type: field.TypeString, Default: ""},
		{Name: "specialty", Type: field.TypeString, Default: ""},
		{Name: "hourly_rate", Type: field.TypeInt64, Default: 0},
		{Name: "total", Type: field.TypeInt64, Default: 0},
		{Name: "model_version", Type: field.TypeString},
		{Name: "model_fingerprint", Type: field.TypeString},
	}
	assessmentsSchema = &schema.Table{
		Name:       assessmentsTable,
		Columns:    assessmentsColumns,
		PrimaryKey: []*schema.Column{assessmentsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "assessment_sequence", Unique: true, Columns: []*schema.Column{assessmentsColumns[1]}},
			{Name: "assessment_status", Columns: []*schema.Column{assessmentsColumns[13]}},
		},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "assessment_id", Type: field.TypeString, Size: 36, Default: ""},
	}
	llmEventsSchema = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_sequence", Unique: true, Columns: []*schema.Column{llmEventsColumns[1]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
			{Name: "llmrequestevent_assessment", Columns: []*schema.Column{llmEventsColumns[13]}},
		},
	}

	tables = []*schema.Table{assessmentsSchema, llmEventsSchema}
)
