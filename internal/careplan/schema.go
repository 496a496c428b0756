package careplan

import "github.com/abhisek/previda/internal/llm"

// BriefingSchema defines the JSON schema for caregiver briefings.
var BriefingSchema = &llm.Schema{
	Name:        "care-briefing",
	Description: "First-visit briefing for the caregiver assigned to an elderly patient",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "2-3 sentence overview of the patient's situation and why care was assigned",
			},
			"priorities": map[string]any{
				"type":        "array",
				"minItems":    2,
				"maxItems":    4,
				"items":       map[string]any{"type": "string", "minLength": 1},
				"description": "2-4 concrete care priorities for the first week (5-15 words each)",
			},
			"family_note": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "1-2 sentence note addressed to the patient's family",
			},
		},
		"required":             []any{"summary", "priorities", "family_note"},
		"additionalProperties": false,
	},
}
