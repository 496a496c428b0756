package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func carePlanSchema() *Schema {
	return &Schema{
		Name:        "test-care-plan",
		Description: "A test care plan",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary":  map[string]any{"type": "string", "minLength": 1},
				"visits":   map[string]any{"type": "integer", "minimum": 0},
				"priority": map[string]any{"type": "string", "enum": []any{"low", "medium", "high"}},
			},
			"required":             []any{"summary", "visits"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"summary":"Two visits a week","visits":2,"priority":"high"}`, false},
		{"valid without optional", `{"summary":"Weekly check","visits":1}`, false},
		{"missing required", `{"summary":"No visits field"}`, true},
		{"wrong type", `{"summary":"x","visits":"two"}`, true},
		{"invalid enum", `{"summary":"x","visits":1,"priority":"urgent"}`, true},
		{"unknown field", `{"summary":"x","visits":1,"extra":true}`, true},
		{"empty summary", `{"summary":"","visits":1}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty body", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(carePlanSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
			if string(invErr.Content) != tt.raw {
				t.Fatalf("expected offending content to be kept, got %q", invErr.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedArrays(t *testing.T) {
	schema := &Schema{
		Name: "test-nested",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"priorities": map[string]any{
					"type":     "array",
					"minItems": 2,
					"maxItems": 4,
					"items":    map[string]any{"type": "string"},
				},
			},
			"required": []any{"priorities"},
		},
	}

	valid := json.RawMessage(`{"priorities":["medication","mobility"]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	tooFew := json.RawMessage(`{"priorities":["medication"]}`)
	if err := validateResponse(schema, tooFew); err == nil {
		t.Fatal("expected error for too few items")
	}

	wrongItems := json.RawMessage(`{"priorities":[1,2]}`)
	if err := validateResponse(schema, wrongItems); err == nil {
		t.Fatal("expected error for wrong item type")
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	s := carePlanSchema()
	s.Name = "test-cache"
	first, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if first != second {
		t.Fatal("expected the cached schema to be reused")
	}
}
