// Package llm is the provider abstraction behind the optional caregiver
// briefing. Backends return JSON that has already been checked against
// the caller's schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a prompt.
type Provider interface {
	// Generate sends req and returns its response. When req.Schema is set
	// the Content conforms to it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier the provider is configured with.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, selects the backend's native structured output
	// mode. Without it Content is the raw text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name is kebab-case and doubles as the
// compiled-schema cache key.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Purpose labels recorded with every request event.
const (
	PurposeBriefing = "care-briefing"
	PurposeUnknown  = "unknown"
)

type purposeKey struct{}

// WithPurpose attaches a purpose label to ctx for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom extracts the purpose label from ctx.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return PurposeUnknown
}

type assessmentKey struct{}

// WithAssessment links requests made under ctx to a stored assessment.
func WithAssessment(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, assessmentKey{}, id)
}

// AssessmentFrom returns the assessment ID attached to ctx, or "".
func AssessmentFrom(ctx context.Context) string {
	id, _ := ctx.Value(assessmentKey{}).(string)
	return id
}
