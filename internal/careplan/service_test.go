package careplan

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/previda/internal/assign"
	"github.com/abhisek/previda/internal/llm"
	"github.com/abhisek/previda/internal/patient"
)

func validBriefingJSON() json.RawMessage {
	return json.RawMessage(`{
		"summary": "Ana is 82 with three chronic conditions and lives alone, so daily support was assigned.",
		"priorities": [
			"Set up a weekly pill organizer and check it each visit",
			"Accompany her to the cardiology appointment on Thursday"
		],
		"family_note": "A chief nurse will visit daily and keep you informed after each shift."
	}`)
}

func highRiskInput() Input {
	rec := patient.NewInteractive(82, 3, 4, 2, false)
	return Input{
		Reference: "ana-82",
		Record:    rec,
		Outcome:   assign.Decide(0.91, rec, 8),
	}
}

func TestService_GeneratesBriefing(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validBriefingJSON()})
	svc := NewService(mock, DefaultConfig())

	b, err := svc.Generate(context.Background(), highRiskInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(b.Summary, "Ana is 82") {
		t.Errorf("unexpected summary %q", b.Summary)
	}
	if len(b.Priorities) != 2 {
		t.Errorf("expected 2 priorities, got %d", len(b.Priorities))
	}
	if b.FamilyNote == "" {
		t.Error("expected family note")
	}
	if b.Model != llm.ProviderMock {
		t.Errorf("expected model 'mock', got %q", b.Model)
	}
}

func TestService_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validBriefingJSON()})
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Generate(context.Background(), highRiskInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}

	req := mock.Requests()[0]
	if req.Schema != BriefingSchema {
		t.Error("expected the briefing schema")
	}
	if req.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("expected max tokens %d, got %d", DefaultConfig().MaxTokens, req.MaxTokens)
	}
	msg := req.Messages[0].Content
	for _, want := range []string{
		"Age: 82",
		"Chronic conditions: 3",
		"lives alone",
		"Risk of needing home care: 91.0%",
		"Assigned caregiver: Chief Nurse",
		"Shift length: 8 hours",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestService_PurposeIsTagged(t *testing.T) {
	var got string
	p := purposeRecorder{inner: llm.NewMockProvider(llm.MockResponse{Content: validBriefingJSON()}), purpose: &got}
	svc := NewService(p, DefaultConfig())

	if _, err := svc.Generate(context.Background(), highRiskInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != llm.PurposeBriefing {
		t.Errorf("expected purpose %q, got %q", llm.PurposeBriefing, got)
	}
}

func TestService_NotHighRisk(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig())

	rec := patient.NewInteractive(65, 0, 0, 0, true)
	_, err := svc.Generate(context.Background(), Input{Record: rec, Outcome: assign.Decide(0.12, rec, 8)})
	if !errors.Is(err, ErrNotHighRisk) {
		t.Fatalf("expected ErrNotHighRisk, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatal("provider must not be called for independent outcomes")
	}
}

func TestService_SchemaViolation(t *testing.T) {
	// A single priority is below the schema's minimum.
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"summary": "Short.",
		"priorities": ["Only one"],
		"family_note": "Note."
	}`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Generate(context.Background(), highRiskInput())
	var invErr *llm.ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestService_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Generate(context.Background(), highRiskInput())
	if err == nil || !strings.Contains(err.Error(), "briefing generation") {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

type purposeRecorder struct {
	inner   llm.Provider
	purpose *string
}

func (p purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	*p.purpose = llm.PurposeFrom(ctx)
	return p.inner.Generate(ctx, req)
}

func (p purposeRecorder) ModelID() string { return p.inner.ModelID() }
