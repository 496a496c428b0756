package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/previda/internal/store"
)

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"summary":"Weekly check","visits":1}`),
		Usage:   Usage{InputTokens: 30, OutputTokens: 12, TotalTokens: 42},
	})
	p := WithLogging(mock, repo)

	ctx := WithAssessment(WithPurpose(context.Background(), PurposeBriefing), "5f0c6a1e-0000-4000-8000-000000000001")
	_, err := p.Generate(ctx, Request{
		System:   "You are a home-care coordinator.",
		Messages: []Message{{Role: RoleUser, Content: "Plan the first week."}},
		Schema:   carePlanSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Provider != ProviderMock || ev.Model != ProviderMock {
		t.Fatalf("unexpected provider/model %q/%q", ev.Provider, ev.Model)
	}
	if ev.Purpose != PurposeBriefing {
		t.Fatalf("expected purpose %q, got %q", PurposeBriefing, ev.Purpose)
	}
	if ev.AssessmentID != "5f0c6a1e-0000-4000-8000-000000000001" {
		t.Fatalf("assessment link lost: %q", ev.AssessmentID)
	}
	if !ev.Success || ev.ErrorMessage != "" {
		t.Fatalf("expected success, got %+v", ev)
	}
	if ev.InputTokens != 30 || ev.OutputTokens != 12 {
		t.Fatalf("unexpected tokens %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	for _, want := range []string{"[system]", "Plan the first week.", "[schema: test-care-plan]"} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ev.RequestBody)
		}
	}
	if ev.ResponseBody != `{"summary":"Weekly check","visits":1}` {
		t.Fatalf("unexpected response body %q", ev.ResponseBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}})
	p := WithLogging(mock, repo)

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	if err == nil {
		t.Fatal("expected error")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Success {
		t.Fatal("expected failed event")
	}
	if !strings.Contains(events[0].ErrorMessage, "connection refused") {
		t.Fatalf("unexpected error message %q", events[0].ErrorMessage)
	}
	if events[0].Purpose != PurposeUnknown {
		t.Fatalf("expected purpose %q, got %q", PurposeUnknown, events[0].Purpose)
	}
}

func TestLogging_RetriesAreEachRecorded(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithRetry(WithLogging(mock, repo), fastRetry())

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usage, err := repo.LLMUsageByPurpose(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 1 || usage[0].Requests != 2 || usage[0].Failures != 1 {
		t.Fatalf("unexpected usage %+v", usage)
	}
}

func TestSerializeRequest(t *testing.T) {
	got := serializeRequest(Request{
		Messages: []Message{
			{Role: RoleUser, Content: "hello"},
			{Role: RoleAssistant, Content: "hi"},
		},
	})
	want := "[user]\nhello\n\n[assistant]\nhi\n\n"
	if got != want {
		t.Fatalf("serializeRequest() = %q, want %q", got, want)
	}
}
