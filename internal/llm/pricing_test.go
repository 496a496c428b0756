package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		found bool
	}{
		{"claude-haiku-4-5-20251001", true},
		{"claude-haiku", true}, // friendly name
		{"gpt-4o-mini", true},
		{"gemini-flash", true},
		{"google/gemini-2.0-flash-001", true},
		{"mock", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LookupCost(tt.model); (got != nil) != tt.found {
			t.Errorf("LookupCost(%q) found = %v, want %v", tt.model, got != nil, tt.found)
		}
	}
}

func TestEstimateCost(t *testing.T) {
	cost, ok := EstimateCost("gpt-4o-mini", 1_000_000, 1_000_000)
	if !ok {
		t.Fatal("expected known model")
	}
	if math.Abs(cost-0.75) > 1e-9 {
		t.Fatalf("expected 0.75, got %v", cost)
	}

	cost, ok = EstimateCost("claude-sonnet", 2000, 500)
	if !ok {
		t.Fatal("expected friendly name to resolve")
	}
	if math.Abs(cost-(0.006+0.0075)) > 1e-9 {
		t.Fatalf("unexpected cost %v", cost)
	}

	if _, ok := EstimateCost("unknown-model", 10, 10); ok {
		t.Fatal("expected unknown model")
	}
}
