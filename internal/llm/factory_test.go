package llm

import (
	"context"
	"testing"
)

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, openEventRepo(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Fatalf("expected retry wrapper outermost, got %T", p)
	}
	if providerName(p) != ProviderMock {
		t.Fatalf("expected mock name, got %q", providerName(p))
	}
}

func TestNewProvider_WithoutEventRepo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rp := p.(*RetryProvider)
	if _, ok := rp.inner.(*MockProvider); !ok {
		t.Fatalf("expected bare backend without event repo, got %T", rp.inner)
	}
}

func TestNewProvider_Backends(t *testing.T) {
	tests := []struct {
		provider string
		name     string
		model    string
	}{
		{ProviderAnthropic, ProviderAnthropic, "claude-haiku-4-5-20251001"},
		{ProviderOpenAI, ProviderOpenAI, "gpt-4o-mini"},
		{ProviderOpenRouter, ProviderOpenRouter, "google/gemini-2.0-flash-001"},
		{ProviderGemini, ProviderGemini, "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Provider = tt.provider
			cfg.Selected().APIKey = "test-key"

			p, err := NewProvider(context.Background(), cfg, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if providerName(p) != tt.name {
				t.Errorf("name = %q, want %q", providerName(p), tt.name)
			}
			if p.ModelID() != tt.model {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.model)
			}
		})
	}
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderAnthropic

	if _, err := NewProvider(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for missing API key")
	}

	cfg.Provider = "bogus"
	if _, err := NewProvider(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
