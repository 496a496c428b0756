// Package careplan writes the optional caregiver briefing that accompanies
// a high-risk assessment.
package careplan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/previda/internal/llm"
)

// Service generates caregiver briefings.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a briefing service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type briefingOutput struct {
	Summary    string   `json:"summary"`
	Priorities []string `json:"priorities"`
	FamilyNote string   `json:"family_note"`
}

// Generate asks the provider for a briefing. Outcomes below the risk
// threshold return ErrNotHighRisk without calling the provider.
func (s *Service) Generate(ctx context.Context, input Input) (*Briefing, error) {
	if !input.Outcome.HighRisk() || input.Outcome.Quote == nil {
		return nil, ErrNotHighRisk
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeBriefing)

	req := llm.Request{
		System: briefingSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildBriefingUserMessage(input)},
		},
		Schema:      BriefingSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("briefing generation: %w", err)
	}

	var out briefingOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse briefing response: %w", err)
	}

	model := resp.Model
	if model == "" {
		model = s.provider.ModelID()
	}
	return &Briefing{
		Summary:    out.Summary,
		Priorities: out.Priorities,
		FamilyNote: out.FamilyNote,
		Model:      model,
	}, nil
}
