package driving

import (
	"context"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

// SummarizeRequest carries one summarisation request.
// Exactly one of Text or PDF must be set.
type SummarizeRequest struct {
	// Text is raw text input.
	Text string

	// PDF is a binary PDF document to extract and summarise.
	PDF []byte

	// SummaryType selects a prompt template from the registry.
	// Empty falls back to the configured default.
	SummaryType string

	// Provider selects the LLM backend.
	Provider domain.AIProvider

	// Options carries per-request generation overrides.
	Options domain.AskOptions
}

// SummarizerService produces summaries of text or PDF content.
type SummarizerService interface {
	// Summarize generates a summary. An unknown summary type is rejected
	// before any LLM call is made.
	Summarize(ctx context.Context, req SummarizeRequest) (*domain.Summary, error)

	// Types returns the supported summary types.
	Types() []domain.SummaryType
}
