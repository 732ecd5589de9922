package mcp

import (
	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point.
type Ports struct {
	// Answer answers questions, with or without retrieval.
	Answer driving.AnswerService

	// Retriever runs similarity searches.
	Retriever driving.RetrieverService

	// Summarizer produces summaries. Optional; without it the
	// summarize tool is not registered.
	Summarizer driving.SummarizerService

	// DefaultProvider is the LLM provider used by tool calls.
	DefaultProvider domain.AIProvider
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	if p.Retriever == nil {
		return ErrMissingRetrieverService
	}
	return nil
}
