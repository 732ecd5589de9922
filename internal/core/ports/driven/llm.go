package driven

import (
	"context"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

// LLMService issues chat completions against one configured backend.
//
// Implementations resolve unset AskOptions fields to their provider-level
// defaults and report the resolved values in the returned Answer, so a
// caller always sees exactly which model, temperature and token budget
// produced the response.
//
// Backend failures are wrapped with domain.ErrProvider; the original
// cause is chained, never swallowed. Retry policy is a caller concern.
type LLMService interface {
	// Ask sends a single-turn question and returns the normalised answer.
	Ask(ctx context.Context, query string, opts domain.AskOptions) (*domain.Answer, error)

	// ModelName returns the default model for this service.
	ModelName() string

	// ProviderName returns the backend name ("ollama", "openai").
	ProviderName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
