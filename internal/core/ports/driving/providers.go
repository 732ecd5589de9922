package driving

import (
	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
)

// ProviderRegistry resolves AI providers by name at call time.
// Selection is a registry lookup keyed by provider name, not inheritance;
// availability is computed from the configured credentials.
type ProviderRegistry interface {
	// Available returns the providers usable with current credentials.
	Available() []domain.AIProvider

	// LLM returns the LLM service for the named provider.
	// Fails with domain.ErrProviderUnavailable for unknown or
	// unconfigured providers.
	LLM(provider domain.AIProvider) (driven.LLMService, error)

	// Embedding returns the embedding service for the named provider.
	Embedding(provider domain.AIProvider) (driven.EmbeddingService, error)
}
