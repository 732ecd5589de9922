// Package ai provides factory functions and a provider registry for
// creating AI service adapters from resolved settings.
package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	ollamaembed "github.com/custodia-labs/inquire-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/inquire-cli/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/custodia-labs/inquire-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/inquire-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// embeddingDimensions maps known embedding models to their vector sizes.
// Unknown models fall back to the adapter's provider default.
var embeddingDimensions = map[string]int{
	"all-minilm":             384,
	"nomic-embed-text":       768,
	"mxbai-embed-large":      1024,
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// Ensure Registry implements the interface.
var _ driving.ProviderRegistry = (*Registry)(nil)

// Registry resolves LLM and embedding services by provider name.
// Services are constructed lazily on first request and cached, so
// repeated lookups return the same instance.
type Registry struct {
	settings domain.Settings

	mu         sync.Mutex
	llms       map[domain.AIProvider]driven.LLMService
	embeddings map[domain.AIProvider]driven.EmbeddingService
}

// NewRegistry creates a provider registry from the resolved settings.
func NewRegistry(settings domain.Settings) *Registry {
	return &Registry{
		settings:   settings,
		llms:       make(map[domain.AIProvider]driven.LLMService),
		embeddings: make(map[domain.AIProvider]driven.EmbeddingService),
	}
}

// Available returns the providers usable with current credentials.
func (r *Registry) Available() []domain.AIProvider {
	return r.settings.AvailableProviders()
}

// LLM returns the LLM service for the named provider.
func (r *Registry) LLM(provider domain.AIProvider) (driven.LLMService, error) {
	if !provider.IsValid() {
		return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrProviderUnavailable, provider)
	}
	if !r.settings.ProviderAvailable(provider) {
		return nil, fmt.Errorf("%w: %s requires an API key; run 'inquire settings set-key'",
			domain.ErrProviderUnavailable, provider)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if svc, ok := r.llms[provider]; ok {
		return svc, nil
	}

	svc, err := CreateLLMService(r.settings, provider)
	if err != nil {
		return nil, err
	}
	r.llms[provider] = svc
	return svc, nil
}

// Embedding returns the embedding service for the named provider.
func (r *Registry) Embedding(provider domain.AIProvider) (driven.EmbeddingService, error) {
	if !provider.IsValid() {
		return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrProviderUnavailable, provider)
	}
	if !r.settings.ProviderAvailable(provider) {
		return nil, fmt.Errorf("%w: %s requires an API key; run 'inquire settings set-key'",
			domain.ErrProviderUnavailable, provider)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if svc, ok := r.embeddings[provider]; ok {
		return svc, nil
	}

	svc, err := CreateEmbeddingService(r.settings, provider)
	if err != nil {
		return nil, err
	}
	r.embeddings[provider] = svc
	return svc, nil
}

// Close releases every cached service.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, svc := range r.llms {
		svc.Close()
	}
	for _, svc := range r.embeddings {
		svc.Close()
	}
	r.llms = make(map[domain.AIProvider]driven.LLMService)
	r.embeddings = make(map[domain.AIProvider]driven.EmbeddingService)
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity. Returns the service if successful, or an
// error with guidance.
func CreateAndValidateEmbeddingService(settings domain.Settings, provider domain.AIProvider) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings, provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'inquire settings show' to review configuration",
			domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'inquire settings show' to review configuration",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates
// connectivity. Returns the service if successful, or an error with
// guidance.
func CreateAndValidateLLMService(settings domain.Settings, provider domain.AIProvider) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings, provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'inquire settings show' to review configuration",
			domain.ErrLLMUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'inquire settings show' to review configuration",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// CreateEmbeddingService creates the appropriate embedding service for
// the named provider.
func CreateEmbeddingService(settings domain.Settings, provider domain.AIProvider) (driven.EmbeddingService, error) {
	switch provider {
	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings.Ollama), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedding(settings.OpenAI)

	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider: %s",
			domain.ErrProviderUnavailable, provider)
	}
}

// CreateLLMService creates the appropriate LLM service for the named
// provider.
func CreateLLMService(settings domain.Settings, provider domain.AIProvider) (driven.LLMService, error) {
	switch provider {
	case domain.AIProviderOllama:
		return createOllamaLLM(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAILLM(settings)

	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider: %s",
			domain.ErrProviderUnavailable, provider)
	}
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings domain.OllamaSettings) driven.EmbeddingService {
	dimensions := embeddingDimensions[settings.EmbeddingsModel]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.EmbeddingsModel,
		Dimensions: dimensions,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings domain.OpenAISettings) (driven.EmbeddingService, error) {
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.EmbeddingsModel,
		Dimensions: embeddingDimensions[settings.EmbeddingsModel],
	})
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings domain.Settings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.Config{
		BaseURL:     settings.Ollama.BaseURL,
		Model:       settings.Ollama.Model,
		Temperature: settings.DefaultTemperature,
		MaxTokens:   settings.DefaultMaxTokens,
	})
}

// createOpenAILLM creates an OpenAI LLM service.
func createOpenAILLM(settings domain.Settings) (driven.LLMService, error) {
	return openaillm.NewLLMService(openaillm.Config{
		APIKey:      settings.OpenAI.APIKey,
		BaseURL:     settings.OpenAI.BaseURL,
		Model:       settings.OpenAI.Model,
		Temperature: settings.DefaultTemperature,
		MaxTokens:   settings.DefaultMaxTokens,
	})
}
