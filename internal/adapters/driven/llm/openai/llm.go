// Package openai provides an LLM service adapter using the OpenAI API.
package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.0
	DefaultMaxTokens   = 1000
)

// Config holds configuration for the OpenAI LLM service.
type Config struct {
	// APIKey is the OpenAI API key. Required.
	APIKey string

	// BaseURL overrides the API endpoint (for Azure or compatible APIs).
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Temperature is the default sampling temperature.
	Temperature float64

	// MaxTokens is the default response token budget.
	MaxTokens int
}

// LLMService answers questions using the OpenAI chat completions API.
type LLMService struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewLLMService creates a new OpenAI LLM service.
// Returns an error if no API key is configured.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai: API key is required", domain.ErrConfiguration)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &LLMService{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Ask sends a single-turn question and returns the normalised answer.
func (s *LLMService) Ask(ctx context.Context, query string, opts domain.AskOptions) (*domain.Answer, error) {
	model := s.model
	if opts.Model != "" {
		model = opts.Model
	}
	temperature := s.temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	maxTokens := s.maxTokens
	if opts.MaxTokens > 0 {
		maxTokens = opts.MaxTokens
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		Temperature: float32(temperature),
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %w", domain.ErrProvider, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai: empty response", domain.ErrProvider)
	}

	return &domain.Answer{
		Response:          resp.Choices[0].Message.Content,
		Model:             model,
		Provider:          domain.AIProviderOpenAI.String(),
		Temperature:       temperature,
		ResponseMaxTokens: maxTokens,
	}, nil
}

// ModelName returns the default chat model for this service.
func (s *LLMService) ModelName() string {
	return s.model
}

// ProviderName returns the backend name.
func (s *LLMService) ProviderName() string {
	return domain.AIProviderOpenAI.String()
}

// Ping validates credentials by listing models, a cheap authenticated call.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("%w: openai: ping failed: %w", domain.ErrProvider, err)
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
