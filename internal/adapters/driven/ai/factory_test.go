package ai

import (
	"testing"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

func testSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.OpenAI.APIKey = "sk-test"
	return s
}

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name     string
		provider domain.AIProvider
		wantErr  bool
	}{
		{
			name:     "ollama provider creates service",
			provider: domain.AIProviderOllama,
			wantErr:  false,
		},
		{
			name:     "openai provider creates service",
			provider: domain.AIProviderOpenAI,
			wantErr:  false,
		},
		{
			name:     "unknown provider returns error",
			provider: domain.AIProvider("bedrock"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(testSettings(), tt.provider)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc == nil {
				t.Fatal("expected service, got nil")
			}
			svc.Close()
		})
	}
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		provider domain.AIProvider
		wantErr  bool
	}{
		{
			name:     "ollama provider creates service",
			provider: domain.AIProviderOllama,
			wantErr:  false,
		},
		{
			name:     "openai provider creates service",
			provider: domain.AIProviderOpenAI,
			wantErr:  false,
		},
		{
			name:     "unknown provider returns error",
			provider: domain.AIProvider("bedrock"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(testSettings(), tt.provider)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc == nil {
				t.Fatal("expected service, got nil")
			}
			svc.Close()
		})
	}
}

func TestCreateOpenAI_RequiresAPIKey(t *testing.T) {
	settings := domain.DefaultSettings() // no API key

	if _, err := CreateLLMService(settings, domain.AIProviderOpenAI); err == nil {
		t.Error("expected error for LLM without API key")
	}
	if _, err := CreateEmbeddingService(settings, domain.AIProviderOpenAI); err == nil {
		t.Error("expected error for embeddings without API key")
	}
}

func TestRegistry_LLM(t *testing.T) {
	t.Run("returns cached instance on second call", func(t *testing.T) {
		r := NewRegistry(testSettings())
		defer r.Close()

		first, err := r.LLM(domain.AIProviderOllama)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := r.LLM(domain.AIProviderOllama)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Error("expected the same cached service instance")
		}
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		r := NewRegistry(testSettings())
		defer r.Close()

		if _, err := r.LLM(domain.AIProvider("bedrock")); err == nil {
			t.Error("expected error for unknown provider")
		}
	})

	t.Run("rejects openai without API key", func(t *testing.T) {
		r := NewRegistry(domain.DefaultSettings())
		defer r.Close()

		_, err := r.LLM(domain.AIProviderOpenAI)
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestRegistry_Embedding(t *testing.T) {
	r := NewRegistry(testSettings())
	defer r.Close()

	first, err := r.Embedding(domain.AIProviderOllama)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Embedding(domain.AIProviderOllama)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the same cached service instance")
	}
}

func TestRegistry_Available(t *testing.T) {
	r := NewRegistry(domain.DefaultSettings())
	defer r.Close()

	available := r.Available()
	if len(available) != 1 || available[0] != domain.AIProviderOllama {
		t.Errorf("expected only ollama, got %v", available)
	}
}

func TestRegistry_CloseIsIdempotent(t *testing.T) {
	r := NewRegistry(testSettings())
	if _, err := r.LLM(domain.AIProviderOllama); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.Close()
	r.Close() // second close must not panic

	// The registry remains usable after Close.
	if _, err := r.LLM(domain.AIProviderOllama); err != nil {
		t.Fatalf("unexpected error after close: %v", err)
	}
}
