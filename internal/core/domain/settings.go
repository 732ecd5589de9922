package domain

import "fmt"

// Default configuration values.
const (
	DefaultProjectName      = "inquire"
	DefaultSummaryTypeName  = "concise"
	DefaultTemperature      = 0.0
	DefaultMaxTokens        = 1000
	DefaultCollection       = "inquire_knowledge_base"
	DefaultChunkSize        = 1000
	DefaultChunkOverlap     = 200
	DefaultRetrieveK        = 4
	DefaultScoreThreshold   = 0.0
	DefaultOllamaBaseURL    = "http://localhost:11434"
	DefaultOllamaModel      = "llama3:8b"
	DefaultOllamaEmbedModel = "all-minilm"
	DefaultOpenAIModel      = "gpt-4o-mini"
	DefaultOpenAIEmbedModel = "text-embedding-3-small"
)

// OllamaSettings holds connection parameters for a local Ollama instance.
type OllamaSettings struct {
	// BaseURL is the Ollama API endpoint.
	BaseURL string

	// Model is the default chat model.
	Model string

	// EmbeddingsModel is the default embedding model.
	EmbeddingsModel string
}

// OpenAISettings holds connection parameters for the OpenAI API.
type OpenAISettings struct {
	// APIKey is the OpenAI API key. Empty means the provider is unavailable.
	APIKey string

	// BaseURL overrides the API endpoint (for Azure or compatible APIs).
	BaseURL string

	// Model is the default chat model.
	Model string

	// EmbeddingsModel is the default embedding model.
	EmbeddingsModel string
}

// ChromaSettings holds connection parameters for a remote Chroma server.
// When not configured, the local SQLite vector store is used instead.
type ChromaSettings struct {
	// Host is the Chroma server hostname.
	Host string

	// Port is the Chroma server port.
	Port int

	// SSL selects https.
	SSL bool

	// Token is the Chroma auth token, sent as X-CHROMA-TOKEN.
	Token string

	// Tenant is the Chroma tenant name.
	Tenant string

	// Database is the Chroma database name.
	Database string
}

// IsConfigured returns true if the Chroma server settings are complete.
func (c ChromaSettings) IsConfigured() bool {
	return c.Host != "" && c.Port != 0 && c.Token != ""
}

// IndexSettings holds chunking and indexing configuration.
type IndexSettings struct {
	// Collection names the vector collection.
	Collection string

	// EmbeddingsProvider selects which provider embeds chunks.
	// A collection always belongs to exactly one provider configuration;
	// mixing providers within one collection is disallowed.
	EmbeddingsProvider AIProvider

	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int

	// ChunkOverlap is the character overlap between adjacent chunks.
	ChunkOverlap int

	// Cleanup selects the stale-entry removal policy.
	Cleanup CleanupMode

	// DataDir is where local stores keep their files.
	// Empty defaults to ~/.inquire/data.
	DataDir string

	// EmbedRequestsPerSecond throttles embedding backend calls during
	// indexing. Zero disables throttling.
	EmbedRequestsPerSecond float64
}

// Namespace returns the record manager namespace for these index settings.
func (i IndexSettings) Namespace() string {
	return Namespace(i.EmbeddingsProvider, i.Collection)
}

// Settings is the immutable process configuration, resolved once at
// startup. Components receive it by value; a "reload" means constructing
// a new Settings and rebuilding dependants.
type Settings struct {
	// Debug enables verbose logging.
	Debug bool

	// ProjectName identifies this deployment.
	ProjectName string

	// DefaultSummaryType is the summary type used when none is requested.
	DefaultSummaryType string

	// DefaultTemperature is the sampling temperature used when none is requested.
	DefaultTemperature float64

	// DefaultMaxTokens is the response token budget used when none is requested.
	DefaultMaxTokens int

	// Ollama holds local provider settings.
	Ollama OllamaSettings

	// OpenAI holds OpenAI provider settings.
	OpenAI OpenAISettings

	// Chroma holds remote vector store settings.
	Chroma ChromaSettings

	// Index holds chunking and indexing settings.
	Index IndexSettings
}

// DefaultSettings returns a Settings populated with every default.
func DefaultSettings() Settings {
	return Settings{
		ProjectName:        DefaultProjectName,
		DefaultSummaryType: DefaultSummaryTypeName,
		DefaultTemperature: DefaultTemperature,
		DefaultMaxTokens:   DefaultMaxTokens,
		Ollama: OllamaSettings{
			BaseURL:         DefaultOllamaBaseURL,
			Model:           DefaultOllamaModel,
			EmbeddingsModel: DefaultOllamaEmbedModel,
		},
		OpenAI: OpenAISettings{
			Model:           DefaultOpenAIModel,
			EmbeddingsModel: DefaultOpenAIEmbedModel,
		},
		Index: IndexSettings{
			Collection:         DefaultCollection,
			EmbeddingsProvider: AIProviderOllama,
			ChunkSize:          DefaultChunkSize,
			ChunkOverlap:       DefaultChunkOverlap,
			Cleanup:            CleanupIncremental,
		},
	}
}

// AvailableProviders returns the providers usable with the configured
// credentials. A local provider is always available; a hosted provider
// is available only when its API key is present.
func (s Settings) AvailableProviders() []AIProvider {
	providers := []AIProvider{AIProviderOllama}
	if s.OpenAI.APIKey != "" {
		providers = append(providers, AIProviderOpenAI)
	}
	return providers
}

// ProviderAvailable returns true if the named provider can be used.
func (s Settings) ProviderAvailable(p AIProvider) bool {
	for _, ap := range s.AvailableProviders() {
		if ap == p {
			return true
		}
	}
	return false
}

// Validate checks the settings for internal consistency.
func (s Settings) Validate() error {
	if !s.Index.EmbeddingsProvider.IsValid() {
		return fmt.Errorf("%w: unknown embeddings provider %q",
			ErrConfiguration, s.Index.EmbeddingsProvider)
	}
	if !s.Index.Cleanup.IsValid() {
		return fmt.Errorf("%w: unknown cleanup mode %q", ErrConfiguration, s.Index.Cleanup)
	}
	if s.Index.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", ErrConfiguration)
	}
	if s.Index.ChunkOverlap >= s.Index.ChunkSize {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			ErrConfiguration, s.Index.ChunkOverlap, s.Index.ChunkSize)
	}
	if _, err := SummaryTypeByName(s.DefaultSummaryType); err != nil {
		return fmt.Errorf("%w: default summary type: %w", ErrConfiguration, err)
	}
	return nil
}
