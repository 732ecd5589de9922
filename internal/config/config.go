// Package config resolves the process settings from the TOML config
// store, a .env file and environment variables. Precedence from lowest
// to highest: built-in defaults, config file, environment. The result
// is an immutable domain.Settings handed to the services at startup.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
)

// Config file keys.
const (
	KeyDefaultSummaryType = "defaults.summary_type"
	KeyDefaultTemperature = "defaults.temperature"
	KeyDefaultMaxTokens   = "defaults.max_tokens"

	KeyOllamaBaseURL    = "ollama.base_url"
	KeyOllamaModel      = "ollama.model"
	KeyOllamaEmbedModel = "ollama.embeddings_model"

	KeyOpenAIAPIKey     = "openai.api_key"
	KeyOpenAIBaseURL    = "openai.base_url"
	KeyOpenAIModel      = "openai.model"
	KeyOpenAIEmbedModel = "openai.embeddings_model"

	KeyChromaHost     = "chroma.host"
	KeyChromaPort     = "chroma.port"
	KeyChromaSSL      = "chroma.ssl"
	KeyChromaToken    = "chroma.token"
	KeyChromaTenant   = "chroma.tenant"
	KeyChromaDatabase = "chroma.database"

	KeyIndexCollection   = "index.collection"
	KeyIndexProvider     = "index.embeddings_provider"
	KeyIndexChunkSize    = "index.chunk_size"
	KeyIndexChunkOverlap = "index.chunk_overlap"
	KeyIndexCleanup      = "index.cleanup"
	KeyIndexDataDir      = "index.data_dir"
	KeyIndexEmbedRPS     = "index.embed_requests_per_second"
)

// Environment variable overrides.
const (
	EnvDebug        = "INQUIRE_DEBUG"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvOllamaHost   = "OLLAMA_HOST"
	EnvCollection   = "INQUIRE_COLLECTION"
	EnvDataDir      = "INQUIRE_DATA_DIR"
	EnvChromaHost   = "CHROMA_HOST"
	EnvChromaPort   = "CHROMA_PORT"
	EnvChromaToken  = "CHROMA_TOKEN"
)

// LoadDotenv loads a .env file from the working directory when present.
// Missing files are fine; existing environment variables win.
func LoadDotenv() {
	_ = godotenv.Load()
}

// Resolve merges defaults, the config store and environment variables
// into a Settings value. The store may be nil, in which case only
// defaults and environment apply.
func Resolve(store driven.ConfigStore) domain.Settings {
	settings := domain.DefaultSettings()

	if store != nil {
		applyStore(&settings, store)
	}
	applyEnv(&settings)

	return settings
}

// applyStore overlays config file values onto the defaults.
func applyStore(settings *domain.Settings, store driven.ConfigStore) {
	setString(&settings.DefaultSummaryType, store.GetString(KeyDefaultSummaryType))
	if _, ok := store.Get(KeyDefaultTemperature); ok {
		settings.DefaultTemperature = store.GetFloat(KeyDefaultTemperature)
	}
	setInt(&settings.DefaultMaxTokens, store.GetInt(KeyDefaultMaxTokens))

	setString(&settings.Ollama.BaseURL, store.GetString(KeyOllamaBaseURL))
	setString(&settings.Ollama.Model, store.GetString(KeyOllamaModel))
	setString(&settings.Ollama.EmbeddingsModel, store.GetString(KeyOllamaEmbedModel))

	setString(&settings.OpenAI.APIKey, store.GetString(KeyOpenAIAPIKey))
	setString(&settings.OpenAI.BaseURL, store.GetString(KeyOpenAIBaseURL))
	setString(&settings.OpenAI.Model, store.GetString(KeyOpenAIModel))
	setString(&settings.OpenAI.EmbeddingsModel, store.GetString(KeyOpenAIEmbedModel))

	setString(&settings.Chroma.Host, store.GetString(KeyChromaHost))
	setInt(&settings.Chroma.Port, store.GetInt(KeyChromaPort))
	if store.GetBool(KeyChromaSSL) {
		settings.Chroma.SSL = true
	}
	setString(&settings.Chroma.Token, store.GetString(KeyChromaToken))
	setString(&settings.Chroma.Tenant, store.GetString(KeyChromaTenant))
	setString(&settings.Chroma.Database, store.GetString(KeyChromaDatabase))

	setString(&settings.Index.Collection, store.GetString(KeyIndexCollection))
	if provider := store.GetString(KeyIndexProvider); provider != "" {
		settings.Index.EmbeddingsProvider = domain.AIProvider(provider)
	}
	setInt(&settings.Index.ChunkSize, store.GetInt(KeyIndexChunkSize))
	if _, ok := store.Get(KeyIndexChunkOverlap); ok {
		settings.Index.ChunkOverlap = store.GetInt(KeyIndexChunkOverlap)
	}
	if cleanup := store.GetString(KeyIndexCleanup); cleanup != "" {
		settings.Index.Cleanup = domain.CleanupMode(cleanup)
	}
	setString(&settings.Index.DataDir, store.GetString(KeyIndexDataDir))
	if rps := store.GetFloat(KeyIndexEmbedRPS); rps > 0 {
		settings.Index.EmbedRequestsPerSecond = rps
	}
}

// applyEnv overlays environment variables, which win over store values.
func applyEnv(settings *domain.Settings) {
	if debug := os.Getenv(EnvDebug); debug != "" {
		settings.Debug, _ = strconv.ParseBool(debug)
	}
	setString(&settings.OpenAI.APIKey, os.Getenv(EnvOpenAIAPIKey))
	setString(&settings.Ollama.BaseURL, os.Getenv(EnvOllamaHost))
	setString(&settings.Index.Collection, os.Getenv(EnvCollection))
	setString(&settings.Index.DataDir, os.Getenv(EnvDataDir))
	setString(&settings.Chroma.Host, os.Getenv(EnvChromaHost))
	if port := os.Getenv(EnvChromaPort); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			settings.Chroma.Port = p
		}
	}
	setString(&settings.Chroma.Token, os.Getenv(EnvChromaToken))
}

// setString assigns value when non-empty.
func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// setInt assigns value when non-zero.
func setInt(dst *int, value int) {
	if value != 0 {
		*dst = value
	}
}
