// Command inquire indexes documents and answers questions about them.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/inquire-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/inquire-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/inquire-cli/internal/adapters/driven/extractor/pdf"
	"github.com/custodia-labs/inquire-cli/internal/adapters/driven/source"
	"github.com/custodia-labs/inquire-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/inquire-cli/internal/adapters/driven/vectorstore/chroma"
	"github.com/custodia-labs/inquire-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/inquire-cli/internal/chunker"
	"github.com/custodia-labs/inquire-cli/internal/config"
	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
	"github.com/custodia-labs/inquire-cli/internal/core/services"
	"github.com/custodia-labs/inquire-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotenv()

	var cfgStore driven.ConfigStore
	if store, err := file.NewConfigStore(""); err != nil {
		logger.Warn("config store unavailable, using defaults: %v", err)
	} else {
		cfgStore = store
	}

	settings := config.Resolve(cfgStore)
	if settings.Debug {
		logger.SetVerbose(true)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	registry := ai.NewRegistry(settings)
	defer registry.Close()

	sqlStore, err := sqlite.NewStore(settings.Index.DataDir)
	if err != nil {
		return fmt.Errorf("opening local store: %w", err)
	}
	defer sqlStore.Close() //nolint:errcheck // Best-effort close on exit

	vectors, err := buildVectorStore(settings, sqlStore)
	if err != nil {
		return err
	}
	records := sqlStore.RecordManager()

	splitter := chunker.New(
		chunker.WithChunkSize(settings.Index.ChunkSize),
		chunker.WithOverlap(settings.Index.ChunkOverlap),
	)

	// Retrieval and indexing need the configured embedding provider.
	// Without it the remaining commands still work.
	var retriever driving.RetrieverService
	var indexer driving.IndexerService
	embedder, err := registry.Embedding(settings.Index.EmbeddingsProvider)
	if err != nil {
		logger.Debug("embedding provider unavailable: %v", err)
	} else {
		retriever = services.NewRetrieverService(embedder, vectors)
		indexer = services.NewIndexerService(
			splitter, embedder, vectors, records,
			settings.Index.Namespace(), settings.Index.EmbedRequestsPerSecond)
	}

	extractor := pdf.NewExtractor(nil)

	cli.SetServices(cli.Services{
		Answer:     services.NewAnswerService(registry, retriever),
		Retriever:  retriever,
		Summarizer: services.NewSummarizerService(registry, extractor, settings.DefaultSummaryType),
		Indexer:    indexer,
		Providers:  registry,
		Loader:     source.NewLoader(extractor),
		Config:     cfgStore,
		Settings:   settings,
	})

	return cli.Execute(version)
}

// buildVectorStore selects the vector store backend: a remote Chroma
// server when configured, the local SQLite store otherwise.
func buildVectorStore(settings domain.Settings, sqlStore *sqlite.Store) (driven.VectorStore, error) {
	if !settings.Chroma.IsConfigured() {
		return sqlStore.VectorStore(settings.Index.Collection), nil
	}

	vs, err := chroma.NewVectorStore(chroma.Config{
		Host:       settings.Chroma.Host,
		Port:       settings.Chroma.Port,
		SSL:        settings.Chroma.SSL,
		Token:      settings.Chroma.Token,
		Tenant:     settings.Chroma.Tenant,
		Database:   settings.Chroma.Database,
		Collection: settings.Index.Collection,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring chroma: %w", err)
	}
	return vs, nil
}
