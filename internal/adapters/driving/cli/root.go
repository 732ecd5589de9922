// Package cli implements the command-line interface. It is a driving
// adapter: commands translate flags and arguments into calls on the
// core service ports and render the results.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
	"github.com/custodia-labs/inquire-cli/internal/logger"
)

// DocumentLoader turns a source reference (file path or URL) into a
// document ready for indexing.
type DocumentLoader interface {
	Load(ctx context.Context, ref string) (domain.Document, error)
}

// Injected at startup via SetServices.
var (
	version = "dev"

	answerService     driving.AnswerService
	retrieverService  driving.RetrieverService
	summarizerService driving.SummarizerService
	indexerService    driving.IndexerService
	providerRegistry  driving.ProviderRegistry
	documentLoader    DocumentLoader
	configStore       driven.ConfigStore
	appSettings       domain.Settings
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "inquire",
	Short: "Ask questions about your documents",
	Long: `Inquire indexes documents into a vector store and answers questions
about them using retrieval-augmented generation.

Index files or URLs with 'inquire ingest', then ask with 'inquire ask'.
Works fully offline with Ollama, or against the OpenAI API.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services bundles everything the commands need.
type Services struct {
	Answer     driving.AnswerService
	Retriever  driving.RetrieverService
	Summarizer driving.SummarizerService
	Indexer    driving.IndexerService
	Providers  driving.ProviderRegistry
	Loader     DocumentLoader
	Config     driven.ConfigStore
	Settings   domain.Settings
}

// SetServices injects the service implementations the commands run
// against. Must be called before Execute.
func SetServices(s Services) {
	answerService = s.Answer
	retrieverService = s.Retriever
	summarizerService = s.Summarizer
	indexerService = s.Indexer
	providerRegistry = s.Providers
	documentLoader = s.Loader
	configStore = s.Config
	appSettings = s.Settings
}

// Execute runs the root command.
func Execute(ver string) error {
	if ver != "" {
		version = ver
	}
	return rootCmd.Execute()
}
