package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
)

var (
	askProvider    string
	askModel       string
	askTemperature float64
	askMaxTokens   int
	askNoRAG       bool
	askK           int
	askThreshold   float64
	askJSON        bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Asks a question grounded on the indexed documents.
The most relevant chunks are retrieved from the vector store and handed
to the LLM as context. Use --no-rag to query the model directly without
retrieval.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askProvider, "provider", "", "AI provider (ollama, openai)")
	askCmd.Flags().StringVar(&askModel, "model", "", "override the provider's default model")
	askCmd.Flags().Float64Var(&askTemperature, "temperature", 0, "sampling temperature")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", 0, "response token budget")
	askCmd.Flags().BoolVar(&askNoRAG, "no-rag", false, "skip retrieval and ask the model directly")
	askCmd.Flags().IntVarP(&askK, "top-k", "k", 0, "number of chunks to retrieve")
	askCmd.Flags().Float64Var(&askThreshold, "threshold", 0, "minimum relevance score [0,1]")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	req := driving.AskRequest{
		Question: args[0],
		Provider: resolveProvider(askProvider),
		Options: domain.AskOptions{
			Model:     askModel,
			MaxTokens: askMaxTokens,
		},
		UseRAG: !askNoRAG,
		Retrieve: driving.RetrieveOptions{
			K:              askK,
			ScoreThreshold: askThreshold,
		},
	}
	if cmd.Flags().Changed("temperature") {
		temp := askTemperature
		req.Options.Temperature = &temp
	}

	answer, err := answerService.Ask(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Response)
	cmd.Println()
	cmd.Println(mutedStyle.Render(fmt.Sprintf("%s/%s", answer.Provider, answer.Model)))
	return nil
}

// resolveProvider maps a flag value to a provider, falling back to the
// configured index provider.
func resolveProvider(name string) domain.AIProvider {
	if name != "" {
		return domain.AIProvider(name)
	}
	return appSettings.Index.EmbeddingsProvider
}
