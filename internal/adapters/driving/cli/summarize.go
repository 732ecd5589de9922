package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
)

var (
	summarizeType      string
	summarizePDF       string
	summarizeProvider  string
	summarizeModel     string
	summarizeMaxTokens int
	summarizeJSON      bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text]",
	Short: "Summarize text or a PDF document",
	Long: `Generates a summary of the given text, or of a PDF when --pdf is set.
Exactly one input must be provided.

Run 'inquire summarize types' to list the available summary styles.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

var summarizeTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the available summary types",
	RunE:  runSummarizeTypes,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeType, "type", "t", "", "summary type (concise, detailed, quiz)")
	summarizeCmd.Flags().StringVar(&summarizePDF, "pdf", "", "path to a PDF file to summarize")
	summarizeCmd.Flags().StringVar(&summarizeProvider, "provider", "", "AI provider (ollama, openai)")
	summarizeCmd.Flags().StringVar(&summarizeModel, "model", "", "override the provider's default model")
	summarizeCmd.Flags().IntVar(&summarizeMaxTokens, "max-tokens", 0, "response token budget")
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "output as JSON")
	summarizeCmd.AddCommand(summarizeTypesCmd)
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if summarizerService == nil {
		return errors.New("summarizer service not configured")
	}

	req := driving.SummarizeRequest{
		SummaryType: summarizeType,
		Provider:    resolveProvider(summarizeProvider),
		Options: domain.AskOptions{
			Model:     summarizeModel,
			MaxTokens: summarizeMaxTokens,
		},
	}

	if len(args) > 0 {
		req.Text = args[0]
	}
	if summarizePDF != "" {
		data, err := os.ReadFile(summarizePDF)
		if err != nil {
			return fmt.Errorf("reading %s: %w", summarizePDF, err)
		}
		req.PDF = data
	}

	summary, err := summarizerService.Summarize(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("summarize failed: %w", err)
	}

	if summarizeJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(summary.Summary)
	cmd.Println()
	cmd.Println(mutedStyle.Render(fmt.Sprintf("%s summary via %s/%s",
		summary.SummaryType, summary.Provider, summary.Model)))
	return nil
}

func runSummarizeTypes(cmd *cobra.Command, _ []string) error {
	if summarizerService == nil {
		return errors.New("summarizer service not configured")
	}

	cmd.Println("Available summary types:")
	for _, st := range summarizerService.Types() {
		name := st.Name
		if name == appSettings.DefaultSummaryType {
			name += " (default)"
		}
		cmd.Printf("  %-20s %s\n", name, st.Description)
	}
	return nil
}
