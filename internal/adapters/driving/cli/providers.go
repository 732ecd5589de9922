package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List available AI providers",
	Long: `Lists the AI providers usable with the current configuration.
A cloud provider appears only once its API key is set.`,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) error {
	if providerRegistry == nil {
		return errors.New("provider registry not configured")
	}

	cmd.Println("Available providers:")
	for _, p := range providerRegistry.Available() {
		marker := " "
		if p == appSettings.Index.EmbeddingsProvider {
			marker = "*"
		}
		cmd.Printf("  %s %-10s %s\n", marker, p.String(), mutedStyle.Render(p.Description()))
	}
	cmd.Println()
	cmd.Println(mutedStyle.Render("* provider used for indexing"))
	return nil
}
