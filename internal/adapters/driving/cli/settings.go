package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/inquire-cli/internal/config"
	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure providers, indexing and other options.

Settings live in a TOML file; environment variables override it.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration value by its dot-notation key, for example:

  inquire settings set ollama.model llama3:8b
  inquire settings set index.chunk_size 500
  inquire settings set chroma.host localhost`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the OpenAI API key",
	Long:  `Prompts for the OpenAI API key without echoing it to the terminal.`,
	RunE:  runSettingsSetKey,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s := appSettings

	cmd.Println(titleStyle.Render("Current Settings"))
	cmd.Println()

	cmd.Println("[Defaults]")
	cmd.Printf("  Summary type: %s\n", s.DefaultSummaryType)
	cmd.Printf("  Temperature: %.2f\n", s.DefaultTemperature)
	cmd.Printf("  Max tokens: %d\n", s.DefaultMaxTokens)
	cmd.Println()

	cmd.Println("[Ollama]")
	cmd.Printf("  Base URL: %s\n", s.Ollama.BaseURL)
	cmd.Printf("  Model: %s\n", s.Ollama.Model)
	cmd.Printf("  Embeddings model: %s\n", s.Ollama.EmbeddingsModel)
	cmd.Println()

	cmd.Println("[OpenAI]")
	cmd.Printf("  Model: %s\n", s.OpenAI.Model)
	cmd.Printf("  Embeddings model: %s\n", s.OpenAI.EmbeddingsModel)
	if s.OpenAI.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", s.OpenAI.BaseURL)
	}
	if s.OpenAI.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(s.OpenAI.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[Vector Store]")
	if s.Chroma.IsConfigured() {
		scheme := "http"
		if s.Chroma.SSL {
			scheme = "https"
		}
		cmd.Printf("  Backend: chroma (%s://%s:%d)\n", scheme, s.Chroma.Host, s.Chroma.Port)
	} else {
		cmd.Printf("  Backend: sqlite (local)\n")
	}
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Collection: %s\n", s.Index.Collection)
	cmd.Printf("  Embeddings provider: %s\n", s.Index.EmbeddingsProvider)
	cmd.Printf("  Chunk size: %d\n", s.Index.ChunkSize)
	cmd.Printf("  Chunk overlap: %d\n", s.Index.ChunkOverlap)
	cmd.Printf("  Cleanup: %s\n", s.Index.Cleanup)
	if s.Index.EmbedRequestsPerSecond > 0 {
		cmd.Printf("  Embed throttle: %.1f req/s\n", s.Index.EmbedRequestsPerSecond)
	}
	cmd.Println()

	if err := s.Validate(); err != nil {
		cmd.Println(warningStyle.Render(fmt.Sprintf("Warning: %v", err)))
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, parseValue(raw)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, raw)
	cmd.Println(mutedStyle.Render("Takes effect on the next run."))
	return nil
}

func runSettingsSetKey(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Print("Enter OpenAI API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key must not be empty")
	}

	if err := configStore.Set(config.KeyOpenAIAPIKey, apiKey); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	cmd.Printf("API key saved (%s). %s is now available.\n",
		maskAPIKey(apiKey), domain.AIProviderOpenAI.Description())
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	cmd.Println(configStore.Path())
	return nil
}

// parseValue converts a flag string into a typed TOML value.
func parseValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil && isBoolLiteral(raw) {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// isBoolLiteral restricts bool parsing to the words true/false so that
// "1" and "0" stay numeric.
func isBoolLiteral(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "false":
		return true
	default:
		return false
	}
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
