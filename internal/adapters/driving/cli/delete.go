package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [source-id]",
	Short: "Remove a source from the index",
	Long: `Removes every chunk of the named source from both the vector store
and the record manager. The source ID is the path or URL it was
ingested under.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if indexerService == nil {
		return errors.New("indexer service not configured")
	}

	result, err := indexerService.DeleteSource(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	if len(result.Removed) == 0 {
		cmd.Printf("No chunks indexed for %s.\n", args[0])
		return nil
	}
	cmd.Printf("Removed %d chunk(s) for %s.\n", len(result.Removed), args[0])
	return nil
}
