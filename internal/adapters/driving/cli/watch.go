package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inquire-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

var watchCleanup string

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and keep the index current",
	Long: `Watches a directory tree and re-indexes documents as they change.
Existing files are indexed on startup; created and modified files are
re-indexed incrementally, and deleted files are removed from the index.

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchCleanup, "cleanup", "", "cleanup mode (incremental, none)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if indexerService == nil {
		return errors.New("indexer service not configured")
	}
	if documentLoader == nil {
		return errors.New("document loader not configured")
	}

	cleanup := appSettings.Index.Cleanup
	if watchCleanup != "" {
		cleanup = domain.CleanupMode(watchCleanup)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := watch.NewWatcher(indexerService, documentLoader, cleanup)
	if err := watcher.Run(ctx, args[0]); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
