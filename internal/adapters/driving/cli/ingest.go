package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

var ingestCleanup string

var ingestCmd = &cobra.Command{
	Use:   "ingest [path|url]...",
	Short: "Index documents into the vector store",
	Long: `Indexes files, directories or URLs into the vector store.

Indexing is incremental: unchanged chunks are detected via the record
manager and skipped, so re-running ingest on the same content costs no
embedding calls.

Cleanup modes:
  incremental - remove chunks that disappeared from a re-indexed source
  full        - additionally remove sources absent from this batch
  none        - append only, never remove`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCleanup, "cleanup", "", "cleanup mode (incremental, full, none)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if indexerService == nil {
		return errors.New("indexer service not configured")
	}
	if documentLoader == nil {
		return errors.New("document loader not configured")
	}

	cleanup := appSettings.Index.Cleanup
	if ingestCleanup != "" {
		cleanup = domain.CleanupMode(ingestCleanup)
	}

	refs, err := expandRefs(args)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return errors.New("no indexable documents found")
	}

	ctx := cmd.Context()
	docs := make([]domain.Document, 0, len(refs))
	for _, ref := range refs {
		doc, err := documentLoader.Load(ctx, ref)
		if err != nil {
			return fmt.Errorf("loading %s: %w", ref, err)
		}
		docs = append(docs, doc)
	}

	result, err := indexerService.IndexBatch(ctx, docs, cleanup)
	if err != nil {
		var pErr *domain.PartialIndexError
		if errors.As(err, &pErr) {
			cmd.Println(warningStyle.Render(fmt.Sprintf(
				"Partial failure: %d chunks applied, %d incomplete (%s %s)",
				len(pErr.Completed), len(pErr.Incomplete), pErr.Op, pErr.SourceID)))
		}
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Indexed %d document(s): %d added, %d skipped, %d removed\n",
		len(docs), len(result.Added), len(result.Skipped), len(result.Removed))
	return nil
}

// expandRefs resolves directories to the indexable files they contain.
// URLs and plain files pass through unchanged.
func expandRefs(args []string) ([]string, error) {
	var refs []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			refs = append(refs, arg)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, arg)
		}
		if !info.IsDir() {
			refs = append(refs, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && indexableFile(path) {
				refs = append(refs, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}
	return refs, nil
}

// indexableFile reports whether a file extension is a supported source.
func indexableFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown", ".pdf":
		return true
	default:
		return false
	}
}
