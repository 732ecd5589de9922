package driving

import (
	"context"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

// IndexerService coordinates chunking, embedding and vector store writes
// for document ingestion, consulting the record manager to decide
// inserts, updates and deletes.
type IndexerService interface {
	// Index ingests one document under the given cleanup policy.
	// Re-indexing unchanged content yields an empty result (idempotence).
	Index(ctx context.Context, doc domain.Document, cleanup domain.CleanupMode) (*domain.IndexResult, error)

	// IndexBatch ingests several documents as one batch. With
	// domain.CleanupFull, chunks whose source does not appear in the
	// batch are removed from the namespace.
	IndexBatch(ctx context.Context, docs []domain.Document, cleanup domain.CleanupMode) (*domain.IndexResult, error)

	// DeleteSource removes every chunk of the source from both the
	// vector store and the record manager.
	DeleteSource(ctx context.Context, sourceID string) (*domain.IndexResult, error)
}
