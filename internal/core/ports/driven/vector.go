package driven

import (
	"context"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

// VectorStore persists (vector, content, metadata) tuples in a named
// collection and answers similarity queries.
//
// Implementations guarantee at most one live entry per chunk ID within a
// collection, and that every mutation is durable before the call returns.
type VectorStore interface {
	// Upsert inserts or replaces entries keyed by chunk ID. Idempotent.
	Upsert(ctx context.Context, chunks []domain.Chunk) error

	// Delete removes entries by chunk ID.
	// Deleting a non-existent ID is a no-op, not an error.
	Delete(ctx context.Context, chunkIDs []string) error

	// SimilaritySearch returns at most k entries with relevance score
	// >= threshold, ordered by descending score (1 = most similar).
	// Ties are broken by insertion order.
	SimilaritySearch(ctx context.Context, embedding []float32, k int, threshold float64) ([]domain.ScoredChunk, error)

	// Close releases resources.
	Close() error
}
