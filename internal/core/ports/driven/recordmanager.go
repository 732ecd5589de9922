package driven

import (
	"context"
	"time"
)

// RecordManager tracks which chunk IDs are currently indexed, per
// namespace, to support idempotent re-indexing and cleanup of stale
// entries.
//
// Invariant the indexer maintains: an entry exists here if and only if a
// corresponding live entry exists in the VectorStore for that namespace.
type RecordManager interface {
	// ListKeys returns the chunk IDs recorded under the namespace.
	// A non-empty sourceID restricts the result to that source.
	ListKeys(ctx context.Context, namespace, sourceID string) ([]string, error)

	// Update records chunk IDs for a source, stamping each with the
	// given time. Existing entries are refreshed, not duplicated.
	Update(ctx context.Context, namespace string, chunkIDs []string, sourceID string, at time.Time) error

	// DeleteKeys removes entries by chunk ID. Missing IDs are no-ops.
	DeleteKeys(ctx context.Context, namespace string, chunkIDs []string) error

	// Close releases resources.
	Close() error
}
