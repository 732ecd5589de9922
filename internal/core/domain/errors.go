package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// Rejected before any external call; never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates missing or invalid credentials or settings.
	// Fatal at construction time; not retried.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrProvider indicates an embedding or LLM backend call failed
	// (network, auth, quota). The underlying cause is always wrapped.
	// Callers may retry with backoff; retries are never automatic.
	ErrProvider = errors.New("provider request failed")

	// ErrProviderUnavailable indicates the requested AI provider is not
	// configured or not supported.
	ErrProviderUnavailable = errors.New("provider not available or not configured")

	// ErrUnknownSummaryType indicates an unrecognised summary type.
	ErrUnknownSummaryType = errors.New("unknown summary type")

	// ErrLLMUnavailable indicates no LLM service is configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates no embedding service is configured.
	// Semantic retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorStoreUnavailable indicates the vector store is not configured.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")
)

// PartialIndexError reports that the vector store and the record manager
// diverged mid-operation. It carries the chunk ID sets that did and
// did not complete so the caller can retry the same index call: re-running
// the diff is safe because upserts and deletes are idempotent.
type PartialIndexError struct {
	// Namespace scopes the affected record manager entries.
	Namespace string

	// SourceID is the document whose index operation failed.
	SourceID string

	// Op is the phase that failed: "add" or "remove".
	Op string

	// Completed holds chunk IDs fully applied to both stores.
	Completed []string

	// Incomplete holds chunk IDs not (or only partially) applied.
	Incomplete []string

	// Cause is the underlying failure.
	Cause error
}

// Error implements the error interface.
func (e *PartialIndexError) Error() string {
	return fmt.Sprintf("partial index failure in %s phase for %s/%s: %d applied, %d pending: %v",
		e.Op, e.Namespace, e.SourceID, len(e.Completed), len(e.Incomplete), e.Cause)
}

// Unwrap returns the underlying cause.
func (e *PartialIndexError) Unwrap() error {
	return e.Cause
}
