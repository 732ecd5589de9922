package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/inquire-cli/internal/chunker"
	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
	"github.com/custodia-labs/inquire-cli/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.IndexerService = (*IndexerService)(nil)

// embedBatchSize caps how many chunks go to the embedding backend per
// request.
const embedBatchSize = 32

// IndexerService ingests documents into the vector store, using the
// record manager to diff against what is already indexed so unchanged
// chunks are never re-embedded.
//
// Adds always commit before stale removes, so a reader never observes a
// source's chunk set as empty mid-update.
type IndexerService struct {
	splitter  *chunker.Splitter
	embedder  driven.EmbeddingService
	vectors   driven.VectorStore
	records   driven.RecordManager
	namespace string
	limiter   *rate.Limiter
}

// NewIndexerService creates a new indexer service. A zero
// embedRequestsPerSecond disables embedding throttling.
func NewIndexerService(
	splitter *chunker.Splitter,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	records driven.RecordManager,
	namespace string,
	embedRequestsPerSecond float64,
) *IndexerService {
	var limiter *rate.Limiter
	if embedRequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(embedRequestsPerSecond), 1)
	}

	return &IndexerService{
		splitter:  splitter,
		embedder:  embedder,
		vectors:   vectors,
		records:   records,
		namespace: namespace,
		limiter:   limiter,
	}
}

// Index ingests one document under the given cleanup policy.
func (s *IndexerService) Index(ctx context.Context, doc domain.Document, cleanup domain.CleanupMode) (*domain.IndexResult, error) {
	return s.IndexBatch(ctx, []domain.Document{doc}, cleanup)
}

// IndexBatch ingests several documents as one batch. With
// domain.CleanupFull, chunks whose source does not appear in the batch
// are removed from the namespace after all adds complete.
func (s *IndexerService) IndexBatch(ctx context.Context, docs []domain.Document, cleanup domain.CleanupMode) (*domain.IndexResult, error) {
	if !cleanup.IsValid() {
		return nil, fmt.Errorf("%w: unknown cleanup mode %q", domain.ErrInvalidInput, cleanup)
	}

	result := &domain.IndexResult{}
	batchKeys := make(map[string]bool)

	for _, doc := range docs {
		if doc.SourceID == "" {
			return result, fmt.Errorf("%w: document has no source ID", domain.ErrInvalidInput)
		}

		docResult, newKeys, err := s.indexOne(ctx, doc, cleanup)
		if docResult != nil {
			result.Added = append(result.Added, docResult.Added...)
			result.Skipped = append(result.Skipped, docResult.Skipped...)
			result.Removed = append(result.Removed, docResult.Removed...)
		}
		if err != nil {
			return result, err
		}
		for _, key := range newKeys {
			batchKeys[key] = true
		}
	}

	// Full cleanup: after all adds, drop every namespace entry whose
	// chunk did not appear in this batch.
	if cleanup == domain.CleanupFull {
		removed, err := s.cleanupNamespace(ctx, batchKeys)
		result.Removed = append(result.Removed, removed...)
		if err != nil {
			return result, err
		}
	}

	logger.Debug("indexed batch: %d added, %d skipped, %d removed",
		len(result.Added), len(result.Skipped), len(result.Removed))
	return result, nil
}

// indexOne runs the diff-and-write protocol for a single document and
// returns the per-document result plus the full current chunk ID set.
func (s *IndexerService) indexOne(ctx context.Context, doc domain.Document, cleanup domain.CleanupMode) (*domain.IndexResult, []string, error) {
	chunks, err := s.splitter.ChunkDocument(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("chunking %s: %w", doc.SourceID, err)
	}

	newSet := make(map[string]domain.Chunk, len(chunks))
	newKeys := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		newSet[chunk.ID] = chunk
		newKeys = append(newKeys, chunk.ID)
	}

	oldKeys, err := s.records.ListKeys(ctx, s.namespace, doc.SourceID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing indexed chunks for %s: %w", doc.SourceID, err)
	}
	oldSet := make(map[string]bool, len(oldKeys))
	for _, key := range oldKeys {
		oldSet[key] = true
	}

	result := &domain.IndexResult{}

	// ToAdd = New - Old, preserving chunk order.
	var toAdd []domain.Chunk
	for _, chunk := range chunks {
		if oldSet[chunk.ID] {
			result.Skipped = append(result.Skipped, chunk.ID)
		} else {
			toAdd = append(toAdd, chunk)
		}
	}

	// ToRemove = Old - New.
	var toRemove []string
	for _, key := range oldKeys {
		if _, ok := newSet[key]; !ok {
			toRemove = append(toRemove, key)
		}
	}

	// Adds commit first.
	if err := s.addChunks(ctx, doc.SourceID, toAdd); err != nil {
		return result, newKeys, err
	}
	for _, chunk := range toAdd {
		result.Added = append(result.Added, chunk.ID)
	}

	// Per-source stale removal only applies to incremental cleanup;
	// full cleanup diffs the whole namespace afterwards, none keeps
	// everything.
	if cleanup == domain.CleanupIncremental && len(toRemove) > 0 {
		if err := s.removeChunks(ctx, doc.SourceID, toRemove); err != nil {
			// The adds above are fully applied; record them so a
			// retrying caller knows what already landed.
			var pErr *domain.PartialIndexError
			if errors.As(err, &pErr) {
				pErr.Completed = result.Added
			}
			return result, newKeys, err
		}
		result.Removed = append(result.Removed, toRemove...)
	}

	return result, newKeys, nil
}

// addChunks embeds the chunks and writes them to the vector store, then
// records them. A record manager failure after a vector store success
// reports the divergence as a PartialIndexError.
func (s *IndexerService) addChunks(ctx context.Context, sourceID string, toAdd []domain.Chunk) error {
	if len(toAdd) == 0 {
		return nil
	}

	addIDs := make([]string, len(toAdd))
	for i := range toAdd {
		addIDs[i] = toAdd[i].ID
	}

	for start := 0; start < len(toAdd); start += embedBatchSize {
		end := min(start+embedBatchSize, len(toAdd))
		batch := toAdd[start:end]

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("waiting for embed rate limit: %w", err)
			}
		}

		texts := make([]string, len(batch))
		for i := range batch {
			texts[i] = batch[i].Content
		}

		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding %d chunks for %s: %w", len(batch), sourceID, err)
		}
		for i := range batch {
			batch[i].Embedding = embeddings[i]
		}
	}

	if err := s.vectors.Upsert(ctx, toAdd); err != nil {
		return fmt.Errorf("upserting %d chunks for %s: %w", len(toAdd), sourceID, err)
	}

	if err := s.records.Update(ctx, s.namespace, addIDs, sourceID, time.Now()); err != nil {
		// Vector store has the chunks, record manager does not.
		return &domain.PartialIndexError{
			Namespace:  s.namespace,
			SourceID:   sourceID,
			Op:         "add",
			Incomplete: addIDs,
			Cause:      err,
		}
	}
	return nil
}

// removeChunks deletes stale chunks from the vector store first, then
// from the record manager, reporting divergence as a PartialIndexError.
func (s *IndexerService) removeChunks(ctx context.Context, sourceID string, toRemove []string) error {
	if err := s.vectors.Delete(ctx, toRemove); err != nil {
		return &domain.PartialIndexError{
			Namespace:  s.namespace,
			SourceID:   sourceID,
			Op:         "remove",
			Incomplete: toRemove,
			Cause:      err,
		}
	}
	if err := s.records.DeleteKeys(ctx, s.namespace, toRemove); err != nil {
		// Vector store entries are gone, record manager entries remain.
		return &domain.PartialIndexError{
			Namespace:  s.namespace,
			SourceID:   sourceID,
			Op:         "remove",
			Incomplete: toRemove,
			Cause:      err,
		}
	}
	return nil
}

// cleanupNamespace removes every recorded chunk not present in the
// batch's key set.
func (s *IndexerService) cleanupNamespace(ctx context.Context, batchKeys map[string]bool) ([]string, error) {
	allKeys, err := s.records.ListKeys(ctx, s.namespace, "")
	if err != nil {
		return nil, fmt.Errorf("listing namespace %s: %w", s.namespace, err)
	}

	var stale []string
	for _, key := range allKeys {
		if !batchKeys[key] {
			stale = append(stale, key)
		}
	}
	if len(stale) == 0 {
		return nil, nil
	}

	if err := s.removeChunks(ctx, "", stale); err != nil {
		return nil, err
	}
	return stale, nil
}

// DeleteSource removes every chunk of the source from both stores.
func (s *IndexerService) DeleteSource(ctx context.Context, sourceID string) (*domain.IndexResult, error) {
	if sourceID == "" {
		return nil, fmt.Errorf("%w: empty source ID", domain.ErrInvalidInput)
	}

	keys, err := s.records.ListKeys(ctx, s.namespace, sourceID)
	if err != nil {
		return nil, fmt.Errorf("listing indexed chunks for %s: %w", sourceID, err)
	}
	if len(keys) == 0 {
		return &domain.IndexResult{}, nil
	}

	if err := s.removeChunks(ctx, sourceID, keys); err != nil {
		return nil, err
	}

	logger.Debug("deleted source %s: %d chunks removed", sourceID, len(keys))
	return &domain.IndexResult{Removed: keys}, nil
}
