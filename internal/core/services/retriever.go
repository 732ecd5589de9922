package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
	"github.com/custodia-labs/inquire-cli/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.RetrieverService = (*RetrieverService)(nil)

// RetrieverService answers similarity queries by embedding the query
// text and delegating to the vector store.
type RetrieverService struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorStore
}

// NewRetrieverService creates a new retriever service.
func NewRetrieverService(embedder driven.EmbeddingService, vectors driven.VectorStore) *RetrieverService {
	return &RetrieverService{
		embedder: embedder,
		vectors:  vectors,
	}
}

// Retrieve embeds the query and returns the most similar chunks in
// descending score order. Nothing clearing the threshold yields an
// empty result, not an error.
func (s *RetrieverService) Retrieve(ctx context.Context, query string, opts driving.RetrieveOptions) ([]domain.ScoredChunk, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if opts.K <= 0 {
		opts.K = domain.DefaultRetrieveK
	}
	if opts.ScoreThreshold < 0 || opts.ScoreThreshold > 1 {
		return nil, fmt.Errorf("%w: score threshold %v outside [0,1]",
			domain.ErrInvalidInput, opts.ScoreThreshold)
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := s.vectors.SimilaritySearch(ctx, embedding, opts.K, opts.ScoreThreshold)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	logger.Debug("retrieved %d chunks for query (k=%d, threshold=%.2f)",
		len(results), opts.K, opts.ScoreThreshold)
	return results, nil
}
