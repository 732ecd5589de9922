package driving

import (
	"context"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

// RetrieveOptions configures a similarity retrieval.
type RetrieveOptions struct {
	// K caps the number of results (default 4).
	K int

	// ScoreThreshold drops results scoring below it (default 0).
	ScoreThreshold float64
}

// RetrieverService answers similarity queries against the vector store.
type RetrieverService interface {
	// Retrieve embeds the query text and returns the most similar chunks
	// in descending score order. Nothing clearing the threshold yields an
	// empty result, not an error.
	Retrieve(ctx context.Context, query string, opts RetrieveOptions) ([]domain.ScoredChunk, error)
}

// AskRequest carries one question to a provider.
type AskRequest struct {
	// Question is the user's question.
	Question string

	// Provider selects the LLM backend.
	Provider domain.AIProvider

	// Options carries per-request generation overrides.
	Options domain.AskOptions

	// UseRAG grounds the answer on retrieved context when true.
	UseRAG bool

	// Retrieve tunes the retrieval when UseRAG is set.
	Retrieve RetrieveOptions
}

// AnswerService turns questions into answers, optionally grounded on
// retrieved context.
type AnswerService interface {
	// Ask answers the question. An empty question short-circuits with a
	// guidance message instead of invoking the LLM.
	Ask(ctx context.Context, req AskRequest) (*domain.Answer, error)
}
