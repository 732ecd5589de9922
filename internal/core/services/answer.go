package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
	"github.com/custodia-labs/inquire-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// ragPromptTemplate frames retrieved chunks as context for the model.
const ragPromptTemplate = `You are an assistant for question-answering tasks. Use the following pieces of retrieved context to answer the question. If you don't know the answer, just say that you don't know. Use three sentences maximum and keep the answer concise.
Question: %s
Context: %s
Answer:`

// emptyQuestionGuidance is returned without invoking the LLM when the
// question is blank.
const emptyQuestionGuidance = "No question was provided. Ask something about your indexed documents, for example: \"What are the key points of the onboarding guide?\""

// AnswerService turns questions into answers, optionally grounded on
// retrieved context.
type AnswerService struct {
	providers driving.ProviderRegistry
	retriever driving.RetrieverService
}

// NewAnswerService creates a new answer service. The retriever is
// required only for RAG requests; a nil retriever restricts the
// service to the direct path.
func NewAnswerService(providers driving.ProviderRegistry, retriever driving.RetrieverService) *AnswerService {
	return &AnswerService{
		providers: providers,
		retriever: retriever,
	}
}

// Ask answers the question. An empty question short-circuits with a
// guidance message instead of invoking the LLM.
func (s *AnswerService) Ask(ctx context.Context, req driving.AskRequest) (*domain.Answer, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return &domain.Answer{
			Response: emptyQuestionGuidance,
			Provider: req.Provider.String(),
		}, nil
	}

	llm, err := s.providers.LLM(req.Provider)
	if err != nil {
		return nil, err
	}

	prompt := question
	if req.UseRAG {
		if s.retriever == nil {
			return nil, fmt.Errorf("%w: retrieval requested but no retriever configured",
				domain.ErrEmbeddingUnavailable)
		}

		chunks, err := s.retriever.Retrieve(ctx, question, req.Retrieve)
		if err != nil {
			return nil, fmt.Errorf("retrieving context: %w", err)
		}
		logger.Debug("grounding answer on %d retrieved chunks", len(chunks))

		prompt = fmt.Sprintf(ragPromptTemplate, question, joinChunks(chunks))
	}

	answer, err := llm.Ask(ctx, prompt, req.Options)
	if err != nil {
		return nil, fmt.Errorf("asking %s: %w", req.Provider, err)
	}
	return answer, nil
}

// joinChunks concatenates retrieved chunk contents into one context
// block, highest score first.
func joinChunks(chunks []domain.ScoredChunk) string {
	if len(chunks) == 0 {
		return "(no relevant context found)"
	}

	parts := make([]string, len(chunks))
	for i, sc := range chunks {
		parts[i] = sc.Chunk.Content
	}
	return strings.Join(parts, "\n\n")
}
