package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
	"github.com/custodia-labs/inquire-cli/internal/logger"
)

// Ensure SummarizerService implements the interface.
var _ driving.SummarizerService = (*SummarizerService)(nil)

// SummarizerService produces summaries of text or PDF content using a
// fixed registry of prompt templates.
type SummarizerService struct {
	providers          driving.ProviderRegistry
	extractor          driven.TextExtractor
	defaultSummaryType string
}

// NewSummarizerService creates a new summarizer service. The extractor
// is required only for PDF input; a nil extractor restricts the service
// to text.
func NewSummarizerService(providers driving.ProviderRegistry, extractor driven.TextExtractor, defaultSummaryType string) *SummarizerService {
	if defaultSummaryType == "" {
		defaultSummaryType = domain.DefaultSummaryTypeName
	}
	return &SummarizerService{
		providers:          providers,
		extractor:          extractor,
		defaultSummaryType: defaultSummaryType,
	}
}

// Summarize generates a summary. An unknown summary type is rejected
// before any LLM call is made.
func (s *SummarizerService) Summarize(ctx context.Context, req driving.SummarizeRequest) (*domain.Summary, error) {
	hasText := strings.TrimSpace(req.Text) != ""
	hasPDF := len(req.PDF) > 0
	if hasText == hasPDF {
		return nil, fmt.Errorf("%w: exactly one of text or PDF input is required",
			domain.ErrInvalidInput)
	}

	typeName := req.SummaryType
	if typeName == "" {
		typeName = s.defaultSummaryType
	}

	// Validate the type before touching the extractor or the LLM.
	summaryType, err := domain.SummaryTypeByName(typeName)
	if err != nil {
		return nil, err
	}

	source := domain.SummarySourceText
	content := req.Text
	if hasPDF {
		if s.extractor == nil {
			return nil, fmt.Errorf("%w: PDF input requires a text extractor",
				domain.ErrConfiguration)
		}
		source = domain.SummarySourcePDF
		content, err = s.extractor.Extract(ctx, req.PDF)
		if err != nil {
			return nil, fmt.Errorf("extracting PDF: %w", err)
		}
		logger.Debug("extracted %d characters from PDF", len(content))
	}

	llm, err := s.providers.LLM(req.Provider)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(summaryType.Prompt, content)
	answer, err := llm.Ask(ctx, prompt, req.Options)
	if err != nil {
		return nil, fmt.Errorf("summarizing with %s: %w", req.Provider, err)
	}

	return &domain.Summary{
		Summary:           answer.Response,
		SummaryType:       summaryType.Name,
		Model:             answer.Model,
		Provider:          answer.Provider,
		Source:            source,
		Temperature:       answer.Temperature,
		ResponseMaxTokens: answer.ResponseMaxTokens,
	}, nil
}

// Types returns the supported summary types in registry order.
func (s *SummarizerService) Types() []domain.SummaryType {
	return domain.SummaryTypes()
}
