package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
)

// setupTestServices swaps the package services for mocks and returns a
// cleanup restoring the originals.
func setupTestServices() func() {
	oldAnswer := answerService
	oldRetriever := retrieverService
	oldSummarizer := summarizerService
	oldIndexer := indexerService
	oldRegistry := providerRegistry
	oldLoader := documentLoader
	oldConfig := configStore
	oldSettings := appSettings

	answerService = &mockAnswerService{}
	retrieverService = &mockRetrieverService{}
	summarizerService = &mockSummarizerService{}
	indexerService = &mockIndexerService{}
	providerRegistry = &mockProviderRegistry{}
	documentLoader = &mockLoader{}
	configStore = newMockConfigStore()
	appSettings = domain.DefaultSettings()

	return func() {
		answerService = oldAnswer
		retrieverService = oldRetriever
		summarizerService = oldSummarizer
		indexerService = oldIndexer
		providerRegistry = oldRegistry
		documentLoader = oldLoader
		configStore = oldConfig
		appSettings = oldSettings
	}
}

type mockAnswerService struct {
	lastReq driving.AskRequest
}

func (m *mockAnswerService) Ask(_ context.Context, req driving.AskRequest) (*domain.Answer, error) {
	m.lastReq = req
	return &domain.Answer{
		Response: "The answer is 42.",
		Model:    "llama3:8b",
		Provider: "ollama",
	}, nil
}

type mockAnswerServiceError struct{}

func (m *mockAnswerServiceError) Ask(context.Context, driving.AskRequest) (*domain.Answer, error) {
	return nil, errors.New("backend down")
}

type mockRetrieverService struct {
	lastQuery string
	lastOpts  driving.RetrieveOptions
	results   []domain.ScoredChunk
}

func (m *mockRetrieverService) Retrieve(_ context.Context, query string, opts driving.RetrieveOptions) ([]domain.ScoredChunk, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.results != nil {
		return m.results, nil
	}
	return []domain.ScoredChunk{
		{
			Chunk: domain.Chunk{ID: "chunk-1", SourceID: "doc.md", Content: "relevant text"},
			Score: 0.92,
		},
	}, nil
}

type mockSummarizerService struct {
	lastReq driving.SummarizeRequest
}

func (m *mockSummarizerService) Summarize(_ context.Context, req driving.SummarizeRequest) (*domain.Summary, error) {
	m.lastReq = req
	return &domain.Summary{
		Summary:     "A short summary.",
		SummaryType: "concise",
		Model:       "llama3:8b",
		Provider:    "ollama",
		Source:      domain.SummarySourceText,
	}, nil
}

func (m *mockSummarizerService) Types() []domain.SummaryType {
	return domain.SummaryTypes()
}

type mockIndexerService struct {
	lastCleanup domain.CleanupMode
	lastDocs    []domain.Document
	deleted     []string
	result      *domain.IndexResult
	err         error
}

func (m *mockIndexerService) Index(ctx context.Context, doc domain.Document, cleanup domain.CleanupMode) (*domain.IndexResult, error) {
	return m.IndexBatch(ctx, []domain.Document{doc}, cleanup)
}

func (m *mockIndexerService) IndexBatch(_ context.Context, docs []domain.Document, cleanup domain.CleanupMode) (*domain.IndexResult, error) {
	m.lastDocs = docs
	m.lastCleanup = cleanup
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.IndexResult{Added: []string{"chunk-1", "chunk-2"}}, nil
}

func (m *mockIndexerService) DeleteSource(_ context.Context, sourceID string) (*domain.IndexResult, error) {
	m.deleted = append(m.deleted, sourceID)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.IndexResult{Removed: []string{"chunk-1"}}, nil
}

type mockProviderRegistry struct{}

func (m *mockProviderRegistry) Available() []domain.AIProvider {
	return []domain.AIProvider{domain.AIProviderOllama}
}

func (m *mockProviderRegistry) LLM(domain.AIProvider) (driven.LLMService, error) {
	return nil, domain.ErrProviderUnavailable
}

func (m *mockProviderRegistry) Embedding(domain.AIProvider) (driven.EmbeddingService, error) {
	return nil, domain.ErrProviderUnavailable
}

type mockLoader struct {
	loaded []string
}

func (m *mockLoader) Load(_ context.Context, ref string) (domain.Document, error) {
	m.loaded = append(m.loaded, ref)
	return domain.Document{SourceID: ref, Content: "content of " + ref}, nil
}

type mockConfigStore struct {
	values map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if v, ok := m.values[key].(int64); ok {
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	if v, ok := m.values[key].(float64); ok {
		return v
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string {
	return "/tmp/inquire-test/config.toml"
}

var _ driven.ConfigStore = (*mockConfigStore)(nil)
