package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
)

// fakeEmbedder returns deterministic vectors and counts how many texts
// it was asked to embed.
type fakeEmbedder struct {
	mu       sync.Mutex
	embedded []string
	err      error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		// A crude but deterministic embedding: length and first byte.
		var first float32
		if len(text) > 0 {
			first = float32(text[0])
		}
		out[i] = []float32{float32(len(text)), first}
		f.embedded = append(f.embedded, text)
	}
	return out, nil
}

func (f *fakeEmbedder) embedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.embedded)
}

func (f *fakeEmbedder) Dimensions() int            { return 2 }
func (f *fakeEmbedder) ModelName() string          { return "fake-embed" }
func (f *fakeEmbedder) ProviderName() string       { return "fake" }
func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error               { return nil }

// fakeVectorStore keeps entries in memory.
type fakeVectorStore struct {
	mu        sync.Mutex
	entries   map[string]domain.Chunk
	upsertErr error
	deleteErr error
	results   []domain.ScoredChunk
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{entries: make(map[string]domain.Chunk)}
}

func (f *fakeVectorStore) Upsert(_ context.Context, chunks []domain.Chunk) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, chunk := range chunks {
		f.entries[chunk.ID] = chunk
	}
	return nil
}

func (f *fakeVectorStore) Delete(_ context.Context, chunkIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for _, id := range chunkIDs {
		delete(f.entries, id)
	}
	return nil
}

func (f *fakeVectorStore) SimilaritySearch(context.Context, []float32, int, float64) ([]domain.ScoredChunk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results, nil
}

func (f *fakeVectorStore) Close() error { return nil }

func (f *fakeVectorStore) ids() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool, len(f.entries))
	for id := range f.entries {
		out[id] = true
	}
	return out
}

// fakeRecordManager keeps records in memory.
type fakeRecordManager struct {
	mu        sync.Mutex
	records   map[string]map[string]string // namespace -> chunkID -> sourceID
	updateErr error
	deleteErr error
}

func newFakeRecordManager() *fakeRecordManager {
	return &fakeRecordManager{records: make(map[string]map[string]string)}
}

func (f *fakeRecordManager) ListKeys(_ context.Context, namespace, sourceID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for id, src := range f.records[namespace] {
		if sourceID == "" || src == sourceID {
			keys = append(keys, id)
		}
	}
	return keys, nil
}

func (f *fakeRecordManager) Update(_ context.Context, namespace string, chunkIDs []string, sourceID string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.records[namespace] == nil {
		f.records[namespace] = make(map[string]string)
	}
	for _, id := range chunkIDs {
		f.records[namespace][id] = sourceID
	}
	return nil
}

func (f *fakeRecordManager) DeleteKeys(_ context.Context, namespace string, chunkIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for _, id := range chunkIDs {
		delete(f.records[namespace], id)
	}
	return nil
}

func (f *fakeRecordManager) Close() error { return nil }

// fakeLLM records the prompts it was asked and returns a canned answer.
type fakeLLM struct {
	mu      sync.Mutex
	prompts []string
	answer  domain.Answer
	err     error
}

func (f *fakeLLM) Ask(_ context.Context, query string, opts domain.AskOptions) (*domain.Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.prompts = append(f.prompts, query)

	answer := f.answer
	if answer.Response == "" {
		answer.Response = "canned response"
	}
	if answer.Model == "" {
		answer.Model = "fake-model"
	}
	if answer.Provider == "" {
		answer.Provider = "fake"
	}
	if opts.Model != "" {
		answer.Model = opts.Model
	}
	return &answer, nil
}

func (f *fakeLLM) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeLLM) ModelName() string          { return "fake-model" }
func (f *fakeLLM) ProviderName() string       { return "fake" }
func (f *fakeLLM) Ping(context.Context) error { return nil }
func (f *fakeLLM) Close() error               { return nil }

// fakeRegistry hands out the configured fakes.
type fakeRegistry struct {
	llm       *fakeLLM
	embedder  *fakeEmbedder
	available []domain.AIProvider
}

func (f *fakeRegistry) Available() []domain.AIProvider { return f.available }

func (f *fakeRegistry) LLM(provider domain.AIProvider) (driven.LLMService, error) {
	if f.llm == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, provider)
	}
	return f.llm, nil
}

func (f *fakeRegistry) Embedding(provider domain.AIProvider) (driven.EmbeddingService, error) {
	if f.embedder == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, provider)
	}
	return f.embedder, nil
}

// fakeRetriever returns fixed chunks.
type fakeRetriever struct {
	chunks []domain.ScoredChunk
	err    error
	calls  int
}

func (f *fakeRetriever) Retrieve(context.Context, string, driving.RetrieveOptions) ([]domain.ScoredChunk, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.chunks, nil
}

// fakeExtractor returns fixed text.
type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(context.Context, []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
