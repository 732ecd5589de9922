package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
)

type fakeAnswer struct {
	lastReq driving.AskRequest
	answer  domain.Answer
	err     error
}

func (f *fakeAnswer) Ask(_ context.Context, req driving.AskRequest) (*domain.Answer, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	answer := f.answer
	return &answer, nil
}

type fakeRetriever struct {
	lastQuery string
	lastOpts  driving.RetrieveOptions
	chunks    []domain.ScoredChunk
}

func (f *fakeRetriever) Retrieve(_ context.Context, query string, opts driving.RetrieveOptions) ([]domain.ScoredChunk, error) {
	f.lastQuery = query
	f.lastOpts = opts
	return f.chunks, nil
}

type fakeSummarizer struct {
	lastReq driving.SummarizeRequest
	summary domain.Summary
}

func (f *fakeSummarizer) Summarize(_ context.Context, req driving.SummarizeRequest) (*domain.Summary, error) {
	f.lastReq = req
	summary := f.summary
	return &summary, nil
}

func (f *fakeSummarizer) Types() []domain.SummaryType {
	return domain.SummaryTypes()
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	srv, err := NewServer(ports)
	require.NoError(t, err)
	return srv
}

func TestNewServer_RequiresAnswerAndRetriever(t *testing.T) {
	_, err := NewServer(&Ports{Retriever: &fakeRetriever{}})
	assert.ErrorIs(t, err, ErrMissingAnswerService)

	_, err = NewServer(&Ports{Answer: &fakeAnswer{}})
	assert.ErrorIs(t, err, ErrMissingRetrieverService)
}

func TestHandleAsk(t *testing.T) {
	answer := &fakeAnswer{answer: domain.Answer{
		Response: "42", Model: "llama3:8b", Provider: "ollama",
	}}
	srv := newTestServer(t, &Ports{
		Answer:          answer,
		Retriever:       &fakeRetriever{},
		DefaultProvider: domain.AIProviderOllama,
	})

	_, out, err := srv.handleAsk(context.Background(), nil, AskInput{Question: "meaning of life?"})
	require.NoError(t, err)

	assert.Equal(t, "42", out.Answer)
	assert.Equal(t, "llama3:8b", out.Model)
	assert.Equal(t, "meaning of life?", answer.lastReq.Question)
	assert.True(t, answer.lastReq.UseRAG, "ask tool grounds on the index by default")
	assert.Equal(t, domain.AIProviderOllama, answer.lastReq.Provider)
}

func TestHandleAsk_NoRAG(t *testing.T) {
	answer := &fakeAnswer{}
	srv := newTestServer(t, &Ports{Answer: answer, Retriever: &fakeRetriever{}})

	_, _, err := srv.handleAsk(context.Background(), nil, AskInput{Question: "q", NoRAG: true})
	require.NoError(t, err)
	assert.False(t, answer.lastReq.UseRAG)
}

func TestHandleSearch(t *testing.T) {
	retriever := &fakeRetriever{chunks: []domain.ScoredChunk{
		{Chunk: domain.Chunk{ID: "c1", SourceID: "doc1", Content: "hit"}, Score: 0.9},
	}}
	srv := newTestServer(t, &Ports{Answer: &fakeAnswer{}, Retriever: retriever})

	_, out, err := srv.handleSearch(context.Background(), nil, SearchInput{
		Query: "needle", K: 2, ScoreThreshold: 0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Count)
	assert.Equal(t, "c1", out.Results[0].ChunkID)
	assert.Equal(t, "doc1", out.Results[0].SourceID)
	assert.InDelta(t, 0.9, out.Results[0].Score, 1e-9)
	assert.Equal(t, "needle", retriever.lastQuery)
	assert.Equal(t, 2, retriever.lastOpts.K)
}

func TestHandleSummarize(t *testing.T) {
	summarizer := &fakeSummarizer{summary: domain.Summary{
		Summary: "short", SummaryType: "concise", Model: "m", Provider: "ollama",
	}}
	srv := newTestServer(t, &Ports{
		Answer:          &fakeAnswer{},
		Retriever:       &fakeRetriever{},
		Summarizer:      summarizer,
		DefaultProvider: domain.AIProviderOllama,
	})

	_, out, err := srv.handleSummarize(context.Background(), nil, SummarizeInput{
		Text: "long text", SummaryType: "concise",
	})
	require.NoError(t, err)

	assert.Equal(t, "short", out.Summary)
	assert.Equal(t, "concise", out.SummaryType)
	assert.Equal(t, "long text", summarizer.lastReq.Text)
	assert.Equal(t, domain.AIProviderOllama, summarizer.lastReq.Provider)
}
