package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the indexed documents"`
	NoRAG    bool   `json:"no_rag,omitempty" jsonschema:"answer without retrieving context when true"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer   string `json:"answer"`
	Model    string `json:"model"`
	Provider string `json:"provider"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query          string  `json:"query" jsonschema:"the text to search for"`
	K              int     `json:"k,omitempty" jsonschema:"maximum number of results (default 4)"`
	ScoreThreshold float64 `json:"score_threshold,omitempty" jsonschema:"minimum relevance score in [0,1]"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieved chunk.
type SearchResultOutput struct {
	ChunkID  string  `json:"chunk_id"`
	SourceID string  `json:"source_id"`
	Score    float64 `json:"score"`
	Content  string  `json:"content"`
}

// SummarizeInput is the input schema for the summarize tool.
type SummarizeInput struct {
	Text        string `json:"text" jsonschema:"the text to summarise"`
	SummaryType string `json:"summary_type,omitempty" jsonschema:"summary type: concise, detailed or quiz (default concise)"`
}

// SummarizeOutput is the output schema for the summarize tool.
type SummarizeOutput struct {
	Summary     string `json:"summary"`
	SummaryType string `json:"summary_type"`
	Model       string `json:"model"`
	Provider    string `json:"provider"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question grounded on the indexed documents",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find the indexed chunks most similar to a query",
	}, s.handleSearch)

	if s.ports.Summarizer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "summarize",
			Description: "Summarise a piece of text",
		}, s.handleSummarize)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Answer.Ask(ctx, driving.AskRequest{
		Question: input.Question,
		Provider: s.ports.DefaultProvider,
		UseRAG:   !input.NoRAG,
	})
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:   answer.Response,
		Model:    answer.Model,
		Provider: answer.Provider,
	}, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Retriever.Retrieve(ctx, input.Query, driving.RetrieveOptions{
		K:              input.K,
		ScoreThreshold: input.ScoreThreshold,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			ChunkID:  results[i].Chunk.ID,
			SourceID: results[i].Chunk.SourceID,
			Score:    results[i].Score,
			Content:  results[i].Chunk.Content,
		}
	}

	return nil, output, nil
}

// handleSummarize handles the summarize tool invocation.
func (s *Server) handleSummarize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeInput,
) (*mcp.CallToolResult, SummarizeOutput, error) {
	summary, err := s.ports.Summarizer.Summarize(ctx, driving.SummarizeRequest{
		Text:        input.Text,
		SummaryType: input.SummaryType,
		Provider:    s.ports.DefaultProvider,
	})
	if err != nil {
		return nil, SummarizeOutput{}, err
	}

	return nil, SummarizeOutput{
		Summary:     summary.Summary,
		SummaryType: summary.SummaryType,
		Model:       summary.Model,
		Provider:    summary.Provider,
	}, nil
}
