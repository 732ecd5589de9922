// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants ask questions, search the index and summarise
// text through the same services as the CLI.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")

// ErrMissingRetrieverService is returned when the retriever service is not provided.
var ErrMissingRetrieverService = errors.New("mcp: retriever service is required")
