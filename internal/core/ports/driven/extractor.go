package driven

import "context"

// TextExtractor converts a binary document (PDF) into plain text.
// Extraction happens before chunking or summarisation; downstream code
// only ever sees text.
type TextExtractor interface {
	// Extract returns the plain text content of the document bytes.
	Extract(ctx context.Context, data []byte) (string, error)
}

// CommandRunner executes an external command and returns its output.
// Extraction adapters shell out through this seam so tests can stub the
// external tool.
type CommandRunner interface {
	// Run executes the named command with arguments and returns stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
