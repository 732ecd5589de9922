// Package domain defines the core business entities for Inquire.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A source document before chunking
//   - Chunk: The atomic unit of embedding and indexing
//   - Answer / Summary: Normalised LLM invocation results
//   - Settings: Immutable process configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
