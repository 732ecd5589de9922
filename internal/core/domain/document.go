package domain

import "time"

// Document represents a source document before chunking.
// SourceID is the unit of update and deletion granularity.
type Document struct {
	// SourceID identifies the originating document (file path or URL).
	SourceID string

	// Title is the human-readable title, if known.
	Title string

	// Content is the full plain-text content after extraction.
	Content string

	// Metadata contains arbitrary key-value pairs carried onto chunks.
	Metadata map[string]any

	// FetchedAt is when the content was read from its source.
	FetchedAt time.Time
}

// Chunk is the atomic unit of embedding and indexing.
// Its ID is derived deterministically from the source ID and the chunk
// content, so re-chunking identical content yields identical IDs.
type Chunk struct {
	// ID is the deterministic identifier for the chunk.
	ID string

	// SourceID links to the originating Document.
	SourceID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation, populated during indexing.
	Embedding []float32

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}

// ScoredChunk pairs a chunk with its relevance score from a similarity
// search. Scores are normalised to [0,1] where 1 is most similar.
type ScoredChunk struct {
	Chunk Chunk

	// Score is the relevance score: 1 = most similar, 0 = dissimilar.
	Score float64
}
