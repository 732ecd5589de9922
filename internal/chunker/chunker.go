// Package chunker splits document text into overlapping fixed-size chunks.
package chunker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// separators are tried largest-boundary first: paragraph, line, sentence,
// word. A chunk is cut at the last occurrence of the first separator found
// inside the window; with none present it is cut mid-word.
var separators = []string{"\n\n", "\n", ". ", " "}

// idNamespace scopes the UUIDv5 derivation of chunk IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("chunks.inquire.custodia-labs.com"))

// Splitter splits document content into overlapping chunks.
// It holds no state across calls; splitting is deterministic, so
// re-chunking identical content yields identical chunk IDs.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Split divides text into chunks of at most chunkSize characters, with
// adjacent chunks overlapping by the configured number of characters to
// preserve cross-boundary context.
// Fails with domain.ErrInvalidInput when overlap >= chunk size.
func (s *Splitter) Split(text string) ([]string, error) {
	if s.overlap >= s.chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidInput, s.overlap, s.chunkSize)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	runes := []rune(text)
	total := len(runes)

	estimated := (total / (s.chunkSize - s.overlap)) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < total {
		end := start + s.chunkSize
		if end >= total {
			if piece := strings.TrimSpace(string(runes[start:])); piece != "" {
				chunks = append(chunks, piece)
			}
			break
		}

		cut := s.cutPoint(runes, start, end)

		if piece := strings.TrimSpace(string(runes[start:cut])); piece != "" {
			chunks = append(chunks, piece)
		}

		next := cut - s.overlap
		if next <= start {
			// Overlap would stall; step past the cut instead.
			next = cut
		}
		start = next
	}

	return chunks, nil
}

// cutPoint finds where to end the chunk starting at start. It prefers the
// largest separator boundary inside the window, falling back to a hard cut
// at the size limit.
func (s *Splitter) cutPoint(runes []rune, start, end int) int {
	window := string(runes[start:end])
	for _, sep := range separators {
		idx := strings.LastIndex(window, sep)
		if idx <= 0 {
			continue
		}
		return start + len([]rune(window[:idx+len(sep)]))
	}
	return end
}

// ChunkDocument splits a document and materialises domain chunks with
// deterministic IDs. Duplicate chunk content within one source collapses
// to a single chunk, keeping at most one live entry per chunk ID.
func (s *Splitter) ChunkDocument(doc domain.Document) ([]domain.Chunk, error) {
	pieces, err := s.Split(doc.Content)
	if err != nil {
		return nil, err
	}

	chunks := make([]domain.Chunk, 0, len(pieces))
	seen := make(map[string]bool, len(pieces))

	for i, piece := range pieces {
		id := ChunkID(doc.SourceID, piece)
		if seen[id] {
			continue
		}
		seen[id] = true

		metadata := make(map[string]any, len(doc.Metadata)+2)
		for k, v := range doc.Metadata {
			metadata[k] = v
		}
		metadata["source_id"] = doc.SourceID
		metadata["position"] = i

		chunks = append(chunks, domain.Chunk{
			ID:       id,
			SourceID: doc.SourceID,
			Content:  piece,
			Position: i,
			Metadata: metadata,
		})
	}

	return chunks, nil
}

// ChunkID derives the deterministic chunk identifier from the source ID
// and the chunk content (UUIDv5 over both).
func ChunkID(sourceID, content string) string {
	return uuid.NewSHA1(idNamespace, []byte(sourceID+"\x00"+content)).String()
}
