package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
)

// Ensure vectorStore implements the interface.
var _ driven.VectorStore = (*vectorStore)(nil)

// vectorStore implements driven.VectorStore using the chunks table.
// Similarity search is a brute-force scan over the collection; local
// collections are small enough that an index structure is not worth
// the complexity.
type vectorStore struct {
	store      *Store
	collection string
}

// Upsert inserts or replaces entries keyed by chunk ID.
func (v *vectorStore) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := v.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (collection, chunk_id, source_id, content, position, embedding, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, chunk_id) DO UPDATE SET
			source_id = excluded.source_id,
			content = excluded.content,
			position = excluded.position,
			embedding = excluded.embedding,
			metadata = excluded.metadata
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		metadata, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata for chunk %s: %w", chunk.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			v.collection,
			chunk.ID,
			chunk.SourceID,
			chunk.Content,
			chunk.Position,
			float32SliceToBytes(chunk.Embedding),
			string(metadata),
		)
		if err != nil {
			return fmt.Errorf("upserting chunk %s: %w", chunk.ID, err)
		}
	}

	return tx.Commit()
}

// Delete removes entries by chunk ID. Missing IDs are no-ops.
func (v *vectorStore) Delete(ctx context.Context, chunkIDs []string) error {
	if len(chunkIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		"DELETE FROM chunks WHERE collection = ? AND chunk_id IN (%s)",
		placeholders(len(chunkIDs)),
	)

	args := make([]any, 0, len(chunkIDs)+1)
	args = append(args, v.collection)
	for _, id := range chunkIDs {
		args = append(args, id)
	}

	if _, err := v.store.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// SimilaritySearch returns at most k entries with relevance score >=
// threshold, ordered by descending score. Ties keep insertion order.
func (v *vectorStore) SimilaritySearch(ctx context.Context, embedding []float32, k int, threshold float64) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	rows, err := v.store.db.QueryContext(ctx, `
		SELECT chunk_id, source_id, content, position, embedding, metadata
		FROM chunks
		WHERE collection = ?
		ORDER BY rowid
	`, v.collection)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var scored []domain.ScoredChunk
	for rows.Next() {
		var (
			chunk        domain.Chunk
			embeddingRaw []byte
			metadataRaw  string
		)
		if err := rows.Scan(&chunk.ID, &chunk.SourceID, &chunk.Content,
			&chunk.Position, &embeddingRaw, &metadataRaw); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		chunk.Embedding = bytesToFloat32Slice(embeddingRaw)
		if metadataRaw != "" && metadataRaw != jsonNull {
			if err := json.Unmarshal([]byte(metadataRaw), &chunk.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshalling metadata for chunk %s: %w", chunk.ID, err)
			}
		}

		// Entries embedded under a different model have a different
		// dimensionality and cannot be compared.
		if len(chunk.Embedding) != len(embedding) {
			continue
		}

		score := relevanceScore(embedding, chunk.Embedding)
		if score < threshold {
			continue
		}

		scored = append(scored, domain.ScoredChunk{Chunk: chunk, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	// Stable sort preserves insertion order among equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// Close is a no-op; the owning Store manages the connection.
func (v *vectorStore) Close() error {
	return nil
}

// relevanceScore maps cosine similarity onto [0,1] with 1 most similar.
func relevanceScore(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cosine := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (cosine + 1) / 2
}
