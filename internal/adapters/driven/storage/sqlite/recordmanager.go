package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
)

// Ensure recordManager implements the interface.
var _ driven.RecordManager = (*recordManager)(nil)

// recordManager implements driven.RecordManager using the
// index_records table.
type recordManager struct {
	store *Store
}

// ListKeys returns the chunk IDs recorded under the namespace.
// A non-empty sourceID restricts the result to that source.
func (r *recordManager) ListKeys(ctx context.Context, namespace, sourceID string) ([]string, error) {
	query := "SELECT chunk_id FROM index_records WHERE namespace = ?"
	args := []any{namespace}
	if sourceID != "" {
		query += " AND source_id = ?"
		args = append(args, sourceID)
	}
	query += " ORDER BY chunk_id"

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying index records: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning index record: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating index records: %w", err)
	}
	return keys, nil
}

// Update records chunk IDs for a source, stamping each with the given
// time. Existing entries are refreshed, not duplicated.
func (r *recordManager) Update(ctx context.Context, namespace string, chunkIDs []string, sourceID string, at time.Time) error {
	if len(chunkIDs) == 0 {
		return nil
	}

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO index_records (namespace, chunk_id, source_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace, chunk_id) DO UPDATE SET
			source_id = excluded.source_id,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing update: %w", err)
	}
	defer stmt.Close()

	for _, id := range chunkIDs {
		if _, err := stmt.ExecContext(ctx, namespace, id, sourceID, at.UTC()); err != nil {
			return fmt.Errorf("recording chunk %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// DeleteKeys removes entries by chunk ID. Missing IDs are no-ops.
func (r *recordManager) DeleteKeys(ctx context.Context, namespace string, chunkIDs []string) error {
	if len(chunkIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		"DELETE FROM index_records WHERE namespace = ? AND chunk_id IN (%s)",
		placeholders(len(chunkIDs)),
	)

	args := make([]any, 0, len(chunkIDs)+1)
	args = append(args, namespace)
	for _, id := range chunkIDs {
		args = append(args, id)
	}

	if _, err := r.store.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting index records: %w", err)
	}
	return nil
}

// Close is a no-op; the owning Store manages the connection.
func (r *recordManager) Close() error {
	return nil
}
