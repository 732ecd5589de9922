// Package chroma provides a vector store adapter backed by a remote
// Chroma server, speaking its v2 REST API.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// Default configuration values.
const (
	DefaultTenant   = "default_tenant"
	DefaultDatabase = "default_database"
	DefaultTimeout  = 30 * time.Second
)

// Config holds connection parameters for a Chroma server.
type Config struct {
	// Host is the Chroma server hostname. Required.
	Host string

	// Port is the Chroma server port. Required.
	Port int

	// SSL selects https.
	SSL bool

	// Token is the auth token, sent as X-Chroma-Token.
	Token string

	// Tenant is the Chroma tenant (default: default_tenant).
	Tenant string

	// Database is the Chroma database (default: default_database).
	Database string

	// Collection names the collection to operate on. Required.
	Collection string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// VectorStore stores and queries chunk vectors on a Chroma server.
// The collection is created on first use if it does not exist.
type VectorStore struct {
	client     *http.Client
	baseURL    string
	token      string
	collection string

	mu           sync.Mutex
	collectionID string
}

// NewVectorStore creates a Chroma-backed vector store.
func NewVectorStore(cfg Config) (*VectorStore, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, fmt.Errorf("%w: chroma: host and port are required", domain.ErrConfiguration)
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("%w: chroma: collection is required", domain.ErrConfiguration)
	}
	if cfg.Tenant == "" {
		cfg.Tenant = DefaultTenant
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	scheme := "http"
	if cfg.SSL {
		scheme = "https"
	}

	return &VectorStore{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: fmt.Sprintf("%s://%s:%d/api/v2/tenants/%s/databases/%s",
			scheme, cfg.Host, cfg.Port, cfg.Tenant, cfg.Database),
		token:      cfg.Token,
		collection: cfg.Collection,
	}, nil
}

// collectionResponse is the Chroma collection creation response.
type collectionResponse struct {
	ID string `json:"id"`
}

// upsertRequest is the Chroma upsert request format.
type upsertRequest struct {
	IDs        []string         `json:"ids"`
	Embeddings [][]float32      `json:"embeddings"`
	Documents  []string         `json:"documents"`
	Metadatas  []map[string]any `json:"metadatas"`
}

// deleteRequest is the Chroma delete request format.
type deleteRequest struct {
	IDs []string `json:"ids"`
}

// queryRequest is the Chroma query request format.
type queryRequest struct {
	QueryEmbeddings [][]float32 `json:"query_embeddings"`
	NResults        int         `json:"n_results"`
	Include         []string    `json:"include"`
}

// queryResponse is the Chroma query response format. Results come back
// as one inner slice per query embedding.
type queryResponse struct {
	IDs       [][]string         `json:"ids"`
	Documents [][]string         `json:"documents"`
	Metadatas [][]map[string]any `json:"metadatas"`
	Distances [][]float64        `json:"distances"`
}

// Upsert inserts or replaces entries keyed by chunk ID.
func (v *VectorStore) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	collectionID, err := v.ensureCollection(ctx)
	if err != nil {
		return err
	}

	req := upsertRequest{
		IDs:        make([]string, len(chunks)),
		Embeddings: make([][]float32, len(chunks)),
		Documents:  make([]string, len(chunks)),
		Metadatas:  make([]map[string]any, len(chunks)),
	}
	for i, chunk := range chunks {
		req.IDs[i] = chunk.ID
		req.Embeddings[i] = chunk.Embedding
		req.Documents[i] = chunk.Content
		metadata := map[string]any{
			"source_id": chunk.SourceID,
			"position":  chunk.Position,
		}
		for k, val := range chunk.Metadata {
			metadata[k] = val
		}
		req.Metadatas[i] = metadata
	}

	return v.post(ctx, "/collections/"+collectionID+"/upsert", req, nil)
}

// Delete removes entries by chunk ID. Missing IDs are no-ops.
func (v *VectorStore) Delete(ctx context.Context, chunkIDs []string) error {
	if len(chunkIDs) == 0 {
		return nil
	}

	collectionID, err := v.ensureCollection(ctx)
	if err != nil {
		return err
	}

	return v.post(ctx, "/collections/"+collectionID+"/delete", deleteRequest{IDs: chunkIDs}, nil)
}

// SimilaritySearch returns at most k entries with relevance score >=
// threshold, ordered by descending score. Ordering among equal-score
// entries is delegated to the Chroma server and is not guaranteed to
// follow insertion order.
func (v *VectorStore) SimilaritySearch(ctx context.Context, embedding []float32, k int, threshold float64) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	collectionID, err := v.ensureCollection(ctx)
	if err != nil {
		return nil, err
	}

	req := queryRequest{
		QueryEmbeddings: [][]float32{embedding},
		NResults:        k,
		Include:         []string{"documents", "metadatas", "distances"},
	}

	var resp queryResponse
	if err := v.post(ctx, "/collections/"+collectionID+"/query", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.IDs) == 0 {
		return nil, nil
	}

	ids := resp.IDs[0]
	var scored []domain.ScoredChunk
	for i, id := range ids {
		// Chroma returns cosine distance in [0,2]; map onto [0,1]
		// relevance with 1 most similar.
		score := 1 - resp.Distances[0][i]/2
		if score < threshold {
			continue
		}

		chunk := domain.Chunk{ID: id}
		if len(resp.Documents) > 0 && i < len(resp.Documents[0]) {
			chunk.Content = resp.Documents[0][i]
		}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			chunk.Metadata = resp.Metadatas[0][i]
			if sourceID, ok := chunk.Metadata["source_id"].(string); ok {
				chunk.SourceID = sourceID
			}
			if position, ok := chunk.Metadata["position"].(float64); ok {
				chunk.Position = int(position)
			}
		}

		scored = append(scored, domain.ScoredChunk{Chunk: chunk, Score: score})
	}
	return scored, nil
}

// Close releases resources.
func (v *VectorStore) Close() error {
	return nil
}

// ensureCollection resolves the collection ID, creating the collection
// on the server if needed. The ID is cached after the first call.
func (v *VectorStore) ensureCollection(ctx context.Context) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.collectionID != "" {
		return v.collectionID, nil
	}

	body := map[string]any{
		"name":          v.collection,
		"get_or_create": true,
		"configuration": map[string]any{
			"hnsw": map[string]any{"space": "cosine"},
		},
	}

	var resp collectionResponse
	if err := v.post(ctx, "/collections", body, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: chroma: collection response missing id", domain.ErrProvider)
	}

	v.collectionID = resp.ID
	return v.collectionID, nil
}

// post issues a JSON POST and decodes the response into out when non-nil.
func (v *VectorStore) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		v.baseURL+path,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if v.token != "" {
		req.Header.Set("X-Chroma-Token", v.token)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: chroma: %w", domain.ErrVectorStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%w: chroma status %d: failed to read response",
				domain.ErrProvider, resp.StatusCode)
		}
		return fmt.Errorf("%w: chroma status %d: %s", domain.ErrProvider, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
