// Package source loads documents from local files or URLs, extracting
// PDF content to plain text before it reaches the indexing pipeline.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
)

// DefaultFetchTimeout bounds URL fetches.
const DefaultFetchTimeout = 30 * time.Second

// maxFetchBytes caps how much of a remote document is read.
const maxFetchBytes = 32 << 20 // 32 MiB

// Loader turns a file path or URL into a domain.Document. The source
// reference becomes the document's SourceID, the unit of update and
// deletion.
type Loader struct {
	client    *http.Client
	extractor driven.TextExtractor
}

// NewLoader creates a document loader. The extractor handles PDF
// content; a nil extractor restricts the loader to plain text.
func NewLoader(extractor driven.TextExtractor) *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: DefaultFetchTimeout,
		},
		extractor: extractor,
	}
}

// Load reads the referenced source. References starting with http://
// or https:// are fetched over HTTP; everything else is a file path.
func (l *Loader) Load(ctx context.Context, ref string) (domain.Document, error) {
	if ref == "" {
		return domain.Document{}, fmt.Errorf("%w: empty source reference", domain.ErrInvalidInput)
	}

	if isURL(ref) {
		return l.loadURL(ctx, ref)
	}
	return l.loadFile(ctx, ref)
}

// isURL reports whether the reference is an HTTP(S) URL.
func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// loadFile reads a local file, extracting PDFs to text.
func (l *Loader) loadFile(ctx context.Context, path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return domain.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}

	content, err := l.toText(ctx, data, strings.EqualFold(filepath.Ext(path), ".pdf"))
	if err != nil {
		return domain.Document{}, fmt.Errorf("loading %s: %w", path, err)
	}

	return domain.Document{
		SourceID:  path,
		Title:     filepath.Base(path),
		Content:   content,
		FetchedAt: time.Now(),
	}, nil
}

// loadURL fetches a remote document, extracting PDFs to text.
func (l *Loader) loadURL(ctx context.Context, url string) (domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return domain.Document{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return domain.Document{}, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Document{}, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return domain.Document{}, fmt.Errorf("reading %s: %w", url, err)
	}

	isPDF := strings.Contains(resp.Header.Get("Content-Type"), "application/pdf") ||
		strings.EqualFold(filepath.Ext(url), ".pdf")

	content, err := l.toText(ctx, data, isPDF)
	if err != nil {
		return domain.Document{}, fmt.Errorf("loading %s: %w", url, err)
	}

	return domain.Document{
		SourceID:  url,
		Title:     filepath.Base(url),
		Content:   content,
		FetchedAt: time.Now(),
	}, nil
}

// toText converts raw bytes to plain text, delegating PDFs to the
// extractor.
func (l *Loader) toText(ctx context.Context, data []byte, isPDF bool) (string, error) {
	if !isPDF {
		return string(data), nil
	}
	if l.extractor == nil {
		return "", fmt.Errorf("%w: PDF input requires a text extractor", domain.ErrConfiguration)
	}
	return l.extractor.Extract(ctx, data)
}
