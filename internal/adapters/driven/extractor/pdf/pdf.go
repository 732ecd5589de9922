// Package pdf extracts plain text from PDF documents by shelling out
// to the poppler pdftotext tool.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// command is the external tool used for extraction.
const command = "pdftotext"

// InstallInstructions explains how to get pdftotext on common platforms.
const InstallInstructions = "pdftotext not found; install poppler " +
	"(macOS: brew install poppler, Debian/Ubuntu: apt install poppler-utils)"

// Extractor extracts text from PDF bytes using pdftotext.
type Extractor struct {
	runner driven.CommandRunner
}

// NewExtractor creates a PDF extractor. A nil runner uses the real
// pdftotext binary.
func NewExtractor(runner driven.CommandRunner) *Extractor {
	if runner == nil {
		runner = execRunner{}
	}
	return &Extractor{runner: runner}
}

// Extract writes the PDF to a temporary file, runs pdftotext on it and
// returns the text printed to stdout.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty PDF data", domain.ErrInvalidInput)
	}

	tmpDir, err := os.MkdirTemp("", "inquire-pdf-*")
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	tmpFile := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}

	// "-" sends the text to stdout; -layout keeps reading order sane
	// for multi-column documents.
	out, err := e.runner.Run(ctx, command, "-layout", tmpFile, "-")
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrConfiguration, InstallInstructions)
		}
		return "", fmt.Errorf("running %s: %w", command, err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("%w: PDF contains no extractable text", domain.ErrInvalidInput)
	}
	return text, nil
}

// isNotFound reports whether the error means the binary is missing.
func isNotFound(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound)
}

// execRunner runs real external commands.
type execRunner struct{}

// Run executes the named command and returns stdout.
func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
