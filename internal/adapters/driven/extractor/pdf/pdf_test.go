package pdf

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

// mockRunner records the command it was asked to run and returns canned
// output.
type mockRunner struct {
	name   string
	args   []string
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

func TestExtract_ReturnsTextFromRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("  extracted text\n")}
	extractor := NewExtractor(runner)

	text, err := extractor.Extract(context.Background(), []byte("%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.Equal(t, "extracted text", text)
	assert.Equal(t, "pdftotext", runner.name)
	require.Len(t, runner.args, 3)
	assert.Equal(t, "-layout", runner.args[0])
	assert.Equal(t, "-", runner.args[2], "output should go to stdout")
}

func TestExtract_EmptyDataIsInvalidInput(t *testing.T) {
	extractor := NewExtractor(&mockRunner{})

	_, err := extractor.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_NoTextIsInvalidInput(t *testing.T) {
	extractor := NewExtractor(&mockRunner{output: []byte("   \n\n")})

	_, err := extractor.Extract(context.Background(), []byte("%PDF-1.4 fake"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_MissingToolIsConfigurationError(t *testing.T) {
	runner := &mockRunner{err: &exec.Error{Name: "pdftotext", Err: exec.ErrNotFound}}
	extractor := NewExtractor(runner)

	_, err := extractor.Extract(context.Background(), []byte("%PDF-1.4 fake"))
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "poppler")
}

func TestExtract_RunnerFailurePropagates(t *testing.T) {
	runner := &mockRunner{err: assert.AnError}
	extractor := NewExtractor(runner)

	_, err := extractor.Extract(context.Background(), []byte("%PDF-1.4 fake"))
	assert.ErrorIs(t, err, assert.AnError)
}
