package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "test query"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Results:")
	assert.Contains(t, buf.String(), "doc.md")
	assert.Contains(t, buf.String(), "0.92")

	mock := retrieverService.(*mockRetrieverService)
	assert.Equal(t, "test query", mock.lastQuery)
}

func TestSearchCmd_PassesOptions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"search", "-n", "7", "--threshold", "0.3", "q"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchLimit = 0
		searchThreshold = 0
	}()

	require.NoError(t, rootCmd.Execute())

	mock := retrieverService.(*mockRetrieverService)
	assert.Equal(t, 7, mock.lastOpts.K)
	assert.InDelta(t, 0.3, mock.lastOpts.ScoreThreshold, 1e-9)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "q"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "\"Score\"")
	assert.Contains(t, buf.String(), "chunk-1")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	oldService := retrieverService
	retrieverService = nil
	defer func() {
		retrieverService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "q"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "retriever service not configured")
}

func TestOutputSearchTable_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputSearchTable(rootCmd, []domain.ScoredChunk{})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found")
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short", 10))
	assert.Equal(t, "one two", snippet("one\n\ntwo", 10))
	assert.Equal(t, "abcde...", snippet("abcdefgh", 5))
}
