package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [path|url]...", ingestCmd.Use)
}

func TestIngestCmd_RequiresAnArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestIngestCmd_IndexesFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2 added")

	mock := indexerService.(*mockIndexerService)
	require.Len(t, mock.lastDocs, 1)
	assert.Equal(t, path, mock.lastDocs[0].SourceID)
	assert.Equal(t, domain.CleanupIncremental, mock.lastCleanup)
}

func TestIngestCmd_WalksDirectories(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.png"), []byte("x"), 0o600))

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest", dir})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	mock := indexerService.(*mockIndexerService)
	assert.Len(t, mock.lastDocs, 2, "png should be skipped")
}

func TestIngestCmd_CleanupFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest", "--cleanup", "full", path})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestCleanup = ""
	}()

	require.NoError(t, rootCmd.Execute())

	mock := indexerService.(*mockIndexerService)
	assert.Equal(t, domain.CleanupFull, mock.lastCleanup)
}

func TestIngestCmd_URLPassesThrough(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest", "https://example.com/doc"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	loader := documentLoader.(*mockLoader)
	assert.Equal(t, []string{"https://example.com/doc"}, loader.loaded)
}

func TestIngestCmd_MissingPath(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "/does/not/exist.md"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngestCmd_PartialFailureReported(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	indexerService.(*mockIndexerService).err = &domain.PartialIndexError{
		SourceID:   "a.md",
		Op:         "add",
		Incomplete: []string{"chunk-1"},
		Cause:      assert.AnError,
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, buf.String(), "Partial failure")
}

func TestDeleteCmd_RemovesSource(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"delete", "doc.md"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Removed 1 chunk(s) for doc.md")

	mock := indexerService.(*mockIndexerService)
	assert.Equal(t, []string{"doc.md"}, mock.deleted)
}

func TestDeleteCmd_UnknownSource(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	indexerService.(*mockIndexerService).result = &domain.IndexResult{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"delete", "ghost.md"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "No chunks indexed")
}
