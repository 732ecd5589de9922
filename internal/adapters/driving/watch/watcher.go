// Package watch re-indexes documents as they change on disk, driven by
// filesystem notifications. The idempotent index diff makes repeated
// events for the same content cheap: unchanged chunks are skipped.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/inquire-cli/internal/core/domain"
	"github.com/custodia-labs/inquire-cli/internal/core/ports/driving"
	"github.com/custodia-labs/inquire-cli/internal/logger"
)

// DocumentLoader turns a source reference into a document.
type DocumentLoader interface {
	Load(ctx context.Context, ref string) (domain.Document, error)
}

// indexableExtensions are the file types the watcher ingests.
var indexableExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".pdf":      true,
}

// Watcher ingests files under a directory and keeps the index current
// as they are created, modified or removed.
type Watcher struct {
	indexer driving.IndexerService
	loader  DocumentLoader
	cleanup domain.CleanupMode

	// seen tracks the files this watcher has indexed. Removing a whole
	// directory emits a single event for the directory itself, so the
	// affected sources have to be recovered from here.
	seen map[string]bool
}

// NewWatcher creates a directory watcher.
func NewWatcher(indexer driving.IndexerService, loader DocumentLoader, cleanup domain.CleanupMode) *Watcher {
	return &Watcher{
		indexer: indexer,
		loader:  loader,
		cleanup: cleanup,
		seen:    make(map[string]bool),
	}
}

// Run watches the directory tree rooted at dir until the context is
// cancelled. Existing files are indexed once up front.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	// Watch every subdirectory and index what is already there.
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		if isIndexable(path) {
			w.indexFile(ctx, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", dir, err)
	}

	logger.Info("watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, fsw, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// handleEvent reacts to a single filesystem event.
func (w *Watcher) handleEvent(ctx context.Context, fsw *fsnotify.Watcher, event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create):
		// New directories must be added to the watch set; fsnotify
		// does not recurse on its own.
		if fsw != nil && isDir(event.Name) {
			if err := fsw.Add(event.Name); err != nil {
				logger.Warn("watching new directory %s: %v", event.Name, err)
			}
			return
		}
		if isIndexable(event.Name) {
			w.indexFile(ctx, event.Name)
		}

	case event.Op.Has(fsnotify.Write):
		if isIndexable(event.Name) {
			w.indexFile(ctx, event.Name)
		}

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		if isIndexable(event.Name) {
			w.deleteFile(ctx, event.Name)
			return
		}
		// The path may have been a directory; drop every source
		// that was indexed underneath it.
		w.deleteTree(ctx, event.Name)
	}
}

// deleteTree removes all indexed sources under the given path prefix.
func (w *Watcher) deleteTree(ctx context.Context, dir string) {
	prefix := dir + string(os.PathSeparator)
	for path := range w.seen {
		if strings.HasPrefix(path, prefix) {
			w.deleteFile(ctx, path)
		}
	}
}

// indexFile loads and indexes one file, logging failures instead of
// stopping the watch loop.
func (w *Watcher) indexFile(ctx context.Context, path string) {
	doc, err := w.loader.Load(ctx, path)
	if err != nil {
		logger.Warn("loading %s: %v", path, err)
		return
	}

	result, err := w.indexer.Index(ctx, doc, w.cleanup)
	if err != nil {
		logger.Warn("indexing %s: %v", path, err)
		return
	}
	w.seen[path] = true
	if len(result.Added) > 0 || len(result.Removed) > 0 {
		logger.Info("re-indexed %s: %d added, %d skipped, %d removed",
			path, len(result.Added), len(result.Skipped), len(result.Removed))
	}
}

// deleteFile drops a removed file's chunks from the index.
func (w *Watcher) deleteFile(ctx context.Context, path string) {
	delete(w.seen, path)
	result, err := w.indexer.DeleteSource(ctx, path)
	if err != nil {
		logger.Warn("removing %s from index: %v", path, err)
		return
	}
	if len(result.Removed) > 0 {
		logger.Info("removed %s: %d chunks", path, len(result.Removed))
	}
}

// isIndexable reports whether the file extension is a supported source.
func isIndexable(path string) bool {
	return indexableExtensions[strings.ToLower(filepath.Ext(path))]
}

// isDir reports whether the path currently exists as a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
