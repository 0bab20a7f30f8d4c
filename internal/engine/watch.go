package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"symguard/internal/lang"
	"symguard/internal/logging"
)

// WatchEvent reports one handled filesystem change.
type WatchEvent struct {
	Path    string
	Removed bool
	Symbols int // index size after the rescan
}

// Watch keeps the index in sync with the workspace until ctx is done.
// Created and modified source files are re-scanned, removed files are
// dropped. Events for unsupported files are ignored. The optional onEvent
// callback fires after each handled change.
func (e *Engine) Watch(ctx context.Context, onEvent func(WatchEvent)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := e.addWatchDirs(watcher); err != nil {
		return err
	}
	logging.Watch("Watching %s", e.workspace)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			e.handleWatchEvent(ctx, watcher, event, onEvent)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Get(logging.CategoryWatch).Error("Watcher error: %v", err)
		}
	}
}

// addWatchDirs registers the workspace tree, skipping ignored directories.
// fsnotify watches are not recursive.
func (e *Engine) addWatchDirs(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(e.workspace, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != e.workspace && e.isIgnoredDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			logging.Get(logging.CategoryWatch).Error("Cannot watch %s: %v", path, err)
		}
		return nil
	})
}

func (e *Engine) handleWatchEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event, onEvent func(WatchEvent)) {
	// new directories need their own watch
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !e.isIgnoredDir(filepath.Base(event.Name)) {
				_ = watcher.Add(event.Name)
			}
			return
		}
	}

	if _, ok := lang.Detect(event.Name); !ok {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		e.ix.Invalidate(event.Name)
		logging.Watch("Dropped %s from index", event.Name)
		if onEvent != nil {
			onEvent(WatchEvent{Path: event.Name, Removed: true, Symbols: e.ix.Symbols()})
		}
	case event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create):
		e.ix.Invalidate(event.Name)
		if _, err := e.ix.Scan(ctx, []string{event.Name}); err != nil {
			logging.Get(logging.CategoryWatch).Error("Rescan of %s failed: %v", event.Name, err)
			return
		}
		logging.Watch("Rescanned %s", event.Name)
		if onEvent != nil {
			onEvent(WatchEvent{Path: event.Name, Symbols: e.ix.Symbols()})
		}
	}
}
