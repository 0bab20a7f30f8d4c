package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// cacheEntry is the change-detection key for one scanned file.
type cacheEntry struct {
	MTimeNano int64 `json:"mtime_nano"`
	Size      int64 `json:"size"`
}

// FileCache is a JSON manifest of file fingerprints. It answers "has this
// file changed since the last scan" from mtime+size alone, without reading
// content.
type FileCache struct {
	mu      sync.Mutex
	path    string
	entries map[string]cacheEntry
	dirty   bool
}

// NewFileCache loads the manifest at path, starting empty when the file is
// missing or corrupt. A manifest path of "" keeps the cache memory-only.
func NewFileCache(path string) *FileCache {
	fc := &FileCache{path: path, entries: make(map[string]cacheEntry)}
	if path == "" {
		return fc
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc
	}
	var entries map[string]cacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// corrupt manifest: rescan everything rather than fail
		return fc
	}
	fc.entries = entries
	return fc
}

// Fingerprint renders a file's change-detection key as a string, the form
// stored alongside symbol rows.
func Fingerprint(info os.FileInfo) string {
	return fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size())
}

// Changed reports whether the file differs from its manifest entry. Files
// never seen before count as changed.
func (fc *FileCache) Changed(path string, info os.FileInfo) bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	e, ok := fc.entries[path]
	if !ok {
		return true
	}
	return e.MTimeNano != info.ModTime().UnixNano() || e.Size != info.Size()
}

// Update records the file's current fingerprint.
func (fc *FileCache) Update(path string, info os.FileInfo) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.entries[path] = cacheEntry{MTimeNano: info.ModTime().UnixNano(), Size: info.Size()}
	fc.dirty = true
}

// Forget drops a file from the manifest, forcing a rescan next time.
func (fc *FileCache) Forget(path string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if _, ok := fc.entries[path]; ok {
		delete(fc.entries, path)
		fc.dirty = true
	}
}

// Save writes the manifest back to disk when anything changed.
func (fc *FileCache) Save() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.path == "" || !fc.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(fc.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(fc.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	tmp := fc.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, fc.path); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	fc.dirty = false
	return nil
}

// Len returns the number of tracked files.
func (fc *FileCache) Len() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return len(fc.entries)
}
