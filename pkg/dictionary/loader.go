// Package dictionary opens, validates and compiles the index files served by wordtrie.
package dictionary

import (
	"fmt"
	"sync"
	"time"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// Loader reads a compiled index from disk
type Loader struct {
	path    string
	useMmap bool
	stats   LoaderStats
	mu      sync.RWMutex
}

// LoaderStats provides statistics about the last load
type LoaderStats struct {
	Path     string
	Bytes    int
	Loads    int
	Failures int
	Duration time.Duration
}

// NewLoader creates a loader for the index at path
func NewLoader(path string, useMmap bool) *Loader {
	return &Loader{
		path:    path,
		useMmap: useMmap,
		stats:   LoaderStats{Path: path},
	}
}

// Path returns the index path the loader reads from
func (l *Loader) Path() string {
	return l.path
}

// Load validates the index file and reads it fully into a new Trie.
// Nothing is retained on failure.
func (l *Loader) Load() (*trie.Trie, error) {
	start := time.Now()

	t, err := l.load()

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.stats.Failures++
		log.Errorf("Failed to load index %s: %v", l.path, err)
		return nil, err
	}
	l.stats.Loads++
	l.stats.Bytes = t.Size()
	l.stats.Duration = time.Since(start)

	log.Debugf("Loaded index %s: %d bytes in %v (mmap=%t)", l.path, t.Size(), l.stats.Duration, l.useMmap)
	return t, nil
}

func (l *Loader) load() (*trie.Trie, error) {
	if err := ValidateFileFormat(l.path, FormatIndex); err != nil {
		return nil, err
	}

	src, err := Open(l.path, l.useMmap)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	defer src.Close()

	// A mapping is decoded in place with a single copy; files are streamed.
	var t *trie.Trie
	if mapped, ok := src.(interface{ Bytes() []byte }); ok {
		t, err = trie.FromBytes(mapped.Bytes())
	} else {
		t, err = trie.New(src)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read index %s: %w", l.path, err)
	}
	return t, nil
}

// GetStats returns statistics about the loads done so far
func (l *Loader) GetStats() LoaderStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stats
}
