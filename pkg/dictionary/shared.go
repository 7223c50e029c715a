package dictionary

import (
	"sync"
	"sync/atomic"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// Shared hands out one process-wide Trie built on first use. Construction
// runs at most once at a time; a failed load is not cached and the next Get
// tries again.
type Shared struct {
	load    func() (*trie.Trie, error)
	current atomic.Pointer[trie.Trie]
	mu      sync.Mutex
}

// NewShared creates a Shared instance backed by loader.
func NewShared(loader *Loader) *Shared {
	return NewSharedFunc(loader.Load)
}

// NewSharedFunc creates a Shared instance that builds its Trie with load.
func NewSharedFunc(load func() (*trie.Trie, error)) *Shared {
	return &Shared{load: load}
}

// Get returns the shared Trie, loading it if needed.
func (s *Shared) Get() (*trie.Trie, error) {
	if t := s.current.Load(); t != nil {
		return t, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t := s.current.Load(); t != nil {
		return t, nil
	}
	t, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current.Store(t)
	log.Debug("Shared index initialized")
	return t, nil
}

// Loaded reports whether the Trie has been built.
func (s *Shared) Loaded() bool {
	return s.current.Load() != nil
}

// Reset drops the cached Trie so the next Get reloads it.
func (s *Shared) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Store(nil)
}
