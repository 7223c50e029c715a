package suggest

import (
	"sync"
	"sync/atomic"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// pooledResults is the size of the reusable search buffers.
const pooledResults = 64

var resultPool = sync.Pool{
	New: func() any {
		buf := make([]trie.SearchResult, pooledResults)
		return &buf
	},
}

// Suggestion is a completion returned to callers
type Suggestion struct {
	Word    string
	Article uint16
}

// IndexSource yields the index to search. *dictionary.Shared satisfies it.
type IndexSource interface {
	Get() (*trie.Trie, error)
}

type staticSource struct {
	t *trie.Trie
}

func (s staticSource) Get() (*trie.Trie, error) {
	return s.t, nil
}

// Completer answers prefix queries against a trie index
type Completer struct {
	source   IndexSource
	requests atomic.Int64
	misses   atomic.Int64
	failures atomic.Int64
}

// NewCompleter creates a completer over an already loaded index
func NewCompleter(t *trie.Trie) *Completer {
	return &Completer{source: staticSource{t: t}}
}

// NewLazyCompleter creates a completer that fetches its index from source on
// every request, so the index is only loaded once it is first needed.
func NewLazyCompleter(source IndexSource) *Completer {
	return &Completer{source: source}
}

// Complete returns up to limit suggestions for prefix. Limits up to the
// pooled buffer size search into a reused buffer; larger ones collect
// results as they are found, so memory follows the number of matches.
func (c *Completer) Complete(prefix string, limit int) ([]Suggestion, error) {
	c.requests.Add(1)
	if limit < 1 {
		return nil, nil
	}

	t, err := c.source.Get()
	if err != nil {
		c.failures.Add(1)
		return nil, err
	}

	var suggestions []Suggestion
	if limit <= pooledResults {
		suggestions, err = c.searchPooled(t, prefix, limit)
	} else {
		suggestions, err = c.collect(t, prefix, limit)
	}
	if err != nil {
		c.failures.Add(1)
		log.Errorf("Error searching index for %q: %v", prefix, err)
		return nil, err
	}
	if len(suggestions) == 0 {
		c.misses.Add(1)
	}
	return suggestions, nil
}

func (c *Completer) searchPooled(t *trie.Trie, prefix string, limit int) ([]Suggestion, error) {
	bufPtr := resultPool.Get().(*[]trie.SearchResult)
	defer resultPool.Put(bufPtr)
	results := (*bufPtr)[:limit]

	n, err := t.Search(prefix, results)
	if err != nil {
		return nil, err
	}
	suggestions := make([]Suggestion, n)
	for i, r := range results[:n] {
		suggestions[i] = Suggestion{Word: r.Word, Article: r.Article}
	}
	return suggestions, nil
}

func (c *Completer) collect(t *trie.Trie, prefix string, limit int) ([]Suggestion, error) {
	suggestions := make([]Suggestion, 0, pooledResults)
	err := t.Visit(prefix, func(r trie.SearchResult) bool {
		suggestions = append(suggestions, Suggestion{Word: r.Word, Article: r.Article})
		return len(suggestions) < limit
	})
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// Count returns how many entries start with prefix
func (c *Completer) Count(prefix string) (int, error) {
	t, err := c.source.Get()
	if err != nil {
		return 0, err
	}
	return t.Count(prefix)
}

// Stats returns request counters and, once loaded, the index size
func (c *Completer) Stats() map[string]int {
	stats := map[string]int{
		"requests": int(c.requests.Load()),
		"misses":   int(c.misses.Load()),
		"failures": int(c.failures.Load()),
	}

	// Stats must not be what triggers a lazy load.
	if lazy, ok := c.source.(interface{ Loaded() bool }); ok && !lazy.Loaded() {
		return stats
	}
	if t, err := c.source.Get(); err == nil && t != nil {
		stats["indexBytes"] = t.Size()
	}
	return stats
}
