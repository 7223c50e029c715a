package trie

import "bytes"

const (
	// MaxArticle is the largest article id an entry can carry.
	MaxArticle = 0x3fff

	articleNamed = 0x4000
	articleMore  = 0x8000
)

// descend follows the normalized prefix from the root and returns the
// offset of the node holding its last character. found is false when some
// character of the prefix has no matching child.
func (t *Trie) descend(key []byte) (start int, found bool, err error) {
	for off := 0; off < len(key); {
		charLen := utf8Length(key[off])
		if off+charLen > len(key) {
			return 0, false, nil
		}
		want := key[off : off+charLen]

		cur, err := t.readNode(start)
		if err != nil {
			return 0, false, err
		}
		pos, err := t.childrenStart(cur)
		if err != nil {
			return 0, false, err
		}

		for {
			if pos >= cur.end {
				return 0, false, nil
			}
			sib, err := t.readNode(pos)
			if err != nil {
				return 0, false, err
			}
			if bytes.Equal(t.char(sib), want) {
				break
			}
			pos = sib.end
		}

		start = pos
		off += charLen
	}
	return start, true, nil
}

// walk enumerates every word in the subtree rooted at start in sorted
// order. out is the word spelled by the path down to start; the character
// of the start node itself is already part of it. emit returns false to
// stop the walk.
func (t *Trie) walk(start int, out string, emit func(word []byte, e articleEntry) bool) error {
	root, err := t.readNode(start)
	if err != nil {
		return err
	}

	word := make([]byte, 0, len(out)+32)
	word = append(word, out...)

	st := newStack()
	st.push(start, root.end, len(word))
	first := true

	for !st.empty() {
		f := st.pop()
		word = word[:f.outLen]

		n, err := t.readNode(f.start)
		if err != nil {
			return err
		}
		before := len(word)

		if first {
			first = false
		} else {
			word = append(word, t.char(n)...)
		}

		children := n.charEnd
		if n.terminal {
			for {
				e, err := t.readArticle(children, n.end)
				if err != nil {
					return err
				}
				children = e.next
				if !emit(word, e) {
					return nil
				}
				if !e.more {
					break
				}
			}
		}

		// Siblings go under the children so the whole subtree of this node
		// is visited first.
		if n.end < f.end {
			st.push(n.end, f.end, before)
		}
		if children < n.end {
			st.push(children, n.end, len(word))
		}
	}
	return nil
}

func resultFor(word []byte, e articleEntry) SearchResult {
	if e.named {
		return SearchResult{Word: string(e.display), Article: e.article}
	}
	return SearchResult{Word: string(word), Article: e.article}
}

// Search fills results with the words beginning with prefix, in sorted
// order, and returns how many were written. Words beyond len(results) are
// ignored and entries past the returned count are left untouched, so a
// prefix with no match leaves results unchanged.
//
// The prefix is normalized first; an empty prefix lists the whole index.
// If the index turns out to be corrupt, the results written so far are
// counted and an error wrapping ErrCorrupt is returned.
func (t *Trie) Search(prefix string, results []SearchResult) (int, error) {
	if len(results) == 0 {
		return 0, nil
	}

	normalized := Normalize(prefix)
	start, found, err := t.descend([]byte(normalized))
	if err != nil || !found {
		return 0, err
	}

	count := 0
	err = t.walk(start, normalized, func(word []byte, e articleEntry) bool {
		results[count] = resultFor(word, e)
		count++
		return count < len(results)
	})
	return count, err
}

// Lookup is Search with a freshly allocated result slice of the given
// capacity. The returned slice holds only the filled entries.
func (t *Trie) Lookup(prefix string, capacity int) ([]SearchResult, error) {
	if capacity <= 0 {
		return nil, nil
	}
	results := make([]SearchResult, capacity)
	n, err := t.Search(prefix, results)
	return results[:n], err
}

// Visit calls fn for every word beginning with prefix, in the same order
// Search returns them, until fn returns false.
func (t *Trie) Visit(prefix string, fn func(SearchResult) bool) error {
	normalized := Normalize(prefix)
	start, found, err := t.descend([]byte(normalized))
	if err != nil || !found {
		return err
	}
	return t.walk(start, normalized, func(word []byte, e articleEntry) bool {
		return fn(resultFor(word, e))
	})
}

// Count returns the number of entries beginning with prefix, without any
// capacity limit.
func (t *Trie) Count(prefix string) (int, error) {
	count := 0
	err := t.Visit(prefix, func(SearchResult) bool {
		count++
		return true
	})
	return count, err
}
