package trie

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"
)

// rootChar is written as the character of the root node. It is never
// emitted by a search.
const rootChar = "["

type builderEntry struct {
	article uint16
	display string
}

// Builder accumulates entries and serializes them into the index format.
// It is not safe for concurrent use.
type Builder struct {
	entries *patricia.Trie
	count   int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{entries: patricia.NewTrie()}
}

// Len returns the number of entries added so far.
func (b *Builder) Len() int {
	return b.count
}

// Add records article under key. The key is normalized the same way search
// prefixes are, so every entry stays reachable. A non-empty displayName is
// stored with the entry and returned by searches instead of the key.
func (b *Builder) Add(key string, article uint16, displayName string) error {
	if !utf8.ValidString(key) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidKey, key)
	}
	key = Normalize(key)
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if article > MaxArticle {
		return fmt.Errorf("%w: %d > %d", ErrArticleRange, article, MaxArticle)
	}
	if len(displayName) > 0xff {
		return fmt.Errorf("%w: %d bytes for %q", ErrDisplayName, len(displayName), key)
	}

	e := builderEntry{article: article, display: displayName}
	prefix := patricia.Prefix(key)
	if item := b.entries.Get(prefix); item != nil {
		b.entries.Set(prefix, append(item.([]builderEntry), e))
	} else {
		b.entries.Insert(prefix, []builderEntry{e})
	}
	b.count++
	return nil
}

// AddWord indexes word under its IndexKey. The word itself is kept as the
// display name whenever it differs from the key.
func (b *Builder) AddWord(word string, article uint16) error {
	key := IndexKey(word)
	display := ""
	if key != word {
		display = word
	}
	return b.Add(key, article, display)
}

// IndexKey reduces a word to the plain lowercase a-z key it is indexed
// under: every character is decomposed, its base letter kept and anything
// outside the alphabet dropped.
func IndexKey(word string) string {
	var sb strings.Builder
	for _, r := range word {
		base, _ := utf8.DecodeRuneInString(norm.NFKD.String(string(r)))
		if base >= 'A' && base <= 'Z' {
			base += 'a' - 'A'
		}
		if base >= 'a' && base <= 'z' {
			sb.WriteRune(base)
		}
	}
	return sb.String()
}

type buildNode struct {
	char     string
	articles []builderEntry
	children []*buildNode
	size     int
}

func (n *buildNode) child(char string) *buildNode {
	// Keys arrive sorted, so a matching child can only be the last one.
	if last := len(n.children) - 1; last >= 0 && n.children[last].char == char {
		return n.children[last]
	}
	c := &buildNode{char: char}
	n.children = append(n.children, c)
	return c
}

func (n *buildNode) lengthField() uint64 {
	field := uint64(n.size) << 1
	if len(n.articles) > 0 {
		field |= 1
	}
	return field
}

func (n *buildNode) computeSize() int {
	size := len(n.char)
	for _, a := range n.articles {
		size += 2
		if a.display != "" {
			size += 1 + len(a.display)
		}
	}
	for _, c := range n.children {
		size += c.computeSize()
		size += VarIntSize(c.lengthField())
	}
	n.size = size
	return size
}

func (n *buildNode) encode(buf []byte) []byte {
	buf = AppendVarInt(buf, n.lengthField())
	buf = append(buf, n.char...)

	for i, a := range n.articles {
		value := a.article
		if i < len(n.articles)-1 {
			value |= articleMore
		}
		if a.display != "" {
			value |= articleNamed
		}
		buf = append(buf, byte(value), byte(value>>8))
		if a.display != "" {
			buf = append(buf, byte(len(a.display)))
			buf = append(buf, a.display...)
		}
	}

	for _, c := range n.children {
		buf = c.encode(buf)
	}
	return buf
}

type keyedEntries struct {
	key     string
	entries []builderEntry
}

func (b *Builder) tree() (*buildNode, error) {
	var keyed []keyedEntries
	err := b.entries.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		keyed = append(keyed, keyedEntries{key: string(prefix), entries: item.([]builderEntry)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting entries: %w", err)
	}

	slices.SortFunc(keyed, func(a, b keyedEntries) int {
		return strings.Compare(a.key, b.key)
	})

	root := &buildNode{char: rootChar}
	for _, k := range keyed {
		n := root
		for _, r := range k.key {
			n = n.child(string(r))
		}
		n.articles = append(n.articles, k.entries...)
	}
	root.computeSize()
	return root, nil
}

// Bytes serializes the accumulated entries into a complete index image.
func (b *Builder) Bytes() ([]byte, error) {
	root, err := b.tree()
	if err != nil {
		return nil, err
	}
	return root.encode(make([]byte, 0, root.size+MaxVarIntLen)), nil
}

// WriteTo writes the index image to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := b.Bytes()
	if err != nil {
		return 0, err
	}
	return io.Copy(w, bytes.NewReader(data))
}
