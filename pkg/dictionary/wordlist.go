package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// WordEntry is one line of a word list: the article number and the word as
// it should be displayed.
type WordEntry struct {
	Article uint16
	Word    string
}

// parseWordListLine parses "article<TAB>word"
func parseWordListLine(line string) (WordEntry, error) {
	idStr, word, ok := strings.Cut(line, "\t")
	if !ok {
		return WordEntry{}, fmt.Errorf("expected article<TAB>word, got %q", line)
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return WordEntry{}, fmt.Errorf("missing word in %q", line)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(idStr), 10, 16)
	if err != nil {
		return WordEntry{}, fmt.Errorf("invalid article number %q: %w", idStr, err)
	}
	if id > trie.MaxArticle {
		return WordEntry{}, fmt.Errorf("article number %d exceeds %d", id, trie.MaxArticle)
	}
	return WordEntry{Article: uint16(id), Word: word}, nil
}

// ReadWordList parses a word list. Blank lines and lines starting with '#'
// are skipped.
func ReadWordList(r io.Reader) ([]WordEntry, error) {
	var entries []WordEntry

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		entry, err := parseWordListLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return entries, nil
}

// Compile builds an index from a word list and writes it to w. Words whose
// index key comes out empty are skipped with a warning. It returns the
// number of entries written.
func Compile(r io.Reader, w io.Writer) (int, error) {
	entries, err := ReadWordList(r)
	if err != nil {
		return 0, err
	}

	b := trie.NewBuilder()
	for _, e := range entries {
		if trie.IndexKey(e.Word) == "" {
			log.Warnf("Skipping %q (article %d): no indexable letters", e.Word, e.Article)
			continue
		}
		if err := b.AddWord(e.Word, e.Article); err != nil {
			return 0, fmt.Errorf("adding %q: %w", e.Word, err)
		}
	}

	if _, err := b.WriteTo(w); err != nil {
		return 0, fmt.Errorf("failed to write index: %w", err)
	}
	log.Debugf("Compiled %d entries (%d skipped)", b.Len(), len(entries)-b.Len())
	return b.Len(), nil
}
