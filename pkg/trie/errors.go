package trie

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt is returned when an offset computed from the index data falls
	// outside the buffer or a length field cannot be decoded.
	ErrCorrupt = errors.New("trie: corrupt index data")

	// ErrInvalidKey is returned by the Builder for empty or non UTF-8 keys.
	ErrInvalidKey = errors.New("trie: invalid key")
	// ErrArticleRange is returned by the Builder for article ids above MaxArticle.
	ErrArticleRange = errors.New("trie: article id out of range")
	// ErrDisplayName is returned by the Builder for display names over 255 bytes.
	ErrDisplayName = errors.New("trie: display name too long")
)

// CorruptError records where in the buffer a corruption fault was detected.
type CorruptError struct {
	Offset int
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", ErrCorrupt, e.Offset, e.Reason)
}

func (e *CorruptError) Unwrap() error {
	return ErrCorrupt
}

func corruptAt(offset int, reason string) error {
	return &CorruptError{Offset: offset, Reason: reason}
}
