/*
Package trie implements the read-only binary prefix index.

An index is a single byte stream: a varint header followed by the root node.
Every node is laid out as

	varint(span<<1 | terminal)  utf-8 character  [article list]  children...

where span counts the bytes from the start of the character to the end of the
node's subtree. Terminal nodes carry one or more 16-bit little-endian article
entries:

	bit 15     another entry follows
	bit 14     a display name follows (1 length byte + bytes)
	bits 0-13  article id

Children are stored in ascending order of their character, so a depth-first
walk yields words in sorted order. Nodes are never materialized: the loaded
buffer is the arena and a node is addressed by the offset of its length field.

A Trie is immutable after construction and may be searched from any number of
goroutines.
*/
package trie

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// Trie owns a fully loaded index buffer.
type Trie struct {
	data []byte
}

// payloadChunk bounds the up-front allocation for a payload read from a
// stream. Anything larger grows as the bytes actually arrive.
const payloadChunk = 1 << 20

// readHeader reads the length varint one byte at a time and returns its raw
// bytes and the declared payload length.
func readHeader(r io.Reader) ([]byte, uint64, error) {
	var header [MaxVarIntLen]byte
	n := 0

	for {
		if n == MaxVarIntLen {
			return nil, 0, fmt.Errorf("reading index header: %w", corruptAt(0, "length varint longer than 10 bytes"))
		}
		if _, err := io.ReadFull(r, header[n:n+1]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, 0, fmt.Errorf("reading index header: %w", err)
		}
		n++
		if header[n-1]&0x80 == 0 {
			break
		}
	}

	total, err := ExtractVarInt(header[:n], 0)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding index header: %w", err)
	}
	payload := total >> 1
	if payload > uint64(math.MaxInt-n) {
		return nil, 0, fmt.Errorf("decoding index header: %w", corruptAt(0, "declared length overflows"))
	}
	return header[:n], payload, nil
}

// New reads a complete index from r. The header is read byte by byte until
// the length varint ends, then exactly the declared payload is read. Memory
// grows with the bytes received, not with the declared length. A stream
// that ends early yields an error wrapping io.ErrUnexpectedEOF.
func New(r io.Reader) (*Trie, error) {
	header, payload, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(header) + int(min(payload, payloadChunk)))
	buf.Write(header)

	read, err := io.CopyN(&buf, r, int64(payload))
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading index payload (%d of %d bytes): %w", read, payload, err)
	}

	return &Trie{data: buf.Bytes()}, nil
}

// FromBytes builds a Trie from a complete in-memory index image, such as a
// memory mapped file. The declared length is checked against len(b) before
// anything is allocated, and the image is copied once, so b may be reused
// or unmapped afterwards. Trailing bytes after the payload are ignored.
func FromBytes(b []byte) (*Trie, error) {
	header, payload, err := readHeader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	available := len(b) - len(header)
	if payload > uint64(available) {
		return nil, fmt.Errorf("reading index payload (%d of %d bytes): %w", available, payload, io.ErrUnexpectedEOF)
	}

	data := make([]byte, len(header)+int(payload))
	copy(data, b)
	return &Trie{data: data}, nil
}

// Size returns the number of bytes held by the index, header included.
func (t *Trie) Size() int {
	return len(t.data)
}

// SearchResult is a single completion: the word as displayed and the
// article it refers to.
type SearchResult struct {
	Word    string
	Article uint16
}

// utf8Length gives the length of the sequence introduced by a leading byte.
func utf8Length(first byte) int {
	switch {
	case first < 0x80:
		return 1
	case first&0xe0 == 0xc0:
		return 2
	case first&0xf0 == 0xe0:
		return 3
	case first&0xf8 == 0xf0:
		return 4
	case first&0xfc == 0xf8:
		return 5
	}
	return 6
}

// node is the decoded header of the node starting at some offset.
type node struct {
	charPos  int
	charEnd  int
	end      int
	terminal bool
}

func (t *Trie) readNode(start int) (node, error) {
	field, err := ExtractVarInt(t.data, start)
	if err != nil {
		return node{}, err
	}
	width, err := VarIntLength(t.data, start)
	if err != nil {
		return node{}, err
	}

	charPos := start + width
	if charPos >= len(t.data) {
		return node{}, corruptAt(charPos, "node character past end of buffer")
	}
	charEnd := charPos + utf8Length(t.data[charPos])

	span := field >> 1
	if span > uint64(len(t.data)) {
		return node{}, corruptAt(start, "node span past end of buffer")
	}
	end := charPos + int(span)
	if end > len(t.data) {
		return node{}, corruptAt(start, "node span past end of buffer")
	}
	if charEnd > end {
		return node{}, corruptAt(charPos, "node character longer than node")
	}

	return node{
		charPos:  charPos,
		charEnd:  charEnd,
		end:      end,
		terminal: field&1 != 0,
	}, nil
}

func (t *Trie) char(n node) []byte {
	return t.data[n.charPos:n.charEnd]
}

// articleEntry is one decoded entry of a terminal node's article list.
type articleEntry struct {
	article uint16
	display []byte
	named   bool
	more    bool
	next    int
}

// readArticle decodes the article entry at pos. The same decoder is used to
// skip lists while descending and to drain them while enumerating.
func (t *Trie) readArticle(pos, end int) (articleEntry, error) {
	if pos+2 > end {
		return articleEntry{}, corruptAt(pos, "article entry past end of node")
	}
	raw := uint16(t.data[pos]) | uint16(t.data[pos+1])<<8
	e := articleEntry{
		article: raw & MaxArticle,
		more:    raw&articleMore != 0,
		named:   raw&articleNamed != 0,
		next:    pos + 2,
	}

	if e.named {
		if e.next >= end {
			return articleEntry{}, corruptAt(e.next, "display name length past end of node")
		}
		size := int(t.data[e.next])
		nameStart := e.next + 1
		if nameStart+size > end {
			return articleEntry{}, corruptAt(nameStart, "display name past end of node")
		}
		e.display = t.data[nameStart : nameStart+size]
		e.next = nameStart + size
	}
	return e, nil
}

func (t *Trie) skipArticles(pos, end int) (int, error) {
	for {
		e, err := t.readArticle(pos, end)
		if err != nil {
			return 0, err
		}
		pos = e.next
		if !e.more {
			return pos, nil
		}
	}
}

// childrenStart returns the offset of the first child of n.
func (t *Trie) childrenStart(n node) (int, error) {
	if !n.terminal {
		return n.charEnd, nil
	}
	return t.skipArticles(n.charEnd, n.end)
}
