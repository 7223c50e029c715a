package trie

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTrie compiles words (each indexed under its own text) into a Trie.
func buildTrie(t *testing.T, words map[string]uint16) *Trie {
	t.Helper()
	b := NewBuilder()
	for w, article := range words {
		require.NoError(t, b.Add(w, article, ""))
	}
	data, err := b.Bytes()
	require.NoError(t, err)

	tr, err := FromBytes(data)
	require.NoError(t, err)
	return tr
}

func sampleTrie(t *testing.T) *Trie {
	return buildTrie(t, map[string]uint16{
		"casa":   1,
		"caseta": 2,
		"cotxe":  3,
	})
}

func TestBuilderEncoding(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("ab", 1, ""))

	data, err := b.Bytes()
	require.NoError(t, err)

	want := []byte{
		0x0e, '[', // root: span 7
		0x0a, 'a', // a: span 5
		0x07, 'b', 0x01, 0x00, // b: span 3, terminal, article 1
	}
	assert.Equal(t, want, data)
}

func TestBuilderEncodingDisplayName(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("a", 2, "À"))
	require.NoError(t, b.Add("a", 3, ""))

	data, err := b.Bytes()
	require.NoError(t, err)

	want := []byte{
		0x14, '[',
		0x11, 'a',
		0x02, 0xc0, 0x02, 0xc3, 0x80, // more|named, id 2, "À"
		0x03, 0x00, // id 3
	}
	assert.Equal(t, want, data)
}

func TestSearchExample(t *testing.T) {
	tr := sampleTrie(t)

	results := make([]SearchResult, 10)
	n, err := tr.Search("ca", results)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"casa", 1}, {"caseta", 2}}, results[:n])

	n, err = tr.Search("z", results)
	require.NoError(t, err)
	assert.Zero(t, n)

	two := make([]SearchResult, 2)
	n, err = tr.Search("", two)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"casa", 1}, {"caseta", 2}}, two[:n])

	all, err := tr.Lookup("", 10)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"casa", 1}, {"caseta", 2}, {"cotxe", 3}}, all)
}

func TestSearchExactWord(t *testing.T) {
	tr := sampleTrie(t)

	got, err := tr.Lookup("casa", 10)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"casa", 1}}, got)

	got, err = tr.Lookup("CASE", 10)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"caseta", 2}}, got)
}

func TestSearchNoMatchLeavesResultsUntouched(t *testing.T) {
	tr := sampleTrie(t)

	sentinel := SearchResult{Word: "untouched", Article: 77}
	results := []SearchResult{sentinel, sentinel, sentinel}

	for _, prefix := range []string{"z", "cb", "casas", "cotxes", "casax"} {
		n, err := tr.Search(prefix, results)
		require.NoError(t, err)
		assert.Zero(t, n, prefix)
		assert.Equal(t, []SearchResult{sentinel, sentinel, sentinel}, results, prefix)
	}
}

func TestSearchLeavesTailUntouched(t *testing.T) {
	tr := sampleTrie(t)

	sentinel := SearchResult{Word: "tail", Article: 9}
	results := []SearchResult{sentinel, sentinel, sentinel, sentinel}
	n, err := tr.Search("cot", results)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	assert.Equal(t, SearchResult{"cotxe", 3}, results[0])
	assert.Equal(t, []SearchResult{sentinel, sentinel, sentinel}, results[1:])
}

func TestSearchZeroCapacity(t *testing.T) {
	tr := sampleTrie(t)

	n, err := tr.Search("c", nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := tr.Lookup("c", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchCapping(t *testing.T) {
	words := map[string]uint16{}
	for i, w := range strings.Fields("a ab abc abd b ba bab bb c ca cab cb cc d") {
		words[w] = uint16(i)
	}
	tr := buildTrie(t, words)

	full, err := tr.Lookup("", 100)
	require.NoError(t, err)
	require.Len(t, full, len(words))

	for capacity := 1; capacity <= len(words)+2; capacity++ {
		got, err := tr.Lookup("", capacity)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), capacity)
		assert.Equal(t, full[:len(got)], got, "capacity %d", capacity)
	}
}

func TestSearchSortedOrder(t *testing.T) {
	list := strings.Fields("zeta alfa beta gamma alfabet alt al be bet betes zz z delta dels del")
	words := map[string]uint16{}
	for i, w := range list {
		words[w] = uint16(i)
	}
	tr := buildTrie(t, words)

	got, err := tr.Lookup("", 100)
	require.NoError(t, err)

	var gotWords []string
	for _, r := range got {
		gotWords = append(gotWords, r.Word)
		assert.Equal(t, words[r.Word], r.Article)
	}
	sort.Strings(list)
	assert.Equal(t, list, gotWords)

	got, err = tr.Lookup("be", 100)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "be", got[0].Word)
	assert.Equal(t, "bet", got[1].Word)
	assert.Equal(t, "beta", got[2].Word)
	assert.Equal(t, "betes", got[3].Word)
}

func TestSearchDiacriticFolding(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddWord("cafè", 4))
	require.NoError(t, b.AddWord("cafeteria", 5))
	require.NoError(t, b.AddWord("col·laborar", 6))
	data, err := b.Bytes()
	require.NoError(t, err)
	tr, err := FromBytes(data)
	require.NoError(t, err)

	got, err := tr.Lookup("CAFÉ", 10)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"cafè", 4}, {"cafeteria", 5}}, got)

	got, err = tr.Lookup("col·l", 10)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"col·laborar", 6}}, got)

	got, err = tr.Lookup("coŀla", 10)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"col·laborar", 6}}, got)
}

func TestSearchMultipleArticles(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("ser", 10, ""))
	require.NoError(t, b.Add("ser", 11, "Ser"))
	require.NoError(t, b.Add("serra", 12, ""))
	data, err := b.Bytes()
	require.NoError(t, err)
	tr, err := FromBytes(data)
	require.NoError(t, err)

	got, err := tr.Lookup("se", 10)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"ser", 10}, {"Ser", 11}, {"serra", 12}}, got)

	// Capacity reached in the middle of an article list.
	got, err = tr.Lookup("se", 1)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"ser", 10}}, got)

	// Descending through a terminal node skips its whole article list.
	got, err = tr.Lookup("serr", 10)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"serra", 12}}, got)
}

func TestSearchMultiByteCharacters(t *testing.T) {
	tr := buildTrie(t, map[string]uint16{
		"año":  1,
		"añil": 2,
		"ara":  3,
		"€uro": 4,
	})

	got, err := tr.Lookup("añ", 10)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"añil", 2}, {"año", 1}}, got)

	got, err = tr.Lookup("€", 10)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"€uro", 4}}, got)
}

func TestVisitAndCount(t *testing.T) {
	tr := sampleTrie(t)

	n, err := tr.Count("c")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = tr.Count("cas")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = tr.Count("x")
	require.NoError(t, err)
	assert.Zero(t, n)

	var seen []string
	err = tr.Visit("", func(r SearchResult) bool {
		seen = append(seen, r.Word)
		return len(seen) < 2
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"casa", "caseta"}, seen)
}

func TestNewReadsExactlyDeclaredLength(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("ab", 1, ""))
	data, err := b.Bytes()
	require.NoError(t, err)

	r := bytes.NewReader(append(append([]byte{}, data...), 0xaa, 0xbb))
	tr, err := New(iotest.OneByteReader(r))
	require.NoError(t, err)
	assert.Equal(t, len(data), tr.Size())
	assert.Equal(t, 2, r.Len())
}

func TestNewShortStream(t *testing.T) {
	data, err := func() ([]byte, error) {
		b := NewBuilder()
		if err := b.Add("casa", 1, ""); err != nil {
			return nil, err
		}
		return b.Bytes()
	}()
	require.NoError(t, err)

	for _, cut := range []int{0, 1, len(data) / 2, len(data) - 1} {
		_, err := New(bytes.NewReader(data[:cut]))
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF), "cut at %d: %v", cut, err)
	}

	_, err = New(bytes.NewReader([]byte{0x80, 0x80}))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestNewHugeDeclaredLength(t *testing.T) {
	// Header declares far more payload than could ever be allocated.
	header := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x3f}

	_, err := New(bytes.NewReader(header))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = New(bytes.NewReader(append(header, 0x01, '[', 0x00)))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = FromBytes(header)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// Around 2^40 bytes: still only what arrives is buffered.
	mid := AppendVarInt(nil, uint64(1)<<41)
	_, err = New(bytes.NewReader(append(mid, 'x')))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestFromBytesMatchesNew(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddWord("caseta", 2))
	data, err := b.Bytes()
	require.NoError(t, err)

	fromReader, err := New(bytes.NewReader(data))
	require.NoError(t, err)
	image := append(append([]byte{}, data...), 0xee)
	fromImage, err := FromBytes(image)
	require.NoError(t, err)
	assert.Equal(t, fromReader.Size(), fromImage.Size())

	// The image is copied.
	for i := range image {
		image[i] = 0
	}
	got, err := fromImage.Lookup("cas", 5)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"caseta", 2}}, got)

	for _, cut := range []int{0, 1, len(data) - 1} {
		_, err := FromBytes(data[:cut])
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "cut at %d", cut)
	}
}

func TestNewPropagatesReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(iotest.ErrReader(boom))
	assert.True(t, errors.Is(err, boom))
}

func TestNewOverlongHeader(t *testing.T) {
	header := bytes.Repeat([]byte{0xff}, MaxVarIntLen+1)
	_, err := New(bytes.NewReader(header))
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestSearchCorruptData(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		prefix string
	}{
		{
			name:   "child span past end",
			data:   []byte{0x0e, '[', 0x7e, 'a', 0x07, 'b', 0x01, 0x00},
			prefix: "a",
		},
		{
			name:   "article list past end",
			data:   []byte{0x0a, '[', 0x05, 'a', 0x01, 0x80},
			prefix: "",
		},
		{
			name:   "display name past end",
			data:   []byte{0x0e, '[', 0x09, 'a', 0x01, 0x40, 0x09, 'x'},
			prefix: "",
		},
		{
			name:   "truncated character",
			data:   []byte{0x06, '[', 0x02, 0xc3},
			prefix: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := FromBytes(tt.data)
			require.NoError(t, err)

			_, err = tr.Lookup(tt.prefix, 10)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorrupt), "got %v", err)

			var ce *CorruptError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestConcurrentSearch(t *testing.T) {
	tr := sampleTrie(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got, err := tr.Lookup("ca", 10)
				if !assert.NoError(t, err) {
					return
				}
				assert.Len(t, got, 2)
			}
		}()
	}
	wg.Wait()
}

func TestBuilderRejectsInvalidInput(t *testing.T) {
	b := NewBuilder()

	assert.True(t, errors.Is(b.Add("", 1, ""), ErrInvalidKey))
	assert.True(t, errors.Is(b.Add("...", 1, ""), ErrInvalidKey))
	assert.True(t, errors.Is(b.Add("\xff", 1, ""), ErrInvalidKey))
	assert.True(t, errors.Is(b.Add("ok", MaxArticle+1, ""), ErrArticleRange))
	assert.True(t, errors.Is(b.Add("ok", 1, strings.Repeat("x", 256)), ErrDisplayName))
	assert.Zero(t, b.Len())

	require.NoError(t, b.Add("ok", MaxArticle, strings.Repeat("x", 255)))
	assert.Equal(t, 1, b.Len())
}

func TestIndexKey(t *testing.T) {
	tests := map[string]string{
		"casa":        "casa",
		"Cafè":        "cafe",
		"tenir-se":    "tenirse",
		"col·laborar": "collaborar",
		"coŀlaborar":  "collaborar",
		"anar-se'n":   "anarsen",
		"Ç":           "c",
		"42":          "",
	}
	for in, want := range tests {
		assert.Equal(t, want, IndexKey(in), in)
	}
}

func TestBuilderWriteTo(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddWord("tenir-se", 7))
	require.NoError(t, b.AddWord("tenir", 8))

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), n)

	tr, err := New(&buf)
	require.NoError(t, err)

	got, err := tr.Lookup("tenir", 10)
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{"tenir", 8}, {"tenir-se", 7}}, got)
}
