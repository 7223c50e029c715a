package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func newHandler(t *testing.T, limit int) (*InputHandler, *bytes.Buffer) {
	t.Helper()
	b := trie.NewBuilder()
	for i, w := range []string{"casa", "caseta", "cotxe"} {
		require.NoError(t, b.AddWord(w, uint16(i+1)))
	}
	data, err := b.Bytes()
	require.NoError(t, err)
	tr, err := trie.FromBytes(data)
	require.NoError(t, err)

	h := NewInputHandler(suggest.NewCompleter(tr), 0, 10, limit, false)
	var out bytes.Buffer
	return h, &out
}

func TestInputHandler(t *testing.T) {
	h, out := newHandler(t, 1)
	h.SetIO(strings.NewReader("ca\n\n$$\nzz\n.\n"), out)

	require.NoError(t, h.Start())

	text := out.String()
	assert.Contains(t, text, "Showing 1 of 2 results for 'ca'")
	assert.Contains(t, text, "casa")
	assert.NotContains(t, text, "caseta")
	assert.Contains(t, text, "Showing 1 of 3 results for ''")
	assert.NotContains(t, text, "zz")
}

func TestInputHandlerTooLong(t *testing.T) {
	h, out := newHandler(t, 5)
	h.SetIO(strings.NewReader("casetescasetes\n"), out)

	require.NoError(t, h.Start())
	assert.Empty(t, out.String())
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "7", formatWithCommas(7))
	assert.Equal(t, "999", formatWithCommas(999))
	assert.Equal(t, "1,000", formatWithCommas(1000))
	assert.Equal(t, "16,383", formatWithCommas(16383))
	assert.Equal(t, "1,234,567", formatWithCommas(1234567))
}
