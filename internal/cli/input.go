// Package cli handles cmd line input and prints search results for debugging and testing the index
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler reads prefixes line by line and prints the matching words.
// Prefix length limits and input filtering are controlled by flags.
type InputHandler struct {
	completer       suggest.ICompleter
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
	in              io.Reader
	out             io.Writer
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
		in:              os.Stdin,
		out:             os.Stdout,
	}
}

// SetIO replaces stdin/stdout, mostly for tests
func (h *InputHandler) SetIO(in io.Reader, out io.Writer) {
	h.in = in
	h.out = out
}

// Start begins the interface loop.
// A single "." lists the start of the whole index; EOF ends the loop cleanly.
func (h *InputHandler) Start() error {
	log.Print("wordtrie CLI")
	log.Print("type a prefix and press Enter to search (Ctrl+C to exit):")

	scanner := bufio.NewScanner(h.in)
	for {
		log.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		prefix := strings.TrimSpace(scanner.Text())
		if prefix == "" {
			continue
		}
		if prefix == "." {
			prefix = ""
		}
		h.handleInput(prefix)
	}
}

// handleInput validates one prefix, runs the search and prints the results
func (h *InputHandler) handleInput(prefix string) {
	length := utf8.RuneCountInString(prefix)
	if length < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}
	if h.maxPrefixLength > 0 && length > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	if !h.noFilter && prefix != "" && !utils.IsValidInput(prefix) {
		log.Warnf("No results for prefix: '%s' (filtered out)", prefix)
		return
	}

	start := time.Now()
	suggestions, err := h.completer.Complete(prefix, h.suggestLimit)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("Search failed for '%s': %v", prefix, err)
		return
	}
	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(suggestions) == 0 {
		log.Warnf("No results for prefix: '%s'", prefix)
		return
	}

	total, err := h.completer.Count(prefix)
	if err != nil {
		total = len(suggestions)
	}

	fmt.Fprintf(h.out, "Showing %d of %s results for '%s':\n", len(suggestions), formatWithCommas(total), prefix)
	for i, s := range suggestions {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Word)
		fmt.Fprintf(h.out, "%2d. %-40s (article: %5d)\n", i+1, clWord, s.Article)
	}
}

// formatWithCommas formats an integer with comma separators
func formatWithCommas(n int) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}
	var sb strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(char)
	}
	return sb.String()
}
