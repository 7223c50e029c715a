// Package suggest is the completion facade used by the CLI and the IPC server on top of the binary trie index.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns up to limit suggestions for prefix, in index order
	Complete(prefix string, limit int) ([]Suggestion, error)

	// Count returns how many entries start with prefix
	Count(prefix string) (int, error)

	// Stats returns statistics about the loaded index
	Stats() map[string]int
}
