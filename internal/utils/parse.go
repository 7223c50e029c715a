package utils

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes the TOML file at path into v. Keys that do not match
// any field of v are logged, since they usually are typos in a config file.
func LoadTOMLFile(path string, v any) error {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", path, err)
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Warnf("%s: unknown key %q ignored", path, key.String())
	}
	return nil
}

// ParseTOMLWithRecovery decodes path into a generic map, so sections that
// are well formed can still be used when the file does not fit the schema.
func ParseTOMLWithRecovery(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tree := make(map[string]any)
	if _, err := toml.Decode(string(data), &tree); err != nil {
		log.Warnf("No usable TOML in %s: %v", path, err)
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return tree, nil
}

// extract returns data[key] when it holds a T.
func extract[T any](data map[string]any, key string) (T, bool) {
	val, ok := data[key].(T)
	return val, ok
}

// ExtractSection returns a [section] table of a decoded TOML tree.
func ExtractSection(data map[string]any, name string) (map[string]any, bool) {
	return extract[map[string]any](data, name)
}

// ExtractInt64 returns an integer value. TOML integers decode as int64.
func ExtractInt64(data map[string]any, key string) (int, bool) {
	val, ok := extract[int64](data, key)
	return int(val), ok
}

// ExtractBool returns a boolean value.
func ExtractBool(data map[string]any, key string) (bool, bool) {
	return extract[bool](data, key)
}

// ExtractString returns a string value.
func ExtractString(data map[string]any, key string) (string, bool) {
	return extract[string](data, key)
}
