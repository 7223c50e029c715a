package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// FileFormat represents the dictionary file formats the tools deal with
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatIndex               // Compiled binary trie
	FormatWordList            // Tab separated source list for the compiler
)

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatIndex: {
		Format:      FormatIndex,
		Description: "Binary Trie Index",
		Extensions:  []string{".dat", ".idx", ".bin"},
		MinSize:     2, // Header + root character
	},
	FormatWordList: {
		Format:      FormatWordList,
		Description: "Word List",
		Extensions:  []string{".tsv", ".txt"},
		MinSize:     1,
	},
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	switch expectedFormat {
	case FormatIndex:
		return validateIndexFormat(filename, fileInfo.Size())
	case FormatWordList:
		return validateWordListFormat(filename)
	}

	return nil
}

// validateIndexFormat checks that the header length agrees with the file size
func validateIndexFormat(filename string, size int64) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	header := make([]byte, trie.MaxVarIntLen)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	header = header[:n]

	total, err := trie.ExtractVarInt(header, 0)
	if err != nil {
		return fmt.Errorf("invalid header in %s: %w", filename, err)
	}
	width, err := trie.VarIntLength(header, 0)
	if err != nil {
		return fmt.Errorf("invalid header in %s: %w", filename, err)
	}

	declared := int64(total>>1) + int64(width)
	if declared > size {
		return fmt.Errorf("index %s is truncated: header declares %d bytes, file has %d", filename, declared, size)
	}
	if declared < size {
		log.Warnf("Index %s has %d trailing bytes after the declared payload", filename, size-declared)
	}

	log.Debugf("Index file %s validated: %d bytes", filename, declared)
	return nil
}

// validateWordListFormat validates the first non-comment line of a word list
func validateWordListFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := parseWordListLine(line); err != nil {
			return fmt.Errorf("%s:%d: %w", filename, lineNo, err)
		}
		break
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read word list %s: %w", filename, err)
	}

	log.Debugf("Word list %s validated", filename)
	return nil
}

// DetectFileFormat attempts to detect the format of a file
func DetectFileFormat(filename string) (FileFormat, error) {
	for _, format := range []FileFormat{FormatIndex, FormatWordList} {
		if err := ValidateFileFormat(filename, format); err == nil {
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
