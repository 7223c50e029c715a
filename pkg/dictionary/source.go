package dictionary

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// mappedFile is a read-only mapping of an index file exposed as a reader.
type mappedFile struct {
	*bytes.Reader
	f    *os.File
	data mmap.MMap
}

// Bytes returns the mapped file contents. They are only valid until Close.
func (m *mappedFile) Bytes() []byte {
	return m.data
}

// Close unmaps the file and closes it.
func (m *mappedFile) Close() error {
	if m.data != nil {
		if err := m.data.Unmap(); err != nil {
			m.f.Close()
			return err
		}
		m.data = nil
	}
	if m.f != nil {
		err := m.f.Close()
		m.f = nil
		return err
	}
	return nil
}

// Open returns a reader over the index file at path. With useMmap the file
// is mapped read-only instead of read through the OS file API, and the
// returned reader also has a Bytes() []byte method exposing the mapping.
func Open(path string, useMmap bool) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !useMmap {
		return f, nil
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	// Empty files cannot be mapped; the reader just reports EOF.
	if info.Size() == 0 {
		return &mappedFile{Reader: bytes.NewReader(nil), f: f}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to map %s: %w", path, err)
	}
	return &mappedFile{Reader: bytes.NewReader(m), f: f, data: m}, nil
}
