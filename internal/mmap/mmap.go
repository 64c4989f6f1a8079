package mmap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/hupe1980/linsearch/internal/conv"
)

// AccessPattern is a paging hint for the kernel.
type AccessPattern uint8

const (
	AccessDefault AccessPattern = iota
	// AccessSequential suits a single front-to-back decode of a dataset.
	AccessSequential
	AccessRandom
)

var (
	ErrClosed        = errors.New("mmap: mapping is closed")
	ErrInvalidSize   = errors.New("mmap: file too large to map")
	ErrInvalidOffset = errors.New("mmap: negative offset")
)

// Mapping is a read-only view of a file. It implements io.ReaderAt.
type Mapping struct {
	data   []byte
	unmap  func([]byte) error
	closed atomic.Bool
}

// Open maps path read-only. An empty file maps to a Mapping without data.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() < 0 {
		return nil, ErrInvalidSize
	}
	size, err := conv.Uint64ToInt(uint64(fi.Size()))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSize, path)
	}
	if size == 0 {
		return &Mapping{}, nil
	}

	data, unmap, err := mapFile(f, size)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return &Mapping{data: data, unmap: unmap}, nil
}

// Close releases the mapping. Calling it again is a no-op.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) || m.data == nil {
		return nil
	}
	return m.unmap(m.data)
}

// Bytes exposes the mapped memory. It returns nil after Close.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

func (m *Mapping) Size() int64 { return int64(len(m.data)) }

// Advise passes pattern to the kernel where the platform supports it.
func (m *Mapping) Advise(pattern AccessPattern) error {
	switch {
	case m.closed.Load():
		return ErrClosed
	case len(m.data) == 0:
		return nil
	}
	return advise(m.data, pattern)
}

func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	switch {
	case m.closed.Load():
		return 0, ErrClosed
	case off < 0:
		return 0, ErrInvalidOffset
	case off >= int64(len(m.data)):
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
