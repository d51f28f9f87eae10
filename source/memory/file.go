package memory

import (
	"io"
	"sync"

	"github.com/hexbee-net/errors"
)

const errNegativeOffset = errors.Error("negative offset")

// File is an in-memory segment supporting positioned reads and writes.
type File struct {
	mu   sync.RWMutex
	data []byte
}

func NewFile(data []byte) *File {
	return &File{data: data}
}

func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.WithFields(
			errors.WithStack(errNegativeOffset),
			errors.Fields{
				"offset": off,
			})
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}

	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (f *File) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.WithFields(
			errors.WithStack(errNegativeOffset),
			errors.Fields{
				"offset": off,
			})
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if end := off + int64(len(p)); end > int64(len(f.data)) {
		size := len(f.data)

		if end > int64(cap(f.data)) {
			data := make([]byte, end, 2*end)
			copy(data, f.data)
			f.data = data
		} else {
			f.data = f.data[:end]
			for i := size; i < int(off); i++ {
				f.data[i] = 0
			}
		}
	}

	return copy(f.data[off:], p), nil
}

func (f *File) Size() int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return int64(len(f.data))
}

// Bytes returns a copy of the file content.
func (f *File) Bytes() []byte {
	f.mu.RLock()
	defer f.mu.RUnlock()

	res := make([]byte, len(f.data))
	copy(res, f.data)

	return res
}

// Truncate shrinks the file to size bytes.
func (f *File) Truncate(size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if size < int64(len(f.data)) {
		f.data = f.data[:size]
	}
}

func (f *File) Close() error {
	return nil
}
