package memory

import (
	"bytes"

	"github.com/hexbee-net/errors"
)

const errClosed = errors.Error("writer closed")

// Writer is a streaming in-memory sink. Writes fail once it is closed.
type Writer struct {
	buf    bytes.Buffer
	closed bool
}

func NewWriter(buf []byte) *Writer {
	w := &Writer{}
	w.buf.Write(buf)

	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.WithStack(errClosed)
	}

	return w.buf.Write(p)
}

// Bytes returns the data written so far.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) Len() int {
	return w.buf.Len()
}

func (w *Writer) Close() error {
	w.closed = true
	return nil
}

func (w *Writer) Location() string {
	return "memory:"
}
