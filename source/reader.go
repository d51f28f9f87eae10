package source

import "io"

// Reader gives positioned access to a sealed table segment.
type Reader interface {
	io.ReaderAt
	io.Closer

	Size() int64
}
