package source

import "io"

// Writer is a streaming sink, used to publish sealed segments.
type Writer interface {
	io.Writer
	io.Closer
}

// File is a segment open for both positioned reads and writes. The page store
// writes table pages through it.
type File interface {
	Reader
	io.WriterAt
}
