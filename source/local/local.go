package local

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/hexbee-net/errors"
)

type File struct {
	FilePath string
	file     *os.File
}

// NewReader opens a local file for positioned reads.
func NewReader(path string) (r *File, err error) {
	r = &File{
		FilePath: path,
	}

	if r.file, err = os.Open(path); err != nil {
		return nil, errors.Wrap(err, "failed to open source file")
	}

	return r, nil
}

// NewWriter creates (or truncates) a local file open for reads and writes.
func NewWriter(path string) (w *File, err error) {
	w = &File{
		FilePath: path,
	}

	if w.file, err = os.Create(path); err != nil {
		return nil, errors.Wrap(err, "failed to create target file")
	}

	return w, nil
}

// Location returns the file:// URL of the file.
func (f *File) Location() string {
	path, err := filepath.Abs(f.FilePath)
	if err != nil {
		path = f.FilePath
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}

	return u.String()
}

// Reader //////////////////////////////

func (f *File) ReadAt(p []byte, off int64) (int, error) {
	return f.file.ReadAt(p, off)
}

func (f *File) Size() int64 {
	info, err := f.file.Stat()
	if err != nil {
		return 0
	}

	return info.Size()
}

// Writer //////////////////////////////

func (f *File) WriteAt(p []byte, off int64) (int, error) {
	return f.file.WriteAt(p, off)
}

func (f *File) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

func (f *File) Sync() error {
	return f.file.Sync()
}

func (f *File) Close() error {
	return f.file.Close()
}
