package hdfs

import (
	"github.com/colinmarc/hdfs/v2"
	"github.com/hexbee-net/errors"
)

// Writer streams a sealed segment into a new HDFS file.
type Writer struct {
	file
	w *hdfs.FileWriter
}

// NewWriter connects to the namenodes as user and creates path, which must
// not exist yet.
func NewWriter(namenodes []string, user, path string) (*Writer, error) {
	client, err := newClient(namenodes, user)
	if err != nil {
		return nil, err
	}

	w, err := createFile(file{client: client, ownClient: true, namenodes: namenodes, Path: path})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return w, nil
}

// NewWriterWithClient is the same as NewWriter but uses a caller owned client.
func NewWriterWithClient(client *hdfs.Client, path string) (*Writer, error) {
	return createFile(file{client: client, Path: path})
}

func createFile(f file) (*Writer, error) {
	fw, err := f.client.Create(f.Path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to create HDFS file"),
			errors.Fields{
				"location": f.Location(),
			})
	}

	return &Writer{file: f, w: fw}, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

func (w *Writer) Close() error {
	if w.w != nil {
		err := w.w.Close()
		w.w = nil

		if err != nil {
			_ = w.closeClient()
			return errors.Wrap(err, "failed to close HDFS writer")
		}
	}

	return w.closeClient()
}
