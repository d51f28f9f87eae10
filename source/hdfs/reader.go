package hdfs

import (
	"github.com/colinmarc/hdfs/v2"
	"github.com/hexbee-net/errors"
)

// Reader reads a table segment stored on HDFS.
type Reader struct {
	file
	r *hdfs.FileReader
}

// NewReader connects to the namenodes as user and opens path.
func NewReader(namenodes []string, user, path string) (*Reader, error) {
	client, err := newClient(namenodes, user)
	if err != nil {
		return nil, err
	}

	r, err := openFile(file{client: client, ownClient: true, namenodes: namenodes, Path: path})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return r, nil
}

// NewReaderWithClient is the same as NewReader but uses a caller owned client.
func NewReaderWithClient(client *hdfs.Client, path string) (*Reader, error) {
	return openFile(file{client: client, Path: path})
}

func openFile(f file) (*Reader, error) {
	fr, err := f.client.Open(f.Path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to open HDFS file"),
			errors.Fields{
				"location": f.Location(),
			})
	}

	return &Reader{file: f, r: fr}, nil
}

func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	return r.r.ReadAt(p, off)
}

func (r *Reader) Size() int64 {
	return r.r.Stat().Size()
}

func (r *Reader) Close() error {
	if r.r != nil {
		err := r.r.Close()
		r.r = nil

		if err != nil {
			_ = r.closeClient()
			return errors.Wrap(err, "failed to close HDFS reader")
		}
	}

	return r.closeClient()
}
