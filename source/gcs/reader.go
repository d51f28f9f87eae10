package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/hexbee-net/errors"
)

// Reader reads a table segment stored as a GCS object with range readers.
type Reader struct {
	object
	size int64
}

// NewReader creates a GCS Reader. projectID, when set, is billed for the
// requests.
func NewReader(ctx context.Context, projectID, bucket, name string) (*Reader, error) {
	client, err := newClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	r, err := open(ctx, client, true, bucket, name)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return r, nil
}

// NewReaderWithClient is the same as NewReader but uses a caller owned client.
func NewReaderWithClient(ctx context.Context, client *storage.Client, bucket, name string) (*Reader, error) {
	return open(ctx, client, false, bucket, name)
}

func open(ctx context.Context, client *storage.Client, ownClient bool, bucket, name string) (*Reader, error) {
	r := &Reader{object: newObject(ctx, client, ownClient, bucket, name)}

	attrs, err := r.handle.Attrs(ctx)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to get object attributes"),
			errors.Fields{
				"location": r.Location(),
			})
	}

	r.size = attrs.Size

	return r, nil
}

func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.WithFields(
			errors.WithStack(errInvalidOffset),
			errors.Fields{
				"offset": off,
			})
	}

	if off >= r.size {
		return 0, io.EOF
	}

	count := int64(len(p))
	if off+count > r.size {
		count = r.size - off
	}

	rr, err := r.handle.NewRangeReader(r.ctx, off, count)
	if err != nil {
		return 0, errors.WithFields(
			errors.Wrap(err, "failed to create range reader"),
			errors.Fields{
				"location": r.Location(),
				"offset":   off,
			})
	}
	defer func() { _ = rr.Close() }()

	n, err := io.ReadFull(rr, p[:count])
	if err != nil {
		return n, errors.Wrap(err, "failed to read object range")
	}

	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (r *Reader) Size() int64 {
	return r.size
}
