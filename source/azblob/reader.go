package azblob

import (
	"context"
	"io"

	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/hexbee-net/errors"
)

// Reader reads a table segment stored as a block blob with ranged downloads.
type Reader struct {
	blob

	fileSize int64
}

// NewReader creates an Azure Blob Reader.
func NewReader(ctx context.Context, URL string, credential azblob.Credential, options BlobOptions) (*Reader, error) {
	b, err := openBlob(ctx, URL, credential, options)
	if err != nil {
		return nil, err
	}

	r := &Reader{blob: b}

	props, err := r.url.GetProperties(ctx, azblob.BlobAccessConditions{})
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to get blob properties"),
			errors.Fields{
				"location": r.Location(),
			})
	}

	r.fileSize = props.ContentLength()

	return r, nil
}

func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	if r.url == nil {
		return 0, errors.WithStack(errURLNotOpened)
	}

	if off < 0 {
		return 0, errors.WithFields(
			errors.WithStack(errInvalidOffset),
			errors.Fields{
				"offset": off,
			})
	}

	if off >= r.fileSize {
		return 0, io.EOF
	}

	count := int64(len(p))
	if off+count > r.fileSize {
		count = r.fileSize - off
	}

	resp, err := r.url.Download(r.ctx, off, count, azblob.BlobAccessConditions{}, false)
	if err != nil {
		return 0, errors.WithFields(
			errors.Wrap(err, "failed to download blob range"),
			errors.Fields{
				"location": r.Location(),
				"offset":   off,
			})
	}

	body := resp.Body(azblob.RetryReaderOptions{MaxRetryRequests: 3})
	defer func() { _ = body.Close() }()

	n, err := io.ReadFull(body, p[:count])
	if err != nil {
		return n, errors.Wrap(err, "failed to read data")
	}

	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (r *Reader) Size() int64 {
	return r.fileSize
}

func (r *Reader) Close() error {
	return nil
}
