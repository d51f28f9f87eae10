package gcs

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/hexbee-net/errors"
)

// Writer streams a sealed segment into a new GCS object. The object only
// becomes visible once Close succeeds.
type Writer struct {
	object
	w *storage.Writer
}

// NewWriter creates a GCS Writer.
func NewWriter(ctx context.Context, projectID, bucket, name string) (*Writer, error) {
	client, err := newClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return create(ctx, client, true, bucket, name), nil
}

// NewWriterWithClient is the same as NewWriter but uses a caller owned client.
func NewWriterWithClient(ctx context.Context, client *storage.Client, bucket, name string) *Writer {
	return create(ctx, client, false, bucket, name)
}

func create(ctx context.Context, client *storage.Client, ownClient bool, bucket, name string) *Writer {
	w := &Writer{object: newObject(ctx, client, ownClient, bucket, name)}
	w.w = w.handle.NewWriter(ctx)
	w.w.ContentType = "application/octet-stream"

	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

func (w *Writer) Close() error {
	if err := w.w.Close(); err != nil {
		_ = w.object.Close()

		return errors.WithFields(
			errors.Wrap(err, "failed to finalize GCS object"),
			errors.Fields{
				"location": w.Location(),
			})
	}

	return w.object.Close()
}
