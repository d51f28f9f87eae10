package azblob

import (
	"context"
	"io"

	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/hexbee-net/errors"
)

type WriterOptions struct {
	BlobOptions

	// Parallelism bounds the number of blocks uploaded at once (0 = default).
	Parallelism int
}

// Writer uploads a sealed segment as a block blob.
type Writer struct {
	blob

	writeDone  chan error
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
}

// NewWriter creates an Azure Blob Writer.
func NewWriter(ctx context.Context, URL string, credential azblob.Credential, options WriterOptions) (*Writer, error) {
	b, err := openBlob(ctx, URL, credential, options.BlobOptions)
	if err != nil {
		return nil, err
	}

	w := &Writer{
		blob:      b,
		writeDone: make(chan error, 1),
	}

	w.pipeReader, w.pipeWriter = io.Pipe()

	go func() {
		_, err := azblob.UploadStreamToBlockBlob(ctx, w.pipeReader, *w.url, azblob.UploadStreamToBlockBlobOptions{
			MaxBuffers: options.Parallelism,
			BlobHTTPHeaders: azblob.BlobHTTPHeaders{
				ContentType: "application/octet-stream",
			},
		})
		if err != nil {
			_ = w.pipeReader.CloseWithError(err)
		}

		w.writeDone <- err
	}()

	return w, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.pipeWriter.Write(p)
	if err != nil {
		_ = w.pipeWriter.CloseWithError(err)

		return n, errors.Wrap(err, "failed to stream data to blob")
	}

	return n, nil
}

// Close ends the stream and waits for the upload to complete.
func (w *Writer) Close() error {
	if err := w.pipeWriter.Close(); err != nil {
		return errors.Wrap(err, "failed to close pipe writer")
	}

	if err := <-w.writeDone; err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to upload segment"),
			errors.Fields{
				"location": w.Location(),
			})
	}

	return nil
}
