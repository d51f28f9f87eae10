package s3

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/hexbee-net/errors"
)

// Writer uploads a sealed segment to S3. Written data is piped to a multipart
// upload running in the background until Close.
type Writer struct {
	object

	written int64
	done    chan error
	pr      *io.PipeReader
	pw      *io.PipeWriter
}

// NewWriter creates an S3 Writer.
func NewWriter(ctx context.Context, bucket, key string, uploaderOptions []func(*s3manager.Uploader), configProvider client.ConfigProvider, configs ...*aws.Config) (*Writer, error) {
	return NewWriterWithClient(ctx, s3.New(configProvider, configs...), bucket, key, uploaderOptions)
}

// NewWriterWithClient is the same as NewWriter but allows passing your own S3 client.
func NewWriterWithClient(ctx context.Context, s3Client s3iface.S3API, bucket, key string, uploaderOptions []func(*s3manager.Uploader)) (*Writer, error) {
	w := &Writer{
		object: object{
			ctx:    ctx,
			client: s3Client,
			Bucket: bucket,
			Key:    key,
		},
		done: make(chan error, 1),
	}

	w.pr, w.pw = io.Pipe()

	uploader := s3manager.NewUploaderWithClient(s3Client, uploaderOptions...)
	input := &s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String("application/octet-stream"),
		Body:        w.pr,
	}

	go func() {
		_, err := uploader.UploadWithContext(ctx, input)
		if err != nil {
			_ = w.pr.CloseWithError(err)
		}

		w.done <- err
	}()

	return w, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.pw.Write(p)
	w.written += int64(n)

	if err != nil {
		return n, errors.WithFields(
			errors.Wrap(err, "failed to stream data to S3"),
			errors.Fields{
				"location": w.Location(),
				"written":  w.written,
			})
	}

	return n, nil
}

// Close ends the stream and waits for the upload to complete.
func (w *Writer) Close() error {
	if err := w.pw.Close(); err != nil {
		return errors.Wrap(err, "failed to close upload stream")
	}

	if err := <-w.done; err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to upload segment"),
			w.fields())
	}

	return nil
}
