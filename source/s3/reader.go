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

// Reader reads a table segment stored as an S3 object with ranged GETs.
type Reader struct {
	object

	size       int64
	downloader *s3manager.Downloader
}

// NewReader creates an S3 Reader.
func NewReader(ctx context.Context, bucket, key string, configProvider client.ConfigProvider, configs ...*aws.Config) (*Reader, error) {
	return NewReaderWithClient(ctx, s3.New(configProvider, configs...), bucket, key)
}

// NewReaderWithClient is the same as NewReader but allows passing your own S3 client.
func NewReaderWithClient(ctx context.Context, s3Client s3iface.S3API, bucket, key string) (*Reader, error) {
	r := &Reader{
		object: object{
			ctx:    ctx,
			client: s3Client,
			Bucket: bucket,
			Key:    key,
		},
		downloader: s3manager.NewDownloaderWithClient(s3Client, func(d *s3manager.Downloader) {
			// pages are small, a single part per range is enough
			d.Concurrency = 1
		}),
	}

	head, err := s3Client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to fetch object description"),
			r.fields())
	}

	r.size = aws.Int64Value(head.ContentLength)

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

	if len(p) == 0 {
		return 0, nil
	}

	last := off + int64(len(p)) - 1
	if last >= r.size {
		last = r.size - 1
	}

	buf := aws.NewWriteAtBuffer(p[:0])

	n, err := r.downloader.DownloadWithContext(r.ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(r.Key),
		Range:  byteRange(off, last),
	})
	if err != nil {
		return 0, errors.WithFields(
			errors.Wrap(err, "failed to download object range"),
			errors.Fields{
				"location": r.Location(),
				"offset":   off,
			})
	}

	// the buffer grows into a new array when p is too short
	copy(p, buf.Bytes())

	if int(n) < len(p) {
		return int(n), io.EOF
	}

	return int(n), nil
}

func (r *Reader) Size() int64 {
	return r.size
}

func (r *Reader) Close() error {
	return nil
}
