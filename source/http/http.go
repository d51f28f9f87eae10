package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hexbee-net/errors"
)

const (
	rangeHeader = "bytes=%d-%d"

	errUnexpectedStatus = errors.Error("unexpected HTTP status")
	errRangeUnsupported = errors.Error("server does not support range requests")
)

// Reader reads a table segment served over HTTP with range requests.
type Reader struct {
	ctx      context.Context
	client   *http.Client
	URL      string
	fileSize int64
}

// NewReader issues a HEAD request to learn the segment size.
func NewReader(ctx context.Context, client *http.Client, url string) (*Reader, error) {
	if client == nil {
		client = http.DefaultClient
	}

	r := &Reader{
		ctx:    ctx,
		client: client,
		URL:    url,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build HEAD request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch file description")
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.WithFields(
			errors.WithStack(errUnexpectedStatus),
			errors.Fields{
				"url":    url,
				"status": resp.StatusCode,
			})
	}

	if resp.Header.Get("Accept-Ranges") != "bytes" {
		return nil, errors.WithFields(
			errors.WithStack(errRangeUnsupported),
			errors.Fields{
				"url": url,
			})
	}

	r.fileSize = resp.ContentLength

	return r, nil
}

func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	if off >= r.fileSize {
		return 0, io.EOF
	}

	if len(p) == 0 {
		return 0, nil
	}

	end := off + int64(len(p)) - 1
	if end > r.fileSize-1 {
		end = r.fileSize - 1
	}

	req, err := http.NewRequestWithContext(r.ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to build GET request")
	}

	req.Header.Set("Range", fmt.Sprintf(rangeHeader, off, end))

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "failed to fetch range")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusPartialContent {
		return 0, errors.WithFields(
			errors.WithStack(errUnexpectedStatus),
			errors.Fields{
				"url":    r.URL,
				"status": resp.StatusCode,
				"offset": off,
			})
	}

	n, err := io.ReadFull(resp.Body, p[:end-off+1])
	if err != nil {
		return n, errors.Wrap(err, "failed to read range")
	}

	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (r *Reader) Location() string {
	return r.URL
}

func (r *Reader) Size() int64 {
	return r.fileSize
}

func (r *Reader) Close() error {
	return nil
}
