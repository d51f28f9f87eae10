package cstable

import (
	"context"

	"github.com/hexbee-net/cstable/source"
	"github.com/hexbee-net/errors"
	"go.opentelemetry.io/otel/attribute"
)

// Publish streams the committed table stored in src to dst and closes dst.
// Tables that were never committed are refused.
func Publish(ctx context.Context, dst source.Writer, src source.Reader) (n int64, err error) {
	_, span := tracer().Start(ctx, "cstable.Publish")
	defer func() { endSpan(span, err) }()

	buf := make([]byte, headerSize)
	if src.Size() < headerSize {
		return 0, errors.WithFields(
			errors.WithStack(ErrFormat),
			errors.Fields{
				"reason": "file too small",
				"size":   src.Size(),
			})
	}

	if _, err := src.ReadAt(buf, 0); err != nil {
		return 0, errors.Wrap(err, "failed to read table header")
	}

	h := &header{}
	if err := h.unmarshal(buf); err != nil {
		return 0, err
	}

	if n, err = source.Copy(dst, src); err != nil {
		_ = dst.Close()
		return n, err
	}

	if err := dst.Close(); err != nil {
		return n, errors.Wrap(err, "failed to close destination")
	}

	span.SetAttributes(attribute.Int64("cstable.size", n))

	return n, nil
}
