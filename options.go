package cstable

import (
	"github.com/hexbee-net/cstable/column"
	"github.com/hexbee-net/cstable/compression"
	"github.com/hexbee-net/cstable/pagestore"
	"go.uber.org/zap"
)

type options struct {
	logger     *zap.Logger
	codec      compression.Codec
	pageSize   int
	sectorSize uint32
	projection []string
}

// Option configures table writers, readers and materializers. Options that do
// not apply to a component are ignored.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		logger:     zap.NewNop(),
		codec:      compression.CodecSnappy,
		pageSize:   column.DefaultPageSize,
		sectorSize: pagestore.SectorSize,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCodec sets the compression of the pages written by a table writer.
func WithCodec(codec compression.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithPageSize sets the approximate size of the value payload of column pages.
func WithPageSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.pageSize = size
		}
	}
}

// WithSectorSize sets the page allocation granularity of a table writer.
func WithSectorSize(size uint32) Option {
	return func(o *options) {
		o.sectorSize = size
	}
}

// WithProjection restricts a materializer to the leaf columns under paths.
func WithProjection(paths ...string) Option {
	return func(o *options) {
		o.projection = paths
	}
}
