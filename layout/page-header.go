package layout

import (
	"github.com/apache/thrift/lib/go/thrift"
	"github.com/hexbee-net/errors"
)

// PageHeader prefixes the payload of every page.
//
//	struct PageHeader {
//	  1: i32 codec
//	  2: i32 num_values
//	  3: i32 uncompressed_size
//	  4: i32 compressed_size
//	}
type PageHeader struct {
	Codec            int32
	NumValues        int32
	UncompressedSize int32
	CompressedSize   int32
}

func (h *PageHeader) fields() []*int32 {
	return []*int32{&h.Codec, &h.NumValues, &h.UncompressedSize, &h.CompressedSize}
}

var pageHeaderFieldNames = []string{"codec", "num_values", "uncompressed_size", "compressed_size"}

func (h *PageHeader) Read(p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(); err != nil {
		return errors.Wrap(err, "failed to read page header")
	}

	fields := h.fields()

	for {
		_, typ, id, err := p.ReadFieldBegin()
		if err != nil {
			return errors.Wrap(err, "failed to read page header field")
		}

		if typ == thrift.STOP {
			break
		}

		if id >= 1 && int(id) <= len(fields) && typ == thrift.I32 {
			v, err := p.ReadI32()
			if err != nil {
				return errors.WithFields(
					errors.Wrap(err, "failed to read page header field"),
					errors.Fields{
						"field": pageHeaderFieldNames[id-1],
					})
			}

			*fields[id-1] = v
		} else if err := p.Skip(typ); err != nil {
			return errors.Wrap(err, "failed to skip page header field")
		}

		if err := p.ReadFieldEnd(); err != nil {
			return errors.Wrap(err, "failed to read page header field")
		}
	}

	return p.ReadStructEnd()
}

func (h *PageHeader) Write(p thrift.TProtocol) error {
	if err := p.WriteStructBegin("PageHeader"); err != nil {
		return errors.Wrap(err, "failed to write page header")
	}

	for i, v := range h.fields() {
		if err := p.WriteFieldBegin(pageHeaderFieldNames[i], thrift.I32, int16(i+1)); err != nil {
			return errors.Wrap(err, "failed to write page header field")
		}

		if err := p.WriteI32(*v); err != nil {
			return errors.Wrap(err, "failed to write page header field")
		}

		if err := p.WriteFieldEnd(); err != nil {
			return errors.Wrap(err, "failed to write page header field")
		}
	}

	if err := p.WriteFieldStop(); err != nil {
		return errors.Wrap(err, "failed to write page header")
	}

	return p.WriteStructEnd()
}
