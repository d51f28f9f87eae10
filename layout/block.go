package layout

import (
	"bytes"
	"math"

	"github.com/hexbee-net/cstable/compression"
	"github.com/hexbee-net/cstable/pagestore"
	"github.com/hexbee-net/errors"
)

const errInvalidBlock = errors.Error("invalid block")

// BlockWriter frames payloads into pages: a thrift page header followed by
// the compressed payload. Each block is flushed as soon as it is written.
type BlockWriter struct {
	store      *pagestore.Store
	codec      compression.Codec
	compressor compression.BlockCompressor
}

func NewBlockWriter(store *pagestore.Store, codec compression.Codec) (*BlockWriter, error) {
	c, err := compression.New(codec)
	if err != nil {
		return nil, err
	}

	return &BlockWriter{
		store:      store,
		codec:      codec,
		compressor: c,
	}, nil
}

func (w *BlockWriter) Codec() compression.Codec {
	return w.codec
}

// WriteBlock stores payload holding numValues values in a new page.
func (w *BlockWriter) WriteBlock(payload []byte, numValues int) (pagestore.PageRef, error) {
	if len(payload) > math.MaxInt32 || numValues > math.MaxInt32 {
		return pagestore.PageRef{}, errors.WithFields(
			errors.WithStack(errInvalidBlock),
			errors.Fields{
				"size":       len(payload),
				"num-values": numValues,
			})
	}

	var compressed []byte

	// empty payloads are stored without running the codec
	if len(payload) > 0 {
		var err error
		if compressed, err = w.compressor.CompressBlock(payload); err != nil {
			return pagestore.PageRef{}, errors.Wrap(err, "failed to compress block")
		}
	}

	header := &PageHeader{
		Codec:            int32(w.codec),
		NumValues:        int32(numValues),
		UncompressedSize: int32(len(payload)),
		CompressedSize:   int32(len(compressed)),
	}

	buf := &bytes.Buffer{}
	if err := WriteThrift(header, buf); err != nil {
		return pagestore.PageRef{}, err
	}

	buf.Write(compressed)

	page, err := w.store.Alloc(uint64(buf.Len()))
	if err != nil {
		return pagestore.PageRef{}, err
	}

	if err := w.store.Write(page, 0, buf.Bytes()); err != nil {
		return pagestore.PageRef{}, err
	}

	if err := w.store.Flush(page); err != nil {
		return pagestore.PageRef{}, err
	}

	return page, nil
}

// BlockReader reads blocks written by a BlockWriter.
type BlockReader struct {
	store       *pagestore.Store
	compressors map[compression.Codec]compression.BlockCompressor
}

func NewBlockReader(store *pagestore.Store) *BlockReader {
	return &BlockReader{
		store:       store,
		compressors: make(map[compression.Codec]compression.BlockCompressor),
	}
}

// ReadBlock returns the header and the decompressed payload stored in page.
func (r *BlockReader) ReadBlock(page pagestore.PageRef) (*PageHeader, []byte, error) {
	data, err := r.store.Read(page)
	if err != nil {
		return nil, nil, err
	}

	in := bytes.NewReader(data)

	header := &PageHeader{}
	if err := ReadThrift(header, in); err != nil {
		return nil, nil, errors.WithFields(
			errors.Wrap(err, "failed to read page header"),
			errors.Fields{
				"page-offset": page.Offset,
			})
	}

	if header.NumValues < 0 || header.CompressedSize < 0 || header.UncompressedSize < 0 ||
		int64(header.CompressedSize) > int64(in.Len()) {
		return nil, nil, errors.WithFields(
			errors.WithStack(errInvalidBlock),
			errors.Fields{
				"page-offset":       page.Offset,
				"num-values":        header.NumValues,
				"compressed-size":   header.CompressedSize,
				"uncompressed-size": header.UncompressedSize,
			})
	}

	if header.UncompressedSize == 0 {
		return header, []byte{}, nil
	}

	start := len(data) - in.Len()
	block := data[start : start+int(header.CompressedSize)]

	res, err := r.decompressBlock(block, compression.Codec(header.Codec))
	if err != nil {
		return nil, nil, errors.WithFields(
			errors.Wrap(err, "failed to decompress block"),
			errors.Fields{
				"page-offset": page.Offset,
			})
	}

	if len(res) != int(header.UncompressedSize) {
		return nil, nil, errors.WithFields(
			errors.New("invalid size for decompressed data"),
			errors.Fields{
				"expected": header.UncompressedSize,
				"actual":   len(res),
			})
	}

	return header, res, nil
}

func (r *BlockReader) decompressBlock(block []byte, codec compression.Codec) ([]byte, error) {
	c, ok := r.compressors[codec]
	if !ok {
		var err error
		if c, err = compression.New(codec); err != nil {
			return nil, err
		}

		r.compressors[codec] = c
	}

	return c.DecompressBlock(block)
}
