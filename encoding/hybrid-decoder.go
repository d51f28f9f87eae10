package encoding

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/hexbee-net/errors"
)

// HybridDecoder reads the output of HybridEncoder one value at a time.
// Bit-packed runs yield every value of their last group, padding included, so
// callers stop after the number of values they expect.
type HybridDecoder struct {
	r        io.Reader
	buffered bool

	bitWidth  int
	byteWidth int
	unpack    unpack8int32Func

	rle   bool
	left  int
	value int32

	group    [8]int32
	groupPos int
	scratch  []byte
}

// NewHybridDecoder returns a decoder for values of bitWidth bits. A buffered
// decoder slurps its input on Init instead of reading it run by run.
func NewHybridDecoder(bitWidth int, buffered bool) *HybridDecoder {
	return &HybridDecoder{
		buffered:  buffered,
		bitWidth:  bitWidth,
		byteWidth: (bitWidth + 7) / 8,
		unpack:    unpack8Int32FuncByWidth[bitWidth],
		scratch:   make([]byte, bitWidth),
	}
}

func (d *HybridDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.left = 0
	d.groupPos = 0
	d.r = reader

	if d.buffered {
		data, err := io.ReadAll(reader)
		if err != nil {
			return errors.Wrap(err, "failed to buffer hybrid stream")
		}

		d.r = bytes.NewReader(data)
	}

	return nil
}

// InitSize reads a 4 bytes little endian length prefix and limits the decoder
// to that many bytes.
func (d *HybridDecoder) InitSize(reader io.Reader) error {
	var size uint32
	if err := binary.Read(reader, binary.LittleEndian, &size); err != nil {
		return err
	}

	return d.Init(io.LimitReader(reader, int64(size)))
}

// Next returns the next value. io.EOF is returned as is when the stream ends
// on a run boundary.
func (d *HybridDecoder) Next() (int32, error) {
	if d.r == nil {
		return 0, errors.WithStack(errNilReader)
	}

	if d.left == 0 {
		if err := d.nextRun(); err != nil {
			return 0, err
		}
	}

	d.left--

	if d.rle {
		return d.value, nil
	}

	if d.groupPos == 0 {
		if _, err := io.ReadFull(d.r, d.scratch); err != nil {
			return 0, errors.Wrap(err, "failed to read bit-packed group")
		}

		d.group = d.unpack(d.scratch)
	}

	v := d.group[d.groupPos]
	d.groupPos = (d.groupPos + 1) % 8

	return v, nil
}

func (d *HybridDecoder) nextRun() error {
	h, err := readUVarInt32(d.r)
	if err != nil {
		return err
	}

	d.rle = h&1 == 0
	d.groupPos = 0

	if d.rle {
		d.left = int(h >> 1)
	} else {
		d.left = int(h>>1) * 8
	}

	if d.left == 0 {
		run := "bit-packed"
		if d.rle {
			run = "rle"
		}

		return errors.WithFields(
			errors.WithStack(errEmptyRun),
			errors.Fields{
				"run": run,
			})
	}

	if d.rle {
		return d.readRLEValue()
	}

	return nil
}

// readRLEValue reads the little endian value repeated by the current run.
func (d *HybridDecoder) readRLEValue() error {
	buf := d.scratch[:d.byteWidth]
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return errors.Wrap(err, "failed to read RLE run value")
	}

	var v uint32
	for i := len(buf) - 1; i >= 0; i-- {
		v = v<<8 | uint32(buf[i])
	}

	if bits.Len32(v) > d.bitWidth {
		return errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"value":     v,
				"bit-width": d.bitWidth,
			})
	}

	d.value = int32(v)

	return nil
}
