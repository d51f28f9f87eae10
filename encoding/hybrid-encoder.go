package encoding

import (
	"io"
	"math/bits"

	"github.com/hexbee-net/errors"
)

const (
	rleBufSize = 8

	// A bit-packed run header holding at most 63 groups fits on a single byte.
	maxBitPackedGroups = 63
)

// HybridEncoder writes the RLE / bit-packing hybrid encoding. Runs of at least
// 8 identical values are run-length encoded, everything else is bit-packed in
// groups of 8 values.
type HybridEncoder struct {
	bitWidth  int
	byteWidth int
	packerFn  pack8int32Func

	out []byte

	buf         [rleBufSize]int32
	numBuffered int

	previous    int32
	repeatCount int

	bpGroups    int
	bpHeaderPos int
}

func NewHybridEncoder(bitWidth int) (*HybridEncoder, error) {
	if bitWidth < 0 || bitWidth > maxBitWidth {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidBitWidth),
			errors.Fields{
				"bit-width": bitWidth,
			})
	}

	e := &HybridEncoder{
		bitWidth:  bitWidth,
		byteWidth: (bitWidth + 7) / 8,
		packerFn:  pack8Int32FuncByWidth[bitWidth],
	}
	e.Reset()

	return e, nil
}

// Reset drops any buffered value so the encoder can be reused.
func (e *HybridEncoder) Reset() {
	e.out = e.out[:0]
	e.numBuffered = 0
	e.previous = 0
	e.repeatCount = 0
	e.bpGroups = 0
	e.bpHeaderPos = -1
}

// AppendSingle adds one value. Values are handled as unsigned, so a bit width
// of 32 accepts any uint32 cast to int32.
func (e *HybridEncoder) AppendSingle(v int32) error {
	if bits.Len32(uint32(v)) > e.bitWidth {
		return errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"value":     v,
				"bit-width": e.bitWidth,
			})
	}

	if v == e.previous {
		e.repeatCount++

		if e.repeatCount >= rleBufSize {
			// continue the current RLE run
			return nil
		}
	} else {
		if e.repeatCount >= rleBufSize {
			e.writeRLERun()
		}

		e.repeatCount = 1
		e.previous = v
	}

	e.buf[e.numBuffered] = v
	e.numBuffered++

	if e.numBuffered == rleBufSize {
		e.writeOrAppendBitPackedRun()
	}

	return nil
}

func (e *HybridEncoder) Encode(data []int32) error {
	for i := range data {
		if err := e.AppendSingle(data[i]); err != nil {
			return err
		}
	}

	return nil
}

// Write flushes the pending runs to w and resets the encoder.
func (e *HybridEncoder) Write(w io.Writer) error {
	switch {
	case e.repeatCount >= rleBufSize:
		e.writeRLERun()

	case e.numBuffered > 0:
		for i := e.numBuffered; i < rleBufSize; i++ {
			e.buf[i] = 0
		}

		e.numBuffered = rleBufSize
		e.writeOrAppendBitPackedRun()
		e.endPreviousBitPackedRun()

	default:
		e.endPreviousBitPackedRun()
	}

	err := writeFull(w, e.out)
	e.Reset()

	return err
}

func (e *HybridEncoder) writeOrAppendBitPackedRun() {
	if e.bpGroups >= maxBitPackedGroups {
		e.endPreviousBitPackedRun()
	}

	if e.bpHeaderPos == -1 {
		// reserve the header byte, patched once the run is complete
		e.out = append(e.out, 0)
		e.bpHeaderPos = len(e.out) - 1
	}

	e.out = append(e.out, e.packerFn(e.buf)...)

	e.numBuffered = 0
	e.repeatCount = 0
	e.bpGroups++
}

func (e *HybridEncoder) endPreviousBitPackedRun() {
	if e.bpHeaderPos == -1 {
		return
	}

	e.out[e.bpHeaderPos] = byte(e.bpGroups<<1 | 1)
	e.bpHeaderPos = -1
	e.bpGroups = 0
}

func (e *HybridEncoder) writeRLERun() {
	e.endPreviousBitPackedRun()

	e.out = appendUVarInt64(e.out, uint64(e.repeatCount)<<1)

	v := uint32(e.previous)
	for i := 0; i < e.byteWidth; i++ {
		e.out = append(e.out, byte(v))
		v >>= 8
	}

	e.repeatCount = 0
	e.numBuffered = 0
}
