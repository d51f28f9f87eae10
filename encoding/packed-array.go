package encoding

import (
	"io"

	"github.com/hexbee-net/errors"
)

const packedArrayBufSize = 8

// PackedArray accumulates small unsigned values bit-packed in groups of 8,
// without run headers. Boolean data pages are stored this way.
type PackedArray struct {
	count int
	bw    int
	data  []byte

	buf    [packedArrayBufSize]int32
	bufPos int

	writer pack8int32Func
	reader unpack8int32Func
}

// Reset clears the array and sets the bit width of its values.
func (a *PackedArray) Reset(bitWidth int) error {
	if bitWidth < 0 || bitWidth > maxBitWidth {
		return errors.WithFields(
			errors.WithStack(errInvalidBitWidth),
			errors.Fields{
				"bit-width": bitWidth,
			})
	}

	a.bw = bitWidth
	a.count = 0
	a.bufPos = 0
	a.data = a.data[:0]
	a.writer = pack8Int32FuncByWidth[bitWidth]
	a.reader = unpack8Int32FuncByWidth[bitWidth]

	return nil
}

// Flush packs the pending values, padding the last group with zeros.
func (a *PackedArray) Flush() {
	if a.bufPos == 0 {
		return
	}

	for i := a.bufPos; i < packedArrayBufSize; i++ {
		a.buf[i] = 0
	}

	a.data = append(a.data, a.writer(a.buf)...)
	a.bufPos = 0
}

func (a *PackedArray) AppendSingle(v int32) {
	if a.bufPos == packedArrayBufSize {
		a.Flush()
	}

	a.buf[a.bufPos] = v
	a.bufPos++
	a.count++
}

// Count returns the number of values appended since the last Reset.
func (a *PackedArray) Count() int {
	return a.count
}

func (a *PackedArray) At(pos int) (int32, error) {
	if pos < 0 || pos >= a.count {
		return 0, errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"position": pos,
				"count":    a.count,
			})
	}

	if a.bw == 0 {
		return 0, nil
	}

	block := (pos / packedArrayBufSize) * a.bw
	idx := pos % packedArrayBufSize

	if block >= len(a.data) {
		return a.buf[idx], nil
	}

	buf := a.reader(a.data[block : block+a.bw])

	return buf[idx], nil
}

// Write writes the packed groups. Call Flush first to include a partial group.
func (a *PackedArray) Write(writer io.Writer) error {
	return writeFull(writer, a.data)
}

// Bytes returns the packed groups.
func (a *PackedArray) Bytes() []byte {
	return a.data
}
