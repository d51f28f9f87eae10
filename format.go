package cstable

import (
	"bytes"
	"encoding/binary"

	"github.com/hexbee-net/errors"
)

// FormatVersion is the version of the file layout written by this package.
const FormatVersion = 1

const (
	headerSize    = 20
	flagCommitted = 1
)

var magic = []byte{0x23, 0x17, 0x23, 0x17}

// header is stored at the start of the first sector:
//
//	magic (4) | version u16 | flags u16 | footer offset u64 | footer size u32
//
// all little endian.
type header struct {
	version      uint16
	flags        uint16
	footerOffset uint64
	footerSize   uint32
}

func (h *header) marshal() []byte {
	buf := make([]byte, headerSize)

	copy(buf, magic)
	binary.LittleEndian.PutUint16(buf[4:], h.version)
	binary.LittleEndian.PutUint16(buf[6:], h.flags)
	binary.LittleEndian.PutUint64(buf[8:], h.footerOffset)
	binary.LittleEndian.PutUint32(buf[16:], h.footerSize)

	return buf
}

func (h *header) unmarshal(buf []byte) error {
	if len(buf) < headerSize || !bytes.Equal(buf[:4], magic) {
		return errors.WithFields(
			errors.WithStack(ErrFormat),
			errors.Fields{
				"reason": "invalid magic",
			})
	}

	h.version = binary.LittleEndian.Uint16(buf[4:])
	h.flags = binary.LittleEndian.Uint16(buf[6:])
	h.footerOffset = binary.LittleEndian.Uint64(buf[8:])
	h.footerSize = binary.LittleEndian.Uint32(buf[16:])

	if h.version != FormatVersion {
		return errors.WithFields(
			errors.WithStack(ErrFormat),
			errors.Fields{
				"reason":  "unsupported version",
				"version": h.version,
			})
	}

	if h.flags&flagCommitted == 0 || h.footerSize == 0 {
		return errors.WithFields(
			errors.WithStack(ErrFormat),
			errors.Fields{
				"reason": "table not committed",
			})
	}

	return nil
}
