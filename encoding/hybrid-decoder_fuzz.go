// +build gofuzz

package encoding

import "bytes"

func FuzzHybridDecoder(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	bitWidth := int(data[0]) % (maxBitWidth + 1)
	d := NewHybridDecoder(bitWidth, false)

	if err := d.Init(bytes.NewReader(data[1:])); err != nil {
		return 0
	}

	for i := 0; i < len(data)*8; i++ {
		if _, err := d.Next(); err != nil {
			return 0
		}
	}

	return 1
}
