package encoding

const maxBitWidth = 32

type pack8int32Func func(values [8]int32) []byte

type unpack8int32Func func(data []byte) [8]int32

var (
	pack8Int32FuncByWidth   [maxBitWidth + 1]pack8int32Func
	unpack8Int32FuncByWidth [maxBitWidth + 1]unpack8int32Func
)

func init() {
	for w := 0; w <= maxBitWidth; w++ {
		pack8Int32FuncByWidth[w] = pack8Int32(w)
		unpack8Int32FuncByWidth[w] = unpack8Int32(w)
	}
}

// pack8Int32 returns a function packing 8 values on width bits each, least
// significant bit first. The output is always width bytes long.
func pack8Int32(width int) pack8int32Func {
	return func(values [8]int32) []byte {
		buf := make([]byte, width)
		if width == 0 {
			return buf
		}

		var (
			acc  uint64
			bits uint
			pos  int
		)

		mask := uint64(1)<<uint(width) - 1

		for _, v := range values {
			acc |= (uint64(uint32(v)) & mask) << bits
			bits += uint(width)

			for bits >= 8 {
				buf[pos] = byte(acc)
				pos++
				acc >>= 8
				bits -= 8
			}
		}

		return buf
	}
}

func unpack8Int32(width int) unpack8int32Func {
	return func(data []byte) (values [8]int32) {
		if width == 0 {
			return values
		}

		var (
			acc  uint64
			bits uint
			pos  int
		)

		mask := uint64(1)<<uint(width) - 1

		for i := range values {
			for bits < uint(width) {
				var b byte
				if pos < len(data) {
					b = data[pos]
				}
				acc |= uint64(b) << bits
				bits += 8
				pos++
			}

			values[i] = int32(uint32(acc & mask))
			acc >>= uint(width)
			bits -= uint(width)
		}

		return values
	}
}
