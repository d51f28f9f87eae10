package source

import (
	"io"

	"github.com/hexbee-net/errors"
)

const copyBufferSize = 1 << 20

// Copy streams the whole content of src into dst. It does not close dst.
func Copy(dst Writer, src Reader) (int64, error) {
	buf := make([]byte, copyBufferSize)

	n, err := io.CopyBuffer(dst, io.NewSectionReader(src, 0, src.Size()), buf)
	if err != nil {
		return n, errors.WithFields(
			errors.Wrap(err, "failed to copy segment"),
			errors.Fields{
				"copied": n,
				"size":   src.Size(),
			})
	}

	return n, nil
}
