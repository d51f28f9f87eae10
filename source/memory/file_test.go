package memory

import (
	"io"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestFile(t *testing.T) {
	t.Run("WriteAt_Grows", TestFile_WriteAt_Grows)
	t.Run("WriteAt_Gap", TestFile_WriteAt_Gap)
	t.Run("ReadAt_Short", TestFile_ReadAt_Short)
	t.Run("ReadAt_NegativeOffset", TestFile_ReadAt_NegativeOffset)
}

func TestFile_WriteAt_Grows(t *testing.T) {
	t.Parallel()

	f := NewFile(nil)

	n, err := f.WriteAt([]byte{1, 2, 3}, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = f.WriteAt([]byte{4, 5}, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(5), f.Size())
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, f.Bytes())
}

func TestFile_WriteAt_Gap(t *testing.T) {
	t.Parallel()

	f := NewFile(make([]byte, 0, 16))

	_, err := f.WriteAt([]byte{9, 9, 9, 9}, 0)
	require.NoError(t, err)

	f.Truncate(1)

	_, err = f.WriteAt([]byte{7}, 4)
	require.NoError(t, err)

	assert.Equal(t, []byte{9, 0, 0, 0, 7}, f.Bytes())
}

func TestFile_ReadAt_Short(t *testing.T) {
	t.Parallel()

	f := NewFile([]byte{1, 2, 3})

	buf := make([]byte, 4)
	n, err := f.ReadAt(buf, 1)

	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{2, 3}, buf[:n])
}

func TestFile_ReadAt_NegativeOffset(t *testing.T) {
	t.Parallel()

	f := NewFile([]byte{1})

	_, err := f.ReadAt(make([]byte, 1), -1)

	assert.EqualError(t, errors.Cause(err), errNegativeOffset.Error())
}

func TestWriter_Closed(t *testing.T) {
	t.Parallel()

	w := NewWriter([]byte("seg"))

	_, err := w.Write([]byte("ment"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("!"))
	assert.EqualError(t, errors.Cause(err), errClosed.Error())
	assert.Equal(t, []byte("segment"), w.Bytes())
	assert.Equal(t, "memory:", w.Location())
}
