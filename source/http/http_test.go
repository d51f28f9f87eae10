package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestReader(t *testing.T) {
	content := []byte("0123456789abcdefghij")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "segment", time.Time{}, bytes.NewReader(content))
	}))
	defer server.Close()

	r, err := NewReader(context.Background(), server.Client(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, int64(len(content)), r.Size())
	assert.Equal(t, server.URL, r.Location())

	t.Run("Middle", func(t *testing.T) {
		buf := make([]byte, 5)
		n, err := r.ReadAt(buf, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, []byte("34567"), buf)
	})

	t.Run("Tail", func(t *testing.T) {
		buf := make([]byte, 8)
		n, err := r.ReadAt(buf, 16)
		assert.Equal(t, io.EOF, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []byte("ghij"), buf[:n])
	})

	t.Run("PastEnd", func(t *testing.T) {
		buf := make([]byte, 8)
		n, err := r.ReadAt(buf, 20)
		assert.Equal(t, io.EOF, err)
		assert.Zero(t, n)
	})
}

func TestReader_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewReader(context.Background(), server.Client(), server.URL)
	assert.EqualError(t, errors.Cause(err), errUnexpectedStatus.Error())
}
