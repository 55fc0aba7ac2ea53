package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 64, bb.Cap(), "new buffer should have specified capacity")
}

func TestByteBuffer_AppendAndReset(t *testing.T) {
	bb := NewByteBuffer(TokenBufferDefaultSize)
	bb.Append([]byte("Ham"))
	bb.Append([]byte("burg"))

	assert.Equal(t, []byte("Hamburg"), bb.Bytes())

	originalCap := bb.Cap()
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(TokenBufferDefaultSize)
	bb.Append([]byte("Palma;25.5\n"))

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)

	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.Equal(t, "Palma;25.5\n", buf.String())
}

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(TokenBufferDefaultSize)
	bb.Append([]byte("test"))

	n, err := bb.WriteTo(&errorWriter{err: io.ErrShortWrite})

	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, int64(0), n)
}

// =============================================================================
// ByteBuffer Grow / Resize Tests
// =============================================================================

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(TokenBufferDefaultSize)
		bb.Grow(10)
		assert.Equal(t, TokenBufferDefaultSize, bb.Cap(), "should not reallocate")
	})

	t.Run("small buffer", func(t *testing.T) {
		bb := NewByteBuffer(TokenBufferDefaultSize)
		bb.Append(make([]byte, TokenBufferDefaultSize))
		bb.Grow(1)
		assert.GreaterOrEqual(t, bb.Cap(), 2*TokenBufferDefaultSize)
		assert.Equal(t, TokenBufferDefaultSize, bb.Len(), "length should not change")
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		bb := &ByteBuffer{B: make([]byte, 8*TokenBufferDefaultSize)}
		bb.Grow(1)
		assert.GreaterOrEqual(t, bb.Cap(), 10*TokenBufferDefaultSize)
	})

	t.Run("huge request", func(t *testing.T) {
		bb := NewByteBuffer(TokenBufferDefaultSize)
		bb.Grow(TokenBufferDefaultSize * 10)
		assert.GreaterOrEqual(t, bb.Cap(), TokenBufferDefaultSize*10)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(4)
		bb.Append([]byte("keep"))
		bb.Grow(1024)
		assert.Equal(t, []byte("keep"), bb.Bytes())
	})
}

func TestByteBuffer_Resize(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.Append([]byte("ab"))

	bb.Resize(4096)
	assert.Equal(t, 4096, bb.Len())
	assert.Equal(t, []byte("ab"), bb.B[:2], "resize should keep existing bytes")

	bb.Resize(1)
	assert.Equal(t, 1, bb.Len())

	assert.Panics(t, func() { bb.Resize(-1) })
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(32, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 32, bb.Cap())

	bb.Append([]byte("dirty"))
	p.Put(bb)

	again := p.Get()
	assert.Equal(t, 0, again.Len(), "pooled buffers must come back empty")
}

func TestByteBufferPool_DropsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(32, 64)
	bb := p.Get()
	bb.Grow(1024)

	assert.NotPanics(t, func() { p.Put(bb) })
	assert.NotPanics(t, func() { p.Put(nil) })
}

func TestChunkBuffer(t *testing.T) {
	bb := GetChunkBuffer(4096)
	assert.Equal(t, 4096, bb.Len())
	PutChunkBuffer(bb)

	big := GetChunkBuffer(ChunkBufferDefaultSize * 2)
	assert.Equal(t, ChunkBufferDefaultSize*2, big.Len())
	PutChunkBuffer(big)
}

func TestTokenBuffer_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bb := GetTokenBuffer()
				bb.Append([]byte("station"))
				assert.Equal(t, 7, bb.Len())
				PutTokenBuffer(bb)
			}
		}()
	}
	wg.Wait()
}

type errorWriter struct {
	err error
}

func (w *errorWriter) Write(p []byte) (int, error) {
	return 0, w.err
}
