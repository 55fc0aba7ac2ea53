package pool

import (
	"io"
	"sync"
)

const (
	TokenBufferDefaultSize  = 128              // key and value accumulators
	TokenBufferMaxThreshold = 1024 * 4         // 4KiB
	ChunkBufferDefaultSize  = 1024 * 64        // 64KiB
	ChunkBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Append appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) Append(data []byte) {
	bb.B = append(bb.B, data...)
}

// Resize sets the length of the buffer to n, growing the capacity if needed.
// The content of newly exposed bytes is unspecified.
func (bb *ByteBuffer) Resize(n int) {
	if n < 0 {
		panic("Resize: negative length")
	}
	if n > cap(bb.B) {
		bb.Grow(n - len(bb.B))
	}
	bb.B = bb.B[:n]
}

// Grow makes room for at least requiredBytes more bytes without reallocating.
//
// Small buffers grow by at least TokenBufferDefaultSize; buffers over 4x that
// grow by 25% of their capacity, whichever is larger than the request.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := TokenBufferDefaultSize
	if cap(bb.B) > 4*TokenBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers that grew beyond maxThreshold are dropped on Put instead of being
// retained, so one pathological key does not pin memory for the whole run.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	tokenDefaultPool = NewByteBufferPool(TokenBufferDefaultSize, TokenBufferMaxThreshold)
	chunkDefaultPool = NewByteBufferPool(ChunkBufferDefaultSize, ChunkBufferMaxThreshold)
)

// GetTokenBuffer retrieves an accumulator buffer for a key or value token.
func GetTokenBuffer() *ByteBuffer {
	return tokenDefaultPool.Get()
}

// PutTokenBuffer returns an accumulator buffer to the pool.
func PutTokenBuffer(bb *ByteBuffer) {
	tokenDefaultPool.Put(bb)
}

// GetChunkBuffer retrieves a read buffer with length size.
func GetChunkBuffer(size int) *ByteBuffer {
	bb := chunkDefaultPool.Get()
	bb.Resize(size)

	return bb
}

// PutChunkBuffer returns a read buffer to the pool.
func PutChunkBuffer(bb *ByteBuffer) {
	chunkDefaultPool.Put(bb)
}
