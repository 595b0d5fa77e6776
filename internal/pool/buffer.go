// Package pool provides a reusable, growable byte buffer for encoder output.
//
// A nachricht encode call walks a value tree and appends header and payload
// bytes to a single contiguous buffer. Doing this once per call would mean
// a fresh allocation (and usually several grow-and-copy reallocations) for
// every call; pooling the backing array amortizes that cost across calls.
package pool

import "sync"

// DefaultSize is the initial capacity handed out by the package pool.
// Most wire values (a header plus a handful of fields) fit comfortably
// within this without triggering a single Grow.
const DefaultSize = 512

// MaxThreshold is the largest buffer capacity the pool will retain.
// Encoding an unusually large value (a big Bytes/String payload, or a
// deep tree) can grow a buffer far past what typical sessions need;
// holding on to it would pin that memory for the lifetime of the pool.
const MaxThreshold = 1 << 20 // 1MiB

// Buffer is an append-only []byte wrapper with an amortized growth
// strategy, used as the encoder's output sink.
type Buffer struct {
	B []byte
}

// NewBuffer creates a Buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the underlying slice.
func (b *Buffer) Bytes() []byte { return b.B }

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.B) }

// Reset empties the buffer but keeps its backing array.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// WriteByte appends a single byte, growing the buffer if necessary.
func (b *Buffer) WriteByte(c byte) error {
	b.B = append(b.B, c)
	return nil
}

// Write appends data to the buffer, growing it as needed. It always
// returns len(data), nil — the buffer never rejects a write.
func (b *Buffer) Write(data []byte) (int, error) {
	b.B = append(b.B, data...)
	return len(data), nil
}

// Grow ensures the buffer can accept at least n more bytes without a
// further reallocation.
//
// Growth strategy: small buffers (capacity up to 4x DefaultSize) grow by
// DefaultSize bytes, to minimize reallocations early in a session's
// life; larger buffers grow by 25% of their current capacity, trading a
// little extra memory for fewer future reallocations. Either way, a
// request larger than that step grows the buffer by exactly the request.
func (b *Buffer) Grow(n int) {
	available := cap(b.B) - len(b.B)
	if available >= n {
		return
	}

	growBy := DefaultSize
	if cap(b.B) > 4*DefaultSize {
		growBy = cap(b.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	next := make([]byte, len(b.B), len(b.B)+growBy)
	copy(next, b.B)
	b.B = next
}

// bufferPool is the package-level sync.Pool backing Get/Put.
var bufferPool = sync.Pool{
	New: func() any { return NewBuffer(DefaultSize) },
}

// Get retrieves a zero-length Buffer from the pool.
func Get() *Buffer {
	buf, _ := bufferPool.Get().(*Buffer)
	return buf
}

// Put returns a Buffer to the pool for reuse. Buffers that grew past
// MaxThreshold are dropped instead of retained, so one outsized encode
// session doesn't permanently inflate the pool's memory footprint.
func Put(buf *Buffer) {
	if buf == nil {
		return
	}
	if cap(buf.B) > MaxThreshold {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
