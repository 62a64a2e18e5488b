// Package ring implements a lock-free single-producer/single-consumer byte
// ring buffer, translated from the original C library's mlock-able SPSC
// ring into Go's memory model: the C implementation's explicit acquire and
// release fences become plain sync/atomic loads and stores on the two head
// indices, which is sufficient on every architecture Go targets without any
// architecture-specific barrier intrinsics.
package ring

import (
	"sync/atomic"

	"github.com/ssargent/btreering/pkg/alloc"
)

// Ring is a fixed-capacity byte ring buffer safe for exactly one concurrent
// reader and one concurrent writer. Any other usage pattern (two writers,
// two readers) is not safe without external synchronization.
type Ring struct {
	alloc     alloc.Allocator
	buf       []byte
	size      uint32 // capacity in bytes, always a power of two
	sizeMask  uint32
	writeHead atomic.Uint32
	readHead  atomic.Uint32
}

// Option configures a Ring at construction time.
type Option func(*Ring)

// WithAllocator overrides the allocator used for the ring's backing byte
// array. A nil allocator (or omitting this option) selects alloc.Default().
func WithAllocator(a alloc.Allocator) Option {
	return func(r *Ring) {
		if a != nil {
			r.alloc = a
		}
	}
}

// New creates a Ring with at least requestedCapacity bytes of capacity,
// rounded up to the next power of two. One byte of capacity is always
// reserved to disambiguate the full and empty states, so Capacity() returns
// one less than the rounded size.
func New(requestedCapacity uint32, opts ...Option) *Ring {
	r := &Ring{alloc: alloc.Default()}
	for _, opt := range opts {
		opt(r)
	}

	cap := nextPowerOfTwo(requestedCapacity)
	r.buf = r.alloc.NewBuffer(int(cap))
	r.size = cap
	r.sizeMask = cap - 1
	return r
}

func nextPowerOfTwo(size uint32) uint32 {
	if size == 0 {
		return 1
	}
	size--
	size |= size >> 1
	size |= size >> 2
	size |= size >> 4
	size |= size >> 8
	size |= size >> 16
	size++
	return size
}

// Close returns the Ring's backing buffer to its allocator. The Ring must
// not be used afterwards.
func (r *Ring) Close() {
	r.alloc.FreeBuffer(r.buf)
	r.buf = nil
}

// Mlock locks the Ring's backing buffer into physical memory so a realtime
// reader or writer thread never takes a page fault touching it. Errors are
// advisory: callers are expected to log and ignore them rather than treat
// them as fatal. See mlock_unix.go / mlock_other.go for the platform-
// specific implementation.
func (r *Ring) Mlock() error {
	return mlockBuffer(r.buf)
}

// Reset returns the Ring to the empty state. Safe only when no reader or
// writer goroutine is active.
func (r *Ring) Reset() {
	r.writeHead.Store(0)
	r.readHead.Store(0)
}

// Capacity returns the maximum number of bytes the Ring can hold at once.
func (r *Ring) Capacity() uint32 {
	return r.size - 1
}

func readSpace(size, r, w uint32) uint32 {
	if r < w {
		return w - r
	}
	return (w - r + size) & (size - 1)
}

func writeSpace(size, r, w uint32) uint32 {
	if r == w {
		return size - 1
	}
	if r < w {
		return ((r - w + size) & (size - 1)) - 1
	}
	return (r - w) - 1
}

// ReadSpace returns the number of bytes immediately available to Read.
// Safe to call from the reader goroutine only.
func (r *Ring) ReadSpace() uint32 {
	read := r.readHead.Load()
	write := r.writeHead.Load()
	return readSpace(r.size, read, write)
}

// WriteSpace returns the number of bytes immediately available to Write.
// Safe to call from the writer goroutine only.
func (r *Ring) WriteSpace() uint32 {
	read := r.readHead.Load()
	write := r.writeHead.Load()
	return writeSpace(r.size, read, write)
}

func (r *Ring) peek(read, write uint32, dst []byte) uint32 {
	size := uint32(len(dst))
	if readSpace(r.size, read, write) < size {
		return 0
	}

	if read+size < r.size {
		copy(dst, r.buf[read:read+size])
	} else {
		firstSize := r.size - read
		copy(dst, r.buf[read:])
		copy(dst[firstSize:], r.buf[:size-firstSize])
	}
	return size
}

// Peek copies len(dst) bytes from the front of the Ring into dst without
// consuming them. It is all-or-nothing: it returns 0 (and leaves dst
// untouched) if fewer than len(dst) bytes are available, otherwise
// len(dst). Safe to call from the reader goroutine only.
func (r *Ring) Peek(dst []byte) uint32 {
	read := r.readHead.Load()
	write := r.writeHead.Load()
	return r.peek(read, write, dst)
}

// Read copies len(dst) bytes out of the Ring into dst and consumes them.
// All-or-nothing: returns 0 (consuming nothing) if fewer than len(dst)
// bytes are available, otherwise len(dst). Safe to call from the reader
// goroutine only.
func (r *Ring) Read(dst []byte) uint32 {
	read := r.readHead.Load()
	write := r.writeHead.Load()

	n := r.peek(read, write, dst)
	if n == 0 {
		return 0
	}

	r.readHead.Store((read + n) & r.sizeMask)
	return n
}

// Skip discards size bytes from the front of the Ring without copying them
// out. All-or-nothing: returns 0 if fewer than size bytes are available.
// Safe to call from the reader goroutine only.
func (r *Ring) Skip(size uint32) uint32 {
	read := r.readHead.Load()
	write := r.writeHead.Load()
	if readSpace(r.size, read, write) < size {
		return 0
	}

	r.readHead.Store((read + size) & r.sizeMask)
	return size
}

// Write copies src into the Ring. All-or-nothing: returns 0 (writing
// nothing) if fewer than len(src) bytes of space are available, otherwise
// len(src). Safe to call from the writer goroutine only.
func (r *Ring) Write(src []byte) uint32 {
	read := r.readHead.Load()
	write := r.writeHead.Load()
	size := uint32(len(src))

	if writeSpace(r.size, read, write) < size {
		return 0
	}

	if write+size <= r.size {
		copy(r.buf[write:], src)
		r.writeHead.Store((write + size) & r.sizeMask)
	} else {
		thisSize := r.size - write
		copy(r.buf[write:], src[:thisSize])
		copy(r.buf[:], src[thisSize:])
		r.writeHead.Store(size - thisSize)
	}

	return size
}
