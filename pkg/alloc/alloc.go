// Package alloc provides the pluggable allocation collaborator used by
// pkg/ring for its backing byte array. It mirrors the malloc/free half of
// the original C library's allocator quartet at the granularity Go code
// actually allocates at: byte buffers pooled with sync.Pool instead of
// raw heap blocks.
//
// pkg/btree has its own analogous node pool (see pkg/btree's internal
// nodePool), since a tree node is a typed struct rather than a byte range
// and gains nothing from being forced through this interface.
package alloc

import "sync"

// Allocator hands out and reclaims byte buffers. A nil Allocator passed to
// ring.WithAllocator (or omitting that option) selects Default(), mirroring
// the C contract that a null allocator selects the platform default.
// btree.New takes no Allocator.
type Allocator interface {
	// NewBuffer returns a buffer of exactly size bytes, zeroed.
	NewBuffer(size int) []byte

	// FreeBuffer returns a buffer obtained from NewBuffer for reuse. Callers
	// must not touch buf after calling FreeBuffer.
	FreeBuffer(buf []byte)
}

// pooled is the default Allocator: a set of sync.Pools keyed by exact
// buffer size, so repeatedly constructing same-sized rings (the
// common case in a hot-reload or connection-per-ring server) doesn't pay a
// fresh GC allocation every time.
type pooled struct {
	mu    sync.Mutex
	pools map[int]*sync.Pool
}

var defaultAllocator = newPooled()

// Default returns the process-wide default Allocator. It holds no
// ring- or tree-specific state, so sharing it across unrelated instances is
// safe.
func Default() Allocator { return defaultAllocator }

func newPooled() *pooled {
	return &pooled{pools: make(map[int]*sync.Pool)}
}

func (p *pooled) poolFor(size int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()

	pool, ok := p.pools[size]
	if !ok {
		pool = &sync.Pool{
			New: func() any { return make([]byte, size) },
		}
		p.pools[size] = pool
	}
	return pool
}

func (p *pooled) NewBuffer(size int) []byte {
	buf := p.poolFor(size).Get().([]byte)
	clear(buf)
	return buf
}

func (p *pooled) FreeBuffer(buf []byte) {
	if buf == nil {
		return
	}
	p.poolFor(len(buf)).Put(buf) //nolint:staticcheck // size-bucketed, not capacity-bucketed
}
