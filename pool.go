package fixedalloc

import (
	"math"
	"math/bits"
	"unsafe"
)

// Pool hands out fixed-size chunks from one backing region. A bitmap
// ledger records one bit per chunk, set means allocated. Chunks are
// returned individually through Free, there is no reset.
type Pool struct {
	mem        Memory
	chunkSize  uint64
	chunkCount uint64
	ledger     []byte
}

// NewPool acquires a zero-filled backing region of chunkSize*chunkCount
// bytes plus the ledger. A zero chunkSize or chunkCount yields a valid
// pool on which every Alloc reports ErrNoSpace.
func NewPool(chunkSize, chunkCount uint64, c *Config) (*Pool, error) {
	if chunkSize != 0 && chunkCount > math.MaxUint64/chunkSize {
		return nil, ErrSizeOverflow
	}
	config := mergeConfig(c)
	mem, err := newMemory(chunkSize*chunkCount, config)
	if err != nil {
		return nil, err
	}
	if err = mem.Attach(); err != nil {
		return nil, err
	}
	return &Pool{
		mem:        mem,
		chunkSize:  chunkSize,
		chunkCount: chunkCount,
		ledger:     make([]byte, (chunkCount+7)/8),
	}, nil
}

// Alloc marks the lowest free chunk as allocated and returns its view.
// The scan walks the ledger a byte at a time, O(chunkCount) worst case.
func (p *Pool) Alloc() ([]byte, error) {
	if p.mem == nil {
		return nil, ErrClosed
	}
	if p.chunkSize == 0 || p.chunkCount == 0 {
		return nil, ErrNoSpace
	}
	for i, w := range p.ledger {
		if w == 0xff {
			continue
		}
		index := uint64(i)*8 + uint64(bits.TrailingZeros8(^w))
		if index >= p.chunkCount {
			// only clear bits left are ledger padding
			break
		}
		p.ledger[i] |= 1 << (index % 8)
		ptr := p.mem.PtrOffset(index * p.chunkSize)
		return unsafe.Slice((*byte)(ptr), p.chunkSize), nil
	}
	return nil, ErrNoSpace
}

// Free gives a chunk previously returned by Alloc back to the pool. It
// reports false without touching the ledger when the pool is closed,
// the view is not chunk-aligned inside the backing region, or the
// chunk is already free.
func (p *Pool) Free(b []byte) bool {
	if p.mem == nil || len(b) == 0 || p.chunkSize == 0 {
		return false
	}
	base := uintptr(p.mem.Ptr())
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if addr < base {
		return false
	}
	offset := uint64(addr - base)
	if offset%p.chunkSize != 0 {
		return false
	}
	index := offset / p.chunkSize
	if index >= p.chunkCount {
		return false
	}
	mask := byte(1) << (index % 8)
	if p.ledger[index/8]&mask == 0 {
		// already free
		return false
	}
	p.ledger[index/8] &^= mask
	return true
}

// Close releases the backing region, then drops the ledger. Later
// Allocs report ErrClosed and Free reports false. Close is idempotent.
func (p *Pool) Close() error {
	if p.mem == nil {
		return nil
	}
	err := p.mem.Detach()
	p.mem = nil
	p.ledger = nil
	return err
}

// ChunkSize reports the fixed size of every chunk.
func (p *Pool) ChunkSize() uint64 {
	return p.chunkSize
}

// ChunkCount reports the total number of chunks.
func (p *Pool) ChunkCount() uint64 {
	return p.chunkCount
}

// FreeChunks reports how many chunks are currently allocatable.
func (p *Pool) FreeChunks() uint64 {
	if p.mem == nil {
		return 0
	}
	allocated := uint64(0)
	for _, w := range p.ledger {
		allocated += uint64(bits.OnesCount8(w))
	}
	return p.chunkCount - allocated
}
