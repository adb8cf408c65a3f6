package fixedalloc

import (
	"unsafe"
)

// Arena is a monotonic bump allocator over one fixed-capacity backing
// region. Alloc only ever advances the cursor; individual allocations
// cannot be returned, only the whole arena can be Reset. Not safe for
// concurrent use, callers add their own synchronization or use one
// arena per goroutine.
type Arena struct {
	mem      Memory
	capacity uint64
	used     uint64
}

// NewArena acquires a zero-filled backing region of capacity bytes.
// Nothing is leaked when the acquisition fails.
func NewArena(capacity uint64, c *Config) (*Arena, error) {
	config := mergeConfig(c)
	mem, err := newMemory(capacity, config)
	if err != nil {
		return nil, err
	}
	if err = mem.Attach(); err != nil {
		return nil, err
	}
	return &Arena{mem: mem, capacity: capacity}, nil
}

// Alloc returns a view of size contiguous bytes at the current cursor.
// The view stays valid until Reset or Close. Memory is zero-filled at
// init only, a view handed out after Reset can see old bytes.
func (a *Arena) Alloc(size uint64) ([]byte, error) {
	if a.mem == nil {
		return nil, ErrClosed
	}
	// size must be checked against capacity first, capacity-size
	// underflows otherwise
	if size > a.capacity || a.used > a.capacity-size {
		return nil, ErrNoSpace
	}
	if size == 0 {
		return []byte{}, nil
	}
	ptr := a.mem.PtrOffset(a.used)
	a.used += size
	return unsafe.Slice((*byte)(ptr), size), nil
}

// Reset moves the cursor back to zero. Views handed out before the
// reset must not be used afterwards, the arena keeps no reuse tracking.
func (a *Arena) Reset() {
	if a.mem == nil {
		return
	}
	a.used = 0
}

// Close releases the backing region. Every later operation reports
// ErrClosed. Close is idempotent.
func (a *Arena) Close() error {
	if a.mem == nil {
		return nil
	}
	err := a.mem.Detach()
	a.mem = nil
	a.used = 0
	return err
}

// Used reports the bytes consumed by live allocations.
func (a *Arena) Used() uint64 {
	return a.used
}

// Capacity reports the fixed total size of the backing region.
func (a *Arena) Capacity() uint64 {
	return a.capacity
}

// Available reports the bytes still allocatable before ErrNoSpace.
func (a *Arena) Available() uint64 {
	return a.capacity - a.used
}

// Utilization reports used/capacity in [0, 1].
func (a *Arena) Utilization() float64 {
	if a.capacity == 0 {
		return 0
	}
	return float64(a.used) / float64(a.capacity)
}
