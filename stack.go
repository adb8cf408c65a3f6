package fixedalloc

import (
	"unsafe"
)

// Stack is a LIFO allocator: Alloc pushes views onto one backing
// region, Pop peels the most recent bytes back off by count. The stack
// records no per-allocation sizes, keeping the pop order and sizes
// honest is entirely the caller's contract.
type Stack struct {
	mem      Memory
	capacity uint64
	used     uint64
}

// NewStack acquires a zero-filled backing region of capacity bytes.
func NewStack(capacity uint64, c *Config) (*Stack, error) {
	config := mergeConfig(c)
	mem, err := newMemory(capacity, config)
	if err != nil {
		return nil, err
	}
	if err = mem.Attach(); err != nil {
		return nil, err
	}
	return &Stack{mem: mem, capacity: capacity}, nil
}

// Alloc returns a view of size contiguous bytes at the top of the
// stack and advances the cursor.
func (s *Stack) Alloc(size uint64) ([]byte, error) {
	if s.mem == nil {
		return nil, ErrClosed
	}
	// used <= capacity always holds, so capacity-used cannot underflow
	// and the bound is wrap-proof for any size
	if size > s.capacity-s.used {
		return nil, ErrNoSpace
	}
	if size == 0 {
		return []byte{}, nil
	}
	ptr := s.mem.PtrOffset(s.used)
	s.used += size
	return unsafe.Slice((*byte)(ptr), size), nil
}

// Pop gives the most recently allocated size bytes back to the stack.
// It reports false and leaves the cursor unchanged when size exceeds
// the bytes currently allocated.
func (s *Stack) Pop(size uint64) bool {
	if s.mem == nil {
		return false
	}
	if size > s.used {
		return false
	}
	s.used -= size
	return true
}

// Close releases the backing region. Close is idempotent.
func (s *Stack) Close() error {
	if s.mem == nil {
		return nil
	}
	err := s.mem.Detach()
	s.mem = nil
	s.used = 0
	return err
}

// Used reports the bytes currently pushed.
func (s *Stack) Used() uint64 {
	return s.used
}

// Capacity reports the fixed total size of the backing region.
func (s *Stack) Capacity() uint64 {
	return s.capacity
}
