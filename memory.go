package fixedalloc

import (
	"unsafe"
)

const (
	KB = 1024
	MB = 1024 * KB
	GB = 1024 * MB
)

// Memory is the backing store of an allocator: one contiguous zero-filled
// region acquired on Attach and released on Detach. Every pointer an
// allocator hands out lives inside [Ptr, Ptr+Size).
type Memory interface {
	// Attach acquires the backing region
	Attach() error
	// Detach releases the backing region
	Detach() error
	// Ptr base pointer
	Ptr() unsafe.Pointer
	// Size total size in bytes
	Size() uint64
	// PtrOffset pointer at offset, panics when offset >= Size
	PtrOffset(offset uint64) unsafe.Pointer
}
