package shm

import (
	"fmt"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// Memory based on OS shared memory
type Memory struct {
	createIfNotExists bool   // create shm if not exists
	shmkey            string // shared memory key
	shmid             uint64 // shared memory handle
	bytes             uint64 // shared memory size
	basep             uint64 // base pointer
}

func NewMemory(key string, bytes uint64, createIfNotExists bool) *Memory {
	return &Memory{
		createIfNotExists: createIfNotExists,
		shmkey:            key,
		bytes:             bytes,
	}
}

func (m *Memory) Key() string {
	return m.shmkey
}

func (m *Memory) Handle() uint64 {
	return m.shmid
}

func (m *Memory) Size() uint64 {
	return m.bytes
}

func (m *Memory) Ptr() unsafe.Pointer {
	return unsafe.Pointer(uintptr(m.basep))
}

func (m *Memory) PtrOffset(offset uint64) unsafe.Pointer {
	if offset >= m.bytes {
		panic(fmt.Errorf("offset overflow: %d > %d", offset, m.bytes))
	}
	return unsafe.Pointer(uintptr(m.basep) + uintptr(offset))
}

// ipcKey derives the numeric System V key from the string key.
// Truncated to 31 bits so it stays a valid positive key_t.
func ipcKey(key string) uintptr {
	return uintptr(xxhash.Sum64String(key) & 0x7fffffff)
}
