package gomemory

import (
	"fmt"
	"unsafe"
)

// Memory based on go memory
type Memory struct {
	mem   []byte
	basep unsafe.Pointer
	bytes uint64
}

func NewMemory(bytes uint64) *Memory {
	return &Memory{mem: make([]byte, bytes), bytes: bytes}
}

func (m *Memory) Attach() error {
	if nil == m.basep && m.bytes > 0 {
		m.basep = unsafe.Pointer(unsafe.SliceData(m.mem))
	}
	return nil
}

func (m *Memory) Detach() error {
	if nil != m.basep {
		m.basep = unsafe.Pointer(nil)
	}
	m.mem = nil
	return nil
}

func (m *Memory) Ptr() unsafe.Pointer {
	return m.basep
}

func (m *Memory) Size() uint64 {
	return m.bytes
}

func (m *Memory) PtrOffset(offset uint64) unsafe.Pointer {
	if offset >= m.bytes {
		panic(fmt.Errorf("offset overflow: %d > %d", offset, m.bytes))
	}
	return unsafe.Pointer(uintptr(m.basep) + uintptr(offset))
}
