package fixedalloc

import (
	"fmt"

	"github.com/leslie-fei/fixedalloc/gomemory"
	"github.com/leslie-fei/fixedalloc/mmap"
	"github.com/leslie-fei/fixedalloc/shm"
)

type MemoryType int

const (
	GO   MemoryType = 1
	SHM             = 2
	MMAP            = 3
)

type Config struct {
	// memory type in GO SHM MMAP
	MemoryType MemoryType
	// shared memory key or mmap file path, required for SHM and MMAP
	MemoryKey string
}

func DefaultConfig() *Config {
	return &Config{MemoryType: GO}
}

func mergeConfig(c *Config) *Config {
	if c == nil {
		return DefaultConfig()
	}
	if c.MemoryType == 0 {
		c.MemoryType = GO
	}
	return c
}

// newMemory builds the backing store for one allocator handle.
func newMemory(size uint64, config *Config) (Memory, error) {
	switch config.MemoryType {
	case GO:
		return gomemory.NewMemory(size), nil
	case SHM:
		if config.MemoryKey == "" {
			return nil, fmt.Errorf("shm MemoryKey is required")
		}
		return shm.NewMemory(config.MemoryKey, size, true), nil
	case MMAP:
		if config.MemoryKey == "" {
			return nil, fmt.Errorf("mmap MemoryKey is required")
		}
		return mmap.NewMemory(config.MemoryKey, size), nil
	default:
		return nil, fmt.Errorf("MemoryType: %d not support", config.MemoryType)
	}
}
