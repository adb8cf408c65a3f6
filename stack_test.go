package fixedalloc

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_AllocPop(t *testing.T) {
	stack, err := NewStack(64, nil)
	require.NoError(t, err)
	defer stack.Close()

	_, err = stack.Alloc(10)
	require.NoError(t, err)
	_, err = stack.Alloc(20)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), stack.Used())

	// LIFO: peel the last allocation back off by byte count
	assert.True(t, stack.Pop(20))
	assert.Equal(t, uint64(10), stack.Used())

	// popping more than is allocated fails and changes nothing
	assert.False(t, stack.Pop(11))
	assert.Equal(t, uint64(10), stack.Used())

	assert.True(t, stack.Pop(10))
	assert.Equal(t, uint64(0), stack.Used())
	assert.False(t, stack.Pop(1))
}

func TestStack_PopZero(t *testing.T) {
	stack, err := NewStack(16, nil)
	require.NoError(t, err)
	defer stack.Close()

	assert.True(t, stack.Pop(0))
	assert.Equal(t, uint64(0), stack.Used())
}

func TestStack_AllocOverCapacity(t *testing.T) {
	stack, err := NewStack(16, nil)
	require.NoError(t, err)
	defer stack.Close()

	_, err = stack.Alloc(17)
	assert.ErrorIs(t, err, ErrNoSpace)

	_, err = stack.Alloc(8)
	require.NoError(t, err)

	// cursor+size may not wrap for any size
	_, err = stack.Alloc(math.MaxUint64)
	assert.ErrorIs(t, err, ErrNoSpace)
	assert.Equal(t, uint64(8), stack.Used())
}

func TestStack_ReuseAfterPop(t *testing.T) {
	stack, err := NewStack(32, nil)
	require.NoError(t, err)
	defer stack.Close()

	b1, err := stack.Alloc(32)
	require.NoError(t, err)
	require.True(t, stack.Pop(32))

	// popped bytes are allocatable again, at the same address
	b2, err := stack.Alloc(32)
	require.NoError(t, err)
	assert.Equal(t,
		uintptr(unsafe.Pointer(unsafe.SliceData(b1))),
		uintptr(unsafe.Pointer(unsafe.SliceData(b2))))
}

func TestStack_NonOverlapping(t *testing.T) {
	stack, err := NewStack(64, nil)
	require.NoError(t, err)
	defer stack.Close()

	var prevEnd uintptr
	for _, size := range []uint64{8, 16, 8, 32} {
		b, err := stack.Alloc(size)
		require.NoError(t, err)
		addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
		if prevEnd != 0 {
			assert.Equal(t, prevEnd, addr)
		}
		prevEnd = addr + uintptr(size)
	}
}

func TestStack_ZeroCapacity(t *testing.T) {
	stack, err := NewStack(0, nil)
	require.NoError(t, err)
	defer stack.Close()

	_, err = stack.Alloc(1)
	assert.ErrorIs(t, err, ErrNoSpace)

	b, err := stack.Alloc(0)
	assert.NoError(t, err)
	assert.Len(t, b, 0)
	assert.False(t, stack.Pop(1))
}

func TestStack_Close(t *testing.T) {
	stack, err := NewStack(16, nil)
	require.NoError(t, err)

	_, err = stack.Alloc(8)
	require.NoError(t, err)

	assert.NoError(t, stack.Close())
	_, err = stack.Alloc(1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, stack.Pop(8))
	assert.NoError(t, stack.Close())
}
