package fixedalloc

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_Alloc(t *testing.T) {
	arena, err := NewArena(64, nil)
	require.NoError(t, err)
	defer arena.Close()

	b1, err := arena.Alloc(16)
	assert.NoError(t, err)
	assert.Len(t, b1, 16)

	b2, err := arena.Alloc(16)
	assert.NoError(t, err)

	b3, err := arena.Alloc(32)
	assert.NoError(t, err)

	// regions are adjacent and pairwise non-overlapping
	p1 := uintptr(unsafe.Pointer(unsafe.SliceData(b1)))
	p2 := uintptr(unsafe.Pointer(unsafe.SliceData(b2)))
	p3 := uintptr(unsafe.Pointer(unsafe.SliceData(b3)))
	assert.Equal(t, p1+16, p2)
	assert.Equal(t, p2+16, p3)

	// arena is full now
	_, err = arena.Alloc(1)
	assert.ErrorIs(t, err, ErrNoSpace)
	assert.Equal(t, uint64(64), arena.Used())
}

func TestArena_AllocZeroFilled(t *testing.T) {
	arena, err := NewArena(128, nil)
	require.NoError(t, err)
	defer arena.Close()

	b, err := arena.Alloc(128)
	require.NoError(t, err)
	for i := range b {
		assert.Zero(t, b[i])
	}
}

func TestArena_AllocOverCapacity(t *testing.T) {
	arena, err := NewArena(32, nil)
	require.NoError(t, err)
	defer arena.Close()

	_, err = arena.Alloc(33)
	assert.ErrorIs(t, err, ErrNoSpace)

	// huge sizes must fail without wrapping the bounds math
	_, err = arena.Alloc(math.MaxUint64)
	assert.ErrorIs(t, err, ErrNoSpace)
	assert.Equal(t, uint64(0), arena.Used())

	_, err = arena.Alloc(32)
	assert.NoError(t, err)
	_, err = arena.Alloc(math.MaxUint64)
	assert.ErrorIs(t, err, ErrNoSpace)
}

func TestArena_Reset(t *testing.T) {
	arena, err := NewArena(64, nil)
	require.NoError(t, err)
	defer arena.Close()

	_, err = arena.Alloc(64)
	require.NoError(t, err)
	_, err = arena.Alloc(1)
	require.ErrorIs(t, err, ErrNoSpace)

	arena.Reset()
	assert.Equal(t, uint64(0), arena.Used())

	b, err := arena.Alloc(64)
	assert.NoError(t, err)
	assert.Len(t, b, 64)

	// reset with no intervening allocations is idempotent
	arena.Reset()
	arena.Reset()
	assert.Equal(t, uint64(0), arena.Used())
}

func TestArena_ZeroCapacity(t *testing.T) {
	arena, err := NewArena(0, nil)
	require.NoError(t, err)
	defer arena.Close()

	_, err = arena.Alloc(1)
	assert.ErrorIs(t, err, ErrNoSpace)

	b, err := arena.Alloc(0)
	assert.NoError(t, err)
	assert.Len(t, b, 0)
}

func TestArena_Close(t *testing.T) {
	arena, err := NewArena(64, nil)
	require.NoError(t, err)

	assert.NoError(t, arena.Close())

	_, err = arena.Alloc(1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.NotPanics(t, func() { arena.Reset() })

	// idempotent
	assert.NoError(t, arena.Close())
}

func TestArena_Stats(t *testing.T) {
	arena, err := NewArena(100, nil)
	require.NoError(t, err)
	defer arena.Close()

	assert.Equal(t, uint64(100), arena.Capacity())
	assert.Equal(t, uint64(100), arena.Available())
	assert.Equal(t, float64(0), arena.Utilization())

	_, err = arena.Alloc(25)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), arena.Used())
	assert.Equal(t, uint64(75), arena.Available())
	assert.Equal(t, 0.25, arena.Utilization())
}
