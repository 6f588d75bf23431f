package rawbuf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZeroCapacity(t *testing.T) {
	b, err := New[int](0)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Cap())
	assert.Empty(t, b.Slice(0, 0))
}

func TestNewAllocatesExactCapacity(t *testing.T) {
	b, err := New[string](7)
	require.NoError(t, err)
	assert.Equal(t, 7, b.Cap())
}

func TestNewNegativeCapacityPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = New[int](-1)
	})
}

func TestNewOverflowingCapacity(t *testing.T) {
	type wide struct {
		_ [1 << 15]byte
	}
	// Enough slots of a 32 KiB element to overflow the address space.
	_, err := New[wide](math.MaxInt>>15 + 1)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestSlotAddressesAreStable(t *testing.T) {
	b, err := New[int](4)
	require.NoError(t, err)

	p := b.Slot(2)
	*p = 42
	assert.Equal(t, 42, *b.Slot(2))
	assert.Same(t, p, b.Slot(2))
}

func TestSlotOutOfRangePanics(t *testing.T) {
	b, err := New[int](3)
	require.NoError(t, err)

	assert.Panics(t, func() { b.Slot(3) })
	assert.Panics(t, func() { b.Slot(-1) })
}

func TestSliceViewsBlock(t *testing.T) {
	b, err := New[int](5)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		*b.Slot(i) = i * 10
	}

	s := b.Slice(1, 4)
	require.Len(t, s, 3)
	assert.Equal(t, []int{10, 20, 30}, s)

	// The view aliases the block, it does not copy it.
	s[0] = 99
	assert.Equal(t, 99, *b.Slot(1))

	// One past the end is a valid bound.
	assert.Len(t, b.Slice(0, 5), 5)
	assert.Empty(t, b.Slice(5, 5))
}

func TestSliceBadBoundsPanic(t *testing.T) {
	b, err := New[int](3)
	require.NoError(t, err)

	assert.Panics(t, func() { b.Slice(-1, 2) })
	assert.Panics(t, func() { b.Slice(2, 1) })
	assert.Panics(t, func() { b.Slice(0, 4) })
}

func TestSwapExchangesBlocks(t *testing.T) {
	a, err := New[int](2)
	require.NoError(t, err)
	b, err := New[int](6)
	require.NoError(t, err)
	*a.Slot(0) = 1
	*b.Slot(0) = 9

	a.Swap(&b)

	assert.Equal(t, 6, a.Cap())
	assert.Equal(t, 2, b.Cap())
	assert.Equal(t, 9, *a.Slot(0))
	assert.Equal(t, 1, *b.Slot(0))
}

func TestMoveTransfersOwnership(t *testing.T) {
	a, err := New[int](3)
	require.NoError(t, err)
	*a.Slot(1) = 7

	b := a.Move()

	assert.Equal(t, 0, a.Cap())
	assert.Equal(t, 3, b.Cap())
	assert.Equal(t, 7, *b.Slot(1))
}

func TestReleaseDropsBlock(t *testing.T) {
	b, err := New[int](3)
	require.NoError(t, err)

	b.Release()
	assert.Equal(t, 0, b.Cap())

	// Releasing an already empty buffer is fine.
	b.Release()
	assert.Equal(t, 0, b.Cap())
}
