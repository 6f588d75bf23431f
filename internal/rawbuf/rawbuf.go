// Package rawbuf provides the raw storage block under a vector: one
// contiguous run of element slots at a fixed capacity, with no notion
// of which slots hold live values.
//
// A Buffer only allocates, addresses and releases slots. Tracking
// liveness, constructing into slots and vacating them is entirely the
// owner's job, which is what keeps this layer free of element
// semantics.
package rawbuf

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// ErrTooLarge is returned when a requested capacity cannot be
// addressed: the block's byte size would overflow the address space.
var ErrTooLarge = errors.New("allocation too large")

// Buffer owns one contiguous block of element slots. It is move-only:
// hand it over with Move or Swap, never by struct assignment, which
// would alias the block.
type Buffer[T any] struct {
	slots []T
}

// New allocates a block of exactly capacity slots. Capacity zero
// yields the empty Buffer without allocating anything. A negative
// capacity is a caller bug and panics. A capacity whose byte size
// cannot be addressed fails with ErrTooLarge and allocates nothing.
func New[T any](capacity int) (Buffer[T], error) {
	if capacity < 0 {
		panic("rawbuf: negative capacity")
	}
	if capacity == 0 {
		return Buffer[T]{}, nil
	}
	var zero T
	if esz := unsafe.Sizeof(zero); esz > 0 && uintptr(capacity) > math.MaxInt/esz {
		return Buffer[T]{}, fmt.Errorf("%w: %d slots of %d bytes", ErrTooLarge, capacity, esz)
	}
	return Buffer[T]{slots: make([]T, capacity)}, nil
}

// Cap returns the slot capacity of the block.
func (b *Buffer[T]) Cap() int {
	return len(b.slots)
}

// Slot returns the address of slot i. i must be below Cap.
func (b *Buffer[T]) Slot(i int) *T {
	if i < 0 || i >= len(b.slots) {
		panic("rawbuf: slot index out of range")
	}
	return &b.slots[i]
}

// Slice returns the slots in [i, j) as a view into the block. j may
// equal Cap: the one-past-end position exists for range arithmetic,
// exactly like an end pointer.
func (b *Buffer[T]) Slice(i, j int) []T {
	if i < 0 || j < i || j > len(b.slots) {
		panic("rawbuf: slice bounds out of range")
	}
	return b.slots[i:j]
}

// Swap exchanges the blocks of b and other in O(1). Never fails.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	b.slots, other.slots = other.slots, b.slots
}

// Move transfers block ownership to the returned Buffer and leaves b
// at zero capacity.
func (b *Buffer[T]) Move() Buffer[T] {
	nb := Buffer[T]{slots: b.slots}
	b.slots = nil
	return nb
}

// Release drops the block and returns b to zero capacity. The owner
// must have vacated any live elements beforehand; Release runs no
// element teardown of its own.
func (b *Buffer[T]) Release() {
	b.slots = nil
}
