package vec

import (
	"fmt"
	"strings"

	"vec/internal/rawbuf"
)

// Vector is a contiguous growable sequence of T.
//
// Slots [0, Len) hold live elements, slots [Len, Cap) are vacant and
// kept at the zero value. The zero Vector is empty with plain element
// semantics and ready to use. A Vector owns its storage exclusively:
// share it by pointer or hand it over with Take or Swap, never by
// struct assignment.
type Vector[T any] struct {
	buf rawbuf.Buffer[T]
	n   int
	fns Funcs[T]
}

// New returns an empty vector with plain element semantics.
func New[T any]() *Vector[T] {
	return &Vector[T]{}
}

// NewWith returns an empty vector managing elements through fns.
// Contradictory declarations in fns panic.
func NewWith[T any](fns Funcs[T]) *Vector[T] {
	fns.validate()
	return &Vector[T]{fns: fns}
}

// NewLen returns a vector of n zero-value elements with capacity
// exactly n.
func NewLen[T any](n int) (*Vector[T], error) {
	return NewLenWith(n, Funcs[T]{})
}

// NewLenWith returns a vector of n elements built by fns.New, with
// capacity exactly n. All or nothing: if any construction fails, the
// elements built so far are disposed, the storage is dropped and no
// vector is returned.
func NewLenWith[T any](n int, fns Funcs[T]) (*Vector[T], error) {
	fns.validate()
	v := &Vector[T]{fns: fns}
	buf, err := rawbuf.New[T](n)
	if err != nil {
		return nil, fmt.Errorf("vec: new len %d: %w: %w", n, ErrAlloc, err)
	}
	v.buf = buf
	if err := v.constructTail(v.buf.Slice(0, n)); err != nil {
		v.buf.Release()
		return nil, fmt.Errorf("vec: new len %d: %w", n, err)
	}
	v.n = n
	return v, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.n
}

// Cap returns the slot capacity of the current storage.
func (v *Vector[T]) Cap() int {
	return v.buf.Cap()
}

// At returns the address of element i. The address stays valid until
// the next mutation that grows or shifts the vector. i must be below
// Len.
func (v *Vector[T]) At(i int) *T {
	if i < 0 || i >= v.n {
		panic("vec: index out of range")
	}
	return v.buf.Slot(i)
}

// Set replaces element i with x, disposing the previous value. The
// vector takes ownership of x. i must be below Len.
func (v *Vector[T]) Set(i int, x T) {
	p := v.At(i)
	v.fns.dispose(p)
	*p = x
}

// Slice returns the live elements as a view into the storage. The
// view is invalidated by any mutation that grows or shifts the
// vector. Writing into the view bypasses the element funcs, so treat
// it as read-only when elements own resources.
func (v *Vector[T]) Slice() []T {
	return v.buf.Slice(0, v.n)
}

// Walk calls fn with the index and address of each live element in
// order, stopping early when fn returns false. fn may mutate the
// element through the pointer but must not mutate the vector.
func (v *Vector[T]) Walk(fn func(i int, el *T) bool) {
	for i := 0; i < v.n; i++ {
		if !fn(i, v.buf.Slot(i)) {
			return
		}
	}
}

// Swap exchanges contents, capacity and element funcs with other in
// O(1). No element is constructed, copied or disposed. Never fails.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.buf.Swap(&other.buf)
	v.n, other.n = other.n, v.n
	v.fns, other.fns = other.fns, v.fns
}

// Take transfers the whole contents to a new vector in O(1) and
// leaves v empty at zero capacity. No element is constructed, copied
// or disposed.
func (v *Vector[T]) Take() *Vector[T] {
	nv := &Vector[T]{buf: v.buf.Move(), n: v.n, fns: v.fns}
	v.n = 0
	return nv
}

// Clear disposes all live elements and sets the length to zero. The
// capacity is kept.
func (v *Vector[T]) Clear() {
	v.fns.disposeRange(v.buf.Slice(0, v.n))
	v.n = 0
}

// Release disposes all live elements and drops the storage, returning
// v to the zero-capacity empty state. For plain element types letting
// the vector go out of scope works just as well; with a Dispose hook
// Release is the explicit teardown.
func (v *Vector[T]) Release() {
	v.Clear()
	v.buf.Release()
}

// String renders length, capacity and the first elements for
// debugging.
func (v *Vector[T]) String() string {
	const shown = 8
	var b strings.Builder
	fmt.Fprintf(&b, "vec[%d/%d]{", v.n, v.buf.Cap())
	for i := 0; i < v.n; i++ {
		if i == shown {
			fmt.Fprintf(&b, " +%d more", v.n-i)
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", *v.buf.Slot(i))
	}
	b.WriteByte('}')
	return b.String()
}
