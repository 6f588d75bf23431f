package vec

import (
	"fmt"

	"vec/internal/rawbuf"
)

// Reserve grows the capacity to exactly n. It is a no-op when n does
// not exceed the current capacity; capacity never shrinks. Length,
// element values and element order are unchanged either way, and on
// failure the vector is untouched.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.buf.Cap() {
		return nil
	}
	return v.regrow(n, "reserve")
}

// Resize sets the length to n. Shrinking disposes the excess tail and
// keeps the capacity. Growing reserves capacity as needed and builds
// the new tail with the New hook; if that fails, the tail elements
// built so far are disposed and the length is unchanged, though
// capacity gained along the way is kept.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic("vec: negative length")
	}
	if n <= v.n {
		v.fns.disposeRange(v.buf.Slice(n, v.n))
		v.n = n
		return nil
	}
	if n > v.buf.Cap() {
		if err := v.regrow(n, "resize"); err != nil {
			return err
		}
	}
	if err := v.constructTail(v.buf.Slice(v.n, n)); err != nil {
		return fmt.Errorf("vec: resize %d: %w", n, err)
	}
	v.n = n
	return nil
}

// constructTail fills the vacant slots of tail with fresh elements,
// disposing the partial batch on failure. With a nil New hook the
// slots already hold the zero value and nothing runs.
func (v *Vector[T]) constructTail(tail []T) error {
	if v.fns.New == nil {
		return nil
	}
	for i := range tail {
		e, err := v.fns.newElem()
		if err != nil {
			v.fns.disposeRange(tail[:i])
			return fmt.Errorf("%w: %w", ErrConstruct, err)
		}
		tail[i] = e
	}
	return nil
}

// regrow allocates a block of capacity n, relocates the live elements
// into it and swaps it in. Any failure drops the new block and leaves
// v as it was, except that a failing fallible transfer is undone only
// best effort.
func (v *Vector[T]) regrow(n int, op string) error {
	nb, err := rawbuf.New[T](n)
	if err != nil {
		return fmt.Errorf("vec: %s: %w: %w", op, ErrAlloc, err)
	}
	if err := v.relocate(nb.Slice(0, v.n), v.buf.Slice(0, v.n)); err != nil {
		nb.Release()
		return fmt.Errorf("vec: %s: %w", op, err)
	}
	v.settle(&nb)
	return nil
}

// relocate populates the vacant dst slots from the live src slots,
// consuming src when transfers cannot fail (or when the type is
// move-only) and duplicating it otherwise. On failure dst holds no
// live elements; src is untouched on the duplicating arm and restored
// best effort on the consuming arm.
func (v *Vector[T]) relocate(dst, src []T) error {
	if v.fns.cloneOnRelocate() {
		return v.cloneInto(dst, src)
	}
	return v.transferInto(dst, src)
}

// settle completes a successful relocation: the populated block is
// swapped in and the old block released. After a consuming relocation
// the old slots are already vacant; after a duplicating one the
// originals are still live and get disposed here.
func (v *Vector[T]) settle(nb *rawbuf.Buffer[T]) {
	v.buf.Swap(nb)
	if v.fns.cloneOnRelocate() {
		v.fns.disposeRange(nb.Slice(0, v.n))
	}
	nb.Release()
}

// transferInto consumes src into dst slot by slot. With a nil
// Transfer hook this is a bulk copy plus reset and cannot fail. A
// failing hook mid-sequence moves the elements taken so far back
// best effort, so src stays a valid sequence.
func (v *Vector[T]) transferInto(dst, src []T) error {
	if v.fns.Transfer == nil {
		copy(dst, src)
		clear(src)
		return nil
	}
	for i := range src {
		e, err := v.fns.Transfer(&src[i])
		if err != nil {
			v.restore(src[:i], dst[:i])
			return fmt.Errorf("%w: %w", ErrConstruct, err)
		}
		dst[i] = e
	}
	return nil
}

// cloneInto duplicates src into dst slot by slot, leaving src live
// and unchanged. On failure the clones built so far are disposed.
func (v *Vector[T]) cloneInto(dst, src []T) error {
	if v.fns.Clone == nil && !v.fns.NoClone {
		copy(dst, src)
		return nil
	}
	for i := range src {
		e, err := v.fns.clone(&src[i])
		if err != nil {
			v.fns.disposeRange(dst[:i])
			return fmt.Errorf("%w: %w", ErrConstruct, err)
		}
		dst[i] = e
	}
	return nil
}

// restore moves relocated elements back to their source slots in
// reverse order, best effort: a slot whose transfer back fails is
// left at the zero value.
func (v *Vector[T]) restore(src, dst []T) {
	for j := len(dst) - 1; j >= 0; j-- {
		if e, err := v.fns.transfer(&dst[j]); err == nil {
			src[j] = e
		}
	}
}
