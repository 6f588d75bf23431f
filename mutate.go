package vec

import (
	"fmt"

	"vec/internal/rawbuf"
)

// Append places x at the end and returns its address. The vector
// takes ownership of x on success; on failure the caller keeps it and
// the vector is untouched. Amortized O(1): at capacity the storage
// doubles (or becomes 1 from empty), x is written into its final slot
// in the new block first and the live elements are relocated after
// it, so a relocation failure never needs to unwind x.
func (v *Vector[T]) Append(x T) (*T, error) {
	switch {
	case v.buf.Cap() == 0:
		if err := v.regrow(1, "append"); err != nil {
			return nil, err
		}
	case v.n == v.buf.Cap():
		nb, err := rawbuf.New[T](v.n * 2)
		if err != nil {
			return nil, fmt.Errorf("vec: append: %w: %w", ErrAlloc, err)
		}
		*nb.Slot(v.n) = x
		if err := v.relocate(nb.Slice(0, v.n), v.buf.Slice(0, v.n)); err != nil {
			// x is dropped with the block, not disposed: the caller
			// still owns it.
			nb.Release()
			return nil, fmt.Errorf("vec: append: %w", err)
		}
		v.settle(&nb)
		p := v.buf.Slot(v.n)
		v.n++
		return p, nil
	}
	p := v.buf.Slot(v.n)
	*p = x
	v.n++
	return p, nil
}

// Insert places x at position i, shifting the elements from i on one
// slot up, and returns the new element's address. i may equal Len,
// which appends. The vector takes ownership of x on success; on
// failure the caller keeps it.
//
// When growth is needed the operation is all or nothing. The in-place
// path is weaker: a transfer failing mid-shift loses the last
// element, leaves already-shifted elements in place and reports with
// the length unchanged. The vector stays valid and correctly sized.
func (v *Vector[T]) Insert(i int, x T) (*T, error) {
	if i < 0 || i > v.n {
		panic("vec: insert position out of range")
	}
	if i == v.n {
		return v.Append(x)
	}
	if v.n == v.buf.Cap() {
		return v.insertGrow(i, x)
	}
	return v.insertShift(i, x)
}

// insertGrow inserts into a doubled block: x goes into its final slot
// first, then the elements before i keep their offsets and the rest
// land one slot later.
func (v *Vector[T]) insertGrow(i int, x T) (*T, error) {
	nb, err := rawbuf.New[T](v.n * 2)
	if err != nil {
		return nil, fmt.Errorf("vec: insert: %w: %w", ErrAlloc, err)
	}
	*nb.Slot(i) = x
	if err := v.relocateSplit(&nb, i); err != nil {
		nb.Release()
		return nil, fmt.Errorf("vec: insert: %w", err)
	}
	v.settle(&nb)
	p := v.buf.Slot(i)
	v.n++
	return p, nil
}

// relocateSplit relocates the live elements around an element already
// sitting in slot i of nb: [0, i) keeps its offsets, [i, n) lands one
// slot later. A failure in either range unwinds the other per the
// relocation rule, so the current block stays the intact home of
// every element (best effort for fallible transfers).
func (v *Vector[T]) relocateSplit(nb *rawbuf.Buffer[T], i int) error {
	var (
		srcHead = v.buf.Slice(0, i)
		srcTail = v.buf.Slice(i, v.n)
		dstHead = nb.Slice(0, i)
		dstTail = nb.Slice(i+1, v.n+1)
	)
	if v.fns.cloneOnRelocate() {
		if err := v.cloneInto(dstHead, srcHead); err != nil {
			return err
		}
		if err := v.cloneInto(dstTail, srcTail); err != nil {
			v.fns.disposeRange(dstHead)
			return err
		}
		return nil
	}
	if err := v.transferInto(dstHead, srcHead); err != nil {
		return err
	}
	if err := v.transferInto(dstTail, srcTail); err != nil {
		v.restore(srcHead, dstHead)
		return err
	}
	return nil
}

// insertShift inserts without reallocating; a free slot past the end
// is guaranteed by the caller. The last element is first moved into
// that slot, then [i, n-1) shifts one up back to front so reads never
// chase writes, leaving slot i vacant for x. The seeding excludes the
// last element from the shift: moving it again would plant its
// vacated shell on top of the seeded slot.
func (v *Vector[T]) insertShift(i int, x T) (*T, error) {
	if v.fns.Transfer == nil {
		s := v.buf.Slice(0, v.n+1)
		copy(s[i+1:], s[i:v.n])
		s[i] = x
		v.n++
		return &s[i], nil
	}

	seed, err := v.fns.Transfer(v.buf.Slot(v.n - 1))
	if err != nil {
		return nil, fmt.Errorf("vec: insert: %w: %w", ErrConstruct, err)
	}
	*v.buf.Slot(v.n) = seed
	for j := v.n - 1; j > i; j-- {
		e, err := v.fns.Transfer(v.buf.Slot(j - 1))
		if err != nil {
			// Weak guarantee. Shifted elements stay shifted and the
			// failed source slot's vacated twin keeps the zero
			// value; only the seeded one-past-end slot is taken
			// back down.
			v.fns.dispose(v.buf.Slot(v.n))
			return nil, fmt.Errorf("vec: insert: %w: %w", ErrAssign, err)
		}
		*v.buf.Slot(j) = e
	}
	p := v.buf.Slot(i)
	*p = x
	v.n++
	return p, nil
}

// Remove deletes element i, disposing it and shifting the elements
// after it one slot down, so the element that followed ends up at
// index i. Weak guarantee: a transfer failing mid-shift leaves a
// valid, correctly sized vector with a partially shifted tail.
func (v *Vector[T]) Remove(i int) error {
	if i < 0 || i >= v.n {
		panic("vec: remove position out of range")
	}
	if v.fns.Transfer == nil && v.fns.Dispose == nil {
		s := v.buf.Slice(0, v.n)
		copy(s[i:], s[i+1:])
		clear(s[v.n-1:])
		v.n--
		return nil
	}

	v.fns.dispose(v.buf.Slot(i))
	for j := i; j < v.n-1; j++ {
		e, err := v.fns.transfer(v.buf.Slot(j + 1))
		if err != nil {
			return fmt.Errorf("vec: remove: %w: %w", ErrAssign, err)
		}
		*v.buf.Slot(j) = e
	}
	v.n--
	return nil
}

// Pop removes the last element and returns it, handing its ownership
// to the caller. The value moves out by plain assignment, no hook
// runs and nothing can fail. Panics on an empty vector.
func (v *Vector[T]) Pop() T {
	if v.n == 0 {
		panic("vec: pop on empty vector")
	}
	p := v.buf.Slot(v.n - 1)
	e := *p
	var zero T
	*p = zero
	v.n--
	return e
}
