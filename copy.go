package vec

import (
	"fmt"

	"vec/internal/rawbuf"
)

// Clone returns an independent duplicate of v with capacity equal to
// its length. Every element is duplicated through the Clone hook, so
// mutating either vector never affects the other. All or nothing: on
// failure the clones built so far are disposed and nothing is
// returned. Vectors of NoClone types fail with ErrNoClone.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	if v.fns.NoClone {
		return nil, fmt.Errorf("vec: clone: %w", ErrNoClone)
	}
	buf, err := rawbuf.New[T](v.n)
	if err != nil {
		return nil, fmt.Errorf("vec: clone: %w: %w", ErrAlloc, err)
	}
	if err := v.cloneInto(buf.Slice(0, v.n), v.buf.Slice(0, v.n)); err != nil {
		buf.Release()
		return nil, fmt.Errorf("vec: clone: %w", err)
	}
	return &Vector[T]{buf: buf, n: v.n, fns: v.fns}, nil
}

// CopyFrom makes v element-wise equal to other, duplicating every
// live element; other is never changed. Both vectors are expected to
// manage their elements with equivalent funcs.
//
// When other's length exceeds v's capacity the copy is built aside
// and then replaces the old contents, so any failure leaves v
// untouched. Otherwise the
// overlap is reassigned in place and the tail cloned on or disposed;
// a failure there leaves a valid vector of the old length whose
// leading elements may already equal other's (weak). Vectors of
// NoClone types fail with ErrNoClone.
func (v *Vector[T]) CopyFrom(other *Vector[T]) error {
	if v == other {
		return nil
	}
	if v.fns.NoClone {
		return fmt.Errorf("vec: copy from: %w", ErrNoClone)
	}

	if other.n > v.buf.Cap() {
		buf, err := rawbuf.New[T](other.n)
		if err != nil {
			return fmt.Errorf("vec: copy from: %w: %w", ErrAlloc, err)
		}
		if err := v.cloneInto(buf.Slice(0, other.n), other.buf.Slice(0, other.n)); err != nil {
			buf.Release()
			return fmt.Errorf("vec: copy from: %w", err)
		}
		old := v.buf.Move()
		oldN := v.n
		v.buf = buf
		v.n = other.n
		v.fns.disposeRange(old.Slice(0, oldN))
		old.Release()
		return nil
	}

	m := min(v.n, other.n)
	if v.fns.Clone == nil && v.fns.Dispose == nil {
		copy(v.buf.Slice(0, m), other.buf.Slice(0, m))
	} else {
		for i := 0; i < m; i++ {
			e, err := v.fns.clone(other.buf.Slot(i))
			if err != nil {
				return fmt.Errorf("vec: copy from: %w: %w", ErrAssign, err)
			}
			v.fns.dispose(v.buf.Slot(i))
			*v.buf.Slot(i) = e
		}
	}
	if other.n > v.n {
		if err := v.cloneInto(v.buf.Slice(v.n, other.n), other.buf.Slice(v.n, other.n)); err != nil {
			return fmt.Errorf("vec: copy from: %w", err)
		}
	} else {
		v.fns.disposeRange(v.buf.Slice(other.n, v.n))
	}
	v.n = other.n
	return nil
}
