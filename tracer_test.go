package vec

import "errors"

var errBoom = errors.New("boom")

// tracer is a test element whose hooks report to a shared fuse, so
// tests can count hook traffic and fail chosen invocations.
type tracer struct {
	id int
	f  *fuse
}

// fuse counts hook invocations for a batch of tracer elements. live
// tracks constructions minus disposals: after releasing the vector
// and discarding caller-held values, a leak-free run ends at zero.
type fuse struct {
	news, clones, transfers, disposes int
	live                              int

	failNew      func(call int) bool
	failClone    func(call int) bool
	failTransfer func(call int) bool
}

// on fails exactly the nth call, 1-based.
func on(n int) func(int) bool {
	return func(call int) bool { return call == n }
}

// from fails every call from the nth on.
func from(n int) func(int) bool {
	return func(call int) bool { return call >= n }
}

// make hands out a caller-owned element, counted live until disposed
// or discarded.
func (f *fuse) make(id int) tracer {
	f.live++
	return tracer{id: id, f: f}
}

// discard balances the books for a value the vector never took or
// gave back.
func (f *fuse) discard(tracer) {
	f.live--
}

func (f *fuse) funcs() Funcs[tracer] {
	return Funcs[tracer]{
		New: func() (tracer, error) {
			f.news++
			if f.failNew != nil && f.failNew(f.news) {
				return tracer{}, errBoom
			}
			f.live++
			return tracer{id: f.news, f: f}, nil
		},
		Clone: func(src *tracer) (tracer, error) {
			f.clones++
			if f.failClone != nil && f.failClone(f.clones) {
				return tracer{}, errBoom
			}
			f.live++
			return tracer{id: src.id, f: f}, nil
		},
		Transfer: func(src *tracer) (tracer, error) {
			f.transfers++
			if f.failTransfer != nil && f.failTransfer(f.transfers) {
				return tracer{}, errBoom
			}
			e := *src
			*src = tracer{}
			return e, nil
		},
		Dispose: func(src *tracer) {
			if src.f != nil {
				f.disposes++
				f.live--
			}
		},
		FallibleTransfer: true,
	}
}

// safeFuncs marks transfers infallible, which lets relocation consume
// elements instead of duplicating them.
func (f *fuse) safeFuncs() Funcs[tracer] {
	fns := f.funcs()
	fns.FallibleTransfer = false
	return fns
}

// moveOnlyFuncs declares a fallible move-only element type.
func (f *fuse) moveOnlyFuncs() Funcs[tracer] {
	fns := f.funcs()
	fns.Clone = nil
	fns.NoClone = true
	return fns
}

// ids snapshots the id sequence; vacated shells read as zero.
func ids(v *Vector[tracer]) []int {
	out := make([]int, 0, v.Len())
	v.Walk(func(_ int, el *tracer) bool {
		out = append(out, el.id)
		return true
	})
	return out
}
