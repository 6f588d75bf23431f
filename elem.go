package vec

// Funcs declares how a Vector manages elements of type T. The zero
// value gives plain value semantics: zero-value construction,
// assignment copies, and vacated slots reset to the zero value, all
// infallible. Hooks exist for element types that own resources or can
// fail mid-operation; the vector falls back to the plain behavior
// wherever a hook is nil.
type Funcs[T any] struct {
	// New builds a fresh element for length-extending operations.
	// nil means the zero value.
	New func() (T, error)

	// Clone duplicates *src into an independent element. *src stays
	// live and unchanged, even on failure. nil means an assignment
	// copy, which shares any memory the element references.
	Clone func(src *T) (T, error)

	// Transfer moves *src into the returned element and resets *src
	// to the zero value. On failure *src must be left unchanged.
	// nil means an assignment copy plus reset, which cannot fail.
	Transfer func(src *T) (T, error)

	// Dispose tears down *src. The vector resets the slot to the
	// zero value afterwards, so a nil hook means reset only.
	// Dispose must tolerate zero-value elements.
	Dispose func(src *T)

	// NoClone declares T impossible to duplicate. Clone must be nil;
	// Clone, CopyFrom and every other duplicating operation then
	// fail with ErrNoClone.
	NoClone bool

	// FallibleTransfer declares that Transfer can fail. Relocation
	// to a new block then duplicates elements instead of consuming
	// them, so a mid-sequence failure cannot strand half the
	// elements in a block about to be dropped.
	FallibleTransfer bool
}

// validate panics on contradictory declarations. Called once when the
// funcs are installed into a vector.
func (f *Funcs[T]) validate() {
	if f.NoClone && f.Clone != nil {
		panic("vec: Funcs declares NoClone but supplies Clone")
	}
	if f.FallibleTransfer && f.Transfer == nil {
		panic("vec: Funcs declares FallibleTransfer without Transfer")
	}
}

// cloneOnRelocate reports whether moving live elements to a new block
// must duplicate them rather than consume them. Only a fallible
// transfer forces the duplicating arm, and only if the type can be
// duplicated at all; for fallible move-only types the consuming arm
// is the sole option left.
func (f *Funcs[T]) cloneOnRelocate() bool {
	return f.FallibleTransfer && !f.NoClone
}

func (f *Funcs[T]) newElem() (T, error) {
	if f.New == nil {
		var zero T
		return zero, nil
	}
	return f.New()
}

func (f *Funcs[T]) clone(src *T) (T, error) {
	if f.NoClone {
		var zero T
		return zero, ErrNoClone
	}
	if f.Clone == nil {
		return *src, nil
	}
	return f.Clone(src)
}

func (f *Funcs[T]) transfer(src *T) (T, error) {
	if f.Transfer == nil {
		e := *src
		var zero T
		*src = zero
		return e, nil
	}
	return f.Transfer(src)
}

func (f *Funcs[T]) dispose(src *T) {
	if f.Dispose != nil {
		f.Dispose(src)
	}
	var zero T
	*src = zero
}

// disposeRange vacates every slot in s.
func (f *Funcs[T]) disposeRange(s []T) {
	if f.Dispose == nil {
		clear(s)
		return
	}
	for i := range s {
		f.dispose(&s[i])
	}
}
