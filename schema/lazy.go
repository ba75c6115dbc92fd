package schema

import (
	"context"
	"sync"
)

// Lazy is a resolver result whose computation is deferred until the executor
// is ready to complete it, per spec §4.C/§6.3. A resolver may return a Lazy
// in place of a concrete value; completion calls Resolve exactly once before
// inspecting Value/Err.
//
// No example in the corpus names a type with this shape (SPEC_FULL.md §3
// notes the gap); the sync.Once-guarded force is
// original engineering built in the idiom of the teacher's own singleton
// patterns (schemabuilder/validator.go's NewValidate), which is the closest
// grounded precedent for "run this exactly once, cache the result".
type Lazy interface {
	// Resolve forces the deferred computation. Safe to call more than once;
	// only the first call does work.
	Resolve(ctx context.Context) error

	// Value returns the forced result. Only meaningful after Resolve returns
	// a nil error.
	Value() interface{}

	// Err returns the forced error, if any. Only meaningful after Resolve
	// has been called.
	Err() error
}

// lazyValue is the concrete Lazy backing a deferred resolver call.
type lazyValue struct {
	once  sync.Once
	fn    func(ctx context.Context) (interface{}, error)
	value interface{}
	err   error
}

// NewLazy wraps fn as a Lazy, deferring its execution until Resolve is
// called by the executor.
func NewLazy(fn func(ctx context.Context) (interface{}, error)) Lazy {
	return &lazyValue{fn: fn}
}

func (l *lazyValue) Resolve(ctx context.Context) error {
	l.once.Do(func() {
		l.value, l.err = l.fn(ctx)
	})
	return l.err
}

func (l *lazyValue) Value() interface{} { return l.value }
func (l *lazyValue) Err() error         { return l.err }

// ForceLazy forces v if it is a Lazy, returning its resolved value and error;
// otherwise it returns v unchanged. Completion code (execution/complete.go)
// calls this on every resolver result before dispatching on the field's
// declared type, so a Lazy is never mistaken for its own wrapped type.
func ForceLazy(ctx context.Context, v interface{}) (interface{}, error) {
	lz, ok := v.(Lazy)
	if !ok {
		return v, nil
	}
	if err := lz.Resolve(ctx); err != nil {
		return nil, err
	}
	return lz.Value(), nil
}
