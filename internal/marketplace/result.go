package marketplace

import (
	"context"
	"sync"
)

// Result is a one-shot asynchronous outcome: it resolves exactly once
// with either a value or an error, and is not restartable.
type Result[T any] struct {
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

func newResult[T any]() *Result[T] {
	return &Result[T]{done: make(chan struct{})}
}

func (r *Result[T]) resolve(v T) {
	r.once.Do(func() {
		r.val = v
		close(r.done)
	})
}

func (r *Result[T]) fail(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Done is closed once the result has settled.
func (r *Result[T]) Done() <-chan struct{} { return r.done }

// Wait blocks until the result settles or the context is cancelled.
func (r *Result[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func failed[T any](err error) *Result[T] {
	r := newResult[T]()
	r.fail(err)
	return r
}
