package async

import (
	"context"
	"errors"
	"fmt"
)

var ErrPanic = errors.New("async: function panicked")

// Future holds the eventual result of a function started by Go.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Go starts fn in a goroutine. A panic in fn is returned as ErrPanic.
func Go[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx)
	}()
	return f
}

// Await blocks until the function returns or ctx is done.
func (f *Future[U]) Await(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done is closed once the result is available.
func (f *Future[U]) Done() <-chan struct{} { return f.done }

// WaitAll awaits every future and returns the first error in argument order.
func WaitAll[U any](ctx context.Context, futures ...*Future[U]) ([]U, error) {
	out := make([]U, len(futures))
	for i, f := range futures {
		v, err := f.Await(ctx)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}
