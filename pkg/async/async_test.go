package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/pkg/async"
)

func TestGoRunsConcurrently(t *testing.T) {
	t.Parallel()

	var running atomic.Int32
	release := make(chan struct{})
	fn := func(ctx context.Context) (int32, error) {
		n := running.Add(1)
		<-release
		return n, nil
	}

	ctx := context.Background()
	a := async.Go(ctx, fn)
	b := async.Go(ctx, fn)

	require.Eventually(t, func() bool { return running.Load() == 2 }, time.Second, time.Millisecond)
	close(release)

	vals, err := async.WaitAll(ctx, a, b)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int32{1, 2}, vals)
}

func TestAwaitErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	f := async.Go(context.Background(), func(context.Context) (string, error) { return "", boom })
	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, boom)

	p := async.Go(context.Background(), func(context.Context) (string, error) { panic("bad") })
	_, err = p.Await(context.Background())
	assert.ErrorIs(t, err, async.ErrPanic)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	c := async.Go(cancelled, func(context.Context) (int, error) { return 1, nil })
	_, err = c.Await(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAwaitContextDeadline(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	f := async.Go(context.Background(), func(context.Context) (int, error) {
		<-block
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
