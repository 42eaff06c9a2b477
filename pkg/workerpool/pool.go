package workerpool

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/dmitrymomot/recipebox/pkg/logger"
)

var (
	ErrPoolFull   = errors.New("workerpool: pool is full")
	ErrPoolClosed = errors.New("workerpool: pool is closed")
)

type Config struct {
	Size       int           `env:"WORKER_POOL_SIZE" envDefault:"16"`
	JobTimeout time.Duration `env:"WORKER_JOB_TIMEOUT" envDefault:"10s"`
}

// Job is a unit of background work.
type Job func(ctx context.Context) error

// Pool wraps ants.Pool.
type Pool struct {
	pool    *ants.Pool
	timeout time.Duration
	log     *slog.Logger
}

type Option func(*Pool)

func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// New creates a non-blocking pool: Submit fails fast when all workers are busy.
func New(cfg Config, opts ...Option) (*Pool, error) {
	p := &Pool{
		timeout: cfg.JobTimeout,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.timeout <= 0 {
		p.timeout = 10 * time.Second
	}

	pool, err := ants.NewPool(max(cfg.Size, 1),
		ants.WithNonblocking(true),
		ants.WithExpiryDuration(time.Minute),
		ants.WithPanicHandler(func(v any) {
			p.log.Error("worker panic", slog.Any("panic", v), logger.Component("workerpool"))
		}),
	)
	if err != nil {
		return nil, err
	}
	p.pool = pool
	return p, nil
}

// Submit schedules job. name labels log lines. The job context keeps the
// values of ctx but not its cancellation.
func (p *Pool) Submit(ctx context.Context, name string, job Job) error {
	jobCtx := context.WithoutCancel(ctx)
	err := p.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(jobCtx, p.timeout)
		defer cancel()
		start := time.Now()
		if err := job(ctx); err != nil {
			p.log.ErrorContext(ctx, "background job failed",
				logger.Event(name), logger.Error(err), logger.Duration(time.Since(start)))
		}
	})
	switch {
	case errors.Is(err, ants.ErrPoolOverload):
		return ErrPoolFull
	case errors.Is(err, ants.ErrPoolClosed):
		return ErrPoolClosed
	}
	return err
}

// Running reports busy workers.
func (p *Pool) Running() int { return p.pool.Running() }

// Close waits up to timeout for running jobs.
func (p *Pool) Close(timeout time.Duration) error {
	return p.pool.ReleaseTimeout(timeout)
}
