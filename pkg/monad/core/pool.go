package core

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"github.com/ib-77/monad3/pkg/monad"
	"golang.org/x/sync/semaphore"
)

// Job is a unit of work run by a Pool
type Job struct {
	Id  uuid.UUID
	Run func(ctx context.Context) error

	// OnDone receives the outcome of Run, or the reason it never ran
	OnDone func(ctx context.Context, err error)
}

// Pool runs jobs with at most Size of them in flight. Submitting never
// blocks: a job waits for a free worker in its own goroutine.
type Pool struct {
	sem    *semaphore.Weighted
	size   int
	logger *slog.Logger
	wg     sync.WaitGroup
}

var defaultPool = sync.OnceValue(func() *Pool {
	return NewPool(context.Background())
})

// Default returns the process-wide pool, sized to GOMAXPROCS
func Default() *Pool {
	return defaultPool()
}

// NewPool reads the worker limit and logger from ctx
func NewPool(ctx context.Context) *Pool {
	size := GetWorkerMaxCount(ctx, runtime.GOMAXPROCS(0))

	p := &Pool{
		sem:    semaphore.NewWeighted(int64(size)),
		size:   size,
		logger: GetLogger(ctx).With(slog.String("component", "pool")),
	}
	p.logger.Debug("pool created", slog.Int("workers", size))
	return p
}

func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) Submit(ctx context.Context, job Job) {
	p.wg.Add(1)
	go p.locomotive(ctx, job)
}

// Track runs watch in its own goroutine, outside the worker limit. Wait
// counts it like a job, so jobs it submits before returning are waited for too.
func (p *Pool) Track(watch func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		watch()
	}()
}

// Wait blocks until every submitted job has finished, together with the jobs
// submitted from their OnDone handlers and from tracked goroutines. Submit
// calls made by other goroutines while Wait runs are not covered.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) locomotive(ctx context.Context, job Job) {
	defer p.wg.Done()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.logger.Debug("job cancelled before start", slog.String("id", job.Id.String()),
			slog.Any("err", err))
		p.done(ctx, job, err)
		return
	}

	err := p.run(ctx, job)
	p.sem.Release(1)

	if err != nil {
		p.logger.Debug("job failed", slog.String("id", job.Id.String()), slog.Any("err", err))
	}
	p.done(ctx, job, err)
}

func (p *Pool) run(ctx context.Context, job Job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Warn("job panicked", slog.String("id", job.Id.String()),
				slog.String("panic", fmt.Sprint(rec)))
			err = &monad.PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	return job.Run(ctx)
}

func (p *Pool) done(ctx context.Context, job Job, err error) {
	if job.OnDone != nil {
		job.OnDone(ctx, err)
	}
}
