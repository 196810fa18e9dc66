package future

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/monad3/pkg/monad"
	"github.com/ib-77/monad3/pkg/monad/core"
)

const Kind monad.Kind = "future"

// Task is a deferred computation run on a core.Pool
type Task[T any] func(ctx context.Context) (T, error)

// Future is the result of a task that may still be running. It resolves once;
// after a failure every Get reports the same *monad.ExecutionError.
type Future[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	ctx       context.Context

	done      chan struct{}
	mu        sync.Mutex
	value     T
	err       error
	callbacks []func()
}

func newFuture[T any](ctx context.Context) *Future[T] {
	return &Future[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		ctx:       ctx,
		done:      make(chan struct{}),
	}
}

// Submit schedules task on the pool found in ctx
func Submit[T any](ctx context.Context, task Task[T]) *Future[T] {
	f := newFuture[T](ctx)
	f.schedule(task)
	return f
}

// Instance schedules a task that returns value
func Instance[T any](ctx context.Context, value T) *Future[T] {
	return Submit(ctx, func(context.Context) (T, error) {
		return value, nil
	})
}

// Completed returns a future already resolved to value. Its continuations run
// on core.Default.
func Completed[T any](value T) *Future[T] {
	return CompletedContext(context.Background(), value)
}

// CompletedContext is Completed whose continuations use ctx and its pool
func CompletedContext[T any](ctx context.Context, value T) *Future[T] {
	f := newFuture[T](ctx)
	f.resolve(value, nil)
	return f
}

// Failed returns a future already failed with err
func Failed[T any](err error) *Future[T] {
	return FailedContext[T](context.Background(), err)
}

// FailedContext is Failed whose continuations use ctx and its pool
func FailedContext[T any](ctx context.Context, err error) *Future[T] {
	f := newFuture[T](ctx)
	f.fail(err)
	return f
}

// FromChan resolves with the first value received from ch. A channel closed
// without a value fails with monad.ErrCancelled, ctx being done fails with
// ctx.Err(). The pool from ctx tracks the wait, so its Wait covers it.
func FromChan[T any](ctx context.Context, ch <-chan T) *Future[T] {
	f := newFuture[T](ctx)
	core.PoolFrom(ctx).Track(func() {
		select {
		case v, ok := <-ch:
			if !ok {
				f.fail(monad.ErrCancelled)
				return
			}
			f.resolve(v, nil)
		case <-ctx.Done():
			f.fail(ctx.Err())
		}
	})
	return f
}

// Get blocks until the future resolves
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// GetContext is Get bounded by ctx
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

func (f *Future[T]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future[T]) Kind() monad.Kind {
	return Kind
}

func (f *Future[T]) Id() uuid.UUID {
	return f.id
}

func (f *Future[T]) CreatedAt() time.Time {
	return f.createdAt
}

// Map transforms the value once it is available, without blocking
func (f *Future[T]) Map(fn func(T) T) *Future[T] {
	return Map(f, fn)
}

// Bind composes functions that already return a future, without blocking
func (f *Future[T]) Bind(fn func(T) *Future[T]) *Future[T] {
	out := newFuture[T](f.ctx)
	bindInto(f, out, fn)
	return out
}

func (f *Future[T]) schedule(task Task[T]) {
	var out T
	core.PoolFrom(f.ctx).Submit(f.ctx, core.Job{
		Id: f.id,
		Run: func(ctx context.Context) error {
			v, err := task(ctx)
			out = v
			return err
		},
		OnDone: func(_ context.Context, err error) {
			if err != nil {
				f.fail(err)
				return
			}
			f.resolve(out, nil)
		},
	})
}

func (f *Future[T]) fail(err error) {
	var execErr *monad.ExecutionError
	if !errors.As(err, &execErr) {
		err = monad.NewExecutionError(f.id, err)
	}
	var zero T
	f.resolve(zero, err)
}

func (f *Future[T]) resolve(value T, err error) {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		return
	default:
	}
	f.value, f.err = value, err
	close(f.done)
	callbacks := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

// onComplete runs cb once f is resolved, right away if it already is
func (f *Future[T]) onComplete(cb func()) {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		cb()
		return
	default:
	}
	f.callbacks = append(f.callbacks, cb)
	f.mu.Unlock()
}
