package future

import (
	"context"
	"errors"
	"fmt"

	"github.com/ib-77/monad3/pkg/monad"
	"github.com/ib-77/monad3/pkg/monad/core"
	"github.com/ib-77/monad3/pkg/monad/solo"
	"golang.org/x/sync/errgroup"
)

var errNilFuture = errors.New("bind function returned a nil future")

type instance[T any] struct{}

// Of returns the Instance building *Future[T] values. Used with package solo
// it gives the blocking composition: every step waits for its input.
func Of[T any]() monad.Instance[T, *Future[T]] {
	return instance[T]{}
}

func (instance[T]) Kind() monad.Kind {
	return Kind
}

func (instance[T]) Unit(value T) *Future[T] {
	return Completed(value)
}

func (instance[T]) Fail(err error) (*Future[T], error) {
	return solo.Fail[*Future[T]](err)
}

// Map returns a future of fn applied to the value of f. fn runs on the pool
// once f resolves; a failure of f is passed on without calling fn.
func Map[T, U any](f *Future[T], fn func(T) U) *Future[U] {
	return TryMap(f, func(v T) (U, error) {
		return fn(v), nil
	})
}

// TryMap is Map for functions that report an error
func TryMap[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	out := newFuture[U](f.ctx)
	f.onComplete(func() {
		v, err := f.Get()
		if err != nil {
			out.fail(err)
			return
		}
		out.schedule(func(context.Context) (U, error) {
			return fn(v)
		})
	})
	return out
}

// Bind returns a future resolved by the future fn builds from the value of f.
// Neither step holds a worker while waiting.
func Bind[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	out := newFuture[U](f.ctx)
	bindInto(f, out, fn)
	return out
}

// bindInto resolves out with the future fn builds from the value of f. fn runs
// as a job under the id of out; no future of a future is created.
func bindInto[T, U any](f *Future[T], out *Future[U], fn func(T) *Future[U]) {
	f.onComplete(func() {
		v, err := f.Get()
		if err != nil {
			out.fail(err)
			return
		}

		var next *Future[U]
		core.PoolFrom(f.ctx).Submit(f.ctx, core.Job{
			Id: out.id,
			Run: func(context.Context) error {
				next = fn(v)
				if next == nil {
					return errNilFuture
				}
				return nil
			},
			OnDone: func(_ context.Context, err error) {
				if err != nil {
					out.fail(err)
					return
				}
				next.onComplete(func() {
					u, err := next.Get()
					if err != nil {
						out.fail(err)
						return
					}
					out.resolve(u, nil)
				})
			},
		})
	})
}

// Apply resolves fn and m, then applies one to the other
func Apply[T, U any](fn *Future[func(T) U], m *Future[T]) *Future[U] {
	return Bind(fn, func(g func(T) U) *Future[U] {
		return Map(m, g)
	})
}

// Join flattens a future of a future
func Join[T any](ff *Future[*Future[T]]) *Future[T] {
	return Bind(ff, monad.Identity[*Future[T]])
}

// All waits for every future. The first failure, or ctx being done,
// stops the wait.
func All[T any](ctx context.Context, futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))
	g, gctx := errgroup.WithContext(ctx)

	for i, f := range futures {
		g.Go(func() error {
			v, err := f.GetContext(gctx)
			if err != nil {
				return fmt.Errorf("future %d: %w", i, err)
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Settle waits for every future, even after failures, and returns the values
// in order, with zero values in place of failures. All failures are joined
// into the returned error; ctx being done fails each future still pending.
func Settle[T any](ctx context.Context, futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))
	var err error

	for i, f := range futures {
		v, ferr := f.GetContext(ctx)
		if ferr != nil {
			errs := monad.GetErrors(err)
			errs = append(errs, fmt.Errorf("future %d: %w", i, ferr))
			err = errors.Join(errs...)
			continue
		}
		results[i] = v
	}
	return results, err
}
