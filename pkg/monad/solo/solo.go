package solo

import (
	"github.com/ib-77/monad3/pkg/monad"
)

// Apply unwraps the function, then the value, and lifts the result with in.
// The first failing unwrap is returned as is.
func Apply[T, U any, MU monad.Monad[U]](fn monad.Functor[func(T) U], m monad.Functor[T],
	in monad.Instance[U, MU]) (MU, error) {

	f, err := fn.Get()
	if err != nil {
		return Fail[MU](err)
	}

	t, err := m.Get()
	if err != nil {
		return Fail[MU](err)
	}

	return in.Unit(f(t)), nil
}

// Yield lifts f with fnIn and applies it to m
func Yield[T, U any, MU monad.Monad[U], MF monad.Monad[func(T) U]](m monad.Monad[T], f func(T) U,
	fnIn monad.Instance[func(T) U, MF], in monad.Instance[U, MU]) (MU, error) {

	return Apply[T, U, MU](fnIn.Unit(f), m, in)
}

// Join flattens one level of nesting. It relies on Get of the outer container
// returning the inner container itself.
func Join[U any, MU monad.Monad[U]](mm monad.Functor[MU]) (MU, error) {
	return mm.Get()
}

// Fail is the default failure hook: the error is handed back to the caller
func Fail[M any](err error) (M, error) {
	var zero M
	return zero, err
}

// Map applies f through Yield. A failure of Yield, or a panic carrying
// monad.ErrNoSuchElement raised by f, is routed through in.Fail.
func Map[T, U any, MU monad.Monad[U], MF monad.Monad[func(T) U]](m monad.Monad[T], f func(T) U,
	fnIn monad.Instance[func(T) U, MF], in monad.Instance[U, MU]) (MU, error) {

	out, err := guarded(func() (MU, error) {
		return Yield[T, U, MU, MF](m, f, fnIn, in)
	})
	if err != nil {
		return in.Fail(err)
	}

	return out, nil
}

// TryMap applies a function reporting its own error; that error is routed
// through in.Fail like a failure of the source
func TryMap[T, U any, MU monad.Monad[U]](m monad.Functor[T], f func(T) (U, error),
	in monad.Instance[U, MU]) (MU, error) {

	t, err := m.Get()
	if err != nil {
		return in.Fail(err)
	}

	u, err := guarded(func() (U, error) { return f(t) })
	if err != nil {
		return in.Fail(err)
	}

	return in.Unit(u), nil
}

// Bind maps f into the nested container and joins the result
func Bind[T, U any, MU monad.Monad[U], MMU monad.Monad[MU], MF monad.Monad[func(T) MU]](m monad.Monad[T],
	f func(T) MU,
	fnIn monad.Instance[func(T) MU, MF],
	nestedIn monad.Instance[MU, MMU],
	in monad.Instance[U, MU]) (MU, error) {

	mm, err := Map[T, MU, MMU, MF](m, f, fnIn, nestedIn)
	if err != nil {
		return in.Fail(err)
	}

	out, err := Join[U, MU](mm)
	if err != nil {
		return in.Fail(err)
	}

	return out, nil
}

// Tee calls onValue with the resolved value and returns m unchanged
func Tee[T any, M monad.Functor[T]](m M, onValue func(T)) M {
	if v, err := m.Get(); err == nil {
		onValue(v)
	}
	return m
}

// Finally reduces m to a plain value
func Finally[T, Out any](m monad.Functor[T], onValue func(T) Out, onError func(error) Out) Out {
	v, err := m.Get()
	if err != nil {
		return onError(err)
	}
	return onValue(v)
}

func guarded[R any](f func() (R, error)) (r R, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok && monad.IsAbsence(e) {
				err = e
				return
			}
			panic(rec)
		}
	}()
	return f()
}
