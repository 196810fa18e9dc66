package maybe

import (
	"github.com/ib-77/monad3/pkg/monad"
	"github.com/ib-77/monad3/pkg/monad/solo"
)

type instance[T any] struct{}

// Of returns the Instance building Maybe[T] values
func Of[T any]() monad.Instance[T, Maybe[T]] {
	return instance[T]{}
}

func (instance[T]) Kind() monad.Kind {
	return Kind
}

func (instance[T]) Unit(value T) Maybe[T] {
	return Present(value)
}

// Fail turns the absence signal into Absent. Any other error is returned
// next to Absent, so real faults are not mistaken for a missing value.
func (instance[T]) Fail(err error) (Maybe[T], error) {
	if monad.IsAbsence(err) {
		return Absent[T](), nil
	}
	return Absent[T](), err
}

// Map transforms a present value. Absent short-circuits without calling f.
func Map[T, U any](m Maybe[T], f func(T) U) Maybe[U] {
	if m.IsAbsent() {
		return Absent[U]()
	}
	// over a present value only the absence signal can fail, and Fail absorbs it
	out, _ := solo.Map[T, U, Maybe[U], Maybe[func(T) U]](m, f, Of[func(T) U](), Of[U]())
	return out
}

// Bind sequences a function returning Maybe[U]. Absent short-circuits.
func Bind[T, U any](m Maybe[T], f func(T) Maybe[U]) Maybe[U] {
	if m.IsAbsent() {
		return Absent[U]()
	}
	out, _ := solo.Bind[T, U, Maybe[U], Maybe[Maybe[U]], Maybe[func(T) Maybe[U]]](m, f,
		Of[func(T) Maybe[U]](), Of[Maybe[U]](), Of[U]())
	return out
}

// TryMap applies a function that can fail. An error carrying
// monad.ErrNoSuchElement gives Absent; any other error is returned.
func TryMap[T, U any](m Maybe[T], f func(T) (U, error)) (Maybe[U], error) {
	if m.IsAbsent() {
		return Absent[U](), nil
	}
	return solo.TryMap[T, U, Maybe[U]](m, f, Of[U]())
}

// Apply applies a wrapped function to a wrapped value
func Apply[T, U any](fn Maybe[func(T) U], m Maybe[T]) Maybe[U] {
	if fn.IsAbsent() || m.IsAbsent() {
		return Absent[U]()
	}
	out, _ := solo.Apply[T, U, Maybe[U]](fn, m, Of[U]())
	return out
}

// Join flattens a nested Maybe
func Join[T any](mm Maybe[Maybe[T]]) Maybe[T] {
	if mm.IsAbsent() {
		return Absent[T]()
	}
	out, _ := solo.Join[T, Maybe[T]](mm)
	return out
}
