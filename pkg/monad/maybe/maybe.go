package maybe

import (
	"fmt"
	"reflect"

	"github.com/ib-77/monad3/pkg/monad"
)

const Kind monad.Kind = "maybe"

// Maybe holds either a present value or nothing. The zero Maybe is Absent,
// and all absent values of a type are the same value, so they can be shared
// freely between goroutines.
type Maybe[T any] struct {
	value   T
	present bool
}

func Present[T any](value T) Maybe[T] {
	return Maybe[T]{value: value, present: true}
}

func Absent[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Instance returns Absent for nil pointers, maps, slices, channels, functions
// and interfaces, Present otherwise
func Instance[T any](value T) Maybe[T] {
	if monad.IsNil(value) {
		return Absent[T]()
	}
	return Present(value)
}

// FromPtr dereferences ptr, nil gives Absent
func FromPtr[T any](ptr *T) Maybe[T] {
	if ptr == nil {
		return Absent[T]()
	}
	return Present(*ptr)
}

// FromOk adapts the comma-ok idiom
func FromOk[T any](value T, ok bool) Maybe[T] {
	if !ok {
		return Absent[T]()
	}
	return Present(value)
}

func (m Maybe[T]) Get() (T, error) {
	if !m.present {
		var zero T
		return zero, fmt.Errorf("maybe.Get: %w", monad.ErrNoSuchElement)
	}
	return m.value, nil
}

// MustGet panics with monad.ErrNoSuchElement on Absent. Inside a function
// passed to Map or Bind the panic turns the result into Absent.
func (m Maybe[T]) MustGet() T {
	v, err := m.Get()
	if err != nil {
		panic(err)
	}
	return v
}

func (m Maybe[T]) OrElse(value T) T {
	if m.present {
		return m.value
	}
	return value
}

func (m Maybe[T]) Kind() monad.Kind {
	return Kind
}

func (m Maybe[T]) IsPresent() bool {
	return m.present
}

func (m Maybe[T]) IsAbsent() bool {
	return !m.present
}

func (m Maybe[T]) IsJust() bool {
	return m.IsPresent()
}

func (m Maybe[T]) IsNothing() bool {
	return m.IsAbsent()
}

func (m Maybe[T]) Equal(other Maybe[T]) bool {
	if m.present != other.present {
		return false
	}
	return !m.present || reflect.DeepEqual(m.value, other.value)
}

func (m Maybe[T]) String() string {
	if !m.present {
		return "Absent"
	}
	return fmt.Sprintf("Present(%v)", m.value)
}

// Map transforms a present value
func (m Maybe[T]) Map(f func(T) T) Maybe[T] {
	if !m.present {
		return m
	}
	return absorb(func() Maybe[T] {
		return Present(f(m.value))
	})
}

// Bind composes functions that already return Maybe[T]
func (m Maybe[T]) Bind(f func(T) Maybe[T]) Maybe[T] {
	if !m.present {
		return m
	}
	return absorb(func() Maybe[T] {
		return f(m.value)
	})
}

// Filter keeps a present value only when keep holds for it
func (m Maybe[T]) Filter(keep func(T) bool) Maybe[T] {
	if m.present && keep(m.value) {
		return m
	}
	return Absent[T]()
}

// Or returns the first present value among m and alternatives
func (m Maybe[T]) Or(alternatives ...Maybe[T]) Maybe[T] {
	if m.present {
		return m
	}
	for _, alt := range alternatives {
		if alt.present {
			return alt
		}
	}
	return m
}

// absorb runs step and turns an absence panic, such as MustGet on Absent,
// into Absent. Methods of Maybe[T] must not call the package Map or Bind:
// that instantiates Maybe[func(T) T] and its methods, without end.
func absorb[T any](step func() Maybe[T]) (out Maybe[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			err, ok := rec.(error)
			if !ok || !monad.IsAbsence(err) {
				panic(rec)
			}
			out = Absent[T]()
		}
	}()
	return step()
}

// Tee calls onValue when the value is present and returns m unchanged
func (m Maybe[T]) Tee(onValue func(T)) Maybe[T] {
	if m.present {
		onValue(m.value)
	}
	return m
}
