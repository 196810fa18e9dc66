package monad

import (
	"errors"
	"reflect"
)

// Identity returns its argument. Mapping it over a container must give an
// equivalent container.
func Identity[T any](v T) T {
	return v
}

// Compose returns x -> g(f(x))
func Compose[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(a A) C {
		return g(f(a))
	}
}

// Equivalent reports whether two containers are observably the same: both
// resolve to deeply equal values, or both fail with matching errors.
// Get is called on both, so asynchronous containers are awaited.
func Equivalent[T any](a, b Functor[T]) bool {
	av, aErr := a.Get()
	bv, bErr := b.Get()

	if aErr != nil || bErr != nil {
		if aErr == nil || bErr == nil {
			return false
		}
		aRoot, bRoot := rootCause(aErr), rootCause(bErr)
		return errors.Is(aRoot, bRoot) || aRoot.Error() == bRoot.Error()
	}

	return reflect.DeepEqual(av, bv)
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
