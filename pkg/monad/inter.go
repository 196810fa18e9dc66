package monad

// Kind identifies the variant a container belongs to. Every container
// produced from another one by Map or Bind has the same Kind.
type Kind string

// Functor defines types whose wrapped content can be retrieved
type Functor[T any] interface {
	// Get returns the wrapped value, or the reason it is unavailable
	Get() (T, error)
}

// Applicative extends Functor with the variant it belongs to, so that plain
// values can be lifted back into the same variant through its Instance
type Applicative[T any] interface {
	Functor[T]
	// Kind returns the variant of the container
	Kind() Kind
}

// Monad is an Applicative that supports Join and Bind. The operations
// themselves are generic functions in package solo, since Go methods can not
// introduce the type parameter of the result.
type Monad[T any] interface {
	Applicative[T]
}

// Instance carries the primitives a variant must supply for containers of T.
// It plays the role of the witness type: generic code receives an Instance
// and never needs to know the concrete container.
type Instance[T any, M Monad[T]] interface {
	// Kind returns the variant built by Unit
	Kind() Kind
	// Unit lifts a plain value into a new container
	Unit(value T) M
	// Fail converts err into a container, or returns it for the caller
	Fail(err error) (M, error)
}
